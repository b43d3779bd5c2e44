package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cybereco/justsplit/internal/models"
	"github.com/cybereco/justsplit/internal/storage"
	"github.com/cybereco/justsplit/internal/timeline"
)

var (
	ErrEmptyName   = errors.New("event name must not be empty")
	ErrNoStartDate = errors.New("event start date must not be empty")
)

// Timeline is the rendered view of an event's expense axis.
type Timeline struct {
	EventID   string           `json:"event_id"`
	Label     string           `json:"label"`
	Progress  float64          `json:"progress"`
	Groups    []timeline.Group `json:"groups"`
}

// EventService manages events and their timeline views.
type EventService struct {
	store storage.Store
}

// NewEventService creates a new EventService with the given storage backend.
func NewEventService(store storage.Store) *EventService {
	return &EventService{store: store}
}

// CreateEvent validates and persists a new event.
func (s *EventService) CreateEvent(ctx context.Context, event *models.Event) error {
	if event.Name == "" {
		return ErrEmptyName
	}
	if event.StartDate == "" && event.Date == "" {
		return ErrNoStartDate
	}
	if err := s.store.CreateEvent(ctx, event); err != nil {
		slog.Error("CreateEvent failed", "error", err)
		return err
	}
	slog.Info("event created", "event_id", event.ID, "name", event.Name)
	return nil
}

// GetEvent retrieves an event by ID.
func (s *EventService) GetEvent(ctx context.Context, eventID string) (*models.Event, error) {
	return s.store.GetEvent(ctx, eventID)
}

// ListEvents returns all events, newest first.
func (s *EventService) ListEvents(ctx context.Context) ([]*models.Event, error) {
	return s.store.ListEvents(ctx)
}

// Timeline builds the grouped timeline view for an event: its expenses mapped
// onto the date axis and clustered, plus the axis label and progress.
func (s *EventService) Timeline(ctx context.Context, eventID string) (*Timeline, error) {
	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	stored, err := s.store.ListExpensesByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	expenses := make([]models.Expense, len(stored))
	for i, e := range stored {
		expenses[i] = *e
	}

	start := event.StartDate
	if start == "" {
		start = event.Date
	}

	return &Timeline{
		EventID:  event.ID,
		Label:    timeline.FormatDateRange(start, event.EndDate),
		Progress: timeline.EventProgress(start, event.EndDate, time.Now()),
		Groups:   timeline.GroupNearby(expenses, *event),
	}, nil
}
