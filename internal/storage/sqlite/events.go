package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cybereco/justsplit/internal/models"
	"github.com/cybereco/justsplit/internal/storage"
)

// CreateEvent persists a new event with its member list.
func (s *SQLiteStore) CreateEvent(ctx context.Context, event *models.Event) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt == 0 {
		event.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO events (id, name, date, start_date, end_date, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		event.ID, event.Name, nullable(event.Date), event.StartDate, nullable(event.EndDate), event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}

	for _, member := range event.Members {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO event_members (event_id, participant) VALUES (?, ?)",
			event.ID, member,
		)
		if err != nil {
			return fmt.Errorf("failed to insert event member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetEvent retrieves an event by ID, including its members.
func (s *SQLiteStore) GetEvent(ctx context.Context, eventID string) (*models.Event, error) {
	event := &models.Event{}
	var date, endDate sql.NullString
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, date, start_date, end_date, created_at FROM events WHERE id = ?",
		eventID,
	).Scan(&event.ID, &event.Name, &date, &event.StartDate, &endDate, &event.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("event %s: %w", eventID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	event.Date = date.String
	event.EndDate = endDate.String

	rows, err := s.db.QueryContext(ctx,
		"SELECT participant FROM event_members WHERE event_id = ? ORDER BY participant",
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get event members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var member string
		if err := rows.Scan(&member); err != nil {
			return nil, fmt.Errorf("failed to scan event member: %w", err)
		}
		event.Members = append(event.Members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate event members: %w", err)
	}

	return event, nil
}

// ListEvents returns all events, newest first. Member lists are not loaded.
func (s *SQLiteStore) ListEvents(ctx context.Context) ([]*models.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, date, start_date, end_date, created_at FROM events ORDER BY created_at DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event := &models.Event{}
		var date, endDate sql.NullString
		if err := rows.Scan(&event.ID, &event.Name, &date, &event.StartDate, &endDate, &event.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		event.Date = date.String
		event.EndDate = endDate.String
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}
	return events, nil
}

// AddEventMembers adds participant IDs to an event, ignoring duplicates.
func (s *SQLiteStore) AddEventMembers(ctx context.Context, eventID string, members []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, member := range members {
		_, err = tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO event_members (event_id, participant) VALUES (?, ?)",
			eventID, member,
		)
		if err != nil {
			return fmt.Errorf("failed to insert event member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
