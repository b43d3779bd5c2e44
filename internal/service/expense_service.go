package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cybereco/justsplit/internal/calculator"
	"github.com/cybereco/justsplit/internal/models"
	"github.com/cybereco/justsplit/internal/storage"
)

var (
	ErrNoParticipants      = errors.New("expense must have at least one participant")
	ErrInvalidAmount       = errors.New("expense amount must be positive")
	ErrPayerNotParticipant = errors.New("payer must be one of the participants")
)

// EventSummary aggregates an event's expenses for the dashboard.
type EventSummary struct {
	EventID           string             `json:"event_id"`
	TotalByCurrency   map[string]float64 `json:"total_by_currency"`
	UnsettledAmount   float64            `json:"unsettled_amount"`
	SettledPercentage float64            `json:"settled_percentage"`
}

// ExpenseService manages expenses and their aggregates.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// validatePayer checks that the payer is one of the participants.
func validatePayer(payerID string, participants []string) error {
	for _, p := range participants {
		if p == payerID {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrPayerNotParticipant, payerID)
}

// CreateExpense validates and persists a new expense. The non-empty
// participant list is enforced here because the split calculators deliberately
// do not guard against division by zero.
//
// Participants (and the payer) not yet in the event's member list are added
// automatically so the netting engine sees them.
func (s *ExpenseService) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if len(expense.Participants) == 0 {
		return ErrNoParticipants
	}
	if expense.Amount <= 0 {
		return ErrInvalidAmount
	}
	if err := validatePayer(expense.PaidBy, expense.Participants); err != nil {
		return err
	}

	if _, err := s.store.GetEvent(ctx, expense.EventID); err != nil {
		return err
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("CreateExpense failed", "error", err)
		return err
	}

	if err := s.store.AddEventMembers(ctx, expense.EventID, expense.Participants); err != nil {
		slog.Warn("failed to auto-add participants to event", "event_id", expense.EventID, "error", err)
	}

	slog.Info("expense created",
		"expense_id", expense.ID,
		"event_id", expense.EventID,
		"amount", expense.Amount,
		"participants", len(expense.Participants),
	)
	return nil
}

// GetExpense retrieves an expense by ID.
func (s *ExpenseService) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	return s.store.GetExpense(ctx, expenseID)
}

// ListByEvent returns an event's expenses ordered by date.
func (s *ExpenseService) ListByEvent(ctx context.Context, eventID string) ([]*models.Expense, error) {
	return s.store.ListExpensesByEvent(ctx, eventID)
}

// Settle marks an expense as settled.
func (s *ExpenseService) Settle(ctx context.Context, expenseID string) error {
	return s.store.SetExpenseSettled(ctx, expenseID, true)
}

// Summary computes the dashboard aggregates for an event.
func (s *ExpenseService) Summary(ctx context.Context, eventID string) (*EventSummary, error) {
	stored, err := s.store.ListExpensesByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	expenses := make([]models.Expense, len(stored))
	for i, e := range stored {
		expenses[i] = *e
	}

	return &EventSummary{
		EventID:           eventID,
		TotalByCurrency:   calculator.TotalByCurrency(expenses),
		UnsettledAmount:   calculator.UnsettledAmount(expenses),
		SettledPercentage: calculator.SettledPercentage(expenses),
	}, nil
}
