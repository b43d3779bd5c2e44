package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/cybereco/justsplit/internal/calculator"
	"github.com/cybereco/justsplit/internal/models"
	"github.com/cybereco/justsplit/internal/storage"
)

var (
	ErrSelfSettlement    = errors.New("cannot settle with yourself")
	ErrInvalidSettlement = errors.New("settlement amount must be positive")
)

// SettlementService suggests who-owes-whom transfers and records the
// settlements users actually confirm. The suggestions are advisory only;
// nothing is persisted until RecordSettlement is called.
type SettlementService struct {
	store storage.Store
}

// NewSettlementService creates a new SettlementService with the given storage backend.
func NewSettlementService(store storage.Store) *SettlementService {
	return &SettlementService{store: store}
}

// SuggestSettlements runs the netting engine over an event's expenses and its
// member list, returning the transfers that would settle all balances.
func (s *SettlementService) SuggestSettlements(ctx context.Context, eventID string) ([]models.Balance, error) {
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
	participants := make([]models.Participant, len(event.Members))
	for i, id := range event.Members {
		participants[i] = models.Participant{ID: id, Name: id}
	}

	return calculator.CalculateBalances(expenses, participants), nil
}

// RecordSettlement validates and persists a settlement between two participants.
func (s *SettlementService) RecordSettlement(ctx context.Context, settlement *models.Settlement) error {
	if settlement.FromUserID == settlement.ToUserID {
		return ErrSelfSettlement
	}
	if settlement.Amount <= 0 {
		return ErrInvalidSettlement
	}
	if _, err := s.store.GetEvent(ctx, settlement.EventID); err != nil {
		return err
	}

	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		slog.Error("RecordSettlement failed", "error", err)
		return err
	}
	slog.Info("settlement recorded",
		"settlement_id", settlement.ID,
		"event_id", settlement.EventID,
		"from", settlement.FromUserID,
		"to", settlement.ToUserID,
		"amount", settlement.Amount,
	)
	return nil
}

// ListByEvent returns an event's recorded settlements, newest first.
func (s *SettlementService) ListByEvent(ctx context.Context, eventID string) ([]*models.Settlement, error) {
	return s.store.ListSettlementsByEvent(ctx, eventID)
}
