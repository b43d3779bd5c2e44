// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/cybereco/justsplit/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for JustSplit storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateEvent persists a new event. The event.ID field is populated by the
	// store if empty.
	CreateEvent(ctx context.Context, event *models.Event) error

	// GetEvent retrieves an event by ID, including its member list.
	GetEvent(ctx context.Context, eventID string) (*models.Event, error)

	// ListEvents returns all events, newest first.
	ListEvents(ctx context.Context) ([]*models.Event, error)

	// AddEventMembers adds participant IDs to an event, ignoring duplicates.
	AddEventMembers(ctx context.Context, eventID string, members []string) error

	// CreateExpense persists a new expense with its participant list.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense by ID.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListExpensesByEvent returns an event's expenses ordered by date.
	ListExpensesByEvent(ctx context.Context, eventID string) ([]*models.Expense, error)

	// SetExpenseSettled flips an expense's settled flag.
	SetExpenseSettled(ctx context.Context, expenseID string, settled bool) error

	// CreateSettlement persists a recorded settlement.
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error

	// ListSettlementsByEvent returns an event's settlements, newest first.
	ListSettlementsByEvent(ctx context.Context, eventID string) ([]*models.Settlement, error)

	// CreateUser inserts a new Hub user account.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email. Returns (nil, nil) when no
	// such user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Close releases any resources held by the store.
	Close() error
}
