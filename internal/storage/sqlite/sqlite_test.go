package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cybereco/justsplit/internal/models"
	"github.com/cybereco/justsplit/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	tempDir, err := os.MkdirTemp("", "justsplit-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStoreEvents(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateEvent generates ID and timestamps", func(t *testing.T) {
		event := &models.Event{
			Name:      "Lisbon Trip",
			StartDate: "2023-06-01T00:00:00Z",
			EndDate:   "2023-06-11T00:00:00Z",
			Members:   []string{"alice", "bob"},
		}
		if err := store.CreateEvent(ctx, event); err != nil {
			t.Fatalf("CreateEvent failed: %v", err)
		}
		if event.ID == "" {
			t.Error("Expected event ID to be generated")
		}
		if event.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("GetEvent retrieves complete event", func(t *testing.T) {
		original := &models.Event{
			Name:      "Ski Weekend",
			StartDate: "2024-01-05T00:00:00Z",
			Members:   []string{"carol", "alice"},
		}
		if err := store.CreateEvent(ctx, original); err != nil {
			t.Fatalf("CreateEvent failed: %v", err)
		}

		got, err := store.GetEvent(ctx, original.ID)
		if err != nil {
			t.Fatalf("GetEvent failed: %v", err)
		}
		if got.Name != original.Name {
			t.Errorf("Name = %q, want %q", got.Name, original.Name)
		}
		if got.EndDate != "" {
			t.Errorf("EndDate = %q, want empty for open-ended event", got.EndDate)
		}
		// Members come back sorted.
		if len(got.Members) != 2 || got.Members[0] != "alice" || got.Members[1] != "carol" {
			t.Errorf("Members = %v, want [alice carol]", got.Members)
		}
	})

	t.Run("GetEvent unknown ID returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetEvent(ctx, "no-such-event")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("AddEventMembers ignores duplicates", func(t *testing.T) {
		event := &models.Event{Name: "Dinner", StartDate: "2024-02-01T00:00:00Z", Members: []string{"alice"}}
		if err := store.CreateEvent(ctx, event); err != nil {
			t.Fatalf("CreateEvent failed: %v", err)
		}
		if err := store.AddEventMembers(ctx, event.ID, []string{"alice", "bob"}); err != nil {
			t.Fatalf("AddEventMembers failed: %v", err)
		}

		got, err := store.GetEvent(ctx, event.ID)
		if err != nil {
			t.Fatalf("GetEvent failed: %v", err)
		}
		if len(got.Members) != 2 {
			t.Errorf("Members = %v, want 2 distinct members", got.Members)
		}
	})
}

func TestSQLiteStoreExpenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	event := &models.Event{
		Name:      "Lisbon Trip",
		StartDate: "2023-06-01T00:00:00Z",
		EndDate:   "2023-06-11T00:00:00Z",
		Members:   []string{"alice", "bob"},
	}
	if err := store.CreateEvent(ctx, event); err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}

	expense := &models.Expense{
		EventID:      event.ID,
		Description:  "Dinner",
		Amount:       60.5,
		Currency:     "EUR",
		Date:         "2023-06-03T20:00:00Z",
		PaidBy:       "alice",
		Participants: []string{"bob", "alice"},
	}

	t.Run("CreateExpense generates ID", func(t *testing.T) {
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		if expense.ID == "" {
			t.Error("Expected expense ID to be generated")
		}
	})

	t.Run("GetExpense preserves participant order", func(t *testing.T) {
		got, err := store.GetExpense(ctx, expense.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if got.Amount != 60.5 || got.Currency != "EUR" || got.PaidBy != "alice" {
			t.Errorf("unexpected expense: %+v", got)
		}
		if len(got.Participants) != 2 || got.Participants[0] != "bob" || got.Participants[1] != "alice" {
			t.Errorf("Participants = %v, want [bob alice]", got.Participants)
		}
		if got.Settled {
			t.Error("new expense should not be settled")
		}
	})

	t.Run("ListExpensesByEvent orders by date", func(t *testing.T) {
		earlier := &models.Expense{
			EventID:      event.ID,
			Description:  "Taxi",
			Amount:       20,
			Currency:     "EUR",
			Date:         "2023-06-02T09:00:00Z",
			PaidBy:       "bob",
			Participants: []string{"alice", "bob"},
		}
		if err := store.CreateExpense(ctx, earlier); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		expenses, err := store.ListExpensesByEvent(ctx, event.ID)
		if err != nil {
			t.Fatalf("ListExpensesByEvent failed: %v", err)
		}
		if len(expenses) != 2 {
			t.Fatalf("expected 2 expenses, got %d", len(expenses))
		}
		if expenses[0].Description != "Taxi" || expenses[1].Description != "Dinner" {
			t.Errorf("wrong order: %s, %s", expenses[0].Description, expenses[1].Description)
		}
	})

	t.Run("SetExpenseSettled flips the flag", func(t *testing.T) {
		if err := store.SetExpenseSettled(ctx, expense.ID, true); err != nil {
			t.Fatalf("SetExpenseSettled failed: %v", err)
		}
		got, err := store.GetExpense(ctx, expense.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if !got.Settled {
			t.Error("expected expense to be settled")
		}
	})

	t.Run("SetExpenseSettled unknown ID returns ErrNotFound", func(t *testing.T) {
		err := store.SetExpenseSettled(ctx, "no-such-expense", true)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestSQLiteStoreSettlements(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	event := &models.Event{Name: "Trip", StartDate: "2023-06-01T00:00:00Z", Members: []string{"alice", "bob"}}
	if err := store.CreateEvent(ctx, event); err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}

	settlement := &models.Settlement{
		EventID:    event.ID,
		FromUserID: "bob",
		ToUserID:   "alice",
		Amount:     30.25,
		CreatedBy:  "bob",
		Note:       "dinner debt",
	}
	if err := store.CreateSettlement(ctx, settlement); err != nil {
		t.Fatalf("CreateSettlement failed: %v", err)
	}
	if settlement.ID == "" {
		t.Error("Expected settlement ID to be generated")
	}

	settlements, err := store.ListSettlementsByEvent(ctx, event.ID)
	if err != nil {
		t.Fatalf("ListSettlementsByEvent failed: %v", err)
	}
	if len(settlements) != 1 {
		t.Fatalf("expected 1 settlement, got %d", len(settlements))
	}
	got := settlements[0]
	if got.FromUserID != "bob" || got.ToUserID != "alice" || got.Amount != 30.25 || got.Note != "dinner debt" {
		t.Errorf("unexpected settlement: %+v", got)
	}
}

func TestSQLiteStoreUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := models.NewUser("alice@example.com", "Alice", "hash")
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	t.Run("GetUserByEmail", func(t *testing.T) {
		got, err := store.GetUserByEmail(ctx, "alice@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got == nil || got.ID != user.ID || got.DisplayName != "Alice" {
			t.Errorf("unexpected user: %+v", got)
		}
	})

	t.Run("GetUserByEmail missing returns nil without error", func(t *testing.T) {
		got, err := store.GetUserByEmail(ctx, "nobody@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got != nil {
			t.Errorf("expected nil user, got %+v", got)
		}
	})

	t.Run("GetUserByID missing returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetUserByID(ctx, "no-such-user")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("duplicate email fails", func(t *testing.T) {
		dup := models.NewUser("alice@example.com", "Alice Again", "hash2")
		if err := store.CreateUser(ctx, dup); err == nil {
			t.Error("expected unique constraint error")
		}
	})
}
