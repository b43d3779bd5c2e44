package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cybereco/justsplit/internal/auth"
	"github.com/cybereco/justsplit/internal/models"
	"github.com/cybereco/justsplit/internal/service"
	"github.com/cybereco/justsplit/internal/storage/sqlite"
)

// setupTestServer builds a full server over a temp SQLite store and returns
// its base URL plus a valid session token.
func setupTestServer(t *testing.T) (string, string) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "justsplit-server-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store)

	srv := New(
		service.NewAuthService(authenticator, jwtManager, slog.Default()),
		service.NewEventService(store),
		service.NewExpenseService(store),
		service.NewSettlementService(store),
		jwtManager,
	)

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	token := registerUser(t, ts.URL, "alice@example.com", "Alice")
	return ts.URL, token
}

func registerUser(t *testing.T, baseURL, email, name string) string {
	t.Helper()
	resp := doJSON(t, http.MethodPost, baseURL+"/api/auth/register", "", map[string]string{
		"email":        email,
		"display_name": name,
		"password":     "correct-horse",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", resp.StatusCode)
	}

	var session struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		t.Fatalf("failed to decode session: %v", err)
	}
	if session.Token == "" {
		t.Fatal("expected non-empty token")
	}
	return session.Token
}

func doJSON(t *testing.T, method, url, token string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

func createEvent(t *testing.T, baseURL, token string) models.Event {
	t.Helper()
	resp := doJSON(t, http.MethodPost, baseURL+"/api/events", token, map[string]interface{}{
		"name":       "Lisbon Trip",
		"start_date": "2023-06-01T00:00:00Z",
		"end_date":   "2023-06-11T00:00:00Z",
		"members":    []string{"user1", "user2", "user3"},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create event: expected 201, got %d", resp.StatusCode)
	}
	var event models.Event
	decodeBody(t, resp, &event)
	if event.ID == "" {
		t.Fatal("expected event ID")
	}
	return event
}

func TestAuthRequired(t *testing.T) {
	baseURL, _ := setupTestServer(t)

	resp := doJSON(t, http.MethodGet, baseURL+"/api/events", "", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", resp.StatusCode)
	}
}

func TestLogin(t *testing.T) {
	baseURL, _ := setupTestServer(t)

	t.Run("valid credentials", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, baseURL+"/api/auth/login", "", map[string]string{
			"email":    "alice@example.com",
			"password": "correct-horse",
		})
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("expected 200, got %d", resp.StatusCode)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, baseURL+"/api/auth/login", "", map[string]string{
			"email":    "alice@example.com",
			"password": "wrong",
		})
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", resp.StatusCode)
		}
	})
}

func TestExpenseFlow(t *testing.T) {
	baseURL, token := setupTestServer(t)
	event := createEvent(t, baseURL, token)

	resp := doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/events/%s/expenses", baseURL, event.ID), token, map[string]interface{}{
		"description":  "Dinner",
		"amount":       300.0,
		"currency":     "USD",
		"date":         "2023-06-03T20:00:00Z",
		"paid_by":      "user1",
		"participants": []string{"user1", "user2", "user3"},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create expense: expected 201, got %d", resp.StatusCode)
	}
	var expense models.Expense
	decodeBody(t, resp, &expense)

	t.Run("balances suggest transfers to the payer", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/events/%s/balances", baseURL, event.ID), token, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("balances: expected 200, got %d", resp.StatusCode)
		}
		var balances []models.Balance
		decodeBody(t, resp, &balances)
		if len(balances) != 2 {
			t.Fatalf("expected 2 balances, got %v", balances)
		}
		for _, b := range balances {
			if b.To != "user1" || b.Amount != 100 {
				t.Errorf("unexpected balance: %+v", b)
			}
		}
	})

	t.Run("timeline places the expense mid-event", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/events/%s/timeline", baseURL, event.ID), token, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("timeline: expected 200, got %d", resp.StatusCode)
		}
		var view struct {
			Label  string `json:"label"`
			Groups []struct {
				Position float64          `json:"position"`
				Expenses []models.Expense `json:"expenses"`
			} `json:"groups"`
		}
		decodeBody(t, resp, &view)
		if view.Label != "Jun 1-11, 2023" {
			t.Errorf("label = %q, want %q", view.Label, "Jun 1-11, 2023")
		}
		if len(view.Groups) != 1 || len(view.Groups[0].Expenses) != 1 {
			t.Fatalf("expected one group of one expense, got %+v", view.Groups)
		}
		// 2.83 days into a 10-day event rounds to 28.
		if view.Groups[0].Position != 28 {
			t.Errorf("position = %v, want 28", view.Groups[0].Position)
		}
	})

	t.Run("settling updates the summary", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/expenses/%s/settle", baseURL, expense.ID), token, nil)
		resp.Body.Close()
		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("settle: expected 204, got %d", resp.StatusCode)
		}

		resp = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/events/%s/summary", baseURL, event.ID), token, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("summary: expected 200, got %d", resp.StatusCode)
		}
		var summary service.EventSummary
		decodeBody(t, resp, &summary)
		if summary.SettledPercentage != 100 {
			t.Errorf("settled percentage = %v, want 100", summary.SettledPercentage)
		}
		if summary.UnsettledAmount != 0 {
			t.Errorf("unsettled amount = %v, want 0", summary.UnsettledAmount)
		}
		if summary.TotalByCurrency["USD"] != 300 {
			t.Errorf("USD total = %v, want 300", summary.TotalByCurrency["USD"])
		}
	})

	t.Run("payer must participate", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/events/%s/expenses", baseURL, event.ID), token, map[string]interface{}{
			"description":  "Taxi",
			"amount":       20.0,
			"currency":     "USD",
			"date":         "2023-06-04T09:00:00Z",
			"paid_by":      "outsider",
			"participants": []string{"user1", "user2"},
		})
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
	})
}

func TestSettlementFlow(t *testing.T) {
	baseURL, token := setupTestServer(t)
	event := createEvent(t, baseURL, token)

	t.Run("record and list", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/events/%s/settlements", baseURL, event.ID), token, map[string]interface{}{
			"from_user_id": "user2",
			"to_user_id":   "user1",
			"amount":       100.0,
			"note":         "dinner",
		})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("record settlement: expected 201, got %d", resp.StatusCode)
		}
		var settlement models.Settlement
		decodeBody(t, resp, &settlement)
		if settlement.CreatedBy == "" {
			t.Error("expected CreatedBy to be filled from the session")
		}

		resp = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/events/%s/settlements", baseURL, event.ID), token, nil)
		var settlements []models.Settlement
		decodeBody(t, resp, &settlements)
		if len(settlements) != 1 {
			t.Fatalf("expected 1 settlement, got %d", len(settlements))
		}
	})

	t.Run("self settlement rejected", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/events/%s/settlements", baseURL, event.ID), token, map[string]interface{}{
			"from_user_id": "user1",
			"to_user_id":   "user1",
			"amount":       10.0,
		})
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
	})

	t.Run("unknown event is 404", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, baseURL+"/api/events/no-such-event/balances", token, nil)
		resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("expected 404, got %d", resp.StatusCode)
		}
	})
}
