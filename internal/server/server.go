// Package server exposes the JustSplit services over a JSON HTTP API.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cybereco/justsplit/internal/auth"
	"github.com/cybereco/justsplit/internal/middleware"
	"github.com/cybereco/justsplit/internal/service"
)

// Server holds the services and builds the HTTP router.
type Server struct {
	authService       *service.AuthService
	eventService      *service.EventService
	expenseService    *service.ExpenseService
	settlementService *service.SettlementService
	jwtManager        *auth.JWTManager
}

// New creates a Server over the given services.
func New(
	authService *service.AuthService,
	eventService *service.EventService,
	expenseService *service.ExpenseService,
	settlementService *service.SettlementService,
	jwtManager *auth.JWTManager,
) *Server {
	return &Server{
		authService:       authService,
		eventService:      eventService,
		expenseService:    expenseService,
		settlementService: settlementService,
		jwtManager:        jwtManager,
	}
}

// Router builds the chi router with middleware and all routes registered.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Metrics(routePattern))
	r.Use(middleware.Logging)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(s.jwtManager))

			r.Post("/events", s.handleCreateEvent)
			r.Get("/events", s.handleListEvents)
			r.Get("/events/{eventID}", s.handleGetEvent)
			r.Get("/events/{eventID}/timeline", s.handleTimeline)
			r.Get("/events/{eventID}/summary", s.handleSummary)
			r.Get("/events/{eventID}/balances", s.handleBalances)

			r.Post("/events/{eventID}/expenses", s.handleCreateExpense)
			r.Get("/events/{eventID}/expenses", s.handleListExpenses)
			r.Post("/expenses/{expenseID}/settle", s.handleSettleExpense)

			r.Post("/events/{eventID}/settlements", s.handleRecordSettlement)
			r.Get("/events/{eventID}/settlements", s.handleListSettlements)
		})
	})

	return r
}

// routePattern reports the matched chi route template for metric labels.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}
