package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/findingfriends/internal/api/handler"
	"github.com/mcoot/findingfriends/internal/api/middleware"
	"github.com/mcoot/findingfriends/internal/api/response"
	"github.com/mcoot/findingfriends/internal/services/session"
	"github.com/mcoot/findingfriends/internal/services/stats"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger            *slog.Logger
	SessionController *session.Controller
	StatsService      *stats.Service
	// RecentLimit is the default page size for /records
	RecentLimit int
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	sessionHandler := handler.NewSessionHandler(cfg.SessionController, cfg.StatsService)
	statsHandler := handler.NewStatsHandler(cfg.StatsService, cfg.SessionController, cfg.RecentLimit)

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)
	api.Use(middleware.RequireJSON)

	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Session routes
	sessions := api.PathPrefix("/sessions").Subrouter()
	sessions.HandleFunc("", sessionHandler.List).Methods(http.MethodGet)
	sessions.HandleFunc("/{date}", sessionHandler.Get).Methods(http.MethodGet)
	sessions.HandleFunc("/{date}/players/{index}", sessionHandler.RenamePlayer).Methods(http.MethodPut)
	sessions.HandleFunc("/{date}/rounds", sessionHandler.AddRound).Methods(http.MethodPost)
	sessions.HandleFunc("/{date}/standings", sessionHandler.Standings).Methods(http.MethodGet)

	// Aggregates
	api.HandleFunc("/stats", statsHandler.AllTime).Methods(http.MethodGet)
	api.HandleFunc("/records", statsHandler.Records).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	response.OK(w, response.Health{Status: "ok"})
}
