package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/findingfriends/internal/services/session"
	"github.com/mcoot/findingfriends/internal/services/stats"
	"github.com/mcoot/findingfriends/internal/web/handler"
	"github.com/mcoot/findingfriends/internal/web/live"
	"github.com/mcoot/findingfriends/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger            *slog.Logger
	SessionController *session.Controller
	StatsService      *stats.Service
	HubManager        *live.HubManager
	PublicURL         string // Base URL encoded in QR codes; empty uses the request host
	StaticDir         string // Path to static files directory
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	hubManager := cfg.HubManager
	if hubManager == nil {
		hubManager = live.NewHubManager(cfg.Logger)
	}

	homeHandler := handler.NewHomeHandler(cfg.SessionController)
	sessionHandler := handler.NewSessionHandler(cfg.SessionController, cfg.StatsService)
	statsHandler := handler.NewStatsHandler(cfg.SessionController, cfg.StatsService)
	liveHandler := handler.NewLiveHandler(cfg.SessionController, hubManager, cfg.Logger)
	qrHandler := handler.NewQRHandler(cfg.SessionController, cfg.PublicURL, cfg.Logger)

	if cfg.StaticDir != "" {
		staticHandler := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
		r.PathPrefix("/static/").Handler(staticHandler)
	}

	// Long-lived feeds and images skip the flash middleware
	r.HandleFunc("/sessions/{date}/events", liveHandler.Events).Methods(http.MethodGet)
	r.HandleFunc("/sessions/{date}/ws", liveHandler.Websocket).Methods(http.MethodGet)
	r.HandleFunc("/sessions/{date}/qr.png", qrHandler.Code).Methods(http.MethodGet)

	pages := r.NewRoute().Subrouter()
	pages.Use(middleware.Flash())
	pages.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	pages.HandleFunc("/stats", statsHandler.View).Methods(http.MethodGet)
	pages.HandleFunc("/sessions/{date}", sessionHandler.View).Methods(http.MethodGet)
	pages.HandleFunc("/sessions/{date}/players/{index:[0-9]+}", sessionHandler.RenamePlayer).Methods(http.MethodPost)
	pages.HandleFunc("/sessions/{date}/rounds", sessionHandler.AddRound).Methods(http.MethodPost)

	return r
}
