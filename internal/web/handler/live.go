package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/findingfriends/internal/services/session"
	"github.com/mcoot/findingfriends/internal/web/live"
)

// LiveHandler serves the live feeds for a session
type LiveHandler struct {
	controller *session.Controller
	hubManager *live.HubManager
	logger     *slog.Logger
}

// NewLiveHandler creates a new LiveHandler
func NewLiveHandler(controller *session.Controller, hubManager *live.HubManager, logger *slog.Logger) *LiveHandler {
	return &LiveHandler{
		controller: controller,
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "live-handler")),
	}
}

// Events streams session events over SSE
func (h *LiveHandler) Events(w http.ResponseWriter, r *http.Request) {
	date, err := resolveDate(h.controller, mux.Vars(r)["date"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	live.ServeSSE(w, r, h.hubManager.GetOrCreateHub(date))
}

// Websocket streams session events as JSON over a websocket
func (h *LiveHandler) Websocket(w http.ResponseWriter, r *http.Request) {
	date, err := resolveDate(h.controller, mux.Vars(r)["date"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := live.ServeWebsocket(w, r, h.hubManager.GetOrCreateHub(date)); err != nil {
		h.logger.Warn("websocket upgrade failed",
			slog.String("date", string(date)),
			slog.Any("error", err))
	}
}
