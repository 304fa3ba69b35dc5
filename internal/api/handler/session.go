package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/findingfriends/internal/api/request"
	"github.com/mcoot/findingfriends/internal/api/response"
	"github.com/mcoot/findingfriends/internal/model"
	"github.com/mcoot/findingfriends/internal/services/session"
	"github.com/mcoot/findingfriends/internal/services/stats"
)

// TodayAlias may be used in place of a date in session paths
const TodayAlias = "today"

// SessionHandler handles session, roster and round endpoints
type SessionHandler struct {
	controller   *session.Controller
	statsService *stats.Service
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(controller *session.Controller, statsService *stats.Service) *SessionHandler {
	return &SessionHandler{
		controller:   controller,
		statsService: statsService,
	}
}

// sessionDate reads the {date} path variable, resolving the today alias
func (h *SessionHandler) sessionDate(r *http.Request) (model.SessionDate, error) {
	raw := mux.Vars(r)["date"]
	if raw == TodayAlias {
		return h.controller.Today(), nil
	}
	return model.ParseSessionDate(raw)
}

// List handles GET /api/v1/sessions
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.controller.ListSessions(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.OK(w, response.SessionListFromModel(h.controller.Today(), sessions))
}

// Get handles GET /api/v1/sessions/{date}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	date, err := h.sessionDate(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	s, err := h.controller.GetOrCreate(r.Context(), date)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.OK(w, response.SessionFromModel(s, h.controller.IsEditable(date)))
}

// RenamePlayer handles PUT /api/v1/sessions/{date}/players/{index}
func (h *SessionHandler) RenamePlayer(w http.ResponseWriter, r *http.Request) {
	date, err := h.sessionDate(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		WriteError(w, NewInvalidRequestError("Player index must be an integer"))
		return
	}

	var req request.RenamePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	s, err := h.controller.Rename(r.Context(), date, index, req.Name)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.OK(w, response.SessionFromModel(s, h.controller.IsEditable(date)))
}

// AddRound handles POST /api/v1/sessions/{date}/rounds
func (h *SessionHandler) AddRound(w http.ResponseWriter, r *http.Request) {
	date, err := h.sessionDate(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.AddRoundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}
	if req.Mode == "" {
		WriteError(w, NewInvalidRequestError("mode is required"))
		return
	}
	if req.Host == nil {
		WriteError(w, NewInvalidRequestError("host is required"))
		return
	}
	if req.OpponentScore == nil {
		WriteError(w, NewInvalidRequestError("opponent_score is required"))
		return
	}

	round, err := h.controller.AppendRound(r.Context(), date, model.RoundInput{
		Mode:          model.Mode(req.Mode),
		HostIndex:     *req.Host,
		FriendIndices: req.Friends,
		Bid:           req.Bid,
		OpponentScore: *req.OpponentScore,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Created(w, response.RoundFromModel(round))
}

// Standings handles GET /api/v1/sessions/{date}/standings
func (h *SessionHandler) Standings(w http.ResponseWriter, r *http.Request) {
	date, err := h.sessionDate(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	summary, err := h.statsService.SessionSummary(r.Context(), date)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.OK(w, response.Standings{
		Date:     string(date),
		Editable: h.controller.IsEditable(date),
		Summary:  response.SummaryFromModel(summary),
	})
}
