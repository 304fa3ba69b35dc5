package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/findingfriends/internal/model"
	"github.com/mcoot/findingfriends/internal/services/session"
	"github.com/mcoot/findingfriends/internal/services/stats"
	"github.com/mcoot/findingfriends/internal/web/middleware"
	"github.com/mcoot/findingfriends/internal/web/templates/pages"
)

// SessionHandler handles the session page and its forms
type SessionHandler struct {
	controller   *session.Controller
	statsService *stats.Service
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(controller *session.Controller, statsService *stats.Service) *SessionHandler {
	return &SessionHandler{
		controller:   controller,
		statsService: statsService,
	}
}

// View renders a session page
func (h *SessionHandler) View(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["date"]
	if raw == todayAlias {
		http.Redirect(w, r, "/sessions/"+string(h.controller.Today()), http.StatusSeeOther)
		return
	}
	date, err := model.ParseSessionDate(raw)
	if err != nil {
		renderError(w, r, h.controller, err)
		return
	}

	s, err := h.controller.GetOrCreate(r.Context(), date)
	if err != nil {
		renderError(w, r, h.controller, err)
		return
	}

	summary := stats.Summarize(stats.SessionRankings(s), len(s.Rounds))
	summary.SessionCount = 1

	render(w, r, http.StatusOK, pages.Session(pages.SessionData{
		PageData: pageData(r, h.controller, string(date)),
		Session:  s,
		Summary:  summary,
		Editable: h.controller.IsEditable(date),
	}))
}

// RenamePlayer handles the rename form for one seat
func (h *SessionHandler) RenamePlayer(w http.ResponseWriter, r *http.Request) {
	date, err := resolveDate(h.controller, mux.Vars(r)["date"])
	if err != nil {
		renderError(w, r, h.controller, err)
		return
	}
	back := "/sessions/" + string(date)

	if err := r.ParseForm(); err != nil {
		middleware.SetFlash(w, middleware.FlashError, "Invalid form data")
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		middleware.SetFlash(w, middleware.FlashError, "Invalid player")
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	if _, err := h.controller.Rename(r.Context(), date, index, r.FormValue("name")); err != nil {
		middleware.SetFlash(w, middleware.FlashError, flashError(err))
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	middleware.SetFlash(w, middleware.FlashSuccess, "Player renamed")
	http.Redirect(w, r, back, http.StatusSeeOther)
}

// AddRound handles the round entry form
func (h *SessionHandler) AddRound(w http.ResponseWriter, r *http.Request) {
	date, err := resolveDate(h.controller, mux.Vars(r)["date"])
	if err != nil {
		renderError(w, r, h.controller, err)
		return
	}
	back := "/sessions/" + string(date)

	if err := r.ParseForm(); err != nil {
		middleware.SetFlash(w, middleware.FlashError, "Invalid form data")
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	input, err := parseRoundForm(r)
	if err != nil {
		middleware.SetFlash(w, middleware.FlashError, err.Error())
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	round, err := h.controller.AppendRound(r.Context(), date, input)
	if err != nil {
		middleware.SetFlash(w, middleware.FlashError, flashError(err))
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	middleware.SetFlash(w, middleware.FlashSuccess, fmt.Sprintf("Round %d: %s", round.Round, round.Distribution))
	http.Redirect(w, r, back, http.StatusSeeOther)
}

// parseRoundForm reads mode, host, friend, bid and opponent_score fields
func parseRoundForm(r *http.Request) (model.RoundInput, error) {
	input := model.RoundInput{Mode: model.Mode(r.FormValue("mode"))}
	if input.Mode == "" {
		input.Mode = model.ModeNormal
	}

	var err error
	if input.HostIndex, err = strconv.Atoi(r.FormValue("host")); err != nil {
		return input, errors.New("host is required")
	}
	if input.OpponentScore, err = strconv.Atoi(r.FormValue("opponent_score")); err != nil {
		return input, errors.New("opponent points must be a number")
	}
	if raw := r.FormValue("bid"); raw != "" {
		if input.Bid, err = strconv.Atoi(raw); err != nil {
			return input, errors.New("bid must be a number")
		}
	}
	for _, raw := range r.Form["friend"] {
		i, err := strconv.Atoi(raw)
		if err != nil {
			return input, fmt.Errorf("invalid friend %q", raw)
		}
		input.FriendIndices = append(input.FriendIndices, i)
	}
	return input, nil
}
