package handler

import (
	"net/http"

	"github.com/mcoot/findingfriends/internal/services/session"
	"github.com/mcoot/findingfriends/internal/services/stats"
	"github.com/mcoot/findingfriends/internal/web/templates/pages"
)

// StatsHandler handles the all-time leaderboard
type StatsHandler struct {
	controller   *session.Controller
	statsService *stats.Service
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(controller *session.Controller, statsService *stats.Service) *StatsHandler {
	return &StatsHandler{
		controller:   controller,
		statsService: statsService,
	}
}

// View renders the all-time leaderboard
func (h *StatsHandler) View(w http.ResponseWriter, r *http.Request) {
	summary, err := h.statsService.AllTimeSummary(r.Context())
	if err != nil {
		renderError(w, r, h.controller, err)
		return
	}

	render(w, r, http.StatusOK, pages.Stats(pages.StatsData{
		PageData: pageData(r, h.controller, "All time"),
		Summary:  summary,
	}))
}
