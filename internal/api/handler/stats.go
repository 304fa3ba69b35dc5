package handler

import (
	"net/http"
	"strconv"

	"github.com/mcoot/findingfriends/internal/api/response"
	"github.com/mcoot/findingfriends/internal/services/session"
	"github.com/mcoot/findingfriends/internal/services/stats"
)

// MaxRecordsLimit caps the records endpoint page size
const MaxRecordsLimit = 100

// StatsHandler handles all-time statistics and archive endpoints
type StatsHandler struct {
	statsService *stats.Service
	controller   *session.Controller
	recentLimit  int
}

// NewStatsHandler creates a new stats handler. recentLimit is the records
// page size used when the caller gives none.
func NewStatsHandler(statsService *stats.Service, controller *session.Controller, recentLimit int) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
		controller:   controller,
		recentLimit:  recentLimit,
	}
}

// AllTime handles GET /api/v1/stats
func (h *StatsHandler) AllTime(w http.ResponseWriter, r *http.Request) {
	summary, err := h.statsService.AllTimeSummary(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.OK(w, response.SummaryFromModel(summary))
}

// Records handles GET /api/v1/records?limit=N
func (h *StatsHandler) Records(w http.ResponseWriter, r *http.Request) {
	limit := h.recentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > MaxRecordsLimit {
			WriteError(w, NewInvalidRequestError("limit must be between 1 and 100"))
			return
		}
		limit = n
	}

	records, err := h.controller.RecentRecords(r.Context(), limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.OK(w, response.RecordListFromArchive(records))
}
