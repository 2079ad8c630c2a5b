package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/okian/ringside/internal/domain/model"
)

// ScheduleHandler handles upcoming fight requests.
type ScheduleHandler struct {
	deps Dependencies
}

// NewScheduleHandler creates a new schedule handler.
func NewScheduleHandler(deps Dependencies) *ScheduleHandler {
	return &ScheduleHandler{deps: deps}
}

// HandleSchedule handles GET /schedule requests. Supported query
// parameters: days (look-ahead horizon), weight_class.
func (h *ScheduleHandler) HandleSchedule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}

	var within time.Duration
	if raw := r.URL.Query().Get("days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days <= 0 {
			writeError(w, http.StatusBadRequest, "invalid_days", ErrBadRequest)
			return
		}
		within = time.Duration(days) * 24 * time.Hour
	}

	fights, err := h.deps.Schedule(r.Context(), within, r.URL.Query().Get("weight_class"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "schedule_failed", nil)
		return
	}
	if fights == nil {
		fights = []model.Fight{}
	}
	writeJSON(w, http.StatusOK, fights)
}
