package api

import (
	"encoding/json"
	"net/http"
)

// QueryHandler handles natural-language query requests.
type QueryHandler struct {
	deps Dependencies
}

// NewQueryHandler creates a new query handler.
func NewQueryHandler(deps Dependencies) *QueryHandler {
	return &QueryHandler{deps: deps}
}

// HandleQuery handles POST /query requests.
func (h *QueryHandler) HandleQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}

	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", ErrBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err)
		return
	}

	resp, err := h.deps.Query(r.Context(), req.Query, req.Fighters, req.Window)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "unavailable", ErrUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
