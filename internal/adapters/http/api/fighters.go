package api

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/okian/ringside/internal/adapters/repository"
	"github.com/okian/ringside/internal/domain/model"
)

// FightersHandler handles fighter search and profile requests.
type FightersHandler struct {
	deps Dependencies
}

// NewFightersHandler creates a new fighters handler.
func NewFightersHandler(deps Dependencies) *FightersHandler {
	return &FightersHandler{deps: deps}
}

// HandleSearch handles GET /fighters requests. Supported query parameters:
// q, weight_class, active, limit.
func (h *FightersHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}

	filter := repository.SearchFilter{
		Query:       r.URL.Query().Get("q"),
		WeightClass: r.URL.Query().Get("weight_class"),
		ActiveOnly:  r.URL.Query().Get("active") == "true",
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			writeError(w, http.StatusBadRequest, "invalid_limit", ErrBadRequest)
			return
		}
		filter.Limit = limit
	}

	fighters, err := h.deps.SearchFighters(r.Context(), filter)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidLimit) {
			writeError(w, http.StatusBadRequest, "invalid_limit", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "search_failed", nil)
		return
	}
	if fighters == nil {
		fighters = []model.Fighter{}
	}
	writeJSON(w, http.StatusOK, fighters)
}

// profileResponse is the GET /fighter/{name} body.
type profileResponse struct {
	Fighter model.Fighter `json:"fighter"`
	Record  string        `json:"record"`
	Titles  []model.Title `json:"titles,omitempty"`
}

// HandleProfile handles GET /fighter/{name} requests. The name segment is
// fuzzy matched the same way query subjects are.
func (h *FightersHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}

	raw := strings.TrimPrefix(r.URL.Path, "/fighter/")
	name, err := url.PathUnescape(raw)
	if err != nil || strings.TrimSpace(name) == "" {
		writeError(w, http.StatusBadRequest, "missing_name", ErrBadRequest)
		return
	}

	fighter, titles, err := h.deps.FighterProfile(r.Context(), name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "fighter_not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "profile_failed", nil)
		return
	}
	writeJSON(w, http.StatusOK, profileResponse{
		Fighter: fighter,
		Record:  fighter.Record(),
		Titles:  titles,
	})
}
