// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/okian/ringside/internal/adapters/repository"
	"github.com/okian/ringside/internal/domain/model"
	"github.com/okian/ringside/internal/domain/types"
)

// Maximum accepted query length in bytes.
const maxQueryLength = 1024

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Query runs the full classify/dispatch/synthesize pipeline. window
	// overrides the rolling-window size for trajectory dispatches; zero
	// selects the configured default.
	Query(ctx context.Context, query string, fighters []string, window int) (types.Response, error)

	// Read operations expose the fight record store.
	FighterProfile(ctx context.Context, name string) (model.Fighter, []model.Title, error)
	SearchFighters(ctx context.Context, f repository.SearchFilter) ([]model.Fighter, error)
	Schedule(ctx context.Context, within time.Duration, weightClass string) ([]model.Fight, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	queryHandler    *QueryHandler
	fightersHandler *FightersHandler
	scheduleHandler *ScheduleHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		queryHandler:    NewQueryHandler(deps),
		fightersHandler: NewFightersHandler(deps),
		scheduleHandler: NewScheduleHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/query", MetricsMiddleware(s.queryHandler.HandleQuery, "query"))
	mux.HandleFunc("/fighters", MetricsMiddleware(s.fightersHandler.HandleSearch, "fighters"))
	mux.HandleFunc("/fighter/", MetricsMiddleware(s.fightersHandler.HandleProfile, "fighter"))
	mux.HandleFunc("/schedule", MetricsMiddleware(s.scheduleHandler.HandleSchedule, "schedule"))
}

// queryRequest is the POST /query body.
type queryRequest struct {
	Query    string   `json:"query"`
	Fighters []string `json:"fighters,omitempty"`
	Window   int      `json:"window,omitempty"`
}

func (q queryRequest) validate() error {
	switch {
	case strings.TrimSpace(q.Query) == "":
		return errors.New("missing query")
	case len(q.Query) > maxQueryLength:
		return errors.New("query too long")
	case len(q.Fighters) > 2:
		return errors.New("at most two fighters")
	case q.Window < 0:
		return errors.New("negative window")
	}
	for _, f := range q.Fighters {
		if strings.TrimSpace(f) == "" {
			return errors.New("empty fighter name")
		}
	}
	return nil
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
