package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/ringside/internal/adapters/providers"
	"github.com/okian/ringside/internal/adapters/repository"
	"github.com/okian/ringside/internal/domain/analysis"
	"github.com/okian/ringside/internal/domain/intent"
	"github.com/okian/ringside/internal/domain/model"
	"github.com/okian/ringside/internal/domain/types"
	"github.com/okian/ringside/pkg/logger"
	"github.com/okian/ringside/pkg/metrics"
)

// FighterProfileData is the lookup dispatch payload for one fighter.
type FighterProfileData struct {
	Fighter model.Fighter `json:"fighter"`
	Titles  []model.Title `json:"titles,omitempty"`
}

// CompareData is the compare dispatch payload: the stat sheet plus any
// head to head history the two fighters share.
type CompareData struct {
	Stats      analysis.StatComparison `json:"stats"`
	HeadToHead []model.Fight           `json:"head_to_head,omitempty"`
}

// CommonOpponentsData pairs the indirect comparison with the shared
// opponents' own profiles.
type CommonOpponentsData struct {
	Comparison analysis.ComparisonResult `json:"comparison"`
	Opponents  []model.Fighter           `json:"opponents,omitempty"`
}

// Query runs the full pipeline for one natural-language query. Every
// planned capability is dispatched concurrently under its own deadline;
// a slow or failing dispatch becomes an unavailable marker instead of
// sinking the whole response. window overrides the engine's rolling-window
// size for trajectory dispatches; zero selects the default.
func (s *Service) Query(ctx context.Context, query string, fighters []string, window int) (types.Response, error) {
	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()
	if !started {
		return types.Response{}, ErrNotStarted
	}

	metrics.RecordQuery()

	if len(fighters) == 0 {
		fighters = intent.Subjects(query)
	}
	plan := s.classifier.Classify(query)

	resp := types.Response{
		QueryID:  uuid.NewString(),
		Query:    query,
		Fighters: fighters,
		Results:  s.dispatchAll(ctx, plan, query, fighters, window),
	}

	s.logger.Debug(ctx, "query answered",
		logger.String("queryID", resp.QueryID),
		logger.Int("dispatches", len(resp.Results)),
	)
	return resp, nil
}

// dispatchAll fans the plan out, one goroutine per capability, and waits
// for every dispatch to settle.
func (s *Service) dispatchAll(ctx context.Context, plan []types.Capability, query string, fighters []string, window int) map[types.Capability]types.DispatchResult {
	results := make(map[types.Capability]types.DispatchResult, len(plan))

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, capability := range plan {
		wg.Add(1)
		go func(capability types.Capability) {
			defer wg.Done()

			start := time.Now()
			dctx, cancel := context.WithTimeout(ctx, s.dispatchTimeout)
			res := s.dispatchCached(dctx, capability, query, fighters, window)
			cancel()
			res.Elapsed = time.Since(start).Milliseconds()

			metrics.RecordDispatch(string(capability), string(res.Status))
			metrics.RecordDispatchLatency(string(capability), float64(res.Elapsed))

			mu.Lock()
			results[capability] = res
			mu.Unlock()
		}(capability)
	}
	wg.Wait()

	return results
}

// cacheable capabilities are pure functions of the stored fight history.
// Provider-backed capabilities serve live data and are never cached.
func cacheable(capability types.Capability) bool {
	switch capability {
	case types.CapabilityLookup,
		types.CapabilityTrajectory,
		types.CapabilityCommonOpponents,
		types.CapabilityTitlePerformance,
		types.CapabilityCompare,
		types.CapabilityTimeline:
		return true
	default:
		return false
	}
}

func cacheKey(capability types.Capability, query string, fighters []string, window int) string {
	subject := strings.Join(fighters, "|")
	if subject == "" {
		subject = query
	}
	return string(capability) + "|" + strconv.Itoa(window) + "|" + intent.Normalize(subject)
}

func (s *Service) dispatchCached(ctx context.Context, capability types.Capability, query string, fighters []string, window int) types.DispatchResult {
	if !cacheable(capability) {
		return s.dispatch(ctx, capability, query, fighters, window)
	}

	key := cacheKey(capability, query, fighters, window)
	if res, ok := s.results.Get(ctx, key); ok {
		metrics.RecordCacheHit()
		return res
	}
	metrics.RecordCacheMiss()

	res := s.dispatch(ctx, capability, query, fighters, window)
	// Unavailable and invalid outcomes are transient or caller mistakes;
	// caching them would pin a bad answer past the fault.
	if res.Status == types.StatusOK || res.Status == types.StatusNotFound || res.Status == types.StatusInsufficientData {
		s.results.Put(ctx, key, res)
		metrics.UpdateCacheSize(s.results.Size())
	}
	return res
}

func (s *Service) dispatch(ctx context.Context, capability types.Capability, query string, fighters []string, window int) types.DispatchResult {
	switch capability {
	case types.CapabilityLookup:
		return s.dispatchLookup(ctx, query, fighters)
	case types.CapabilityTrajectory:
		return s.dispatchTrajectory(ctx, fighters, window)
	case types.CapabilityCommonOpponents:
		return s.dispatchCommonOpponents(ctx, fighters)
	case types.CapabilityTitlePerformance:
		return s.dispatchTitlePerformance(ctx, fighters)
	case types.CapabilityCompare:
		return s.dispatchCompare(ctx, fighters)
	case types.CapabilityTimeline:
		return s.dispatchTimeline(ctx, fighters)
	case types.CapabilityUpcoming:
		return s.dispatchUpcoming(ctx, fighters)
	case types.CapabilityOdds, types.CapabilityNews, types.CapabilitySentiment:
		return s.dispatchProvider(ctx, capability, query, fighters)
	default:
		return failure(types.StatusInvalid, "unknown capability "+string(capability))
	}
}

func (s *Service) dispatchLookup(ctx context.Context, query string, fighters []string) types.DispatchResult {
	names := fighters
	if len(names) == 0 {
		name := strings.TrimSpace(query)
		if name == "" {
			return failure(types.StatusInvalid, "lookup needs a fighter name")
		}
		names = []string{name}
	}

	profiles := make([]FighterProfileData, 0, len(names))
	for _, name := range names {
		fighter, titles, err := s.FighterProfile(ctx, name)
		if err != nil {
			return s.failed(ctx, "lookup", err)
		}
		profiles = append(profiles, FighterProfileData{Fighter: fighter, Titles: titles})
	}
	return success(profiles)
}

func (s *Service) dispatchTrajectory(ctx context.Context, fighters []string, window int) types.DispatchResult {
	if len(fighters) == 0 {
		return failure(types.StatusInvalid, "trajectory needs a fighter")
	}
	fighter, bouts, err := s.fighterWithHistory(ctx, fighters[0])
	if err != nil {
		return s.failed(ctx, "trajectory", err)
	}
	result, err := s.engine.Trajectory(fighter.Name, bouts, window)
	if err != nil {
		return s.failed(ctx, "trajectory", err)
	}
	return success(result)
}

func (s *Service) dispatchCommonOpponents(ctx context.Context, fighters []string) types.DispatchResult {
	if len(fighters) < 2 {
		return failure(types.StatusInvalid, "common opponent comparison needs two fighters")
	}
	a, boutsA, err := s.fighterWithHistory(ctx, fighters[0])
	if err != nil {
		return s.failed(ctx, "common opponents", err)
	}
	b, boutsB, err := s.fighterWithHistory(ctx, fighters[1])
	if err != nil {
		return s.failed(ctx, "common opponents", err)
	}
	result, err := s.engine.CommonOpponents(a.Name, boutsA, b.Name, boutsB)
	if err != nil {
		return s.failed(ctx, "common opponents", err)
	}
	shared, err := s.store.SharedOpponents(ctx, a.ID, b.ID)
	if err != nil {
		return s.failed(ctx, "common opponents", err)
	}
	return success(CommonOpponentsData{Comparison: result, Opponents: shared})
}

func (s *Service) dispatchTitlePerformance(ctx context.Context, fighters []string) types.DispatchResult {
	if len(fighters) == 0 {
		return failure(types.StatusInvalid, "title performance needs a fighter")
	}
	fighter, bouts, err := s.fighterWithHistory(ctx, fighters[0])
	if err != nil {
		return s.failed(ctx, "title performance", err)
	}
	titles, err := s.store.Titles(ctx, fighter.ID)
	if err != nil {
		return s.failed(ctx, "title performance", err)
	}
	result, err := s.engine.TitlePerformance(fighter.Name, bouts, titles, time.Now().UTC())
	if err != nil {
		return s.failed(ctx, "title performance", err)
	}
	return success(result)
}

func (s *Service) dispatchCompare(ctx context.Context, fighters []string) types.DispatchResult {
	if len(fighters) < 2 {
		return failure(types.StatusInvalid, "comparison needs two fighters")
	}
	a, titlesA, err := s.FighterProfile(ctx, fighters[0])
	if err != nil {
		return s.failed(ctx, "compare", err)
	}
	b, titlesB, err := s.FighterProfile(ctx, fighters[1])
	if err != nil {
		return s.failed(ctx, "compare", err)
	}
	headToHead, err := s.store.FightsBetween(ctx, a.ID, b.ID)
	if err != nil {
		return s.failed(ctx, "compare", err)
	}
	return success(CompareData{
		Stats:      s.engine.CompareStats(a, b, titlesA, titlesB),
		HeadToHead: headToHead,
	})
}

func (s *Service) dispatchTimeline(ctx context.Context, fighters []string) types.DispatchResult {
	if len(fighters) == 0 {
		return failure(types.StatusInvalid, "timeline needs a fighter")
	}
	fighter, bouts, err := s.fighterWithHistory(ctx, fighters[0])
	if err != nil {
		return s.failed(ctx, "timeline", err)
	}
	titles, err := s.store.Titles(ctx, fighter.ID)
	if err != nil {
		return s.failed(ctx, "timeline", err)
	}
	return success(s.engine.Timeline(fighter, bouts, titles))
}

func (s *Service) dispatchUpcoming(ctx context.Context, fighters []string) types.DispatchResult {
	fights, err := s.store.UpcomingFights(ctx, s.upcomingWindow, "")
	if err != nil {
		return s.failed(ctx, "upcoming", err)
	}
	if len(fighters) > 0 {
		fights = filterByFighters(fights, fighters)
	}
	return success(fights)
}

func (s *Service) dispatchProvider(ctx context.Context, capability types.Capability, query string, fighters []string) types.DispatchResult {
	p, ok := s.providers[capability]
	if !ok {
		// Absent capabilities degrade to an explicit not_found entry, they
		// are never silently dropped from the plan.
		return failure(types.StatusNotFound, "no provider registered for "+string(capability))
	}

	start := time.Now()
	data, err := p.Fetch(ctx, providers.Request{Fighters: fighters, Query: query})
	metrics.RecordProviderLatency(string(capability), float64(time.Since(start).Milliseconds()))
	if err != nil {
		res := s.failed(ctx, string(capability), err)
		metrics.RecordProviderRequest(string(capability), string(res.Status))
		return res
	}
	metrics.RecordProviderRequest(string(capability), string(types.StatusOK))
	return success(data)
}

func (s *Service) fighterWithHistory(ctx context.Context, name string) (model.Fighter, []model.Bout, error) {
	fighter, err := s.store.FindFighter(ctx, name)
	if err != nil {
		return model.Fighter{}, nil, err
	}
	bouts, err := s.store.FightHistory(ctx, fighter.ID)
	if err != nil {
		return model.Fighter{}, nil, err
	}
	return fighter, bouts, nil
}

func filterByFighters(fights []model.Fight, fighters []string) []model.Fight {
	var out []model.Fight
	for _, f := range fights {
		for _, name := range fighters {
			needle := strings.ToLower(name)
			if strings.Contains(strings.ToLower(f.FighterA), needle) ||
				strings.Contains(strings.ToLower(f.FighterB), needle) {
				out = append(out, f)
				break
			}
		}
	}
	return out
}

func success(data any) types.DispatchResult {
	return types.DispatchResult{Status: types.StatusOK, Data: data}
}

func failure(status types.Status, msg string) types.DispatchResult {
	return types.DispatchResult{Status: status, Error: msg}
}

// failed maps an operation error onto a dispatch status. Missing fighters
// and thin histories are normal outcomes; everything infrastructural
// becomes unavailable so the caller can tell the difference.
func (s *Service) failed(ctx context.Context, op string, err error) types.DispatchResult {
	status := types.StatusUnavailable
	switch {
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, providers.ErrNoData):
		status = types.StatusNotFound
	case errors.Is(err, analysis.ErrInsufficientData):
		status = types.StatusInsufficientData
	case errors.Is(err, analysis.ErrInvalidParameter), errors.Is(err, repository.ErrInvalidLimit):
		status = types.StatusInvalid
	case errors.Is(err, context.DeadlineExceeded):
		return types.DispatchResult{Status: types.StatusUnavailable, Error: op + " timed out"}
	case errors.Is(err, providers.ErrSourceUnavailable):
		// counted by the provider metrics, nothing wrong with the store
	default:
		metrics.RecordStoreError()
	}

	if status == types.StatusUnavailable {
		s.logger.Warn(ctx, "dispatch failed",
			logger.String("op", op),
			logger.Error(err),
		)
	}
	return types.DispatchResult{Status: status, Error: err.Error()}
}
