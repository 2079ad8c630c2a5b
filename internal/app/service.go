// Package service provides the core business service that implements
// the dependencies required by the HTTP API. It owns the query pipeline:
// classify, plan, dispatch, synthesize.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/okian/ringside/internal/adapters/providers"
	"github.com/okian/ringside/internal/adapters/repository"
	"github.com/okian/ringside/internal/domain/analysis"
	"github.com/okian/ringside/internal/domain/cache"
	"github.com/okian/ringside/internal/domain/intent"
	"github.com/okian/ringside/internal/domain/model"
	"github.com/okian/ringside/internal/domain/types"
	"github.com/okian/ringside/pkg/logger"
)

// Default service configuration constants.
const (
	defaultDispatchTimeout = 5 * time.Second
	defaultUpcomingWindow  = 90 * 24 * time.Hour
	defaultCacheSize       = 1024
)

// Service implements the API dependencies for the fight query system.
type Service struct {
	mu sync.RWMutex

	// Core components
	store      repository.Store
	classifier intent.Classifier
	engine     *analysis.Engine
	results    cache.Cache
	providers  map[types.Capability]providers.Provider

	// Configuration
	dispatchTimeout time.Duration
	upcomingWindow  time.Duration
	cacheSize       int
	engineOpts      []analysis.Option

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the fight record store. Required.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithClassifier replaces the default keyword classifier.
func WithClassifier(c intent.Classifier) Option {
	return func(s *Service) {
		if c != nil {
			s.classifier = c
		}
	}
}

// WithEngineOptions configures the metric engine built at start.
func WithEngineOptions(opts ...analysis.Option) Option {
	return func(s *Service) {
		s.engineOpts = append(s.engineOpts, opts...)
	}
}

// WithCacheSize bounds the result cache.
func WithCacheSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.cacheSize = size
		}
	}
}

// WithDispatchTimeout sets the per-dispatch deadline. A dispatch that
// exceeds it is reported unavailable while its siblings still answer.
func WithDispatchTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.dispatchTimeout = d
		}
	}
}

// WithUpcomingWindow sets how far ahead schedule queries look.
func WithUpcomingWindow(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.upcomingWindow = d
		}
	}
}

// WithProviders registers external data providers, one per capability.
func WithProviders(ps ...providers.Provider) Option {
	return func(s *Service) {
		for _, p := range ps {
			if p != nil {
				s.providers[p.Name()] = p
			}
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		providers:       make(map[types.Capability]providers.Provider),
		dispatchTimeout: defaultDispatchTimeout,
		upcomingWindow:  defaultUpcomingWindow,
		cacheSize:       defaultCacheSize,
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.store == nil {
		return ErrNoStore
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting fight query service...")

	if s.classifier == nil {
		s.classifier = intent.NewKeywordClassifier()
	}
	if s.engine == nil {
		s.engine = analysis.NewEngine(s.engineOpts...)
	}
	if s.results == nil {
		s.results = cache.New(cache.WithMaxSize(s.cacheSize))
	}

	s.started = true
	s.logger.Info(ctx, "fight query service started",
		logger.Int("providers", len(s.providers)),
		logger.Int("cacheSize", s.cacheSize),
		logger.Any("dispatchTimeout", s.dispatchTimeout),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping fight query service...")

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn(context.Background(), "closing fight store", logger.Error(err))
		}
	}

	s.started = false
	s.logger.Info(context.Background(), "fight query service stopped")
}

// Capabilities lists every capability the service can dispatch: the
// built-in store-backed set plus whatever providers are registered.
func (s *Service) Capabilities() []types.Capability {
	caps := []types.Capability{
		types.CapabilityLookup,
		types.CapabilityTrajectory,
		types.CapabilityCommonOpponents,
		types.CapabilityTitlePerformance,
		types.CapabilityCompare,
		types.CapabilityTimeline,
		types.CapabilityUpcoming,
	}
	for _, c := range []types.Capability{types.CapabilityOdds, types.CapabilityNews, types.CapabilitySentiment} {
		if _, ok := s.providers[c]; ok {
			caps = append(caps, c)
		}
	}
	return caps
}

// FighterProfile resolves a fighter by name along with their title reigns.
func (s *Service) FighterProfile(ctx context.Context, name string) (model.Fighter, []model.Title, error) {
	fighter, err := s.store.FindFighter(ctx, name)
	if err != nil {
		return model.Fighter{}, nil, err
	}
	titles, err := s.store.Titles(ctx, fighter.ID)
	if err != nil {
		return model.Fighter{}, nil, err
	}
	return fighter, titles, nil
}

// SearchFighters proxies a filtered fighter search.
func (s *Service) SearchFighters(ctx context.Context, f repository.SearchFilter) ([]model.Fighter, error) {
	return s.store.SearchFighters(ctx, f)
}

// Schedule returns scheduled fights inside the configured window, or a
// narrower one when within is positive.
func (s *Service) Schedule(ctx context.Context, within time.Duration, weightClass string) ([]model.Fight, error) {
	if within <= 0 || within > s.upcomingWindow {
		within = s.upcomingWindow
	}
	return s.store.UpcomingFights(ctx, within, weightClass)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":           s.started,
		"dispatchTimeoutMs": s.dispatchTimeout.Milliseconds(),
		"providers":         len(s.providers),
	}
	if s.started {
		stats["capabilities"] = s.Capabilities()
		stats["cachedResults"] = s.results.Size()
		stats["analysisWindow"] = s.engine.Window()
	}
	return stats
}
