// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load layers file and env.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DBPath points at the sqlite fight database.
	DBPath string `koanf:"db_path"`

	// AnalysisWindow is the rolling win-rate window in fights.
	AnalysisWindow int `koanf:"analysis_window"`

	// StrongTrendPP and ModerateTrendPP are the trend classification
	// thresholds in percentage points.
	StrongTrendPP   float64 `koanf:"strong_trend_pp"`
	ModerateTrendPP float64 `koanf:"moderate_trend_pp"`

	// OccasionMarginPP is the title-fight overperformance margin.
	OccasionMarginPP float64 `koanf:"occasion_margin_pp"`

	// Confidence model for common-opponent comparisons.
	ConfidenceBase        float64 `koanf:"confidence_base"`
	ConfidenceGapWeight   float64 `koanf:"confidence_gap_weight"`
	ConfidencePerOpponent float64 `koanf:"confidence_per_opponent"`
	ConfidenceMax         float64 `koanf:"confidence_max"`

	// DispatchTimeoutMS bounds each capability dispatch.
	DispatchTimeoutMS int `koanf:"dispatch_timeout_ms"`

	// CacheSize bounds the result cache.
	CacheSize int `koanf:"cache_size"`

	// UpcomingWindowDays is how far ahead schedule queries look.
	UpcomingWindowDays int `koanf:"upcoming_window_days"`

	// External provider credentials. Empty keys keep the matching
	// capability registered but every dispatch reports unavailable.
	OddsAPIKey         string `koanf:"odds_api_key"`
	NewsAPIKey         string `koanf:"news_api_key"`
	RedditClientID     string `koanf:"reddit_client_id"`
	RedditClientSecret string `koanf:"reddit_client_secret"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:              "info",
		Addr:                  ":9080",
		DBPath:                "boxing.db",
		AnalysisWindow:        5,
		StrongTrendPP:         10,
		ModerateTrendPP:       5,
		OccasionMarginPP:      10,
		ConfidenceBase:        0.5,
		ConfidenceGapWeight:   0.05,
		ConfidencePerOpponent: 0.1,
		ConfidenceMax:         0.9,
		DispatchTimeoutMS:     5000,
		CacheSize:             1024,
		UpcomingWindowDays:    90,
	}
}
