// Package analysis computes derived fight metrics from chronological bout
// histories. Every computation is a pure function of its inputs: identical
// histories always produce identical results, so outputs are reproducible
// and cacheable.
package analysis

// Default heuristic constants. All of them are tunable via options.
const (
	defaultWindow           = 5
	defaultStrongTrendPP    = 10.0
	defaultModerateTrendPP  = 5.0
	defaultOccasionMarginPP = 10.0
	defaultConfidenceBase   = 0.5
	defaultGapWeight        = 0.05
	defaultPerOpponentCeil  = 0.1
	defaultMaxConfidence    = 0.9

	// trendSampleSize is how many rolling points are averaged at each end
	// of the career when deriving the trend direction.
	trendSampleSize = 3
	recentFormSize  = 5

	minWindow = 2
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithWindow sets the default rolling-window size used when a caller does
// not request one.
func WithWindow(w int) Option {
	return func(e *Engine) {
		if w >= minWindow {
			e.window = w
		}
	}
}

// WithTrendThresholds sets the strong and moderate trend thresholds in
// percentage points.
func WithTrendThresholds(strongPP, moderatePP float64) Option {
	return func(e *Engine) {
		if strongPP > moderatePP && moderatePP > 0 {
			e.strongPP = strongPP
			e.moderatePP = moderatePP
		}
	}
}

// WithOccasionMargin sets the title-fight win-rate margin, in percentage
// points, above which a fighter is flagged as rising to the occasion.
func WithOccasionMargin(marginPP float64) Option {
	return func(e *Engine) {
		if marginPP > 0 {
			e.occasionPP = marginPP
		}
	}
}

// WithConfidenceModel sets the common-opponent confidence parameters: the
// no-signal base, the weight applied to the score gap, the per-shared-opponent
// ceiling increment, and the hard maximum.
func WithConfidenceModel(base, gapWeight, perOpponent, maximum float64) Option {
	return func(e *Engine) {
		if base > 0 && base < maximum && maximum <= 1 && gapWeight > 0 && perOpponent > 0 {
			e.confBase = base
			e.gapWeight = gapWeight
			e.perOpponent = perOpponent
			e.maxConf = maximum
		}
	}
}

// Engine holds the heuristic constants shared by the metric computations.
// The zero value is not usable; construct with NewEngine.
type Engine struct {
	window      int
	strongPP    float64
	moderatePP  float64
	occasionPP  float64
	confBase    float64
	gapWeight   float64
	perOpponent float64
	maxConf     float64
}

// NewEngine creates a metric engine with default thresholds.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		window:      defaultWindow,
		strongPP:    defaultStrongTrendPP,
		moderatePP:  defaultModerateTrendPP,
		occasionPP:  defaultOccasionMarginPP,
		confBase:    defaultConfidenceBase,
		gapWeight:   defaultGapWeight,
		perOpponent: defaultPerOpponentCeil,
		maxConf:     defaultMaxConfidence,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Window returns the engine's default rolling-window size.
func (e *Engine) Window() int { return e.window }
