package analysis

import (
	"fmt"
	"time"

	"github.com/okian/ringside/internal/domain/model"
)

// Trend labels the direction of a fighter's recent form.
type Trend string

// Trend classifications.
const (
	TrendImproving Trend = "Improving"
	TrendDeclining Trend = "Declining"
	TrendStable    Trend = "Stable"
)

// Trend strength labels.
const (
	StrengthStrong     = "Strong"
	StrengthModerate   = "Moderate"
	StrengthConsistent = "Consistent"
)

// WindowPoint is one position of the rolling-window series. EndDate is the
// date of the last bout inside the window.
type WindowPoint struct {
	EndDate         time.Time `json:"end_date"`
	WinRate         float64   `json:"win_rate"`
	KORate          float64   `json:"ko_rate"`
	OpponentQuality float64   `json:"opponent_quality"` // mean opponent wins
}

// PhaseStats aggregates one contiguous third of a career.
type PhaseStats struct {
	Fights      int     `json:"fights"`
	Wins        int     `json:"wins"`
	WinRate     float64 `json:"win_rate"`
	TitleFights int     `json:"title_fights"`
}

// TrajectoryResult describes a fighter's career direction.
type TrajectoryResult struct {
	Fighter     string    `json:"fighter"`
	TotalFights int       `json:"total_fights"`
	Window      int       `json:"window"`
	FirstFight  time.Time `json:"first_fight"`
	LastFight   time.Time `json:"last_fight"`
	YearsActive float64   `json:"years_active"`

	Trend           Trend   `json:"trend"`
	TrendStrength   string  `json:"trend_strength"`
	RecentWinRate   float64 `json:"recent_win_rate"`
	ChangeFromEarly float64 `json:"change_from_early_pp"` // percentage points

	Rolling []WindowPoint `json:"rolling"`

	EarlyPhase PhaseStats `json:"early_phase"`
	MidPhase   PhaseStats `json:"mid_phase"`
	LatePhase  PhaseStats `json:"late_phase"`

	RecentForm   []model.Bout `json:"recent_form"`
	RecentRecord string       `json:"recent_record"`
}

// Trajectory computes the rolling-window career trajectory for a fighter.
// bouts must be ordered by date ascending. window <= 0 selects the engine
// default; a window below 2 is rejected. A history shorter than the window
// yields ErrInsufficientData rather than a degenerate series.
func (e *Engine) Trajectory(fighter string, bouts []model.Bout, window int) (TrajectoryResult, error) {
	if window <= 0 {
		window = e.window
	}
	if window < minWindow {
		return TrajectoryResult{}, fmt.Errorf("%w: window %d is below the minimum of %d", ErrInvalidParameter, window, minWindow)
	}
	if len(bouts) < window {
		return TrajectoryResult{}, fmt.Errorf("%w: %d fights recorded, need at least %d", ErrInsufficientData, len(bouts), window)
	}

	rolling := make([]WindowPoint, 0, len(bouts)-window+1)
	for i := window - 1; i < len(bouts); i++ {
		rolling = append(rolling, windowPoint(bouts[i-window+1:i+1]))
	}

	// The samples at each end of the series must not overlap; short series
	// shrink them, down to a single-point comparison.
	n := trendSampleSize
	if len(rolling) < 2*n {
		n = max(1, len(rolling)/2)
	}
	recent := meanWinRate(tail(rolling, n))
	early := meanWinRate(rolling[:n])
	diffPP := (recent - early) * 100

	trend, strength := e.classifyTrend(diffPP)

	first, last := bouts[0].Date, bouts[len(bouts)-1].Date

	form := bouts[max(0, len(bouts)-recentFormSize):]

	return TrajectoryResult{
		Fighter:         fighter,
		TotalFights:     len(bouts),
		Window:          window,
		FirstFight:      first,
		LastFight:       last,
		YearsActive:     last.Sub(first).Hours() / 24 / 365,
		Trend:           trend,
		TrendStrength:   strength,
		RecentWinRate:   recent,
		ChangeFromEarly: diffPP,
		Rolling:         rolling,
		EarlyPhase:      phaseStats(bouts[:len(bouts)/3]),
		MidPhase:        phaseStats(bouts[len(bouts)/3 : 2*len(bouts)/3]),
		LatePhase:       phaseStats(bouts[2*len(bouts)/3:]),
		RecentForm:      form,
		RecentRecord:    formRecord(form),
	}, nil
}

func (e *Engine) classifyTrend(diffPP float64) (Trend, string) {
	switch {
	case diffPP > e.strongPP:
		return TrendImproving, StrengthStrong
	case diffPP > e.moderatePP:
		return TrendImproving, StrengthModerate
	case diffPP < -e.strongPP:
		return TrendDeclining, StrengthStrong
	case diffPP < -e.moderatePP:
		return TrendDeclining, StrengthModerate
	default:
		return TrendStable, StrengthConsistent
	}
}

func windowPoint(w []model.Bout) WindowPoint {
	var wins, kos int
	var oppWins int
	for _, b := range w {
		if b.Result == model.Win {
			wins++
			if b.Method.IsKnockout() {
				kos++
			}
		}
		oppWins += b.OpponentWins
	}
	return WindowPoint{
		EndDate:         w[len(w)-1].Date,
		WinRate:         float64(wins) / float64(len(w)),
		KORate:          float64(kos) / float64(len(w)),
		OpponentQuality: float64(oppWins) / float64(len(w)),
	}
}

func phaseStats(phase []model.Bout) PhaseStats {
	s := PhaseStats{Fights: len(phase)}
	for _, b := range phase {
		if b.Result == model.Win {
			s.Wins++
		}
		if b.TitleFight {
			s.TitleFights++
		}
	}
	if s.Fights > 0 {
		s.WinRate = float64(s.Wins) / float64(s.Fights)
	}
	return s
}

func formRecord(form []model.Bout) string {
	var w, l int
	for _, b := range form {
		switch b.Result {
		case model.Win:
			w++
		case model.Loss:
			l++
		}
	}
	return fmt.Sprintf("%d-%d", w, l)
}

func meanWinRate(points []WindowPoint) float64 {
	if len(points) == 0 {
		return 0
	}
	var sum float64
	for _, p := range points {
		sum += p.WinRate
	}
	return sum / float64(len(points))
}

func tail(points []WindowPoint, n int) []WindowPoint {
	if len(points) <= n {
		return points
	}
	return points[len(points)-n:]
}
