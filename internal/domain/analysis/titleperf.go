package analysis

import (
	"fmt"
	"time"

	"github.com/okian/ringside/internal/domain/model"
)

// SplitStats aggregates win and knockout rates for one subset of a career.
type SplitStats struct {
	Fights  int     `json:"fights"`
	Wins    int     `json:"wins"`
	Losses  int     `json:"losses"`
	Draws   int     `json:"draws"`
	WinRate float64 `json:"win_rate"`
	KORate  float64 `json:"ko_rate"`
}

// TitleResult describes a fighter's championship-fight performance relative
// to the rest of their career.
type TitleResult struct {
	Fighter     string     `json:"fighter"`
	TitleRecord string     `json:"title_record"` // W-L-D in title fights
	Title       SplitStats `json:"title"`
	NonTitle    SplitStats `json:"non_title"`

	RisesToOccasion   bool    `json:"rises_to_occasion"`
	Assessment        string  `json:"assessment"`
	WinRateDifference float64 `json:"win_rate_difference_pp"` // percentage points

	TitlesWon     int           `json:"titles_won"`
	TotalDefenses int           `json:"total_defenses"`
	CurrentTitles []string      `json:"current_titles,omitempty"`
	FirstTitleWin time.Time     `json:"first_title_win,omitempty"`
	Tenure        time.Duration `json:"tenure"`
	StillChampion bool          `json:"still_champion"`
}

// TitlePerformance splits a career into title and non-title subsets and
// compares them. bouts must be ordered by date ascending; now anchors the
// tenure of a belt still held. A fighter with zero title fights yields
// ErrInsufficientData, never a zero-over-zero ratio.
func (e *Engine) TitlePerformance(fighter string, bouts []model.Bout, titles []model.Title, now time.Time) (TitleResult, error) {
	var title, nonTitle []model.Bout
	for _, b := range bouts {
		if b.TitleFight {
			title = append(title, b)
		} else {
			nonTitle = append(nonTitle, b)
		}
	}
	if len(title) == 0 {
		return TitleResult{}, fmt.Errorf("%w: %s has no title fights on record", ErrInsufficientData, fighter)
	}

	ts := splitStats(title)
	ns := splitStats(nonTitle)
	diffPP := (ts.WinRate - ns.WinRate) * 100

	res := TitleResult{
		Fighter:           fighter,
		TitleRecord:       fmt.Sprintf("%d-%d-%d", ts.Wins, ts.Losses, ts.Draws),
		Title:             ts,
		NonTitle:          ns,
		RisesToOccasion:   diffPP > e.occasionPP,
		Assessment:        e.assessOccasion(diffPP),
		WinRateDifference: diffPP,
		TitlesWon:         len(titles),
	}

	for _, t := range titles {
		res.TotalDefenses += t.Defenses
		if t.Held() {
			res.CurrentTitles = append(res.CurrentTitles, t.Name)
		}
		if res.FirstTitleWin.IsZero() || t.WonDate.Before(res.FirstTitleWin) {
			res.FirstTitleWin = t.WonDate
		}
	}

	// Tenure runs from the first title win to the first title loss, or to
	// now while any belt from that era is still held.
	if !res.FirstTitleWin.IsZero() {
		end, lost := firstLoss(titles)
		if lost {
			res.Tenure = end.Sub(res.FirstTitleWin)
		} else {
			res.Tenure = now.Sub(res.FirstTitleWin)
			res.StillChampion = true
		}
	}

	return res, nil
}

func (e *Engine) assessOccasion(diffPP float64) string {
	switch {
	case diffPP > e.occasionPP:
		return "Significantly better"
	case diffPP > 0:
		return "Slightly better"
	case diffPP < -e.occasionPP:
		return "Significantly worse"
	case diffPP < 0:
		return "Slightly worse"
	default:
		return "Same"
	}
}

func splitStats(bouts []model.Bout) SplitStats {
	s := SplitStats{Fights: len(bouts)}
	var kos int
	for _, b := range bouts {
		switch b.Result {
		case model.Win:
			s.Wins++
			if b.Method.IsKnockout() {
				kos++
			}
		case model.Loss:
			s.Losses++
		case model.Draw:
			s.Draws++
		}
	}
	if s.Fights > 0 {
		s.WinRate = float64(s.Wins) / float64(s.Fights)
		s.KORate = float64(kos) / float64(s.Fights)
	}
	return s
}

func firstLoss(titles []model.Title) (time.Time, bool) {
	var first time.Time
	anyHeld := false
	for _, t := range titles {
		if t.Held() {
			anyHeld = true
			continue
		}
		if first.IsZero() || t.LostDate.Before(first) {
			first = t.LostDate
		}
	}
	if anyHeld || first.IsZero() {
		return time.Time{}, false
	}
	return first, true
}
