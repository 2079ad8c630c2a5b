package analysis

import (
	"fmt"
	"sort"
	"time"

	"github.com/okian/ringside/internal/domain/model"
)

const maxMilestones = 10

// Milestone is a dated career event.
type Milestone struct {
	Date         time.Time `json:"date"`
	Event        string    `json:"event"`
	Significance string    `json:"significance"`
}

// YearStats is a fighter's record within a single calendar year.
type YearStats struct {
	Year   int `json:"year"`
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`
}

// TimelineResult summarizes a fighter's career history.
type TimelineResult struct {
	Fighter     string      `json:"fighter"`
	DebutDate   time.Time   `json:"debut_date,omitempty"`
	LastFight   time.Time   `json:"last_fight,omitempty"`
	CareerYears float64     `json:"career_years"`
	TotalFights int         `json:"total_fights"`
	Milestones  []Milestone `json:"milestones"`
	YearByYear  []YearStats `json:"year_by_year"`
	Reigns      int         `json:"championship_reigns"`
}

// Timeline builds milestones and year-by-year statistics from a fighter's
// bout history and title reigns. bouts must be ordered by date ascending.
func (e *Engine) Timeline(f model.Fighter, bouts []model.Bout, titles []model.Title) TimelineResult {
	res := TimelineResult{
		Fighter:     f.Name,
		DebutDate:   f.DebutDate,
		TotalFights: len(bouts),
		Reigns:      len(titles),
	}

	if !f.DebutDate.IsZero() {
		res.Milestones = append(res.Milestones, Milestone{
			Date:         f.DebutDate,
			Event:        "Professional Debut",
			Significance: "Start of professional career",
		})
	}

	if len(titles) > 0 {
		first := titles[0]
		for _, t := range titles[1:] {
			if t.WonDate.Before(first.WonDate) {
				first = t
			}
		}
		res.Milestones = append(res.Milestones, Milestone{
			Date:         first.WonDate,
			Event:        fmt.Sprintf("Won %s", first.Name),
			Significance: "First world championship",
		})
	}

	years := map[int]*YearStats{}
	for _, b := range bouts {
		if b.TitleFight && b.Result == model.Win {
			res.Milestones = append(res.Milestones, Milestone{
				Date:         b.Date,
				Event:        fmt.Sprintf("Defeated %s for title", b.Opponent),
				Significance: fmt.Sprintf("%s victory in round %d", b.Method, b.Round),
			})
		}
		y := b.Date.Year()
		ys, ok := years[y]
		if !ok {
			ys = &YearStats{Year: y}
			years[y] = ys
		}
		switch b.Result {
		case model.Win:
			ys.Wins++
		case model.Loss:
			ys.Losses++
		case model.Draw:
			ys.Draws++
		}
	}

	sort.Slice(res.Milestones, func(i, j int) bool { return res.Milestones[i].Date.Before(res.Milestones[j].Date) })
	if len(res.Milestones) > maxMilestones {
		res.Milestones = res.Milestones[:maxMilestones]
	}

	for _, ys := range years {
		res.YearByYear = append(res.YearByYear, *ys)
	}
	sort.Slice(res.YearByYear, func(i, j int) bool { return res.YearByYear[i].Year < res.YearByYear[j].Year })

	if len(bouts) > 0 {
		res.LastFight = bouts[len(bouts)-1].Date
		start := f.DebutDate
		if start.IsZero() {
			start = bouts[0].Date
		}
		res.CareerYears = res.LastFight.Sub(start).Hours() / 24 / 365
	}

	return res
}
