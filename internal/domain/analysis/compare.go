package analysis

import (
	"fmt"
	"math"

	"github.com/okian/ringside/internal/domain/model"
)

// Head-to-head comparison margins. A difference below the margin is not
// reported as an advantage.
const (
	koPowerMarginPP  = 5.0
	experienceMargin = 10
	reachMarginCM    = 5

	compareConfBase = 0.7
	compareConfStep = 0.1
	compareConfMax  = 0.95
	evenConfidence  = 0.5
)

// TooCloseToCall marks a statistical comparison with no clear favorite.
const TooCloseToCall = "Too close to call"

// StatComparison is a head-to-head comparison of two fighters' raw records
// and physical attributes.
type StatComparison struct {
	FighterA    string   `json:"fighter_a"`
	FighterB    string   `json:"fighter_b"`
	RecordA     string   `json:"record_a"`
	RecordB     string   `json:"record_b"`
	AdvantagesA []string `json:"advantages_a"`
	AdvantagesB []string `json:"advantages_b"`
	Favorite    string   `json:"favorite"`
	Confidence  float64  `json:"confidence"`
	Factors     int      `json:"factors_analyzed"`
}

// CompareStats compares two fighter profiles on knockout power, experience,
// defensive record, reach and championship pedigree, and names a
// statistical favorite.
func (e *Engine) CompareStats(a, b model.Fighter, titlesA, titlesB []model.Title) StatComparison {
	res := StatComparison{
		FighterA: a.Name,
		FighterB: b.Name,
		RecordA:  a.Record(),
		RecordB:  b.Record(),
	}

	if a.KOPercentage > b.KOPercentage+koPowerMarginPP {
		res.AdvantagesA = append(res.AdvantagesA, fmt.Sprintf("Superior knockout power (%.1f%% vs %.1f%%)", a.KOPercentage, b.KOPercentage))
	} else if b.KOPercentage > a.KOPercentage+koPowerMarginPP {
		res.AdvantagesB = append(res.AdvantagesB, fmt.Sprintf("Superior knockout power (%.1f%% vs %.1f%%)", b.KOPercentage, a.KOPercentage))
	}

	if a.Wins > b.Wins+experienceMargin {
		res.AdvantagesA = append(res.AdvantagesA, fmt.Sprintf("More experienced (%d wins vs %d wins)", a.Wins, b.Wins))
	} else if b.Wins > a.Wins+experienceMargin {
		res.AdvantagesB = append(res.AdvantagesB, fmt.Sprintf("More experienced (%d wins vs %d wins)", b.Wins, a.Wins))
	}

	if a.Losses < b.Losses {
		res.AdvantagesA = append(res.AdvantagesA, fmt.Sprintf("Better defensive record (%d losses vs %d losses)", a.Losses, b.Losses))
	} else if b.Losses < a.Losses {
		res.AdvantagesB = append(res.AdvantagesB, fmt.Sprintf("Better defensive record (%d losses vs %d losses)", b.Losses, a.Losses))
	}

	if diff := a.ReachCM - b.ReachCM; diff > reachMarginCM {
		res.AdvantagesA = append(res.AdvantagesA, fmt.Sprintf("Longer reach (%dcm vs %dcm, +%dcm advantage)", a.ReachCM, b.ReachCM, diff))
	} else if diff < -reachMarginCM {
		res.AdvantagesB = append(res.AdvantagesB, fmt.Sprintf("Longer reach (%dcm vs %dcm, +%dcm advantage)", b.ReachCM, a.ReachCM, -diff))
	}

	if len(titlesA) > len(titlesB) {
		res.AdvantagesA = append(res.AdvantagesA, fmt.Sprintf("More championship experience (%d titles vs %d titles)", len(titlesA), len(titlesB)))
	} else if len(titlesB) > len(titlesA) {
		res.AdvantagesB = append(res.AdvantagesB, fmt.Sprintf("More championship experience (%d titles vs %d titles)", len(titlesB), len(titlesA)))
	}

	na, nb := len(res.AdvantagesA), len(res.AdvantagesB)
	res.Factors = na + nb
	switch {
	case na > nb:
		res.Favorite = a.Name
		res.Confidence = math.Min(compareConfBase+float64(na-nb)*compareConfStep, compareConfMax)
	case nb > na:
		res.Favorite = b.Name
		res.Confidence = math.Min(compareConfBase+float64(nb-na)*compareConfStep, compareConfMax)
	default:
		res.Favorite = TooCloseToCall
		res.Confidence = evenConfidence
	}

	return res
}
