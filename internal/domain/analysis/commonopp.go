package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/okian/ringside/internal/domain/model"
)

// Outcome scores on the fixed ordinal scale. A knockout win outranks a
// decision win, which outranks a draw, which outranks any loss; losing by
// knockout sits at the bottom.
const (
	scoreKOWin        = 4
	scoreDecisionWin  = 3
	scoreDraw         = 2
	scoreDecisionLoss = 1
	scoreKOLoss       = 0
)

// AdvantageEven marks a tied comparison.
const AdvantageEven = "Even"

// OpponentComparison holds both fighters' latest outcome against one shared
// opponent.
type OpponentComparison struct {
	Opponent  string       `json:"opponent"`
	ResultA   model.Result `json:"result_a"`
	MethodA   model.Method `json:"method_a"`
	ScoreA    int          `json:"score_a"`
	ResultB   model.Result `json:"result_b"`
	MethodB   model.Method `json:"method_b"`
	ScoreB    int          `json:"score_b"`
	Advantage string       `json:"advantage"`
}

// ComparisonResult is the indirect comparison of two fighters through the
// opponents they share.
type ComparisonResult struct {
	FighterA        string               `json:"fighter_a"`
	FighterB        string               `json:"fighter_b"`
	SharedOpponents int                  `json:"shared_opponents"`
	ScoreA          int                  `json:"score_a"`
	ScoreB          int                  `json:"score_b"`
	Advantage       string               `json:"advantage"`
	Confidence      float64              `json:"confidence"`
	Details         []OpponentComparison `json:"details"`
}

// CommonOpponents compares two fighters through their shared opponents.
// Both bout lists must be ordered by date ascending. Zero overlap yields
// ErrInsufficientData: with no shared opponents there is no basis for an
// indirect ranking and none is forced.
func (e *Engine) CommonOpponents(nameA string, boutsA []model.Bout, nameB string, boutsB []model.Bout) (ComparisonResult, error) {
	latestA := latestByOpponent(boutsA)
	latestB := latestByOpponent(boutsB)

	shared := make([]int64, 0, len(latestA))
	for id := range latestA {
		if _, ok := latestB[id]; ok {
			shared = append(shared, id)
		}
	}
	if len(shared) == 0 {
		return ComparisonResult{}, fmt.Errorf("%w: no shared opponents between %s and %s", ErrInsufficientData, nameA, nameB)
	}
	// Deterministic detail ordering regardless of map iteration.
	sort.Slice(shared, func(i, j int) bool { return shared[i] < shared[j] })

	res := ComparisonResult{
		FighterA:        nameA,
		FighterB:        nameB,
		SharedOpponents: len(shared),
		Details:         make([]OpponentComparison, 0, len(shared)),
	}

	for _, id := range shared {
		a, b := latestA[id], latestB[id]
		cmp := OpponentComparison{
			Opponent: a.Opponent,
			ResultA:  a.Result,
			MethodA:  a.Method,
			ScoreA:   outcomeScore(a),
			ResultB:  b.Result,
			MethodB:  b.Method,
			ScoreB:   outcomeScore(b),
		}
		switch {
		case cmp.ScoreA > cmp.ScoreB:
			cmp.Advantage = nameA
		case cmp.ScoreB > cmp.ScoreA:
			cmp.Advantage = nameB
		default:
			cmp.Advantage = AdvantageEven
		}
		res.ScoreA += cmp.ScoreA
		res.ScoreB += cmp.ScoreB
		res.Details = append(res.Details, cmp)
	}

	switch {
	case res.ScoreA > res.ScoreB:
		res.Advantage = nameA
	case res.ScoreB > res.ScoreA:
		res.Advantage = nameB
	default:
		res.Advantage = AdvantageEven
	}
	res.Confidence = e.confidence(abs(res.ScoreA-res.ScoreB), len(shared))

	return res, nil
}

// confidence grows with the score gap but is capped by a ceiling that rises
// with the number of shared opponents: more shared opponents allow a higher
// confidence ceiling, and a single data point can never reach the maximum.
func (e *Engine) confidence(gap, shared int) float64 {
	if gap == 0 {
		return e.confBase
	}
	ceiling := math.Min(e.confBase+e.perOpponent*float64(shared), e.maxConf)
	return math.Min(e.confBase+e.gapWeight*float64(gap), ceiling)
}

func outcomeScore(b model.Bout) int {
	switch b.Result {
	case model.Win:
		if b.Method.IsKnockout() {
			return scoreKOWin
		}
		return scoreDecisionWin
	case model.Draw:
		return scoreDraw
	default:
		if b.Method.IsKnockout() {
			return scoreKOLoss
		}
		return scoreDecisionLoss
	}
}

// latestByOpponent keeps the most recent bout against each opponent; a
// rematch supersedes earlier meetings.
func latestByOpponent(bouts []model.Bout) map[int64]model.Bout {
	m := make(map[int64]model.Bout, len(bouts))
	for _, b := range bouts {
		m[b.OpponentID] = b
	}
	return m
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
