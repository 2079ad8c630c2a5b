// Package model contains domain models passed between layers.
package model

import (
	"strconv"
	"time"
)

// Result is the outcome of a bout from one fighter's perspective.
type Result string

// Bout results.
const (
	Win  Result = "Win"
	Loss Result = "Loss"
	Draw Result = "Draw"
)

// Method describes how a fight ended.
type Method string

// Fight-ending methods. KO, TKO and RTD count as knockouts for rate
// computations; everything that went to the cards is a decision.
const (
	KO        Method = "KO"
	TKO       Method = "TKO"
	RTD       Method = "RTD"
	Decision  Method = "Decision"
	MajorityD Method = "MD"
	SplitD    Method = "SD"
	UnanimD   Method = "UD"
	Other     Method = "Other"
)

// IsKnockout reports whether the method is a stoppage win type.
func (m Method) IsKnockout() bool {
	switch m {
	case KO, TKO, RTD:
		return true
	default:
		return false
	}
}

// Fight status values as stored.
const (
	StatusFinished  = "FINISHED"
	StatusScheduled = "NOT_STARTED"
)

// Fighter is an immutable fighter profile loaded from the record store.
type Fighter struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Nickname     string    `json:"nickname,omitempty"`
	Nationality  string    `json:"nationality,omitempty"`
	WeightClass  string    `json:"weight_class,omitempty"`
	Wins         int       `json:"wins"`
	Losses       int       `json:"losses"`
	Draws        int       `json:"draws"`
	KOPercentage float64   `json:"ko_percentage"`
	ReachCM      int       `json:"reach_cm,omitempty"`
	HeightCM     int       `json:"height_cm,omitempty"`
	Stance       string    `json:"stance,omitempty"`
	BirthDate    time.Time `json:"birth_date,omitempty"`
	DebutDate    time.Time `json:"debut_date,omitempty"`
	Active       bool      `json:"active"`
}

// Record formats the fighter's record as a W-L-D string.
func (f Fighter) Record() string {
	return strconv.Itoa(f.Wins) + "-" + strconv.Itoa(f.Losses) + "-" + strconv.Itoa(f.Draws)
}

// Bout is a finished fight seen from one fighter's perspective. Slices of
// Bout are always ordered by date ascending; that ordering defines the
// career sequence every trend computation relies on. Bouts are append-only
// history and must never be mutated after load.
type Bout struct {
	Date         time.Time `json:"date"`
	Result       Result    `json:"result"`
	Method       Method    `json:"method"`
	Round        int       `json:"round,omitempty"`
	TitleFight   bool      `json:"title_fight"`
	OpponentID   int64     `json:"opponent_id"`
	Opponent     string    `json:"opponent"`
	OpponentWins int       `json:"opponent_wins"` // opponent quality proxy
}

// Fight is the raw two-sided record. FighterA and FighterB are always
// distinct; WinnerID is zero for a draw or a fight not yet decided.
type Fight struct {
	ID          int64     `json:"id"`
	Date        time.Time `json:"date"`
	FighterAID  int64     `json:"fighter_a_id"`
	FighterBID  int64     `json:"fighter_b_id"`
	FighterA    string    `json:"fighter_a"`
	FighterB    string    `json:"fighter_b"`
	WinnerID    int64     `json:"winner_id,omitempty"`
	Method      Method    `json:"method,omitempty"`
	Round       int       `json:"round,omitempty"`
	TitleFight  bool      `json:"title_fight"`
	WeightClass string    `json:"weight_class,omitempty"`
	Location    string    `json:"location,omitempty"`
	Status      string    `json:"status"`
}

// Title is a championship reign. It is a derived aggregate, recomputable
// from the fight history, kept for cheap pedigree queries.
type Title struct {
	FighterID int64     `json:"fighter_id"`
	Name      string    `json:"name"`
	WonDate   time.Time `json:"won_date"`
	LostDate  time.Time `json:"lost_date,omitempty"` // zero while held
	Defenses  int       `json:"defenses"`
}

// Held reports whether the title is currently held.
func (t Title) Held() bool { return t.LostDate.IsZero() }
