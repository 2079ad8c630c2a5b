// Package repository defines the fight record store interface and its
// sqlite implementation. The store is read-only at query time: population
// happens out-of-band, and every method here is safe for concurrent use.
package repository

import (
	"context"
	"time"

	"github.com/okian/ringside/internal/domain/model"
)

// SearchFilter narrows a fighter search.
type SearchFilter struct {
	Query       string
	WeightClass string
	ActiveOnly  bool
	Limit       int
}

// Store provides read access to the fight history.
type Store interface {
	// FindFighter resolves a fighter by case-insensitive fuzzy name match,
	// preferring an exact match, then the winningest partial match.
	// Returns ErrNotFound when nothing matches; callers treat that as a
	// normal outcome, not a failure.
	FindFighter(ctx context.Context, name string) (model.Fighter, error)

	// SearchFighters returns fighters matching the filter, best record
	// first. An empty result is not an error.
	SearchFighters(ctx context.Context, f SearchFilter) ([]model.Fighter, error)

	// FightHistory returns the fighter's finished fights as perspective
	// rows, ordered by date ascending.
	FightHistory(ctx context.Context, fighterID int64) ([]model.Bout, error)

	// FightsBetween returns every fight the two fighters had against each
	// other, most recent first.
	FightsBetween(ctx context.Context, aID, bID int64) ([]model.Fight, error)

	// SharedOpponents returns the fighters both have faced.
	SharedOpponents(ctx context.Context, aID, bID int64) ([]model.Fighter, error)

	// Titles returns the fighter's title reigns, most recent win first.
	Titles(ctx context.Context, fighterID int64) ([]model.Title, error)

	// UpcomingFights returns scheduled fights within the window, soonest
	// first, optionally filtered by weight class.
	UpcomingFights(ctx context.Context, within time.Duration, weightClass string) ([]model.Fight, error)

	Close() error
}
