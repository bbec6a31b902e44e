// Package ranking is the single source of truth for the points rules.
// The old client recomputed these independently in several components;
// every multiplier and threshold lives here and nowhere else.
package ranking

import (
	"errors"
	"time"
)

// Points rule constants. PicklePointsMultiplier converts ranking points
// to Pickle Points, always rounding up. LifetimeFactor derives the
// lifetime display total from current ranking points.
const (
	PicklePointsMultiplier = 1.5
	LifetimeFactor         = 1.3

	// Base points awarded per match result.
	WinPoints  = 3
	LossPoints = 1
)

// Tier names, ordered lowest to highest.
const (
	TierRecreational = "recreational"
	TierCompetitive  = "competitive"
	TierElite        = "elite"
	TierProfessional = "professional"
)

// tierThresholds maps each tier to its minimum ranking points,
// descending.
var tierThresholds = []struct {
	name string
	min  int
}{
	{TierProfessional, 1800},
	{TierElite, 1000},
	{TierCompetitive, 300},
	{TierRecreational, 0},
}

// Domain errors
var (
	ErrNegativePoints = errors.New("points cannot be negative")
	ErrEmptyPlayerID  = errors.New("player ID is required")
)

// PicklePoints converts ranking points to Pickle Points:
// ceil(points * 1.5), computed in integer arithmetic so no float
// rounding can disagree across callers.
// PRE: points >= 0
// POST: Returns ceil(points * 1.5)
func PicklePoints(points int) int {
	if points <= 0 {
		return 0
	}
	return (points*3 + 1) / 2
}

// LifetimePoints derives the lifetime display total: points * 1.3,
// rounded half up in integer arithmetic.
// PRE: points >= 0
// POST: Returns round(points * 1.3)
func LifetimePoints(points int) int {
	if points <= 0 {
		return 0
	}
	return (points*13 + 5) / 10
}

// TierForPoints returns the tier name for a ranking points total.
// PRE: none (negative totals map to the lowest tier)
// POST: Returns one of the Tier* constants
func TierForPoints(points int) string {
	for _, t := range tierThresholds {
		if points >= t.min {
			return t.name
		}
	}
	return TierRecreational
}

// NextTierAt returns the ranking points needed for the next tier, or 0
// if the player is already in the top tier.
func NextTierAt(points int) int {
	next := 0
	for _, t := range tierThresholds {
		if points < t.min {
			next = t.min
		}
	}
	return next
}

// Standing is one player's accumulated ranking state.
type Standing struct {
	PlayerID      string
	RankingPoints int
	MatchesPlayed int
	Wins          int
	Losses        int
	UpdatedAt     time.Time
}

// Validate checks that the Standing has valid data.
// PRE: Standing struct is populated
// POST: Returns nil if valid, error otherwise
func (s *Standing) Validate() error {
	if s.PlayerID == "" {
		return ErrEmptyPlayerID
	}
	if s.RankingPoints < 0 {
		return ErrNegativePoints
	}
	return nil
}

// ApplyResult records one match result, awarding base win or loss
// points.
// PRE: Standing is valid
// POST: MatchesPlayed incremented, points and win/loss tallies updated
func (s *Standing) ApplyResult(won bool, now time.Time) {
	s.MatchesPlayed++
	if won {
		s.Wins++
		s.RankingPoints += WinPoints
	} else {
		s.Losses++
		s.RankingPoints += LossPoints
	}
	s.UpdatedAt = now
}

// PicklePoints returns the standing's converted Pickle Points total.
// INVARIANT: Standing fields are not mutated
func (s *Standing) PicklePoints() int {
	return PicklePoints(s.RankingPoints)
}

// Tier returns the standing's tier name.
// INVARIANT: Standing fields are not mutated
func (s *Standing) Tier() string {
	return TierForPoints(s.RankingPoints)
}
