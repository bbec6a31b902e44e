// Package match models recorded pickleball matches: singles or doubles,
// scored as a sequence of games to 11 (win by two).
package match

import (
	"errors"
	"time"
)

// Business rule constants
const (
	FormatSingles = "singles"
	FormatDoubles = "doubles"

	SideA = "a"
	SideB = "b"

	// GameTarget is the rally score a side must reach to win a game.
	GameTarget = 11
	// WinBy is the required margin at or beyond the target.
	WinBy = 2

	MaxGames = 5
)

// Domain errors
var (
	ErrInvalidFormat    = errors.New("format must be 'singles' or 'doubles'")
	ErrWrongPlayerCount = errors.New("singles needs 1 player per side, doubles needs 2")
	ErrDuplicatePlayer  = errors.New("a player cannot appear on both sides")
	ErrNoGames          = errors.New("at least one game score is required")
	ErrTooManyGames     = errors.New("a match has at most 5 games")
	ErrBadGameScore     = errors.New("game winner must reach 11 and win by 2")
	ErrDrawnMatch       = errors.New("match cannot end with equal games won")
	ErrZeroPlayedAt     = errors.New("played_at must be set")
)

// GameScore is the final rally score of one game.
type GameScore struct {
	SideA int
	SideB int
}

// Winner returns the winning side of the game, or "" if the score is not
// a finished game.
// INVARIANT: GameScore fields are not mutated
func (g GameScore) Winner() string {
	hi, lo := g.SideA, g.SideB
	side := SideA
	if g.SideB > g.SideA {
		hi, lo = g.SideB, g.SideA
		side = SideB
	}
	if hi < GameTarget || hi-lo < WinBy {
		return ""
	}
	return side
}

// Match is one recorded match between two sides.
type Match struct {
	ID         string
	Format     string
	SideA      []string // player IDs
	SideB      []string
	Games      []GameScore
	Location   string
	PlayedAt   time.Time
	RecordedBy string // account ID of the recorder
	CreatedAt  time.Time
}

// Validate checks if the Match has valid data.
// PRE: Match struct is populated
// POST: Returns nil if valid, error otherwise
// INVARIANT: every game has a winner and one side wins more games
func (m *Match) Validate() error {
	perSide := 1
	switch m.Format {
	case FormatSingles:
	case FormatDoubles:
		perSide = 2
	default:
		return ErrInvalidFormat
	}
	if len(m.SideA) != perSide || len(m.SideB) != perSide {
		return ErrWrongPlayerCount
	}
	seen := make(map[string]bool, perSide*2)
	for _, id := range append(append([]string{}, m.SideA...), m.SideB...) {
		if id == "" || seen[id] {
			return ErrDuplicatePlayer
		}
		seen[id] = true
	}
	if len(m.Games) == 0 {
		return ErrNoGames
	}
	if len(m.Games) > MaxGames {
		return ErrTooManyGames
	}
	for _, g := range m.Games {
		if g.Winner() == "" {
			return ErrBadGameScore
		}
	}
	if m.WinningSide() == "" {
		return ErrDrawnMatch
	}
	if m.PlayedAt.IsZero() {
		return ErrZeroPlayedAt
	}
	return nil
}

// WinningSide returns the side that won more games, or "" on a tie.
// INVARIANT: Match fields are not mutated
func (m *Match) WinningSide() string {
	var a, b int
	for _, g := range m.Games {
		switch g.Winner() {
		case SideA:
			a++
		case SideB:
			b++
		}
	}
	switch {
	case a > b:
		return SideA
	case b > a:
		return SideB
	}
	return ""
}

// Winners returns the player IDs on the winning side.
// PRE: Match is valid
func (m *Match) Winners() []string {
	if m.WinningSide() == SideA {
		return m.SideA
	}
	return m.SideB
}

// Losers returns the player IDs on the losing side.
// PRE: Match is valid
func (m *Match) Losers() []string {
	if m.WinningSide() == SideA {
		return m.SideB
	}
	return m.SideA
}

// Players returns all participating player IDs, side A first.
func (m *Match) Players() []string {
	return append(append([]string{}, m.SideA...), m.SideB...)
}
