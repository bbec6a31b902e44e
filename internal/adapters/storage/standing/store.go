package standing

import (
	"context"

	domain "github.com/mightymaxworks/pickleplus-sub011/internal/domain/ranking"
)

// Store persists per-player ranking Standings.
type Store interface {
	// GetByPlayerID retrieves a player's standing. A player without one
	// gets a zero-valued standing, not an error.
	GetByPlayerID(ctx context.Context, playerID string) (domain.Standing, error)

	// Save persists a standing (insert or update).
	Save(ctx context.Context, value domain.Standing) error

	// ListTop returns the highest-ranked standings, points descending.
	// Ties break on fewer matches played, then player ID for stability.
	ListTop(ctx context.Context, limit, offset int) ([]domain.Standing, error)

	// Count returns the number of players with a standing.
	Count(ctx context.Context) (int, error)
}
