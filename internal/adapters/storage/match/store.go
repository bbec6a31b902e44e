package match

import (
	"context"

	domain "github.com/mightymaxworks/pickleplus-sub011/internal/domain/match"
)

// Store persists Match state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Match, error)
	Save(ctx context.Context, value domain.Match) error
	List(ctx context.Context, filter ListFilter) ([]domain.Match, error)
	ListByPlayer(ctx context.Context, playerID string, limit int) ([]domain.Match, error)
	Count(ctx context.Context) (int, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Limit  int
	Offset int
	Format string
}
