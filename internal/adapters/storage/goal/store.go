package goal

import (
	"context"

	domain "github.com/mightymaxworks/pickleplus-sub011/internal/domain/goal"
)

// Store persists Goal state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Goal, error)
	Save(ctx context.Context, value domain.Goal) error
	Delete(ctx context.Context, id string) error
	ListByPlayer(ctx context.Context, playerID string) ([]domain.Goal, error)
}
