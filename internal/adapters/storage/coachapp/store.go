package coachapp

import (
	"context"

	domain "github.com/mightymaxworks/pickleplus-sub011/internal/domain/coachapp"
)

// Store persists coach Application state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Application, error)
	GetPendingByAccountID(ctx context.Context, accountID string) (domain.Application, error)
	Save(ctx context.Context, value domain.Application) error
	List(ctx context.Context, filter ListFilter) ([]domain.Application, error)
	CountByStatus(ctx context.Context) (map[string]int, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Limit  int
	Offset int
	Status string
}
