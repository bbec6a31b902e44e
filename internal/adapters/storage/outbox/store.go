package outbox

import (
	"context"

	domain "github.com/mightymaxworks/pickleplus-sub011/internal/domain/outbox"
)

// Store defines the interface for outbox entry persistence.
type Store interface {
	// GetByID retrieves an outbox entry by its ID.
	// PRE: id is non-empty
	// POST: Returns the entry or an error if not found
	GetByID(ctx context.Context, id string) (domain.Entry, error)

	// Save persists an outbox entry (insert or update).
	// PRE: entry has been validated
	// POST: Entry is persisted
	Save(ctx context.Context, e domain.Entry) error

	// ListPending returns entries awaiting delivery (pending or retrying).
	// PRE: limit > 0
	// POST: Returns up to limit entries, oldest first
	ListPending(ctx context.Context, limit int) ([]domain.Entry, error)

	// ListFailed returns entries whose attempt budget is exhausted.
	// PRE: limit > 0
	// POST: Returns up to limit entries, most recent attempt first
	ListFailed(ctx context.Context, limit int) ([]domain.Entry, error)

	// CountByStatus returns the number of entries per status, for the
	// admin outbox page.
	CountByStatus(ctx context.Context) (map[string]int, error)

	// Delete removes an entry. Callers only delete terminal entries.
	// PRE: id is non-empty
	// POST: Entry is removed from the database
	Delete(ctx context.Context, id string) error
}
