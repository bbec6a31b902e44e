package goal

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mightymaxworks/pickleplus-sub011/internal/adapters/storage"
	domain "github.com/mightymaxworks/pickleplus-sub011/internal/domain/goal"
)

const goalColumns = "id, player_id, title, description, target, unit, start_date, end_date, progress, created_at, updated_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new goal store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Goal by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Goal, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+goalColumns+" FROM goal WHERE id = ?", id)
	entity, err := scanGoal(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Goal{}, fmt.Errorf("goal not found: %w", err)
	}
	return entity, err
}

// Save persists a Goal to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Goal) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO goal (`+goalColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   title=excluded.title, description=excluded.description,
		   target=excluded.target, unit=excluded.unit,
		   start_date=excluded.start_date, end_date=excluded.end_date,
		   progress=excluded.progress, updated_at=excluded.updated_at`,
		entity.ID, entity.PlayerID, entity.Title, entity.Description,
		entity.Target, entity.Unit,
		entity.StartDate.Format("2006-01-02"), entity.EndDate.Format("2006-01-02"),
		entity.Progress, storage.FormatTime(entity.CreatedAt), storage.FormatTime(entity.UpdatedAt))
	return err
}

// Delete removes a Goal from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM goal WHERE id = ?", id)
	return err
}

// ListByPlayer retrieves a player's goals, most recent first.
// PRE: playerID is non-empty
// POST: Returns the player's goals ordered by start date descending
func (s *SQLiteStore) ListByPlayer(ctx context.Context, playerID string) ([]domain.Goal, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+goalColumns+" FROM goal WHERE player_id = ? ORDER BY start_date DESC", playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Goal
	for rows.Next() {
		entity, err := scanGoal(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// scanGoal extracts a Goal from a row scanner function.
func scanGoal(scan func(dest ...any) error) (domain.Goal, error) {
	var entity domain.Goal
	var startDate, endDate, createdAt, updatedAt string
	err := scan(&entity.ID, &entity.PlayerID, &entity.Title, &entity.Description,
		&entity.Target, &entity.Unit, &startDate, &endDate,
		&entity.Progress, &createdAt, &updatedAt)
	if err != nil {
		return domain.Goal{}, err
	}
	entity.StartDate, _ = storage.ParseTime(startDate)
	entity.EndDate, _ = storage.ParseTime(endDate)
	entity.CreatedAt, _ = storage.ParseTime(createdAt)
	entity.UpdatedAt, _ = storage.ParseTime(updatedAt)
	return entity, nil
}
