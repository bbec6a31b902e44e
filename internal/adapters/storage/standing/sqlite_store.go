package standing

import (
	"context"
	"database/sql"

	"github.com/mightymaxworks/pickleplus-sub011/internal/adapters/storage"
	domain "github.com/mightymaxworks/pickleplus-sub011/internal/domain/ranking"
)

const standingColumns = "player_id, ranking_points, matches_played, wins, losses, updated_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new standing store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByPlayerID retrieves a player's standing.
// PRE: playerID is non-empty
// POST: Returns the standing, or a zero-valued one if the player has
// never recorded a match
func (s *SQLiteStore) GetByPlayerID(ctx context.Context, playerID string) (domain.Standing, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+standingColumns+" FROM standing WHERE player_id = ?", playerID)
	entity, err := scanStanding(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Standing{PlayerID: playerID}, nil
	}
	return entity, err
}

// Save persists a standing to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Standing) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO standing (`+standingColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(player_id) DO UPDATE SET
		   ranking_points=excluded.ranking_points, matches_played=excluded.matches_played,
		   wins=excluded.wins, losses=excluded.losses, updated_at=excluded.updated_at`,
		entity.PlayerID, entity.RankingPoints, entity.MatchesPlayed,
		entity.Wins, entity.Losses, storage.FormatTime(entity.UpdatedAt))
	return err
}

// ListTop returns the highest-ranked standings.
// PRE: limit > 0, offset >= 0
// POST: Returns standings in leaderboard order
func (s *SQLiteStore) ListTop(ctx context.Context, limit, offset int) ([]domain.Standing, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+standingColumns+` FROM standing
		 ORDER BY ranking_points DESC, matches_played ASC, player_id ASC
		 LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Standing
	for rows.Next() {
		entity, err := scanStanding(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// Count returns the number of players with a standing.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM standing").Scan(&count)
	return count, err
}

// scanStanding extracts a Standing from a row scanner function.
func scanStanding(scan func(dest ...any) error) (domain.Standing, error) {
	var entity domain.Standing
	var updatedAt string
	err := scan(&entity.PlayerID, &entity.RankingPoints, &entity.MatchesPlayed,
		&entity.Wins, &entity.Losses, &updatedAt)
	if err != nil {
		return domain.Standing{}, err
	}
	entity.UpdatedAt, _ = storage.ParseTime(updatedAt)
	return entity, nil
}
