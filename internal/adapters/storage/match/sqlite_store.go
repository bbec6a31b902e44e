package match

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mightymaxworks/pickleplus-sub011/internal/adapters/storage"
	domain "github.com/mightymaxworks/pickleplus-sub011/internal/domain/match"
)

const matchColumns = "id, format, side_a, side_b, games, location, played_at, recorded_by, created_at"

// gameRow is the JSON shape of one game score in the games column.
type gameRow struct {
	A int `json:"a"`
	B int `json:"b"`
}

// SQLiteStore implements Store using SQLite. Sides and game scores are
// stored as JSON arrays in TEXT columns; ListByPlayer matches on the
// JSON text, which is safe because player IDs are UUIDs.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new match store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Match by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Match, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+matchColumns+` FROM "match" WHERE id = ?`, id)
	entity, err := scanMatch(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Match{}, fmt.Errorf("match not found: %w", err)
	}
	return entity, err
}

// Save persists a Match to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Match) error {
	sideA, err := json.Marshal(entity.SideA)
	if err != nil {
		return err
	}
	sideB, err := json.Marshal(entity.SideB)
	if err != nil {
		return err
	}
	games := make([]gameRow, len(entity.Games))
	for i, g := range entity.Games {
		games[i] = gameRow{A: g.SideA, B: g.SideB}
	}
	gamesJSON, err := json.Marshal(games)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO "match" (`+matchColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   format=excluded.format, side_a=excluded.side_a, side_b=excluded.side_b,
		   games=excluded.games, location=excluded.location, played_at=excluded.played_at`,
		entity.ID, entity.Format, string(sideA), string(sideB), string(gamesJSON),
		entity.Location, storage.FormatTime(entity.PlayedAt), entity.RecordedBy,
		storage.FormatTime(entity.CreatedAt))
	return err
}

// List retrieves Matches based on the filter.
// PRE: filter has valid parameters
// POST: Returns matching entities, most recently played first
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Match, error) {
	var b strings.Builder
	var args []any

	b.WriteString(`SELECT ` + matchColumns + ` FROM "match"`)
	if filter.Format != "" {
		b.WriteString(" WHERE format = ?")
		args = append(args, filter.Format)
	}
	b.WriteString(" ORDER BY played_at DESC LIMIT ? OFFSET ?")
	args = append(args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMatches(rows)
}

// ListByPlayer retrieves a player's matches, most recently played first.
// PRE: playerID is non-empty, limit > 0
// POST: Returns matches where the player appears on either side
func (s *SQLiteStore) ListByPlayer(ctx context.Context, playerID string, limit int) ([]domain.Match, error) {
	needle := "%" + playerID + "%"
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+matchColumns+` FROM "match"
		 WHERE side_a LIKE ? OR side_b LIKE ?
		 ORDER BY played_at DESC LIMIT ?`,
		needle, needle, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMatches(rows)
}

// Count returns the total number of matches.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM "match"`).Scan(&count)
	return count, err
}

// scanMatch extracts a Match from a row scanner function.
func scanMatch(scan func(dest ...any) error) (domain.Match, error) {
	var entity domain.Match
	var sideA, sideB, games, playedAt, createdAt string
	err := scan(&entity.ID, &entity.Format, &sideA, &sideB, &games,
		&entity.Location, &playedAt, &entity.RecordedBy, &createdAt)
	if err != nil {
		return domain.Match{}, err
	}
	if err := json.Unmarshal([]byte(sideA), &entity.SideA); err != nil {
		return domain.Match{}, fmt.Errorf("bad side_a column: %w", err)
	}
	if err := json.Unmarshal([]byte(sideB), &entity.SideB); err != nil {
		return domain.Match{}, fmt.Errorf("bad side_b column: %w", err)
	}
	var rows []gameRow
	if err := json.Unmarshal([]byte(games), &rows); err != nil {
		return domain.Match{}, fmt.Errorf("bad games column: %w", err)
	}
	entity.Games = make([]domain.GameScore, len(rows))
	for i, g := range rows {
		entity.Games[i] = domain.GameScore{SideA: g.A, SideB: g.B}
	}
	entity.PlayedAt, _ = storage.ParseTime(playedAt)
	entity.CreatedAt, _ = storage.ParseTime(createdAt)
	return entity, nil
}

func scanMatches(rows *sql.Rows) ([]domain.Match, error) {
	var results []domain.Match
	for rows.Next() {
		entity, err := scanMatch(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
