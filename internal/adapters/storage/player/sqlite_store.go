package player

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mightymaxworks/pickleplus-sub011/internal/adapters/storage"
	domain "github.com/mightymaxworks/pickleplus-sub011/internal/domain/player"
)

const playerColumns = "id, account_id, name, email, passport_code, status"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new player store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Player by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Player, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+playerColumns+" FROM player WHERE id = ?", id)
	return scanPlayer(row.Scan)
}

// GetByAccountID retrieves the Player profile linked to an account.
// PRE: accountID is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByAccountID(ctx context.Context, accountID string) (domain.Player, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+playerColumns+" FROM player WHERE account_id = ?", accountID)
	return scanPlayer(row.Scan)
}

// GetByPassportCode retrieves a Player by its shareable passport code.
// PRE: code is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByPassportCode(ctx context.Context, code string) (domain.Player, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+playerColumns+" FROM player WHERE passport_code = ?", code)
	return scanPlayer(row.Scan)
}

// Save persists a Player to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Player) error {
	var accountID any
	if entity.AccountID != "" {
		accountID = entity.AccountID
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO player (`+playerColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   account_id=excluded.account_id, name=excluded.name,
		   email=excluded.email, passport_code=excluded.passport_code,
		   status=excluded.status`,
		entity.ID, accountID, entity.Name, entity.Email, entity.PassportCode, entity.Status)
	return err
}

// List retrieves Players based on the filter.
// PRE: filter has valid parameters
// POST: Returns matching entities ordered by name
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Player, error) {
	var b strings.Builder
	var args []any

	b.WriteString("SELECT " + playerColumns + " FROM player")
	if filter.Status != "" {
		b.WriteString(" WHERE status = ?")
		args = append(args, filter.Status)
	}
	b.WriteString(" ORDER BY name ASC LIMIT ? OFFSET ?")
	args = append(args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Player
	for rows.Next() {
		entity, err := scanPlayer(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// Count returns the total number of players.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM player").Scan(&count)
	return count, err
}

// scanPlayer extracts a Player from a row scanner function.
func scanPlayer(scan func(dest ...any) error) (domain.Player, error) {
	var entity domain.Player
	var accountID sql.NullString
	err := scan(&entity.ID, &accountID, &entity.Name, &entity.Email,
		&entity.PassportCode, &entity.Status)
	if err == sql.ErrNoRows {
		return domain.Player{}, fmt.Errorf("player not found: %w", err)
	}
	if err != nil {
		return domain.Player{}, err
	}
	entity.AccountID = accountID.String
	return entity, nil
}
