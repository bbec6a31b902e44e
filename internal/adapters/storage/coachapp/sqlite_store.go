package coachapp

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mightymaxworks/pickleplus-sub011/internal/adapters/storage"
	domain "github.com/mightymaxworks/pickleplus-sub011/internal/domain/coachapp"
)

const applicationColumns = `id, account_id, name, email, bio, years_experience,
	teaching_philosophy, specializations, certifications, individual_rate, group_rate,
	understands_level1, commits_to_certification, agrees_to_terms,
	status, reject_reason, reviewed_by, created_at, decided_at`

// SQLiteStore implements Store using SQLite. Specializations and
// certifications are stored as JSON arrays in TEXT columns.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new coach application store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves an Application by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Application, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+applicationColumns+" FROM coach_application WHERE id = ?", id)
	entity, err := scanApplication(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Application{}, fmt.Errorf("coach application not found: %w", err)
	}
	return entity, err
}

// GetPendingByAccountID retrieves an account's open application, if any.
// An account may have at most one application that is not yet decided.
// PRE: accountID is non-empty
// POST: Returns the open application or sql.ErrNoRows
func (s *SQLiteStore) GetPendingByAccountID(ctx context.Context, accountID string) (domain.Application, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+applicationColumns+` FROM coach_application
		 WHERE account_id = ? AND status IN (?, ?)
		 ORDER BY created_at DESC LIMIT 1`,
		accountID, domain.StatusPending, domain.StatusUnderReview)
	return scanApplication(row.Scan)
}

// Save persists an Application to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Application) error {
	specs, err := json.Marshal(entity.Specializations)
	if err != nil {
		return err
	}
	certs, err := json.Marshal(entity.Certifications)
	if err != nil {
		return err
	}
	var decidedAt any
	if !entity.DecidedAt.IsZero() {
		decidedAt = storage.FormatTime(entity.DecidedAt)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO coach_application (`+applicationColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   status=excluded.status, reject_reason=excluded.reject_reason,
		   reviewed_by=excluded.reviewed_by, decided_at=excluded.decided_at`,
		entity.ID, entity.AccountID, entity.Name, entity.Email, entity.Bio,
		entity.YearsExperience, entity.TeachingPhilosophy, string(specs), string(certs),
		entity.IndividualRate, entity.GroupRate,
		boolToInt(entity.UnderstandsLevel1), boolToInt(entity.CommitsToCertification), boolToInt(entity.AgreesToTerms),
		entity.Status, entity.RejectReason, entity.ReviewedBy,
		storage.FormatTime(entity.CreatedAt), decidedAt)
	return err
}

// List retrieves Applications based on the filter.
// PRE: filter has valid parameters
// POST: Returns matching entities, oldest first (review queue order)
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Application, error) {
	var b strings.Builder
	var args []any

	b.WriteString("SELECT " + applicationColumns + " FROM coach_application")
	if filter.Status != "" {
		b.WriteString(" WHERE status = ?")
		args = append(args, filter.Status)
	}
	b.WriteString(" ORDER BY created_at ASC LIMIT ? OFFSET ?")
	args = append(args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Application
	for rows.Next() {
		entity, err := scanApplication(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// CountByStatus returns the number of applications per status.
func (s *SQLiteStore) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT status, COUNT(*) FROM coach_application GROUP BY status")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// scanApplication extracts an Application from a row scanner function.
func scanApplication(scan func(dest ...any) error) (domain.Application, error) {
	var entity domain.Application
	var specs, certs, createdAt string
	var decidedAt sql.NullString
	var understands, commits, agrees int
	err := scan(&entity.ID, &entity.AccountID, &entity.Name, &entity.Email, &entity.Bio,
		&entity.YearsExperience, &entity.TeachingPhilosophy, &specs, &certs,
		&entity.IndividualRate, &entity.GroupRate,
		&understands, &commits, &agrees,
		&entity.Status, &entity.RejectReason, &entity.ReviewedBy,
		&createdAt, &decidedAt)
	if err != nil {
		return domain.Application{}, err
	}
	if err := json.Unmarshal([]byte(specs), &entity.Specializations); err != nil {
		return domain.Application{}, fmt.Errorf("bad specializations column: %w", err)
	}
	if err := json.Unmarshal([]byte(certs), &entity.Certifications); err != nil {
		return domain.Application{}, fmt.Errorf("bad certifications column: %w", err)
	}
	entity.UnderstandsLevel1 = understands != 0
	entity.CommitsToCertification = commits != 0
	entity.AgreesToTerms = agrees != 0
	entity.CreatedAt, _ = storage.ParseTime(createdAt)
	if decidedAt.Valid {
		entity.DecidedAt, _ = storage.ParseTime(decidedAt.String)
	}
	return entity, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
