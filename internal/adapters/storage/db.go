package storage

import (
	"database/sql"
	"fmt"
)

// migrations holds one SQL script per schema version, applied in order.
// Version n is migrations[n-1]. Scripts must be idempotent-safe only in
// the sense that MigrateDB never re-applies a version it has recorded.
var migrations = []string{
	// v1: base schema.
	`
	CREATE TABLE IF NOT EXISTS account (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'active',
		created_at TEXT NOT NULL,
		failed_logins INTEGER NOT NULL DEFAULT 0,
		locked_until TEXT
	);

	CREATE TABLE IF NOT EXISTS player (
		id TEXT PRIMARY KEY,
		account_id TEXT,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		passport_code TEXT NOT NULL UNIQUE,
		status TEXT NOT NULL,
		FOREIGN KEY (account_id) REFERENCES account(id)
	);

	CREATE TABLE IF NOT EXISTS coach_application (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		bio TEXT NOT NULL DEFAULT '',
		years_experience INTEGER NOT NULL,
		teaching_philosophy TEXT NOT NULL,
		specializations TEXT NOT NULL,
		certifications TEXT NOT NULL DEFAULT '[]',
		individual_rate INTEGER NOT NULL,
		group_rate INTEGER NOT NULL DEFAULT 0,
		understands_level1 INTEGER NOT NULL DEFAULT 0,
		commits_to_certification INTEGER NOT NULL DEFAULT 0,
		agrees_to_terms INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'pending',
		reject_reason TEXT NOT NULL DEFAULT '',
		reviewed_by TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		decided_at TEXT,
		FOREIGN KEY (account_id) REFERENCES account(id)
	);

	CREATE TABLE IF NOT EXISTS match (
		id TEXT PRIMARY KEY,
		format TEXT NOT NULL,
		side_a TEXT NOT NULL,
		side_b TEXT NOT NULL,
		games TEXT NOT NULL,
		location TEXT NOT NULL DEFAULT '',
		played_at TEXT NOT NULL,
		recorded_by TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS goal (
		id TEXT PRIMARY KEY,
		player_id TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		target INTEGER NOT NULL,
		unit TEXT NOT NULL DEFAULT '',
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		progress INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		FOREIGN KEY (player_id) REFERENCES player(id)
	);

	CREATE TABLE IF NOT EXISTS standing (
		player_id TEXT PRIMARY KEY,
		ranking_points INTEGER NOT NULL DEFAULT 0,
		matches_played INTEGER NOT NULL DEFAULT 0,
		wins INTEGER NOT NULL DEFAULT 0,
		losses INTEGER NOT NULL DEFAULT 0,
		updated_at TEXT NOT NULL,
		FOREIGN KEY (player_id) REFERENCES player(id)
	);

	CREATE TABLE IF NOT EXISTS outbox (
		id TEXT PRIMARY KEY,
		action_type TEXT NOT NULL,
		payload TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		attempts INTEGER NOT NULL DEFAULT 0,
		max_attempts INTEGER NOT NULL DEFAULT 5,
		last_attempted_at TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		external_id TEXT NOT NULL DEFAULT '',
		error_message TEXT NOT NULL DEFAULT ''
	);
	`,
	// v2: index hot lookups.
	`
	CREATE INDEX IF NOT EXISTS idx_match_played_at ON match(played_at DESC);
	CREATE INDEX IF NOT EXISTS idx_goal_player ON goal(player_id);
	CREATE INDEX IF NOT EXISTS idx_coach_application_status ON coach_application(status);
	CREATE INDEX IF NOT EXISTS idx_standing_points ON standing(ranking_points DESC);
	`,
}

// LatestSchemaVersion returns the schema version MigrateDB migrates to.
func LatestSchemaVersion() int {
	return len(migrations)
}

// MigrateDB brings the database schema up to the latest version. Applied
// versions are recorded in schema_version; each pending script runs in
// its own transaction.
// PRE: db is a valid database connection
// POST: schema_version holds LatestSchemaVersion()
func MigrateDB(db *sql.DB, dbPath string) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`); err != nil {
		return fmt.Errorf("failed to create schema_version: %w", err)
	}

	version, err := currentVersion(db)
	if err != nil {
		return err
	}
	if version > len(migrations) {
		return fmt.Errorf("database %s is at schema %d, newer than this binary (%d)", dbPath, version, len(migrations))
	}

	for v := version + 1; v <= len(migrations); v++ {
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", v, err)
		}
		if _, err := tx.Exec(migrations[v-1]); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", v, err)
		}
		if _, err := tx.Exec(`DELETE FROM schema_version`); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed to clear version: %w", v, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_version (version) VALUES (?)`, v); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed to record version: %w", v, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migration %d failed to commit: %w", v, err)
		}
	}
	return nil
}

func currentVersion(db *sql.DB) (int, error) {
	var version int
	err := db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}
