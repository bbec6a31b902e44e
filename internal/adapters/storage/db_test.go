package storage

import (
	"database/sql"
	"sort"
	"testing"

	_ "modernc.org/sqlite"
)

// openTestDB creates an in-memory SQLite database for testing.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// getTableNames returns sorted table names from sqlite_master, excluding internal tables.
func getTableNames(t *testing.T, db *sql.DB) []string {
	t.Helper()
	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		t.Fatalf("failed to query sqlite_master: %v", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("failed to scan table name: %v", err)
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// expectedTables is the sorted list of tables after all migrations.
var expectedTables = []string{
	"account",
	"coach_application",
	"goal",
	"match",
	"outbox",
	"player",
	"schema_version",
	"standing",
}

// TestMigrateDB_Fresh verifies all migrations apply cleanly to an empty database.
func TestMigrateDB_Fresh(t *testing.T) {
	db := openTestDB(t)
	if err := MigrateDB(db, ":memory:"); err != nil {
		t.Fatalf("MigrateDB failed on fresh db: %v", err)
	}

	version, err := currentVersion(db)
	if err != nil {
		t.Fatalf("failed to read version: %v", err)
	}
	if version != LatestSchemaVersion() {
		t.Errorf("version = %d, want %d", version, LatestSchemaVersion())
	}

	got := getTableNames(t, db)
	if len(got) != len(expectedTables) {
		t.Fatalf("tables = %v, want %v", got, expectedTables)
	}
	for i, name := range expectedTables {
		if got[i] != name {
			t.Errorf("table[%d] = %s, want %s", i, got[i], name)
		}
	}
}

// TestMigrateDB_Idempotent verifies that running MigrateDB twice produces no errors
// and no schema drift.
func TestMigrateDB_Idempotent(t *testing.T) {
	db := openTestDB(t)
	if err := MigrateDB(db, ":memory:"); err != nil {
		t.Fatalf("first MigrateDB failed: %v", err)
	}
	before := getTableNames(t, db)

	if err := MigrateDB(db, ":memory:"); err != nil {
		t.Fatalf("second MigrateDB failed: %v", err)
	}
	after := getTableNames(t, db)

	if len(before) != len(after) {
		t.Fatalf("schema drift: %v -> %v", before, after)
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("schema drift at %d: %s -> %s", i, before[i], after[i])
		}
	}
}

// TestMigrateDB_RefusesNewerSchema verifies a database from a newer binary
// is rejected instead of mangled.
func TestMigrateDB_RefusesNewerSchema(t *testing.T) {
	db := openTestDB(t)
	if err := MigrateDB(db, ":memory:"); err != nil {
		t.Fatalf("MigrateDB failed: %v", err)
	}
	if _, err := db.Exec(`UPDATE schema_version SET version = ?`, LatestSchemaVersion()+10); err != nil {
		t.Fatalf("failed to bump version: %v", err)
	}
	if err := MigrateDB(db, ":memory:"); err == nil {
		t.Error("MigrateDB accepted a database from a newer schema")
	}
}
