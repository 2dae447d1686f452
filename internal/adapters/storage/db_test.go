package storage

import (
	"database/sql"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	_ "modernc.org/sqlite"
)

// openTestDB creates an in-memory SQLite database for testing.
// A single connection keeps every query on the same in-memory database.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	db.SetMaxOpenConns(1)
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

// getTableSQL returns sorted CREATE TABLE statements from sqlite_master.
func getTableSQL(t *testing.T, db *sql.DB) []string {
	t.Helper()
	rows, err := db.Query("SELECT sql FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' AND sql IS NOT NULL ORDER BY name")
	if err != nil {
		t.Fatalf("failed to query sqlite_master: %v", err)
	}
	defer rows.Close()

	var sqls []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			t.Fatalf("failed to scan sql: %v", err)
		}
		sqls = append(sqls, strings.Join(strings.Fields(s), " "))
	}
	sort.Strings(sqls)
	return sqls
}

// expectedTables is the sorted list of tables after all migrations.
var expectedTables = []string{
	"developer",
	"events",
	"kv_entry",
	"schema_version",
}

// TestMigrateDB_Fresh verifies all migrations apply cleanly to an empty database.
func TestMigrateDB_Fresh(t *testing.T) {
	db := openTestDB(t)

	if err := MigrateDB(db, ":memory:"); err != nil {
		t.Fatalf("MigrateDB failed on fresh db: %v", err)
	}

	version, err := SchemaVersion(db)
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if version != LatestSchemaVersion() {
		t.Errorf("version = %d, want %d", version, LatestSchemaVersion())
	}

	tables := getTableNames(t, db)
	if strings.Join(tables, ",") != strings.Join(expectedTables, ",") {
		t.Errorf("tables = %v, want %v", tables, expectedTables)
	}
}

// TestMigrateDB_Idempotent verifies that running MigrateDB twice keeps the version and schema.
func TestMigrateDB_Idempotent(t *testing.T) {
	db := openTestDB(t)

	if err := MigrateDB(db, ":memory:"); err != nil {
		t.Fatalf("first MigrateDB failed: %v", err)
	}
	version1, _ := SchemaVersion(db)
	schema1 := getTableSQL(t, db)

	if err := MigrateDB(db, ":memory:"); err != nil {
		t.Fatalf("second MigrateDB failed: %v", err)
	}
	version2, _ := SchemaVersion(db)
	schema2 := getTableSQL(t, db)

	if version1 != version2 {
		t.Errorf("version changed after idempotent run: %d -> %d", version1, version2)
	}
	if strings.Join(schema1, "\n") != strings.Join(schema2, "\n") {
		t.Error("schema changed after idempotent run")
	}
}

// TestMigrateDB_VersionProgression verifies that SchemaVersion reports 0 before
// migration and the latest version after.
func TestMigrateDB_VersionProgression(t *testing.T) {
	db := openTestDB(t)

	v, err := SchemaVersion(db)
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if v != 0 {
		t.Errorf("initial version = %d, want 0", v)
	}

	if err := MigrateDB(db, ":memory:"); err != nil {
		t.Fatalf("MigrateDB failed: %v", err)
	}
	v, _ = SchemaVersion(db)
	if v != LatestSchemaVersion() {
		t.Errorf("post-migration version = %d, want %d", v, LatestSchemaVersion())
	}
}

// TestMigrateDB_DataSurvival verifies existing rows survive a second migration run.
func TestMigrateDB_DataSurvival(t *testing.T) {
	db := openTestDB(t)
	if err := MigrateDB(db, ":memory:"); err != nil {
		t.Fatalf("MigrateDB failed: %v", err)
	}

	if _, err := db.Exec(`INSERT INTO kv_entry (key, value, updated_at) VALUES ('siteTheme', '{"p1":"#000000"}', '2026-01-01T00:00:00Z')`); err != nil {
		t.Fatalf("insert kv: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO events (title, event_date) VALUES ('Beach Cleanup', '2026-03-12')`); err != nil {
		t.Fatalf("insert event: %v", err)
	}

	if err := MigrateDB(db, ":memory:"); err != nil {
		t.Fatalf("second MigrateDB failed: %v", err)
	}

	var value string
	if err := db.QueryRow("SELECT value FROM kv_entry WHERE key = 'siteTheme'").Scan(&value); err != nil {
		t.Fatalf("kv data lost: %v", err)
	}
	var location string
	if err := db.QueryRow("SELECT location FROM events WHERE title = 'Beach Cleanup'").Scan(&location); err != nil {
		t.Fatalf("event data lost: %v", err)
	}
	if location != "" {
		t.Errorf("location default = %q, want empty", location)
	}
}

// TestMigrateDB_BackupOnUpgrade verifies an on-disk database is copied before pending migrations run.
func TestMigrateDB_BackupOnUpgrade(t *testing.T) {
	path := filepath.Join(t.TempDir(), "club.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	db.SetMaxOpenConns(1)
	defer db.Close()

	if _, err := SchemaVersion(db); err != nil {
		t.Fatalf("SchemaVersion: %v", err)
	}
	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := migrateBaseline(tx); err != nil {
		t.Fatalf("baseline: %v", err)
	}
	tx.Exec("INSERT INTO schema_version (version, description) VALUES (1, 'baseline')")
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	if err := MigrateDB(db, path); err != nil {
		t.Fatalf("MigrateDB: %v", err)
	}
	if _, err := os.Stat(path + ".bak-v1"); err != nil {
		t.Errorf("expected backup file: %v", err)
	}
	if v, _ := SchemaVersion(db); v != LatestSchemaVersion() {
		t.Errorf("version = %d, want %d", v, LatestSchemaVersion())
	}
}

func TestOpenSQLite_AppliesPragmas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.db")
	db, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer db.Close()

	var mode string
	if err := db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatal(err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
	var fk int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatal(err)
	}
	if fk != 1 {
		t.Errorf("foreign_keys = %d, want 1", fk)
	}
	if err := MigrateDB(db, path); err != nil {
		t.Fatalf("MigrateDB after open: %v", err)
	}
}

func TestOpenSQLite_BadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "site.db")
	if db, err := OpenSQLite(path); err == nil {
		db.Close()
		t.Error("expected an error for a directory that does not exist")
	}
}
