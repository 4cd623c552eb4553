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

// expectedTables is the sorted list of tables the console owns.
var expectedTables = []string{
	"account",
	"audit_event",
	"notice",
	"outbox",
}

// TestInitDB_Fresh verifies the schema applies cleanly to an empty database.
func TestInitDB_Fresh(t *testing.T) {
	db := openTestDB(t)

	if err := InitDB(db); err != nil {
		t.Fatalf("InitDB failed on fresh db: %v", err)
	}

	tables := getTableNames(t, db)
	if len(tables) != len(expectedTables) {
		t.Errorf("got %d tables, want %d\ngot:  %v\nwant: %v", len(tables), len(expectedTables), tables, expectedTables)
	}
	for i, want := range expectedTables {
		if i >= len(tables) {
			t.Errorf("missing table: %s", want)
			continue
		}
		if tables[i] != want {
			t.Errorf("table[%d] = %q, want %q", i, tables[i], want)
		}
	}
}

// TestInitDB_Idempotent verifies that running InitDB twice produces no errors.
func TestInitDB_Idempotent(t *testing.T) {
	db := openTestDB(t)

	if err := InitDB(db); err != nil {
		t.Fatalf("first InitDB failed: %v", err)
	}
	if err := InitDB(db); err != nil {
		t.Fatalf("second InitDB failed: %v", err)
	}

	tables := getTableNames(t, db)
	if len(tables) != len(expectedTables) {
		t.Errorf("got %d tables after second run, want %d", len(tables), len(expectedTables))
	}
}

// TestInitDB_DataSurvival verifies that existing data survives a re-run.
func TestInitDB_DataSurvival(t *testing.T) {
	db := openTestDB(t)

	if err := InitDB(db); err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}

	_, err := db.Exec(`INSERT INTO account (id, email, role, created_at) VALUES ('a1', 'admin@test.com', 'admin', '2026-01-01T00:00:00Z')`)
	if err != nil {
		t.Fatalf("failed to insert test account: %v", err)
	}
	_, err = db.Exec(`INSERT INTO notice (id, status, title, content, created_by, created_at) VALUES ('n1', 'draft', 'Pool closed', 'Maintenance Tuesday.', 'a1', '2026-01-02T00:00:00Z')`)
	if err != nil {
		t.Fatalf("failed to insert test notice: %v", err)
	}

	if err := InitDB(db); err != nil {
		t.Fatalf("second InitDB failed: %v", err)
	}

	var email string
	if err := db.QueryRow("SELECT email FROM account WHERE id = 'a1'").Scan(&email); err != nil {
		t.Fatalf("account data lost: %v", err)
	}
	if email != "admin@test.com" {
		t.Errorf("email = %q, want %q", email, "admin@test.com")
	}

	var title string
	if err := db.QueryRow("SELECT title FROM notice WHERE id = 'n1'").Scan(&title); err != nil {
		t.Fatalf("notice data lost: %v", err)
	}
	if title != "Pool closed" {
		t.Errorf("notice title = %q, want %q", title, "Pool closed")
	}
}
