package sqlite_test

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"promptcat/internal/sqlite"
)

// databaseFileName is the fixture database created per test.
const databaseFileName = "fixture.db"

func createFixtureDatabase(t *testing.T, statements []string) string {
	t.Helper()
	databasePath := filepath.Join(t.TempDir(), databaseFileName)

	databaseHandle, openError := sql.Open("sqlite", databasePath)
	if openError != nil {
		t.Fatalf("open fixture database: %v", openError)
	}
	defer databaseHandle.Close()

	for _, statement := range statements {
		if _, executeError := databaseHandle.Exec(statement); executeError != nil {
			t.Fatalf("execute %q: %v", statement, executeError)
		}
	}
	return databasePath
}

func TestIsDatabaseFile(t *testing.T) {
	databasePath := createFixtureDatabase(t, []string{
		"CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT)",
	})
	if !sqlite.IsDatabaseFile(databasePath) {
		t.Errorf("expected %s to be recognized as a database", databasePath)
	}

	textFilePath := filepath.Join(t.TempDir(), "plain.txt")
	if writeError := os.WriteFile(textFilePath, []byte("not a database"), 0o600); writeError != nil {
		t.Fatalf("write text fixture: %v", writeError)
	}
	if sqlite.IsDatabaseFile(textFilePath) {
		t.Errorf("expected %s not to be recognized as a database", textFilePath)
	}

	if sqlite.IsDatabaseFile(filepath.Join(t.TempDir(), "missing.db")) {
		t.Errorf("expected a missing file not to be recognized as a database")
	}
}

func TestExtractSchema(t *testing.T) {
	databasePath := createFixtureDatabase(t, []string{
		"CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT)",
		"CREATE VIEW user_names AS SELECT name FROM users",
		"CREATE INDEX idx_users_name ON users (name)",
	})

	schema, extractError := sqlite.ExtractSchema(databasePath)
	if extractError != nil {
		t.Fatalf("extract schema: %v", extractError)
	}

	expectedFragments := []string{
		"-- Tables",
		"CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT);",
		"-- Views",
		"CREATE VIEW user_names AS SELECT name FROM users;",
		"-- Indexes",
		"CREATE INDEX idx_users_name ON users (name);",
	}
	previousPosition := -1
	for _, fragment := range expectedFragments {
		position := strings.Index(schema, fragment)
		if position < 0 {
			t.Fatalf("expected fragment %q in schema:\n%s", fragment, schema)
		}
		if position < previousPosition {
			t.Fatalf("fragment %q is out of order in schema:\n%s", fragment, schema)
		}
		previousPosition = position
	}
}

func TestExtractSchemaTablesOnly(t *testing.T) {
	databasePath := createFixtureDatabase(t, []string{
		"CREATE TABLE notes (body TEXT)",
	})

	schema, extractError := sqlite.ExtractSchema(databasePath)
	if extractError != nil {
		t.Fatalf("extract schema: %v", extractError)
	}
	if strings.Contains(schema, "-- Views") || strings.Contains(schema, "-- Indexes") {
		t.Fatalf("expected empty sections to be omitted:\n%s", schema)
	}
	if !strings.Contains(schema, "CREATE TABLE notes (body TEXT);") {
		t.Fatalf("expected table definition in schema:\n%s", schema)
	}
}
