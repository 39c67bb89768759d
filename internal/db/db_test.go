// Package db tests for database connection management.
package db

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"ideavault/internal/identity"
	"ideavault/internal/models"
)

// setupTestDB creates an in-memory SQLite database with the vault
// schema for testing.
func setupTestDB(tb testing.TB) *sql.DB {
	tb.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		tb.Fatalf("Failed to create test database: %v", err)
	}

	// One connection, same as Open: a second pooled connection would
	// see a separate empty in-memory database.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		tb.Fatalf("Failed to create test schema: %v", err)
	}
	return db
}

// =====================================================
// Open Tests
// =====================================================

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	d, err := Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer d.Close()

	// Database file created under the data directory
	if _, err := os.Stat(filepath.Join(dir, "ideavault.db")); err != nil {
		t.Errorf("Expected database file to exist: %v", err)
	}

	// Schema is usable immediately
	repo := NewRepository(d.DB, nil)
	defer repo.Close()
	id, err := repo.CreateProblem(&models.Problem{Title: "First"})
	if err != nil {
		t.Fatalf("CreateProblem on fresh database failed: %v", err)
	}
	if id != 1 {
		t.Errorf("Expected first id to be 1, got %d", id)
	}
}

func TestOpen_createsDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "vault")

	d, err := Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer d.Close()

	if _, err := os.Stat(dir); err != nil {
		t.Errorf("Expected data directory to be created: %v", err)
	}
}

func TestOpen_reopenKeepsData(t *testing.T) {
	dir := t.TempDir()

	d, err := Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	repo := NewRepository(d.DB, nil)
	if _, err := repo.CreateProblem(&models.Problem{Title: "Persisted"}); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	repo.Close()
	d.Close()

	// Reopen the same directory
	d, err = Open(dir)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer d.Close()

	repo = NewRepository(d.DB, nil)
	defer repo.Close()
	p, err := repo.ProblemByID(1)
	if err != nil {
		t.Fatalf("ProblemByID failed: %v", err)
	}
	if p == nil || p.Title != "Persisted" {
		t.Errorf("Expected problem to survive reopen, got %+v", p)
	}
}

func TestOpen_vaultID(t *testing.T) {
	dir := t.TempDir()

	d, err := Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	first := d.VaultID
	d.Close()

	if !identity.IsValid(first) {
		t.Fatalf("Expected a valid vault id, got %q", first)
	}

	// Same id on reopen
	d, err = Open(dir)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer d.Close()

	if d.VaultID != first {
		t.Errorf("Expected vault id %q to persist, got %q", first, d.VaultID)
	}
}

// =====================================================
// Counter Tests
// =====================================================

func TestInitSchema_seedsCounters(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	rows, err := db.Query(`SELECT name, value FROM counters ORDER BY name`)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	defer rows.Close()

	counters := make(map[string]int64)
	for rows.Next() {
		var name string
		var value int64
		if err := rows.Scan(&name, &value); err != nil {
			t.Fatalf("Scan failed: %v", err)
		}
		counters[name] = value
	}

	for _, name := range []string{collProblems, collIdeas, collNotes, collLinks} {
		value, ok := counters[name]
		if !ok {
			t.Errorf("Expected counter %q to be seeded", name)
		}
		if value != 0 {
			t.Errorf("Expected counter %q to start at 0, got %d", name, value)
		}
	}
}

func TestInitSchema_idempotent(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewRepository(db, nil)
	defer repo.Close()
	if _, err := repo.CreateProblem(&models.Problem{Title: "Before"}); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	// Re-running bootstrap must not reset counters or drop data
	if err := initSchema(db); err != nil {
		t.Fatalf("initSchema rerun failed: %v", err)
	}

	id, err := repo.CreateProblem(&models.Problem{Title: "After"})
	if err != nil {
		t.Fatalf("CreateProblem failed: %v", err)
	}
	if id != 2 {
		t.Errorf("Expected id 2 after bootstrap rerun, got %d", id)
	}
}

func TestCounters_independentPerCollection(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	repo := NewRepository(db, nil)
	defer repo.Close()

	pid, err := repo.CreateProblem(&models.Problem{Title: "P"})
	if err != nil {
		t.Fatalf("CreateProblem failed: %v", err)
	}
	iid, err := repo.CreateIdea(&models.Idea{Title: "I"})
	if err != nil {
		t.Fatalf("CreateIdea failed: %v", err)
	}
	nid, err := repo.CreateNote(&models.Note{NoteType: "general", Content: "N"})
	if err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}

	// Each collection has its own sequence
	if pid != 1 || iid != 1 || nid != 1 {
		t.Errorf("Expected independent sequences starting at 1, got problem=%d idea=%d note=%d", pid, iid, nid)
	}
}

func TestCounters_neverReuseIDs(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	repo := NewRepository(db, nil)
	defer repo.Close()

	id1, err := repo.CreateProblem(&models.Problem{Title: "One"})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if _, err := repo.DeleteProblem(id1); err != nil {
		t.Fatalf("DeleteProblem failed: %v", err)
	}

	// The deleted id stays burned
	id2, err := repo.CreateProblem(&models.Problem{Title: "Two"})
	if err != nil {
		t.Fatalf("CreateProblem failed: %v", err)
	}
	if id2 != id1+1 {
		t.Errorf("Expected id %d after deleting id %d, got %d", id1+1, id1, id2)
	}
}
