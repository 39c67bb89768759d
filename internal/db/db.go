// Package db provides database connection management and operations.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"ideavault/internal/identity"
)

// DB wraps the sql.DB with vault-specific configuration.
type DB struct {
	*sql.DB

	// VaultID identifies this vault installation. Minted on first
	// open, stable for the life of the database file.
	VaultID string
}

// Open opens the vault database under dataDir, creating the directory,
// the schema, and the vault id on first use. The database is opened
// with WAL mode and a single connection; SQLite serializes writers.
func Open(dataDir string) (*DB, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "ideavault.db")

	// Pure Go driver, no CGO
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support multiple writers
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	vaultID, err := ensureVaultID(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to establish vault id: %w", err)
	}

	return &DB{DB: db, VaultID: vaultID}, nil
}

// ensureVaultID reads the stored vault id, minting one on first open.
func ensureVaultID(db *sql.DB) (string, error) {
	var id string
	err := db.QueryRow(`SELECT value FROM meta WHERE key = 'vault_id'`).Scan(&id)
	switch {
	case err == sql.ErrNoRows:
		id = identity.NewVaultID()
		if _, err := db.Exec(`INSERT INTO meta (key, value) VALUES ('vault_id', ?)`, id); err != nil {
			return "", err
		}
		return id, nil
	case err != nil:
		return "", err
	}

	if !identity.IsValid(id) {
		return "", fmt.Errorf("stored vault id is malformed: %q", id)
	}
	return id, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.DB.Close()
}
