// Package db provides CRUD repository operations for Idea Vault records.
package db

import (
	"database/sql"
	"fmt"
	"sync"

	"ideavault/internal/logging"
)

// Repository provides the full record operation surface over the vault
// database. Calls are synchronous; every logical operation, including
// each cascade, runs inside a single transaction.
type Repository struct {
	db  *sql.DB
	log *logging.Logger

	// Prepared statement cache for frequently used queries.
	// Statements are prepared on first use and reused.
	stmtCache sync.Map // map[string]*sql.Stmt
}

// NewRepository creates a new Repository instance. A nil logger
// disables repository logging.
func NewRepository(db *sql.DB, log *logging.Logger) *Repository {
	if log == nil {
		log = logging.NewNop()
	}
	return &Repository{db: db, log: log}
}

// PrepareStmt gets or creates a prepared statement from cache.
// Key is the query string, value is the prepared statement.
func (r *Repository) PrepareStmt(query string) (*sql.Stmt, error) {
	if stmt, ok := r.stmtCache.Load(query); ok {
		return stmt.(*sql.Stmt), nil
	}

	stmt, err := r.db.Prepare(query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare statement: %w", err)
	}

	// Store in cache (if already stored by another goroutine, use existing)
	actual, loaded := r.stmtCache.LoadOrStore(query, stmt)
	if loaded {
		stmt.Close()
		return actual.(*sql.Stmt), nil
	}

	return stmt, nil
}

// Close closes all cached prepared statements.
// Should be called when the Repository is no longer needed.
func (r *Repository) Close() error {
	var firstErr error
	r.stmtCache.Range(func(key, value interface{}) bool {
		stmt := value.(*sql.Stmt)
		if err := stmt.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		return true
	})
	return firstErr
}

// nextID mints the next id for a collection inside tx. Counters only
// move forward: deleting records never frees their ids, so an id is
// never reused for the life of the vault.
func nextID(tx *sql.Tx, collection string) (int64, error) {
	if _, err := tx.Exec(`UPDATE counters SET value = value + 1 WHERE name = ?`, collection); err != nil {
		return 0, err
	}
	var id int64
	if err := tx.QueryRow(`SELECT value FROM counters WHERE name = ?`, collection).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}
