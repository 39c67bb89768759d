// Package db provides database connection management and the record
// repository for Idea Vault.
package db

import "database/sql"

// Collection names, shared by the counters table and the backup
// document.
const (
	collProblems = "problems"
	collIdeas    = "ideas"
	collNotes    = "notes"
	collLinks    = "links"
)

// schema defines all tables. The four record tables carry no primary
// keys, unique constraints, or foreign keys: restored backups are
// written verbatim and must never fail a constraint, so id uniqueness,
// duplicate link suppression, and cascades are enforced by repository
// code instead. counters and meta are internal bookkeeping tables and
// keep their primary keys; they are updated, never bulk-inserted.
const schema = `
-- Observed pain points
CREATE TABLE IF NOT EXISTS problems (
    id INTEGER NOT NULL,
    title TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    observed_context TEXT NOT NULL DEFAULT '',
    severity INTEGER NOT NULL DEFAULT 3,
    frequency TEXT NOT NULL DEFAULT 'weekly',
    status TEXT NOT NULL DEFAULT 'open',
    tags TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL DEFAULT '',
    updated_at TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_problems_id ON problems(id);
CREATE INDEX IF NOT EXISTS idx_problems_created_at ON problems(created_at);

-- Candidate solutions
CREATE TABLE IF NOT EXISTS ideas (
    id INTEGER NOT NULL,
    title TEXT NOT NULL DEFAULT '',
    pitch TEXT NOT NULL DEFAULT '',
    target_user TEXT NOT NULL DEFAULT '',
    value_prop TEXT NOT NULL DEFAULT '',
    differentiation TEXT NOT NULL DEFAULT '',
    assumptions TEXT NOT NULL DEFAULT '',
    risks TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT 'new',
    score INTEGER,
    tags TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL DEFAULT '',
    updated_at TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_ideas_id ON ideas(id);
CREATE INDEX IF NOT EXISTS idx_ideas_created_at ON ideas(created_at);

-- Research notes; problem_id and idea_id are nulled when the target
-- record is deleted
CREATE TABLE IF NOT EXISTS notes (
    id INTEGER NOT NULL,
    note_type TEXT NOT NULL DEFAULT 'general',
    content TEXT NOT NULL DEFAULT '',
    links TEXT NOT NULL DEFAULT '',
    problem_id INTEGER,
    idea_id INTEGER,
    created_at TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_notes_id ON notes(id);
CREATE INDEX IF NOT EXISTS idx_notes_problem_id ON notes(problem_id);
CREATE INDEX IF NOT EXISTS idx_notes_idea_id ON notes(idea_id);

-- Problem/idea association rows
-- No foreign keys - referential integrity managed at application level
CREATE TABLE IF NOT EXISTS problem_idea_links (
    id INTEGER NOT NULL,
    problem_id INTEGER NOT NULL,
    idea_id INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_links_problem_id ON problem_idea_links(problem_id);
CREATE INDEX IF NOT EXISTS idx_links_idea_id ON problem_idea_links(idea_id);

-- Monotonic id counters, one row per collection
CREATE TABLE IF NOT EXISTS counters (
    name TEXT PRIMARY KEY,
    value INTEGER NOT NULL DEFAULT 0
);

-- Vault-level key/value metadata (vault_id, schema marker)
CREATE TABLE IF NOT EXISTS meta (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// initSchema creates tables on first open and seeds the counter rows.
// Safe to run on every open.
func initSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return err
	}
	for _, name := range []string{collProblems, collIdeas, collNotes, collLinks} {
		if _, err := db.Exec(`INSERT OR IGNORE INTO counters (name, value) VALUES (?, 0)`, name); err != nil {
			return err
		}
	}
	return nil
}
