package db

import (
	"database/sql"
	"fmt"

	"ideavault/internal/models"
)

// =====================================================
// Data Management Operations
// =====================================================

// ExportAll snapshots every collection in insertion order together with
// the live counter values. The snapshot is taken inside one
// transaction, so concurrent writes cannot tear it. The result
// marshals to the backup document format.
func (r *Repository) ExportAll() (*models.Document, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	// Empty collections export as [], not null
	doc := &models.Document{
		Problems: []*models.Problem{},
		Ideas:    []*models.Idea{},
		Notes:    []*models.Note{},
		Links:    []*models.ProblemIdeaLink{},
	}

	rows, err := tx.Query(`SELECT ` + problemColumns + ` FROM problems ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		p, err := scanProblem(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		doc.Problems = append(doc.Problems, p)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	rows, err = tx.Query(`SELECT ` + ideaColumns + ` FROM ideas ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		i, err := scanIdea(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		doc.Ideas = append(doc.Ideas, i)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	rows, err = tx.Query(`SELECT ` + noteColumns + ` FROM notes ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		doc.Notes = append(doc.Notes, n)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	rows, err = tx.Query(`SELECT id, problem_id, idea_id FROM problem_idea_links ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var l models.ProblemIdeaLink
		if err := rows.Scan(&l.ID, &l.ProblemID, &l.IdeaID); err != nil {
			rows.Close()
			return nil, err
		}
		doc.Links = append(doc.Links, &l)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	doc.Counters, err = readCounters(tx)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return doc, nil
}

// ImportAll replaces the entire store with the document's contents.
// All four collections are overwritten verbatim: ids, timestamps, and
// references are written exactly as given, with no shape or referential
// checks, and the counters take the document's values. Runs in one
// transaction; the previous state survives any failure.
func (r *Repository) ImportAll(doc *models.Document) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"problems", "ideas", "notes", "problem_idea_links"} {
		if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, p := range doc.Problems {
		if _, err := tx.Exec(`
		INSERT INTO problems (id, title, description, observed_context, severity, frequency, status, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.Title, p.Description, p.ObservedContext, p.Severity,
			p.Frequency, p.Status, p.Tags, p.CreatedAt, p.UpdatedAt); err != nil {
			return fmt.Errorf("failed to import problem %d: %w", p.ID, err)
		}
	}

	for _, i := range doc.Ideas {
		if _, err := tx.Exec(`
		INSERT INTO ideas (id, title, pitch, target_user, value_prop, differentiation, assumptions, risks, status, score, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			i.ID, i.Title, i.Pitch, i.TargetUser, i.ValueProp, i.Differentiation,
			i.Assumptions, i.Risks, i.Status, scoreValue(i.Score), i.Tags,
			i.CreatedAt, i.UpdatedAt); err != nil {
			return fmt.Errorf("failed to import idea %d: %w", i.ID, err)
		}
	}

	for _, n := range doc.Notes {
		if _, err := tx.Exec(`
		INSERT INTO notes (id, note_type, content, links, problem_id, idea_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
			n.ID, n.NoteType, n.Content, n.Links,
			refValue(n.ProblemID), refValue(n.IdeaID), n.CreatedAt); err != nil {
			return fmt.Errorf("failed to import note %d: %w", n.ID, err)
		}
	}

	for _, l := range doc.Links {
		if _, err := tx.Exec(`
		INSERT INTO problem_idea_links (id, problem_id, idea_id)
		VALUES (?, ?, ?)`, l.ID, l.ProblemID, l.IdeaID); err != nil {
			return fmt.Errorf("failed to import link %d: %w", l.ID, err)
		}
	}

	if err := writeCounters(tx, doc.Counters); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	r.log.Infow("import complete",
		"problems", len(doc.Problems),
		"ideas", len(doc.Ideas),
		"notes", len(doc.Notes),
		"links", len(doc.Links))
	return nil
}

// ClearAll empties every collection and resets all counters to zero.
// The next created record of any kind takes id 1. The vault id is
// preserved.
func (r *Repository) ClearAll() error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"problems", "ideas", "notes", "problem_idea_links"} {
		if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	if err := writeCounters(tx, models.Counters{}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	r.log.Infow("vault cleared")
	return nil
}

// readCounters reads the counter values inside tx.
func readCounters(tx *sql.Tx) (models.Counters, error) {
	var c models.Counters
	rows, err := tx.Query(`SELECT name, value FROM counters`)
	if err != nil {
		return c, err
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var value int64
		if err := rows.Scan(&name, &value); err != nil {
			return c, err
		}
		switch name {
		case collProblems:
			c.Problems = value
		case collIdeas:
			c.Ideas = value
		case collNotes:
			c.Notes = value
		case collLinks:
			c.Links = value
		}
	}
	return c, rows.Err()
}

// writeCounters sets the counter values inside tx.
func writeCounters(tx *sql.Tx, c models.Counters) error {
	values := map[string]int64{
		collProblems: c.Problems,
		collIdeas:    c.Ideas,
		collNotes:    c.Notes,
		collLinks:    c.Links,
	}
	for name, value := range values {
		if _, err := tx.Exec(`UPDATE counters SET value = ? WHERE name = ?`, value, name); err != nil {
			return fmt.Errorf("failed to set counter %s: %w", name, err)
		}
	}
	return nil
}

// closeRows closes a result set and surfaces any deferred iteration
// error.
func closeRows(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	return rows.Close()
}
