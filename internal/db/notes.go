package db

import (
	"database/sql"

	"ideavault/internal/models"
)

// =====================================================
// Note Operations
// =====================================================

const noteColumns = `id, note_type, content, links, problem_id, idea_id, created_at`

// CreateNote inserts a new note, minting its id and stamping
// created_at. Notes carry no updated_at. References are stored as
// given; a note may point at a problem, an idea, both, or neither, and
// targets are not checked for existence. The minted id is returned and
// set on n.
func (r *Repository) CreateNote(n *models.Note) (int64, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	id, err := nextID(tx, collNotes)
	if err != nil {
		return 0, err
	}

	n.ID = id
	n.CreatedAt = models.Now()

	query := `
	INSERT INTO notes (id, note_type, content, links, problem_id, idea_id, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	if _, err := tx.Exec(query, n.ID, n.NoteType, n.Content, n.Links,
		refValue(n.ProblemID), refValue(n.IdeaID), n.CreatedAt); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// AllNotes returns every note, newest first.
func (r *Repository) AllNotes() ([]*models.Note, error) {
	return r.ListNotes(nil)
}

// ListNotes returns notes matching the given filters, newest first.
// A nil or empty builder returns everything.
func (r *Repository) ListNotes(fb *FilterBuilder) ([]*models.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes`
	var args []interface{}
	if fb.HasFilters() {
		where, whereArgs := fb.Build()
		query += " WHERE " + where
		args = whereArgs
	}
	query += ` ORDER BY created_at DESC, id DESC`
	return r.queryNotes(query, args...)
}

// NoteByID retrieves a note by id. A missing id is not an error: the
// result is (nil, nil).
func (r *Repository) NoteByID(id int64) (*models.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes WHERE id = ? LIMIT 1`
	stmt, err := r.PrepareStmt(query)
	if err != nil {
		return nil, err
	}

	var n models.Note
	var problemID, ideaID sql.NullInt64
	err = stmt.QueryRow(id).Scan(&n.ID, &n.NoteType, &n.Content, &n.Links,
		&problemID, &ideaID, &n.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	n.ProblemID = refOf(problemID)
	n.IdeaID = refOf(ideaID)
	return &n, nil
}

// UpdateNote rewrites the note's type, content, links, and references.
// created_at is preserved; notes have no updated_at to refresh. Returns
// false when no such note exists.
func (r *Repository) UpdateNote(n *models.Note) (bool, error) {
	query := `
	UPDATE notes
	SET note_type = ?, content = ?, links = ?, problem_id = ?, idea_id = ?
	WHERE id = ?
	`
	result, err := r.db.Exec(query, n.NoteType, n.Content, n.Links,
		refValue(n.ProblemID), refValue(n.IdeaID), n.ID)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// DeleteNote removes a note. Deleting a note cascades nothing. Returns
// false when no such note exists.
func (r *Repository) DeleteNote(id int64) (bool, error) {
	result, err := r.db.Exec(`DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// NotesForProblem returns the notes attached to a problem, newest
// first.
func (r *Repository) NotesForProblem(problemID int64) ([]*models.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes WHERE problem_id = ? ORDER BY created_at DESC, id DESC`
	return r.queryNotes(query, problemID)
}

// NotesForIdea returns the notes attached to an idea, newest first.
func (r *Repository) NotesForIdea(ideaID int64) ([]*models.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes WHERE idea_id = ? ORDER BY created_at DESC, id DESC`
	return r.queryNotes(query, ideaID)
}

// queryNotes runs a note select and scans the result rows.
func (r *Repository) queryNotes(query string, args ...interface{}) ([]*models.Note, error) {
	stmt, err := r.PrepareStmt(query)
	if err != nil {
		return nil, err
	}

	rows, err := stmt.Query(args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []*models.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return notes, nil
}

func scanNote(rows *sql.Rows) (*models.Note, error) {
	var n models.Note
	var problemID, ideaID sql.NullInt64
	err := rows.Scan(&n.ID, &n.NoteType, &n.Content, &n.Links,
		&problemID, &ideaID, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	n.ProblemID = refOf(problemID)
	n.IdeaID = refOf(ideaID)
	return &n, nil
}

// refValue converts an optional record reference for binding; nil
// stores NULL.
func refValue(id *int64) interface{} {
	if id == nil {
		return nil
	}
	return *id
}

// refOf converts a scanned reference column back to an optional id.
func refOf(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	id := v.Int64
	return &id
}
