package db

import (
	"database/sql"

	"ideavault/internal/models"
)

// =====================================================
// Problem Operations
// =====================================================

const problemColumns = `id, title, description, observed_context, severity, frequency, status, tags, created_at, updated_at`

// CreateProblem inserts a new problem, minting its id and stamping both
// timestamps. Zero-valued severity, frequency, and status take their
// defaults (3, weekly, open). The minted id is returned and set on p.
func (r *Repository) CreateProblem(p *models.Problem) (int64, error) {
	if p.Severity == 0 {
		p.Severity = 3
	}
	if p.Frequency == "" {
		p.Frequency = "weekly"
	}
	if p.Status == "" {
		p.Status = "open"
	}

	tx, err := r.db.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	id, err := nextID(tx, collProblems)
	if err != nil {
		return 0, err
	}

	now := models.Now()
	p.ID = id
	p.CreatedAt = now
	p.UpdatedAt = now

	query := `
	INSERT INTO problems (id, title, description, observed_context, severity, frequency, status, tags, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	if _, err := tx.Exec(query, p.ID, p.Title, p.Description, p.ObservedContext,
		p.Severity, p.Frequency, p.Status, p.Tags, p.CreatedAt, p.UpdatedAt); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// AllProblems returns every problem, newest first.
func (r *Repository) AllProblems() ([]*models.Problem, error) {
	return r.ListProblems(nil)
}

// ListProblems returns problems matching the given filters, newest
// first. A nil or empty builder returns everything.
func (r *Repository) ListProblems(fb *FilterBuilder) ([]*models.Problem, error) {
	query := `SELECT ` + problemColumns + ` FROM problems`
	var args []interface{}
	if fb.HasFilters() {
		where, whereArgs := fb.Build()
		query += " WHERE " + where
		args = whereArgs
	}
	query += ` ORDER BY created_at DESC, id DESC`
	return r.queryProblems(query, args...)
}

// ProblemByID retrieves a problem by id. A missing id is not an error:
// the result is (nil, nil).
func (r *Repository) ProblemByID(id int64) (*models.Problem, error) {
	query := `SELECT ` + problemColumns + ` FROM problems WHERE id = ? LIMIT 1`
	stmt, err := r.PrepareStmt(query)
	if err != nil {
		return nil, err
	}

	var p models.Problem
	err = stmt.QueryRow(id).Scan(&p.ID, &p.Title, &p.Description, &p.ObservedContext,
		&p.Severity, &p.Frequency, &p.Status, &p.Tags, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProblem rewrites every user field of the problem with p's id,
// refreshing updated_at and preserving id and created_at. Returns false
// when no such problem exists.
func (r *Repository) UpdateProblem(p *models.Problem) (bool, error) {
	p.Touch()
	query := `
	UPDATE problems
	SET title = ?, description = ?, observed_context = ?, severity = ?, frequency = ?, status = ?, tags = ?, updated_at = ?
	WHERE id = ?
	`
	result, err := r.db.Exec(query, p.Title, p.Description, p.ObservedContext,
		p.Severity, p.Frequency, p.Status, p.Tags, p.UpdatedAt, p.ID)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// DeleteProblem removes a problem. Inside the same transaction its
// links are deleted and notes referencing it are detached. Returns
// false, leaving links and notes untouched, when no such problem
// exists.
func (r *Repository) DeleteProblem(id int64) (bool, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`DELETE FROM problems WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}

	linkRes, err := tx.Exec(`DELETE FROM problem_idea_links WHERE problem_id = ?`, id)
	if err != nil {
		return false, err
	}
	noteRes, err := tx.Exec(`UPDATE notes SET problem_id = NULL WHERE problem_id = ?`, id)
	if err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}

	links, _ := linkRes.RowsAffected()
	notes, _ := noteRes.RowsAffected()
	r.log.Debugw("problem deleted", "id", id, "links_removed", links, "notes_detached", notes)
	return true, nil
}

// ProblemCountByStatus returns problem counts grouped by status.
// Statuses with no problems are absent from the map.
func (r *Repository) ProblemCountByStatus() (map[string]int, error) {
	rows, err := r.db.Query(`SELECT status, COUNT(*) FROM problems GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

// RecentProblems returns the most recently created problems, newest
// first. A non-positive limit means the default of 5.
func (r *Repository) RecentProblems(limit int) ([]*models.Problem, error) {
	if limit <= 0 {
		limit = 5
	}
	query := `SELECT ` + problemColumns + ` FROM problems ORDER BY created_at DESC, id DESC LIMIT ?`
	return r.queryProblems(query, limit)
}

// queryProblems runs a problem select and scans the result rows.
func (r *Repository) queryProblems(query string, args ...interface{}) ([]*models.Problem, error) {
	stmt, err := r.PrepareStmt(query)
	if err != nil {
		return nil, err
	}

	rows, err := stmt.Query(args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var problems []*models.Problem
	for rows.Next() {
		p, err := scanProblem(rows)
		if err != nil {
			return nil, err
		}
		problems = append(problems, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return problems, nil
}

func scanProblem(rows *sql.Rows) (*models.Problem, error) {
	var p models.Problem
	err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.ObservedContext,
		&p.Severity, &p.Frequency, &p.Status, &p.Tags, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
