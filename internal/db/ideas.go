package db

import (
	"database/sql"

	"ideavault/internal/models"
)

// =====================================================
// Idea Operations
// =====================================================

const ideaColumns = `id, title, pitch, target_user, value_prop, differentiation, assumptions, risks, status, score, tags, created_at, updated_at`

// CreateIdea inserts a new idea, minting its id and stamping both
// timestamps. A zero-valued status defaults to new; a nil score stays
// unscored. The minted id is returned and set on i.
func (r *Repository) CreateIdea(i *models.Idea) (int64, error) {
	if i.Status == "" {
		i.Status = "new"
	}

	tx, err := r.db.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	id, err := nextID(tx, collIdeas)
	if err != nil {
		return 0, err
	}

	now := models.Now()
	i.ID = id
	i.CreatedAt = now
	i.UpdatedAt = now

	query := `
	INSERT INTO ideas (id, title, pitch, target_user, value_prop, differentiation, assumptions, risks, status, score, tags, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	if _, err := tx.Exec(query, i.ID, i.Title, i.Pitch, i.TargetUser, i.ValueProp,
		i.Differentiation, i.Assumptions, i.Risks, i.Status, scoreValue(i.Score),
		i.Tags, i.CreatedAt, i.UpdatedAt); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// AllIdeas returns every idea, newest first.
func (r *Repository) AllIdeas() ([]*models.Idea, error) {
	return r.ListIdeas(nil)
}

// ListIdeas returns ideas matching the given filters, newest first.
// A nil or empty builder returns everything.
func (r *Repository) ListIdeas(fb *FilterBuilder) ([]*models.Idea, error) {
	query := `SELECT ` + ideaColumns + ` FROM ideas`
	var args []interface{}
	if fb.HasFilters() {
		where, whereArgs := fb.Build()
		query += " WHERE " + where
		args = whereArgs
	}
	query += ` ORDER BY created_at DESC, id DESC`
	return r.queryIdeas(query, args...)
}

// IdeaByID retrieves an idea by id. A missing id is not an error: the
// result is (nil, nil).
func (r *Repository) IdeaByID(id int64) (*models.Idea, error) {
	query := `SELECT ` + ideaColumns + ` FROM ideas WHERE id = ? LIMIT 1`
	stmt, err := r.PrepareStmt(query)
	if err != nil {
		return nil, err
	}

	var i models.Idea
	var score sql.NullInt64
	err = stmt.QueryRow(id).Scan(&i.ID, &i.Title, &i.Pitch, &i.TargetUser, &i.ValueProp,
		&i.Differentiation, &i.Assumptions, &i.Risks, &i.Status, &score,
		&i.Tags, &i.CreatedAt, &i.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	i.Score = scoreOf(score)
	return &i, nil
}

// UpdateIdea rewrites every user field of the idea with i's id,
// refreshing updated_at and preserving id and created_at. Setting a nil
// score clears a previous score. Returns false when no such idea
// exists.
func (r *Repository) UpdateIdea(i *models.Idea) (bool, error) {
	i.Touch()
	query := `
	UPDATE ideas
	SET title = ?, pitch = ?, target_user = ?, value_prop = ?, differentiation = ?, assumptions = ?, risks = ?, status = ?, score = ?, tags = ?, updated_at = ?
	WHERE id = ?
	`
	result, err := r.db.Exec(query, i.Title, i.Pitch, i.TargetUser, i.ValueProp,
		i.Differentiation, i.Assumptions, i.Risks, i.Status, scoreValue(i.Score),
		i.Tags, i.UpdatedAt, i.ID)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// DeleteIdea removes an idea. Inside the same transaction its links
// are deleted and notes referencing it are detached. Returns false,
// leaving links and notes untouched, when no such idea exists.
func (r *Repository) DeleteIdea(id int64) (bool, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`DELETE FROM ideas WHERE id = ?`, id)
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

	linkRes, err := tx.Exec(`DELETE FROM problem_idea_links WHERE idea_id = ?`, id)
	if err != nil {
		return false, err
	}
	noteRes, err := tx.Exec(`UPDATE notes SET idea_id = NULL WHERE idea_id = ?`, id)
	if err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}

	links, _ := linkRes.RowsAffected()
	notes, _ := noteRes.RowsAffected()
	r.log.Debugw("idea deleted", "id", id, "links_removed", links, "notes_detached", notes)
	return true, nil
}

// IdeaCountByStatus returns idea counts grouped by status. Statuses
// with no ideas are absent from the map.
func (r *Repository) IdeaCountByStatus() (map[string]int, error) {
	rows, err := r.db.Query(`SELECT status, COUNT(*) FROM ideas GROUP BY status`)
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

// RecentIdeas returns the most recently created ideas, newest first.
// A non-positive limit means the default of 5.
func (r *Repository) RecentIdeas(limit int) ([]*models.Idea, error) {
	if limit <= 0 {
		limit = 5
	}
	query := `SELECT ` + ideaColumns + ` FROM ideas ORDER BY created_at DESC, id DESC LIMIT ?`
	return r.queryIdeas(query, limit)
}

// queryIdeas runs an idea select and scans the result rows.
func (r *Repository) queryIdeas(query string, args ...interface{}) ([]*models.Idea, error) {
	stmt, err := r.PrepareStmt(query)
	if err != nil {
		return nil, err
	}

	rows, err := stmt.Query(args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ideas []*models.Idea
	for rows.Next() {
		i, err := scanIdea(rows)
		if err != nil {
			return nil, err
		}
		ideas = append(ideas, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ideas, nil
}

func scanIdea(rows *sql.Rows) (*models.Idea, error) {
	var i models.Idea
	var score sql.NullInt64
	err := rows.Scan(&i.ID, &i.Title, &i.Pitch, &i.TargetUser, &i.ValueProp,
		&i.Differentiation, &i.Assumptions, &i.Risks, &i.Status, &score,
		&i.Tags, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return nil, err
	}
	i.Score = scoreOf(score)
	return &i, nil
}

// scoreValue converts an optional score for binding; nil stores NULL.
func scoreValue(score *int) interface{} {
	if score == nil {
		return nil
	}
	return *score
}

// scoreOf converts a scanned score column back to an optional int.
func scoreOf(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	score := int(v.Int64)
	return &score
}
