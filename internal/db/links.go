package db

import "ideavault/internal/models"

// =====================================================
// Problem/Idea Link Operations
// =====================================================

// LinkProblemToIdea associates a problem with an idea. Returns false
// without minting anything when the pair is already linked. Endpoint
// existence is not checked; a link to a missing record is tolerated
// the same way imported links are.
func (r *Repository) LinkProblemToIdea(problemID, ideaID int64) (bool, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	var n int
	err = tx.QueryRow(`SELECT COUNT(*) FROM problem_idea_links WHERE problem_id = ? AND idea_id = ?`,
		problemID, ideaID).Scan(&n)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	id, err := nextID(tx, collLinks)
	if err != nil {
		return false, err
	}
	if _, err := tx.Exec(`INSERT INTO problem_idea_links (id, problem_id, idea_id) VALUES (?, ?, ?)`,
		id, problemID, ideaID); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

// UnlinkProblemFromIdea removes the link between a problem and an
// idea. Returns false when no such link exists.
func (r *Repository) UnlinkProblemFromIdea(problemID, ideaID int64) (bool, error) {
	result, err := r.db.Exec(`DELETE FROM problem_idea_links WHERE problem_id = ? AND idea_id = ?`,
		problemID, ideaID)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// IdeasForProblem returns the ideas linked to a problem, in insertion
// order. An idea reached through duplicate link rows appears once.
func (r *Repository) IdeasForProblem(problemID int64) ([]*models.Idea, error) {
	query := `SELECT ` + ideaColumns + ` FROM ideas
	WHERE id IN (SELECT idea_id FROM problem_idea_links WHERE problem_id = ?)
	ORDER BY rowid`
	return r.queryIdeas(query, problemID)
}

// ProblemsForIdea returns the problems linked to an idea, in insertion
// order. A problem reached through duplicate link rows appears once.
func (r *Repository) ProblemsForIdea(ideaID int64) ([]*models.Problem, error) {
	query := `SELECT ` + problemColumns + ` FROM problems
	WHERE id IN (SELECT problem_id FROM problem_idea_links WHERE idea_id = ?)
	ORDER BY rowid`
	return r.queryProblems(query, ideaID)
}

// LinkedProblemIDsForIdea returns the problem ids linked to an idea in
// link insertion order, duplicates included.
func (r *Repository) LinkedProblemIDsForIdea(ideaID int64) ([]int64, error) {
	stmt, err := r.PrepareStmt(`SELECT problem_id FROM problem_idea_links WHERE idea_id = ? ORDER BY rowid`)
	if err != nil {
		return nil, err
	}

	rows, err := stmt.Query(ideaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

// SetProblemLinksForIdea replaces the idea's entire link set: every
// existing link for the idea is removed and one fresh link is minted
// per element of problemIDs, in order, exactly as given. No duplicate
// or existence checks apply, and the link counter advances even when
// the same set is written back.
func (r *Repository) SetProblemLinksForIdea(ideaID int64, problemIDs []int64) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM problem_idea_links WHERE idea_id = ?`, ideaID); err != nil {
		return err
	}
	for _, pid := range problemIDs {
		id, err := nextID(tx, collLinks)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(`INSERT INTO problem_idea_links (id, problem_id, idea_id) VALUES (?, ?, ?)`,
			id, pid, ideaID); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	r.log.Debugw("idea links replaced", "idea_id", ideaID, "count", len(problemIDs))
	return nil
}

// AllLinks returns every link row in insertion order.
func (r *Repository) AllLinks() ([]*models.ProblemIdeaLink, error) {
	stmt, err := r.PrepareStmt(`SELECT id, problem_id, idea_id FROM problem_idea_links ORDER BY rowid`)
	if err != nil {
		return nil, err
	}

	rows, err := stmt.Query()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []*models.ProblemIdeaLink
	for rows.Next() {
		var l models.ProblemIdeaLink
		if err := rows.Scan(&l.ID, &l.ProblemID, &l.IdeaID); err != nil {
			return nil, err
		}
		links = append(links, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return links, nil
}
