package models

// ProblemIdeaLink is a many-to-many association row between a problem
// and an idea. Endpoint existence is not enforced; stale rows are
// removed when either endpoint is deleted.
type ProblemIdeaLink struct {
	ID        int64 `db:"id" json:"id"`
	ProblemID int64 `db:"problem_id" json:"problem_id"`
	IdeaID    int64 `db:"idea_id" json:"idea_id"`
}

// TableName returns the table name for ProblemIdeaLink.
func (ProblemIdeaLink) TableName() string {
	return "problem_idea_links"
}
