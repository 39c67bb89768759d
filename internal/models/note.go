package models

import "time"

// NoteTypes are the research note categories.
var NoteTypes = []string{"interview", "competitor", "pricing", "tech", "general"}

// Note is a free-form research note. It may reference a problem, an
// idea, both, or neither; references are nulled when the target is
// deleted. Notes carry no UpdatedAt.
type Note struct {
	ID        int64  `db:"id" json:"id"`
	NoteType  string `db:"note_type" json:"note_type" validate:"oneof=interview competitor pricing tech general"`
	Content   string `db:"content" json:"content" validate:"required"`
	Links     string `db:"links" json:"links"` // Free-text references, e.g. URLs
	ProblemID *int64 `db:"problem_id" json:"problem_id"`
	IdeaID    *int64 `db:"idea_id" json:"idea_id"`
	CreatedAt string `db:"created_at" json:"created_at"`
}

// TableName returns the table name for Note.
func (Note) TableName() string {
	return "notes"
}

// CreatedAtTime returns the CreatedAt as time.Time.
func (n *Note) CreatedAtTime() time.Time {
	return timeOf(n.CreatedAt)
}
