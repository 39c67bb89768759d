package models

import "time"

// IdeaStatuses are the lifecycle stages an idea moves through.
var IdeaStatuses = []string{"new", "researching", "validating", "building", "parked"}

// Idea represents a candidate solution being evaluated.
// Score is nil until the idea has been scored; the export document
// carries it as null.
type Idea struct {
	ID              int64  `db:"id" json:"id"`
	Title           string `db:"title" json:"title" validate:"required"`
	Pitch           string `db:"pitch" json:"pitch"`
	TargetUser      string `db:"target_user" json:"target_user"`
	ValueProp       string `db:"value_prop" json:"value_prop"`
	Differentiation string `db:"differentiation" json:"differentiation"`
	Assumptions     string `db:"assumptions" json:"assumptions"`
	Risks           string `db:"risks" json:"risks"`
	Status          string `db:"status" json:"status" validate:"oneof=new researching validating building parked"`
	Score           *int   `db:"score" json:"score" validate:"omitempty,min=0,max=100"`
	Tags            string `db:"tags" json:"tags"` // Comma-separated
	CreatedAt       string `db:"created_at" json:"created_at"`
	UpdatedAt       string `db:"updated_at" json:"updated_at"`
}

// TableName returns the table name for Idea.
func (Idea) TableName() string {
	return "ideas"
}

// CreatedAtTime returns the CreatedAt as time.Time.
func (i *Idea) CreatedAtTime() time.Time {
	return timeOf(i.CreatedAt)
}

// UpdatedAtTime returns the UpdatedAt as time.Time.
func (i *Idea) UpdatedAtTime() time.Time {
	return timeOf(i.UpdatedAt)
}

// Touch updates the UpdatedAt timestamp.
func (i *Idea) Touch() {
	i.UpdatedAt = Now()
}
