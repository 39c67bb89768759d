// Package models provides data model definitions for Idea Vault.
package models

import "time"

// Problem statuses and frequencies accepted by the tracker.
var (
	ProblemStatuses = []string{"open", "solved", "ignored"}
	Frequencies     = []string{"rare", "weekly", "daily"}
)

// Problem represents an observed pain point worth tracking.
// Timestamps are RFC 3339 UTC strings and are carried verbatim
// through export and import.
type Problem struct {
	ID              int64  `db:"id" json:"id"`
	Title           string `db:"title" json:"title" validate:"required"`
	Description     string `db:"description" json:"description"`
	ObservedContext string `db:"observed_context" json:"observed_context"`
	Severity        int    `db:"severity" json:"severity" validate:"min=1,max=5"`
	Frequency       string `db:"frequency" json:"frequency" validate:"oneof=rare weekly daily"`
	Status          string `db:"status" json:"status" validate:"oneof=open solved ignored"`
	Tags            string `db:"tags" json:"tags"` // Comma-separated
	CreatedAt       string `db:"created_at" json:"created_at"`
	UpdatedAt       string `db:"updated_at" json:"updated_at"`
}

// TableName returns the table name for Problem.
func (Problem) TableName() string {
	return "problems"
}

// CreatedAtTime returns the CreatedAt as time.Time.
func (p *Problem) CreatedAtTime() time.Time {
	return timeOf(p.CreatedAt)
}

// UpdatedAtTime returns the UpdatedAt as time.Time.
func (p *Problem) UpdatedAtTime() time.Time {
	return timeOf(p.UpdatedAt)
}

// Touch updates the UpdatedAt timestamp.
func (p *Problem) Touch() {
	p.UpdatedAt = Now()
}
