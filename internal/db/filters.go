package db

import (
	"fmt"
	"strings"

	"ideavault/internal/models"
)

// Filter represents a single list filter condition.
type Filter interface {
	// SQL returns the SQL fragment for this filter
	SQL() string

	// Args returns the arguments for this filter
	Args() []interface{}

	// Valid checks if the filter is valid
	Valid() bool
}

// EnumFilter filters a column against a fixed set of allowed values.
type EnumFilter struct {
	Column  string
	Value   string
	Allowed []string
}

// Valid checks if the value is one of the allowed values.
func (f *EnumFilter) Valid() bool {
	if f.Column == "" {
		return false
	}
	for _, v := range f.Allowed {
		if f.Value == v {
			return true
		}
	}
	return false
}

// SQL returns the SQL fragment for enum filtering.
func (f *EnumFilter) SQL() string {
	return f.Column + " = ?"
}

// Args returns the arguments for enum filtering.
func (f *EnumFilter) Args() []interface{} {
	return []interface{}{f.Value}
}

// SeverityFilter filters problems by exact severity.
type SeverityFilter struct {
	Severity int
}

// Valid checks if the severity is on the 1-5 scale.
func (f *SeverityFilter) Valid() bool {
	return f.Severity >= 1 && f.Severity <= 5
}

// SQL returns the SQL fragment for severity filtering.
func (f *SeverityFilter) SQL() string {
	return "severity = ?"
}

// Args returns the arguments for severity filtering.
func (f *SeverityFilter) Args() []interface{} {
	return []interface{}{f.Severity}
}

// TagsFilter filters by tag names against the comma-separated tags
// column.
type TagsFilter struct {
	Tags []string // Tag names to match
}

// Valid checks if the tag filter is valid.
func (f *TagsFilter) Valid() bool {
	if len(f.Tags) == 0 {
		return false
	}
	for _, tag := range f.Tags {
		if strings.TrimSpace(tag) == "" {
			return false
		}
	}
	return true
}

// SQL returns the SQL fragment for tag filtering.
// Uses OR logic to match any of the specified tags.
func (f *TagsFilter) SQL() string {
	var conditions []string
	for _, tag := range f.Tags {
		if tag != "" {
			conditions = append(conditions, "tags LIKE ?")
		}
	}
	if len(conditions) == 0 {
		return "1=0" // No valid tags, never match
	}
	return "(" + strings.Join(conditions, " OR ") + ")"
}

// Args returns the arguments for tag filtering.
func (f *TagsFilter) Args() []interface{} {
	var args []interface{}
	for _, tag := range f.Tags {
		if tag != "" {
			args = append(args, "%"+tag+"%")
		}
	}
	return args
}

// KeywordFilter matches a substring against any of the given columns.
type KeywordFilter struct {
	Term    string
	Columns []string
}

// Valid checks if the keyword filter is valid.
func (f *KeywordFilter) Valid() bool {
	if strings.TrimSpace(f.Term) == "" {
		return false
	}
	return len(f.Columns) > 0
}

// SQL returns the SQL fragment for keyword filtering.
// Uses OR logic to match the term in any of the columns.
func (f *KeywordFilter) SQL() string {
	var conditions []string
	for _, col := range f.Columns {
		conditions = append(conditions, col+" LIKE ?")
	}
	return "(" + strings.Join(conditions, " OR ") + ")"
}

// Args returns the arguments for keyword filtering.
func (f *KeywordFilter) Args() []interface{} {
	args := make([]interface{}, 0, len(f.Columns))
	for range f.Columns {
		args = append(args, "%"+f.Term+"%")
	}
	return args
}

// RefFilter filters notes by their problem or idea attachment.
type RefFilter struct {
	Column string
	ID     int64
}

// Valid checks if the reference filter is valid.
func (f *RefFilter) Valid() bool {
	if f.Column != "problem_id" && f.Column != "idea_id" {
		return false
	}
	return f.ID > 0
}

// SQL returns the SQL fragment for reference filtering.
func (f *RefFilter) SQL() string {
	return f.Column + " = ?"
}

// Args returns the arguments for reference filtering.
func (f *RefFilter) Args() []interface{} {
	return []interface{}{f.ID}
}

// FilterBuilder builds SQL filter conditions from multiple filters.
type FilterBuilder struct {
	filters []Filter
}

// NewFilterBuilder creates a new FilterBuilder.
func NewFilterBuilder() *FilterBuilder {
	return &FilterBuilder{
		filters: make([]Filter, 0),
	}
}

// ProblemStatus adds a problem status filter.
func (fb *FilterBuilder) ProblemStatus(status string) *FilterBuilder {
	filter := &EnumFilter{Column: "status", Value: status, Allowed: models.ProblemStatuses}
	if filter.Valid() {
		fb.filters = append(fb.filters, filter)
	}
	return fb
}

// IdeaStatus adds an idea status filter.
func (fb *FilterBuilder) IdeaStatus(status string) *FilterBuilder {
	filter := &EnumFilter{Column: "status", Value: status, Allowed: models.IdeaStatuses}
	if filter.Valid() {
		fb.filters = append(fb.filters, filter)
	}
	return fb
}

// NoteType adds a note type filter.
func (fb *FilterBuilder) NoteType(noteType string) *FilterBuilder {
	filter := &EnumFilter{Column: "note_type", Value: noteType, Allowed: models.NoteTypes}
	if filter.Valid() {
		fb.filters = append(fb.filters, filter)
	}
	return fb
}

// Frequency adds a problem frequency filter.
func (fb *FilterBuilder) Frequency(frequency string) *FilterBuilder {
	filter := &EnumFilter{Column: "frequency", Value: frequency, Allowed: models.Frequencies}
	if filter.Valid() {
		fb.filters = append(fb.filters, filter)
	}
	return fb
}

// Severity adds a severity filter.
func (fb *FilterBuilder) Severity(severity int) *FilterBuilder {
	filter := &SeverityFilter{Severity: severity}
	if filter.Valid() {
		fb.filters = append(fb.filters, filter)
	}
	return fb
}

// Tags adds a tag filter.
func (fb *FilterBuilder) Tags(tags ...string) *FilterBuilder {
	filter := &TagsFilter{Tags: tags}
	if filter.Valid() {
		fb.filters = append(fb.filters, filter)
	}
	return fb
}

// TagsFromCommaString adds tags from a comma-separated string.
func (fb *FilterBuilder) TagsFromCommaString(tagsStr string) *FilterBuilder {
	return fb.Tags(TagsFromCommaString(tagsStr)...)
}

// Keyword adds a keyword filter over the given columns.
func (fb *FilterBuilder) Keyword(term string, columns ...string) *FilterBuilder {
	filter := &KeywordFilter{Term: term, Columns: columns}
	if filter.Valid() {
		fb.filters = append(fb.filters, filter)
	}
	return fb
}

// ProblemKeyword adds a keyword filter over the problem text columns.
func (fb *FilterBuilder) ProblemKeyword(term string) *FilterBuilder {
	return fb.Keyword(term, "title", "description", "observed_context", "tags")
}

// IdeaKeyword adds a keyword filter over the idea text columns.
func (fb *FilterBuilder) IdeaKeyword(term string) *FilterBuilder {
	return fb.Keyword(term, "title", "pitch", "target_user", "value_prop", "differentiation", "assumptions", "risks", "tags")
}

// NoteKeyword adds a keyword filter over the note text columns.
func (fb *FilterBuilder) NoteKeyword(term string) *FilterBuilder {
	return fb.Keyword(term, "content", "links")
}

// NoteForProblem filters notes attached to the given problem.
func (fb *FilterBuilder) NoteForProblem(problemID int64) *FilterBuilder {
	filter := &RefFilter{Column: "problem_id", ID: problemID}
	if filter.Valid() {
		fb.filters = append(fb.filters, filter)
	}
	return fb
}

// NoteForIdea filters notes attached to the given idea.
func (fb *FilterBuilder) NoteForIdea(ideaID int64) *FilterBuilder {
	filter := &RefFilter{Column: "idea_id", ID: ideaID}
	if filter.Valid() {
		fb.filters = append(fb.filters, filter)
	}
	return fb
}

// HasFilters returns true if any filters have been added. Safe on a
// nil builder, which the list operations treat as unfiltered.
func (fb *FilterBuilder) HasFilters() bool {
	return fb != nil && len(fb.filters) > 0
}

// Count returns the number of filters.
func (fb *FilterBuilder) Count() int {
	if fb == nil {
		return 0
	}
	return len(fb.filters)
}

// Build builds the SQL WHERE clause and returns the arguments.
// Returns the SQL fragment and the arguments slice.
func (fb *FilterBuilder) Build() (string, []interface{}) {
	if !fb.HasFilters() {
		return "", nil
	}

	var sqlParts []string
	var args []interface{}

	for _, filter := range fb.filters {
		sqlParts = append(sqlParts, filter.SQL())
		args = append(args, filter.Args()...)
	}

	sql := strings.Join(sqlParts, " AND ")
	return sql, args
}

// Reset clears all filters.
func (fb *FilterBuilder) Reset() *FilterBuilder {
	fb.filters = make([]Filter, 0)
	return fb
}

// Clone creates a copy of the FilterBuilder.
func (fb *FilterBuilder) Clone() *FilterBuilder {
	clone := NewFilterBuilder()
	clone.filters = append(clone.filters, fb.filters...)
	return clone
}

// String returns a string representation of the filters (for debugging).
func (fb *FilterBuilder) String() string {
	if !fb.HasFilters() {
		return "(no filters)"
	}

	var parts []string
	for _, filter := range fb.filters {
		parts = append(parts, fmt.Sprintf("%T", filter))
	}
	return strings.Join(parts, ", ")
}

// TagsFromCommaString parses tags from a comma-separated string.
func TagsFromCommaString(tagsStr string) []string {
	tags := strings.Split(tagsStr, ",")
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			result = append(result, tag)
		}
	}
	return result
}

// NormalizeTags converts tags to a comma-separated string.
func NormalizeTags(tags []string) string {
	cleanTags := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			cleanTags = append(cleanTags, tag)
		}
	}
	return strings.Join(cleanTags, ",")
}
