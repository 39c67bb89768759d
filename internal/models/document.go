package models

// Counters holds the high-water mark of minted ids per collection.
// Values only grow during normal operation; import replaces them and
// clear resets them to zero.
type Counters struct {
	Problems int64 `json:"problems"`
	Ideas    int64 `json:"ideas"`
	Notes    int64 `json:"notes"`
	Links    int64 `json:"links"`
}

// Document is the backup interchange format: every collection in
// insertion order plus the counter values. A document produced by
// export imports back to an identical store.
type Document struct {
	Problems []*Problem         `json:"problems"`
	Ideas    []*Idea            `json:"ideas"`
	Notes    []*Note            `json:"notes"`
	Links    []*ProblemIdeaLink `json:"links"`
	Counters Counters           `json:"counters"`
}
