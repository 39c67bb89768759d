package models

import "time"

// timeLayout is RFC 3339 with a fixed nine-digit fraction. Fixed width
// keeps lexicographic order chronological, which the listing queries
// rely on; RFC3339Nano would trim trailing zeros and break that.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Now returns the current UTC time as an RFC 3339 string with
// nanosecond precision.
func Now() string {
	return time.Now().UTC().Format(timeLayout)
}

// timeOf parses a stored timestamp, returning the zero time when the
// value is absent or was written by a foreign backup in an unknown
// layout.
func timeOf(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
