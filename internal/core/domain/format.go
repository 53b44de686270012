package domain

import "time"

const displayLayout = "2006-01-02 15:04:05"

// HumanDate renders an RFC 3339 timestamp in loc. Anything unparsable is
// returned as-is.
func HumanDate(raw string, loc *time.Location) string {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(displayLayout)
}
