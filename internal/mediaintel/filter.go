package mediaintel

import "time"

// AllValue is the sentinel selector value meaning "no constraint" for a
// categorical filter, matching the dashboard's "All" dropdown entry.
const AllValue = "All"

// Criteria is a conjunction of optional constraints over a record set.
// A nil date bound or an empty/"All" categorical value means the
// corresponding constraint is inactive.
type Criteria struct {
	DateStart *time.Time `json:"date_start,omitempty"`
	DateEnd   *time.Time `json:"date_end,omitempty"`
	Platform  string     `json:"platform,omitempty"`
	Sentiment string     `json:"sentiment,omitempty"`
	MediaType string     `json:"media_type,omitempty"`
	Location  string     `json:"location,omitempty"`
}

// IsZero reports whether no constraint is active.
func (c Criteria) IsZero() bool {
	return c.DateStart == nil && c.DateEnd == nil &&
		!active(c.Platform) && !active(c.Sentiment) &&
		!active(c.MediaType) && !active(c.Location)
}

// Matches reports whether the record satisfies every active constraint.
// Date bounds are inclusive and compared at day granularity.
func (c Criteria) Matches(r Record) bool {
	if c.DateStart != nil && r.Date.Before(day(*c.DateStart)) {
		return false
	}
	if c.DateEnd != nil && r.Date.After(day(*c.DateEnd)) {
		return false
	}
	if active(c.Platform) && r.Platform != c.Platform {
		return false
	}
	if active(c.Sentiment) && r.Sentiment != c.Sentiment {
		return false
	}
	if active(c.MediaType) && r.MediaType != c.MediaType {
		return false
	}
	if active(c.Location) && r.Location != c.Location {
		return false
	}
	return true
}

// Filter returns the subsequence of records satisfying every active
// constraint, in the original order. Records are never mutated. An
// inverted date range (start after end) simply yields an empty result;
// ordering the bounds is the caller's concern.
func Filter(records []Record, c Criteria) []Record {
	if c.IsZero() {
		out := make([]Record, len(records))
		copy(out, records)
		return out
	}
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if c.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

func active(v string) bool {
	return v != "" && v != AllValue
}

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
