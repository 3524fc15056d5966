package mediaintel

import "time"

// Canonical column names for a media mention row. ReadCSV and ReadXLSX
// normalize whatever headers the source file carries onto these keys.
const (
	ColDate        = "Date"
	ColEngagements = "Engagements"
	ColSentiment   = "Sentiment"
	ColPlatform    = "Platform"
	ColMediaType   = "Media Type"
	ColLocation    = "Location"
)

// UnknownValue is substituted for missing or blank categorical cells.
const UnknownValue = "Unknown"

// RawRow is one untyped row from an external tabular source, keyed by
// canonical column name. Absent cells are simply missing from the map.
// No invariants are guaranteed.
type RawRow map[string]string

// Record is a validated, type-coerced media mention. After cleaning,
// Date is always set (UTC midnight, day granularity), Engagements is
// non-negative, and the four categorical fields are non-empty strings.
type Record struct {
	Date        time.Time `json:"date"`
	Engagements int64     `json:"engagements"`
	Platform    string    `json:"platform"`
	Sentiment   string    `json:"sentiment"`
	MediaType   string    `json:"media_type"`
	Location    string    `json:"location"`
}

// Raw converts a Record back into its RawRow representation, using the
// same date layout the cleaner prefers. Cleaning the result yields an
// equivalent Record.
func (r Record) Raw() RawRow {
	return RawRow{
		ColDate:        r.Date.Format(dateLayout),
		ColEngagements: formatInt(r.Engagements),
		ColPlatform:    r.Platform,
		ColSentiment:   r.Sentiment,
		ColMediaType:   r.MediaType,
		ColLocation:    r.Location,
	}
}

// SeriesPoint is one (label, value) pair of an aggregation result.
type SeriesPoint struct {
	Label string `json:"label"`
	Value int64  `json:"value"`
}

// Series is an ordered sequence of (label, value) pairs produced by an
// aggregation. Ordering is part of the contract: chart renderers draw
// the points in the order given.
type Series []SeriesPoint

// Total returns the sum of all values in the series.
func (s Series) Total() int64 {
	var total int64
	for _, p := range s {
		total += p.Value
	}
	return total
}
