package mediaintel

import (
	"strconv"
	"strings"
	"time"
)

// dateLayout is the canonical day-granularity layout used for output
// labels and round-tripping records back to raw rows.
const dateLayout = "2006-01-02"

// dateLayouts are the layouts the cleaner tries, in order, when parsing
// the Date cell. Mirrors the permissive coercion of the original
// dashboard's date handling.
var dateLayouts = []string{
	dateLayout,
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"02-01-2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"January 2, 2006",
	"2006-1-2",
}

// Clean coerces raw rows into validated Records.
//
// Rows whose Date cell fails to parse are dropped entirely; this is a
// data-quality filter, not an error. Engagements that fail to parse, or
// parse negative, become 0. Missing or blank categorical cells become
// "Unknown". Input order is preserved minus dropped rows. Clean is a
// pure function of its input and never fails.
func Clean(rows []RawRow) []Record {
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		date, ok := parseDate(row[ColDate])
		if !ok {
			continue
		}
		records = append(records, Record{
			Date:        date,
			Engagements: parseEngagements(row[ColEngagements]),
			Platform:    categorical(row[ColPlatform]),
			Sentiment:   categorical(row[ColSentiment]),
			MediaType:   categorical(row[ColMediaType]),
			Location:    categorical(row[ColLocation]),
		})
	}
	return records
}

// parseDate tries each known layout and truncates the result to UTC
// midnight. Day granularity is all the pipeline ever needs.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// parseEngagements coerces the engagement cell to a non-negative count.
// Fractional values are truncated toward zero; anything unparseable or
// negative becomes 0.
func parseEngagements(s string) int64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return 0
	}
	return int64(f)
}

func categorical(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return UnknownValue
	}
	return s
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}
