package mediaintel

import "sort"

// DefaultTopLocations is the number of entries the location chart shows.
const DefaultTopLocations = 5

// SentimentCounts returns the number of records per sentiment, ordered
// by descending count. Ties are broken by label so the result is
// deterministic.
func SentimentCounts(records []Record) Series {
	return countBy(records, func(r Record) string { return r.Sentiment })
}

// PlatformEngagements returns the sum of engagements per platform,
// ordered by descending sum.
func PlatformEngagements(records []Record) Series {
	return sumBy(records, func(r Record) string { return r.Platform })
}

// DailyEngagements returns the sum of engagements per calendar day,
// ordered ascending by date. Labels use the 2006-01-02 layout.
func DailyEngagements(records []Record) Series {
	if len(records) == 0 {
		return Series{}
	}
	sums := make(map[string]int64)
	for _, r := range records {
		sums[r.Date.Format(dateLayout)] += r.Engagements
	}
	series := make(Series, 0, len(sums))
	for label, value := range sums {
		series = append(series, SeriesPoint{Label: label, Value: value})
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Label < series[j].Label
	})
	return series
}

// MediaTypeCounts returns the number of records per media type, ordered
// by descending count.
func MediaTypeCounts(records []Record) Series {
	return countBy(records, func(r Record) string { return r.MediaType })
}

// TopLocations returns the n locations with the most records, ordered
// by descending count. Fewer than n distinct locations yields all of
// them. n <= 0 falls back to DefaultTopLocations.
func TopLocations(records []Record, n int) Series {
	if n <= 0 {
		n = DefaultTopLocations
	}
	series := countBy(records, func(r Record) string { return r.Location })
	if len(series) > n {
		series = series[:n]
	}
	return series
}

func countBy(records []Record, key func(Record) string) Series {
	return groupBy(records, key, func(Record) int64 { return 1 })
}

func sumBy(records []Record, key func(Record) string) Series {
	return groupBy(records, key, func(r Record) int64 { return r.Engagements })
}

// groupBy accumulates value(r) per key(r) and returns the groups sorted
// by descending total, ties broken by label.
func groupBy(records []Record, key func(Record) string, value func(Record) int64) Series {
	if len(records) == 0 {
		return Series{}
	}
	totals := make(map[string]int64)
	for _, r := range records {
		totals[key(r)] += value(r)
	}
	series := make(Series, 0, len(totals))
	for label, total := range totals {
		series = append(series, SeriesPoint{Label: label, Value: total})
	}
	sort.Slice(series, func(i, j int) bool {
		if series[i].Value != series[j].Value {
			return series[i].Value > series[j].Value
		}
		return series[i].Label < series[j].Label
	})
	return series
}
