package mediaintel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentimentCounts(t *testing.T) {
	records := []Record{
		{Date: date(2024, 1, 1), Sentiment: "Positive"},
		{Date: date(2024, 1, 1), Sentiment: "Negative"},
		{Date: date(2024, 1, 2), Sentiment: "Positive"},
		{Date: date(2024, 1, 3), Sentiment: "Positive"},
		{Date: date(2024, 1, 3), Sentiment: "Neutral"},
	}

	got := SentimentCounts(records)

	assert.Equal(t, Series{
		{Label: "Positive", Value: 3},
		{Label: "Negative", Value: 1},
		{Label: "Neutral", Value: 1},
	}, got)
}

func TestPlatformEngagements_SumConservation(t *testing.T) {
	records := []Record{
		{Date: date(2024, 1, 1), Platform: "Instagram", Engagements: 100},
		{Date: date(2024, 1, 1), Platform: "TikTok", Engagements: 250},
		{Date: date(2024, 1, 2), Platform: "Instagram", Engagements: 50},
		{Date: date(2024, 1, 2), Platform: "X", Engagements: 5},
	}

	got := PlatformEngagements(records)

	require.Equal(t, Series{
		{Label: "TikTok", Value: 250},
		{Label: "Instagram", Value: 150},
		{Label: "X", Value: 5},
	}, got)

	var total int64
	for _, r := range records {
		total += r.Engagements
	}
	assert.Equal(t, total, got.Total())
}

func TestDailyEngagements_AscendingByDate(t *testing.T) {
	records := []Record{
		{Date: date(2024, 1, 3), Engagements: 30},
		{Date: date(2024, 1, 1), Engagements: 10},
		{Date: date(2024, 1, 3), Engagements: 5},
		{Date: date(2024, 1, 2), Engagements: 20},
	}

	got := DailyEngagements(records)

	assert.Equal(t, Series{
		{Label: "2024-01-01", Value: 10},
		{Label: "2024-01-02", Value: 20},
		{Label: "2024-01-03", Value: 35},
	}, got)
}

func TestMediaTypeCounts_TieBrokenByLabel(t *testing.T) {
	records := []Record{
		{Date: date(2024, 1, 1), MediaType: "Video"},
		{Date: date(2024, 1, 1), MediaType: "Image"},
	}

	got := MediaTypeCounts(records)

	assert.Equal(t, Series{
		{Label: "Image", Value: 1},
		{Label: "Video", Value: 1},
	}, got)
}

func TestTopLocations(t *testing.T) {
	var records []Record
	counts := map[string]int{
		"Jakarta": 6, "Bandung": 5, "Surabaya": 4,
		"Medan": 3, "Bali": 2, "Makassar": 1,
	}
	for loc, n := range counts {
		for i := 0; i < n; i++ {
			records = append(records, Record{Date: date(2024, 1, 1), Location: loc})
		}
	}

	got := TopLocations(records, 5)

	require.Len(t, got, 5)
	assert.Equal(t, SeriesPoint{Label: "Jakarta", Value: 6}, got[0])

	// Every returned count dominates every excluded location's count.
	excludedMax := int64(counts["Makassar"])
	for _, p := range got {
		assert.GreaterOrEqual(t, p.Value, excludedMax)
		assert.NotEqual(t, "Makassar", p.Label)
	}
}

func TestTopLocations_FewerThanN(t *testing.T) {
	records := []Record{
		{Date: date(2024, 1, 1), Location: "Jakarta"},
		{Date: date(2024, 1, 1), Location: "Bandung"},
	}

	got := TopLocations(records, 5)

	assert.Len(t, got, 2)
}

func TestTopLocations_DefaultN(t *testing.T) {
	var records []Record
	for _, loc := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		records = append(records, Record{Date: date(2024, 1, 1), Location: loc})
	}

	got := TopLocations(records, 0)

	assert.Len(t, got, DefaultTopLocations)
}

func TestAggregations_EmptyInput(t *testing.T) {
	assert.Empty(t, SentimentCounts(nil))
	assert.Empty(t, PlatformEngagements(nil))
	assert.Empty(t, DailyEngagements(nil))
	assert.Empty(t, MediaTypeCounts(nil))
	assert.Empty(t, TopLocations(nil, 5))
}
