package mediaintel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testRecords() []Record {
	return []Record{
		{Date: date(2024, 1, 1), Engagements: 10, Platform: "Instagram", Sentiment: "Positive", MediaType: "Video", Location: "Jakarta"},
		{Date: date(2024, 1, 2), Engagements: 20, Platform: "TikTok", Sentiment: "Negative", MediaType: "Image", Location: "Bandung"},
		{Date: date(2024, 1, 3), Engagements: 30, Platform: "Instagram", Sentiment: "Neutral", MediaType: "Video", Location: "Jakarta"},
		{Date: date(2024, 1, 4), Engagements: 40, Platform: "X", Sentiment: "Positive", MediaType: "Text", Location: "Surabaya"},
	}
}

func TestFilter_NoConstraints(t *testing.T) {
	records := testRecords()

	for _, c := range []Criteria{{}, {Platform: AllValue, Sentiment: AllValue, MediaType: AllValue, Location: AllValue}} {
		got := Filter(records, c)
		assert.Equal(t, records, got)
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	records := testRecords()
	original := make([]Record, len(records))
	copy(original, records)

	Filter(records, Criteria{Platform: "Instagram"})

	assert.Equal(t, original, records)
}

func TestFilter_Conjunction(t *testing.T) {
	records := testRecords()
	start, end := date(2024, 1, 1), date(2024, 1, 3)

	tests := []struct {
		name     string
		criteria Criteria
		want     int
	}{
		{"platform only", Criteria{Platform: "Instagram"}, 2},
		{"sentiment only", Criteria{Sentiment: "Positive"}, 2},
		{"media type only", Criteria{MediaType: "Video"}, 2},
		{"location only", Criteria{Location: "Jakarta"}, 2},
		{"date range", Criteria{DateStart: &start, DateEnd: &end}, 3},
		{"platform and sentiment", Criteria{Platform: "Instagram", Sentiment: "Positive"}, 1},
		{"all constraints", Criteria{DateStart: &start, DateEnd: &end, Platform: "Instagram", Sentiment: "Neutral", MediaType: "Video", Location: "Jakarta"}, 1},
		{"no match", Criteria{Platform: "Instagram", Location: "Surabaya"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(records, tt.criteria)
			require.Len(t, got, tt.want)
			for _, r := range got {
				assert.True(t, tt.criteria.Matches(r))
			}
			// Every excluded record must fail at least one constraint.
			excluded := len(records) - len(got)
			failing := 0
			for _, r := range records {
				if !tt.criteria.Matches(r) {
					failing++
				}
			}
			assert.Equal(t, excluded, failing)
		})
	}
}

func TestFilter_DateBoundsInclusive(t *testing.T) {
	records := testRecords()
	start, end := date(2024, 1, 2), date(2024, 1, 3)

	got := Filter(records, Criteria{DateStart: &start, DateEnd: &end})

	require.Len(t, got, 2)
	assert.Equal(t, date(2024, 1, 2), got[0].Date)
	assert.Equal(t, date(2024, 1, 3), got[1].Date)
}

func TestFilter_InvertedRangeYieldsEmpty(t *testing.T) {
	records := testRecords()
	start, end := date(2024, 1, 4), date(2024, 1, 1)

	got := Filter(records, Criteria{DateStart: &start, DateEnd: &end})

	assert.Empty(t, got)
}

func TestFilter_PreservesOrder(t *testing.T) {
	records := testRecords()

	got := Filter(records, Criteria{Platform: "Instagram"})

	require.Len(t, got, 2)
	assert.True(t, got[0].Date.Before(got[1].Date))
}

func TestFilter_EmptyInput(t *testing.T) {
	got := Filter(nil, Criteria{Platform: "Instagram"})
	assert.Empty(t, got)
}
