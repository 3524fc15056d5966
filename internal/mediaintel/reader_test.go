package mediaintel

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	input := "Date,Engagements,Platform,Sentiment,Media Type,Location\n" +
		"2024-01-01,10,Instagram,Positive,Video,Jakarta\n" +
		"2024-01-02,20,TikTok,Negative,Image,Bandung\n"

	rows, err := ReadCSV(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2024-01-01", rows[0][ColDate])
	assert.Equal(t, "10", rows[0][ColEngagements])
	assert.Equal(t, "Bandung", rows[1][ColLocation])
}

func TestReadCSV_HeaderAliases(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"canonical", "Date,Engagements,Platform,Sentiment,Media Type,Location"},
		{"lowercase", "date,engagements,platform,sentiment,media type,location"},
		{"underscored", "DATE,ENGAGEMENTS,PLATFORM,SENTIMENT,MEDIA_TYPE,LOCATION"},
		{"padded", " Date , Engagements , Platform , Sentiment , MediaType , Location "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := tt.header + "\n2024-01-01,10,X,Positive,Video,NY\n"
			rows, err := ReadCSV(strings.NewReader(input))
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.Equal(t, "Video", rows[0][ColMediaType])
			assert.Equal(t, "NY", rows[0][ColLocation])
		})
	}
}

func TestReadCSV_BOMStripped(t *testing.T) {
	input := "\xEF\xBB\xBFDate,Engagements\n2024-01-01,5\n"

	rows, err := ReadCSV(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2024-01-01", rows[0][ColDate])
}

func TestReadCSV_RaggedRowsTolerated(t *testing.T) {
	input := "Date,Engagements,Platform\n" +
		"2024-01-01,10\n" +
		"2024-01-02,20,Instagram,extra\n"

	rows, err := ReadCSV(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, rows, 2)
	_, hasPlatform := rows[0][ColPlatform]
	assert.False(t, hasPlatform)
	assert.Equal(t, "Instagram", rows[1][ColPlatform])
}

func TestReadCSV_UnknownColumnsIgnored(t *testing.T) {
	input := "Date,Engagements,Author,Reach\n2024-01-01,10,someone,5000\n"

	rows, err := ReadCSV(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Len(t, rows[0], 2)
}

func TestReadCSV_StructuralErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty input", "", ErrEmptyInput},
		{"no recognizable header", "foo,bar\n1,2\n", ErrNoHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestReadCSV_HeaderOnly(t *testing.T) {
	rows, err := ReadCSV(strings.NewReader("Date,Engagements\n"))

	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReadCSV_CleanRoundTrip(t *testing.T) {
	input := "Date,Engagements,Platform,Sentiment,Media Type,Location\n" +
		"2024-01-01,10,X,Positive,Video,NY\n" +
		"garbage,5,X,Positive,Video,NY\n" +
		"2024-01-02,abc,X,Negative,Video,NY\n"

	rows, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)

	records := Clean(rows)
	require.Len(t, records, 2)
	assert.Equal(t, int64(10), records[0].Engagements)
	assert.Equal(t, int64(0), records[1].Engagements)
}
