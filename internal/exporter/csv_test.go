package exporter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediapulse/internal/mediaintel"
)

func sampleRecords() []mediaintel.Record {
	return []mediaintel.Record{
		{
			Date:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Engagements: 10,
			Platform:    "Instagram",
			Sentiment:   "Positive",
			MediaType:   "Video",
			Location:    "Jakarta",
		},
		{
			Date:        time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			Engagements: 0,
			Platform:    "TikTok",
			Sentiment:   "Negative",
			MediaType:   "Image",
			Location:    "Bandung",
		},
	}
}

func TestWriteRecordsCSV(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteRecordsCSV(&buf, sampleRecords()))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, string(utf8BOM)))

	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(out, string(utf8BOM))), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,Engagements,Platform,Sentiment,Media Type,Location", lines[0])
	assert.Equal(t, "2024-01-01,10,Instagram,Positive,Video,Jakarta", lines[1])
	assert.Equal(t, "2024-01-02,0,TikTok,Negative,Image,Bandung", lines[2])
}

func TestWriteRecordsCSV_Empty(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteRecordsCSV(&buf, nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 1)
}

func TestWriteSeriesCSV(t *testing.T) {
	var buf bytes.Buffer
	series := mediaintel.Series{
		{Label: "Positive", Value: 3},
		{Label: "Negative", Value: 1},
	}

	require.NoError(t, WriteSeriesCSV(&buf, "Sentiment", "Mentions", series))

	out := strings.TrimPrefix(buf.String(), string(utf8BOM))
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Sentiment,Mentions", lines[0])
	assert.Equal(t, "Positive,3", lines[1])
	assert.Equal(t, "Negative,1", lines[2])
}
