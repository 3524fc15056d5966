package services

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediapulse/internal/mediaintel"
	"mediapulse/internal/session"
)

const sampleCSV = "Date,Engagements,Platform,Sentiment,Media Type,Location\n" +
	"2024-01-01,10,Instagram,Positive,Video,Jakarta\n" +
	"2024-01-02,20,TikTok,Negative,Image,Bandung\n" +
	"2024-01-02,5,Instagram,Positive,Video,Jakarta\n" +
	"bad-date,99,X,Neutral,Text,Medan\n"

func newService(t *testing.T) *DashboardService {
	t.Helper()
	return NewDashboardService(session.NewStore(), slog.Default())
}

func TestDashboardService_Upload(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	ds, err := svc.Upload(ctx, "mentions.csv", []byte(sampleCSV))

	require.NoError(t, err)
	assert.Equal(t, 4, ds.RawRows)
	assert.Equal(t, 3, ds.Len())
	assert.Equal(t, 1, ds.DroppedRows)
}

func TestDashboardService_UploadErrors(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		filename string
		data     []byte
		want     error
	}{
		{"empty body", "mentions.csv", nil, ErrEmptyUpload},
		{"unsupported extension", "mentions.pdf", []byte("x"), ErrUnsupportedFormat},
		{"unreadable table", "mentions.csv", []byte("foo,bar\n1,2\n"), ErrMalformedUpload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Upload(ctx, tt.filename, tt.data)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDashboardService_ChartsWithoutDataset(t *testing.T) {
	svc := newService(t)

	_, err := svc.Charts(context.Background(), mediaintel.Criteria{})

	assert.ErrorIs(t, err, ErrNoDataset)
}

func TestDashboardService_Charts(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	_, err := svc.Upload(ctx, "mentions.csv", []byte(sampleCSV))
	require.NoError(t, err)

	charts, err := svc.Charts(ctx, mediaintel.Criteria{})

	require.NoError(t, err)
	assert.Equal(t, 3, charts.FilteredRecords)
	assert.Equal(t, 3, charts.TotalRecords)
	assert.Equal(t, int64(35), charts.TotalEngagements)
	assert.Equal(t, mediaintel.Series{
		{Label: "Positive", Value: 2},
		{Label: "Negative", Value: 1},
	}, charts.SentimentCounts)
	assert.Equal(t, mediaintel.Series{
		{Label: "TikTok", Value: 20},
		{Label: "Instagram", Value: 15},
	}, charts.PlatformEngagements)
	assert.Len(t, charts.DailyEngagements, 2)
	assert.Len(t, charts.TopLocations, 2)
}

func TestDashboardService_ChartsFiltered(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	_, err := svc.Upload(ctx, "mentions.csv", []byte(sampleCSV))
	require.NoError(t, err)

	charts, err := svc.Charts(ctx, mediaintel.Criteria{Platform: "Instagram"})

	require.NoError(t, err)
	assert.Equal(t, 2, charts.FilteredRecords)
	assert.Equal(t, 3, charts.TotalRecords)
	assert.Equal(t, int64(15), charts.TotalEngagements)
}

func TestDashboardService_ChartsEmptyFilterResult(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	_, err := svc.Upload(ctx, "mentions.csv", []byte(sampleCSV))
	require.NoError(t, err)

	charts, err := svc.Charts(ctx, mediaintel.Criteria{Platform: "LinkedIn"})

	require.NoError(t, err)
	assert.Zero(t, charts.FilteredRecords)
	assert.Empty(t, charts.SentimentCounts)
	assert.Empty(t, charts.TopLocations)
}

func TestDashboardService_FilterOptions(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	_, err := svc.Upload(ctx, "mentions.csv", []byte(sampleCSV))
	require.NoError(t, err)

	opts, err := svc.FilterOptions(ctx)

	require.NoError(t, err)
	assert.Equal(t, []string{"Instagram", "TikTok"}, opts.Platforms)
	assert.Equal(t, []string{"Negative", "Positive"}, opts.Sentiments)
	assert.Equal(t, []string{"Image", "Video"}, opts.MediaTypes)
	assert.Equal(t, []string{"Bandung", "Jakarta"}, opts.Locations)
	require.NotNil(t, opts.MinDate)
	require.NotNil(t, opts.MaxDate)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *opts.MinDate)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), *opts.MaxDate)
}

func TestDashboardService_Insights(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	_, err := svc.Upload(ctx, "mentions.csv", []byte(sampleCSV))
	require.NoError(t, err)

	insight, err := svc.Insights(ctx)

	require.NoError(t, err)
	assert.NotEmpty(t, insight.Summary)
	assert.Equal(t, "mentions.csv", insight.Filename)
	assert.Equal(t, 4, insight.TotalRows)
	assert.Equal(t, 1, insight.DroppedRows)
}

func TestDashboardService_Reset(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	_, err := svc.Upload(ctx, "mentions.csv", []byte(sampleCSV))
	require.NoError(t, err)

	require.NoError(t, svc.Reset(ctx))

	_, err = svc.Charts(ctx, mediaintel.Criteria{})
	assert.ErrorIs(t, err, ErrNoDataset)
}

func TestDashboardService_UploadReplacesDataset(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	first, err := svc.Upload(ctx, "a.csv", []byte(sampleCSV))
	require.NoError(t, err)

	second, err := svc.Upload(ctx, "b.csv", []byte("Date,Engagements\n2025-05-05,1\n"))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	charts, err := svc.Charts(ctx, mediaintel.Criteria{})
	require.NoError(t, err)
	assert.Equal(t, 1, charts.TotalRecords)
}
