// Package services contains the application services that sit between
// the HTTP transport and the mediaintel pipeline.
package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"mediapulse/internal/mediaintel"
	"mediapulse/internal/session"
)

// DashboardService orchestrates the dashboard pipeline: ingest an
// uploaded file into the session, filter the current dataset, and
// compute the chart series.
type DashboardService struct {
	store  *session.Store
	logger *slog.Logger
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(store *session.Store, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		store:  store,
		logger: logger.With(slog.String("component", "dashboard_service")),
	}
}

// ChartData is the full set of aggregations for one filtered view of
// the dataset, ready for the chart renderers.
type ChartData struct {
	SentimentCounts     mediaintel.Series `json:"sentiment_counts"`
	PlatformEngagements mediaintel.Series `json:"platform_engagements"`
	DailyEngagements    mediaintel.Series `json:"daily_engagements"`
	MediaTypeCounts     mediaintel.Series `json:"media_type_counts"`
	TopLocations        mediaintel.Series `json:"top_locations"`

	FilteredRecords  int   `json:"filtered_records"`
	TotalRecords     int   `json:"total_records"`
	TotalEngagements int64 `json:"total_engagements"`
}

// FilterOptions lists the selectable values for each filter control,
// derived from the current dataset.
type FilterOptions struct {
	Platforms  []string   `json:"platforms"`
	Sentiments []string   `json:"sentiments"`
	MediaTypes []string   `json:"media_types"`
	Locations  []string   `json:"locations"`
	MinDate    *time.Time `json:"min_date,omitempty"`
	MaxDate    *time.Time `json:"max_date,omitempty"`
}

// Insight is the campaign strategy summary shown above the charts.
type Insight struct {
	Summary     string    `json:"summary"`
	DatasetID   string    `json:"dataset_id"`
	Filename    string    `json:"filename"`
	UploadedAt  time.Time `json:"uploaded_at"`
	TotalRows   int       `json:"total_rows"`
	DroppedRows int       `json:"dropped_rows"`
}

// insightSummary is the static recommendation text block rendered on
// the dashboard. Product copy, not derived from the data.
const insightSummary = "Based on sentiment and engagement analysis, campaigns " +
	"focused on visual content on Instagram and TikTok have proven effective. " +
	"Optimize posts for peak hours to maximize reach, and consider partnering " +
	"with local influencers in the locations showing the highest interaction."

// Upload ingests an uploaded file into the session, replacing any
// previous dataset. The format is chosen by file extension, defaulting
// to CSV. A dataset where every row was dropped is still a valid
// dataset; the dashboard reports "no data" instead of failing.
func (s *DashboardService) Upload(ctx context.Context, filename string, data []byte) (*session.Dataset, error) {
	if len(data) == 0 {
		return nil, ErrEmptyUpload
	}

	rows, err := s.readRows(filename, data)
	if err != nil {
		return nil, err
	}

	ds := s.store.Ingest(filename, data, rows)
	s.logger.InfoContext(ctx, "dataset ingested",
		slog.String("dataset_id", ds.ID),
		slog.String("filename", filename),
		slog.Int("raw_rows", ds.RawRows),
		slog.Int("records", ds.Len()),
		slog.Int("dropped_rows", ds.DroppedRows),
	)
	return ds, nil
}

func (s *DashboardService) readRows(filename string, data []byte) ([]mediaintel.RawRow, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case "", ".csv", ".txt":
		rows, err := mediaintel.ReadCSV(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrMalformedUpload, err)
		}
		return rows, nil
	case ".xlsx":
		rows, err := mediaintel.ReadXLSX(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrMalformedUpload, err)
		}
		return rows, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

// Charts filters the current dataset and computes all five chart
// series. An empty filtered set yields empty series, not an error.
func (s *DashboardService) Charts(ctx context.Context, criteria mediaintel.Criteria) (*ChartData, error) {
	ds, err := s.store.Current()
	if err != nil {
		return nil, ErrNoDataset
	}

	filtered := mediaintel.Filter(ds.Records, criteria)
	s.logger.DebugContext(ctx, "computing charts",
		slog.String("dataset_id", ds.ID),
		slog.Int("records", ds.Len()),
		slog.Int("filtered", len(filtered)),
	)

	platformSeries := mediaintel.PlatformEngagements(filtered)
	return &ChartData{
		SentimentCounts:     mediaintel.SentimentCounts(filtered),
		PlatformEngagements: platformSeries,
		DailyEngagements:    mediaintel.DailyEngagements(filtered),
		MediaTypeCounts:     mediaintel.MediaTypeCounts(filtered),
		TopLocations:        mediaintel.TopLocations(filtered, mediaintel.DefaultTopLocations),
		FilteredRecords:     len(filtered),
		TotalRecords:        ds.Len(),
		TotalEngagements:    platformSeries.Total(),
	}, nil
}

// FilteredRecords returns the records of the current dataset matching
// the criteria, for export.
func (s *DashboardService) FilteredRecords(ctx context.Context, criteria mediaintel.Criteria) ([]mediaintel.Record, error) {
	ds, err := s.store.Current()
	if err != nil {
		return nil, ErrNoDataset
	}
	return mediaintel.Filter(ds.Records, criteria), nil
}

// FilterOptions returns the distinct values per categorical field and
// the dataset's date range, sorted for the selector controls.
func (s *DashboardService) FilterOptions(ctx context.Context) (*FilterOptions, error) {
	ds, err := s.store.Current()
	if err != nil {
		return nil, ErrNoDataset
	}

	opts := &FilterOptions{
		Platforms:  distinct(ds.Records, func(r mediaintel.Record) string { return r.Platform }),
		Sentiments: distinct(ds.Records, func(r mediaintel.Record) string { return r.Sentiment }),
		MediaTypes: distinct(ds.Records, func(r mediaintel.Record) string { return r.MediaType }),
		Locations:  distinct(ds.Records, func(r mediaintel.Record) string { return r.Location }),
	}
	if ds.Len() > 0 {
		minDate, maxDate := ds.MinDate, ds.MaxDate
		opts.MinDate, opts.MaxDate = &minDate, &maxDate
	}
	return opts, nil
}

// Insights returns the campaign recommendation block plus dataset
// provenance.
func (s *DashboardService) Insights(ctx context.Context) (*Insight, error) {
	ds, err := s.store.Current()
	if err != nil {
		return nil, ErrNoDataset
	}
	return &Insight{
		Summary:     insightSummary,
		DatasetID:   ds.ID,
		Filename:    ds.Filename,
		UploadedAt:  ds.UploadedAt,
		TotalRows:   ds.RawRows,
		DroppedRows: ds.DroppedRows,
	}, nil
}

// Reset drops the current dataset so a new file can be uploaded.
func (s *DashboardService) Reset(ctx context.Context) error {
	s.store.Clear()
	s.logger.InfoContext(ctx, "dataset cleared")
	return nil
}

func distinct(records []mediaintel.Record, key func(mediaintel.Record) string) []string {
	seen := make(map[string]struct{})
	var values []string
	for _, r := range records {
		k := key(r)
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			values = append(values, k)
		}
	}
	sort.Strings(values)
	return values
}
