// Command mediareport cleans a media intelligence export offline and
// writes the aggregate reports the dashboard would show: one CSV per
// chart series plus a combined Excel workbook.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"mediapulse/internal/config"
	"mediapulse/internal/exporter"
	"mediapulse/internal/infrastructure"
	"mediapulse/internal/mediaintel"
	"mediapulse/internal/session"
)

func main() {
	in := flag.String("in", "", "input csv or xlsx file (required)")
	outDir := flag.String("out", "", "output directory (defaults to data/reports)")
	top := flag.Int("top", mediaintel.DefaultTopLocations, "number of locations in the top-locations report")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("failed to load config, using defaults", "error", err)
		cfg = &config.Config{
			Logging: config.LoggingConfig{Level: "info", Output: "console"},
			Paths:   config.PathsConfig{DataDir: "data", ReportsDir: "data/reports", LogsDir: "logs"},
		}
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("failed to initialize logger", "error", err)
		os.Exit(1)
	}

	if *in == "" {
		fmt.Fprintln(os.Stderr, "usage: mediareport -in mentions.csv [-out dir] [-top 5]")
		os.Exit(2)
	}

	paths, err := config.NewPaths(cfg.Paths)
	if err != nil {
		logger.Error("failed to resolve paths", "error", err)
		os.Exit(1)
	}
	if *outDir == "" {
		*outDir = paths.ReportsDir
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		logger.Error("failed to create output directory", "dir", *outDir, "error", err)
		os.Exit(1)
	}

	if err := run(logger, *in, *outDir, *top); err != nil {
		logger.Error("report generation failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, in, outDir string, top int) error {
	content, err := os.ReadFile(in)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	var rows []mediaintel.RawRow
	switch strings.ToLower(filepath.Ext(in)) {
	case ".xlsx":
		rows, err = mediaintel.ReadXLSX(bytes.NewReader(content))
	default:
		rows, err = mediaintel.ReadCSV(bytes.NewReader(content))
	}
	if err != nil {
		return err
	}

	store := session.NewStore()
	ds := store.Ingest(filepath.Base(in), content, rows)

	logger.Info("dataset cleaned",
		slog.String("input", in),
		slog.Int("raw_rows", ds.RawRows),
		slog.Int("records", ds.Len()),
		slog.Int("dropped_rows", ds.DroppedRows))

	records := ds.Records
	reports := []struct {
		file        string
		labelHeader string
		valueHeader string
		series      mediaintel.Series
	}{
		{"sentiment_counts.csv", "Sentiment", "Mentions", mediaintel.SentimentCounts(records)},
		{"platform_engagements.csv", "Platform", "Engagements", mediaintel.PlatformEngagements(records)},
		{"daily_engagements.csv", "Date", "Engagements", mediaintel.DailyEngagements(records)},
		{"media_type_counts.csv", "Media Type", "Mentions", mediaintel.MediaTypeCounts(records)},
		{"top_locations.csv", "Location", "Mentions", mediaintel.TopLocations(records, top)},
	}
	for _, rep := range reports {
		path := filepath.Join(outDir, rep.file)
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		err = exporter.WriteSeriesCSV(f, rep.labelHeader, rep.valueHeader, rep.series)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		logger.Info("report written", slog.String("file", path), slog.Int("points", len(rep.series)))
	}

	workbookPath := filepath.Join(outDir, "media_intelligence.xlsx")
	f, err := os.Create(workbookPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", workbookPath, err)
	}
	err = exporter.WriteWorkbook(f, exporter.DashboardWorkbook{
		Records:             records,
		SentimentCounts:     mediaintel.SentimentCounts(records),
		PlatformEngagements: mediaintel.PlatformEngagements(records),
		DailyEngagements:    mediaintel.DailyEngagements(records),
		MediaTypeCounts:     mediaintel.MediaTypeCounts(records),
		TopLocations:        mediaintel.TopLocations(records, top),
	})
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", workbookPath, err)
	}
	logger.Info("workbook written", slog.String("file", workbookPath))
	return nil
}
