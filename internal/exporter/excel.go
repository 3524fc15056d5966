package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"mediapulse/internal/mediaintel"
)

// DashboardWorkbook is everything that goes into an Excel export: the
// filtered records plus the five chart series.
type DashboardWorkbook struct {
	Records             []mediaintel.Record
	SentimentCounts     mediaintel.Series
	PlatformEngagements mediaintel.Series
	DailyEngagements    mediaintel.Series
	MediaTypeCounts     mediaintel.Series
	TopLocations        mediaintel.Series
}

// WriteWorkbook writes the dashboard as an xlsx workbook: one Records
// sheet and one sheet per series.
func WriteWorkbook(w io.Writer, wb DashboardWorkbook) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeRecordsSheet(f, "Records", wb.Records); err != nil {
		return err
	}

	seriesSheets := []struct {
		name        string
		labelHeader string
		valueHeader string
		series      mediaintel.Series
	}{
		{"Sentiment", "Sentiment", "Mentions", wb.SentimentCounts},
		{"Platforms", "Platform", "Engagements", wb.PlatformEngagements},
		{"Daily Engagements", "Date", "Engagements", wb.DailyEngagements},
		{"Media Types", "Media Type", "Mentions", wb.MediaTypeCounts},
		{"Top Locations", "Location", "Mentions", wb.TopLocations},
	}
	for _, sheet := range seriesSheets {
		if err := writeSeriesSheet(f, sheet.name, sheet.labelHeader, sheet.valueHeader, sheet.series); err != nil {
			return err
		}
	}

	// excelize creates a default "Sheet1"; Records replaces it.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeRecordsSheet(f *excelize.File, name string, records []mediaintel.Record) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", name, err)
	}

	header := make([]interface{}, len(recordHeader))
	for i, h := range recordHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header of %q: %w", name, err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		row := []interface{}{
			r.Date.Format("2006-01-02"),
			r.Engagements,
			r.Platform,
			r.Sentiment,
			r.MediaType,
			r.Location,
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d of %q: %w", i+2, name, err)
		}
	}
	return nil
}

func writeSeriesSheet(f *excelize.File, name, labelHeader, valueHeader string, series mediaintel.Series) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", name, err)
	}

	header := []interface{}{labelHeader, valueHeader}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header of %q: %w", name, err)
	}
	for i, p := range series {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		row := []interface{}{p.Label, p.Value}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d of %q: %w", i+2, name, err)
		}
	}
	return nil
}
