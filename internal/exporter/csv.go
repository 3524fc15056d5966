// Package exporter renders cleaned records and aggregated series into
// downloadable CSV files and Excel workbooks.
package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"mediapulse/internal/mediaintel"
)

// recordHeader is the column order for exported record tables.
var recordHeader = []string{
	mediaintel.ColDate,
	mediaintel.ColEngagements,
	mediaintel.ColPlatform,
	mediaintel.ColSentiment,
	mediaintel.ColMediaType,
	mediaintel.ColLocation,
}

// utf8BOM helps Excel recognize UTF-8 CSV files.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteRecordsCSV writes the records as CSV, prefixed with a UTF-8 BOM.
func WriteRecordsCSV(w io.Writer, records []mediaintel.Record) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(recordHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, r := range records {
		if err := cw.Write(recordRow(r)); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSeriesCSV writes one aggregated series as a two-column CSV.
func WriteSeriesCSV(w io.Writer, labelHeader, valueHeader string, series mediaintel.Series) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{labelHeader, valueHeader}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, p := range series {
		if err := cw.Write([]string{p.Label, strconv.FormatInt(p.Value, 10)}); err != nil {
			return fmt.Errorf("failed to write series point %q: %w", p.Label, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func recordRow(r mediaintel.Record) []string {
	return []string{
		r.Date.Format("2006-01-02"),
		strconv.FormatInt(r.Engagements, 10),
		r.Platform,
		r.Sentiment,
		r.MediaType,
		r.Location,
	}
}
