package mediaintel

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Structural input errors. Cell-level malformation never errors; these
// cover input that is not a readable table at all.
var (
	ErrEmptyInput = errors.New("input contains no rows")
	ErrNoHeader   = errors.New("input has no header row")
)

// columnAliases maps normalized header text to canonical column names.
// Header matching is case-insensitive and ignores surrounding space.
var columnAliases = map[string]string{
	"date":        ColDate,
	"engagements": ColEngagements,
	"engagement":  ColEngagements,
	"sentiment":   ColSentiment,
	"platform":    ColPlatform,
	"media type":  ColMediaType,
	"media_type":  ColMediaType,
	"mediatype":   ColMediaType,
	"location":    ColLocation,
}

// ReadCSV reads delimited text into raw rows. The first row is treated
// as the header and mapped tolerantly onto the canonical column names;
// unrecognized columns are ignored. A UTF-8 BOM is stripped if present.
//
// Only structural problems return an error: an empty input, a missing
// header, or malformed CSV framing. Ragged rows are tolerated.
func ReadCSV(r io.Reader) ([]RawRow, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	content = bytes.TrimPrefix(content, []byte{0xEF, 0xBB, 0xBF})

	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	return rowsToRaw(rows)
}

// ReadXLSX reads the first sheet of an Excel workbook into raw rows,
// using the same header mapping as ReadCSV.
func ReadXLSX(r io.Reader) ([]RawRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyInput
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rowsToRaw(rows)
}

// rowsToRaw maps a header row plus data rows onto RawRows keyed by
// canonical column name.
func rowsToRaw(rows [][]string) ([]RawRow, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyInput
	}
	columns := mapHeader(rows[0])
	if len(columns) == 0 {
		return nil, ErrNoHeader
	}

	raw := make([]RawRow, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rr := make(RawRow, len(columns))
		for idx, name := range columns {
			if idx < len(row) {
				rr[name] = row[idx]
			}
		}
		raw = append(raw, rr)
	}
	return raw, nil
}

// mapHeader returns column index -> canonical name for every header
// cell it recognizes.
func mapHeader(header []string) map[int]string {
	columns := make(map[int]string)
	for i, cell := range header {
		cell = strings.TrimPrefix(strings.TrimSpace(cell), "\ufeff")
		if name, ok := columnAliases[strings.ToLower(strings.TrimSpace(cell))]; ok {
			columns[i] = name
		}
	}
	return columns
}
