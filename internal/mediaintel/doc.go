// Package mediaintel implements the media intelligence data pipeline:
// tolerant ingestion of tabular mention data, type coercion and cleaning,
// predicate-based filtering, and the descriptive aggregations that feed
// the dashboard charts.
//
// # Data Flow
//
// The typical flow through this package:
//
//	CSV/XLSX → ReadCSV/ReadXLSX → RawRows → Clean → Records → Filter → Aggregations → Series
//
// # Cleaning Policy
//
// Cleaning never fails on malformed cell values. Rows with unparseable
// dates are dropped; unparseable engagement counts become 0; missing
// categorical values become "Unknown". These are deliberate product
// decisions carried over from the dashboard's behavior, not defects.
//
// Only structural problems with the input (empty file, missing header,
// malformed CSV framing) surface as errors, and only from the readers.
package mediaintel
