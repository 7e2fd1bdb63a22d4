// Package ingest parses uploaded NAV history workbooks into domain series.
//
// Input files are Excel workbooks with one date column and one net value
// column under a header row. The parser is deliberately forgiving about cell
// formats (serial dates, several string layouts, CJK date markers, grouped
// digits) and strict about the result: dates are normalized to UTC midnight
// and the series is returned sorted ascending.
package ingest
