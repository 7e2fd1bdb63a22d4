package ingest

import (
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/grx1242064203-bit/net-worth-analysis-tool/pkg/contracts/domain"
)

// Spreadsheet layout: the first row is a header, column A holds the date and
// column B the per-unit net value. Everything else is ignored.
const (
	dateColumn  = 0
	valueColumn = 1
)

// ParseFile reads a NAV history workbook from disk.
func ParseFile(filePath string) (domain.Series, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()
	return parseWorkbook(f)
}

// ParseReader reads a NAV history workbook from an uploaded stream.
func ParseReader(r io.Reader) (domain.Series, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()
	return parseWorkbook(f)
}

// parseWorkbook scans the sheets in declaration order and extracts the NAV
// series from the first one carrying at least a header row and one data row.
// Rows whose date or value cannot be parsed are skipped, not fatal; the file
// as a whole fails only when no valid row survives.
func parseWorkbook(f *excelize.File) (domain.Series, error) {
	var rows [][]string
	var sheetName string
	for _, name := range f.GetSheetList() {
		candidate, err := f.GetRows(name)
		if err != nil {
			continue
		}
		if len(candidate) >= 2 {
			rows = candidate
			sheetName = name
			break
		}
	}
	if rows == nil {
		return nil, fmt.Errorf("no sheet with data rows found")
	}

	series := make(domain.Series, 0, len(rows)-1)
	skipped := 0
	for i, row := range rows[1:] {
		if len(row) <= valueColumn {
			skipped++
			continue
		}
		date, ok := parseDate(row[dateColumn])
		if !ok {
			skipped++
			continue
		}
		value, ok := parseValue(row[valueColumn])
		if !ok {
			slog.Debug("skipping row with unparseable net value",
				slog.String("sheet", sheetName),
				slog.Int("row", i+2),
				slog.String("cell", row[valueColumn]))
			skipped++
			continue
		}
		series = append(series, domain.Point{Date: domain.NormalizeDate(date), Value: value})
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("no valid (date, net value) rows found in sheet %q", sheetName)
	}
	if skipped > 0 {
		slog.Debug("skipped unparseable rows",
			slog.String("sheet", sheetName),
			slog.Int("skipped", skipped),
			slog.Int("parsed", len(series)))
	}

	sort.Slice(series, func(a, b int) bool {
		return series[a].Date.Before(series[b].Date)
	})
	return series, nil
}
