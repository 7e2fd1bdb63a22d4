package ingest

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// dateLayouts covers the cell formats seen in exported NAV workbooks. The
// list is tried in order after CJK date markers are normalized away.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006-1-2",
	"2006/1/2",
	"01-02-06",
	"01/02/2006",
	"1/2/2006",
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
	"02-Jan-06",
	"Jan 2, 2006",
}

var cjkDateReplacer = strings.NewReplacer("年", "-", "月", "-", "日", "")

// parseDate interprets a date cell. Numeric cells are treated as Excel
// serial dates; string cells are matched against the known layouts, with
// CJK year/month/day markers rewritten to dashes first.
func parseDate(cell string) (time.Time, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return time.Time{}, false
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		// Serial 61 is 1900-03-01; anything below that is noise, not a date.
		if serial < 61 {
			return time.Time{}, false
		}
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}

	s = cjkDateReplacer.Replace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseValue interprets a net value cell, tolerating thousands separators.
// Only positive values qualify; a NAV of zero or below is a data error.
func parseValue(cell string) (float64, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(cell), ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
