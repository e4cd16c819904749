package workbook

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// dateLayouts are tried in order against date-ish cell text. GetRows hands
// back formatted strings, so the same column can show up in several of
// these shapes depending on the cell style.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01-02-06",
	"1/2/06",
	"01/02/2006",
	"1/2/2006",
	"2006/01/02",
	"02-01-2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"Jan 2, 2006",
	time.RFC3339,
}

// ParseCellDate parses a cell value as a calendar date. Text values are
// tried against the known layouts; bare numbers are treated as Excel date
// serials in the workbook's epoch mode. Returns ok=false when nothing
// fits, which the normalizer maps to the month's default date.
func ParseCellDate(value string, date1904 bool) (time.Time, bool) {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	if serial, err := strconv.ParseFloat(v, 64); err == nil && serial > 0 {
		if t, err := excelize.ExcelDateToTime(serial, date1904); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
