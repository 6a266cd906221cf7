// Package planfile decodes uploaded plan spreadsheets into rows the
// ingestion service can validate.
package planfile

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"bankapi/internal/core"
)

// Column names expected in the header row of an uploaded workbook.
const (
	colPeriod   = "period"
	colCategory = "category_name"
	colSum      = "sum"
)

// Layouts accepted for period cells. Excel renders date cells
// differently depending on the cell style, so a few common forms are
// tolerated besides ISO.
var periodLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01-02-06",
	"1/2/06",
	"02.01.2006",
}

// Decode reads the first sheet of an xlsx workbook. The first row is a
// header naming the period, category_name and sum columns. Anything
// that prevents reading rows — an unreadable workbook, missing
// columns, an unparseable cell — wraps core.ErrMalformedInput; row
// content itself is not validated here.
func Decode(r io.Reader) ([]core.PlanRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: not a readable xlsx workbook", core.ErrMalformedInput)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", core.ErrMalformedInput)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %q", core.ErrMalformedInput, sheets[0])
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: missing header row", core.ErrMalformedInput)
	}

	periodCol := indexOf(rows[0], colPeriod)
	categoryCol := indexOf(rows[0], colCategory)
	sumCol := indexOf(rows[0], colSum)
	if periodCol == -1 || categoryCol == -1 || sumCol == -1 {
		missing := make([]string, 0, 3)
		if periodCol == -1 {
			missing = append(missing, colPeriod)
		}
		if categoryCol == -1 {
			missing = append(missing, colCategory)
		}
		if sumCol == -1 {
			missing = append(missing, colSum)
		}
		return nil, fmt.Errorf("%w: header is missing columns %s", core.ErrMalformedInput, strings.Join(missing, ", "))
	}

	out := make([]core.PlanRow, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}

		period, err := parsePeriod(cell(row, periodCol))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", core.ErrMalformedInput, i+2, err)
		}

		sum, err := parseSum(cell(row, sumCol))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", core.ErrMalformedInput, i+2, err)
		}

		out = append(out, core.PlanRow{
			Period:   period,
			Category: strings.TrimSpace(cell(row, categoryCol)),
			Sum:      sum,
		})
	}
	return out, nil
}

func parsePeriod(s string) (core.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return core.Date{}, fmt.Errorf("empty period cell")
	}
	for _, layout := range periodLayouts {
		if t, err := parseLayout(layout, s); err == nil {
			return t, nil
		}
	}
	return core.Date{}, fmt.Errorf("unparseable period %q", s)
}

func parseLayout(layout, s string) (core.Date, error) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return core.Date{}, err
	}
	return core.NewDate(t.Year(), int(t.Month()), t.Day()), nil
}

// parseSum reads a numeric cell. An empty cell decodes to zero so the
// missing-sum validation rule can report it alongside other row
// violations.
func parseSum(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable sum %q", s)
	}
	return v, nil
}

func indexOf(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
