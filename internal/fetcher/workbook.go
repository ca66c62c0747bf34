package fetcher

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// WorkbookOptions selects which sheet of a financial model export to read.
type WorkbookOptions struct {
	SheetIndex int    // default 0
	SheetName  string // if set, overrides SheetIndex
	SkipRows   int    // header rows to skip before the metric grid
}

// ReadWorkbookMetrics parses a financial model export into a flat
// metric map. Model exports use a two-column layout: metric name in the
// first cell, value in the second. Rows with an empty metric name are
// skipped; a duplicated metric keeps the last value, matching how
// analysts append revisions at the bottom of the sheet.
func ReadWorkbookMetrics(path string, opts WorkbookOptions) (map[string]string, error) {
	rows, err := ReadWorkbookRows(path, opts)
	if err != nil {
		return nil, err
	}

	metrics := make(map[string]string, len(rows))
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		name := strings.TrimSpace(row[0])
		if name == "" {
			continue
		}
		metrics[name] = strings.TrimSpace(row[1])
	}

	return metrics, nil
}

// ReadWorkbookRows reads a workbook sheet and returns all rows as string
// slices.
func ReadWorkbookRows(path string, opts WorkbookOptions) ([][]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "workbook: open file")
	}

	sheet, err := getSheet(f, opts)
	if err != nil {
		return nil, err
	}

	var rows [][]string
	for i, row := range sheet.Rows {
		if i < opts.SkipRows {
			continue
		}
		rows = append(rows, rowToStrings(row))
	}

	return rows, nil
}

func getSheet(f *xlsx.File, opts WorkbookOptions) (*xlsx.Sheet, error) {
	if opts.SheetName != "" {
		sheet, ok := f.Sheet[opts.SheetName]
		if !ok {
			return nil, eris.Errorf("workbook: sheet %q not found", opts.SheetName)
		}
		return sheet, nil
	}

	if opts.SheetIndex >= len(f.Sheets) {
		return nil, eris.Errorf("workbook: sheet index %d out of range (file has %d sheets)", opts.SheetIndex, len(f.Sheets))
	}

	return f.Sheets[opts.SheetIndex], nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}
