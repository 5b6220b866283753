// Package sheet reads and writes the VM update workbook. One worksheet acts
// as both record source (rows to process) and result sink (status and
// timestamp columns written back per row).
package sheet

import (
	"fmt"
	"log"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/hardev/prismops/internal/categories"
)

// DefaultSheetName is the worksheet the update workflow reads by convention.
const DefaultSheetName = "ToUpdate"

// Header fragments, matched case-insensitively against the first row. The
// name and extId columns need exact (folded) equality because the match
// column header contains both strings.
const (
	headerName       = "vm name"
	headerExtID      = "vm extid"
	headerMatch      = "match"
	headerCategories = "category uuid"
	headerStatus     = "status of update"
	headerTimestamp  = "timestamp"
)

// columns holds 1-based column indices; 0 means the column is absent.
type columns struct {
	name       int
	extID      int
	match      int
	categories int
	status     int
	timestamp  int
}

// Workbook is an open xlsx file acting as record source and result sink.
type Workbook struct {
	path        string
	sheet       string
	file        *excelize.File
	cols        columns
	statusStyle int // lazily created excelize style id, 0 = not yet created
}

// Open loads the workbook and indexes the header row of the given sheet.
// The four input columns are required; the status and timestamp columns are
// optional (outcomes become logged no-ops without them).
func Open(path, sheetName string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}

	idx, err := f.GetSheetIndex(sheetName)
	if err != nil || idx < 0 {
		_ = f.Close()
		return nil, fmt.Errorf("worksheet %q not found in %s", sheetName, path)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to read worksheet %q: %w", sheetName, err)
	}
	if len(rows) == 0 {
		_ = f.Close()
		return nil, fmt.Errorf("worksheet %q has no header row", sheetName)
	}

	cols := indexColumns(rows[0])
	var missing []string
	if cols.name == 0 {
		missing = append(missing, "VM Name")
	}
	if cols.extID == 0 {
		missing = append(missing, "VM extId")
	}
	if cols.match == 0 {
		missing = append(missing, "match")
	}
	if cols.categories == 0 {
		missing = append(missing, "Category UUID(s)")
	}
	if len(missing) > 0 {
		_ = f.Close()
		return nil, fmt.Errorf("worksheet %q is missing required columns: %s", sheetName, strings.Join(missing, ", "))
	}

	return &Workbook{path: path, sheet: sheetName, file: f, cols: cols}, nil
}

// indexColumns locates the known columns in the header row.
func indexColumns(header []string) columns {
	var cols columns
	for i, cell := range header {
		h := strings.ToLower(strings.TrimSpace(cell))
		col := i + 1
		switch {
		case h == headerName:
			cols.name = col
		case h == headerExtID:
			cols.extID = col
		case strings.Contains(h, headerStatus):
			cols.status = col
		case strings.Contains(h, headerTimestamp):
			cols.timestamp = col
		case strings.Contains(h, headerCategories):
			cols.categories = col
		case strings.Contains(h, headerMatch):
			cols.match = col
		}
	}
	return cols
}

// Records returns the data rows in sheet order. Row numbers are absolute
// worksheet rows (header is row 1, first record row 2) so they can be passed
// straight back to Mark.
func (w *Workbook) Records() ([]categories.Record, error) {
	rows, err := w.file.GetRows(w.sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet %q: %w", w.sheet, err)
	}

	var records []categories.Record
	for i, row := range rows[1:] {
		records = append(records, categories.Record{
			Row:        i + 2,
			Name:       cellAt(row, w.cols.name),
			ExtID:      cellAt(row, w.cols.extID),
			Match:      cellAt(row, w.cols.match),
			Categories: cellAt(row, w.cols.categories),
		})
	}
	return records, nil
}

// cellAt returns the trimmed value of a 1-based column, tolerating short rows.
func cellAt(row []string, col int) string {
	if col < 1 || col > len(row) {
		return ""
	}
	return strings.TrimSpace(row[col-1])
}

// Mark writes status and timestamp into the record's row and saves the
// workbook, so a crash after N records preserves the first N outcomes.
// Missing result columns make this a logged no-op.
func (w *Workbook) Mark(row int, status, timestamp string) error {
	if w.cols.status == 0 && w.cols.timestamp == 0 {
		log.Printf("Workbook has no status/timestamp columns, outcome for row %d not recorded", row)
		return nil
	}

	if w.cols.status != 0 {
		cell, err := excelize.CoordinatesToCellName(w.cols.status, row)
		if err != nil {
			return fmt.Errorf("invalid status cell for row %d: %w", row, err)
		}
		if err := w.file.SetCellValue(w.sheet, cell, status); err != nil {
			return fmt.Errorf("failed to write status for row %d: %w", row, err)
		}
		if styleID, err := w.ensureStatusStyle(); err == nil {
			_ = w.file.SetCellStyle(w.sheet, cell, cell, styleID)
		}
	}

	if w.cols.timestamp != 0 {
		cell, err := excelize.CoordinatesToCellName(w.cols.timestamp, row)
		if err != nil {
			return fmt.Errorf("invalid timestamp cell for row %d: %w", row, err)
		}
		if err := w.file.SetCellValue(w.sheet, cell, timestamp); err != nil {
			return fmt.Errorf("failed to write timestamp for row %d: %w", row, err)
		}
	}

	if err := w.file.Save(); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// ensureStatusStyle creates the status cell style once: bold white text on a
// green fill, matching the workbook's existing audit convention.
func (w *Workbook) ensureStatusStyle() (int, error) {
	if w.statusStyle != 0 {
		return w.statusStyle, nil
	}
	styleID, err := w.file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"00FF00"}},
	})
	if err != nil {
		return 0, err
	}
	w.statusStyle = styleID
	return styleID, nil
}

// Close releases the underlying file handle without saving.
func (w *Workbook) Close() error {
	return w.file.Close()
}
