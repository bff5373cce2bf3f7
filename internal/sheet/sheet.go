// Package sheet provides the row store the watcher reconciles against: an
// ordered, mutable list of position rows addressed by 1-based index, where
// deleting a row shifts every later row up by one.
package sheet

// Worksheet column layout, 1-based. Row 1 is the header.
const (
	ColTicker  = 3
	ColCost    = 4
	ColHWM     = 5
	ColAction  = 6
	ColTrigger = 7
	ColTime    = 8
)

// RowStore is the minimal cell-level access the reconciliation loop needs.
// The production implementation is a Google Sheets worksheet; tests use an
// in-memory grid.
type RowStore interface {
	// ReadCell returns the cell value at (row, col), "" for empty cells.
	ReadCell(row, col int) (string, error)
	// WriteCell overwrites the cell at (row, col).
	WriteCell(row, col int, value string) error
	// DeleteRow removes row entirely; all later rows shift up by one.
	DeleteRow(row int) error
	// ColumnValues returns col top to bottom, ending at its last
	// non-empty cell. Its length is the live row count.
	ColumnValues(col int) ([]string, error)
}

// colLetter converts a 1-based column index to its A1 letter form.
func colLetter(col int) string {
	s := ""
	for col > 0 {
		col--
		s = string(rune('A'+col%26)) + s
		col /= 26
	}
	return s
}
