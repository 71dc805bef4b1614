// Package models defines the canonical table shared by every decoder and encoder.
package models

// Table is the canonical header-plus-rows grid every format converges to.
// After construction every row has exactly len(Columns) cells.
type Table struct {
	// Columns holds the header row.
	Columns []string `json:"columns"`
	// Rows holds the data rows, each aligned to Columns.
	Rows [][]string `json:"rows"`
}

// NewTable splits the first raw row off as the header and pads the header
// and every data row with empty strings to the widest row observed.
func NewTable(raw [][]string) *Table {
	if len(raw) == 0 {
		return &Table{Columns: []string{}, Rows: [][]string{}}
	}

	width := 0
	for _, row := range raw {
		if len(row) > width {
			width = len(row)
		}
	}

	rows := make([][]string, 0, len(raw)-1)
	for _, row := range raw[1:] {
		rows = append(rows, PadRow(row, width))
	}

	return &Table{
		Columns: PadRow(raw[0], width),
		Rows:    rows,
	}
}

// PadRow returns row extended with empty strings up to width.
// Rows already at least width long are returned as is.
func PadRow(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	padded := make([]string, width)
	copy(padded, row)
	return padded
}

// Width returns the number of columns.
func (t *Table) Width() int {
	return len(t.Columns)
}

// IsRectangular reports whether every row has exactly Width cells.
func (t *Table) IsRectangular() bool {
	for _, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return false
		}
	}
	return true
}
