package parser

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// Region is an inclusive, zero-based rectangle of cells.
type Region struct {
	Row1, Col1 int
	Row2, Col2 int
}

// ParseRange parses an A1:C3 style reference into a Region.
// Absolute markers are ignored and reversed corners are normalized.
func ParseRange(ref string) (Region, bool) {
	ref = strings.ReplaceAll(strings.TrimSpace(ref), "$", "")

	parts := strings.Split(ref, ":")
	if len(parts) != 2 {
		return Region{}, false
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return Region{}, false
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return Region{}, false
	}

	return Region{
		Row1: min(startRow, endRow) - 1,
		Col1: min(startCol, endCol) - 1,
		Row2: max(startRow, endRow) - 1,
		Col2: max(startCol, endCol) - 1,
	}, true
}

// cellColumn returns the zero-based column of a cell reference such as C7.
func cellColumn(ref string) (int, bool) {
	col, _, err := excelize.CellNameToCoordinates(ref)
	if err != nil {
		return 0, false
	}
	return col - 1, true
}
