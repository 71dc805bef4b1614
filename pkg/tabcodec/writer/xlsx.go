// Package writer serializes canonical tables into spreadsheet containers.
package writer

import (
	"fmt"
	"unicode/utf16"

	"github.com/xuri/excelize/v2"
)

// SheetName is the name of the single sheet every writer produces.
const SheetName = "Sheet1"

// WriteXLSX serializes columns and rows into an OOXML workbook. The header
// occupies row 1 and every value is written as a string. Tables that
// exceed the sheet's row, column or cell length limits fail.
func WriteXLSX(columns []string, rows [][]string) ([]byte, error) {
	if len(rows)+1 > excelize.TotalRows {
		return nil, fmt.Errorf("%d rows plus header: %w", len(rows), excelize.ErrMaxRows)
	}

	f := excelize.NewFile()
	defer f.Close()

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return nil, fmt.Errorf("open stream writer: %w", err)
	}

	if err := writeXLSXRow(sw, 1, columns); err != nil {
		return nil, err
	}
	for i, row := range rows {
		if err := writeXLSXRow(sw, i+2, row); err != nil {
			return nil, err
		}
	}

	if err := sw.Flush(); err != nil {
		return nil, fmt.Errorf("flush sheet: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// writeXLSXRow writes one row. Values the sheet cannot hold intact fail
// instead of being truncated by the stream writer.
func writeXLSXRow(sw *excelize.StreamWriter, rowNum int, values []string) error {
	if rowNum > excelize.TotalRows {
		return fmt.Errorf("row %d: %w", rowNum, excelize.ErrMaxRows)
	}
	if len(values) > excelize.MaxColumns {
		return fmt.Errorf("row %d: %d columns: %w", rowNum, len(values), excelize.ErrColumnNumber)
	}

	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("row %d: %w", rowNum, err)
	}

	cells := make([]interface{}, len(values))
	for i, v := range values {
		if utf16Len(v) > excelize.TotalCellChars {
			return fmt.Errorf("row %d col %d: %w", rowNum, i+1, excelize.ErrCellCharsLength)
		}
		cells[i] = v
	}
	if err := sw.SetRow(cell, cells); err != nil {
		return fmt.Errorf("row %d: %w", rowNum, err)
	}
	return nil
}

// utf16Len counts UTF-16 code units, the unit of the sheet's cell length limit.
func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}
