package parser

import (
	"log/slog"
	"slices"
	"strconv"
	"strings"
)

const contentPart = "content.xml"

// MaxRepeatedColumns caps table:number-columns-repeated expansion.
const MaxRepeatedColumns = 1024

// MaxRepeatedRows caps table:number-rows-repeated expansion.
const MaxRepeatedRows = 1024

// DecodeODS reads the first table of an OpenDocument spreadsheet into raw
// rows, header first. Rows without cells are dropped. Sheets whose grid
// would exceed params' cell budget fail with ErrSheetTooLarge.
func DecodeODS(data []byte, params SheetParams, logger *slog.Logger) ([][]string, error) {
	archive, err := OpenArchive(data)
	if err != nil {
		return nil, err
	}

	content, ok, err := archive.ReadMember(contentPart)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, missingPart(contentPart)
	}

	state := &odsState{}
	if limit := params.maxCells(); limit > 0 {
		state.grid.limit = limit
	}
	if err := state.run(NewXMLCursor(content)); err != nil {
		return nil, &PartError{Part: contentPart, Err: err}
	}
	if err := state.grid.checkBudget(nil, params.maxCells()); err != nil {
		return nil, &PartError{Part: contentPart, Err: err}
	}

	rows := state.grid.finish()
	logger.Debug("decoded ods", "rows", len(rows))
	return rows, nil
}

// odsCell holds the typed attributes captured from a cell's start tag.
type odsCell struct {
	covered   bool
	repeat    int
	valueType string
	value     string
	dateValue string
}

// resolve picks the cell's final string from its typed attributes and text.
func (c odsCell) resolve(text string) string {
	switch {
	case c.covered:
		return ""
	case c.dateValue != "":
		return FormatISODate(c.dateValue)
	case c.valueType == "date":
		return FormatISODate(strings.TrimSpace(text))
	case c.valueType == "float" && c.value != "":
		return FormatSerialDate(c.value)
	default:
		return strings.TrimSpace(text)
	}
}

// odsState is the decoder state threaded through content.xml.
type odsState struct {
	grid grid

	tables     int // table:table elements opened so far
	tableDepth int

	inRow     bool
	row       []string
	rowRepeat int
	// Empty cells are held back so a trailing run of repeated blanks does
	// not expand; pendingCells counts them expanded, pendingElems as written.
	pendingCells int
	pendingElems int

	inCell     bool
	cell       odsCell
	annotation int
	text       strings.Builder

	err error
}

// active reports whether events belong to the first table.
func (s *odsState) active() bool {
	return s.tables == 1 && s.tableDepth > 0
}

func (s *odsState) run(cur *XMLCursor) error {
	for {
		ev, err := cur.Next()
		if err != nil {
			return err
		}

		switch ev.Kind {
		case EventEOF:
			return nil
		case EventStart:
			s.start(ev)
		case EventEnd:
			s.end(ev)
			if s.err != nil {
				return s.err
			}
		case EventText:
			if s.inCell && s.annotation == 0 {
				s.text.WriteString(ev.Text)
			}
		}
	}
}

func (s *odsState) start(ev Event) {
	if nsTable.is(ev.Name, "table") {
		if s.tableDepth == 0 {
			s.tables++
		}
		s.tableDepth++
		return
	}
	if !s.active() {
		return
	}

	switch {
	case nsTable.is(ev.Name, "table-row"):
		s.inRow = true
		s.row = nil
		s.pendingCells, s.pendingElems = 0, 0
		s.rowRepeat = repeatCount(nsTable, ev, "number-rows-repeated", MaxRepeatedRows)
	case nsTable.is(ev.Name, "table-cell"), nsTable.is(ev.Name, "covered-table-cell"):
		s.startCell(ev)
	case nsText.is(ev.Name, "p"):
		// Paragraphs after the first start on a new line.
		if s.inCell && s.annotation == 0 && s.text.Len() > 0 {
			s.text.WriteByte('\n')
		}
	case nsOffice.is(ev.Name, "annotation"):
		if s.inCell {
			s.annotation++
		}
	}
}

func (s *odsState) end(ev Event) {
	if nsTable.is(ev.Name, "table") {
		if s.tableDepth > 0 {
			s.tableDepth--
		}
		return
	}
	if !s.active() {
		return
	}

	switch {
	case nsTable.is(ev.Name, "table-cell"), nsTable.is(ev.Name, "covered-table-cell"):
		if s.inCell {
			s.endCell()
		}
	case nsTable.is(ev.Name, "table-row"):
		if s.inRow {
			s.endRow()
		}
	case nsOffice.is(ev.Name, "annotation"):
		if s.annotation > 0 {
			s.annotation--
		}
	}
}

func (s *odsState) startCell(ev Event) {
	s.inCell = true
	s.annotation = 0
	s.text.Reset()

	s.cell = odsCell{
		covered: ev.Name.Local == "covered-table-cell",
		repeat:  1,
	}
	s.cell.valueType, _ = nsOffice.attr(ev.Attr, "value-type")
	s.cell.value, _ = nsOffice.attr(ev.Attr, "value")
	s.cell.dateValue, _ = nsOffice.attr(ev.Attr, "date-value")
	s.cell.repeat = repeatCount(nsTable, ev, "number-columns-repeated", MaxRepeatedColumns)
}

// repeatCount reads a repetition attribute, defaulting to one and capped at limit.
func repeatCount(ns namespace, ev Event, local string, limit int) int {
	n, ok := ns.attr(ev.Attr, local)
	if !ok {
		return 1
	}
	repeat, err := strconv.Atoi(n)
	if err != nil || repeat < 1 {
		return 1
	}
	return min(repeat, limit)
}

func (s *odsState) endCell() {
	s.inCell = false
	value := s.cell.resolve(s.text.String())
	if value == "" {
		s.pendingCells += s.cell.repeat
		s.pendingElems++
		return
	}

	if s.grid.overBudget(len(s.row) + s.pendingCells + s.cell.repeat) {
		s.err = s.grid.budgetError()
		return
	}
	for range s.pendingCells {
		s.row = append(s.row, "")
	}
	s.pendingCells, s.pendingElems = 0, 0
	for range s.cell.repeat {
		s.row = append(s.row, value)
	}
}

func (s *odsState) endRow() {
	s.inRow = false
	for range s.pendingElems {
		s.row = append(s.row, "")
	}
	s.pendingCells, s.pendingElems = 0, 0

	row := s.row
	s.row = nil
	if len(row) == 0 {
		return
	}

	// Repeated rows expand only when they carry a value; runs of blank
	// rows such as trailing padding stay a single row.
	repeat := 1
	if !blankRow(row) {
		repeat = s.rowRepeat
	}
	if s.grid.overBudget(len(row) * repeat) {
		s.err = s.grid.budgetError()
		return
	}
	s.grid.appendRow(row)
	for i := 1; i < repeat; i++ {
		s.grid.appendRow(slices.Clone(row))
	}
}

func blankRow(row []string) bool {
	for _, v := range row {
		if v != "" {
			return false
		}
	}
	return true
}
