package parser

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// DefaultMergeRowLimit is the row count at which merge flattening is skipped.
const DefaultMergeRowLimit = 10000

// DefaultMaxCells is the largest rectangular grid a sheet may decode to.
const DefaultMaxCells = 10_000_000

// SheetParams holds tunables for the OOXML and ODS decoders. Zero values
// select the defaults.
type SheetParams struct {
	// MergeRowLimit skips merge flattening for sheets with at least this
	// many rows. A negative value disables the cutoff.
	MergeRowLimit int
	// MaxCells bounds rows times columns of the decoded grid. Sheets over
	// the budget fail with ErrSheetTooLarge. A negative value disables it.
	MaxCells int
}

// DefaultSheetParams returns default sheet decoding parameters.
func DefaultSheetParams() SheetParams {
	return SheetParams{
		MergeRowLimit: DefaultMergeRowLimit,
		MaxCells:      DefaultMaxCells,
	}
}

func (p SheetParams) mergeRowLimit() int {
	if p.MergeRowLimit == 0 {
		return DefaultMergeRowLimit
	}
	return p.MergeRowLimit
}

func (p SheetParams) maxCells() int {
	if p.MaxCells == 0 {
		return DefaultMaxCells
	}
	return p.MaxCells
}

// flattenMerges reports whether merges apply to a sheet of rowCount rows.
func (p SheetParams) flattenMerges(rowCount int) bool {
	limit := p.mergeRowLimit()
	return limit < 0 || rowCount < limit
}

// cellKind is the value type of an OOXML cell, taken from its t attribute.
type cellKind int

const (
	cellNumeric cellKind = iota
	cellShared
	cellDate
	cellText
)

func cellKindOf(t string) cellKind {
	switch t {
	case "s":
		return cellShared
	case "d":
		return cellDate
	case "str", "inlineStr", "b", "e":
		return cellText
	default:
		return cellNumeric
	}
}

// resolve collapses the raw cell text into its final string.
func (k cellKind) resolve(raw string, shared []string) string {
	switch k {
	case cellShared:
		i, err := strconv.Atoi(raw)
		if err != nil || i < 0 || i >= len(shared) {
			return ""
		}
		return shared[i]
	case cellDate:
		return FormatISODate(raw)
	case cellText:
		return raw
	default:
		return FormatSerialDate(raw)
	}
}

// DecodeXLSX reads the first worksheet of an OOXML workbook into raw rows,
// header first. Merged regions are flattened and the result is rectangular.
// Sheets whose grid would exceed params' cell budget fail with ErrSheetTooLarge.
func DecodeXLSX(data []byte, params SheetParams, logger *slog.Logger) ([][]string, error) {
	archive, err := OpenArchive(data)
	if err != nil {
		return nil, err
	}

	shared, err := readSharedStrings(archive)
	if err != nil {
		return nil, err
	}

	sheetPart := firstSheetPart(archive)
	sheetXML, ok, err := archive.ReadMember(sheetPart)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, missingPart(sheetPart)
	}

	state := &sheetState{shared: shared}
	if limit := params.maxCells(); limit > 0 {
		state.grid.limit = limit
	}
	if err := state.run(NewXMLCursor(sheetXML)); err != nil {
		return nil, &PartError{Part: sheetPart, Err: err}
	}

	rowCount := state.grid.rowCount()
	flatten := params.flattenMerges(rowCount)
	if !flatten && len(state.merges) > 0 {
		logger.Debug("skipping merge flattening on large sheet",
			"rows", rowCount, "merges", len(state.merges), "limit", params.mergeRowLimit())
	}

	var merges []Region
	if flatten {
		merges = state.merges
	}
	if err := state.grid.checkBudget(merges, params.maxCells()); err != nil {
		return nil, &PartError{Part: sheetPart, Err: err}
	}
	state.grid.applyMerges(merges)

	rows := state.grid.finish()
	logger.Debug("decoded xlsx", "sheet", sheetPart, "rows", len(rows), "shared_strings", len(shared))
	return rows, nil
}

// readSharedStrings collects every <si> text in document order.
// A workbook without a shared string part yields an empty table.
func readSharedStrings(a *Archive) ([]string, error) {
	data, ok, err := a.ReadMember(sharedStringsPart)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var (
		strs     []string
		text     strings.Builder
		inItem   bool
		phonetic int
	)
	cur := NewXMLCursor(data)
	for {
		ev, err := cur.Next()
		if err != nil {
			return nil, &PartError{Part: sharedStringsPart, Err: err}
		}

		switch ev.Kind {
		case EventEOF:
			return strs, nil
		case EventStart:
			switch ev.Name.Local {
			case "si":
				inItem = true
				text.Reset()
			case "rPh":
				phonetic++
			}
		case EventEnd:
			switch ev.Name.Local {
			case "si":
				strs = append(strs, text.String())
				inItem = false
			case "rPh":
				phonetic--
			}
		case EventText:
			if inItem && phonetic == 0 {
				text.WriteString(ev.Text)
			}
		}
	}
}

// sheetState is the decoder state threaded through one worksheet pass.
type sheetState struct {
	grid   grid
	shared []string
	merges []Region

	row     int
	col     int
	rowSeen bool

	inCell   bool
	kind     cellKind
	capture  int // depth inside <v> or <is>
	phonetic int
	text     strings.Builder
}

func (s *sheetState) run(cur *XMLCursor) error {
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
			if s.grid.overBudget(0) {
				return s.grid.budgetError()
			}
		case EventText:
			if s.inCell && s.capture > 0 && s.phonetic == 0 {
				s.text.WriteString(ev.Text)
			}
		}
	}
}

func (s *sheetState) start(ev Event) {
	switch ev.Name.Local {
	case "row":
		s.startRow(ev)
	case "c":
		s.startCell(ev)
	case "v", "is":
		if s.inCell {
			s.capture++
		}
	case "rPh":
		if s.inCell {
			s.phonetic++
		}
	case "mergeCell":
		if ref, ok := plainAttr(ev.Attr, "ref"); ok {
			if region, ok := ParseRange(ref); ok {
				s.merges = append(s.merges, region)
			}
		}
	}
}

func (s *sheetState) end(ev Event) {
	switch ev.Name.Local {
	case "c":
		if s.inCell {
			s.endCell()
		}
	case "v", "is":
		if s.inCell && s.capture > 0 {
			s.capture--
		}
	case "rPh":
		if s.inCell && s.phonetic > 0 {
			s.phonetic--
		}
	}
}

func (s *sheetState) startRow(ev Event) {
	next := 0
	if s.rowSeen {
		next = s.row + 1
	}
	if r, ok := plainAttr(ev.Attr, "r"); ok {
		if n, err := strconv.Atoi(r); err == nil && n >= 1 && n <= excelize.TotalRows {
			next = n - 1
		}
	}
	s.row = next
	s.rowSeen = true
	s.col = 0
	s.grid.ensureRow(s.row)
}

func (s *sheetState) startCell(ev Event) {
	s.inCell = true
	s.capture = 0
	s.phonetic = 0
	s.text.Reset()

	t, _ := plainAttr(ev.Attr, "t")
	s.kind = cellKindOf(t)
	if ref, ok := plainAttr(ev.Attr, "r"); ok {
		if col, ok := cellColumn(ref); ok {
			s.col = col
		}
	}
}

func (s *sheetState) endCell() {
	raw := strings.TrimSpace(s.text.String())
	s.grid.set(s.row, s.col, s.kind.resolve(raw, s.shared))
	s.col++
	s.inCell = false
}
