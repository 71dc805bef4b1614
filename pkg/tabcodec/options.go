// Package tabcodec decodes CSV, XLSX and ODS spreadsheets into a canonical
// string table and encodes that table back into XLSX and ODS.
package tabcodec

import (
	"log/slog"

	"github.com/ukaji3/tabcodec-go/pkg/tabcodec/parser"
)

// DefaultMergeRowLimit is the sheet height at which merged regions are no
// longer flattened.
const DefaultMergeRowLimit = parser.DefaultMergeRowLimit

// DefaultMaxCells is the largest grid, in rows times columns, a spreadsheet
// may decode to.
const DefaultMaxCells = parser.DefaultMaxCells

// Options configures decoding behavior.
type Options struct {
	// MergeRowLimit skips merge flattening for sheets with at least this
	// many rows. Zero means DefaultMergeRowLimit; negative disables the cutoff.
	MergeRowLimit int
	// MaxCells bounds rows times columns of a decoded XLSX or ODS sheet.
	// Zero means DefaultMaxCells; negative disables the bound.
	MaxCells int
	// Logger receives debug diagnostics.
	// If nil, slog.Default() is used.
	Logger *slog.Logger
}

// DefaultOptions returns default decoding options.
func DefaultOptions() Options {
	return Options{
		MergeRowLimit: DefaultMergeRowLimit,
		MaxCells:      DefaultMaxCells,
	}
}

// EffectiveMergeRowLimit returns the merge cutoff to apply.
func (o Options) EffectiveMergeRowLimit() int {
	if o.MergeRowLimit == 0 {
		return DefaultMergeRowLimit
	}
	return o.MergeRowLimit
}

// EffectiveMaxCells returns the cell budget to apply.
func (o Options) EffectiveMaxCells() int {
	if o.MaxCells == 0 {
		return DefaultMaxCells
	}
	return o.MaxCells
}

// EffectiveLogger returns the logger to use.
func (o Options) EffectiveLogger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

func (o Options) sheetParams() parser.SheetParams {
	params := parser.DefaultSheetParams()
	params.MergeRowLimit = o.EffectiveMergeRowLimit()
	params.MaxCells = o.EffectiveMaxCells()
	return params
}
