package tabcodec

import (
	"fmt"

	"github.com/ukaji3/tabcodec-go/pkg/tabcodec/models"
	"github.com/ukaji3/tabcodec-go/pkg/tabcodec/parser"
	"github.com/ukaji3/tabcodec-go/pkg/tabcodec/writer"
)

// Decode converts data in the given format into a canonical table.
// Every row of the result has exactly len(Columns) cells.
func Decode(format Format, data []byte, opts Options) (*models.Table, error) {
	logger := opts.EffectiveLogger()

	var (
		raw [][]string
		err error
	)
	switch format {
	case FormatCSV:
		raw, err = parser.DecodeCSV(data, logger)
	case FormatXLSX:
		raw, err = parser.DecodeXLSX(data, opts.sheetParams(), logger)
	case FormatODS:
		raw, err = parser.DecodeODS(data, opts.sheetParams(), logger)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, &DecodeError{Format: format, Err: err}
	}

	table := models.NewTable(raw)
	logger.Debug("table decoded", "format", format, "columns", table.Width(), "rows", len(table.Rows))
	return table, nil
}

// DecodeFile decodes data using the format implied by name's extension.
func DecodeFile(name string, data []byte, opts Options) (*models.Table, error) {
	format, err := FormatFromFilename(name)
	if err != nil {
		return nil, err
	}
	return Decode(format, data, opts)
}

// Encode serializes table into the given format. Formats other than ODS
// produce XLSX. Values are written as text without type inference.
func Encode(format Format, table *models.Table) ([]byte, error) {
	if table == nil {
		table = &models.Table{}
	}

	var (
		data []byte
		err  error
	)
	switch format {
	case FormatODS:
		data, err = writer.WriteODS(table.Columns, table.Rows)
	default:
		format = FormatXLSX
		data, err = writer.WriteXLSX(table.Columns, table.Rows)
	}
	if err != nil {
		return nil, &EncodeError{Format: format, Err: err}
	}
	return data, nil
}
