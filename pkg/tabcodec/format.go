package tabcodec

import (
	"fmt"
	"strings"
)

// Format identifies a spreadsheet container format.
type Format string

const (
	// FormatCSV is delimited text with a sniffed delimiter.
	FormatCSV Format = "csv"
	// FormatXLSX is the Office Open XML workbook format.
	FormatXLSX Format = "xlsx"
	// FormatODS is the OpenDocument spreadsheet format.
	FormatODS Format = "ods"
)

// Formats lists every decodable format in dispatch order.
var Formats = []Format{FormatCSV, FormatXLSX, FormatODS}

// ParseFormat parses a format name such as "xlsx" or ".XLSX".
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))
	for _, f := range Formats {
		if name == string(f) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// FormatFromFilename picks the format from a file name's extension,
// ignoring case.
func FormatFromFilename(name string) (Format, error) {
	lower := strings.ToLower(name)
	for _, f := range Formats {
		if strings.HasSuffix(lower, f.Extension()) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// Extension returns the file extension including the leading dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// ContentType returns the media type used when serving the format.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatODS:
		return "application/vnd.oasis.opendocument.spreadsheet"
	default:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
}
