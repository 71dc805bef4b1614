package writer

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/tabcodec-go/pkg/tabcodec/parser"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWriteXLSX(t *testing.T) {
	columns := []string{"id", "name", "joined"}
	rows := [][]string{
		{"1", "Ann", "44200"},
		{"2", "", "<b>&co"},
	}

	data, err := WriteXLSX(columns, rows)
	if err != nil {
		t.Fatalf("WriteXLSX failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Failed to open written workbook: %v", err)
	}
	defer f.Close()

	if sheets := f.GetSheetList(); len(sheets) != 1 || sheets[0] != SheetName {
		t.Errorf("expected a single %q sheet, got %v", SheetName, sheets)
	}

	got, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	expected := [][]string{columns, rows[0], rows[1]}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("GetRows = %q, expected %q", got, expected)
	}
}

func TestWriteXLSXValuesStayText(t *testing.T) {
	data, err := WriteXLSX([]string{"serial"}, [][]string{{"44200"}})
	if err != nil {
		t.Fatalf("WriteXLSX failed: %v", err)
	}

	raw, err := parser.DecodeXLSX(data, parser.DefaultSheetParams(), discardLogger())
	if err != nil {
		t.Fatalf("DecodeXLSX failed: %v", err)
	}
	if len(raw) != 2 || raw[1][0] != "44200" {
		t.Errorf("expected the value to survive as text, got %q", raw)
	}
}

func TestWriteODS(t *testing.T) {
	columns := []string{"id", "name", "note"}
	rows := [][]string{
		{"1", "Ann", `<"quoted"> & more`},
		{"2", "", "x"},
		{"3", "Bob", ""},
	}

	data, err := WriteODS(columns, rows)
	if err != nil {
		t.Fatalf("WriteODS failed: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("Failed to open archive: %v", err)
	}
	first := zr.File[0]
	if first.Name != "mimetype" || first.Method != zip.Store {
		t.Fatalf("first entry = %q (method %d), expected stored mimetype", first.Name, first.Method)
	}
	mimetype, err := fs.ReadFile(zr, "mimetype")
	if err != nil {
		t.Fatalf("Failed to read mimetype: %v", err)
	}
	if string(mimetype) != ODSMimeType {
		t.Errorf("mimetype = %q, expected %q", mimetype, ODSMimeType)
	}
	for _, name := range []string{"META-INF/manifest.xml", "content.xml", "styles.xml", "meta.xml"} {
		if _, err := zr.Open(name); err != nil {
			t.Errorf("missing archive member %s: %v", name, err)
		}
	}

	raw, err := parser.DecodeODS(data, parser.DefaultSheetParams(), discardLogger())
	if err != nil {
		t.Fatalf("DecodeODS failed: %v", err)
	}
	expected := append([][]string{columns}, rows...)
	if !reflect.DeepEqual(raw, expected) {
		t.Errorf("decoded rows = %q, expected %q", raw, expected)
	}
}

func TestWriteEmptyTable(t *testing.T) {
	t.Run("xlsx", func(t *testing.T) {
		data, err := WriteXLSX(nil, nil)
		if err != nil {
			t.Fatalf("WriteXLSX failed: %v", err)
		}
		raw, err := parser.DecodeXLSX(data, parser.DefaultSheetParams(), discardLogger())
		if err != nil {
			t.Fatalf("DecodeXLSX failed: %v", err)
		}
		if len(raw) != 0 {
			t.Errorf("expected no rows, got %q", raw)
		}
	})

	t.Run("ods", func(t *testing.T) {
		data, err := WriteODS(nil, nil)
		if err != nil {
			t.Fatalf("WriteODS failed: %v", err)
		}
		raw, err := parser.DecodeODS(data, parser.DefaultSheetParams(), discardLogger())
		if err != nil {
			t.Fatalf("DecodeODS failed: %v", err)
		}
		if len(raw) != 0 {
			t.Errorf("expected no rows, got %q", raw)
		}
	})
}

func TestWriteXLSXRejectsOverflow(t *testing.T) {
	longCell := strings.Repeat("x", excelize.TotalCellChars+1)
	// Each astral rune counts as two UTF-16 units toward the limit.
	longAstral := strings.Repeat("😀", excelize.TotalCellChars/2+1)

	tests := []struct {
		name    string
		columns []string
		rows    [][]string
		target  error
	}{
		{"over-long cell", []string{"text"}, [][]string{{longCell}}, excelize.ErrCellCharsLength},
		{"over-long astral cell", []string{"text"}, [][]string{{"ok", longAstral}}, excelize.ErrCellCharsLength},
		{"over-long header", []string{longCell}, nil, excelize.ErrCellCharsLength},
		{"too many columns", make([]string, excelize.MaxColumns+1), nil, excelize.ErrColumnNumber},
		{"too many rows", []string{"a"}, make([][]string, excelize.TotalRows), excelize.ErrMaxRows},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := WriteXLSX(tt.columns, tt.rows)
			if !errors.Is(err, tt.target) {
				t.Fatalf("expected %v, got %v", tt.target, err)
			}
		})
	}
}

func TestWriteXLSXAtCellLimit(t *testing.T) {
	value := strings.Repeat("x", excelize.TotalCellChars)

	data, err := WriteXLSX([]string{"text"}, [][]string{{value}})
	if err != nil {
		t.Fatalf("WriteXLSX failed: %v", err)
	}
	raw, err := parser.DecodeXLSX(data, parser.DefaultSheetParams(), discardLogger())
	if err != nil {
		t.Fatalf("DecodeXLSX failed: %v", err)
	}
	if len(raw) != 2 || raw[1][0] != value {
		t.Errorf("cell at the length limit was altered (got %d chars)", len(raw[1][0]))
	}
}
