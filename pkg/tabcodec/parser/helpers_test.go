package parser

import (
	"archive/zip"
	"bytes"
	"io"
	"log/slog"
	"reflect"
	"testing"
)

// zipMember is a named archive entry used to build test fixtures.
type zipMember struct {
	name string
	body string
}

func buildZip(t *testing.T, members ...zipMember) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, m := range members {
		w, err := zw.Create(m.name)
		if err != nil {
			t.Fatalf("Failed to create %s: %v", m.name, err)
		}
		if _, err := io.WriteString(w, m.body); err != nil {
			t.Fatalf("Failed to write %s: %v", m.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}
	return buf.Bytes()
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func assertRows(t *testing.T, got, expected [][]string) {
	t.Helper()
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("rows mismatch\n got: %q\nwant: %q", got, expected)
	}
}

func assertRectangular(t *testing.T, rows [][]string) {
	t.Helper()
	if len(rows) == 0 {
		return
	}
	width := len(rows[0])
	for i, row := range rows {
		if len(row) != width {
			t.Errorf("row %d has %d cells, expected %d", i, len(row), width)
		}
	}
}
