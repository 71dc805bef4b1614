package models

import (
	"reflect"
	"testing"
)

func TestNewTable(t *testing.T) {
	tests := []struct {
		name        string
		raw         [][]string
		wantColumns []string
		wantRows    [][]string
	}{
		{
			name:        "empty input",
			raw:         nil,
			wantColumns: []string{},
			wantRows:    [][]string{},
		},
		{
			name:        "header only",
			raw:         [][]string{{"a", "b"}},
			wantColumns: []string{"a", "b"},
			wantRows:    [][]string{},
		},
		{
			name:        "short rows padded",
			raw:         [][]string{{"a", "b", "c"}, {"1"}, {"1", "2", "3"}},
			wantColumns: []string{"a", "b", "c"},
			wantRows:    [][]string{{"1", "", ""}, {"1", "2", "3"}},
		},
		{
			name:        "short header padded",
			raw:         [][]string{{"a"}, {"1", "2"}},
			wantColumns: []string{"a", ""},
			wantRows:    [][]string{{"1", "2"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := NewTable(tt.raw)
			if !reflect.DeepEqual(table.Columns, tt.wantColumns) {
				t.Errorf("Columns = %q, expected %q", table.Columns, tt.wantColumns)
			}
			if !reflect.DeepEqual(table.Rows, tt.wantRows) {
				t.Errorf("Rows = %q, expected %q", table.Rows, tt.wantRows)
			}
			if !table.IsRectangular() {
				t.Error("expected a rectangular table")
			}
			if table.Width() != len(tt.wantColumns) {
				t.Errorf("Width() = %d, expected %d", table.Width(), len(tt.wantColumns))
			}
		})
	}
}

func TestIsRectangular(t *testing.T) {
	table := &Table{Columns: []string{"a", "b"}, Rows: [][]string{{"1", "2"}, {"3"}}}
	if table.IsRectangular() {
		t.Error("expected a ragged table to be reported")
	}
}

func TestPadRow(t *testing.T) {
	row := []string{"x", "y"}
	if got := PadRow(row, 1); !reflect.DeepEqual(got, row) {
		t.Errorf("PadRow shortened the row: %q", got)
	}
	if got := PadRow(row, 4); !reflect.DeepEqual(got, []string{"x", "y", "", ""}) {
		t.Errorf("PadRow(row, 4) = %q", got)
	}
}
