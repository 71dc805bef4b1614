// Package output provides JSON serialization for decoded tables.
package output

import (
	"encoding/json"

	"github.com/ukaji3/tabcodec-go/pkg/tabcodec/models"
)

// ToJSON serializes a table to the {"columns": [...], "rows": [[...]]} document.
// A nil table is written as an empty one.
func ToJSON(table *models.Table, pretty bool) ([]byte, error) {
	if table == nil {
		table = models.NewTable(nil)
	}
	if pretty {
		return json.MarshalIndent(table, "", "  ")
	}
	return json.Marshal(table)
}
