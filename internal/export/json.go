package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/danbikim/askdb/internal"
)

// JSONExporter writes result rows as a pretty-printed JSON array,
// preserving the column order of the source data.
type JSONExporter struct{}

// Export writes the result set as JSON.
func (e *JSONExporter) Export(rows []internal.Row, w io.Writer) error {
	if len(rows) == 0 {
		return fmt.Errorf("no rows to export")
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

// Extension returns the file extension for this format.
func (e *JSONExporter) Extension() string {
	return "json"
}
