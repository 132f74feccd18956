package export

import (
	"fmt"
	"io"

	"github.com/danbikim/askdb/internal"
)

// Exporter writes a tabular result set to a writer in one format.
// Column order follows the first row's columns.
type Exporter interface {
	Export(rows []internal.Row, w io.Writer) error
	Extension() string
}

// NewExporter creates an exporter for the given format.
func NewExporter(format string) (Exporter, error) {
	switch format {
	case "tsv":
		return &TSVExporter{}, nil
	case "csv":
		return &CSVExporter{}, nil
	case "json":
		return &JSONExporter{}, nil
	case "xlsx":
		return &XLSXExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: tsv, csv, json, xlsx)", format)
	}
}

// columnsOf returns the header columns for a result set: the column
// order of the first row.
func columnsOf(rows []internal.Row) []string {
	if len(rows) == 0 {
		return nil
	}
	return rows[0].Columns()
}
