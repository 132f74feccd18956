package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/danbikim/askdb/internal"
)

// CSVExporter writes result rows as RFC 4180 CSV.
type CSVExporter struct{}

// Export writes the result set as CSV.
func (e *CSVExporter) Export(rows []internal.Row, w io.Writer) error {
	columns := columnsOf(rows)
	if len(columns) == 0 {
		return fmt.Errorf("no rows to export")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}

	for _, row := range rows {
		record := make([]string, len(columns))
		for i, col := range columns {
			record[i] = row.CellString(col)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// Extension returns the file extension for this format.
func (e *CSVExporter) Extension() string {
	return "csv"
}
