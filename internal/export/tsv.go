package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/danbikim/askdb/internal"
)

// TSVExporter writes result rows as tab-separated values: a header row
// of column names, then one line per row. This is also the clipboard
// format, so spreadsheet applications paste it as a table.
type TSVExporter struct{}

// Export writes the result set as TSV.
func (e *TSVExporter) Export(rows []internal.Row, w io.Writer) error {
	columns := columnsOf(rows)
	if len(columns) == 0 {
		return fmt.Errorf("no rows to export")
	}

	if _, err := fmt.Fprintln(w, strings.Join(columns, "\t")); err != nil {
		return err
	}

	for _, row := range rows {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = row.CellString(col)
		}
		if _, err := fmt.Fprintln(w, strings.Join(cells, "\t")); err != nil {
			return err
		}
	}

	return nil
}

// Extension returns the file extension for this format.
func (e *TSVExporter) Extension() string {
	return "tsv"
}
