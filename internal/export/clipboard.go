package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/danbikim/askdb/internal"
)

// CopyToClipboard writes the result set to the system clipboard as TSV
// so it pastes into spreadsheet applications as a table.
func CopyToClipboard(rows []internal.Row) error {
	var buf bytes.Buffer
	exporter := &TSVExporter{}
	if err := exporter.Export(rows, &buf); err != nil {
		return err
	}
	if err := clipboard.WriteAll(buf.String()); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	return nil
}

// ResultFilename returns a timestamped file name for an export
// artifact, e.g. query_results_20260830_142500.xlsx.
func ResultFilename(extension string, now time.Time) string {
	return fmt.Sprintf("query_results_%s.%s", now.Format("20060102_150405"), extension)
}
