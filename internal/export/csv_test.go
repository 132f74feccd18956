package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/danbikim/askdb/internal"
)

func TestCSVExporter_Export(t *testing.T) {
	rows := internal.CreateTestRows(`[
		{"name": "kim, d", "note": "said \"hi\""},
		{"name": "lee", "note": ""}
	]`)

	var buf bytes.Buffer
	if err := (&CSVExporter{}).Export(rows, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want header + 2 rows", len(records))
	}
	if records[0][0] != "name" || records[0][1] != "note" {
		t.Errorf("header = %v", records[0])
	}
	if records[1][0] != "kim, d" || records[1][1] != `said "hi"` {
		t.Errorf("row 1 = %v, want quoting preserved", records[1])
	}
}

func TestCSVExporter_EmptyRows(t *testing.T) {
	var buf bytes.Buffer
	if err := (&CSVExporter{}).Export(nil, &buf); err == nil {
		t.Error("Export(nil) error = nil, want error")
	}
}
