package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danbikim/askdb/internal"
)

func TestQueryCommand_RequiresQuestion(t *testing.T) {
	rootCmd.SetArgs([]string{"query"})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})

	if err := rootCmd.Execute(); err == nil {
		t.Error("Execute() error = nil, want missing-argument error")
	}
}

func TestExportRows_InvalidFormat(t *testing.T) {
	rows := internal.CreateTestRows(`[{"a": 1}]`)
	if _, err := exportRows(rows, "docx", t.TempDir()); err == nil {
		t.Error("exportRows() error = nil, want unsupported format error")
	}
}

func TestExportRows_WritesTimestampedFile(t *testing.T) {
	rows := internal.CreateTestRows(`[{"region": "Seoul", "users": 120}]`)
	dir := t.TempDir()

	path, err := exportRows(rows, "tsv", dir)
	if err != nil {
		t.Fatalf("exportRows() error = %v", err)
	}

	name := filepath.Base(path)
	if !strings.HasPrefix(name, "query_results_") || !strings.HasSuffix(name, ".tsv") {
		t.Errorf("file name = %q, want query_results_<timestamp>.tsv", name)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	want := "region\tusers\nSeoul\t120\n"
	if string(data) != want {
		t.Errorf("export content = %q, want %q", data, want)
	}
}
