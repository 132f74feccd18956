package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/danbikim/askdb/internal"
	"github.com/danbikim/askdb/internal/export"
	"github.com/spf13/cobra"
)

var (
	queryCopy      bool
	queryFormat    string
	queryOutputDir string
	queryNoHistory bool
	queryMaxRows   int
)

var (
	sqlStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Italic(true)

	headerCellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true)
)

// queryCmd represents the query command
var queryCmd = &cobra.Command{
	Use:   "query <question>",
	Short: "Ask the service a natural-language question",
	Long: `Send a natural-language question to the text-to-SQL service and print
the result message, the generated SQL, and the returned rows.

The result set can be copied to the clipboard as a pasteable table
(--copy) or written to a timestamped file (--export tsv|csv|json|xlsx).
Each run is recorded in the local history unless --no-history is set.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		question := strings.TrimSpace(strings.Join(args, " "))
		if question == "" {
			return fmt.Errorf("question is empty")
		}

		client, cfg, err := newClient()
		if err != nil {
			return err
		}

		var resp *internal.QueryResponse
		err = internal.ShowProgress(context.Background(), "Processing question...", func() error {
			var qerr error
			resp, qerr = client.Query(context.Background(), question)
			return qerr
		})
		if err != nil {
			var te *internal.TransportError
			if errors.As(err, &te) {
				internal.PrintError(te.Error())
				fmt.Println(hintStyle.Render(internal.TransportHint))
			}
			recordHistory(cfg, internal.HistoryEntry{
				Query:        question,
				Success:      false,
				ErrorMessage: err.Error(),
			})
			return err
		}

		if !resp.Success {
			qerr := &internal.QueryError{Type: resp.ErrorType, Details: resp.ErrorDetails}
			internal.PrintError(qerr.Error())
			fmt.Println(hintStyle.Render(qerr.Hint()))
			recordHistory(cfg, internal.HistoryEntry{
				Query:        question,
				Success:      false,
				ErrorMessage: qerr.Error(),
			})
			return qerr
		}

		internal.PrintSuccess(resp.Result)

		if resp.SQL != "" {
			fmt.Println()
			fmt.Println(sqlStyle.Render(internal.FormatSQL(resp.SQL)))
		}

		if len(resp.Data) > 0 {
			fmt.Println()
			printRows(resp.Data, queryMaxRows)
		}

		recordHistory(cfg, internal.HistoryEntry{
			Query:    question,
			SQL:      resp.SQL,
			Success:  true,
			RowCount: len(resp.Data),
		})

		if queryCopy {
			if err := export.CopyToClipboard(resp.Data); err != nil {
				internal.PrintWarning(fmt.Sprintf("Clipboard copy failed: %v", err))
			} else {
				internal.PrintInfo(fmt.Sprintf("Copied %d row(s) to clipboard", len(resp.Data)))
			}
		}

		if queryFormat != "" {
			path, err := exportRows(resp.Data, queryFormat, queryOutputDir)
			if err != nil {
				return err
			}
			internal.PrintInfo(fmt.Sprintf("Exported %d row(s) to %s", len(resp.Data), path))
		}

		return nil
	},
}

// printRows renders a plain table of the result set, limited to maxRows.
func printRows(rows []internal.Row, maxRows int) {
	columns := rows[0].Columns()

	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = headerCellStyle.Render(col)
	}
	fmt.Println(strings.Join(header, "  |  "))

	shown := rows
	if maxRows > 0 && len(rows) > maxRows {
		shown = rows[:maxRows]
	}
	for _, row := range shown {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = row.CellString(col)
		}
		fmt.Println(strings.Join(cells, "  |  "))
	}
	if len(shown) < len(rows) {
		fmt.Printf("... and %d more row(s)\n", len(rows)-len(shown))
	}
}

// exportRows writes the result set to a timestamped file in dir.
func exportRows(rows []internal.Row, format, dir string) (string, error) {
	exporter, err := export.NewExporter(format)
	if err != nil {
		return "", err
	}

	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, export.ResultFilename(exporter.Extension(), time.Now()))
	f, err := os.Create(path)
	if err != nil {
		return "", &internal.ExportError{Format: format, Path: path, Err: err}
	}
	defer f.Close()

	if err := exporter.Export(rows, f); err != nil {
		return "", &internal.ExportError{Format: format, Path: path, Err: err}
	}
	return path, nil
}

// recordHistory best-effort appends a run to the local history store.
func recordHistory(cfg *internal.Config, entry internal.HistoryEntry) {
	if queryNoHistory {
		return
	}

	path := cfg.HistoryPath
	if path == "" {
		var err error
		path, err = internal.DefaultHistoryPath()
		if err != nil {
			internal.LogWarn("history disabled: %v", err)
			return
		}
	}

	store, err := internal.OpenHistoryStore(path)
	if err != nil {
		internal.LogWarn("failed to open history store: %v", err)
		return
	}
	defer store.Close()

	if err := store.Record(entry); err != nil {
		internal.LogWarn("failed to record history: %v", err)
	}
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().BoolVar(&queryCopy, "copy", false, "Copy result rows to the clipboard as TSV")
	queryCmd.Flags().StringVar(&queryFormat, "export", "", "Export result rows to a file (tsv, csv, json, xlsx)")
	queryCmd.Flags().StringVar(&queryOutputDir, "out", "", "Output directory for exported files (default current directory)")
	queryCmd.Flags().BoolVar(&queryNoHistory, "no-history", false, "Do not record this run in the local history")
	queryCmd.Flags().IntVar(&queryMaxRows, "max-rows", 20, "Maximum rows to print (0 = all)")
}
