package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/danbikim/askdb/internal"
	"github.com/spf13/cobra"
)

var historyLimit int

var (
	historyTimeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243"))

	historyOKStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	historyFailStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196"))
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent questions from the local history",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, cfg, err := newClient()
		if err != nil {
			return err
		}

		path := cfg.HistoryPath
		if path == "" {
			path, err = internal.DefaultHistoryPath()
			if err != nil {
				return err
			}
		}

		store, err := internal.OpenHistoryStore(path)
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.Recent(historyLimit)
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			internal.PrintInfo("No history yet. Run 'askdb query' to ask a question.")
			return nil
		}

		for _, e := range entries {
			status := historyOKStyle.Render("✓")
			if !e.Success {
				status = historyFailStyle.Render("✗")
			}
			fmt.Printf("%s %s  %s\n", status, historyTimeStyle.Render(e.CreatedAt.Format("2006-01-02 15:04")), e.Query)
			if e.Success && e.SQL != "" {
				fmt.Printf("    %s\n", firstLine(e.SQL))
			}
			if !e.Success && e.ErrorMessage != "" {
				fmt.Printf("    %s\n", historyFailStyle.Render(firstLine(e.ErrorMessage)))
			}
		}
		return nil
	},
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " ..."
	}
	return s
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum entries to show")
}
