package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/danbikim/askdb/internal"
	"github.com/spf13/cobra"
)

var watchSessionID string

var (
	userEntryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	agentEntryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	errorEntryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	successEntryStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("42")).
				Bold(true)

	entryLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true)
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow a processing session as a live transcript",
	Long: `Poll the service for session progress and print each pipeline step as
it happens.

Without --session the most recent session is discovered automatically,
and a newer session appearing mid-watch takes over the transcript. The
watch ends when the session reports a final result; Ctrl-C cancels it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfg, err := newClient()
		if err != nil {
			return err
		}

		poller := internal.NewPoller(client)
		poller.PollInterval = cfg.ResolvePollInterval()

		printed := 0
		poller.OnChange(func() {
			entries := poller.Transcript()
			for ; printed < len(entries); printed++ {
				printEntry(entries[printed])
			}
		})

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if watchSessionID == "" {
			internal.PrintInfo("Waiting for a session...")
		} else {
			internal.PrintInfo(fmt.Sprintf("Watching session %s", watchSessionID))
		}

		if err := poller.Start(ctx, watchSessionID); err != nil {
			return err
		}

		<-poller.Done()

		switch poller.State() {
		case internal.StateCancelled:
			fmt.Println()
			internal.PrintWarning("Watch cancelled")
		case internal.StateCompleted:
			internal.LogDebug("session %s completed", poller.SessionID())
		}
		return nil
	},
}

func printEntry(entry internal.TranscriptEntry) {
	label := entryLabelStyle.Render(entry.Label)
	switch entry.Kind {
	case internal.EntryUser:
		fmt.Printf("%s\n%s\n\n", label, userEntryStyle.Render(entry.Text))
	case internal.EntryAgent:
		fmt.Printf("%s\n%s\n\n", label, agentEntryStyle.Render(entry.Text))
	case internal.EntryError:
		fmt.Printf("%s %s\n", errorEntryStyle.Render("✗"), entry.Text)
	case internal.EntrySuccess:
		fmt.Printf("%s %s\n", successEntryStyle.Render("✓"), entry.Text)
	}
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchSessionID, "session", "", "Session id to watch (default: discover the latest)")
}
