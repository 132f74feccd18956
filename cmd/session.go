package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/danbikim/askdb/internal"
	"github.com/spf13/cobra"
)

// sessionCmd represents the session command
var sessionCmd = &cobra.Command{
	Use:   "session <session-id>",
	Short: "Show a session's transcript",
	Long: `Fetch one session snapshot and print its full transcript at once,
without the live pacing of 'askdb watch'. Useful for inspecting a
session that already finished.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}

		snap, err := client.FetchSession(context.Background(), args[0])
		if err != nil {
			return err
		}

		if len(snap.AgentInteractions) == 0 && snap.FinalResult == nil {
			internal.PrintInfo("Session has no recorded steps yet")
			return nil
		}

		now := time.Now()
		for _, rec := range snap.AgentInteractions {
			for _, entry := range internal.SynthesizeEntries(rec, now) {
				printEntry(entry)
			}
		}

		if snap.FinalResult != nil {
			printEntry(internal.TerminalEntry(*snap.FinalResult, now))
		} else {
			fmt.Println()
			internal.PrintInfo("Session is still in progress")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
}
