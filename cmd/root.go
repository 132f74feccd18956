package cmd

import (
	"fmt"
	"os"

	"github.com/danbikim/askdb/internal"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	serverURL  string
	configPath string
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "askdb",
	Short: "Ask your database questions in natural language",
	Long: `A terminal client for a natural-language-to-SQL service.

askdb sends plain-language questions to a text-to-SQL server, shows the
generated SQL and result rows, and can follow the server's processing
session live as a paced transcript.

Features:
  • One-shot questions with formatted SQL and tabular results
  • Live transcript of the server's processing pipeline
  • Copy results to the clipboard or export them (tsv, csv, json, xlsx)
  • Local history of past questions
  • Server and database health checks

Quick Start:
  askdb query "how many users signed up last week"
  askdb watch                        # Follow the latest session live
  askdb healthcheck                  # Verify server and database

Configuration is read from ~/.askdb.yaml; the server address can also be
set with --server or the ASKDB_SERVER environment variable.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Query service base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default ~/.askdb.yaml)")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// loadConfig resolves the config file path and loads it.
func loadConfig() (*internal.Config, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = internal.DefaultConfigPath()
		if err != nil {
			return nil, err
		}
	}
	return internal.LoadConfig(path)
}

// newClient builds a transport client from config plus flag overrides.
func newClient() (*internal.Client, *internal.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	client := internal.NewClient(cfg.ResolveServerURL(serverURL), cfg.ResolveRequestTimeout())
	return client, cfg, nil
}
