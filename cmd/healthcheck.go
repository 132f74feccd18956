package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/danbikim/askdb/internal"
	"github.com/spf13/cobra"
)

var healthcheckVerbose bool

var (
	hcSuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	hcWarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	hcErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	hcInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	hcSectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check that the query service and its database are reachable",
	Long: `Check the health of the askdb setup by verifying:
  • Config file resolution
  • Query service reachability
  • The service's database connection

Useful when queries fail and you want to know which layer is broken.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(hcSectionStyle.Render("🔍 askdb Health Check"))
		fmt.Println()

		// Step 1: Config resolution
		fmt.Println(hcInfoStyle.Render("Step 1: Loading configuration..."))
		client, cfg, err := newClient()
		if err != nil {
			fmt.Println(hcErrorStyle.Render("❌ Failed to load configuration:"), err)
			os.Exit(1)
		}
		fmt.Println(hcSuccessStyle.Render("✅ Configuration loaded"))
		if healthcheckVerbose {
			fmt.Printf("   Server: %s\n", client.BaseURL())
			fmt.Printf("   Request timeout: %s\n", cfg.ResolveRequestTimeout())
			fmt.Printf("   Poll interval: %s\n", cfg.ResolvePollInterval())
		}
		fmt.Println()

		// Step 2: Database check through the service
		fmt.Println(hcInfoStyle.Render("Step 2: Checking service database connection..."))
		check, err := client.CheckDatabase(context.Background())
		if err != nil {
			fmt.Println(hcErrorStyle.Render("❌ Query service unreachable:"), err)
			fmt.Println()
			fmt.Println(hcInfoStyle.Render("💡 " + internal.TransportHint))
			os.Exit(1)
		}

		if !check.Success {
			fmt.Println(hcWarningStyle.Render("⚠️  Service reached, but database check failed"))
			fmt.Printf("   %s\n", check.Message)
			os.Exit(1)
		}

		fmt.Println(hcSuccessStyle.Render("✅ Database connection healthy"))
		fmt.Printf("   %s\n", check.Message)
		if check.ConnectionTime > 0 {
			fmt.Printf("   Connection time: %.3fs\n", check.ConnectionTime)
		}
		if healthcheckVerbose && check.DatabaseInfo != nil {
			fmt.Printf("   Database: %s\n", check.DatabaseInfo.Database)
			fmt.Printf("   Host: %s:%d\n", check.DatabaseInfo.Host, check.DatabaseInfo.Port)
		}

		fmt.Println()
		fmt.Println(hcSuccessStyle.Render("✅ All checks passed"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
	healthcheckCmd.Flags().BoolVar(&healthcheckVerbose, "detail", false, "Show detailed check output")
}
