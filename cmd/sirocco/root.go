// sirocco is the test-management reporting CLI and MCP server for Zephyr.
//
// Usage:
//
//	sirocco projects
//	sirocco status --project-id=<id> [--version-id=<id>]
//	sirocco progress --project-id=<id> --version-id=<id> [--cycle-id=<id>]
//	sirocco report --project-id=<id> --version-id=<id> [--include-details] [-o report.json]
//	sirocco regression --project-id=<id> --version-id=<id> [--cycle-name=<filter>]
//	sirocco negative --project-id=<id> --version-id=<id>
//	sirocco serve
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sirocco/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	configPath string
	baseURL    string
	logLevel   string
	logFormat  string
	workers    int
	markdown   bool
}

var rootCmd = &cobra.Command{
	Use:   "sirocco",
	Short: "Test execution reporting for Zephyr-managed projects",
	Long: `Sirocco aggregates Zephyr test cycles into release reports: pass/fail
metrics, execution progress, and regression/negative test counts.

The Zephyr base URL is read from the ZEPHYR_BASE_URL environment variable,
a config file (--config), or the --base-url flag. Credentials come from
ZEPHYR_ACCESS_KEY, or ZEPHYR_USERNAME/ZEPHYR_PASSWORD, or the config file;
they are never taken as flags.`,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := logging.ParseLevel(rootFlags.logLevel)
		if err != nil {
			return err
		}
		logging.Init(level, rootFlags.logFormat)
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.configPath, "config", "", "Path to config file (YAML or JSON)")
	pf.StringVar(&rootFlags.baseURL, "base-url", "", "Zephyr base URL (default: $ZEPHYR_BASE_URL)")
	pf.StringVar(&rootFlags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	pf.StringVar(&rootFlags.logFormat, "log-format", "text", "Log format (text, json)")
	pf.IntVar(&rootFlags.workers, "workers", 0, "Concurrent per-cycle fetches (default 4)")
	pf.BoolVar(&rootFlags.markdown, "markdown", false, "Render tables as Markdown")

	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(regressionCmd)
	rootCmd.AddCommand(negativeCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
