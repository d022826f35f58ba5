// Package cli implements the docdex command line interface using cobra.
// Commands talk to the core services through the driving ports; wiring
// of concrete adapters happens in Bootstrap.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdex/internal/core/ports/driven"
	"github.com/custodia-labs/docdex/internal/core/ports/driving"
	"github.com/custodia-labs/docdex/internal/logger"
)

// Injected services. Set by Bootstrap in production and by
// setupTestServices in tests.
var (
	searchService driving.SearchService
	indexService  driving.IndexService
	configStore   driven.ConfigStore

	version = "dev"

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "docdex",
	Short: "Local semantic search over documentation",
	Long: `docdex indexes Markdown documentation from GitHub repositories or
local directories into a SQLite-backed vector store and answers
similarity searches over it, from the command line or over MCP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// SetServices injects the driving services and config store.
func SetServices(
	search driving.SearchService,
	index driving.IndexService,
	config driven.ConfigStore,
) {
	searchService = search
	indexService = index
	configStore = config
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
