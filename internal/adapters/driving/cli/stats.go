package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show index statistics",
	Long:  `Lists indexed collections with chunk counts and last update times.`,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	stats, err := indexService.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to read stats: %w", err)
	}

	if len(stats) == 0 {
		cmd.Println("No indexed collections.")
		cmd.Println("Index one with: docdex index <collection>")
		return nil
	}

	cmd.Println("Indexed collections:")
	cmd.Println()
	total := 0
	for i := range stats {
		cmd.Printf("  %s\n", resultTitleStyle.Render(stats[i].Collection))
		cmd.Printf("    Chunks: %d\n", stats[i].ChunkCount)
		if !stats[i].LastUpdated.IsZero() {
			cmd.Printf("    Updated: %s\n", stats[i].LastUpdated.Format(time.RFC3339))
		}
		cmd.Println()
		total += stats[i].ChunkCount
	}
	cmd.Printf("Total: %d chunks in %d collections\n", total, len(stats))

	return nil
}
