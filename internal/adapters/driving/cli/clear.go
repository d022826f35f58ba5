package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var clearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear [collection]",
	Short: "Remove a collection from the index",
	Long:  `Deletes all chunks and embeddings for the given collection.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runClear,
}

func init() {
	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "skip confirmation prompt")
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, args []string) error {
	collection := args[0]

	if indexService == nil {
		return errors.New("index service not configured")
	}

	if !clearYes {
		cmd.Printf("Remove all indexed chunks for %s? [y/N]: ", collection)
		reader := bufio.NewReader(cmd.InOrStdin())
		input, _ := reader.ReadString('\n')
		if answer := strings.ToLower(strings.TrimSpace(input)); answer != "y" && answer != "yes" {
			cmd.Println("Aborted.")
			return nil
		}
	}

	if err := indexService.Clear(cmd.Context(), collection); err != nil {
		return fmt.Errorf("failed to clear collection: %w", err)
	}

	cmd.Printf("Removed collection: %s\n", collection)
	return nil
}
