package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdex/internal/core/ports/driving"
)

var (
	indexForce bool
	indexWatch bool
)

var indexCmd = &cobra.Command{
	Use:   "index [collection]",
	Short: "Index a documentation collection",
	Long: `Fetches a collection's documents, chunks them, generates embeddings
and stores them in the local index.

For GitHub sources the collection is "owner/repo"; for filesystem
sources it is a directory relative to the configured root.

An unchanged collection is skipped; use --force to reindex anyway.
With --watch (filesystem sources) the command keeps running and
reindexes whenever files change.`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().BoolVarP(&indexForce, "force", "f", false, "reindex even if the source is unchanged")
	indexCmd.Flags().BoolVarP(&indexWatch, "watch", "w", false, "keep running and reindex on file changes")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	collection := args[0]

	if indexService == nil {
		return errors.New("index service not configured")
	}

	ctx := cmd.Context()
	if err := indexOnce(ctx, cmd, collection, indexForce); err != nil {
		return err
	}

	if !indexWatch {
		return nil
	}

	changes, err := watchCollection(ctx, collection)
	if err != nil {
		return err
	}

	cmd.Printf("Watching %s for changes (ctrl-c to stop)...\n", collection)
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			if err := indexOnce(ctx, cmd, collection, false); err != nil {
				cmd.PrintErrf("Reindex failed: %v\n", err)
			}
		}
	}
}

// watcher is implemented by sources that can notify on file changes.
type watcher interface {
	Watch(ctx context.Context, collection string) (<-chan struct{}, error)
}

// watchSource is set by Bootstrap when the configured source supports
// watching (filesystem sources).
var watchSource watcher

func watchCollection(ctx context.Context, collection string) (<-chan struct{}, error) {
	if watchSource == nil {
		return nil, errors.New("--watch requires a filesystem source")
	}
	return watchSource.Watch(ctx, collection)
}

// indexOnce runs one indexing pass while displaying progress updates.
func indexOnce(ctx context.Context, cmd *cobra.Command, collection string, force bool) error {
	cmd.Printf("Indexing %s...\n", collection)

	// Run the pass in a goroutine so progress can be polled.
	type passResult struct {
		report *driving.IndexReport
		err    error
	}
	resultCh := make(chan passResult, 1)
	go func() {
		report, err := indexService.Index(ctx, collection, force)
		resultCh <- passResult{report, err}
	}()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	lastCount := 0
	for {
		select {
		case result := <-resultCh:
			if result.err != nil {
				return fmt.Errorf("index failed: %w", result.err)
			}
			if result.report == nil {
				cmd.Printf("%s is up to date.\n", collection)
				return nil
			}
			cmd.Printf("Indexed %d documents into %d chunks (%d errors).\n",
				result.report.Documents, result.report.Chunks, result.report.Errors)
			return nil

		case <-ticker.C:
			// Best-effort progress; status errors are ignored.
			status, err := indexService.Status(ctx, collection)
			if err == nil && status != nil && status.DocumentsProcessed > lastCount {
				cmd.Printf("\rProcessing... %d documents", status.DocumentsProcessed)
				lastCount = status.DocumentsProcessed
			}
		}
	}
}
