package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdex/internal/core/domain"
)

var (
	searchLimit       int
	searchCollections []string
	searchJSON        bool
)

// Result rendering styles.
var (
	resultTitleStyle   = lipgloss.NewStyle().Bold(true)
	resultPathStyle    = lipgloss.NewStyle().Faint(true)
	resultScoreStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("36"))
	resultSectionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed documentation",
	Long: `Performs semantic search across indexed documentation chunks.
The query is embedded and compared against stored chunks by cosine
similarity; results are returned best match first.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	searchCmd.Flags().StringSliceVarP(&searchCollections, "collection", "c", nil,
		"restrict results to a collection (repeatable)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if searchService == nil {
		return errors.New("search service not configured")
	}

	opts := domain.SearchOptions{
		Limit:       searchLimit,
		Collections: searchCollections,
	}

	results, err := searchService.Search(cmd.Context(), query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}

	return outputSearchText(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchText(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		chunk := &results[i].Chunk
		heading := chunk.Title
		if chunk.Section != "" {
			heading = fmt.Sprintf("%s %s %s",
				chunk.Title, resultSectionStyle.Render(">"), chunk.Section)
		}

		cmd.Printf("  [%d] %s %s\n", i+1,
			resultTitleStyle.Render(heading),
			resultScoreStyle.Render(fmt.Sprintf("(%.2f)", results[i].Similarity)))
		cmd.Printf("      %s\n",
			resultPathStyle.Render(chunk.Collection+" "+chunk.FilePath))
		cmd.Printf("      %s\n", snippet(chunk.Content, 160))
		cmd.Println()
	}

	return nil
}

// snippet truncates content to a single display line.
func snippet(content string, maxLen int) string {
	flat := make([]rune, 0, maxLen)
	for _, r := range content {
		if r == '\n' || r == '\t' {
			r = ' '
		}
		flat = append(flat, r)
		if len(flat) >= maxLen {
			return string(flat) + "..."
		}
	}
	return string(flat)
}
