package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage GitHub credentials",
	Long: `Store and inspect the GitHub access token used by the indexer.

A Personal Access Token (classic or fine-grained) created at
github.com/settings/tokens works; 'repo' scope is required for private
repositories.`,
}

var authSetTokenCmd = &cobra.Command{
	Use:   "set-token",
	Short: "Store a GitHub access token",
	Long: `Stores a GitHub access token in the docdex config file.
The token is read from the terminal without echo.`,
	RunE: runAuthSetToken,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether a token is configured",
	RunE:  runAuthStatus,
}

func init() {
	authCmd.AddCommand(authSetTokenCmd)
	authCmd.AddCommand(authStatusCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthSetToken(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cmd.Print("GitHub token: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	cmd.Println()
	if err != nil {
		return fmt.Errorf("reading token: %w", err)
	}

	token := strings.TrimSpace(string(raw))
	if token == "" {
		return errors.New("token is empty")
	}

	if err := configStore.Set(keyGitHubToken, token); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}

	cmd.Println("Token saved.")
	return nil
}

func runAuthStatus(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	token := configStore.GetString(keyGitHubToken)
	if token == "" {
		cmd.Println("No GitHub token configured.")
		cmd.Println("Set one with: docdex auth set-token")
		return nil
	}

	cmd.Printf("GitHub token configured (%s...)\n", truncate(token, 8))
	return nil
}

// truncate truncates a string to the specified length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}
