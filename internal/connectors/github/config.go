package github

import (
	"fmt"
	"strings"
)

// DefaultMaxFileSize caps the size of files fetched from a tree (1MB).
// GitHub inlines blob content up to this size.
const DefaultMaxFileSize = 1 << 20

// DefaultExtensions are the file extensions indexed by default.
var DefaultExtensions = []string{".md", ".mdx", ".markdown"}

// Config holds configuration for a GitHub document source.
type Config struct {
	// Token is the access token (PAT or OAuth) used for API calls.
	Token string

	// Branch is the ref to read from. Empty means the repository's
	// default branch.
	Branch string

	// Extensions limits which files are fetched (default: Markdown).
	Extensions []string

	// MaxFileSize skips files larger than this many bytes.
	MaxFileSize int64
}

func (c *Config) applyDefaults() {
	if len(c.Extensions) == 0 {
		c.Extensions = DefaultExtensions
	}
	if c.MaxFileSize <= 0 {
		c.MaxFileSize = DefaultMaxFileSize
	}
}

// matchesExtension checks if the path carries one of the configured
// extensions.
func (c *Config) matchesExtension(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range c.Extensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// splitCollection parses an "owner/repo" collection identifier.
func splitCollection(collection string) (owner, repo string, err error) {
	parts := strings.Split(strings.TrimSpace(collection), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: %q (want owner/repo)", ErrInvalidCollection, collection)
	}
	return parts[0], parts[1], nil
}
