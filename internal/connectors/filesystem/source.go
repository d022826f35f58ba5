// Package filesystem implements a DocumentSource over a local directory
// tree. The collection identifier is a path relative to the configured
// root; Fetch walks it for Markdown files. A Watch helper built on
// fsnotify lets callers re-trigger indexing when files change.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/custodia-labs/docdex/internal/core/domain"
	"github.com/custodia-labs/docdex/internal/core/ports/driven"
	"github.com/custodia-labs/docdex/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.DocumentSource = (*Source)(nil)

// DefaultExtensions are the file extensions indexed by default.
var DefaultExtensions = []string{".md", ".mdx", ".markdown"}

// ErrRootMissing indicates the configured root directory does not exist.
var ErrRootMissing = errors.New("filesystem: root directory does not exist")

// Config holds configuration for a filesystem document source.
type Config struct {
	// Root is the directory collections are resolved against (required).
	Root string

	// Extensions limits which files are fetched (default: Markdown).
	Extensions []string
}

// Source is a DocumentSource that reads Markdown files from a local
// directory tree.
type Source struct {
	root       string
	extensions []string
}

// NewSource creates a filesystem document source.
func NewSource(cfg Config) (*Source, error) {
	if cfg.Root == "" {
		return nil, fmt.Errorf("filesystem: root is required: %w", domain.ErrInvalidInput)
	}
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("filesystem: resolve root: %w", err)
	}
	extensions := cfg.Extensions
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	return &Source{root: root, extensions: extensions}, nil
}

// Type returns the source type identifier.
func (s *Source) Type() string {
	return "filesystem"
}

// Validate checks the root directory exists. A missing collection
// directory under the root is not a validation failure.
func (s *Source) Validate(_ context.Context) error {
	info, err := os.Stat(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrRootMissing, s.root)
		}
		return fmt.Errorf("filesystem: stat root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrRootMissing, s.root)
	}
	return nil
}

// Fetch walks the collection directory and returns every matching file.
// A missing directory yields zero documents.
func (s *Source) Fetch(ctx context.Context, collection string) ([]domain.SourceDocument, error) {
	dir, err := s.collectionDir(collection)
	if err != nil {
		return nil, err
	}

	var docs []domain.SourceDocument
	err = filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == dir {
				// No documents directory yet.
				return filepath.SkipAll
			}
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if entry.IsDir() || !s.matchesExtension(path) {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		info, err := entry.Info()
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return fmt.Errorf("relativise %s: %w", path, err)
		}

		docs = append(docs, domain.SourceDocument{
			Path:         filepath.ToSlash(rel),
			Content:      string(content),
			LastModified: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("Fetched %d files from %s", len(docs), dir)
	return docs, nil
}

// LastModified returns the newest modification time across the
// collection's matching files. A missing or empty directory yields the
// zero time.
func (s *Source) LastModified(ctx context.Context, collection string) (time.Time, error) {
	dir, err := s.collectionDir(collection)
	if err != nil {
		return time.Time{}, err
	}

	var newest time.Time
	err = filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == dir {
				return filepath.SkipAll
			}
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if entry.IsDir() || !s.matchesExtension(path) {
			return nil
		}
		info, err := entry.Info()
		if err != nil {
			return err
		}
		if info.ModTime().After(newest) {
			newest = info.ModTime()
		}
		return nil
	})
	if err != nil {
		return time.Time{}, err
	}

	return newest, nil
}

// Close releases resources.
func (s *Source) Close() error {
	return nil
}

// collectionDir resolves a collection to a directory under the root,
// rejecting identifiers that escape it.
func (s *Source) collectionDir(collection string) (string, error) {
	collection = strings.TrimSpace(collection)
	if collection == "" || collection == "." {
		return s.root, nil
	}

	dir := filepath.Join(s.root, filepath.FromSlash(collection))
	rel, err := filepath.Rel(s.root, dir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("filesystem: collection %q escapes root: %w",
			collection, domain.ErrInvalidInput)
	}
	return dir, nil
}

func (s *Source) matchesExtension(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range s.extensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
