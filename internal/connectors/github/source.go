package github

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/docdex/internal/core/domain"
	"github.com/custodia-labs/docdex/internal/core/ports/driven"
	"github.com/custodia-labs/docdex/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.DocumentSource = (*Source)(nil)

// Source is a DocumentSource that reads Markdown files from GitHub
// repositories. The collection identifier is "owner/repo".
type Source struct {
	client *Client
	cfg    Config
}

// NewSource creates a GitHub document source.
func NewSource(ctx context.Context, cfg Config) (*Source, error) {
	if cfg.Token == "" {
		return nil, ErrTokenMissing
	}
	cfg.applyDefaults()

	return &Source{
		client: NewClient(ctx, cfg.Token),
		cfg:    cfg,
	}, nil
}

// NewSourceWithClient creates a source around an existing client.
// Used in tests with a client pointed at a test server.
func NewSourceWithClient(client *Client, cfg Config) *Source {
	cfg.applyDefaults()
	return &Source{client: client, cfg: cfg}
}

// Type returns the source type identifier.
func (s *Source) Type() string {
	return "github"
}

// Validate checks the token by calling the authenticated-user endpoint.
func (s *Source) Validate(ctx context.Context) error {
	if err := s.client.ValidateCredentials(ctx); err != nil {
		if IsUnauthorized(err) {
			return fmt.Errorf("%w: %v", ErrTokenMissing, err)
		}
		return fmt.Errorf("github: %w: %v", domain.ErrSourceUnavailable, err)
	}
	return nil
}

// Fetch walks the repository tree and returns every matching file as a
// source document.
func (s *Source) Fetch(ctx context.Context, collection string) ([]domain.SourceDocument, error) {
	owner, repo, err := splitCollection(collection)
	if err != nil {
		return nil, err
	}

	repository, err := s.client.GetRepository(ctx, owner, repo)
	if err != nil {
		if IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrRepoNotFound, collection)
		}
		return nil, err
	}

	ref := s.cfg.Branch
	if ref == "" {
		ref = repository.GetDefaultBranch()
	}

	tree, err := s.client.GetTree(ctx, owner, repo, ref)
	if err != nil {
		if IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s@%s", ErrBranchNotFound, collection, ref)
		}
		return nil, err
	}
	if tree.GetTruncated() {
		logger.Warn("Tree for %s@%s is truncated, some files may be missed", collection, ref)
	}

	modified := repository.GetPushedAt().Time

	var docs []domain.SourceDocument
	for _, entry := range tree.Entries {
		select {
		case <-ctx.Done():
			return docs, ctx.Err()
		default:
		}

		if entry.GetType() != "blob" || !s.cfg.matchesExtension(entry.GetPath()) {
			continue
		}
		if int64(entry.GetSize()) > s.cfg.MaxFileSize {
			logger.Debug("Skipping %s: %d bytes exceeds limit", entry.GetPath(), entry.GetSize())
			continue
		}

		content, err := s.fetchBlob(ctx, owner, repo, entry.GetSHA())
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", entry.GetPath(), err)
		}

		docs = append(docs, domain.SourceDocument{
			Path:         entry.GetPath(),
			Content:      content,
			LastModified: modified,
			CommitHash:   tree.GetSHA(),
		})
	}

	logger.Debug("Fetched %d files from %s@%s", len(docs), collection, ref)
	return docs, nil
}

// LastModified returns the repository's pushed-at timestamp.
func (s *Source) LastModified(ctx context.Context, collection string) (time.Time, error) {
	owner, repo, err := splitCollection(collection)
	if err != nil {
		return time.Time{}, err
	}

	repository, err := s.client.GetRepository(ctx, owner, repo)
	if err != nil {
		if IsNotFound(err) {
			return time.Time{}, fmt.Errorf("%w: %s", ErrRepoNotFound, collection)
		}
		return time.Time{}, err
	}

	return repository.GetPushedAt().Time, nil
}

// Close releases resources.
func (s *Source) Close() error {
	return nil
}

// fetchBlob retrieves and decodes a blob's content.
func (s *Source) fetchBlob(ctx context.Context, owner, repo, sha string) (string, error) {
	blob, err := s.client.GetBlob(ctx, owner, repo, sha)
	if err != nil {
		return "", err
	}

	content := blob.GetContent()
	if blob.GetEncoding() == "base64" {
		// GitHub inserts newlines into the base64 payload.
		decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(content, "\n", ""))
		if err != nil {
			return "", fmt.Errorf("decode blob %s: %w", sha, err)
		}
		return string(decoded), nil
	}
	return content, nil
}
