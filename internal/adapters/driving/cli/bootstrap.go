package cli

import (
	"context"
	"fmt"

	"github.com/custodia-labs/docdex/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docdex/internal/adapters/driven/embedding/ollama"
	"github.com/custodia-labs/docdex/internal/adapters/driven/embedding/openai"
	"github.com/custodia-labs/docdex/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docdex/internal/connectors/filesystem"
	"github.com/custodia-labs/docdex/internal/connectors/github"
	"github.com/custodia-labs/docdex/internal/core/ports/driven"
	"github.com/custodia-labs/docdex/internal/core/services"
	"github.com/custodia-labs/docdex/internal/logger"
)

// Configuration keys.
const (
	keySourceType        = "source.type"
	keySourceRoot        = "source.root"
	keyGitHubToken       = "github.token"
	keyGitHubBranch      = "github.branch"
	keyEmbeddingProvider = "embedding.provider"
	keyEmbeddingModel    = "embedding.model"
	keyEmbeddingBaseURL  = "embedding.base_url"
	keyEmbeddingAPIKey   = "embedding.api_key"
	keyEmbeddingDims     = "embedding.dimensions"
	keyStorageDir        = "storage.dir"
)

// Bootstrap wires the concrete adapters into the core services and
// injects them into the CLI. The config directory defaults to ~/.docdex.
func Bootstrap(ctx context.Context, configDir string) error {
	config, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	store, err := sqlite.NewStore(config.GetString(keyStorageDir))
	if err != nil {
		return fmt.Errorf("opening chunk store: %w", err)
	}

	embedder := buildEmbedder(config)
	source := buildSource(ctx, config)
	if w, ok := source.(watcher); ok {
		watchSource = w
	}

	SetServices(
		services.NewSearchService(store, embedder),
		services.NewIndexService(store, source, embedder),
		config,
	)
	return nil
}

// buildEmbedder constructs the configured embedding service.
// Defaults to a local Ollama instance.
func buildEmbedder(config driven.ConfigStore) driven.EmbeddingService {
	switch provider := config.GetString(keyEmbeddingProvider); provider {
	case "openai":
		embedder, err := openai.NewEmbeddingService(openai.Config{
			APIKey:     config.GetString(keyEmbeddingAPIKey),
			Model:      config.GetString(keyEmbeddingModel),
			BaseURL:    config.GetString(keyEmbeddingBaseURL),
			Dimensions: config.GetInt(keyEmbeddingDims),
		})
		if err != nil {
			logger.Warn("OpenAI embedding unavailable: %v", err)
			return nil
		}
		return embedder
	case "", "ollama":
		return ollama.NewEmbeddingService(ollama.Config{
			BaseURL:    config.GetString(keyEmbeddingBaseURL),
			Model:      config.GetString(keyEmbeddingModel),
			Dimensions: config.GetInt(keyEmbeddingDims),
		})
	default:
		logger.Warn("Unknown embedding provider %q", provider)
		return nil
	}
}

// buildSource constructs the configured document source. A misconfigured
// source leaves indexing unavailable but search still works.
func buildSource(ctx context.Context, config driven.ConfigStore) driven.DocumentSource {
	switch sourceType := config.GetString(keySourceType); sourceType {
	case "filesystem":
		source, err := filesystem.NewSource(filesystem.Config{
			Root: config.GetString(keySourceRoot),
		})
		if err != nil {
			logger.Warn("Filesystem source unavailable: %v", err)
			return nil
		}
		return source
	case "", "github":
		source, err := github.NewSource(ctx, github.Config{
			Token:  config.GetString(keyGitHubToken),
			Branch: config.GetString(keyGitHubBranch),
		})
		if err != nil {
			logger.Debug("GitHub source unavailable: %v", err)
			return nil
		}
		return source
	default:
		logger.Warn("Unknown source type %q", sourceType)
		return nil
	}
}
