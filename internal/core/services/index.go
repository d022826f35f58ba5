package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/docdex/internal/chunker"
	"github.com/custodia-labs/docdex/internal/core/domain"
	"github.com/custodia-labs/docdex/internal/core/ports/driven"
	"github.com/custodia-labs/docdex/internal/core/ports/driving"
	"github.com/custodia-labs/docdex/internal/logger"
)

// Ensure IndexService implements the interface.
var _ driving.IndexService = (*IndexService)(nil)

// IndexService coordinates indexing passes: freshness gate, document fetch,
// chunking, embedding and upsert.
type IndexService struct {
	store    driven.ChunkStore
	source   driven.DocumentSource
	embedder driven.EmbeddingService

	// Status tracking
	mu     sync.RWMutex
	active map[string]*driving.IndexStatus
}

// NewIndexService creates a new index service.
func NewIndexService(
	store driven.ChunkStore,
	source driven.DocumentSource,
	embedder driven.EmbeddingService,
) *IndexService {
	return &IndexService{
		store:    store,
		source:   source,
		embedder: embedder,
		active:   make(map[string]*driving.IndexStatus),
	}
}

// Index runs an indexing pass for the collection. The freshness gate skips
// the pass when the source has not been modified since the last indexed
// chunk; force bypasses the gate. A skipped pass returns a nil report.
func (s *IndexService) Index(
	ctx context.Context, collection string, force bool,
) (*driving.IndexReport, error) {
	if s.store == nil {
		return nil, domain.ErrStoreUnavailable
	}
	if s.source == nil {
		return nil, domain.ErrSourceUnavailable
	}
	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	if strings.TrimSpace(collection) == "" {
		return nil, fmt.Errorf("index: empty collection: %w", domain.ErrInvalidInput)
	}

	status, err := s.beginPass(collection)
	if err != nil {
		return nil, err
	}
	defer s.endPass(collection)

	logger.Section("Index Pass")
	logger.Info("Collection %s (run %s)", collection, status.RunID)

	// Freshness gate: the only thing standing between a triggered pass
	// and a full re-embedding of the collection.
	if !force {
		stale, err := s.needsPass(ctx, collection)
		if err != nil {
			return nil, err
		}
		if !stale {
			logger.Info("Collection %s is up to date, skipping", collection)
			return nil, nil
		}
	}

	docs, err := s.source.Fetch(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", collection, err)
	}
	logger.Debug("Fetched %d documents", len(docs))

	report := &driving.IndexReport{Collection: collection}
	for i := range docs {
		select {
		case <-ctx.Done():
			return report, ctx.Err()
		default:
		}

		upserted, err := s.indexDocument(ctx, collection, &docs[i])
		if err != nil {
			report.Errors++
			logger.Warn("Failed to index %s: %v", docs[i].Path, err)
			continue
		}
		report.Documents++
		report.Chunks += upserted

		s.mu.Lock()
		status.DocumentsProcessed = report.Documents
		s.mu.Unlock()
	}

	logger.Info("Index pass complete: %d documents, %d chunks, %d errors",
		report.Documents, report.Chunks, report.Errors)
	return report, nil
}

// Clear removes all chunks for the collection.
func (s *IndexService) Clear(ctx context.Context, collection string) error {
	if s.store == nil {
		return domain.ErrStoreUnavailable
	}
	return s.store.DeleteCollection(ctx, collection)
}

// Stats returns per-collection aggregates.
func (s *IndexService) Stats(ctx context.Context) ([]domain.CollectionStats, error) {
	if s.store == nil {
		return nil, domain.ErrStoreUnavailable
	}
	return s.store.Stats(ctx)
}

// Status returns the status of a running pass, or an idle status.
func (s *IndexService) Status(_ context.Context, collection string) (*driving.IndexStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if status, ok := s.active[collection]; ok {
		// Return a copy to avoid race conditions
		return &driving.IndexStatus{
			Collection:         status.Collection,
			RunID:              status.RunID,
			Running:            status.Running,
			DocumentsProcessed: status.DocumentsProcessed,
		}, nil
	}

	return &driving.IndexStatus{Collection: collection}, nil
}

// needsPass applies the freshness gate for a collection.
func (s *IndexService) needsPass(ctx context.Context, collection string) (bool, error) {
	allStats, err := s.store.Stats(ctx)
	if err != nil {
		return false, fmt.Errorf("stats: %w", err)
	}

	var stats *domain.CollectionStats
	for i := range allStats {
		if allStats[i].Collection == collection {
			stats = &allStats[i]
			break
		}
	}

	sourceModified, err := s.source.LastModified(ctx, collection)
	if err != nil {
		return false, fmt.Errorf("source last modified for %s: %w", collection, err)
	}

	return domain.NeedsReindex(stats, sourceModified), nil
}

// indexDocument chunks, embeds and upserts one source document.
// Returns the number of chunks upserted.
func (s *IndexService) indexDocument(
	ctx context.Context, collection string, doc *domain.SourceDocument,
) (int, error) {
	chunks := chunker.Chunk(doc.Content, doc.Path)
	if len(chunks) == 0 {
		logger.Debug("No chunks for %s", doc.Path)
		return 0, nil
	}

	texts := make([]string, len(chunks))
	for i := range chunks {
		texts[i] = chunks[i].Content
	}

	embeddings, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embed %s: %w", doc.Path, err)
	}
	if len(embeddings) != len(chunks) {
		return 0, fmt.Errorf("embed %s: got %d embeddings for %d chunks",
			doc.Path, len(embeddings), len(chunks))
	}

	upserted := 0
	for i := range chunks {
		chunks[i].Collection = collection
		chunks[i].FilePath = doc.Path
		chunks[i].Embedding = embeddings[i]
		chunks[i].LastUpdated = doc.LastModified
		chunks[i].CommitHash = doc.CommitHash

		if _, err := s.store.Upsert(ctx, &chunks[i]); err != nil {
			return upserted, fmt.Errorf("upsert chunk %d of %s: %w", i, doc.Path, err)
		}
		upserted++
	}

	return upserted, nil
}

// beginPass registers an active pass for the collection.
func (s *IndexService) beginPass(collection string) (*driving.IndexStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.active[collection]; ok && existing.Running {
		return nil, fmt.Errorf("collection %s: %w", collection, domain.ErrIndexInProgress)
	}

	status := &driving.IndexStatus{
		Collection: collection,
		RunID:      uuid.New().String(),
		Running:    true,
	}
	s.active[collection] = status
	return status, nil
}

// endPass clears the active pass for the collection.
func (s *IndexService) endPass(collection string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.active, collection)
}
