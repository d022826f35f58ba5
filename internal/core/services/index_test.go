package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdex/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docdex/internal/core/domain"
)

// stubSource serves a fixed set of documents.
type stubSource struct {
	docs       []domain.SourceDocument
	modified   time.Time
	fetchCalls int
	fetchErr   error
}

func (s *stubSource) Type() string                     { return "stub" }
func (s *stubSource) Validate(context.Context) error   { return nil }
func (s *stubSource) Close() error                     { return nil }
func (s *stubSource) LastModified(context.Context, string) (time.Time, error) {
	return s.modified, nil
}

func (s *stubSource) Fetch(context.Context, string) ([]domain.SourceDocument, error) {
	s.fetchCalls++
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return s.docs, nil
}

// stubEmbedder returns a deterministic unit vector per text.
type stubEmbedder struct {
	embedErr error
}

func (e *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if e.embedErr != nil {
		return nil, e.embedErr
	}
	if len(text)%2 == 0 {
		return []float32{1, 0}, nil
	}
	return []float32{0, 1}, nil
}

func (e *stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if e.embedErr != nil {
		return nil, e.embedErr
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := e.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (e *stubEmbedder) Dimensions() int            { return 2 }
func (e *stubEmbedder) ModelName() string          { return "stub-model" }
func (e *stubEmbedder) Ping(context.Context) error { return nil }
func (e *stubEmbedder) Close() error               { return nil }

func TestIndex_FullPass(t *testing.T) {
	store := memory.NewChunkStore()
	source := &stubSource{
		docs: []domain.SourceDocument{
			{Path: "getting-started.md", Content: "# Setup\n\nRun the installer.", LastModified: time.Now()},
			{Path: "usage.md", Content: "# Usage\n\nInvoke the binary.", LastModified: time.Now()},
		},
		modified: time.Now(),
	}
	svc := NewIndexService(store, source, &stubEmbedder{})

	report, err := svc.Index(context.Background(), "acme/docs", false)
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, 2, report.Documents)
	assert.Equal(t, 2, report.Chunks)
	assert.Equal(t, 0, report.Errors)

	chunks, err := store.ListByCollection(context.Background(), "acme/docs")
	require.NoError(t, err)
	assert.Len(t, chunks, 2)
	for _, chunk := range chunks {
		assert.Equal(t, "acme/docs", chunk.Collection)
		assert.NotEmpty(t, chunk.Embedding)
	}
}

func TestIndex_FreshnessGateSkips(t *testing.T) {
	store := memory.NewChunkStore()
	indexed := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	source := &stubSource{
		docs: []domain.SourceDocument{
			{Path: "doc.md", Content: "Content here.", LastModified: indexed},
		},
		modified: indexed,
	}
	svc := NewIndexService(store, source, &stubEmbedder{})

	// First pass indexes.
	report, err := svc.Index(context.Background(), "acme/docs", false)
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, 1, source.fetchCalls)

	// Source unchanged since the pass: skip.
	report, err = svc.Index(context.Background(), "acme/docs", false)
	require.NoError(t, err)
	assert.Nil(t, report)
	assert.Equal(t, 1, source.fetchCalls)

	// Force bypasses the gate.
	report, err = svc.Index(context.Background(), "acme/docs", true)
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, 2, source.fetchCalls)

	// Source moves forward: pass runs again.
	source.modified = indexed.Add(time.Hour)
	source.docs[0].LastModified = source.modified
	report, err = svc.Index(context.Background(), "acme/docs", false)
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, 3, source.fetchCalls)
}

func TestIndex_CountsDocumentErrors(t *testing.T) {
	store := memory.NewChunkStore()
	source := &stubSource{
		docs: []domain.SourceDocument{
			{Path: "doc.md", Content: "Content here.", LastModified: time.Now()},
		},
		modified: time.Now(),
	}
	svc := NewIndexService(store, source, &stubEmbedder{embedErr: errors.New("model offline")})

	report, err := svc.Index(context.Background(), "acme/docs", false)
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, 0, report.Documents)
	assert.Equal(t, 1, report.Errors)
}

func TestIndex_MissingDependencies(t *testing.T) {
	source := &stubSource{modified: time.Now()}
	embedder := &stubEmbedder{}
	store := memory.NewChunkStore()

	_, err := NewIndexService(nil, source, embedder).Index(context.Background(), "a/b", false)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)

	_, err = NewIndexService(store, nil, embedder).Index(context.Background(), "a/b", false)
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)

	_, err = NewIndexService(store, source, nil).Index(context.Background(), "a/b", false)
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)

	_, err = NewIndexService(store, source, embedder).Index(context.Background(), "   ", false)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestClearAndStats(t *testing.T) {
	store := memory.NewChunkStore()
	source := &stubSource{
		docs: []domain.SourceDocument{
			{Path: "doc.md", Content: "Content here.", LastModified: time.Now()},
		},
		modified: time.Now(),
	}
	svc := NewIndexService(store, source, &stubEmbedder{})

	_, err := svc.Index(context.Background(), "acme/docs", false)
	require.NoError(t, err)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, "acme/docs", stats[0].Collection)

	require.NoError(t, svc.Clear(context.Background(), "acme/docs"))

	stats, err = svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stats)
}

func TestStatus_IdleByDefault(t *testing.T) {
	svc := NewIndexService(memory.NewChunkStore(), &stubSource{}, &stubEmbedder{})

	status, err := svc.Status(context.Background(), "acme/docs")
	require.NoError(t, err)
	assert.Equal(t, "acme/docs", status.Collection)
	assert.False(t, status.Running)
	assert.Empty(t, status.RunID)
}
