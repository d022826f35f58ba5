package mcp

import (
	"context"

	"github.com/custodia-labs/docdex/internal/core/domain"
	"github.com/custodia-labs/docdex/internal/core/ports/driving"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results  []domain.SearchResult
	err      error
	lastOpts domain.SearchOptions
}

func (m *mockSearchService) Search(
	_ context.Context,
	_ string,
	opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	m.lastOpts = opts
	return m.results, m.err
}

// mockIndexService is a mock implementation of driving.IndexService.
type mockIndexService struct {
	report  *driving.IndexReport
	stats   []domain.CollectionStats
	status  *driving.IndexStatus
	err     error
	cleared []string
}

func (m *mockIndexService) Index(
	_ context.Context, collection string, _ bool,
) (*driving.IndexReport, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.report, nil
}

func (m *mockIndexService) Clear(_ context.Context, collection string) error {
	if m.err != nil {
		return m.err
	}
	m.cleared = append(m.cleared, collection)
	return nil
}

func (m *mockIndexService) Stats(_ context.Context) ([]domain.CollectionStats, error) {
	return m.stats, m.err
}

func (m *mockIndexService) Status(
	_ context.Context, collection string,
) (*driving.IndexStatus, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.status != nil {
		return m.status, nil
	}
	return &driving.IndexStatus{Collection: collection}, nil
}
