package cli

import (
	"context"

	"github.com/custodia-labs/docdex/internal/core/domain"
	"github.com/custodia-labs/docdex/internal/core/ports/driving"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results []domain.SearchResult
	err     error
}

func (m *mockSearchService) Search(
	_ context.Context, _ string, _ domain.SearchOptions,
) ([]domain.SearchResult, error) {
	return m.results, m.err
}

// mockIndexService is a mock implementation of driving.IndexService.
type mockIndexService struct {
	report  *driving.IndexReport
	stats   []domain.CollectionStats
	err     error
	cleared []string
}

func (m *mockIndexService) Index(
	_ context.Context, _ string, _ bool,
) (*driving.IndexReport, error) {
	return m.report, m.err
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
	return &driving.IndexStatus{Collection: collection}, nil
}

// mockConfigStore is an in-memory driven.ConfigStore.
type mockConfigStore struct {
	data map[string]any
}

func newMockConfigStore() *mockConfigStore {
	return &mockConfigStore{data: make(map[string]any)}
}

func (m *mockConfigStore) Get(key string) (any, bool) {
	val, ok := m.data[key]
	return val, ok
}

func (m *mockConfigStore) GetString(key string) string {
	if val, ok := m.data[key].(string); ok {
		return val
	}
	return ""
}

func (m *mockConfigStore) GetInt(key string) int {
	if val, ok := m.data[key].(int); ok {
		return val
	}
	return 0
}

func (m *mockConfigStore) GetBool(key string) bool {
	if val, ok := m.data[key].(bool); ok {
		return val
	}
	return false
}

func (m *mockConfigStore) GetStringSlice(key string) []string {
	if val, ok := m.data[key].([]string); ok {
		return val
	}
	return nil
}

func (m *mockConfigStore) Set(key string, value any) error {
	m.data[key] = value
	return nil
}

func (m *mockConfigStore) Save() error { return nil }
func (m *mockConfigStore) Load() error { return nil }

// setupTestServices injects mock services and returns a cleanup func
// restoring the previous wiring.
func setupTestServices(
	search driving.SearchService, index driving.IndexService,
) func() {
	prevSearch, prevIndex, prevConfig := searchService, indexService, configStore
	SetServices(search, index, newMockConfigStore())
	return func() {
		SetServices(prevSearch, prevIndex, prevConfig)
	}
}
