package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docdex/internal/core/domain"
)

// SearchDocsInput is the input schema for the search_docs tool.
type SearchDocsInput struct {
	Query       string   `json:"query" jsonschema:"the search query to find documentation"`
	Limit       int      `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
	Collections []string `json:"collections,omitempty" jsonschema:"restrict results to these collections"`
}

// SearchDocsOutput is the output schema for the search_docs tool.
type SearchDocsOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	Collection string  `json:"collection"`
	FilePath   string  `json:"file_path"`
	Title      string  `json:"title,omitempty"`
	Section    string  `json:"section,omitempty"`
	Content    string  `json:"content"`
	Similarity float64 `json:"similarity"`
}

// IndexRepoInput is the input schema for the index_repo tool.
type IndexRepoInput struct {
	Collection string `json:"collection" jsonschema:"the collection to index (owner/repo for GitHub sources)"`
	Force      bool   `json:"force,omitempty" jsonschema:"reindex even if the source is unchanged"`
}

// IndexRepoOutput is the output schema for the index_repo tool.
type IndexRepoOutput struct {
	Collection string `json:"collection"`
	Skipped    bool   `json:"skipped"`
	Documents  int    `json:"documents"`
	Chunks     int    `json:"chunks"`
	Errors     int    `json:"errors"`
}

// ListCollectionsOutput is the output schema for the list_collections tool.
type ListCollectionsOutput struct {
	Collections []CollectionOutput `json:"collections"`
	Count       int                `json:"count"`
}

// CollectionOutput represents one indexed collection.
type CollectionOutput struct {
	Collection  string `json:"collection"`
	ChunkCount  int    `json:"chunk_count"`
	LastUpdated string `json:"last_updated,omitempty"`
}

// RemoveCollectionInput is the input schema for the remove_collection tool.
type RemoveCollectionInput struct {
	Collection string `json:"collection" jsonschema:"the collection to remove from the index"`
}

// RemoveCollectionOutput is the output schema for the remove_collection tool.
type RemoveCollectionOutput struct {
	Collection string `json:"collection"`
	Removed    bool   `json:"removed"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_docs",
		Description: "Search indexed documentation by semantic similarity",
	}, s.handleSearchDocs)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "index_repo",
		Description: "Index or refresh a documentation collection",
	}, s.handleIndexRepo)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_collections",
		Description: "List indexed collections with chunk counts",
	}, s.handleListCollections)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "remove_collection",
		Description: "Remove a collection and its chunks from the index",
	}, s.handleRemoveCollection)
}

// handleSearchDocs handles the search_docs tool invocation.
func (s *Server) handleSearchDocs(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchDocsInput,
) (*mcp.CallToolResult, SearchDocsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	opts := domain.SearchOptions{Limit: limit, Collections: input.Collections}
	results, err := s.ports.Search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchDocsOutput{}, err
	}

	output := SearchDocsOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}

	for i := range results {
		output.Results[i] = SearchResultOutput{
			Collection: results[i].Chunk.Collection,
			FilePath:   results[i].Chunk.FilePath,
			Title:      results[i].Chunk.Title,
			Section:    results[i].Chunk.Section,
			Content:    results[i].Chunk.Content,
			Similarity: results[i].Similarity,
		}
	}

	return nil, output, nil
}

// handleIndexRepo handles the index_repo tool invocation.
func (s *Server) handleIndexRepo(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IndexRepoInput,
) (*mcp.CallToolResult, IndexRepoOutput, error) {
	if s.ports.Index == nil {
		return nil, IndexRepoOutput{}, ErrMissingIndexService
	}

	report, err := s.ports.Index.Index(ctx, input.Collection, input.Force)
	if err != nil {
		return nil, IndexRepoOutput{}, err
	}

	output := IndexRepoOutput{Collection: input.Collection}
	if report == nil {
		// Freshness gate skipped the pass.
		output.Skipped = true
		return nil, output, nil
	}

	output.Documents = report.Documents
	output.Chunks = report.Chunks
	output.Errors = report.Errors
	return nil, output, nil
}

// handleListCollections handles the list_collections tool invocation.
func (s *Server) handleListCollections(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, ListCollectionsOutput, error) {
	if s.ports.Index == nil {
		return nil, ListCollectionsOutput{}, ErrMissingIndexService
	}

	stats, err := s.ports.Index.Stats(ctx)
	if err != nil {
		return nil, ListCollectionsOutput{}, err
	}

	output := ListCollectionsOutput{
		Collections: make([]CollectionOutput, len(stats)),
		Count:       len(stats),
	}
	for i := range stats {
		output.Collections[i] = CollectionOutput{
			Collection: stats[i].Collection,
			ChunkCount: stats[i].ChunkCount,
		}
		if !stats[i].LastUpdated.IsZero() {
			output.Collections[i].LastUpdated = stats[i].LastUpdated.Format(time.RFC3339)
		}
	}

	return nil, output, nil
}

// handleRemoveCollection handles the remove_collection tool invocation.
func (s *Server) handleRemoveCollection(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RemoveCollectionInput,
) (*mcp.CallToolResult, RemoveCollectionOutput, error) {
	if s.ports.Index == nil {
		return nil, RemoveCollectionOutput{}, ErrMissingIndexService
	}

	if err := s.ports.Index.Clear(ctx, input.Collection); err != nil {
		return nil, RemoveCollectionOutput{}, err
	}

	return nil, RemoveCollectionOutput{Collection: input.Collection, Removed: true}, nil
}
