package mcp

import (
	"github.com/custodia-labs/docdex/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search provides similarity search over indexed chunks.
	Search driving.SearchService

	// Index manages collections and indexing passes.
	Index driving.IndexService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	// Index is optional; index tools report an error when invoked without it.
	return nil
}
