// Package mcp provides an MCP (Model Context Protocol) server adapter for
// docdex. It lets AI assistants search and manage the local documentation
// index.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// ErrMissingIndexService is returned when an index tool is invoked without
// an index service.
var ErrMissingIndexService = errors.New("mcp: index service is required")
