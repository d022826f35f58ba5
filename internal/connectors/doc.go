// Package connectors provides implementations of the DocumentSource
// interface for the supported source types. Each connector knows how to
// fetch a collection's documents from a specific backend (GitHub,
// filesystem).
package connectors
