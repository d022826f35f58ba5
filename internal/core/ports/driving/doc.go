// Package driving provides interfaces for application entry points
// (primary/inbound ports).
//
// The CLI and MCP adapters depend on these interfaces; the services in
// internal/core/services implement them.
package driving
