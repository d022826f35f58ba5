package domain

import "time"

// SourceDocument represents one raw document yielded by a document source
// (a GitHub repository, a local directory) before chunking.
type SourceDocument struct {
	// Path is the document's path within its collection.
	Path string

	// Content is the raw document text.
	Content string

	// LastModified is the document's last known modification time
	// as reported by the source.
	LastModified time.Time

	// CommitHash is an optional revision identifier for the content.
	CommitHash string
}
