// Package sqlite provides the durable ChunkStore adapter backed by SQLite.
//
// Chunks and their embedding blobs live in two related tables joined by the
// chunk id, with cascade delete of the embedding when its chunk row is
// removed. Similarity search is exact brute force: candidates are scored by
// cosine similarity in process. This is deliberate at the scale of a single
// organisation's documentation corpus; an approximate index could replace it
// behind the same port without changing similarity semantics.
package sqlite
