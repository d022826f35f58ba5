// Package chunker splits Markdown documentation into retrieval-sized chunks
// that preserve heading and section context.
//
// A line-oriented tokenizer turns the raw text into a typed token stream
// (headings, paragraphs, list items, block quotes, code blocks). An
// accumulator state machine consumes the stream, flushing a chunk whenever
// a heading starts a new topical unit or the size guard would be exceeded.
// Chunking is a pure computation: no I/O, deterministic for identical input.
package chunker
