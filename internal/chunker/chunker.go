package chunker

import (
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/docdex/internal/core/domain"
)

// Chunk splits a Markdown document into ordered chunks, each tagged with the
// title and section active where it was flushed. The title starts as the
// normalised file name; a top-level heading replaces it and clears the
// section, while any deeper heading becomes the section label. Only Content,
// Title and Section are populated; provenance fields are the caller's.
func Chunk(content, filePath string) []domain.Chunk {
	acc := accumulator{
		title: TitleFromPath(filePath),
	}

	for _, tok := range Tokenize(content) {
		switch tok.Kind {
		case TokenHeading:
			acc.flush()
			if tok.Level == 1 {
				acc.title = tok.Text
				acc.section = ""
			} else {
				acc.section = tok.Text
			}
			acc.append(strings.Repeat("#", tok.Level) + " " + tok.Text)

		case TokenCodeBlock:
			acc.append("```\n" + tok.Text + "\n```")

		case TokenParagraph, TokenListItem, TokenBlockQuote:
			acc.append(tok.Text)
		}
	}
	acc.flush()

	// Degenerate input that produced no structural chunks: emit a single
	// chunk from the raw text, capped at the size limit.
	if len(acc.chunks) == 0 && strings.TrimSpace(content) != "" {
		return []domain.Chunk{{
			Content: strings.TrimSpace(truncate(content, domain.MaxChunkContent)),
			Title:   TitleFromPath(filePath),
		}}
	}

	return acc.chunks
}

// TitleFromPath derives a default chunk title from a file path: base name
// with the extension stripped and separators replaced by spaces.
func TitleFromPath(path string) string {
	name := filepath.Base(path)
	if ext := filepath.Ext(name); ext != "" {
		name = strings.TrimSuffix(name, ext)
	}
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	return name
}

// accumulator carries the running chunk state across the token stream.
type accumulator struct {
	title   string
	section string
	content strings.Builder
	chunks  []domain.Chunk
}

// flush emits the accumulated content as a chunk if it is non-empty after
// trimming, then resets the content. Title and section carry over.
func (a *accumulator) flush() {
	text := strings.TrimSpace(a.content.String())
	a.content.Reset()
	if text == "" {
		return
	}
	a.chunks = append(a.chunks, domain.Chunk{
		Content: text,
		Title:   a.title,
		Section: a.section,
	})
}

// append adds element text to the accumulator, flushing first whenever the
// size guard would be exceeded. Element text longer than the cap on its own
// is split so no emitted chunk exceeds the cap.
func (a *accumulator) append(text string) {
	for len(text) > domain.MaxChunkContent {
		head := truncate(text, domain.MaxChunkContent)
		a.appendOne(head)
		a.flush()
		text = text[len(head):]
	}
	a.appendOne(text)
}

func (a *accumulator) appendOne(text string) {
	// The separator counts towards the cap.
	if a.content.Len() > 0 && a.content.Len()+2+len(text) > domain.MaxChunkContent {
		a.flush()
	}
	if a.content.Len() > 0 {
		a.content.WriteString("\n\n")
	}
	a.content.WriteString(text)
}

// truncate cuts s to at most n bytes, backing off to a rune boundary.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
