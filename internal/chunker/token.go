package chunker

import (
	"regexp"
	"strings"
)

// TokenKind identifies a structural element in a Markdown document.
type TokenKind int

const (
	// TokenHeading is an ATX heading (# through ######).
	TokenHeading TokenKind = iota

	// TokenParagraph is a run of plain text lines.
	TokenParagraph

	// TokenListItem is a single bulleted or numbered list item.
	TokenListItem

	// TokenBlockQuote is a run of quoted lines with markers stripped.
	TokenBlockQuote

	// TokenCodeBlock is the raw body of a fenced code block.
	TokenCodeBlock
)

// Token is one structural element of the document.
type Token struct {
	// Kind is the element type.
	Kind TokenKind

	// Level is the heading level (1-6). Zero for non-headings.
	Level int

	// Text is the element's text. For headings the marker is stripped;
	// for code blocks it is the raw body without the fence lines.
	Text string
}

var (
	headingPattern  = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	bulletPattern   = regexp.MustCompile(`^\s*[-*+]\s+(.*)$`)
	numberedPattern = regexp.MustCompile(`^\s*\d+[.)]\s+(.*)$`)
)

// Tokenize converts Markdown text into a typed token stream.
// Elements are recognised in priority order: fenced code blocks, headings,
// list items, block quotes, then paragraphs. Blank lines separate elements.
func Tokenize(content string) []Token {
	lines := strings.Split(content, "\n")

	var tokens []Token
	var paragraph []string
	var quote []string

	flushParagraph := func() {
		if len(paragraph) > 0 {
			tokens = append(tokens, Token{Kind: TokenParagraph, Text: strings.Join(paragraph, " ")})
			paragraph = nil
		}
	}
	flushQuote := func() {
		if len(quote) > 0 {
			tokens = append(tokens, Token{Kind: TokenBlockQuote, Text: strings.Join(quote, "\n")})
			quote = nil
		}
	}

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		// Fenced code block: capture raw body until the closing fence.
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			flushParagraph()
			flushQuote()
			fence := trimmed[:3]
			var body []string
			for i++; i < len(lines); i++ {
				if strings.HasPrefix(strings.TrimSpace(lines[i]), fence) {
					break
				}
				body = append(body, lines[i])
			}
			tokens = append(tokens, Token{Kind: TokenCodeBlock, Text: strings.Join(body, "\n")})
			continue
		}

		if m := headingPattern.FindStringSubmatch(trimmed); m != nil {
			flushParagraph()
			flushQuote()
			tokens = append(tokens, Token{
				Kind:  TokenHeading,
				Level: len(m[1]),
				Text:  strings.TrimSpace(m[2]),
			})
			continue
		}

		if m := bulletPattern.FindStringSubmatch(line); m != nil {
			flushParagraph()
			flushQuote()
			tokens = append(tokens, Token{Kind: TokenListItem, Text: strings.TrimSpace(m[1])})
			continue
		}
		if m := numberedPattern.FindStringSubmatch(line); m != nil {
			flushParagraph()
			flushQuote()
			tokens = append(tokens, Token{Kind: TokenListItem, Text: strings.TrimSpace(m[1])})
			continue
		}

		if strings.HasPrefix(trimmed, ">") {
			flushParagraph()
			quote = append(quote, strings.TrimSpace(strings.TrimPrefix(trimmed, ">")))
			continue
		}

		if trimmed == "" {
			flushParagraph()
			flushQuote()
			continue
		}

		flushQuote()
		paragraph = append(paragraph, trimmed)
	}

	flushParagraph()
	flushQuote()
	return tokens
}
