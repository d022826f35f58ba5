package chunker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize_Headings(t *testing.T) {
	tokens := Tokenize("# Title\n\n## Section\n\n### Deep")

	require.Len(t, tokens, 3)
	assert.Equal(t, Token{Kind: TokenHeading, Level: 1, Text: "Title"}, tokens[0])
	assert.Equal(t, Token{Kind: TokenHeading, Level: 2, Text: "Section"}, tokens[1])
	assert.Equal(t, Token{Kind: TokenHeading, Level: 3, Text: "Deep"}, tokens[2])
}

func TestTokenize_ParagraphJoinsSoftWrappedLines(t *testing.T) {
	tokens := Tokenize("first line\nsecond line\n\nnext paragraph")

	require.Len(t, tokens, 2)
	assert.Equal(t, TokenParagraph, tokens[0].Kind)
	assert.Equal(t, "first line second line", tokens[0].Text)
	assert.Equal(t, "next paragraph", tokens[1].Text)
}

func TestTokenize_ListItems(t *testing.T) {
	tokens := Tokenize("- alpha\n* beta\n+ gamma\n1. delta\n2) epsilon")

	require.Len(t, tokens, 5)
	for _, tok := range tokens {
		assert.Equal(t, TokenListItem, tok.Kind)
	}
	assert.Equal(t, "alpha", tokens[0].Text)
	assert.Equal(t, "delta", tokens[3].Text)
	assert.Equal(t, "epsilon", tokens[4].Text)
}

func TestTokenize_BlockQuote(t *testing.T) {
	tokens := Tokenize("> quoted line\n> second quoted\n\nplain")

	require.Len(t, tokens, 2)
	assert.Equal(t, TokenBlockQuote, tokens[0].Kind)
	assert.Equal(t, "quoted line\nsecond quoted", tokens[0].Text)
	assert.Equal(t, TokenParagraph, tokens[1].Kind)
}

func TestTokenize_FencedCodeBlock(t *testing.T) {
	tokens := Tokenize("```go\nfunc main() {}\n```\n\nafter")

	require.Len(t, tokens, 2)
	assert.Equal(t, TokenCodeBlock, tokens[0].Kind)
	assert.Equal(t, "func main() {}", tokens[0].Text)
	assert.Equal(t, "after", tokens[1].Text)
}

func TestTokenize_UnterminatedFence(t *testing.T) {
	tokens := Tokenize("```\ncode without closing fence")

	require.Len(t, tokens, 1)
	assert.Equal(t, TokenCodeBlock, tokens[0].Kind)
	assert.Equal(t, "code without closing fence", tokens[0].Text)
}

func TestTokenize_Empty(t *testing.T) {
	assert.Empty(t, Tokenize(""))
	assert.Empty(t, Tokenize("\n\n\n"))
}
