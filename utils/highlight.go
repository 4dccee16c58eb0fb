package utils

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

// texLexer is chroma's lexer alias for TeX and LaTeX sources.
const texLexer = "latex"

// HighlightExcerpt colors a short piece of LaTeX source for the terminal.
// If highlighting fails the excerpt is returned unchanged.
func HighlightExcerpt(excerpt string, theme string) string {
	if strings.TrimSpace(excerpt) == "" {
		return excerpt
	}

	var buf bytes.Buffer
	if err := quick.Highlight(&buf, excerpt, texLexer, "terminal256", theme); err != nil {
		return excerpt
	}
	return strings.TrimRight(buf.String(), "\n")
}
