package adapter

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

// Highlighter colorizes source code snippets for terminal display. It is a
// pluggable formatting backend: the chroma implementation is preferred, the
// regex fallback keeps output readable when a lexer chokes.
type Highlighter interface {
	Code(src string) string
}

// ChromaHighlighter renders Go code through chroma's terminal formatter.
type ChromaHighlighter struct {
	style string
}

// NewChromaHighlighter constructs a ChromaHighlighter with the given chroma
// style name ("monokai" when empty).
func NewChromaHighlighter(style string) *ChromaHighlighter {
	if style == "" {
		style = "monokai"
	}

	return &ChromaHighlighter{style: style}
}

// Code returns src colorized with ANSI escapes, without a trailing newline.
func (h *ChromaHighlighter) Code(src string) string {
	var buf bytes.Buffer

	if err := quick.Highlight(&buf, src, "go", "terminal256", h.style); err != nil {
		return FallbackColorize(src)
	}

	return strings.TrimRight(buf.String(), "\n")
}

var (
	stringPattern  = regexp.MustCompile(`(".*?"|` + "`.*?`" + `)`)
	numberPattern  = regexp.MustCompile(`\b(\d+)\b`)
	keywordPattern = regexp.MustCompile(`\b(func|return|if|else|for|range|var|const|type|import|package|go|defer|select|switch|case|break|continue|struct|interface|map|chan|nil|true|false)\b`)
)

// FallbackColorize applies a rough ANSI colorization: strings green,
// numbers cyan, keywords yellow.
func FallbackColorize(src string) string {
	src = stringPattern.ReplaceAllString(src, "\x1b[32m$1\x1b[0m")
	src = numberPattern.ReplaceAllString(src, "\x1b[36m$1\x1b[0m")
	src = keywordPattern.ReplaceAllString(src, "\x1b[33m$1\x1b[0m")

	return src
}
