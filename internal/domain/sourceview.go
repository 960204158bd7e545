package domain

import (
	"fmt"
	"strings"

	"github.com/mouse-blink/stakeout/internal/adapter"
	m "github.com/mouse-blink/stakeout/internal/model"
)

// SourceView renders a method's source up to the failing line, dedented and
// syntax-highlighted, with an arrow on the failure.
type SourceView struct {
	fsAdapter   adapter.SourceFSAdapter
	transformer Transformer
	highlighter adapter.Highlighter
}

// NewSourceView constructs a SourceView.
func NewSourceView(fsAdapter adapter.SourceFSAdapter, transformer Transformer, highlighter adapter.Highlighter) *SourceView {
	return &SourceView{fsAdapter: fsAdapter, transformer: transformer, highlighter: highlighter}
}

// Extract returns the highlighted body of method in file, truncated at
// failLine when positive, with a red arrow marking the failing line.
func (v *SourceView) Extract(file m.Path, method string, failLine int) string {
	content, err := v.fsAdapter.ReadFile(file)
	if err != nil {
		return fmt.Sprintf("error extracting source: %v", err)
	}

	src := m.NewSourceFile(file, content)

	decl, found, err := v.transformer.Locate(src, method)
	if err != nil {
		return fmt.Sprintf("error extracting source: %v", err)
	}

	if !found {
		return "method source not found"
	}

	end := decl.EndLine
	if failLine > 0 && failLine <= decl.EndLine {
		end = failLine
	}

	lines := make([]string, 0, end-decl.StartLine+1)
	for _, line := range src.Lines[decl.StartLine-1 : end] {
		lines = append(lines, strings.TrimRight(line, "\r\n"))
	}

	if len(lines) > 0 {
		indent := indentOf(lines[0])
		for i, line := range lines {
			lines[i] = strings.TrimPrefix(line, indent)
		}
	}

	formatted := v.highlighter.Code(strings.Join(lines, "\n"))

	relFail := failLine - decl.StartLine

	var out []string

	for i, line := range strings.Split(formatted, "\n") {
		if i == relFail && failLine > 0 {
			out = append(out, "\x1b[91m--> \x1b[0m"+line)
		} else {
			out = append(out, "    "+line)
		}
	}

	return strings.Join(out, "\n")
}
