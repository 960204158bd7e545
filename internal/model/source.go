package model

import "strings"

// Path represents a file system path.
type Path string

// Base returns the last element of the path.
func (p Path) Base() string {
	s := string(p)
	if i := strings.LastIndexByte(s, '/'); i >= 0 {
		return s[i+1:]
	}

	return s
}

// SourceFile is an ordered sequence of raw text lines, each line retaining
// its own terminator. Line numbers reported by the parser are 1-based;
// slice offsets are 0-based. Edits never mutate in place: every insertion
// or removal produces a new SourceFile, since inserting a line shifts every
// subsequent physical line by one.
type SourceFile struct {
	Origin Path
	Lines  []string
}

// NewSourceFile splits content into lines, keeping terminators.
func NewSourceFile(origin Path, content []byte) SourceFile {
	return SourceFile{Origin: origin, Lines: SplitLines(string(content))}
}

// SplitLines splits text into lines that keep their trailing newline.
// A final line without a terminator is preserved as-is.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}

	var lines []string

	for {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			lines = append(lines, text)

			break
		}

		lines = append(lines, text[:i+1])

		text = text[i+1:]
		if text == "" {
			break
		}
	}

	return lines
}

// Text joins the lines back into the file content.
func (s SourceFile) Text() string {
	return strings.Join(s.Lines, "")
}

// Bytes returns the file content as a byte slice.
func (s SourceFile) Bytes() []byte {
	return []byte(s.Text())
}

// WithLines returns a copy of the file carrying a new line sequence.
func (s SourceFile) WithLines(lines []string) SourceFile {
	return SourceFile{Origin: s.Origin, Lines: lines}
}

// Insert returns a new SourceFile with line inserted at the 0-based offset.
func (s SourceFile) Insert(offset int, line string) SourceFile {
	if offset < 0 {
		offset = 0
	}

	if offset > len(s.Lines) {
		offset = len(s.Lines)
	}

	lines := make([]string, 0, len(s.Lines)+1)
	lines = append(lines, s.Lines[:offset]...)
	lines = append(lines, line)
	lines = append(lines, s.Lines[offset:]...)

	return s.WithLines(lines)
}

// Declaration identifies a named function and its location inside a
// SourceFile. All line numbers are 1-based. A Declaration is valid only
// against the SourceFile version it was parsed from; any insertion or
// removal above its location makes it stale.
type Declaration struct {
	Name          string
	StartLine     int
	BodyStartLine int
	EndLine       int
}
