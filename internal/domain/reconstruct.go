package domain

import (
	"regexp"
	"strings"

	"github.com/mouse-blink/stakeout/internal/adapter"
	m "github.com/mouse-blink/stakeout/internal/model"
)

// Stream control markers shared with the harness generator.
const (
	TestStartMarker      = "___TEST_START___"
	FailureSummaryStart  = "___FAILURE_SUMMARY_START___"
	FailureSummaryEnd    = "___FAILURE_SUMMARY_END___"
	SectionSeparator     = "___SECTION_SEP___"
	ExecutedLinePrefix   = "[EXE] "
	panicTracebackPrefix = "panic:"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// reconstructor states.
const (
	stateIdle = iota
	stateInTest
	stateDiscard
	stateInSummary
)

// Reconstructor rebuilds a cleaned, colorized log of what actually ran
// from a raw trace stream.
type Reconstructor interface {
	// Reconstruct returns three sections joined by the section separator:
	// an empty reserved section, the captured failure summary, and the
	// recolorized executed-lines log. Once a raw panic traceback starts it
	// is consumed silently: it is redundant with the failure summary and
	// must not leak into the executed-lines log.
	Reconstruct(text string) string

	// ColorizeCrash renders a crash traceback from its last frame onward.
	ColorizeCrash(text string) string

	// ColorizeError renders a failure summary: error headers red,
	// Actual/Expected values in contrasting colors.
	ColorizeError(text string) string
}

type reconstructor struct {
	highlighter adapter.Highlighter
}

// NewReconstructor creates a Reconstructor using the given highlighter as
// its formatting backend.
func NewReconstructor(highlighter adapter.Highlighter) Reconstructor {
	return &reconstructor{highlighter: highlighter}
}

func (r *reconstructor) Reconstruct(text string) string {
	state := stateIdle

	var (
		log     []string
		summary []string
	)

	for _, line := range m.SplitLines(text) {
		clean := strings.TrimSpace(ansiPattern.ReplaceAllString(line, ""))

		switch {
		case strings.Contains(clean, TestStartMarker):
			state = stateInTest

			continue
		case strings.Contains(clean, FailureSummaryStart):
			state = stateInSummary

			continue
		case strings.Contains(clean, FailureSummaryEnd):
			state = stateInTest

			continue
		}

		switch state {
		case stateInSummary:
			// Leading whitespace may carry meaningful indentation.
			summary = append(summary, strings.TrimRight(line, " \t\r\n"))
		case stateInTest:
			switch {
			case strings.HasPrefix(clean, ExecutedLinePrefix):
				code := strings.TrimPrefix(clean, ExecutedLinePrefix)
				log = append(log, "  \x1b[1;34m>>\x1b[0m "+r.highlighter.Code(code)+"\n")
			case strings.HasPrefix(clean, panicTracebackPrefix):
				state = stateDiscard
			default:
				log = append(log, "  \x1b[2m"+line+"\x1b[0m")
			}
		case stateDiscard:
		}
	}

	var out strings.Builder

	out.WriteString(SectionSeparator + "\n")
	out.WriteString(strings.Join(summary, "\n"))
	out.WriteString("\n" + SectionSeparator + "\n")
	out.WriteString(strings.Join(log, ""))

	return out.String()
}

var crashFramePattern = regexp.MustCompile(`(File ")(.*?)(", line )(\d+)(, in )(.*)`)

func (r *reconstructor) ColorizeCrash(text string) string {
	lines := strings.Split(text, "\n")

	lastFrame := -1
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), `File "`) {
			lastFrame = i
		}
	}

	if lastFrame != -1 {
		lines = lines[lastFrame:]
	}

	var out []string

	for _, line := range lines {
		if match := crashFramePattern.FindStringSubmatch(line); match != nil {
			out = append(out, "  "+match[1]+"\x1b[34m"+match[2]+"\x1b[0m"+match[3]+
				"\x1b[32m"+match[4]+"\x1b[0m"+match[5]+"\x1b[33m"+match[6]+"\x1b[0m")

			continue
		}

		if strings.Contains(line, "Error:") || strings.Contains(line, "panic:") {
			out = append(out, "\x1b[31m"+line+"\x1b[0m")

			continue
		}

		if strings.Contains(line, "    ") {
			out = append(out, "\x1b[1m"+line+"\x1b[0m")

			continue
		}

		out = append(out, line)
	}

	return strings.Join(out, "\n")
}

var (
	actualPattern      = regexp.MustCompile(`^\s*Actual:\s*(.*)`)
	expectedPattern    = regexp.MustCompile(`^\s*Expected:\s*(.*)`)
	errorHeaderPattern = regexp.MustCompile(`^(\w+(?:Error|Exception|Interrupt|Iteration|Exit)):\s*(.*)`)
)

func (r *reconstructor) ColorizeError(text string) string {
	var out []string

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if line == "" {
			continue
		}

		if strings.HasSuffix(line, ":") && (strings.Contains(line, "Error") || strings.Contains(line, "Exception") || strings.Contains(line, "panic")) {
			out = append(out, "  \x1b[1;31m"+line+"\x1b[0m")

			continue
		}

		if match := actualPattern.FindStringSubmatch(line); match != nil {
			out = append(out, "  \x1b[1mActual:   \x1b[33m"+match[1]+"\x1b[0m")

			continue
		}

		if match := expectedPattern.FindStringSubmatch(line); match != nil {
			out = append(out, "  \x1b[1mExpected: \x1b[32m"+match[1]+"\x1b[0m")

			continue
		}

		if match := errorHeaderPattern.FindStringSubmatch(line); match != nil {
			out = append(out, "  \x1b[1;31m"+match[1]+":\x1b[0m "+match[2])

			continue
		}

		if rest, ok := strings.CutPrefix(line, "panic:"); ok {
			out = append(out, "  \x1b[1;31mpanic:\x1b[0m"+rest)

			continue
		}

		out = append(out, "  "+line)
	}

	return strings.Join(out, "\n")
}
