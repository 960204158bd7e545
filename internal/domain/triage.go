package domain

import (
	"regexp"
	"strconv"
	"strings"

	m "github.com/mouse-blink/stakeout/internal/model"
)

// moduleMarker is the generic module-execution name the harness reports for
// its own top-level runner frames.
const moduleMarker = "<module>"

// Generated harness copies carry one of these markers in their base name
// and count as the test file.
var generatedFileMarkers = []string{"debug_this_test", "watch_"}

// framePattern matches one normalized traceback record. The name group is
// tolerant of bracketed parametrization, e.g. TestAdd[neg_overflow].
var framePattern = regexp.MustCompile(`(?m)File "([^"]+)", line (\d+), in (.+?)$`)

// Triager classifies traceback frames and extracts the locations that
// matter for breakpoint placement.
type Triager interface {
	// ParseFrames extracts every frame record from raw traceback text, in
	// traceback order (outermost call first). Records that do not match
	// the pattern are silently excluded.
	ParseFrames(text string) []m.TraceFrame

	// Classify assigns a frame its class relative to the designated test
	// file. Pure function of the frame and the test file identity.
	Classify(frame m.TraceFrame, testFile m.Path) m.FrameClass

	// RelevantFrames walks frames in order: runner frames are dropped,
	// test and user frames included, and the walk stops at the first
	// stdlib/third-party frame — unless nothing has been accumulated yet,
	// which guards against a traceback that starts inside a library call.
	RelevantFrames(text string, testFile m.Path) []m.TraceFrame

	// UserErrorLocation returns the deepest frame that is neither the test
	// file nor stdlib/third-party nor a synthetic source, or ("", 0).
	UserErrorLocation(text string, testFile m.Path) (m.Path, int)

	// FailLine returns the line of the last frame matching the target
	// file's base name and the method (parametrization stripped); 0 means
	// no breakpoint line is known, it is never a valid line number.
	FailLine(text string, targetFile m.Path, method string) int

	// BuildReport combines the relevant frames with a classification of
	// the failure message.
	BuildReport(text string, testFile m.Path) m.FailureReport
}

type triager struct{}

// NewTriager creates a Triager.
func NewTriager() Triager {
	return &triager{}
}

func (t *triager) ParseFrames(text string) []m.TraceFrame {
	var frames []m.TraceFrame

	for _, match := range framePattern.FindAllStringSubmatch(text, -1) {
		line, err := strconv.Atoi(match[2])
		if err != nil {
			continue
		}

		frames = append(frames, m.TraceFrame{
			File: m.Path(match[1]),
			Line: line,
			Func: strings.TrimSpace(match[3]),
		})
	}

	return frames
}

func (t *triager) Classify(frame m.TraceFrame, testFile m.Path) m.FrameClass {
	inTestFile := isTestFile(frame.File, testFile)

	if inTestFile && frame.Func == moduleMarker {
		return m.FrameRunner
	}

	if inTestFile {
		return m.FrameTest
	}

	if isStdlibOrThirdParty(frame.File) {
		return m.FrameStdlib
	}

	return m.FrameUser
}

func (t *triager) RelevantFrames(text string, testFile m.Path) []m.TraceFrame {
	var relevant []m.TraceFrame

	for _, frame := range t.ParseFrames(text) {
		switch t.Classify(frame, testFile) {
		case m.FrameRunner:
			continue
		case m.FrameTest, m.FrameUser:
			relevant = append(relevant, frame)
		case m.FrameStdlib:
			if len(relevant) > 0 {
				return relevant
			}
		}
	}

	return relevant
}

func (t *triager) UserErrorLocation(text string, testFile m.Path) (m.Path, int) {
	var (
		file  m.Path
		line  int
		found bool
	)

	for _, frame := range t.ParseFrames(text) {
		if isTestFile(frame.File, testFile) {
			continue
		}

		if isStdlibOrThirdParty(frame.File) {
			continue
		}

		file, line, found = frame.File, frame.Line, true
	}

	if !found {
		return "", 0
	}

	return file, line
}

func (t *triager) FailLine(text string, targetFile m.Path, method string) int {
	target := targetFile.Base()
	last := 0

	for _, frame := range t.ParseFrames(text) {
		if frame.File.Base() != target {
			continue
		}

		if stripParametrization(frame.Func) != method {
			continue
		}

		last = frame.Line
	}

	return last
}

func (t *triager) BuildReport(text string, testFile m.Path) m.FailureReport {
	report := m.FailureReport{
		Frames: t.RelevantFrames(text, testFile),
		Kind:   m.ErrorGeneric,
	}

	hasActual := strings.Contains(text, "Actual:")
	hasExpected := strings.Contains(text, "Expected:")

	if hasActual && hasExpected {
		report.Kind = m.ErrorComparison
	}

	for _, line := range strings.Split(text, "\n") {
		clean := strings.TrimSpace(line)
		if clean == "" {
			continue
		}

		if strings.HasPrefix(clean, "panic:") || strings.Contains(clean, "Error") || strings.Contains(clean, "Exception") {
			report.Message = clean

			break
		}
	}

	return report
}

// isTestFile matches the test file by base-name equality or by the
// generated-harness markers.
func isTestFile(path, testFile m.Path) bool {
	if testFile == "" {
		return false
	}

	base := path.Base()
	if base == testFile.Base() {
		return true
	}

	for _, marker := range generatedFileMarkers {
		if strings.Contains(base, marker) {
			return true
		}
	}

	return false
}

// isStdlibOrThirdParty reports whether a path points at standard-library or
// dependency code: synthetic sources (<autogenerated> and friends), GOROOT
// sources, the module cache, or a vendor tree.
func isStdlibOrThirdParty(path m.Path) bool {
	s := string(path)

	if strings.HasPrefix(s, "<") {
		return true
	}

	if strings.Contains(s, "/go/src/") {
		return true
	}

	return strings.Contains(s, "/pkg/mod/") || strings.Contains(s, "/vendor/")
}

// stripParametrization removes a trailing bracketed parameter, so
// TestAdd[neg] compares equal to TestAdd.
func stripParametrization(name string) string {
	if i := strings.IndexByte(name, '['); i >= 0 && strings.HasSuffix(name, "]") {
		return name[:i]
	}

	return name
}
