// Package model defines the data structures for debug preparation and
// traceback triage.
package model

// FrameClass is the triage classification of a single stack frame.
// Classification is a pure function of the frame's path and function name
// plus the identity of the designated test file; it never changes once the
// traceback text is fixed.
type FrameClass int

// Frame classes.
const (
	// FrameTest belongs to the test file itself (or a generated harness copy).
	FrameTest FrameClass = iota
	// FrameUser is project code reached from the test.
	FrameUser
	// FrameStdlib is standard-library or third-party code.
	FrameStdlib
	// FrameRunner is harness boilerplate (the module-execution marker).
	FrameRunner
)

func (c FrameClass) String() string {
	switch c {
	case FrameTest:
		return "test"
	case FrameUser:
		return "user"
	case FrameStdlib:
		return "stdlib"
	case FrameRunner:
		return "runner"
	}

	return "unknown"
}

// TraceFrame is one "File X, line Y, in Z" record extracted from a traceback.
type TraceFrame struct {
	File Path
	Line int
	Func string
}

// ErrorKind classifies the failure message of a report.
type ErrorKind string

// Error kinds.
const (
	// ErrorComparison is an equality-style failure with Actual/Expected lines.
	ErrorComparison ErrorKind = "comparison"
	// ErrorGeneric is any other exception or panic.
	ErrorGeneric ErrorKind = "generic"
)

// FailureReport is the triaged view of one failing run: the frames an
// engineer should actually look at plus the classified error message.
// Constructed once per failing run and never mutated, only rendered.
type FailureReport struct {
	Frames  []TraceFrame
	Kind    ErrorKind
	Message string
}
