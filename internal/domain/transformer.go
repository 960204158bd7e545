// Package domain contains the core debug-prep workflow: neutralizing the
// harness environment, injecting trace statements, preflighting the result
// and triaging tracebacks.
package domain

import (
	"fmt"
	"go/ast"
	"go/token"

	"github.com/mouse-blink/stakeout/internal/adapter"
	m "github.com/mouse-blink/stakeout/internal/model"
)

// FixtureName is the conventional fixture-setup method on harness suites.
const FixtureName = "SetupTest"

// Transformer locates declarations in a source file and produces rewritten
// line sequences with trace statements injected at precise positions.
type Transformer interface {
	// Locate finds the first function declaration with the given name, in
	// source order. Declarations with empty bodies are skipped. The second
	// return is false when no declaration matches; the error is non-nil
	// only on parse failure.
	Locate(src m.SourceFile, name string) (m.Declaration, bool, error)

	// InjectAtBodyStart inserts stmt as a new line immediately before the
	// first statement of the declaration's body, reproducing that
	// statement's indentation. stmt must be a single line.
	InjectAtBodyStart(src m.SourceFile, decl m.Declaration, stmt string) m.SourceFile

	// InjectTraceAtMethod injects the debugger trace statement at the start
	// of the named method's body. bpLine, when positive, is the breakpoint
	// target line expressed against the input file; it is shifted by one
	// for the line about to be inserted above it. When the method is not
	// found the statement goes to the top of the file instead and located
	// is false (no breakpoint precision in that mode).
	InjectTraceAtMethod(src m.SourceFile, kind m.DebuggerKind, method string, bpLine int, absPath m.Path, userErr *m.BreakpointRequest) (out m.SourceFile, requests []m.BreakpointRequest, located bool, err error)

	// InjectTraceAtFixture injects the trace statement at the start of the
	// fixture-setup body (top of file when no fixture exists). When method
	// and failLine are supplied, breakpoints are planned at the method's
	// body-start line and at the fail line, both shifted by one for the
	// inserted line.
	InjectTraceAtFixture(src m.SourceFile, kind m.DebuggerKind, method string, failLine int, absPath m.Path, userErr *m.BreakpointRequest) (out m.SourceFile, requests []m.BreakpointRequest, err error)
}

type transformer struct {
	goAdapter adapter.GoFileAdapter
	planner   Planner
}

// NewTransformer creates a Transformer backed by the provided parser
// adapter and breakpoint planner.
func NewTransformer(goAdapter adapter.GoFileAdapter, planner Planner) Transformer {
	return &transformer{goAdapter: goAdapter, planner: planner}
}

func (t *transformer) Locate(src m.SourceFile, name string) (m.Declaration, bool, error) {
	fset := token.NewFileSet()

	file, err := t.goAdapter.Parse(fset, string(src.Origin), src.Bytes())
	if err != nil {
		return m.Declaration{}, false, fmt.Errorf("failed to parse %s: %w", src.Origin, err)
	}

	var decl m.Declaration

	found := false

	ast.Inspect(file, func(n ast.Node) bool {
		if found {
			return false
		}

		fn, ok := n.(*ast.FuncDecl)
		if !ok || fn.Name == nil || fn.Name.Name != name {
			return true
		}

		if fn.Body == nil || len(fn.Body.List) == 0 {
			return true
		}

		decl = m.Declaration{
			Name:          name,
			StartLine:     fset.Position(fn.Pos()).Line,
			BodyStartLine: fset.Position(fn.Body.List[0].Pos()).Line,
			EndLine:       fset.Position(fn.End()).Line,
		}
		found = true

		return false
	})

	return decl, found, nil
}

func (t *transformer) InjectAtBodyStart(src m.SourceFile, decl m.Declaration, stmt string) m.SourceFile {
	offset := decl.BodyStartLine - 1

	return src.Insert(offset, indentOf(src.Lines[offset])+stmt+"\n")
}

func (t *transformer) InjectTraceAtMethod(src m.SourceFile, kind m.DebuggerKind, method string, bpLine int, absPath m.Path, userErr *m.BreakpointRequest) (m.SourceFile, []m.BreakpointRequest, bool, error) {
	decl, found, err := t.Locate(src, method)
	if err != nil {
		return m.SourceFile{}, nil, false, err
	}

	if !found {
		// Degraded mode: no anchor for the statement, so it goes to the
		// very top and no method breakpoint can be planned.
		requests := t.planner.Plan(nil, userErr)

		return src.Insert(0, t.planner.Statement(kind, requests)+"\n"), requests, false, nil
	}

	var primary []m.BreakpointRequest

	if bpLine > 0 && absPath != "" {
		// The inserted line sits above the target, shifting it down by one.
		primary = append(primary, m.BreakpointRequest{File: absPath, Line: bpLine + 1})
	}

	requests := t.planner.Plan(primary, userErr)

	return t.InjectAtBodyStart(src, decl, t.planner.Statement(kind, requests)), requests, true, nil
}

func (t *transformer) InjectTraceAtFixture(src m.SourceFile, kind m.DebuggerKind, method string, failLine int, absPath m.Path, userErr *m.BreakpointRequest) (m.SourceFile, []m.BreakpointRequest, error) {
	methodBodyLine := 0

	if method != "" {
		decl, found, err := t.Locate(src, method)
		if err != nil {
			return m.SourceFile{}, nil, err
		}

		if found {
			methodBodyLine = decl.BodyStartLine
		}
	}

	// Both derived targets sit below the injection point and shift by one.
	var primary []m.BreakpointRequest

	if methodBodyLine > 0 && absPath != "" {
		primary = append(primary, m.BreakpointRequest{File: absPath, Line: methodBodyLine + 1})
	}

	if failLine > 0 && absPath != "" && failLine != methodBodyLine {
		primary = append(primary, m.BreakpointRequest{File: absPath, Line: failLine + 1})
	}

	requests := t.planner.Plan(primary, userErr)
	stmt := t.planner.Statement(kind, requests)

	fixture, found, err := t.Locate(src, FixtureName)
	if err != nil {
		return m.SourceFile{}, nil, err
	}

	if !found {
		return src.Insert(0, stmt+"\n"), requests, nil
	}

	return t.InjectAtBodyStart(src, fixture, stmt), requests, nil
}

// indentOf returns the literal leading whitespace of a line.
func indentOf(line string) string {
	for i := 0; i < len(line); i++ {
		if line[i] != ' ' && line[i] != '\t' {
			return line[:i]
		}
	}

	return line
}
