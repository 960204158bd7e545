package domain

import (
	"fmt"
	"strings"

	"github.com/mouse-blink/stakeout/internal/adapter"
	m "github.com/mouse-blink/stakeout/internal/model"
)

// Planner assembles the ordered breakpoint requests for a debugging session
// and renders them into the statements the harness executes.
type Planner interface {
	// Plan returns requests in insertion order: the primary targets, then
	// the user-error location from a prior run's traceback, then the
	// persisted manual breakpoints. The manual store is re-read on every
	// call; duplicates are allowed (setting the same breakpoint twice is
	// idempotent to the debugger).
	Plan(primary []m.BreakpointRequest, userErr *m.BreakpointRequest) []m.BreakpointRequest

	// Statement renders a single-line trace-entry statement for the given
	// debugger kind: attach the bridge, set every breakpoint, print the
	// persisted error summary when present, then block interactively.
	Statement(kind m.DebuggerKind, requests []m.BreakpointRequest) string

	// PostMortemBlock renders the statement sequence that replaces the
	// harness's bare re-raise: attach, show the summary, enter post-mortem
	// on the caught failure.
	PostMortemBlock(kind m.DebuggerKind) []string
}

type planner struct {
	store adapter.StoreAdapter
}

// NewPlanner creates a Planner reading manual breakpoints from store.
func NewPlanner(store adapter.StoreAdapter) Planner {
	return &planner{store: store}
}

func (p *planner) Plan(primary []m.BreakpointRequest, userErr *m.BreakpointRequest) []m.BreakpointRequest {
	requests := make([]m.BreakpointRequest, 0, len(primary)+1)
	requests = append(requests, primary...)

	if userErr != nil && userErr.File != "" && userErr.Line > 0 {
		requests = append(requests, *userErr)
	}

	// Store corruption must never block a debugging session: malformed
	// entries were already skipped by the adapter, read errors mean no
	// manual breakpoints this time.
	manual, err := p.store.ReadManualBreakpoints()
	if err == nil {
		requests = append(requests, manual...)
	}

	return requests
}

func (p *planner) Statement(kind m.DebuggerKind, requests []m.BreakpointRequest) string {
	parts := attachParts(kind)

	for _, req := range requests {
		parts = append(parts, fmt.Sprintf("_dbg.SetBreak(%q, %d)", req.File, req.Line))
	}

	parts = append(parts, fmt.Sprintf("_dbg.ShowSummary(%q)", p.store.ErrorSummaryPath()))
	parts = append(parts, "_dbg.Halt()")

	return strings.Join(parts, "; ")
}

func (p *planner) PostMortemBlock(kind m.DebuggerKind) []string {
	block := attachParts(kind)
	block = append(block, fmt.Sprintf("_dbg.ShowSummary(%q)", p.store.ErrorSummaryPath()))
	block = append(block, "_dbg.PostMortem(testErr)")

	return block
}

// attachParts returns the bridge attach statements for a debugger kind.
// The gdb bridge additionally switches to its TUI layout up front.
func attachParts(kind m.DebuggerKind) []string {
	if kind == m.DebuggerGDB {
		return []string{"_dbg := dbg.Attach(dbg.GDB)", "_dbg.EnableTUI()"}
	}

	return []string{"_dbg := dbg.Attach(dbg.Delve)"}
}
