package model

// DebuggerKind selects the debugger bridge the injected statement targets.
type DebuggerKind string

// Supported debugger kinds.
const (
	DebuggerDelve DebuggerKind = "delve"
	DebuggerGDB   DebuggerKind = "gdb"
)

// BreakpointRequest is a "stop execution here" instruction for the external
// debugger bridge. Line numbers are always expressed against the final
// (post-rewrite) file, never against the pre-rewrite original. Duplicate
// requests are harmless: setting a breakpoint twice at the same location is
// idempotent to the debugger.
type BreakpointRequest struct {
	File Path
	Line int
}

// InjectionMode reports which injection strategy produced the rewrite.
type InjectionMode string

// Injection modes, in attempt order.
const (
	InjectDirect          InjectionMode = "direct"
	InjectFixtureFallback InjectionMode = "fixture-fallback"
)
