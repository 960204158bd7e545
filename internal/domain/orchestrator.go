package domain

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mouse-blink/stakeout/internal/adapter"
	"github.com/mouse-blink/stakeout/internal/domain/rewrites"
	m "github.com/mouse-blink/stakeout/internal/model"
)

// PrepArgs are the inputs for one debug preparation.
type PrepArgs struct {
	File          m.Path
	Method        string
	FailLine      int
	Debugger      m.DebuggerKind
	UserErrorFile m.Path
	UserErrorLine int
}

// PrepResult reports which injection strategy won and what it planned.
type PrepResult struct {
	Mode     m.InjectionMode
	Located  bool
	Requests []m.BreakpointRequest
	Reason   string
}

// Orchestrator drives the two-attempt injection sequence. The target
// method's body may depend on state that only exists after fixture setup
// runs; attempting to drop into the debugger before that state exists would
// make the session useless, hence the preflight check and the fallback to
// fixture-start injection.
type Orchestrator interface {
	// Prepare rewrites the target file in place: neutralize, inject at the
	// method body, preflight, and on preflight failure re-derive a
	// fixture-start rewrite from the pristine original. The fallback
	// rewrite is trusted unconditionally (no second preflight). Parse
	// failures abort with an error and nothing written.
	Prepare(args PrepArgs) (PrepResult, error)

	// PrepareFixtureOnly injects a plain trace statement at the fixture
	// start without preflighting, for granular use.
	PrepareFixtureOnly(file m.Path, kind m.DebuggerKind) error
}

type orchestrator struct {
	fsAdapter   adapter.SourceFSAdapter
	transformer Transformer
	planner     Planner
	preflight   Preflight
	log         zerolog.Logger
}

// NewOrchestrator constructs an Orchestrator from its collaborators.
func NewOrchestrator(fsAdapter adapter.SourceFSAdapter, transformer Transformer, planner Planner, preflight Preflight, log zerolog.Logger) Orchestrator {
	return &orchestrator{
		fsAdapter:   fsAdapter,
		transformer: transformer,
		planner:     planner,
		preflight:   preflight,
		log:         log,
	}
}

func (o *orchestrator) Prepare(args PrepArgs) (PrepResult, error) {
	content, err := o.fsAdapter.ReadFile(args.File)
	if err != nil {
		return PrepResult{}, fmt.Errorf("failed to read %s: %w", args.File, err)
	}

	absPath, err := o.fsAdapter.AbsPath(args.File)
	if err != nil {
		return PrepResult{}, err
	}

	original := m.NewSourceFile(absPath, content)
	userErr := userErrorRequest(args)

	// Removing guard lines above the fail line shifts it; the breakpoint
	// must land on the post-neutralization line.
	adjFail := 0
	if args.FailLine > 0 {
		adjFail = args.FailLine - rewrites.RemovedBefore(original.Lines, args.FailLine)
	}

	cleaned := neutralize(original)

	direct, requests, located, err := o.transformer.InjectTraceAtMethod(cleaned, args.Debugger, args.Method, adjFail, absPath, userErr)
	if err != nil {
		return PrepResult{}, fmt.Errorf("prep of %s method %s: %w", args.File, args.Method, err)
	}

	if !located {
		o.log.Warn().Str("method", args.Method).Msg("method not found, trace injected at top of file")
	}

	direct = direct.WithLines(rewrites.PatchPostMortem(direct.Lines, o.planner.PostMortemBlock(args.Debugger)))

	if err := o.fsAdapter.WriteFile(args.File, direct.Bytes(), 0o600); err != nil {
		return PrepResult{}, fmt.Errorf("failed to write rewritten file: %w", err)
	}

	ok, reason := o.preflight.Check(args.File, args.Method)
	if ok {
		return PrepResult{Mode: m.InjectDirect, Located: located, Requests: requests}, nil
	}

	// Fixture fallback always starts over from the pristine original: the
	// failed direct rewrite is never patched further, so a partial or
	// inconsistent intermediate state cannot compound.
	fallback := neutralize(original)

	fallback, requests, err = o.transformer.InjectTraceAtFixture(fallback, args.Debugger, args.Method, args.FailLine, absPath, userErr)
	if err != nil {
		return PrepResult{}, fmt.Errorf("fixture fallback for %s: %w", args.File, err)
	}

	fallback = fallback.WithLines(rewrites.PatchPostMortem(fallback.Lines, o.planner.PostMortemBlock(args.Debugger)))

	if err := o.fsAdapter.WriteFile(args.File, fallback.Bytes(), 0o600); err != nil {
		return PrepResult{}, fmt.Errorf("failed to write fallback file: %w", err)
	}

	o.log.Info().Str("reason", reason).Msg("preflight failed, trace injected into fixture setup")

	return PrepResult{Mode: m.InjectFixtureFallback, Located: located, Requests: requests, Reason: reason}, nil
}

func (o *orchestrator) PrepareFixtureOnly(file m.Path, kind m.DebuggerKind) error {
	content, err := o.fsAdapter.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", file, err)
	}

	absPath, err := o.fsAdapter.AbsPath(file)
	if err != nil {
		return err
	}

	src := m.NewSourceFile(absPath, content)

	out, _, err := o.transformer.InjectTraceAtFixture(src, kind, "", 0, "", nil)
	if err != nil {
		return fmt.Errorf("fixture prep of %s: %w", file, err)
	}

	return o.fsAdapter.WriteFile(file, out.Bytes(), 0o600)
}

// neutralize runs the environment pre-pass: timeout guards removed, alarm
// arming calls disabled.
func neutralize(src m.SourceFile) m.SourceFile {
	return src.WithLines(rewrites.NeutralizeAlarms(rewrites.RemoveTimeouts(src.Lines)))
}

func userErrorRequest(args PrepArgs) *m.BreakpointRequest {
	if args.UserErrorFile == "" || args.UserErrorLine <= 0 {
		return nil
	}

	return &m.BreakpointRequest{File: args.UserErrorFile, Line: args.UserErrorLine}
}
