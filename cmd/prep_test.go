package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/stakeout/internal/controller"
	"github.com/mouse-blink/stakeout/internal/domain"
	m "github.com/mouse-blink/stakeout/internal/model"
)

// stubOrchestrator records the prep it was asked for.
type stubOrchestrator struct {
	args        domain.PrepArgs
	result      domain.PrepResult
	err         error
	fixtureFile m.Path
	fixtureKind m.DebuggerKind
}

func (o *stubOrchestrator) Prepare(args domain.PrepArgs) (domain.PrepResult, error) {
	o.args = args

	return o.result, o.err
}

func (o *stubOrchestrator) PrepareFixtureOnly(file m.Path, kind m.DebuggerKind) error {
	o.fixtureFile = file
	o.fixtureKind = kind

	return o.err
}

// recordingUI captures display calls without rendering anything.
type recordingUI struct {
	stages   []controller.Stage
	outcomes []m.InjectionMode
}

func (u *recordingUI) Start() error { return nil }
func (u *recordingUI) Close()       {}

func (u *recordingUI) DisplayStage(stage controller.Stage, _ string) {
	u.stages = append(u.stages, stage)
}

func (u *recordingUI) DisplayPrepOutcome(mode m.InjectionMode, _ []m.BreakpointRequest, _ string) {
	u.outcomes = append(u.outcomes, mode)
}

func (u *recordingUI) DisplayFrames([]m.TraceFrame, []m.FrameClass) error { return nil }

func swapOrchestrator(t *testing.T, stub *stubOrchestrator) {
	t.Helper()

	original := orchestrator
	orchestrator = stub
	t.Cleanup(func() { orchestrator = original })
}

func swapUI(t *testing.T, stub *recordingUI) {
	t.Helper()

	original := ui
	ui = stub
	t.Cleanup(func() { ui = original })
}

// tempTestFile creates a placeholder harness file so prep's existence
// check passes.
func tempTestFile(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "h_test.go")
	require.NoError(t, os.WriteFile(path, []byte("package sample\n"), 0o600))

	return path
}

func TestPrepCmd(t *testing.T) {
	stub := &stubOrchestrator{
		result: domain.PrepResult{
			Mode:     m.InjectDirect,
			Located:  true,
			Requests: []m.BreakpointRequest{{File: "/proj/h_test.go", Line: 16}},
		},
	}
	rec := &recordingUI{}
	swapOrchestrator(t, stub)
	swapUI(t, rec)

	path := tempTestFile(t)

	_, err := execute(t, "",
		"prep", path,
		"--method", "TestAdd",
		"--fail-line", "16",
		"--debugger", "delve",
		"--error-file", "/proj/calc.go",
		"--error-line", "42")
	require.NoError(t, err)

	assert.Equal(t, m.Path(path), stub.args.File)
	assert.Equal(t, "TestAdd", stub.args.Method)
	assert.Equal(t, 16, stub.args.FailLine)
	assert.Equal(t, m.DebuggerDelve, stub.args.Debugger)
	assert.Equal(t, m.Path("/proj/calc.go"), stub.args.UserErrorFile)
	assert.Equal(t, 42, stub.args.UserErrorLine)

	require.Len(t, rec.outcomes, 1)
	assert.Equal(t, m.InjectDirect, rec.outcomes[0])
	assert.NotContains(t, rec.stages, controller.StageFallback)
}

func TestPrepCmd_FallbackStageShown(t *testing.T) {
	stub := &stubOrchestrator{
		result: domain.PrepResult{
			Mode:   m.InjectFixtureFallback,
			Reason: "setup failed: boom",
		},
	}
	rec := &recordingUI{}
	swapOrchestrator(t, stub)
	swapUI(t, rec)

	_, err := execute(t, "",
		"prep", tempTestFile(t), "--method", "TestAdd", "--debugger", "gdb")
	require.NoError(t, err)

	assert.Equal(t, m.DebuggerGDB, stub.args.Debugger)
	assert.Contains(t, rec.stages, controller.StageFallback)
}

func TestPrepCmd_MissingFile(t *testing.T) {
	swapOrchestrator(t, &stubOrchestrator{})
	swapUI(t, &recordingUI{})

	_, err := execute(t, "",
		"prep", filepath.Join(t.TempDir(), "gone_test.go"), "--method", "TestAdd")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot prep")
}

func TestPrepCmd_UnknownDebugger(t *testing.T) {
	swapOrchestrator(t, &stubOrchestrator{})
	swapUI(t, &recordingUI{})

	_, err := execute(t, "",
		"prep", "/proj/h_test.go", "--method", "TestAdd", "--debugger", "windbg")
	require.Error(t, err)
}

func TestPrepSetupCmd(t *testing.T) {
	stub := &stubOrchestrator{}
	swapOrchestrator(t, stub)

	_, err := execute(t, "", "prep-setup", "/proj/h_test.go", "--debugger", "gdb")
	require.NoError(t, err)

	assert.Equal(t, m.Path("/proj/h_test.go"), stub.fixtureFile)
	assert.Equal(t, m.DebuggerGDB, stub.fixtureKind)
}
