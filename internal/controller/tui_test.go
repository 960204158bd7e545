package controller

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/stakeout/internal/model"
)

func sampleFrames() ([]m.TraceFrame, []m.FrameClass) {
	return []m.TraceFrame{
			{File: "/proj/calc_test.go", Line: 10, Func: "TestAdd"},
			{File: "/proj/calc.go", Line: 42, Func: "Add"},
		}, []m.FrameClass{
			m.FrameTest,
			m.FrameUser,
		}
}

func TestTUI_DisplayStage(t *testing.T) {
	buf := &bytes.Buffer{}
	ui := NewTUI(buf)

	ui.DisplayStage(StagePreflight, "h_test.go")

	assert.Contains(t, buf.String(), "preflight")
	assert.Contains(t, buf.String(), "h_test.go")
}

func TestTUI_DisplayPrepOutcome(t *testing.T) {
	buf := &bytes.Buffer{}
	ui := NewTUI(buf)

	ui.DisplayPrepOutcome(m.InjectFixtureFallback, []m.BreakpointRequest{{File: "/a.go", Line: 9}}, "setup failed")

	out := buf.String()
	assert.Contains(t, out, "fixture fallback")
	assert.Contains(t, out, "/a.go:9")
}

func TestTUI_DisplayFrames_ShortListRendersDirectly(t *testing.T) {
	buf := &bytes.Buffer{}
	ui := NewTUI(buf)

	frames, classes := sampleFrames()

	err := ui.DisplayFrames(frames, classes)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "calc_test.go:10 in TestAdd")
	assert.Contains(t, out, "calc.go:42 in Add")
}

func TestFramesModel_NeedsPagination(t *testing.T) {
	frames, classes := sampleFrames()

	model := newFramesModel(frames, classes)
	model.height = 20
	assert.False(t, model.needsPagination())

	model.height = 3
	assert.True(t, model.needsPagination())
}

func TestFramesModel_View_Empty(t *testing.T) {
	model := newFramesModel(nil, nil)

	assert.Equal(t, "no relevant frames\n", model.View())
}

func TestFramesModel_QuitKeys(t *testing.T) {
	frames, classes := sampleFrames()
	model := newFramesModel(frames, classes)

	for _, key := range []string{"q", "esc", "ctrl+c"} {
		_, cmd := model.Update(keyMsg(key))
		require.NotNil(t, cmd, key)
		assert.Equal(t, tea.Quit(), cmd(), key)
	}
}

func TestFramesModel_WindowResize(t *testing.T) {
	frames, classes := sampleFrames()
	model := newFramesModel(frames, classes)

	updated, _ := model.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	fm, ok := updated.(framesModel)
	require.True(t, ok)
	assert.Equal(t, 120, fm.width)
	assert.Equal(t, 40, fm.height)
}

func TestFrameItem_FilterValue(t *testing.T) {
	item := frameItem{frame: m.TraceFrame{File: "/proj/calc.go", Func: "Add"}}

	assert.Equal(t, "/proj/calc.go Add", item.FilterValue())
}

func TestTruncateToWidth(t *testing.T) {
	assert.Equal(t, "short", truncateToWidth("short", 40))
	assert.Equal(t, "", truncateToWidth("anything", 0))

	long := strings.Repeat("a", 50)
	truncated := truncateToWidth(long, 10)
	assert.True(t, strings.HasSuffix(truncated, "…"))
	assert.LessOrEqual(t, len([]rune(truncated)), 10)
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}
