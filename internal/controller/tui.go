package controller

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	m "github.com/mouse-blink/stakeout/internal/model"
	"golang.org/x/term"
)

var (
	stageStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	detailStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	fallbackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	bpStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)

// TUI implements UI for interactive terminals: styled stage output and a
// Bubble Tea list for long frame tables.
type TUI struct {
	output io.Writer
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start initializes the UI.
func (t *TUI) Start() error {
	return nil
}

// Close finalizes the UI.
func (t *TUI) Close() {

}

// DisplayStage prints one pipeline stage with its detail.
func (t *TUI) DisplayStage(stage Stage, detail string) {
	line := stageStyle.Render(fmt.Sprintf("● %s", stage))
	if detail != "" {
		line += " " + detailStyle.Render(detail)
	}

	_, _ = fmt.Fprintln(t.output, line)
}

// DisplayPrepOutcome prints which injection strategy won and the planned
// breakpoints.
func (t *TUI) DisplayPrepOutcome(mode m.InjectionMode, requests []m.BreakpointRequest, reason string) {
	switch mode {
	case m.InjectDirect:
		_, _ = fmt.Fprintln(t.output, okStyle.Render("prepared (direct injection)"))
	case m.InjectFixtureFallback:
		_, _ = fmt.Fprintln(t.output, fallbackStyle.Render("prepared (fixture fallback: "+reason+")"))
	}

	for _, req := range requests {
		_, _ = fmt.Fprintln(t.output, bpStyle.Render(fmt.Sprintf("  breakpoint %s:%d", req.File, req.Line)))
	}
}

// DisplayFrames shows the triaged frames, paginating through Bubble Tea
// when the list does not fit the terminal.
func (t *TUI) DisplayFrames(frames []m.TraceFrame, classes []m.FrameClass) error {
	model := newFramesModel(frames, classes)

	if f, ok := t.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model.width = width
			model.height = height
		}
	}

	if !model.needsPagination() {
		_, err := fmt.Fprint(t.output, model.View())

		return err
	}

	program := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}
