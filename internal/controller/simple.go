package controller

import (
	"bytes"
	"fmt"

	m "github.com/mouse-blink/stakeout/internal/model"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// SimpleUI implements UI using cobra Command's Println.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start() error {
	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close() {

}

// DisplayStage prints one pipeline stage with its detail.
func (s *SimpleUI) DisplayStage(stage Stage, detail string) {
	if detail == "" {
		s.printf("[%s]\n", stage)

		return
	}

	s.printf("[%s] %s\n", stage, detail)
}

// DisplayPrepOutcome prints which injection strategy won and the planned
// breakpoints.
func (s *SimpleUI) DisplayPrepOutcome(mode m.InjectionMode, requests []m.BreakpointRequest, reason string) {
	switch mode {
	case m.InjectDirect:
		s.printf("prepared (direct injection)\n")
	case m.InjectFixtureFallback:
		s.printf("prepared (fixture fallback: %s)\n", reason)
	}

	for _, req := range requests {
		s.printf("  breakpoint %s:%d\n", req.File, req.Line)
	}
}

// DisplayFrames prints the triaged frames as a table.
func (s *SimpleUI) DisplayFrames(frames []m.TraceFrame, classes []m.FrameClass) error {
	if len(frames) == 0 {
		s.printf("no relevant frames\n")

		return nil
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Class", "File", "Line", "Function"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_LEFT,
	})

	for i, frame := range frames {
		class := ""
		if i < len(classes) {
			class = classes[i].String()
		}

		table.Append([]string{class, string(frame.File), fmt.Sprintf("%d", frame.Line), frame.Func})
	}

	table.SetFooter([]string{"", "", "", fmt.Sprintf("%d frames", len(frames))})
	table.Render()

	s.printf("\n%s", tableBuffer.String())

	return nil
}

func (s *SimpleUI) printf(format string, args ...any) {
	s.cmd.Printf(format, args...)
}
