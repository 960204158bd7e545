package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mouse-blink/stakeout/internal/controller"
	"github.com/mouse-blink/stakeout/internal/domain"
	m "github.com/mouse-blink/stakeout/internal/model"
)

var prepMethod string
var prepFailLine int
var prepDebugger string
var prepErrorFile string
var prepErrorLine int

func init() {
	prepCmd.Flags().StringVarP(&prepMethod, "method", "m", "", "failing test method name (required)")
	prepCmd.Flags().IntVarP(&prepFailLine, "fail-line", "l", 0, "failing line number in the test file")
	prepCmd.Flags().StringVarP(&prepDebugger, "debugger", "d", "", "debugger kind: delve or gdb")
	prepCmd.Flags().StringVar(&prepErrorFile, "error-file", "", "user source file where the error originates")
	prepCmd.Flags().IntVar(&prepErrorLine, "error-line", 0, "line in the user source file where the error originates")

	if err := prepCmd.MarkFlagRequired("method"); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(prepCmd)
}

var prepCmd = &cobra.Command{
	Use:   "prep [test file]",
	Short: "Rewrite a test file into a debugger-ready harness",
	Long: `Prep rewrites the given test file in place: timeout guards are removed,
watchdog arming is disabled, a trace-entry statement is injected at the
start of the failing method, and a post-mortem hook replaces the bare
re-raise in the runner scaffold. The rewrite is then preflighted; when
the dry run cannot reach the method, the injection falls back to the
fixture setup method instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := resolveDebugger(prepDebugger)
		if err != nil {
			return err
		}

		if _, statErr := fsAdapter.FileInfo(m.Path(args[0])); statErr != nil {
			return fmt.Errorf("cannot prep %s: %w", args[0], statErr)
		}

		if names, skipErr := storeAdapter.ReadSkipList(); skipErr == nil && slices.Contains(names, prepMethod) {
			logger.Warn().Str("method", prepMethod).Msg("method is on the manual skip list")
		}

		if err := ui.Start(); err != nil {
			return err
		}
		defer ui.Close()

		ui.DisplayStage(controller.StageNeutralize, args[0])
		ui.DisplayStage(controller.StageInject, prepMethod)
		ui.DisplayStage(controller.StagePreflight, args[0])

		result, err := orchestrator.Prepare(domain.PrepArgs{
			File:          m.Path(args[0]),
			Method:        prepMethod,
			FailLine:      prepFailLine,
			Debugger:      kind,
			UserErrorFile: m.Path(prepErrorFile),
			UserErrorLine: prepErrorLine,
		})
		if err != nil {
			return err
		}

		if result.Mode == m.InjectFixtureFallback {
			ui.DisplayStage(controller.StageFallback, result.Reason)
		}

		ui.DisplayStage(controller.StageDone, "")
		ui.DisplayPrepOutcome(result.Mode, result.Requests, result.Reason)

		return nil
	},
}

// resolveDebugger maps the flag value to a debugger kind, falling back to
// the configured default when the flag is empty.
func resolveDebugger(name string) (m.DebuggerKind, error) {
	if name == "" {
		name = viper.GetString("debugger")
	}

	switch m.DebuggerKind(name) {
	case m.DebuggerDelve:
		return m.DebuggerDelve, nil
	case m.DebuggerGDB:
		return m.DebuggerGDB, nil
	}

	return "", fmt.Errorf("unknown debugger %q (want delve or gdb)", name)
}

func defaultDebugger() m.DebuggerKind {
	return m.DebuggerDelve
}
