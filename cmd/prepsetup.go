package cmd

import (
	"github.com/spf13/cobra"

	m "github.com/mouse-blink/stakeout/internal/model"
)

var prepSetupDebugger string

func init() {
	prepSetupCmd.Flags().StringVarP(&prepSetupDebugger, "debugger", "d", "", "debugger kind: delve or gdb")

	rootCmd.AddCommand(prepSetupCmd)
}

var prepSetupCmd = &cobra.Command{
	Use:   "prep-setup [test file]",
	Short: "Inject a plain trace statement into the fixture setup method",
	Long: `Prep-setup injects a bare trace-entry statement at the start of the
fixture setup method, without neutralization, breakpoint planning or a
preflight run. Useful when the direct path is known not to work and the
session should simply start at fixture setup.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := resolveDebugger(prepSetupDebugger)
		if err != nil {
			return err
		}

		return orchestrator.PrepareFixtureOnly(m.Path(args[0]), kind)
	},
}
