package cmd

import (
	"github.com/spf13/cobra"

	m "github.com/mouse-blink/stakeout/internal/model"
)

var sourceMethod string
var sourceFailLine int

func init() {
	sourceCmd.Flags().StringVarP(&sourceMethod, "method", "m", "", "method to extract (required)")
	sourceCmd.Flags().IntVarP(&sourceFailLine, "fail-line", "l", 0, "failing line; truncates and marks the output")

	if err := sourceCmd.MarkFlagRequired("method"); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(traceCmd)
	rootCmd.AddCommand(crashCmd)
	rootCmd.AddCommand(errorCmd)
	rootCmd.AddCommand(sourceCmd)
}

var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Rebuild a clean execution log from raw trace output on stdin",
	Long: `Trace reads the raw stream produced by an instrumented test run and
rebuilds a readable record: the failure summary verbatim, then a
recolorized log of the lines that actually executed. Raw panic
tracebacks inside the stream are dropped as redundant.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readAll(cmd.InOrStdin())
		if err != nil {
			return err
		}

		cmd.Print(reconstructor.Reconstruct(text))

		return nil
	},
}

var crashCmd = &cobra.Command{
	Use:   "crash",
	Short: "Colorize a crash traceback on stdin from its last frame onward",
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readAll(cmd.InOrStdin())
		if err != nil {
			return err
		}

		cmd.Print(reconstructor.ColorizeCrash(text))

		return nil
	},
}

var errorCmd = &cobra.Command{
	Use:   "error",
	Short: "Colorize a failure summary on stdin",
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readAll(cmd.InOrStdin())
		if err != nil {
			return err
		}

		cmd.Print(reconstructor.ColorizeError(text))

		return nil
	},
}

var sourceCmd = &cobra.Command{
	Use:   "source [test file]",
	Short: "Show a method's highlighted source with the failing line marked",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.Println(sourceView.Extract(m.Path(args[0]), sourceMethod, sourceFailLine))

		return nil
	},
}
