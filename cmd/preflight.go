package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	m "github.com/mouse-blink/stakeout/internal/model"
)

var preflightMethod string

func init() {
	preflightCmd.Flags().StringVarP(&preflightMethod, "method", "m", "", "test method name (required)")

	if err := preflightCmd.MarkFlagRequired("method"); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(preflightCmd)
}

var preflightCmd = &cobra.Command{
	Use:   "preflight [test file]",
	Short: "Dry-run a test file to check the target method is reachable",
	Long: `Preflight checks whether a rewritten test file can actually reach the
target method: it scans the file for a suite declaring the method,
builds the package, and runs the binary in preflight mode. The command
exits zero when the method is reachable and prints the blocking reason
otherwise.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ok, reason := preflight.Check(m.Path(args[0]), preflightMethod)
		if ok {
			cmd.Println("ok")
			return nil
		}

		cmd.Println(reason)
		cmd.SilenceUsage = true

		return errPreflightFailed
	},
}

var errPreflightFailed = errors.New("preflight failed")
