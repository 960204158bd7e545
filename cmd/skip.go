package cmd

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(skipCmd)
}

var skipCmd = &cobra.Command{
	Use:   "skip",
	Short: "List the test methods on the manual skip list",
	Long: `Skip prints the persisted manual skip list, one method name per line.
The list is edited by external tooling; test selection reads it to keep
known-broken methods out of a run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := storeAdapter.ReadSkipList()
		if err != nil {
			return err
		}

		for _, name := range names {
			cmd.Println(name)
		}

		return nil
	},
}
