package cmd

import (
	"github.com/spf13/cobra"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot <name>",
	Short: "Commit a running stateful container without stopping it",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshot,
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	name := args[0]

	mgr, err := manager()
	if err != nil {
		return err
	}

	res, err := mgr.Snapshot(commandContext(), name)
	if err != nil {
		return err
	}

	logSuccess("Saved state of %s as %s", name, res.Tag)
	return nil
}
