package cmd

import (
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/lifecycle"
	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/registry"
)

var startCmd = &cobra.Command{
	Use:   "start <name>",
	Short: "Start a stateful container",
	Long: `Start a stateful container.

Runs a detached instance called <name> from the base image, or from the
newest snapshot with --latest, and records it in the history. If the
recorded instance is already running nothing happens.`,
	Args: cobra.ExactArgs(1),
	RunE: runStart,
}

var startLatest bool

func init() {
	startCmd.Flags().BoolVar(&startLatest, "latest", false, "Start from the latest snapshot instead of the base image")
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	name := args[0]

	mgr, err := manager()
	if err != nil {
		return err
	}

	res, err := mgr.Start(commandContext(), name, lifecycle.StartOptions{FromLatestSnapshot: startLatest})
	if err != nil {
		printConflictHints(mgr, name, err)
		return err
	}

	if res.UpToDate {
		logInfo("Stateful container %s is already running (%s)", name, registry.ShortID(res.ContainerID))
		return nil
	}

	logSuccess("Started stateful container %s from %s (%s)", name, res.Image, registry.ShortID(res.ContainerID))
	return nil
}
