package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/tui"
)

var stopCmd = &cobra.Command{
	Use:   "stop <name>",
	Short: "Stop a stateful container and save its state",
	Long: `Stop a stateful container and save its state.

The instance is stopped, committed to <name>:v<n> and renamed to
<name>_stopped_<timestamp> so the name is free for the next start.

When running in a terminal you are asked to confirm unless --force is
given.`,
	Args: cobra.ExactArgs(1),
	RunE: runStop,
}

var stopForce bool

// Replaced in tests.
var confirmStop = tui.RunConfirm

func init() {
	stopCmd.Flags().BoolVarP(&stopForce, "force", "f", false, "Do not ask for confirmation")
	rootCmd.AddCommand(stopCmd)
}

func runStop(cmd *cobra.Command, args []string) error {
	name := args[0]

	mgr, err := manager()
	if err != nil {
		return err
	}

	if !stopForce && isInteractive() {
		if _, err := mgr.Get(name); err != nil {
			return err
		}
		ok, err := confirmStop(fmt.Sprintf("Stop stateful container %s? Its state will be saved as a new snapshot.", name))
		if err != nil {
			return fmt.Errorf("confirmation prompt failed: %w", err)
		}
		if !ok {
			logInfo("Operation aborted.")
			return nil
		}
	}

	logInfo("Stopping stateful container %s...", name)
	res, err := mgr.Stop(commandContext(), name)
	if err != nil {
		return err
	}

	if res.RenameErr != nil {
		logWarning("Could not rename the stopped container %s: %v", name, res.RenameErr)
		logWarning("Rename or remove it before the next start")
	} else {
		logInfo("Stopped container renamed to %s", res.RenamedTo)
	}

	logSuccess("Stopped and saved state of %s as %s", name, res.Tag)
	return nil
}
