package cmd

import (
	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create <name> <image>",
	Short: "Register a new stateful container",
	Long: `Register a new stateful container with a base image.

Nothing is started; the container has an empty history until the first
start. The name must be a valid image repository name, since snapshots are
tagged <name>:v<n>.`,
	Args: cobra.ExactArgs(2),
	RunE: runCreate,
}

func init() {
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	name, image := args[0], args[1]

	mgr, err := manager()
	if err != nil {
		return err
	}

	if _, err := mgr.Create(commandContext(), name, image); err != nil {
		printConflictHints(mgr, name, err)
		return err
	}

	logSuccess("Stateful container %s created with base image %s", name, image)
	return nil
}
