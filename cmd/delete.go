package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/lifecycle"
	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/registry"
	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/tui"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <name> [entry-only|all-snapshots|keep-latest-snapshot]",
	Short: "Delete a stateful container",
	Long: `Delete a stopped stateful container.

Options:
  entry-only            remove the registry entry, keep every snapshot image
  all-snapshots         also remove every snapshot image
  keep-latest-snapshot  also remove every snapshot image but the newest

The base image is never removed. Without an option an interactive picker is
shown when running in a terminal.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runDelete,
}

var deleteForce bool

// Interactive prompts, replaced in tests.
var (
	pickDeleteOption = tui.RunPicker
	confirmDelete    = tui.RunConfirm
)

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Do not ask for confirmation")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	name := args[0]

	mgr, err := manager()
	if err != nil {
		return err
	}

	var opt lifecycle.DeleteOption
	if len(args) == 2 {
		opt, err = lifecycle.ParseDeleteOption(args[1])
		if err != nil {
			return errors.ValidationError(err.Error())
		}
	} else {
		if !isInteractive() {
			return errors.ValidationError(fmt.Sprintf("missing delete option: use one of %s", deleteOptionList()))
		}

		c, err := mgr.Get(name)
		if err != nil {
			return err
		}

		result, err := pickDeleteOption(c)
		if err != nil {
			return fmt.Errorf("delete option picker failed: %w", err)
		}
		if result.Action != tui.ActionSelect {
			logInfo("Operation aborted.")
			return nil
		}
		opt = result.Option
	}

	if !deleteForce && isInteractive() {
		ok, err := confirmDelete(fmt.Sprintf("Delete stateful container %s (%s)? This cannot be undone.", name, opt))
		if err != nil {
			return fmt.Errorf("confirmation prompt failed: %w", err)
		}
		if !ok {
			logInfo("Operation aborted.")
			return nil
		}
	}

	res, err := mgr.Delete(commandContext(), name, opt)
	if err != nil {
		return err
	}

	for _, id := range res.RemovedInstances {
		logInfo("Removed stopped instance %s", registry.ShortID(id))
	}
	for _, ref := range res.RemovedImages {
		logInfo("Removed image %s", ref)
	}
	for _, f := range res.Failures {
		logWarning("Failed to remove %s: %v", f.Ref, f.Err)
	}
	if res.KeptImage != "" {
		logInfo("Kept latest snapshot %s", res.KeptImage)
	}

	logSuccess("Deleted stateful container %s", name)
	return nil
}

func deleteOptionList() string {
	names := make([]string, len(lifecycle.DeleteOptions))
	for i, opt := range lifecycle.DeleteOptions {
		names[i] = opt.String()
	}
	return strings.Join(names, ", ")
}
