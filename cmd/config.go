package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/app"
	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/audit"
	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/config"
	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/logging"
	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/runtime"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change scon settings",
	Long: `Show or change scon settings.

Keys:
  use_sudo           run every runtime command through sudo (true/false)
  container_runtime  docker or podman`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	if err := app.Default.EnsureStateDir(); err != nil {
		return err
	}

	settings, err := app.Default.Settings().Set(key, value)
	if err != nil {
		return err
	}

	current, _ := settings.Get(key)
	if err := app.Default.Audit().LogEvent(audit.EventConfig, "", key+"="+current); err != nil {
		logging.Warn("failed to record audit event", "error", err)
	}

	logSuccess("Configuration updated: %s = %s", key, current)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	if err := app.Default.EnsureStateDir(); err != nil {
		return err
	}

	settings, err := app.Default.Settings().Load()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Current configuration:")
	for _, key := range []string{config.KeyUseSudo, config.KeyContainerRuntime} {
		value, _ := settings.Get(key)
		fmt.Fprintf(out, "  %s: %s\n", key, value)
	}

	installed := runtime.Installed()
	names := make([]string, len(installed))
	for i, t := range installed {
		names[i] = string(t)
	}
	if len(names) == 0 {
		names = []string{"(none)"}
	}
	fmt.Fprintf(out, "\nRuntimes found in PATH: %s\n", strings.Join(names, ", "))
	return nil
}
