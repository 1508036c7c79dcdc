package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/app"
	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/config"
	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool
	stateDir   string
	cmdTimeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "scon",
	Short: "Stateful container management CLI",
	Long: `scon manages stateful containers on top of docker or podman.

A stateful container is a named container whose filesystem survives
stop/start cycles:
  - start runs an instance from the base image (or the latest snapshot)
  - stop commits the instance to <name>:v<n> before it goes away
  - every instance and snapshot is recorded in the container's history

State is kept in stateful_containers.json and scon_config.json in the
state directory (the current directory by default).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Setup(verbose, jsonOutput, os.Stderr)
		return configureApp(cmd)
	},
}

// Execute runs the command tree and reports a failure on stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		logging.UserError("%v", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().StringVar(&stateDir, "state-dir", config.DefaultStateDir, "Directory holding the registry and settings files")
	rootCmd.PersistentFlags().DurationVar(&cmdTimeout, "timeout", 0, "Timeout for each container runtime command (0 for none)")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// configureApp applies the global flags to the default application.
func configureApp(cmd *cobra.Command) error {
	flags := cmd.Flags()

	if flags.Changed("state-dir") {
		p, err := config.NewPaths(stateDir)
		if err != nil {
			return errors.ConfigError("invalid --state-dir", err)
		}
		app.Default.Paths = p
	}

	if flags.Changed("timeout") {
		if cmdTimeout < 0 {
			return errors.ValidationError("--timeout cannot be negative")
		}
		app.Default.Timeout = cmdTimeout
	}

	logging.Debug("state directory", "path", app.Default.Paths.StateDir)
	return nil
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
)
