package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/app"
	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/runtime"
)

var runtimeCmd = &cobra.Command{
	Use:   "runtime",
	Short: "Show container runtime information",
	Long: `Display the configured container runtime and whether it is usable.

scon drives one of:
  - docker:  Docker Engine
  - podman:  Podman

Select one with: scon config set container_runtime <docker|podman>`,
	Args: cobra.NoArgs,
	RunE: runRuntime,
}

func init() {
	rootCmd.AddCommand(runtimeCmd)
}

func runRuntime(cmd *cobra.Command, args []string) error {
	rt, err := app.Default.LoadRuntime()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Active runtime: %s\n", rt.Name())

	if r, ok := rt.(runtime.CommandRenderer); ok {
		fmt.Fprintf(out, "Command prefix: %s\n", r.CommandLine())
	}

	version, err := rt.Version(commandContext())
	if err != nil {
		fmt.Fprintf(out, "Status:         unavailable (%v)\n", err)
		return nil
	}
	fmt.Fprintf(out, "Status:         available (%s)\n", version)
	return nil
}
