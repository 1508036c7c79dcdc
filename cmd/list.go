package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/app"
	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/tui"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List stateful containers with their history",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	reg := app.Default.Store().Load()
	fmt.Fprint(cmd.OutOrStdout(), tui.RenderContainers(reg))
	return nil
}
