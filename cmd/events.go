package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/app"
)

var eventsCmd = &cobra.Command{
	Use:   "events [name]",
	Short: "Display the audit trail",
	Long: `Display the audit trail of lifecycle operations.

Every create, start, stop, snapshot, delete and configuration change is
recorded in scon_events.jsonl in the state directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEvents,
}

var eventsJSON bool

func init() {
	eventsCmd.Flags().BoolVar(&eventsJSON, "jsonl", false, "Output events as JSON lines")
	rootCmd.AddCommand(eventsCmd)
}

func runEvents(cmd *cobra.Command, args []string) error {
	var name string
	if len(args) == 1 {
		name = args[0]
	}

	events, err := app.Default.Audit().Events(name)
	if err != nil {
		return fmt.Errorf("failed to read audit log: %w", err)
	}

	if len(events) == 0 {
		if name != "" {
			logInfo("No events found for %s", name)
		} else {
			logInfo("No events found")
		}
		return nil
	}

	out := cmd.OutOrStdout()
	for _, e := range events {
		if eventsJSON {
			data, err := json.Marshal(e)
			if err != nil {
				return fmt.Errorf("failed to marshal event: %w", err)
			}
			fmt.Fprintln(out, string(data))
			continue
		}

		ts := e.Timestamp.UTC().Format("2006-01-02 15:04:05")
		container := e.Container
		if container == "" {
			container = "-"
		}
		if e.Details != "" {
			fmt.Fprintf(out, "[%s] %-8s %s (%s)\n", ts, e.Type, container, e.Details)
		} else {
			fmt.Fprintf(out, "[%s] %-8s %s\n", ts, e.Type, container)
		}
	}

	return nil
}
