package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show an overview of all monitored targets",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			health, err := apiClient.Health(ctx)
			if err != nil {
				return fmt.Errorf("server unreachable: %w", err)
			}

			targets, err := apiClient.Targets().List(ctx)
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(map[string]interface{}{
					"server":  health,
					"targets": targets,
				})
			}

			counts := map[string]int{}
			for _, t := range targets {
				counts[t.Status]++
			}
			fmt.Printf("Server: %s (version %s, uptime %s)\n", health.Status, health.Version, health.Uptime)
			fmt.Printf("Targets: %d total, %d up, %d down, %d degraded, %d unknown\n\n",
				len(targets), counts["up"], counts["down"], counts["degraded"], counts["unknown"])

			table := NewTable("NAME", "TYPE", "STATUS", "ENABLED", "INTERVAL", "URL")
			for _, t := range targets {
				table.AddRow(
					truncate(t.Name, 30),
					t.CheckKind,
					formatStatus(t.Status),
					formatBool(t.Enabled),
					fmt.Sprintf("%ds", t.IntervalSec),
					truncate(t.URL, 50),
				)
			}
			table.Render()
			return nil
		},
	}
}
