package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SergioM098/Monitoring-proyect/pkg/client"
)

func newIncidentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "incident",
		Aliases: []string{"incidents"},
		Short:   "Inspect incident history",
	}

	cmd.AddCommand(newIncidentListCmd())

	return cmd
}

func newIncidentListCmd() *cobra.Command {
	var page, pageSize int
	var targetID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List incidents, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			opts := &client.ListOptions{Page: page, PageSize: pageSize}

			var result *client.Page[client.Incident]
			var err error
			if targetID != "" {
				result, err = apiClient.Incidents().ListByTarget(ctx, targetID, opts)
			} else {
				result, err = apiClient.Incidents().List(ctx, opts)
			}
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(result)
			}

			table := NewTable("ID", "TARGET", "STATUS", "STARTED", "RESOLVED", "DURATION")
			for _, inc := range result.Data {
				duration := "ongoing"
				if inc.DurationMs != nil {
					duration = formatMillis(*inc.DurationMs)
				}
				table.AddRow(
					inc.ID,
					inc.TargetID,
					formatStatus(inc.Status),
					formatTime(inc.StartedAt),
					formatTimePtr(inc.ResolvedAt),
					duration,
				)
			}
			table.Render()
			fmt.Printf("\nPage %d of %d (%d incidents)\n", result.Page, result.TotalPages, result.TotalItems)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "results per page")
	cmd.Flags().StringVar(&targetID, "target", "", "only incidents for this target ID")

	return cmd
}
