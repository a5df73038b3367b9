package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SergioM098/Monitoring-proyect/pkg/client"
)

func newTargetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "target",
		Aliases: []string{"targets"},
		Short:   "Manage monitored targets",
	}

	cmd.AddCommand(newTargetListCmd())
	cmd.AddCommand(newTargetGetCmd())
	cmd.AddCommand(newTargetCreateCmd())
	cmd.AddCommand(newTargetUpdateCmd())
	cmd.AddCommand(newTargetDeleteCmd())
	cmd.AddCommand(newTargetEnableCmd())
	cmd.AddCommand(newTargetDisableCmd())
	cmd.AddCommand(newTargetCheckCmd())
	cmd.AddCommand(newTargetChecksCmd())

	return cmd
}

func newTargetListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all targets",
		RunE: func(cmd *cobra.Command, args []string) error {
			targets, err := apiClient.Targets().List(context.Background())
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(targets)
			}

			table := NewTable("ID", "NAME", "TYPE", "STATUS", "ENABLED", "INTERVAL", "URL")
			for _, t := range targets {
				table.AddRow(
					t.ID,
					truncate(t.Name, 30),
					t.CheckKind,
					formatStatus(t.Status),
					formatBool(t.Enabled),
					fmt.Sprintf("%ds", t.IntervalSec),
					truncate(t.URL, 40),
				)
			}
			table.Render()
			return nil
		},
	}
}

func newTargetGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := apiClient.Targets().Get(context.Background(), args[0])
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(t)
			}

			fmt.Printf("ID:          %s\n", t.ID)
			fmt.Printf("Name:        %s\n", t.Name)
			fmt.Printf("URL:         %s\n", t.URL)
			fmt.Printf("Check kind:  %s\n", t.CheckKind)
			fmt.Printf("Status:      %s\n", formatStatus(t.Status))
			fmt.Printf("Enabled:     %s\n", formatBool(t.Enabled))
			fmt.Printf("Interval:    %ds\n", t.IntervalSec)
			fmt.Printf("Threshold:   %s\n", formatMillis(t.DegradedThresholdMs))
			fmt.Printf("Public:      %s\n", formatBool(t.Public))
			if t.Slug != nil {
				fmt.Printf("Slug:        %s\n", *t.Slug)
			}
			fmt.Printf("Created:     %s\n", formatTime(t.CreatedAt))
			return nil
		},
	}
}

func newTargetCreateCmd() *cobra.Command {
	var req client.CreateTargetRequest
	var disabled, public bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new target",
		RunE: func(cmd *cobra.Command, args []string) error {
			if disabled {
				f := false
				req.Enabled = &f
			}
			req.Public = public

			t, err := apiClient.Targets().Create(context.Background(), &req)
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(t)
			}
			fmt.Printf("Target %s created (%s)\n", t.Name, t.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "target name (required)")
	cmd.Flags().StringVar(&req.URL, "url", "", "address to probe (required)")
	cmd.Flags().StringVar(&req.CheckKind, "kind", "", "check kind: http, tcp, ping")
	cmd.Flags().IntVar(&req.IntervalSec, "interval", 0, "check interval in seconds")
	cmd.Flags().Int64Var(&req.DegradedThresholdMs, "threshold", 0, "degraded response time threshold in milliseconds")
	cmd.Flags().BoolVar(&disabled, "disabled", false, "create the target in a paused state")
	cmd.Flags().BoolVar(&public, "public", false, "expose the target on a public status page")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("url")

	return cmd
}

func newTargetUpdateCmd() *cobra.Command {
	var (
		name      string
		url       string
		kind      string
		interval  int
		threshold int64
		public    bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Modify a target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &client.UpdateTargetRequest{}
			if cmd.Flags().Changed("name") {
				req.Name = &name
			}
			if cmd.Flags().Changed("url") {
				req.URL = &url
			}
			if cmd.Flags().Changed("kind") {
				req.CheckKind = &kind
			}
			if cmd.Flags().Changed("interval") {
				req.IntervalSec = &interval
			}
			if cmd.Flags().Changed("threshold") {
				req.DegradedThresholdMs = &threshold
			}
			if cmd.Flags().Changed("public") {
				req.Public = &public
			}

			t, err := apiClient.Targets().Update(context.Background(), args[0], req)
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(t)
			}
			fmt.Printf("Target %s updated\n", t.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "target name")
	cmd.Flags().StringVar(&url, "url", "", "address to probe")
	cmd.Flags().StringVar(&kind, "kind", "", "check kind: http, tcp, ping")
	cmd.Flags().IntVar(&interval, "interval", 0, "check interval in seconds")
	cmd.Flags().Int64Var(&threshold, "threshold", 0, "degraded response time threshold in milliseconds")
	cmd.Flags().BoolVar(&public, "public", false, "expose the target on a public status page")

	return cmd
}

func newTargetDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a target and its history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := apiClient.Targets().Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Target %s deleted\n", args[0])
			return nil
		},
	}
}

func newTargetEnableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enable <id>",
		Short: "Resume polling for a target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := apiClient.Targets().Enable(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Target %s enabled\n", t.Name)
			return nil
		},
	}
}

func newTargetDisableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disable <id>",
		Short: "Suspend polling for a target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := apiClient.Targets().Disable(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Target %s disabled\n", t.Name)
			return nil
		},
	}
}

func newTargetCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <id>",
		Short: "Run an immediate check against a target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := apiClient.Targets().CheckNow(context.Background(), args[0])
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(result)
			}

			fmt.Printf("Status:        %s\n", formatStatus(result.Status))
			if result.ResponseTimeMs != nil {
				fmt.Printf("Response time: %s\n", formatMillis(*result.ResponseTimeMs))
			}
			if result.StatusCode != nil {
				fmt.Printf("Status code:   %d\n", *result.StatusCode)
			}
			if result.ErrorMessage != nil {
				fmt.Printf("Error:         %s\n", *result.ErrorMessage)
			}
			fmt.Printf("Checked at:    %s\n", formatTime(result.CheckedAt))
			return nil
		},
	}
}

func newTargetChecksCmd() *cobra.Command {
	var page, pageSize int

	cmd := &cobra.Command{
		Use:   "checks <id>",
		Short: "Show the check history of a target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &client.ListOptions{Page: page, PageSize: pageSize}
			result, err := apiClient.Targets().ListChecks(context.Background(), args[0], opts)
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(result)
			}

			table := NewTable("CHECKED AT", "STATUS", "RESPONSE TIME", "CODE", "ERROR")
			for _, c := range result.Data {
				rt := "-"
				if c.ResponseTimeMs != nil {
					rt = formatMillis(*c.ResponseTimeMs)
				}
				code := "-"
				if c.StatusCode != nil {
					code = fmt.Sprintf("%d", *c.StatusCode)
				}
				errMsg := ""
				if c.ErrorMessage != nil {
					errMsg = truncate(*c.ErrorMessage, 40)
				}
				table.AddRow(formatTime(c.CheckedAt), formatStatus(c.Status), rt, code, errMsg)
			}
			table.Render()
			fmt.Printf("\nPage %d of %d (%d checks)\n", result.Page, result.TotalPages, result.TotalItems)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "results per page")

	return cmd
}
