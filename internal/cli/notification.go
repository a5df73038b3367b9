package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SergioM098/Monitoring-proyect/pkg/client"
)

func newNotificationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notification",
		Aliases: []string{"notifications", "notify"},
		Short:   "Manage notification rules and inspect delivery logs",
	}

	rules := &cobra.Command{
		Use:   "rules",
		Short: "Manage notification rules",
	}
	rules.AddCommand(newRuleListCmd())
	rules.AddCommand(newRuleCreateCmd())
	rules.AddCommand(newRuleDeleteCmd())

	cmd.AddCommand(rules)
	cmd.AddCommand(newNotificationLogsCmd())

	return cmd
}

func newRuleListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List notification rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := apiClient.Notifications().ListRules(context.Background())
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(rules)
			}

			table := NewTable("ID", "KIND", "DESTINATION", "TRIGGER", "SCOPE", "ENABLED")
			for _, r := range rules {
				scope := "all targets"
				if r.TargetID != nil {
					scope = *r.TargetID
				}
				table.AddRow(
					r.ID,
					r.Kind,
					truncate(r.Destination, 40),
					r.TriggerOn,
					scope,
					formatBool(r.Enabled),
				)
			}
			table.Render()
			return nil
		},
	}
}

func newRuleCreateCmd() *cobra.Command {
	var req client.CreateRuleRequest
	var targetID string
	var disabled bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a notification rule",
		RunE: func(cmd *cobra.Command, args []string) error {
			if targetID != "" {
				req.TargetID = &targetID
			}
			if disabled {
				f := false
				req.Enabled = &f
			}

			rule, err := apiClient.Notifications().CreateRule(context.Background(), &req)
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(rule)
			}
			fmt.Printf("Rule %s created (%s -> %s)\n", rule.ID, rule.Kind, rule.Destination)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Kind, "kind", "", "notifier kind: email, whatsapp (required)")
	cmd.Flags().StringVar(&req.Destination, "destination", "", "email address or phone number (required)")
	cmd.Flags().StringVar(&req.TriggerOn, "trigger", "", "trigger on: down, degraded, both")
	cmd.Flags().StringVar(&targetID, "target", "", "restrict the rule to one target ID")
	cmd.Flags().BoolVar(&disabled, "disabled", false, "create the rule in a disabled state")
	_ = cmd.MarkFlagRequired("kind")
	_ = cmd.MarkFlagRequired("destination")

	return cmd
}

func newRuleDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a notification rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := apiClient.Notifications().DeleteRule(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Rule %s deleted\n", args[0])
			return nil
		},
	}
}

func newNotificationLogsCmd() *cobra.Command {
	var page, pageSize int

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show notification delivery attempts, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &client.ListOptions{Page: page, PageSize: pageSize}
			result, err := apiClient.Notifications().ListLogs(context.Background(), opts)
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(result)
			}

			table := NewTable("SENT AT", "TARGET", "DESTINATION", "SUCCESS", "ERROR")
			for _, l := range result.Data {
				errMsg := ""
				if l.ErrorMessage != nil {
					errMsg = truncate(*l.ErrorMessage, 40)
				}
				table.AddRow(
					formatTime(l.SentAt),
					l.TargetID,
					truncate(l.Destination, 30),
					formatBool(l.Success),
					errMsg,
				)
			}
			table.Render()
			fmt.Printf("\nPage %d of %d (%d attempts)\n", result.Page, result.TotalPages, result.TotalItems)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "results per page")

	return cmd
}
