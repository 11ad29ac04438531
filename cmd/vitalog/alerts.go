package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/vitalog/internal/notify"
)

func newAlertsCommand(application *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "View server-generated alerts",
	}
	cmd.AddCommand(
		newAlertsListCommand(application),
		newAlertsReadCommand(application),
		newAlertsTestCommand(application),
	)
	return cmd
}

func newAlertsListCommand(application *app) *cobra.Command {
	var unreadOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List alerts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext()
			defer cancel()
			if err := application.requireAuth(ctx); err != nil {
				return err
			}

			alerts, err := application.client.ListAlerts(ctx)
			if err != nil {
				application.notifier.HandleAPIError(err, "Could not load alerts.")
				return err
			}

			shown := 0
			for _, alert := range alerts {
				if unreadOnly && alert.Read {
					continue
				}
				marker := " "
				if !alert.Read {
					marker = "*"
				}
				fmt.Printf("%s #%d [%s] %s - %s\n", marker, alert.ID, alert.Severity, alert.Title, alert.Message)
				shown++
			}
			if shown == 0 {
				fmt.Println("No alerts.")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&unreadOnly, "unread", false, "only unread alerts")
	return cmd
}

func newAlertsReadCommand(application *app) *cobra.Command {
	return &cobra.Command{
		Use:   "read <id>",
		Short: "Mark an alert as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}

			ctx, cancel := commandContext()
			defer cancel()
			if err := application.requireAuth(ctx); err != nil {
				return err
			}

			if _, err := application.client.MarkAlertRead(ctx, id); err != nil {
				application.notifier.HandleAPIError(err, "Could not mark the alert as read.")
				return err
			}
			application.notifier.Success("Marked as read.", notify.Options{})
			return nil
		},
	}
}

func newAlertsTestCommand(application *app) *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Ask the server to generate a test alert",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext()
			defer cancel()
			if err := application.requireAuth(ctx); err != nil {
				return err
			}

			alert, err := application.client.GenerateTestAlert(ctx)
			if err != nil {
				application.notifier.HandleAPIError(err, "Could not generate a test alert.")
				return err
			}
			application.notifier.Info(fmt.Sprintf("Test alert #%d created.", alert.ID), notify.Options{})
			return nil
		},
	}
}
