package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/vitalog/internal/cli"
	"github.com/terraincognita07/vitalog/internal/notify"
	"github.com/terraincognita07/vitalog/internal/session"
)

func newRegisterCommand(application *app) *cobra.Command {
	var name string
	var age int
	var gender string

	cmd := &cobra.Command{
		Use:   "register <email>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := cli.PromptPassword("Password")
			if err != nil {
				return err
			}

			ctx, cancel := commandContext()
			defer cancel()
			if err := application.sessions.SignUp(ctx, name, args[0], password, age, gender); err != nil {
				application.notifier.HandleAPIError(err, "Registration failed.")
				return err
			}

			// Registration does not authenticate; mirror the web flow
			// and send the user to sign in.
			application.notifier.Success("Account created. Sign in with `vitalog login`.", notify.Options{})
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().IntVar(&age, "age", 0, "age (optional)")
	cmd.Flags().StringVar(&gender, "gender", "", "gender (optional)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newLoginCommand(application *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login <email>",
		Short: "Sign in and persist the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := cli.PromptPassword("Password")
			if err != nil {
				return err
			}

			ctx, cancel := commandContext()
			defer cancel()
			if !application.sessions.SignIn(ctx, args[0], password) {
				application.notifier.Error("Sign-in failed. Check your credentials.", notify.Options{})
				return fmt.Errorf("sign-in failed for %s", args[0])
			}

			user, _ := application.sessions.CurrentUser()
			application.notifier.Success("Signed in as "+user.Email, notify.Options{})
			return nil
		},
	}
}

func newLogoutCommand(application *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear all locally cached data",
		RunE: func(cmd *cobra.Command, args []string) error {
			application.sessions.SignOut()
			application.notifier.Info("Signed out.", notify.Options{})
			return nil
		},
	}
}

func newStatusCommand(application *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show connectivity and which features are unlocked",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext()
			defer cancel()

			reachable := application.client.Ping(ctx, 0) == nil
			state := application.sessions.Restore(ctx)

			fmt.Printf("Server:  %s (%s)\n", application.client.BaseURL(), reachabilityLabel(reachable))
			if state == session.StateAuthenticated {
				user, _ := application.sessions.CurrentUser()
				fmt.Printf("Session: signed in as %s\n", user.Email)
			} else {
				fmt.Println("Session: signed out")
			}

			fmt.Println("\nFeatures:")
			fmt.Println("  search, interactions        available")
			if state == session.StateAuthenticated {
				fmt.Println("  tracking, logs, reports     available")
			} else {
				fmt.Println("  tracking, logs, reports     locked (sign in)")
			}
			return nil
		},
	}
}

func reachabilityLabel(reachable bool) string {
	if reachable {
		return "reachable"
	}
	return "unreachable"
}
