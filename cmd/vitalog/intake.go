package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/vitalog/internal/dateutil"
	"github.com/terraincognita07/vitalog/internal/models"
	"github.com/terraincognita07/vitalog/internal/notify"
)

func newIntakeCommand(application *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "intake",
		Short: "Log and review supplement intake",
	}
	cmd.AddCommand(
		newIntakeLogCommand(application),
		newIntakeDayCommand(application),
		newIntakeTodayCommand(application),
		newIntakeDeleteCommand(application),
	)
	return cmd
}

func newIntakeLogCommand(application *app) *cobra.Command {
	var date, timeOfDay, unit, notes string
	var dosage float64

	cmd := &cobra.Command{
		Use:   "log <tracked-id>",
		Short: "Log a dose as taken (updates today's existing log if present)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			trackedID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}

			ctx, cancel := commandContext()
			defer cancel()
			if err := application.requireAuth(ctx); err != nil {
				return err
			}

			if date == "" {
				date = dateutil.DateKey(time.Now(), time.Local)
			}

			// One log per (supplement, date): look up first, then
			// choose update over create.
			existing := application.tracker.IntakeLogsForDate(ctx, date)
			for _, entry := range existing {
				if entry.TrackedSupplementID != trackedID {
					continue
				}
				patch := models.IntakeLogPatch{DosageTaken: &dosage}
				if cmd.Flags().Changed("time") {
					patch.Time = &timeOfDay
				}
				if cmd.Flags().Changed("unit") {
					patch.Unit = &unit
				}
				if cmd.Flags().Changed("notes") {
					patch.Notes = &notes
				}
				if !application.tracker.UpdateIntakeLog(ctx, entry.ID, patch) {
					application.notifier.Error("Could not update the log.", notify.Options{})
					return fmt.Errorf("update intake log %d failed", entry.ID)
				}
				application.notifier.Success("Updated the existing log for "+date+".", notify.Options{})
				return nil
			}

			if _, ok := application.tracker.LogIntake(ctx, trackedID, date, timeOfDay, dosage, unit, notes); !ok {
				application.notifier.Error("Could not log the intake.", notify.Options{})
				return fmt.Errorf("log intake for %d failed", trackedID)
			}
			application.notifier.Success("Logged for "+date+".", notify.Options{})
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&timeOfDay, "time", time.Now().Format("15:04"), "time of day (HH:MM)")
	cmd.Flags().Float64Var(&dosage, "dosage", 0, "dosage taken")
	cmd.Flags().StringVar(&unit, "unit", "mg", "dosage unit")
	cmd.Flags().StringVar(&notes, "notes", "", "notes")
	_ = cmd.MarkFlagRequired("dosage")
	return cmd
}

func newIntakeDayCommand(application *app) *cobra.Command {
	return &cobra.Command{
		Use:   "day [date]",
		Short: "Show the daily log with per-supplement status",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext()
			defer cancel()
			if err := application.requireAuth(ctx); err != nil {
				return err
			}

			date := dateutil.DateKey(time.Now(), time.Local)
			if len(args) == 1 {
				if !dateutil.IsValidDateKey(args[0]) {
					return fmt.Errorf("invalid date %q", args[0])
				}
				date = args[0]
			}

			tracked := application.tracker.TrackedSupplements(ctx)
			logs := application.tracker.IntakeLogsForDate(ctx, date)
			logged := make(map[int]models.IntakeLog, len(logs))
			for _, entry := range logs {
				logged[entry.TrackedSupplementID] = entry
			}

			fmt.Println("Daily log for", date)
			if len(tracked) == 0 {
				fmt.Println("  (nothing tracked)")
				return nil
			}
			for _, entry := range tracked {
				if logEntry, ok := logged[entry.ID]; ok {
					fmt.Printf("  [logged] #%d %s - %.4g %s at %s\n",
						entry.ID, entry.SupplementName, logEntry.DosageTaken, logEntry.Unit, logEntry.Time)
				} else {
					fmt.Printf("  [  -   ] #%d %s\n", entry.ID, entry.SupplementName)
				}
			}
			return nil
		},
	}
}

func newIntakeTodayCommand(application *app) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's raw logs as the server sees them",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext()
			defer cancel()
			if err := application.requireAuth(ctx); err != nil {
				return err
			}

			logs, err := application.client.TodayIntakeLogs(ctx)
			if err != nil {
				application.notifier.HandleAPIError(err, "Could not load today's logs.")
				return err
			}
			if len(logs) == 0 {
				fmt.Println("Nothing logged today.")
				return nil
			}
			for _, entry := range logs {
				fmt.Printf("#%d  tracked %d - %.4g %s at %s\n",
					entry.ID, entry.TrackedSupplementID, entry.DosageTaken, entry.Unit, entry.Time)
			}
			return nil
		},
	}
}

func newIntakeDeleteCommand(application *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <log-id>",
		Short: "Delete an intake log",
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

			if !application.tracker.DeleteIntakeLog(ctx, id) {
				application.notifier.Error("Delete failed.", notify.Options{})
				return fmt.Errorf("delete intake log %d failed", id)
			}
			application.notifier.Success("Deleted.", notify.Options{})
			return nil
		},
	}
}
