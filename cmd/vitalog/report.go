package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/vitalog/internal/dateutil"
	"github.com/terraincognita07/vitalog/internal/models"
	"github.com/terraincognita07/vitalog/internal/notify"
	"github.com/terraincognita07/vitalog/internal/report"
)

func newReportCommand(application *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Streaks, progress, and the PDF export",
	}
	cmd.AddCommand(
		newReportExportCommand(application),
		newReportSummaryCommand(application),
		newReportStreaksCommand(application),
		newReportProgressCommand(application),
	)
	return cmd
}

func newReportExportCommand(application *app) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the PDF report",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext()
			defer cancel()
			if err := application.requireAuth(ctx); err != nil {
				return err
			}

			user, _ := application.sessions.CurrentUser()
			tracked := application.tracker.TrackedSupplements(ctx)

			// Warm the last 14 days so the snapshot lists recent
			// activity even on a cold cache.
			today := time.Now()
			for offset := 0; offset < 14; offset++ {
				date := dateutil.DateKey(today.AddDate(0, 0, -offset), time.Local)
				application.tracker.IntakeLogsForDate(ctx, date)
				application.tracker.SymptomLogsForDate(ctx, date, false)
			}

			streaks, err := application.client.GetStreaks(ctx)
			if err != nil {
				application.log.Warn("fetch streaks for report", "error", err)
			}
			consistency, err := application.client.GetProgress(ctx, models.RangeWeekly)
			if err != nil {
				application.log.Warn("fetch progress for report", "error", err)
			}
			if len(consistency) > 14 {
				consistency = consistency[len(consistency)-14:]
			}

			snapshot := report.Snapshot{
				User:               user,
				TrackedSupplements: tracked,
				IntakeLogs:         application.tracker.IntakeLogs(),
				SymptomLogs:        application.tracker.SymptomLogs(),
				Streaks:            streaks,
				Consistency:        consistency,
			}

			path, err := application.exporter.Export(snapshot, outDir)
			if err != nil {
				application.notifier.Error("Report export failed.", notify.Options{})
				return err
			}
			application.notifier.Success("Report saved to "+path, notify.Options{})
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out", ".", "output directory")
	return cmd
}

func newReportSummaryCommand(application *app) *cobra.Command {
	var rangeName string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show aggregated adherence and symptom counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !models.IsValidRange(rangeName) {
				return fmt.Errorf("invalid range %q (daily|weekly|monthly|yearly)", rangeName)
			}

			ctx, cancel := commandContext()
			defer cancel()
			if err := application.requireAuth(ctx); err != nil {
				return err
			}

			summary, err := application.client.GetReport(ctx, rangeName)
			if err != nil {
				application.notifier.HandleAPIError(err, "Could not load the report.")
				return err
			}

			fmt.Printf("Range: %s\n", summary.Range)
			fmt.Printf("Doses taken: %d", summary.IntakeTotal)
			if summary.IntakeExpected > 0 {
				fmt.Printf(" of %d (%.0f%%)", summary.IntakeExpected, summary.AdherencePct)
			}
			fmt.Println()
			fmt.Printf("Symptoms logged: %d\n", summary.SymptomTotal)
			for _, note := range summary.Correlations {
				fmt.Println("  " + note)
			}
			for _, note := range summary.Recommendations {
				fmt.Println("  " + note)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&rangeName, "range", models.RangeWeekly, "daily|weekly|monthly|yearly")
	return cmd
}

const streaksSnapshotKey = "streaks"

func newReportStreaksCommand(application *app) *cobra.Command {
	return &cobra.Command{
		Use:   "streaks",
		Short: "Show adherence streaks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext()
			defer cancel()
			if err := application.requireAuth(ctx); err != nil {
				return err
			}

			streaks, err := application.client.GetStreaks(ctx)
			if err != nil {
				// Fall back to the last snapshot so streaks stay
				// visible offline.
				var cached []models.Streak
				if found, loadErr := application.store.LoadSnapshot(streaksSnapshotKey, &cached); loadErr == nil && found {
					fmt.Println("(offline, last known values)")
					streaks = cached
				} else {
					application.notifier.HandleAPIError(err, "Could not load streaks.")
					return err
				}
			} else if err := application.store.SaveSnapshot(streaksSnapshotKey, streaks); err != nil {
				application.log.Warn("persist streaks snapshot", "error", err)
			}

			if len(streaks) == 0 {
				fmt.Println("No streaks yet.")
				return nil
			}
			for _, streak := range streaks {
				fmt.Printf("%s: %d days (best %d)\n", streak.SupplementName, streak.CurrentStreak, streak.LongestStreak)
			}
			return nil
		},
	}
}

func newReportProgressCommand(application *app) *cobra.Command {
	var rangeName string

	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Show the adherence progress series",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !models.IsValidRange(rangeName) {
				return fmt.Errorf("invalid range %q (daily|weekly|monthly|yearly)", rangeName)
			}

			ctx, cancel := commandContext()
			defer cancel()
			if err := application.requireAuth(ctx); err != nil {
				return err
			}

			points, err := application.client.GetProgress(ctx, rangeName)
			if err != nil {
				application.notifier.HandleAPIError(err, "Could not load progress.")
				return err
			}
			for _, point := range points {
				fmt.Printf("%s  %5.1f%%\n", point.Date, point.Percent)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&rangeName, "range", models.RangeWeekly, "daily|weekly|monthly|yearly")
	return cmd
}
