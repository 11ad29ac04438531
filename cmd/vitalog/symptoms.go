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

func newSymptomsCommand(application *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "symptoms",
		Short: "Browse the symptom catalog and log severity",
	}
	cmd.AddCommand(
		newSymptomsListCommand(application),
		newSymptomsLogCommand(application),
		newSymptomsDayCommand(application),
		newSymptomsDatesCommand(application),
		newSymptomsDeleteCommand(application),
	)
	return cmd
}

func newSymptomsListCommand(application *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List symptoms grouped by category",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext()
			defer cancel()
			if err := application.requireAuth(ctx); err != nil {
				return err
			}

			categories := application.tracker.SymptomCategories(ctx)
			if len(categories) == 0 {
				for _, symptom := range application.tracker.Symptoms(ctx) {
					fmt.Printf("#%d  %s\n", symptom.ID, symptom.Name)
				}
				return nil
			}
			for _, category := range categories {
				fmt.Printf("%s\n", category.Name)
				for _, symptom := range category.Symptoms {
					fmt.Printf("  #%d  %s\n", symptom.ID, symptom.Name)
				}
			}
			return nil
		},
	}
}

func newSymptomsLogCommand(application *app) *cobra.Command {
	var date, severity, notes string

	cmd := &cobra.Command{
		Use:   "log <symptom-id>",
		Short: "Log symptom severity for a date (severity none clears it)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			symptomID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			if !models.IsValidSeverity(severity) {
				return fmt.Errorf("invalid severity %q (none|mild|average|severe)", severity)
			}

			ctx, cancel := commandContext()
			defer cancel()
			if err := application.requireAuth(ctx); err != nil {
				return err
			}

			if date == "" {
				date = dateutil.DateKey(time.Now(), time.Local)
			}
			if !application.tracker.LogSymptom(ctx, symptomID, date, severity, notes) {
				application.notifier.Error("Could not log the symptom.", notify.Options{})
				return fmt.Errorf("log symptom %d failed", symptomID)
			}
			application.notifier.Success("Symptom logged for "+date+".", notify.Options{})
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&severity, "severity", models.SeverityMild, "none|mild|average|severe")
	cmd.Flags().StringVar(&notes, "notes", "", "notes")
	return cmd
}

func newSymptomsDayCommand(application *app) *cobra.Command {
	var forceRefresh bool

	cmd := &cobra.Command{
		Use:   "day [date]",
		Short: "Show symptom logs for a date",
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

			logs := application.tracker.SymptomLogsForDate(ctx, date, forceRefresh)
			if len(logs) == 0 {
				fmt.Println("No symptom logs for", date)
				return nil
			}
			for _, entry := range logs {
				line := fmt.Sprintf("#%d  %s  %s", entry.ID, entry.SymptomName, entry.Severity)
				if entry.Notes != "" {
					line += "  (" + entry.Notes + ")"
				}
				fmt.Println(line)
			}
			if summary, err := application.client.SymptomSummaryByDate(ctx, date); err == nil && summary.Total > 0 {
				fmt.Printf("%d active, worst %s\n", summary.Total, summary.WorstLevel)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&forceRefresh, "refresh", false, "bypass the cache")
	return cmd
}

func newSymptomsDeleteCommand(application *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <log-id>",
		Short: "Delete a symptom log entirely",
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

			// Find the date before deleting so the cached day can be
			// refreshed afterwards.
			var date string
			for _, entry := range application.tracker.SymptomLogs() {
				if entry.ID == id {
					date = entry.Date
					break
				}
			}

			if err := application.client.DeleteSymptomLog(ctx, id); err != nil {
				application.notifier.HandleAPIError(err, "Delete failed.")
				return err
			}
			if date != "" {
				application.tracker.SymptomLogsForDate(ctx, date, true)
			}
			application.notifier.Success("Deleted.", notify.Options{})
			return nil
		},
	}
}

func newSymptomsDatesCommand(application *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dates",
		Short: "List dates with at least one active symptom",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext()
			defer cancel()
			if err := application.requireAuth(ctx); err != nil {
				return err
			}

			dates := application.tracker.DatesWithSymptoms(ctx)
			if len(dates) == 0 {
				fmt.Println("No symptomatic dates recorded.")
				return nil
			}
			for _, date := range dates {
				fmt.Println(date)
			}
			return nil
		},
	}
}
