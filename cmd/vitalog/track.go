package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/vitalog/internal/models"
	"github.com/terraincognita07/vitalog/internal/notify"
)

func newTrackCommand(application *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "track",
		Short: "Manage tracked supplements",
	}
	cmd.AddCommand(
		newTrackListCommand(application),
		newTrackAddCommand(application),
		newTrackUpdateCommand(application),
		newTrackRemoveCommand(application),
	)
	return cmd
}

func newTrackListCommand(application *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tracked supplements",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext()
			defer cancel()
			if err := application.requireAuth(ctx); err != nil {
				return err
			}

			tracked := application.tracker.TrackedSupplements(ctx)
			if len(tracked) == 0 {
				fmt.Println("Nothing tracked yet. Add one with `vitalog track add`.")
				return nil
			}
			for _, entry := range tracked {
				line := fmt.Sprintf("#%d  %s  %.4g %s %s  since %s",
					entry.ID, entry.SupplementName, entry.Dosage, entry.Unit, entry.Frequency, entry.StartDate)
				if entry.EndDate != "" {
					line += " until " + entry.EndDate
				}
				fmt.Println(line)
			}
			return nil
		},
	}
}

func newTrackAddCommand(application *app) *cobra.Command {
	var input models.NewTrackedSupplement

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Start tracking a supplement",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext()
			defer cancel()
			if err := application.requireAuth(ctx); err != nil {
				return err
			}

			result, err := application.tracker.AddTrackedSupplement(ctx, input)
			for _, warning := range result.Warnings {
				application.notifier.Warning(warning, notify.Options{})
			}
			if err != nil {
				application.notifier.HandleAPIError(err, "Could not add the supplement.")
				return err
			}
			application.notifier.Success("Now tracking "+input.SupplementName+".", notify.Options{})
			return nil
		},
	}
	cmd.Flags().IntVar(&input.SupplementID, "supplement-id", 0, "catalog supplement id")
	cmd.Flags().StringVar(&input.SupplementName, "name", "", "supplement name")
	cmd.Flags().Float64Var(&input.Dosage, "dosage", 0, "dosage amount")
	cmd.Flags().StringVar(&input.Unit, "unit", "mg", "dosage unit")
	cmd.Flags().StringVar(&input.Frequency, "frequency", models.FrequencyDaily, "daily|weekly|monthly|custom")
	cmd.Flags().StringVar(&input.StartDate, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&input.EndDate, "end", "", "end date (YYYY-MM-DD, optional)")
	cmd.Flags().StringVar(&input.Notes, "notes", "", "notes")
	_ = cmd.MarkFlagRequired("supplement-id")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("dosage")
	_ = cmd.MarkFlagRequired("start")
	return cmd
}

func newTrackUpdateCommand(application *app) *cobra.Command {
	var dosage float64
	var unit, frequency, startDate, endDate, notes string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a tracked supplement",
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
			// Warm the in-memory list so date-range validation can see
			// the current entry.
			application.tracker.TrackedSupplements(ctx)

			patch := models.TrackedSupplementPatch{}
			if cmd.Flags().Changed("dosage") {
				patch.Dosage = &dosage
			}
			if cmd.Flags().Changed("unit") {
				patch.Unit = &unit
			}
			if cmd.Flags().Changed("frequency") {
				patch.Frequency = &frequency
			}
			if cmd.Flags().Changed("start") {
				patch.StartDate = &startDate
			}
			if cmd.Flags().Changed("end") {
				patch.EndDate = &endDate
			}
			if cmd.Flags().Changed("notes") {
				patch.Notes = &notes
			}

			if !application.tracker.UpdateTrackedSupplement(ctx, id, patch) {
				application.notifier.Error("Update failed.", notify.Options{})
				return fmt.Errorf("update tracked supplement %d failed", id)
			}
			application.notifier.Success("Updated.", notify.Options{})
			return nil
		},
	}
	cmd.Flags().Float64Var(&dosage, "dosage", 0, "dosage amount")
	cmd.Flags().StringVar(&unit, "unit", "", "dosage unit")
	cmd.Flags().StringVar(&frequency, "frequency", "", "daily|weekly|monthly|custom")
	cmd.Flags().StringVar(&startDate, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "end", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&notes, "notes", "", "notes")
	return cmd
}

func newTrackRemoveCommand(application *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Stop tracking a supplement",
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

			if !application.tracker.RemoveTrackedSupplement(ctx, id) {
				application.notifier.Error("Remove failed.", notify.Options{})
				return fmt.Errorf("remove tracked supplement %d failed", id)
			}
			application.notifier.Success("Removed.", notify.Options{})
			return nil
		},
	}
}
