package tracking

import (
	"context"
	"log/slog"

	"github.com/terraincognita07/vitalog/internal/models"
)

type AddResult struct {
	Created  bool
	Warnings []string
}

// AddTrackedSupplement checks interactions against the current tracked
// set before persisting. Warnings are advisory: they are returned for
// display but never block creation. An end date earlier than the start
// date is rejected locally before any network call.
func (service *Service) AddTrackedSupplement(ctx context.Context, input models.NewTrackedSupplement) (AddResult, error) {
	if err := validateDateRange(input.StartDate, input.EndDate); err != nil {
		return AddResult{}, err
	}

	warnings := service.CheckInteractions(ctx, input.SupplementID)

	created, err := service.supplements.CreateTrackedSupplement(ctx, input)
	if err != nil {
		service.log.Error("create tracked supplement", slog.String("error", err.Error()))
		return AddResult{Warnings: warnings}, err
	}

	service.mu.Lock()
	defer service.mu.Unlock()
	service.tracked = append(service.tracked, created)
	return AddResult{Created: true, Warnings: warnings}, nil
}

func (service *Service) UpdateTrackedSupplement(ctx context.Context, id int, patch models.TrackedSupplementPatch) bool {
	if patch.StartDate != nil || patch.EndDate != nil {
		current, ok := service.trackedByID(id)
		if !ok {
			return false
		}
		startDate := current.StartDate
		if patch.StartDate != nil {
			startDate = *patch.StartDate
		}
		endDate := current.EndDate
		if patch.EndDate != nil {
			endDate = *patch.EndDate
		}
		if err := validateDateRange(startDate, endDate); err != nil {
			service.log.Info("rejected tracked supplement update", slog.String("error", err.Error()))
			return false
		}
	}

	updated, err := service.supplements.UpdateTrackedSupplement(ctx, id, patch)
	if err != nil {
		service.log.Error("update tracked supplement", slog.Int("id", id), slog.String("error", err.Error()))
		return false
	}

	service.mu.Lock()
	defer service.mu.Unlock()
	for index := range service.tracked {
		if service.tracked[index].ID == id {
			service.tracked[index] = updated
			break
		}
	}
	return true
}

func (service *Service) RemoveTrackedSupplement(ctx context.Context, id int) bool {
	if err := service.supplements.DeleteTrackedSupplement(ctx, id); err != nil {
		service.log.Error("delete tracked supplement", slog.Int("id", id), slog.String("error", err.Error()))
		return false
	}

	service.mu.Lock()
	defer service.mu.Unlock()
	filtered := service.tracked[:0]
	for _, entry := range service.tracked {
		if entry.ID != id {
			filtered = append(filtered, entry)
		}
	}
	service.tracked = filtered
	return true
}

// TrackedSupplements fetches on first use and answers from memory
// afterwards, until Clear.
func (service *Service) TrackedSupplements(ctx context.Context) []models.TrackedSupplement {
	service.mu.Lock()
	if service.trackedLoaded {
		defer service.mu.Unlock()
		return append([]models.TrackedSupplement(nil), service.tracked...)
	}
	service.mu.Unlock()

	fetched, err := service.supplements.ListTrackedSupplements(ctx)
	if err != nil {
		service.log.Error("list tracked supplements", slog.String("error", err.Error()))
		return nil
	}

	service.mu.Lock()
	defer service.mu.Unlock()
	service.tracked = fetched
	service.trackedLoaded = true
	return append([]models.TrackedSupplement(nil), service.tracked...)
}

// CheckInteractions returns human-readable warnings for interactions
// between the given supplement and anything already tracked. Any fetch
// failure degrades to no warnings rather than an error.
func (service *Service) CheckInteractions(ctx context.Context, supplementID int) []string {
	tracked := service.TrackedSupplements(ctx)

	interactions, err := service.supplements.GetInteractions(ctx, supplementID)
	if err != nil {
		service.log.Warn("fetch interactions", slog.Int("supplement_id", supplementID), slog.String("error", err.Error()))
		return []string{}
	}

	trackedIDs := make(map[int]bool, len(tracked))
	for _, entry := range tracked {
		trackedIDs[entry.SupplementID] = true
	}

	warnings := []string{}
	for _, interaction := range interactions {
		if !trackedIDs[interaction.OtherID] {
			continue
		}
		if interaction.Description != "" {
			warnings = append(warnings, interaction.OtherName+": "+interaction.Description)
		}
		if interaction.Recommendation != "" {
			warnings = append(warnings, interaction.Recommendation)
		}
	}
	return warnings
}

func (service *Service) trackedByID(id int) (models.TrackedSupplement, bool) {
	service.mu.Lock()
	defer service.mu.Unlock()
	for _, entry := range service.tracked {
		if entry.ID == id {
			return entry, true
		}
	}
	return models.TrackedSupplement{}, false
}
