package tracking

import (
	"context"
	"log/slog"

	"github.com/terraincognita07/vitalog/internal/dateutil"
	"github.com/terraincognita07/vitalog/internal/models"
	"github.com/terraincognita07/vitalog/internal/restapi"
)

// LogIntake records a taken dose. It never de-duplicates against an
// existing log for the same supplement and date; callers choose
// update-vs-create from a prior IntakeLogsForDate lookup.
func (service *Service) LogIntake(ctx context.Context, trackedSupplementID int, date string, timeOfDay string, dosageTaken float64, unit string, notes string) (models.IntakeLog, bool) {
	if !dateutil.IsValidDateKey(date) {
		service.log.Info("rejected intake log", slog.String("date", date))
		return models.IntakeLog{}, false
	}

	created, err := service.intake.CreateIntakeLog(ctx, restapi.NewIntakeLog{
		TrackedSupplementID: trackedSupplementID,
		Date:                date,
		Time:                timeOfDay,
		DosageTaken:         dosageTaken,
		Unit:                unit,
		Notes:               notes,
	})
	if err != nil {
		service.log.Error("create intake log", slog.String("error", err.Error()))
		return models.IntakeLog{}, false
	}

	service.mu.Lock()
	defer service.mu.Unlock()
	service.intakeLogs = append(service.intakeLogs, created)
	service.intakeByDate.appendIfPresent(date, created)
	return created, true
}

// IntakeLogsForDate is cache-first: a date fetched once is answered
// from memory until a write invalidates it. A fresh fetch replaces the
// date bucket and merges into the flat list scoped by date, so entries
// for other dates survive.
func (service *Service) IntakeLogsForDate(ctx context.Context, date string) []models.IntakeLog {
	service.mu.Lock()
	if cached, ok := service.intakeByDate.get(date); ok {
		service.mu.Unlock()
		return cached
	}
	service.mu.Unlock()

	fetched, err := service.intake.ListIntakeLogs(ctx, date, date)
	if err != nil {
		service.log.Error("fetch intake logs", slog.String("date", date), slog.String("error", err.Error()))
		return nil
	}

	service.mu.Lock()
	defer service.mu.Unlock()
	service.intakeByDate.replace(date, fetched)
	service.intakeLogs = mergeByDate(service.intakeLogs, date, fetched, intakeLogDate)
	return append([]models.IntakeLog(nil), fetched...)
}

func (service *Service) UpdateIntakeLog(ctx context.Context, id int, patch models.IntakeLogPatch) bool {
	updated, err := service.intake.UpdateIntakeLog(ctx, id, patch)
	if err != nil {
		service.log.Error("update intake log", slog.Int("id", id), slog.String("error", err.Error()))
		return false
	}

	service.mu.Lock()
	defer service.mu.Unlock()
	for index := range service.intakeLogs {
		if service.intakeLogs[index].ID == id {
			service.intakeLogs[index] = updated
		}
	}
	service.intakeByDate.updateAll(func(entry models.IntakeLog) (models.IntakeLog, bool) {
		if entry.ID == id {
			return updated, true
		}
		return entry, false
	})
	return true
}

func (service *Service) DeleteIntakeLog(ctx context.Context, id int) bool {
	if err := service.intake.DeleteIntakeLog(ctx, id); err != nil {
		service.log.Error("delete intake log", slog.Int("id", id), slog.String("error", err.Error()))
		return false
	}

	service.mu.Lock()
	defer service.mu.Unlock()
	filtered := service.intakeLogs[:0]
	for _, entry := range service.intakeLogs {
		if entry.ID != id {
			filtered = append(filtered, entry)
		}
	}
	service.intakeLogs = filtered
	service.intakeByDate.removeAll(func(entry models.IntakeLog) bool {
		return entry.ID == id
	})
	return true
}

// IntakeLogs exposes the flat in-memory list accumulated across
// fetched dates, primarily for the report exporter's snapshot.
func (service *Service) IntakeLogs() []models.IntakeLog {
	service.mu.Lock()
	defer service.mu.Unlock()
	return append([]models.IntakeLog(nil), service.intakeLogs...)
}

func intakeLogDate(entry models.IntakeLog) string {
	return entry.Date
}
