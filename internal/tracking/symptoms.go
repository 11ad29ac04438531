package tracking

import (
	"context"
	"log/slog"
	"sort"

	"github.com/terraincognita07/vitalog/internal/dateutil"
	"github.com/terraincognita07/vitalog/internal/models"
	"github.com/terraincognita07/vitalog/internal/restapi"
)

// LogSymptom upserts the severity for (symptom, date). Toggling a
// symptom off writes a SeverityNone log rather than deleting. The cache
// is refreshed from the server afterwards instead of being patched from
// the local response, keeping the date bucket authoritative.
func (service *Service) LogSymptom(ctx context.Context, symptomID int, date string, severity string, notes string) bool {
	if !dateutil.IsValidDateKey(date) || !models.IsValidSeverity(severity) {
		service.log.Info("rejected symptom log", slog.String("date", date), slog.String("severity", severity))
		return false
	}

	if _, err := service.symptoms.CreateSymptomLog(ctx, restapi.NewSymptomLog{
		SymptomID: symptomID,
		Date:      date,
		Severity:  severity,
		Notes:     notes,
	}); err != nil {
		service.log.Error("create symptom log", slog.String("error", err.Error()))
		return false
	}

	service.SymptomLogsForDate(ctx, date, true)
	return true
}

// SymptomLogsForDate is cache-first unless forceRefresh is set. A fetch
// replaces the date bucket and merges into the flat list scoped by
// date, mirroring the intake-log contract.
func (service *Service) SymptomLogsForDate(ctx context.Context, date string, forceRefresh bool) []models.SymptomLog {
	if !forceRefresh {
		service.mu.Lock()
		if cached, ok := service.symptomsByDate.get(date); ok {
			service.mu.Unlock()
			return cached
		}
		service.mu.Unlock()
	}

	fetched, err := service.symptoms.SymptomLogsByDate(ctx, date)
	if err != nil {
		service.log.Error("fetch symptom logs", slog.String("date", date), slog.String("error", err.Error()))
		return nil
	}

	service.mu.Lock()
	defer service.mu.Unlock()
	service.symptomsByDate.replace(date, fetched)
	service.symptomLogs = mergeByDate(service.symptomLogs, date, fetched, symptomLogDate)
	return append([]models.SymptomLog(nil), fetched...)
}

// Symptoms is the fetch-once catalog: the list is requested at most
// once per session and cached until Clear. A failed fetch stays
// uncached so the next call retries.
func (service *Service) Symptoms(ctx context.Context) []models.Symptom {
	service.mu.Lock()
	if service.catalogLoaded {
		defer service.mu.Unlock()
		return append([]models.Symptom(nil), service.symptomCatalog...)
	}
	service.mu.Unlock()

	fetched, err := service.symptoms.ListSymptoms(ctx)
	if err != nil {
		service.log.Error("fetch symptoms", slog.String("error", err.Error()))
		return nil
	}

	service.mu.Lock()
	defer service.mu.Unlock()
	service.symptomCatalog = fetched
	service.catalogLoaded = true
	return append([]models.Symptom(nil), service.symptomCatalog...)
}

// SymptomCategories is derived by grouping the flat catalog by category
// id; there is no dedicated category endpoint.
func (service *Service) SymptomCategories(ctx context.Context) []models.SymptomCategory {
	symptoms := service.Symptoms(ctx)
	if len(symptoms) == 0 {
		return nil
	}

	grouped := make(map[int]*models.SymptomCategory)
	for _, symptom := range symptoms {
		if symptom.CategoryID == 0 {
			continue
		}
		category, ok := grouped[symptom.CategoryID]
		if !ok {
			category = &models.SymptomCategory{
				ID:   symptom.CategoryID,
				Name: symptom.CategoryName,
				Icon: symptom.CategoryIcon,
			}
			grouped[symptom.CategoryID] = category
		}
		category.Symptoms = append(category.Symptoms, symptom)
	}

	categories := make([]models.SymptomCategory, 0, len(grouped))
	for _, category := range grouped {
		categories = append(categories, *category)
	}
	sort.Slice(categories, func(left, right int) bool {
		return categories[left].ID < categories[right].ID
	})
	return categories
}

// DatesWithSymptoms lists calendar dates carrying at least one
// non-none severity log, for calendar decoration. The server view is
// preferred; on failure the locally cached flat list answers instead.
func (service *Service) DatesWithSymptoms(ctx context.Context) []string {
	dates, err := service.symptoms.DatesWithSymptoms(ctx)
	if err == nil {
		sort.Strings(dates)
		return dates
	}
	service.log.Warn("fetch dates with symptoms", slog.String("error", err.Error()))

	service.mu.Lock()
	defer service.mu.Unlock()
	seen := make(map[string]bool)
	fallback := []string{}
	for _, entry := range service.symptomLogs {
		if entry.Severity == models.SeverityNone || seen[entry.Date] {
			continue
		}
		seen[entry.Date] = true
		fallback = append(fallback, entry.Date)
	}
	sort.Strings(fallback)
	return fallback
}

// SymptomLogs exposes the accumulated flat list for report snapshots.
func (service *Service) SymptomLogs() []models.SymptomLog {
	service.mu.Lock()
	defer service.mu.Unlock()
	return append([]models.SymptomLog(nil), service.symptomLogs...)
}

func symptomLogDate(entry models.SymptomLog) string {
	return entry.Date
}
