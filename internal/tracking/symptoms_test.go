package tracking

import (
	"context"
	"errors"
	"testing"

	"github.com/terraincognita07/vitalog/internal/models"
)

func TestLogSymptomValidatesInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		date     string
		severity string
	}{
		{name: "bad date", date: "not-a-date", severity: models.SeverityMild},
		{name: "bad severity", date: "2026-08-20", severity: "terrible"},
		{name: "empty severity", date: "2026-08-20", severity: ""},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			symptoms := &stubSymptomAPI{}
			service := newTestService(nil, nil, symptoms)

			if service.LogSymptom(context.Background(), 1, test.date, test.severity, "") {
				t.Fatal("LogSymptom() = true, want false")
			}
			if symptoms.createCalls != 0 {
				t.Fatalf("create calls = %d, want 0", symptoms.createCalls)
			}
		})
	}
}

func TestLogSymptomRefetchesTheDay(t *testing.T) {
	t.Parallel()

	symptoms := &stubSymptomAPI{
		created: models.SymptomLog{ID: 1, SymptomID: 4, Date: "2026-08-20", Severity: models.SeverityMild},
		logsByDate: map[string][]models.SymptomLog{
			"2026-08-20": {{ID: 1, SymptomID: 4, Date: "2026-08-20", Severity: models.SeverityMild}},
		},
	}
	service := newTestService(nil, nil, symptoms)
	ctx := context.Background()

	// Warm the cache, then log: the write must force a refetch rather
	// than patching the cached day from the create response.
	service.SymptomLogsForDate(ctx, "2026-08-20", false)
	if !service.LogSymptom(ctx, 4, "2026-08-20", models.SeverityMild, "") {
		t.Fatal("LogSymptom() = false, want true")
	}

	if symptoms.byDateCalls != 2 {
		t.Fatalf("by-date calls = %d, want 2", symptoms.byDateCalls)
	}

	day := service.SymptomLogsForDate(ctx, "2026-08-20", false)
	if len(day) != 1 || day[0].SymptomID != 4 {
		t.Fatalf("day logs = %+v, want the logged symptom", day)
	}
	if symptoms.byDateCalls != 2 {
		t.Fatalf("by-date calls after cached read = %d, want 2", symptoms.byDateCalls)
	}
}

func TestLogSymptomSeverityNoneIsAnUpsertNotADelete(t *testing.T) {
	t.Parallel()

	symptoms := &stubSymptomAPI{
		created: models.SymptomLog{ID: 1, SymptomID: 4, Date: "2026-08-20", Severity: models.SeverityNone},
		logsByDate: map[string][]models.SymptomLog{
			"2026-08-20": {{ID: 1, SymptomID: 4, Date: "2026-08-20", Severity: models.SeverityNone}},
		},
	}
	service := newTestService(nil, nil, symptoms)

	if !service.LogSymptom(context.Background(), 4, "2026-08-20", models.SeverityNone, "") {
		t.Fatal("LogSymptom(none) = false, want true")
	}
	if symptoms.createCalls != 1 {
		t.Fatalf("create calls = %d, want 1", symptoms.createCalls)
	}
}

func TestSymptomLogsForDateForceRefreshBypassesCache(t *testing.T) {
	t.Parallel()

	symptoms := &stubSymptomAPI{
		logsByDate: map[string][]models.SymptomLog{
			"2026-08-20": {{ID: 1, SymptomID: 4, Date: "2026-08-20", Severity: models.SeverityMild}},
		},
	}
	service := newTestService(nil, nil, symptoms)
	ctx := context.Background()

	service.SymptomLogsForDate(ctx, "2026-08-20", false)
	service.SymptomLogsForDate(ctx, "2026-08-20", false)
	if symptoms.byDateCalls != 1 {
		t.Fatalf("by-date calls = %d, want 1", symptoms.byDateCalls)
	}

	symptoms.logsByDate["2026-08-20"] = append(symptoms.logsByDate["2026-08-20"],
		models.SymptomLog{ID: 2, SymptomID: 5, Date: "2026-08-20", Severity: models.SeveritySevere})

	refreshed := service.SymptomLogsForDate(ctx, "2026-08-20", true)
	if symptoms.byDateCalls != 2 {
		t.Fatalf("by-date calls after force refresh = %d, want 2", symptoms.byDateCalls)
	}
	if len(refreshed) != 2 {
		t.Fatalf("refreshed day logs len = %d, want 2", len(refreshed))
	}
}

func TestSymptomRefetchPreservesOtherDatesInFlatList(t *testing.T) {
	t.Parallel()

	symptoms := &stubSymptomAPI{
		logsByDate: map[string][]models.SymptomLog{
			"2026-08-20": {{ID: 1, SymptomID: 4, Date: "2026-08-20", Severity: models.SeverityMild}},
			"2026-08-21": {{ID: 2, SymptomID: 5, Date: "2026-08-21", Severity: models.SeverityAverage}},
		},
	}
	service := newTestService(nil, nil, symptoms)
	ctx := context.Background()

	service.SymptomLogsForDate(ctx, "2026-08-20", false)
	service.SymptomLogsForDate(ctx, "2026-08-21", false)

	symptoms.logsByDate["2026-08-20"] = []models.SymptomLog{
		{ID: 1, SymptomID: 4, Date: "2026-08-20", Severity: models.SeveritySevere},
		{ID: 3, SymptomID: 6, Date: "2026-08-20", Severity: models.SeverityMild},
	}
	service.SymptomLogsForDate(ctx, "2026-08-20", true)

	flat := service.SymptomLogs()
	if len(flat) != 3 {
		t.Fatalf("flat logs len = %d, want 3: %+v", len(flat), flat)
	}
	var sawOtherDate bool
	for _, entry := range flat {
		if entry.ID == 2 {
			sawOtherDate = true
		}
	}
	if !sawOtherDate {
		t.Fatal("refetch of one date dropped another date's log from the flat list")
	}
}

func TestSymptomsCatalogFetchesOnceAndRetriesAfterFailure(t *testing.T) {
	t.Parallel()

	symptoms := &stubSymptomAPI{symptomsErr: errors.New("unreachable")}
	service := newTestService(nil, nil, symptoms)
	ctx := context.Background()

	if got := service.Symptoms(ctx); got != nil {
		t.Fatalf("Symptoms() on failure = %v, want nil", got)
	}

	symptoms.symptomsErr = nil
	symptoms.symptoms = []models.Symptom{{ID: 1, Name: "Headache"}}
	service.Symptoms(ctx)
	service.Symptoms(ctx)

	if symptoms.symptomCalls != 2 {
		t.Fatalf("catalog calls = %d, want 2 (failure, then fetch)", symptoms.symptomCalls)
	}
}

func TestSymptomCategoriesGroupsCatalog(t *testing.T) {
	t.Parallel()

	symptoms := &stubSymptomAPI{symptoms: []models.Symptom{
		{ID: 1, Name: "Headache", CategoryID: 2, CategoryName: "Neurological"},
		{ID: 2, Name: "Nausea", CategoryID: 1, CategoryName: "Digestive"},
		{ID: 3, Name: "Dizziness", CategoryID: 2, CategoryName: "Neurological"},
		{ID: 4, Name: "Uncategorized"},
	}}
	service := newTestService(nil, nil, symptoms)

	categories := service.SymptomCategories(context.Background())
	if len(categories) != 2 {
		t.Fatalf("categories len = %d, want 2: %+v", len(categories), categories)
	}
	if categories[0].ID != 1 || categories[0].Name != "Digestive" {
		t.Fatalf("first category = %+v, want Digestive (id 1)", categories[0])
	}
	if categories[1].ID != 2 || len(categories[1].Symptoms) != 2 {
		t.Fatalf("second category = %+v, want Neurological with 2 symptoms", categories[1])
	}
}

func TestDatesWithSymptomsPrefersServerView(t *testing.T) {
	t.Parallel()

	symptoms := &stubSymptomAPI{dates: []string{"2026-08-21", "2026-08-19"}}
	service := newTestService(nil, nil, symptoms)

	dates := service.DatesWithSymptoms(context.Background())
	if len(dates) != 2 || dates[0] != "2026-08-19" || dates[1] != "2026-08-21" {
		t.Fatalf("dates = %v, want sorted server dates", dates)
	}
}

func TestDatesWithSymptomsFallsBackToLocalNonNoneLogs(t *testing.T) {
	t.Parallel()

	symptoms := &stubSymptomAPI{
		datesErr: errors.New("endpoint missing"),
		logsByDate: map[string][]models.SymptomLog{
			"2026-08-21": {{ID: 1, SymptomID: 4, Date: "2026-08-21", Severity: models.SeverityMild}},
			"2026-08-20": {{ID: 2, SymptomID: 4, Date: "2026-08-20", Severity: models.SeverityNone}},
			"2026-08-19": {
				{ID: 3, SymptomID: 4, Date: "2026-08-19", Severity: models.SeveritySevere},
				{ID: 4, SymptomID: 5, Date: "2026-08-19", Severity: models.SeverityMild},
			},
		},
	}
	service := newTestService(nil, nil, symptoms)
	ctx := context.Background()

	service.SymptomLogsForDate(ctx, "2026-08-21", false)
	service.SymptomLogsForDate(ctx, "2026-08-20", false)
	service.SymptomLogsForDate(ctx, "2026-08-19", false)

	dates := service.DatesWithSymptoms(ctx)
	if len(dates) != 2 || dates[0] != "2026-08-19" || dates[1] != "2026-08-21" {
		t.Fatalf("fallback dates = %v, want [2026-08-19 2026-08-21]", dates)
	}
}
