package tracking

import (
	"context"
	"errors"
	"testing"

	"github.com/terraincognita07/vitalog/internal/models"
)

func TestIntakeLogsForDateFetchesAtMostOnce(t *testing.T) {
	t.Parallel()

	intake := &stubIntakeAPI{logsByDate: map[string][]models.IntakeLog{
		"2026-08-20": {{ID: 1, TrackedSupplementID: 3, Date: "2026-08-20"}},
	}}
	service := newTestService(nil, intake, nil)
	ctx := context.Background()

	first := service.IntakeLogsForDate(ctx, "2026-08-20")
	second := service.IntakeLogsForDate(ctx, "2026-08-20")

	if intake.listCalls != 1 {
		t.Fatalf("list calls = %d, want 1", intake.listCalls)
	}
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("results = %d and %d logs, want 1 and 1", len(first), len(second))
	}
}

func TestIntakeLogsForDateCachesEmptyDays(t *testing.T) {
	t.Parallel()

	intake := &stubIntakeAPI{logsByDate: map[string][]models.IntakeLog{}}
	service := newTestService(nil, intake, nil)
	ctx := context.Background()

	service.IntakeLogsForDate(ctx, "2026-08-21")
	service.IntakeLogsForDate(ctx, "2026-08-21")

	// An empty day is still a fetched day.
	if intake.listCalls != 1 {
		t.Fatalf("list calls = %d, want 1", intake.listCalls)
	}
}

func TestIntakeLogsForDateFailureStaysUncached(t *testing.T) {
	t.Parallel()

	intake := &stubIntakeAPI{listErr: errors.New("unreachable")}
	service := newTestService(nil, intake, nil)
	ctx := context.Background()

	if got := service.IntakeLogsForDate(ctx, "2026-08-20"); got != nil {
		t.Fatalf("IntakeLogsForDate() on failure = %v, want nil", got)
	}

	intake.listErr = nil
	intake.logsByDate = map[string][]models.IntakeLog{
		"2026-08-20": {{ID: 1, TrackedSupplementID: 3, Date: "2026-08-20"}},
	}
	if got := service.IntakeLogsForDate(ctx, "2026-08-20"); len(got) != 1 {
		t.Fatalf("IntakeLogsForDate() after recovery len = %d, want 1", len(got))
	}
}

func TestIntakeRefetchMergesFlatListScopedByDate(t *testing.T) {
	t.Parallel()

	intake := &stubIntakeAPI{logsByDate: map[string][]models.IntakeLog{
		"2026-08-20": {{ID: 1, TrackedSupplementID: 3, Date: "2026-08-20"}},
		"2026-08-21": {{ID: 2, TrackedSupplementID: 3, Date: "2026-08-21"}},
	}}
	service := newTestService(nil, intake, nil)
	ctx := context.Background()

	service.IntakeLogsForDate(ctx, "2026-08-20")
	service.IntakeLogsForDate(ctx, "2026-08-21")

	// Refetch the first date with different content; the other date's
	// entries must survive in the flat list.
	service.Clear()
	intake.logsByDate["2026-08-20"] = []models.IntakeLog{
		{ID: 1, TrackedSupplementID: 3, Date: "2026-08-20"},
		{ID: 4, TrackedSupplementID: 5, Date: "2026-08-20"},
	}
	service.IntakeLogsForDate(ctx, "2026-08-21")
	service.IntakeLogsForDate(ctx, "2026-08-20")
	service.IntakeLogsForDate(ctx, "2026-08-20")

	flat := service.IntakeLogs()
	if len(flat) != 3 {
		t.Fatalf("flat logs len = %d, want 3: %+v", len(flat), flat)
	}
	seen := make(map[int]bool)
	for _, entry := range flat {
		seen[entry.ID] = true
	}
	for _, id := range []int{1, 2, 4} {
		if !seen[id] {
			t.Fatalf("flat logs missing id %d: %+v", id, flat)
		}
	}
}

func TestLogIntakeRejectsInvalidDate(t *testing.T) {
	t.Parallel()

	intake := &stubIntakeAPI{}
	service := newTestService(nil, intake, nil)

	if _, ok := service.LogIntake(context.Background(), 3, "yesterday", "09:00", 400, "mg", ""); ok {
		t.Fatal("LogIntake(invalid date) = true, want false")
	}
	if intake.createCalls != 0 {
		t.Fatalf("create calls = %d, want 0", intake.createCalls)
	}
}

func TestLogIntakeAppendsToFetchedBucketOnly(t *testing.T) {
	t.Parallel()

	intake := &stubIntakeAPI{
		logsByDate: map[string][]models.IntakeLog{"2026-08-20": {}},
		created:    models.IntakeLog{ID: 7, TrackedSupplementID: 3, Date: "2026-08-20", DosageTaken: 400, Unit: "mg"},
	}
	service := newTestService(nil, intake, nil)
	ctx := context.Background()

	// Warm the bucket, then log: the new entry lands in the cached day
	// without another fetch.
	service.IntakeLogsForDate(ctx, "2026-08-20")
	if _, ok := service.LogIntake(ctx, 3, "2026-08-20", "09:00", 400, "mg", ""); !ok {
		t.Fatal("LogIntake() = false, want true")
	}

	day := service.IntakeLogsForDate(ctx, "2026-08-20")
	if len(day) != 1 || day[0].ID != 7 {
		t.Fatalf("day logs = %+v, want the created log", day)
	}
	if intake.listCalls != 1 {
		t.Fatalf("list calls = %d, want 1", intake.listCalls)
	}
}

func TestLogIntakeDoesNotCreateUnfetchedBucket(t *testing.T) {
	t.Parallel()

	intake := &stubIntakeAPI{
		logsByDate: map[string][]models.IntakeLog{
			"2026-08-20": {
				{ID: 7, TrackedSupplementID: 3, Date: "2026-08-20"},
				{ID: 8, TrackedSupplementID: 4, Date: "2026-08-20"},
			},
		},
		created: models.IntakeLog{ID: 7, TrackedSupplementID: 3, Date: "2026-08-20"},
	}
	service := newTestService(nil, intake, nil)
	ctx := context.Background()

	// Log before ever fetching the day. The later read must still go to
	// the server for the full day rather than answering with just the
	// one locally created entry.
	if _, ok := service.LogIntake(ctx, 3, "2026-08-20", "09:00", 400, "mg", ""); !ok {
		t.Fatal("LogIntake() = false, want true")
	}

	day := service.IntakeLogsForDate(ctx, "2026-08-20")
	if intake.listCalls != 1 {
		t.Fatalf("list calls = %d, want 1", intake.listCalls)
	}
	if len(day) != 2 {
		t.Fatalf("day logs len = %d, want 2 from the server", len(day))
	}
}

func TestUpdateIntakeLogRewritesFlatListAndBuckets(t *testing.T) {
	t.Parallel()

	intake := &stubIntakeAPI{
		logsByDate: map[string][]models.IntakeLog{
			"2026-08-20": {{ID: 7, TrackedSupplementID: 3, Date: "2026-08-20", DosageTaken: 400}},
		},
	}
	service := newTestService(nil, intake, nil)
	ctx := context.Background()
	service.IntakeLogsForDate(ctx, "2026-08-20")

	dosage := 200.0
	intake.updated = models.IntakeLog{ID: 7, TrackedSupplementID: 3, Date: "2026-08-20", DosageTaken: dosage}
	if !service.UpdateIntakeLog(ctx, 7, models.IntakeLogPatch{DosageTaken: &dosage}) {
		t.Fatal("UpdateIntakeLog() = false, want true")
	}

	day := service.IntakeLogsForDate(ctx, "2026-08-20")
	if day[0].DosageTaken != dosage {
		t.Fatalf("cached dosage = %v, want %v", day[0].DosageTaken, dosage)
	}
	flat := service.IntakeLogs()
	if flat[0].DosageTaken != dosage {
		t.Fatalf("flat dosage = %v, want %v", flat[0].DosageTaken, dosage)
	}
}

func TestDeleteIntakeLogRemovesEverywhere(t *testing.T) {
	t.Parallel()

	intake := &stubIntakeAPI{
		logsByDate: map[string][]models.IntakeLog{
			"2026-08-20": {
				{ID: 7, TrackedSupplementID: 3, Date: "2026-08-20"},
				{ID: 8, TrackedSupplementID: 4, Date: "2026-08-20"},
			},
		},
	}
	service := newTestService(nil, intake, nil)
	ctx := context.Background()
	service.IntakeLogsForDate(ctx, "2026-08-20")

	if !service.DeleteIntakeLog(ctx, 7) {
		t.Fatal("DeleteIntakeLog() = false, want true")
	}

	day := service.IntakeLogsForDate(ctx, "2026-08-20")
	if len(day) != 1 || day[0].ID != 8 {
		t.Fatalf("day logs after delete = %+v, want only id 8", day)
	}
	if intake.listCalls != 1 {
		t.Fatalf("list calls = %d, want 1", intake.listCalls)
	}
	if got := service.IntakeLogs(); len(got) != 1 {
		t.Fatalf("flat logs after delete len = %d, want 1", len(got))
	}
}
