package tracking

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/terraincognita07/vitalog/internal/models"
	"github.com/terraincognita07/vitalog/internal/restapi"
)

type stubSupplementAPI struct {
	interactions     map[int][]models.Interaction
	interactionsErr  error
	tracked          []models.TrackedSupplement
	listErr          error
	listCalls        int
	interactionCalls int
	created          models.TrackedSupplement
	createErr        error
	createCalls      int
	updated          models.TrackedSupplement
	updateErr        error
	updateCalls      int
	deleteErr        error
	deleteCalls      int
}

func (stub *stubSupplementAPI) GetInteractions(ctx context.Context, supplementID int) ([]models.Interaction, error) {
	stub.interactionCalls++
	if stub.interactionsErr != nil {
		return nil, stub.interactionsErr
	}
	return stub.interactions[supplementID], nil
}

func (stub *stubSupplementAPI) ListTrackedSupplements(ctx context.Context) ([]models.TrackedSupplement, error) {
	stub.listCalls++
	if stub.listErr != nil {
		return nil, stub.listErr
	}
	return stub.tracked, nil
}

func (stub *stubSupplementAPI) CreateTrackedSupplement(ctx context.Context, input models.NewTrackedSupplement) (models.TrackedSupplement, error) {
	stub.createCalls++
	if stub.createErr != nil {
		return models.TrackedSupplement{}, stub.createErr
	}
	return stub.created, nil
}

func (stub *stubSupplementAPI) UpdateTrackedSupplement(ctx context.Context, id int, patch models.TrackedSupplementPatch) (models.TrackedSupplement, error) {
	stub.updateCalls++
	if stub.updateErr != nil {
		return models.TrackedSupplement{}, stub.updateErr
	}
	return stub.updated, nil
}

func (stub *stubSupplementAPI) DeleteTrackedSupplement(ctx context.Context, id int) error {
	stub.deleteCalls++
	return stub.deleteErr
}

type stubIntakeAPI struct {
	logsByDate  map[string][]models.IntakeLog
	listErr     error
	listCalls   int
	created     models.IntakeLog
	createErr   error
	createCalls int
	updated     models.IntakeLog
	updateErr   error
	deleteErr   error
}

func (stub *stubIntakeAPI) ListIntakeLogs(ctx context.Context, from string, to string) ([]models.IntakeLog, error) {
	stub.listCalls++
	if stub.listErr != nil {
		return nil, stub.listErr
	}
	return stub.logsByDate[from], nil
}

func (stub *stubIntakeAPI) CreateIntakeLog(ctx context.Context, input restapi.NewIntakeLog) (models.IntakeLog, error) {
	stub.createCalls++
	if stub.createErr != nil {
		return models.IntakeLog{}, stub.createErr
	}
	return stub.created, nil
}

func (stub *stubIntakeAPI) UpdateIntakeLog(ctx context.Context, id int, patch models.IntakeLogPatch) (models.IntakeLog, error) {
	if stub.updateErr != nil {
		return models.IntakeLog{}, stub.updateErr
	}
	return stub.updated, nil
}

func (stub *stubIntakeAPI) DeleteIntakeLog(ctx context.Context, id int) error {
	return stub.deleteErr
}

type stubSymptomAPI struct {
	symptoms     []models.Symptom
	symptomsErr  error
	symptomCalls int
	logsByDate   map[string][]models.SymptomLog
	byDateErr    error
	byDateCalls  int
	created      models.SymptomLog
	createErr    error
	createCalls  int
	dates        []string
	datesErr     error
}

func (stub *stubSymptomAPI) ListSymptoms(ctx context.Context) ([]models.Symptom, error) {
	stub.symptomCalls++
	if stub.symptomsErr != nil {
		return nil, stub.symptomsErr
	}
	return stub.symptoms, nil
}

func (stub *stubSymptomAPI) CreateSymptomLog(ctx context.Context, input restapi.NewSymptomLog) (models.SymptomLog, error) {
	stub.createCalls++
	if stub.createErr != nil {
		return models.SymptomLog{}, stub.createErr
	}
	return stub.created, nil
}

func (stub *stubSymptomAPI) SymptomLogsByDate(ctx context.Context, date string) ([]models.SymptomLog, error) {
	stub.byDateCalls++
	if stub.byDateErr != nil {
		return nil, stub.byDateErr
	}
	return stub.logsByDate[date], nil
}

func (stub *stubSymptomAPI) DatesWithSymptoms(ctx context.Context) ([]string, error) {
	if stub.datesErr != nil {
		return nil, stub.datesErr
	}
	return stub.dates, nil
}

func newTestService(supplements *stubSupplementAPI, intake *stubIntakeAPI, symptoms *stubSymptomAPI) *Service {
	if supplements == nil {
		supplements = &stubSupplementAPI{}
	}
	if intake == nil {
		intake = &stubIntakeAPI{}
	}
	if symptoms == nil {
		symptoms = &stubSymptomAPI{}
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(supplements, intake, symptoms, log)
}

func TestClearForcesRefetch(t *testing.T) {
	t.Parallel()

	supplements := &stubSupplementAPI{tracked: []models.TrackedSupplement{{ID: 1, SupplementID: 10}}}
	intake := &stubIntakeAPI{logsByDate: map[string][]models.IntakeLog{
		"2026-08-20": {{ID: 5, TrackedSupplementID: 1, Date: "2026-08-20"}},
	}}
	service := newTestService(supplements, intake, nil)
	ctx := context.Background()

	service.TrackedSupplements(ctx)
	service.IntakeLogsForDate(ctx, "2026-08-20")
	service.Clear()

	if got := service.TrackedSupplements(ctx); len(got) != 1 {
		t.Fatalf("TrackedSupplements() after Clear len = %d, want 1", len(got))
	}
	service.IntakeLogsForDate(ctx, "2026-08-20")

	if supplements.listCalls != 2 {
		t.Fatalf("tracked list calls = %d, want 2", supplements.listCalls)
	}
	if intake.listCalls != 2 {
		t.Fatalf("intake list calls = %d, want 2", intake.listCalls)
	}
	if got := len(service.IntakeLogs()); got != 1 {
		t.Fatalf("flat intake logs after refetch len = %d, want 1", got)
	}
}

func TestValidateDateRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		startDate string
		endDate   string
		wantErr   error
	}{
		{name: "open ended", startDate: "2026-08-01", endDate: "", wantErr: nil},
		{name: "same day", startDate: "2026-08-01", endDate: "2026-08-01", wantErr: nil},
		{name: "ordered", startDate: "2026-08-01", endDate: "2026-09-01", wantErr: nil},
		{name: "end before start", startDate: "2026-08-01", endDate: "2026-07-31", wantErr: ErrEndBeforeStart},
		{name: "bad start", startDate: "august first", endDate: "", wantErr: ErrInvalidDate},
		{name: "bad end", startDate: "2026-08-01", endDate: "soon", wantErr: ErrInvalidDate},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			if err := validateDateRange(test.startDate, test.endDate); err != test.wantErr {
				t.Fatalf("validateDateRange(%q, %q) = %v, want %v", test.startDate, test.endDate, err, test.wantErr)
			}
		})
	}
}
