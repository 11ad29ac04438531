package tracking

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/terraincognita07/vitalog/internal/dateutil"
	"github.com/terraincognita07/vitalog/internal/models"
	"github.com/terraincognita07/vitalog/internal/restapi"
)

var (
	ErrEndBeforeStart = errors.New("end date must not precede start date")
	ErrInvalidDate    = errors.New("invalid date")
)

type SupplementAPI interface {
	GetInteractions(ctx context.Context, supplementID int) ([]models.Interaction, error)
	ListTrackedSupplements(ctx context.Context) ([]models.TrackedSupplement, error)
	CreateTrackedSupplement(ctx context.Context, input models.NewTrackedSupplement) (models.TrackedSupplement, error)
	UpdateTrackedSupplement(ctx context.Context, id int, patch models.TrackedSupplementPatch) (models.TrackedSupplement, error)
	DeleteTrackedSupplement(ctx context.Context, id int) error
}

type IntakeAPI interface {
	ListIntakeLogs(ctx context.Context, from string, to string) ([]models.IntakeLog, error)
	CreateIntakeLog(ctx context.Context, input restapi.NewIntakeLog) (models.IntakeLog, error)
	UpdateIntakeLog(ctx context.Context, id int, patch models.IntakeLogPatch) (models.IntakeLog, error)
	DeleteIntakeLog(ctx context.Context, id int) error
}

type SymptomAPI interface {
	ListSymptoms(ctx context.Context) ([]models.Symptom, error)
	CreateSymptomLog(ctx context.Context, input restapi.NewSymptomLog) (models.SymptomLog, error)
	SymptomLogsByDate(ctx context.Context, date string) ([]models.SymptomLog, error)
	DatesWithSymptoms(ctx context.Context) ([]string, error)
}

// Service is the in-memory source of truth for the signed-in user's
// tracking data, fronting the remote API with per-date memo caches.
// Reads degrade to empty results on fetch failure; writes report
// success as booleans. Fetches are not de-duplicated while in flight:
// two concurrent reads of a cold date both hit the server and the last
// response wins the bucket.
type Service struct {
	mu          sync.Mutex
	supplements SupplementAPI
	intake      IntakeAPI
	symptoms    SymptomAPI
	log         *slog.Logger

	tracked        []models.TrackedSupplement
	trackedLoaded  bool
	intakeLogs     []models.IntakeLog
	symptomLogs    []models.SymptomLog
	symptomCatalog []models.Symptom
	catalogLoaded  bool
	intakeByDate   *dateCache[models.IntakeLog]
	symptomsByDate *dateCache[models.SymptomLog]
}

func NewService(supplements SupplementAPI, intake IntakeAPI, symptoms SymptomAPI, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		supplements:    supplements,
		intake:         intake,
		symptoms:       symptoms,
		log:            log,
		intakeByDate:   newDateCache[models.IntakeLog](),
		symptomsByDate: newDateCache[models.SymptomLog](),
	}
}

// Clear wipes every cached collection; the session store calls this on
// sign-out so the next user never sees stale data.
func (service *Service) Clear() {
	service.mu.Lock()
	defer service.mu.Unlock()
	service.tracked = nil
	service.trackedLoaded = false
	service.intakeLogs = nil
	service.symptomLogs = nil
	service.symptomCatalog = nil
	service.catalogLoaded = false
	service.intakeByDate.clear()
	service.symptomsByDate.clear()
}

func validateDateRange(startDate string, endDate string) error {
	start, err := dateutil.ParseDateKey(startDate)
	if err != nil {
		return ErrInvalidDate
	}
	if endDate == "" {
		return nil
	}
	end, err := dateutil.ParseDateKey(endDate)
	if err != nil {
		return ErrInvalidDate
	}
	if end.Before(start) {
		return ErrEndBeforeStart
	}
	return nil
}

// mergeByDate removes the flat list's entries for one date and appends
// the fresh ones, leaving other dates untouched.
func mergeByDate[T any](flat []T, date string, fresh []T, dateOf func(T) string) []T {
	merged := make([]T, 0, len(flat)+len(fresh))
	for _, entry := range flat {
		if dateOf(entry) != date {
			merged = append(merged, entry)
		}
	}
	return append(merged, fresh...)
}
