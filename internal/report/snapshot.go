package report

import "github.com/terraincognita07/vitalog/internal/models"

// Snapshot is the in-memory state handed to the exporter: nothing is
// fetched during a build, and an empty snapshot still yields a valid
// document.
type Snapshot struct {
	User               models.User
	TrackedSupplements []models.TrackedSupplement
	IntakeLogs         []models.IntakeLog
	SymptomLogs        []models.SymptomLog
	Streaks            []models.Streak

	// Consistency is the precomputed 14-day adherence series, oldest
	// first, percent in [0, 100].
	Consistency []models.ProgressPoint
}
