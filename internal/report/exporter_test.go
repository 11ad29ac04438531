package report

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/terraincognita07/vitalog/internal/models"
)

func newTestExporter(now time.Time) *Exporter {
	exporter := NewExporter(slog.New(slog.NewTextHandler(io.Discard, nil)))
	exporter.clock = func() time.Time { return now }
	return exporter
}

func fullSnapshot(now time.Time) Snapshot {
	today := now.Format("2006-01-02")
	return Snapshot{
		User: models.User{ID: 1, Name: "Dana", Email: "dana@example.com"},
		TrackedSupplements: []models.TrackedSupplement{
			{ID: 1, SupplementID: 10, SupplementName: "Magnesium", Dosage: 400, Unit: "mg", Frequency: models.FrequencyDaily, StartDate: "2026-07-01"},
			{ID: 2, SupplementID: 20, SupplementName: "Vitamin D", Dosage: 2000, Unit: "IU", Frequency: models.FrequencyDaily, StartDate: "2026-06-01", EndDate: "2026-12-31"},
		},
		IntakeLogs: []models.IntakeLog{
			{ID: 1, TrackedSupplementID: 1, Date: today, Time: "09:00", DosageTaken: 400, Unit: "mg"},
		},
		SymptomLogs: []models.SymptomLog{
			{ID: 1, SymptomID: 4, SymptomName: "Headache", Date: today, Severity: models.SeverityMild},
			{ID: 2, SymptomID: 5, SymptomName: "Nausea", Date: today, Severity: models.SeverityNone},
		},
		Streaks: []models.Streak{
			{TrackedSupplementID: 1, SupplementName: "Magnesium", CurrentStreak: 12, LongestStreak: 30},
		},
		Consistency: []models.ProgressPoint{
			{Date: "2026-08-27", Percent: 50},
			{Date: "2026-08-28", Percent: 100},
			{Date: "2026-08-29", Percent: 75},
		},
	}
}

func TestBuildProducesPDF(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.August, 29, 10, 0, 0, 0, time.UTC)
	document, err := newTestExporter(now).Build(fullSnapshot(now))
	if err != nil {
		t.Fatalf("Build() returned error: %v", err)
	}
	if !bytes.HasPrefix(document, []byte("%PDF")) {
		t.Fatalf("document starts with %q, want a PDF header", document[:min(8, len(document))])
	}
}

func TestBuildEmptySnapshot(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.August, 29, 10, 0, 0, 0, time.UTC)
	document, err := newTestExporter(now).Build(Snapshot{})
	if err != nil {
		t.Fatalf("Build(empty) returned error: %v", err)
	}
	if !bytes.HasPrefix(document, []byte("%PDF")) {
		t.Fatal("empty snapshot did not produce a PDF document")
	}
}

func TestBuildManyRowsPaginates(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.August, 29, 10, 0, 0, 0, time.UTC)
	snapshot := fullSnapshot(now)
	for index := 0; index < 120; index++ {
		snapshot.TrackedSupplements = append(snapshot.TrackedSupplements, models.TrackedSupplement{
			ID:             100 + index,
			SupplementName: fmt.Sprintf("Supplement %d", index),
			Dosage:         100,
			Unit:           "mg",
			Frequency:      models.FrequencyDaily,
			StartDate:      "2026-01-01",
		})
	}

	single, err := newTestExporter(now).Build(fullSnapshot(now))
	if err != nil {
		t.Fatalf("Build(small) returned error: %v", err)
	}
	large, err := newTestExporter(now).Build(snapshot)
	if err != nil {
		t.Fatalf("Build(large) returned error: %v", err)
	}
	if len(large) <= len(single) {
		t.Fatalf("large document is %d bytes, small is %d; expected growth from added pages", len(large), len(single))
	}
}

func TestExportWritesDatedFile(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.August, 29, 10, 0, 0, 0, time.UTC)
	dir := filepath.Join(t.TempDir(), "reports")

	path, err := newTestExporter(now).Export(fullSnapshot(now), dir)
	if err != nil {
		t.Fatalf("Export() returned error: %v", err)
	}
	if filepath.Base(path) != "vitalog-report-2026-08-29.pdf" {
		t.Fatalf("export file name = %q, want vitalog-report-2026-08-29.pdf", filepath.Base(path))
	}

	written, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading exported file: %v", err)
	}
	if !bytes.HasPrefix(written, []byte("%PDF")) {
		t.Fatal("exported file is not a PDF document")
	}
}

func TestRenderConsistencyChartEmptySeries(t *testing.T) {
	t.Parallel()

	if _, err := renderConsistencyChart(nil, contentWidth, chartHeightMM); err == nil {
		t.Fatal("renderConsistencyChart(nil) returned nil error")
	}
}

func TestRenderConsistencyChartPNG(t *testing.T) {
	t.Parallel()

	series := []models.ProgressPoint{
		{Date: "2026-08-27", Percent: -10},
		{Date: "2026-08-28", Percent: 140},
		{Date: "2026-08-29", Percent: 60},
	}
	image, err := renderConsistencyChart(series, contentWidth, chartHeightMM)
	if err != nil {
		t.Fatalf("renderConsistencyChart() returned error: %v", err)
	}
	if !bytes.HasPrefix(image, []byte("\x89PNG")) {
		t.Fatal("chart image is not a PNG")
	}
}

func TestClampPercent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value float64
		want  float64
	}{
		{value: -5, want: 0},
		{value: 0, want: 0},
		{value: 62.5, want: 62.5},
		{value: 100, want: 100},
		{value: 130, want: 100},
	}
	for _, test := range tests {
		if got := clampPercent(test.value); got != test.want {
			t.Fatalf("clampPercent(%v) = %v, want %v", test.value, got, test.want)
		}
	}
}
