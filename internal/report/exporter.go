package report

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/terraincognita07/vitalog/internal/dateutil"
	"github.com/terraincognita07/vitalog/internal/models"
)

const (
	pageMargin    = 15.0
	pageBottom    = 282.0 // A4 height minus margin
	contentWidth  = 180.0
	lineHeight    = 6.0
	chartHeightMM = 60.0
	activityDays  = 7
)

// Exporter builds the one-shot PDF report. Pagination is manual: the
// vertical cursor is checked before each block and a new page starts
// when the block would overflow.
type Exporter struct {
	clock func() time.Time
	log   *slog.Logger
}

func NewExporter(log *slog.Logger) *Exporter {
	if log == nil {
		log = slog.Default()
	}
	return &Exporter{clock: time.Now, log: log}
}

func (exporter *Exporter) Build(snapshot Snapshot) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)
	pdf.AddPage()

	now := exporter.clock()
	exporter.writeHeader(pdf, snapshot, now)
	exporter.writeSummary(pdf, snapshot)
	exporter.writeSupplementList(pdf, snapshot.TrackedSupplements)
	exporter.writeConsistencyChart(pdf, snapshot.Consistency)
	exporter.writeRecentIntake(pdf, snapshot, now)
	exporter.writeRecentSymptoms(pdf, snapshot, now)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// Export writes the built document into dir, named with the current
// date, and returns the full path.
func (exporter *Exporter) Export(snapshot Snapshot, dir string) (string, error) {
	document, err := exporter.Build(snapshot)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report directory: %w", err)
	}

	fileName := fmt.Sprintf("vitalog-report-%s.pdf", exporter.clock().Format(dateutil.DateLayout))
	fullPath := filepath.Join(dir, fileName)
	if err := os.WriteFile(fullPath, document, 0o644); err != nil {
		return "", fmt.Errorf("write report file: %w", err)
	}
	return fullPath, nil
}

func (exporter *Exporter) writeHeader(pdf *fpdf.Fpdf, snapshot Snapshot, now time.Time) {
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(contentWidth, 10, "Supplement Report", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	owner := snapshot.User.Name
	if owner == "" {
		owner = snapshot.User.Email
	}
	if owner != "" {
		pdf.CellFormat(contentWidth, lineHeight, "Prepared for "+owner, "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(contentWidth, lineHeight, "Generated "+now.Format("January 2, 2006"), "", 1, "L", false, 0, "")
	pdf.Ln(4)
}

func (exporter *Exporter) writeSummary(pdf *fpdf.Fpdf, snapshot Snapshot) {
	exporter.writeSectionTitle(pdf, "Summary")

	pdf.SetFont("Helvetica", "", 10)
	lines := []string{
		fmt.Sprintf("Tracked supplements: %d", len(snapshot.TrackedSupplements)),
		fmt.Sprintf("Intake logs on record: %d", len(snapshot.IntakeLogs)),
		fmt.Sprintf("Symptom logs on record: %d", len(snapshot.SymptomLogs)),
	}
	for _, streak := range snapshot.Streaks {
		lines = append(lines, fmt.Sprintf("%s: %d day streak (best %d)",
			streak.SupplementName, streak.CurrentStreak, streak.LongestStreak))
	}
	for _, line := range lines {
		exporter.ensureSpace(pdf, lineHeight)
		pdf.CellFormat(contentWidth, lineHeight, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func (exporter *Exporter) writeSupplementList(pdf *fpdf.Fpdf, tracked []models.TrackedSupplement) {
	exporter.writeSectionTitle(pdf, "Tracked Supplements")

	if len(tracked) == 0 {
		exporter.writeEmptyLine(pdf, "No supplements tracked.")
		return
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, entry := range tracked {
		exporter.ensureSpace(pdf, lineHeight)
		line := fmt.Sprintf("%s - %.4g %s, %s (since %s)",
			entry.SupplementName, entry.Dosage, entry.Unit, entry.Frequency, entry.StartDate)
		if entry.EndDate != "" {
			line += " until " + entry.EndDate
		}
		pdf.CellFormat(contentWidth, lineHeight, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func (exporter *Exporter) writeConsistencyChart(pdf *fpdf.Fpdf, series []models.ProgressPoint) {
	exporter.writeSectionTitle(pdf, "14-Day Consistency")

	image, err := renderConsistencyChart(series, contentWidth, chartHeightMM)
	if err != nil {
		exporter.log.Warn("skipping consistency chart", slog.String("error", err.Error()))
		exporter.writeEmptyLine(pdf, "No consistency data for this period.")
		return
	}

	exporter.ensureSpace(pdf, chartHeightMM+4)
	options := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	pdf.RegisterImageOptionsReader("consistency-chart", options, bytes.NewReader(image))
	pdf.ImageOptions("consistency-chart", pageMargin, pdf.GetY(), contentWidth, chartHeightMM, false, options, 0, "")
	pdf.SetY(pdf.GetY() + chartHeightMM + 4)
}

func (exporter *Exporter) writeRecentIntake(pdf *fpdf.Fpdf, snapshot Snapshot, now time.Time) {
	exporter.writeSectionTitle(pdf, "Recent Intake (last 7 days)")

	names := make(map[int]string, len(snapshot.TrackedSupplements))
	for _, entry := range snapshot.TrackedSupplements {
		names[entry.ID] = entry.SupplementName
	}

	wrote := false
	pdf.SetFont("Helvetica", "", 10)
	for _, entry := range snapshot.IntakeLogs {
		if !dateutil.WithinLastDays(entry.Date, now, activityDays) {
			continue
		}
		name := names[entry.TrackedSupplementID]
		if name == "" {
			name = fmt.Sprintf("supplement #%d", entry.TrackedSupplementID)
		}
		exporter.ensureSpace(pdf, lineHeight)
		line := fmt.Sprintf("%s %s - %s, %.4g %s", entry.Date, entry.Time, name, entry.DosageTaken, entry.Unit)
		pdf.CellFormat(contentWidth, lineHeight, line, "", 1, "L", false, 0, "")
		wrote = true
	}
	if !wrote {
		exporter.writeEmptyLine(pdf, "No intake logged in the last 7 days.")
		return
	}
	pdf.Ln(4)
}

func (exporter *Exporter) writeRecentSymptoms(pdf *fpdf.Fpdf, snapshot Snapshot, now time.Time) {
	exporter.writeSectionTitle(pdf, "Recent Symptoms (last 7 days)")

	wrote := false
	pdf.SetFont("Helvetica", "", 10)
	for _, entry := range snapshot.SymptomLogs {
		if entry.Severity == models.SeverityNone {
			continue
		}
		if !dateutil.WithinLastDays(entry.Date, now, activityDays) {
			continue
		}
		name := entry.SymptomName
		if name == "" {
			name = fmt.Sprintf("symptom #%d", entry.SymptomID)
		}
		exporter.ensureSpace(pdf, lineHeight)
		line := fmt.Sprintf("%s - %s (%s)", entry.Date, name, entry.Severity)
		if entry.Notes != "" {
			line += ": " + entry.Notes
		}
		pdf.CellFormat(contentWidth, lineHeight, line, "", 1, "L", false, 0, "")
		wrote = true
	}
	if !wrote {
		exporter.writeEmptyLine(pdf, "No symptoms logged in the last 7 days.")
	}
}

func (exporter *Exporter) writeSectionTitle(pdf *fpdf.Fpdf, title string) {
	exporter.ensureSpace(pdf, 12)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentWidth, 8, title, "", 1, "L", false, 0, "")
}

func (exporter *Exporter) writeEmptyLine(pdf *fpdf.Fpdf, message string) {
	pdf.SetFont("Helvetica", "I", 10)
	exporter.ensureSpace(pdf, lineHeight)
	pdf.CellFormat(contentWidth, lineHeight, message, "", 1, "L", false, 0, "")
	pdf.Ln(4)
}

func (exporter *Exporter) ensureSpace(pdf *fpdf.Fpdf, needed float64) {
	if pdf.GetY()+needed > pageBottom {
		pdf.AddPage()
	}
}
