package apitest

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/vitalog/internal/models"
)

func (server *Server) registerRoutes(app *fiber.App) {
	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Post("/api/auth/register", server.handleRegister)
	app.Post("/api/auth/login", server.handleLogin)
	app.Get("/api/auth/me", server.requireAuth(server.handleMe))

	app.Get("/api/supplements/search", server.handleSearch)
	app.Get("/api/supplements/autocomplete", server.handleAutocomplete)
	app.Get("/api/supplements/:id/interactions", server.handleInteractions)
	app.Get("/api/supplements/:id", server.handleSupplement)

	app.Get("/api/tracked-supplements", server.requireAuth(server.handleTrackedList))
	app.Post("/api/tracked-supplements", server.requireAuth(server.handleTrackedCreate))
	app.Put("/api/tracked-supplements/:id", server.requireAuth(server.handleTrackedUpdate))
	app.Delete("/api/tracked-supplements/:id", server.requireAuth(server.handleTrackedDelete))

	app.Get("/api/intake-logs/today", server.requireAuth(server.handleIntakeToday))
	app.Get("/api/intake-logs", server.requireAuth(server.handleIntakeList))
	app.Post("/api/intake-logs", server.requireAuth(server.handleIntakeCreate))
	app.Put("/api/intake-logs/:id", server.requireAuth(server.handleIntakeUpdate))
	app.Delete("/api/intake-logs/:id", server.requireAuth(server.handleIntakeDelete))

	app.Get("/api/symptoms", server.requireAuth(server.handleSymptomCatalog))
	app.Get("/api/symptom-logs/summary", server.requireAuth(server.handleSymptomSummary))
	app.Get("/api/symptom-logs/dates", server.requireAuth(server.handleSymptomDates))
	app.Get("/api/symptom-logs", server.requireAuth(server.handleSymptomLogsByDate))
	app.Post("/api/symptom-logs", server.requireAuth(server.handleSymptomLogCreate))
	app.Delete("/api/symptom-logs/:id", server.requireAuth(server.handleSymptomLogDelete))

	app.Get("/api/alerts", server.requireAuth(server.handleAlertList))
	app.Put("/api/alerts/:id/read", server.requireAuth(server.handleAlertRead))
	app.Post("/api/alerts/test", server.requireAuth(server.handleAlertTest))

	app.Get("/api/reports", server.requireAuth(server.handleReport))
	app.Get("/api/reports/streaks", server.requireAuth(server.handleStreaks))
	app.Get("/api/reports/progress", server.requireAuth(server.handleProgress))
}

func (server *Server) requireAuth(handler fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == header || token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing bearer token"})
		}
		if _, ok := server.accountForToken(token); !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
		}
		return handler(c)
	}
}

func (server *Server) handleRegister(c *fiber.Ctx) error {
	input := struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	if input.Email == "" || input.Password == "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "email and password are required"})
	}

	server.mu.Lock()
	defer server.mu.Unlock()
	if _, exists := server.users[input.Email]; exists {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "email already registered"})
	}
	user := models.User{ID: server.allocateID(), Name: input.Name, Email: input.Email}
	server.users[input.Email] = &account{user: user, password: input.Password}
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (server *Server) handleLogin(c *fiber.Ctx) error {
	input := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}

	server.mu.Lock()
	acct, ok := server.users[input.Email]
	if !ok || acct.password != input.Password {
		server.mu.Unlock()
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
	}
	token := server.issueTokenLocked(input.Email)
	server.mu.Unlock()

	return c.JSON(fiber.Map{"token": token, "user": acct.user})
}

func (server *Server) handleMe(c *fiber.Ctx) error {
	acct, _ := server.accountForToken(bearerToken(c))
	return c.JSON(acct.user)
}

func (server *Server) handleSearch(c *fiber.Ctx) error {
	query := strings.ToLower(c.Query("q"))
	server.mu.Lock()
	defer server.mu.Unlock()
	matches := []models.Supplement{}
	for _, supplement := range server.supplements {
		if strings.Contains(strings.ToLower(supplement.Name), query) {
			matches = append(matches, supplement)
		}
	}
	sort.Slice(matches, func(left, right int) bool { return matches[left].ID < matches[right].ID })
	return c.JSON(matches)
}

func (server *Server) handleAutocomplete(c *fiber.Ctx) error {
	prefix := strings.ToLower(c.Query("q"))
	server.mu.Lock()
	defer server.mu.Unlock()
	names := []string{}
	for _, supplement := range server.supplements {
		if strings.HasPrefix(strings.ToLower(supplement.Name), prefix) {
			names = append(names, supplement.Name)
		}
	}
	sort.Strings(names)
	return c.JSON(names)
}

func (server *Server) handleSupplement(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	server.mu.Lock()
	defer server.mu.Unlock()
	supplement, ok := server.supplements[id]
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "supplement not found"})
	}
	return c.JSON(supplement)
}

func (server *Server) handleInteractions(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	server.mu.Lock()
	defer server.mu.Unlock()
	interactions := server.interactions[id]
	if interactions == nil {
		interactions = []models.Interaction{}
	}
	return c.JSON(interactions)
}

func (server *Server) handleTrackedList(c *fiber.Ctx) error {
	server.mu.Lock()
	defer server.mu.Unlock()
	return c.JSON(server.tracked)
}

func (server *Server) handleTrackedCreate(c *fiber.Ctx) error {
	var input models.NewTrackedSupplement
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}

	server.mu.Lock()
	defer server.mu.Unlock()
	created := models.TrackedSupplement{
		ID:             server.allocateID(),
		SupplementID:   input.SupplementID,
		SupplementName: input.SupplementName,
		Dosage:         input.Dosage,
		Unit:           input.Unit,
		Frequency:      input.Frequency,
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
		Notes:          input.Notes,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	if created.SupplementName == "" {
		created.SupplementName = server.supplements[input.SupplementID].Name
	}
	server.tracked = append(server.tracked, created)
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (server *Server) handleTrackedUpdate(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	var patch models.TrackedSupplementPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}

	server.mu.Lock()
	defer server.mu.Unlock()
	for index := range server.tracked {
		if server.tracked[index].ID != id {
			continue
		}
		entry := &server.tracked[index]
		if patch.Dosage != nil {
			entry.Dosage = *patch.Dosage
		}
		if patch.Unit != nil {
			entry.Unit = *patch.Unit
		}
		if patch.Frequency != nil {
			entry.Frequency = *patch.Frequency
		}
		if patch.StartDate != nil {
			entry.StartDate = *patch.StartDate
		}
		if patch.EndDate != nil {
			entry.EndDate = *patch.EndDate
		}
		if patch.Notes != nil {
			entry.Notes = *patch.Notes
		}
		entry.UpdatedAt = time.Now()
		return c.JSON(*entry)
	}
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "tracked supplement not found"})
}

func (server *Server) handleTrackedDelete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	server.mu.Lock()
	defer server.mu.Unlock()
	filtered := server.tracked[:0]
	found := false
	for _, entry := range server.tracked {
		if entry.ID == id {
			found = true
			continue
		}
		filtered = append(filtered, entry)
	}
	server.tracked = filtered
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "tracked supplement not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (server *Server) handleIntakeList(c *fiber.Ctx) error {
	from := c.Query("from")
	to := c.Query("to")
	server.mu.Lock()
	defer server.mu.Unlock()
	matches := []models.IntakeLog{}
	for _, entry := range server.intakeLogs {
		if (from == "" || entry.Date >= from) && (to == "" || entry.Date <= to) {
			matches = append(matches, entry)
		}
	}
	return c.JSON(matches)
}

func (server *Server) handleIntakeToday(c *fiber.Ctx) error {
	today := time.Now().UTC().Format("2006-01-02")
	server.mu.Lock()
	defer server.mu.Unlock()
	matches := []models.IntakeLog{}
	for _, entry := range server.intakeLogs {
		if entry.Date == today {
			matches = append(matches, entry)
		}
	}
	return c.JSON(matches)
}

func (server *Server) handleIntakeCreate(c *fiber.Ctx) error {
	input := struct {
		TrackedSupplementID int     `json:"tracked_supplement_id"`
		Date                string  `json:"date"`
		Time                string  `json:"time"`
		DosageTaken         float64 `json:"dosage_taken"`
		Unit                string  `json:"unit"`
		Notes               string  `json:"notes"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	if input.Date == "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "date is required"})
	}

	server.mu.Lock()
	defer server.mu.Unlock()
	created := models.IntakeLog{
		ID:                  server.allocateID(),
		TrackedSupplementID: input.TrackedSupplementID,
		Date:                input.Date,
		Time:                input.Time,
		DosageTaken:         input.DosageTaken,
		Unit:                input.Unit,
		Notes:               input.Notes,
		CreatedAt:           time.Now(),
		UpdatedAt:           time.Now(),
	}
	server.intakeLogs = append(server.intakeLogs, created)
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (server *Server) handleIntakeUpdate(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	var patch models.IntakeLogPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}

	server.mu.Lock()
	defer server.mu.Unlock()
	for index := range server.intakeLogs {
		if server.intakeLogs[index].ID != id {
			continue
		}
		entry := &server.intakeLogs[index]
		if patch.Time != nil {
			entry.Time = *patch.Time
		}
		if patch.DosageTaken != nil {
			entry.DosageTaken = *patch.DosageTaken
		}
		if patch.Unit != nil {
			entry.Unit = *patch.Unit
		}
		if patch.Notes != nil {
			entry.Notes = *patch.Notes
		}
		entry.UpdatedAt = time.Now()
		return c.JSON(*entry)
	}
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "intake log not found"})
}

func (server *Server) handleIntakeDelete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	server.mu.Lock()
	defer server.mu.Unlock()
	filtered := server.intakeLogs[:0]
	found := false
	for _, entry := range server.intakeLogs {
		if entry.ID == id {
			found = true
			continue
		}
		filtered = append(filtered, entry)
	}
	server.intakeLogs = filtered
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "intake log not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (server *Server) handleSymptomCatalog(c *fiber.Ctx) error {
	server.mu.Lock()
	defer server.mu.Unlock()
	return c.JSON(server.symptoms)
}

func (server *Server) handleSymptomLogCreate(c *fiber.Ctx) error {
	input := struct {
		SymptomID int    `json:"symptom_id"`
		Date      string `json:"date"`
		Severity  string `json:"severity"`
		Notes     string `json:"notes"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	if !models.IsValidSeverity(input.Severity) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "invalid severity"})
	}

	server.mu.Lock()
	defer server.mu.Unlock()

	// Upsert by (symptom, date); toggling off stores severity none.
	for index := range server.symptomLogs {
		entry := &server.symptomLogs[index]
		if entry.SymptomID == input.SymptomID && entry.Date == input.Date {
			entry.Severity = input.Severity
			entry.Notes = input.Notes
			entry.UpdatedAt = time.Now()
			return c.JSON(*entry)
		}
	}

	name := ""
	for _, symptom := range server.symptoms {
		if symptom.ID == input.SymptomID {
			name = symptom.Name
			break
		}
	}
	created := models.SymptomLog{
		ID:          server.allocateID(),
		SymptomID:   input.SymptomID,
		SymptomName: name,
		Date:        input.Date,
		Severity:    input.Severity,
		Notes:       input.Notes,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	server.symptomLogs = append(server.symptomLogs, created)
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (server *Server) handleSymptomLogsByDate(c *fiber.Ctx) error {
	date := c.Query("date")
	server.mu.Lock()
	defer server.mu.Unlock()
	matches := []models.SymptomLog{}
	for _, entry := range server.symptomLogs {
		if entry.Date == date {
			matches = append(matches, entry)
		}
	}
	return c.JSON(matches)
}

func (server *Server) handleSymptomSummary(c *fiber.Ctx) error {
	date := c.Query("date")
	server.mu.Lock()
	defer server.mu.Unlock()
	total := 0
	worst := models.SeverityNone
	rank := map[string]int{
		models.SeverityNone:    0,
		models.SeverityMild:    1,
		models.SeverityAverage: 2,
		models.SeveritySevere:  3,
	}
	for _, entry := range server.symptomLogs {
		if entry.Date != date || entry.Severity == models.SeverityNone {
			continue
		}
		total++
		if rank[entry.Severity] > rank[worst] {
			worst = entry.Severity
		}
	}
	return c.JSON(fiber.Map{"date": date, "total": total, "worst_level": worst})
}

func (server *Server) handleSymptomDates(c *fiber.Ctx) error {
	server.mu.Lock()
	defer server.mu.Unlock()
	seen := make(map[string]bool)
	dates := []string{}
	for _, entry := range server.symptomLogs {
		if entry.Severity == models.SeverityNone || seen[entry.Date] {
			continue
		}
		seen[entry.Date] = true
		dates = append(dates, entry.Date)
	}
	sort.Strings(dates)
	return c.JSON(dates)
}

func (server *Server) handleSymptomLogDelete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	server.mu.Lock()
	defer server.mu.Unlock()
	filtered := server.symptomLogs[:0]
	found := false
	for _, entry := range server.symptomLogs {
		if entry.ID == id {
			found = true
			continue
		}
		filtered = append(filtered, entry)
	}
	server.symptomLogs = filtered
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "symptom log not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (server *Server) handleAlertList(c *fiber.Ctx) error {
	server.mu.Lock()
	defer server.mu.Unlock()
	return c.JSON(server.alerts)
}

func (server *Server) handleAlertRead(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	server.mu.Lock()
	defer server.mu.Unlock()
	for index := range server.alerts {
		if server.alerts[index].ID != id {
			continue
		}
		// Idempotent: re-marking a read alert changes nothing.
		if !server.alerts[index].Read {
			server.alerts[index].Read = true
			server.alerts[index].UpdatedAt = time.Now()
		}
		return c.JSON(server.alerts[index])
	}
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "alert not found"})
}

func (server *Server) handleAlertTest(c *fiber.Ctx) error {
	server.mu.Lock()
	defer server.mu.Unlock()
	alert := models.Alert{
		ID:        server.allocateID(),
		Type:      "test",
		Title:     "Test alert",
		Message:   "This is a generated test alert.",
		Severity:  models.AlertSeverityLow,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	server.alerts = append(server.alerts, alert)
	return c.Status(fiber.StatusCreated).JSON(alert)
}

func (server *Server) handleReport(c *fiber.Ctx) error {
	rangeName := c.Query("range")
	if !models.IsValidRange(rangeName) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "invalid range"})
	}
	server.mu.Lock()
	defer server.mu.Unlock()
	return c.JSON(models.Report{
		Range:        rangeName,
		IntakeTotal:  len(server.intakeLogs),
		SymptomTotal: len(server.symptomLogs),
	})
}

func (server *Server) handleStreaks(c *fiber.Ctx) error {
	server.mu.Lock()
	defer server.mu.Unlock()
	streaks := []models.Streak{}
	for _, entry := range server.tracked {
		count := 0
		for _, logEntry := range server.intakeLogs {
			if logEntry.TrackedSupplementID == entry.ID {
				count++
			}
		}
		streaks = append(streaks, models.Streak{
			TrackedSupplementID: entry.ID,
			SupplementName:      entry.SupplementName,
			CurrentStreak:       count,
			LongestStreak:       count,
		})
	}
	return c.JSON(streaks)
}

func (server *Server) handleProgress(c *fiber.Ctx) error {
	rangeName := c.Query("range")
	if !models.IsValidRange(rangeName) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "invalid range"})
	}
	server.mu.Lock()
	defer server.mu.Unlock()
	points := []models.ProgressPoint{}
	byDate := make(map[string]int)
	for _, entry := range server.intakeLogs {
		byDate[entry.Date]++
	}
	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	expected := len(server.tracked)
	for _, date := range dates {
		percent := 100.0
		if expected > 0 {
			percent = 100.0 * float64(byDate[date]) / float64(expected)
		}
		points = append(points, models.ProgressPoint{Date: date, Percent: percent})
	}
	return c.JSON(points)
}

func bearerToken(c *fiber.Ctx) string {
	return strings.TrimPrefix(c.Get("Authorization"), "Bearer ")
}
