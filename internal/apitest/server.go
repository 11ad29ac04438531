package apitest

import (
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/terraincognita07/vitalog/internal/models"
)

// Server is an in-process stand-in for the remote supplement API, used
// by integration tests. It serves the same resources the production
// client consumes and counts requests per route so tests can assert
// cache behavior.
type Server struct {
	app      *fiber.App
	addr     string
	secret   []byte
	tokenTTL time.Duration

	mu           sync.Mutex
	users        map[string]*account
	tokens       map[string]string // token -> email
	supplements  map[int]models.Supplement
	interactions map[int][]models.Interaction
	symptoms     []models.Symptom
	tracked      []models.TrackedSupplement
	intakeLogs   []models.IntakeLog
	symptomLogs  []models.SymptomLog
	alerts       []models.Alert
	nextID       int
	requests     map[string]int
}

type account struct {
	user     models.User
	password string
}

func NewServer() (*Server, error) {
	server := &Server{
		secret:       []byte("apitest-secret"),
		tokenTTL:     time.Hour,
		users:        make(map[string]*account),
		tokens:       make(map[string]string),
		supplements:  make(map[int]models.Supplement),
		interactions: make(map[int][]models.Interaction),
		nextID:       1,
		requests:     make(map[string]int),
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(func(c *fiber.Ctx) error {
		err := c.Next()
		server.mu.Lock()
		server.requests[c.Method()+" "+c.Route().Path]++
		server.mu.Unlock()
		return err
	})
	server.registerRoutes(app)
	server.app = app

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("listen: %w", err)
	}
	server.addr = listener.Addr().String()

	go func() {
		_ = app.Listener(listener)
	}()
	return server, nil
}

func (server *Server) BaseURL() string {
	return "http://" + server.addr
}

func (server *Server) Close() {
	_ = server.app.Shutdown()
}

// RequestCount reports how many requests hit the method and route
// pattern, e.g. ("GET", "/api/intake-logs").
func (server *Server) RequestCount(method string, routePath string) int {
	server.mu.Lock()
	defer server.mu.Unlock()
	return server.requests[method+" "+routePath]
}

func (server *Server) allocateID() int {
	id := server.nextID
	server.nextID++
	return id
}

// SeedUser registers an account and returns its identity.
func (server *Server) SeedUser(name string, email string, password string) models.User {
	server.mu.Lock()
	defer server.mu.Unlock()
	user := models.User{ID: server.allocateID(), Name: name, Email: email}
	server.users[email] = &account{user: user, password: password}
	return user
}

func (server *Server) SeedSupplement(name string) models.Supplement {
	server.mu.Lock()
	defer server.mu.Unlock()
	supplement := models.Supplement{ID: server.allocateID(), Name: name}
	server.supplements[supplement.ID] = supplement
	return supplement
}

func (server *Server) SeedInteraction(supplementID int, otherID int, description string, recommendation string) {
	server.mu.Lock()
	defer server.mu.Unlock()
	other := server.supplements[otherID]
	server.interactions[supplementID] = append(server.interactions[supplementID], models.Interaction{
		ID:             server.allocateID(),
		SupplementID:   supplementID,
		OtherID:        otherID,
		OtherName:      other.Name,
		Severity:       "moderate",
		Description:    description,
		Recommendation: recommendation,
	})
}

func (server *Server) SeedSymptom(name string, categoryID int, categoryName string) models.Symptom {
	server.mu.Lock()
	defer server.mu.Unlock()
	symptom := models.Symptom{
		ID:           server.allocateID(),
		Name:         name,
		CategoryID:   categoryID,
		CategoryName: categoryName,
	}
	server.symptoms = append(server.symptoms, symptom)
	return symptom
}

func (server *Server) SeedAlert(title string, message string, severity string) models.Alert {
	server.mu.Lock()
	defer server.mu.Unlock()
	alert := models.Alert{
		ID:        server.allocateID(),
		Type:      "system",
		Title:     title,
		Message:   message,
		Severity:  severity,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	server.alerts = append(server.alerts, alert)
	return alert
}

// IssueToken mints a signed token for a seeded user, for tests that
// bypass the login endpoint.
func (server *Server) IssueToken(email string) string {
	server.mu.Lock()
	defer server.mu.Unlock()
	return server.issueTokenLocked(email)
}

func (server *Server) issueTokenLocked(email string) string {
	claims := jwt.RegisteredClaims{
		Subject:   email,
		ID:        uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(server.tokenTTL)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(server.secret)
	if err != nil {
		panic(fmt.Sprintf("apitest: sign token: %v", err))
	}
	server.tokens[token] = email
	return token
}

func (server *Server) accountForToken(token string) (*account, bool) {
	server.mu.Lock()
	defer server.mu.Unlock()
	email, ok := server.tokens[token]
	if !ok {
		return nil, false
	}
	acct, ok := server.users[email]
	return acct, ok
}
