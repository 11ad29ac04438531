package session

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/vitalog/internal/models"
	"github.com/terraincognita07/vitalog/internal/restapi"
)

type State string

const (
	StateChecking      State = "checking"
	StateAuthenticated State = "authenticated"
	StateAnonymous     State = "anonymous"
)

var (
	ErrInvalidEmail  = errors.New("invalid email address")
	ErrEmptyPassword = errors.New("password is required")
	ErrEmptyName     = errors.New("name is required")
)

type AuthAPI interface {
	Login(ctx context.Context, email string, password string) (restapi.LoginResult, error)
	Register(ctx context.Context, input restapi.RegisterInput) error
	Me(ctx context.Context) (models.User, error)
}

type SessionStorage interface {
	SaveSession(token string, user any) error
	LoadSession(user any) (string, error)
	ClearAll() error
}

// CacheClearer is implemented by session-scoped caches that must be
// wiped on sign-out (the tracking data cache registers itself here).
type CacheClearer interface {
	Clear()
}

type Store struct {
	mu       sync.Mutex
	api      AuthAPI
	storage  SessionStorage
	clearers []CacheClearer
	state    State
	user     models.User
	clock    func() time.Time
	log      *slog.Logger
}

func NewStore(api AuthAPI, storage SessionStorage, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		api:     api,
		storage: storage,
		state:   StateChecking,
		clock:   time.Now,
		log:     log,
	}
}

func (store *Store) RegisterClearer(clearer CacheClearer) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.clearers = append(store.clearers, clearer)
}

func (store *Store) State() State {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.state
}

// Loading reports whether the initial session check is still unresolved,
// so callers can avoid flashing a login prompt during startup.
func (store *Store) Loading() bool {
	return store.State() == StateChecking
}

func (store *Store) CurrentUser() (models.User, bool) {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.user, store.state == StateAuthenticated
}

// Restore resolves the checking state from the persisted session. A
// locally expired token settles as anonymous without a network call;
// an unexpired one is confirmed against the remote API.
func (store *Store) Restore(ctx context.Context) State {
	var persisted models.User
	token, err := store.storage.LoadSession(&persisted)
	if err != nil || strings.TrimSpace(token) == "" {
		return store.settleAnonymous()
	}

	if tokenExpired(token, store.clock()) {
		store.log.Info("stored session token expired, clearing session")
		if err := store.storage.ClearAll(); err != nil {
			store.log.Error("clear expired session", slog.String("error", err.Error()))
		}
		return store.settleAnonymous()
	}

	user, err := store.api.Me(ctx)
	if err != nil {
		if restapi.IsAuthError(err) {
			store.log.Info("stored session token rejected by server")
			if clearErr := store.storage.ClearAll(); clearErr != nil {
				store.log.Error("clear rejected session", slog.String("error", clearErr.Error()))
			}
			return store.settleAnonymous()
		}
		// Unreachable server: trust the persisted identity rather than
		// logging the user out over a transient failure.
		store.log.Warn("session check unreachable, using persisted identity", slog.String("error", err.Error()))
		user = persisted
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	store.user = user
	store.state = StateAuthenticated
	return store.state
}

// SignIn reports success as a boolean; a failed attempt leaves no
// session established and never panics or throws.
func (store *Store) SignIn(ctx context.Context, email string, password string) bool {
	email = normalizeEmail(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return false
	}

	result, err := store.api.Login(ctx, email, password)
	if err != nil {
		store.log.Info("sign-in failed", slog.String("email", email), slog.String("error", err.Error()))
		return false
	}

	if err := store.storage.SaveSession(result.Token, result.User); err != nil {
		store.log.Error("persist session", slog.String("error", err.Error()))
		return false
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	store.user = result.User
	store.state = StateAuthenticated
	return true
}

// SignUp creates the account but does not authenticate; the caller is
// expected to direct the user to sign in.
func (store *Store) SignUp(ctx context.Context, name string, email string, password string, age int, gender string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	email = normalizeEmail(email)
	if email == "" {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(password) == "" {
		return ErrEmptyPassword
	}

	return store.api.Register(ctx, restapi.RegisterInput{
		Name:     name,
		Email:    email,
		Password: password,
		Age:      age,
		Gender:   gender,
	})
}

// SignOut transitions to anonymous synchronously and wipes all
// session-scoped state, including registered cache clearers.
func (store *Store) SignOut() {
	store.mu.Lock()
	clearers := append([]CacheClearer(nil), store.clearers...)
	store.user = models.User{}
	store.state = StateAnonymous
	store.mu.Unlock()

	if err := store.storage.ClearAll(); err != nil {
		store.log.Error("clear session storage", slog.String("error", err.Error()))
	}
	for _, clearer := range clearers {
		clearer.Clear()
	}
}

func (store *Store) settleAnonymous() State {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.user = models.User{}
	store.state = StateAnonymous
	return store.state
}

// tokenExpired inspects the exp claim without verifying the signature;
// the client holds no signing secret and the server re-checks anyway.
func tokenExpired(token string, now time.Time) bool {
	parser := jwt.NewParser()
	claims := jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(now)
}

func normalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return ""
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ""
	}
	return email
}
