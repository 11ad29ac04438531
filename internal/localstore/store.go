package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var ErrNoSession = errors.New("no stored session")

// sessionRecord is the single-row session table: bearer token plus the
// serialized identity, the equivalent of the browser's localStorage keys.
type sessionRecord struct {
	ID        uint   `gorm:"primaryKey"`
	Token     string `gorm:"not null"`
	UserJSON  string `gorm:"not null"`
	UpdatedAt time.Time
}

// snapshotRecord holds serialized cached payloads (tracked supplements,
// intake logs) keyed by name, cleared wholesale on sign-out.
type snapshotRecord struct {
	Key       string `gorm:"primaryKey"`
	Payload   string `gorm:"not null"`
	UpdatedAt time.Time
}

type Store struct {
	mu       sync.Mutex
	database *gorm.DB
}

func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_busy_timeout=5000", dbPath)
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.New(
			log.New(os.Stderr, "\r\n", log.LstdFlags),
			gormlogger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := database.AutoMigrate(&sessionRecord{}, &snapshotRecord{}); err != nil {
		return nil, fmt.Errorf("migrate local store: %w", err)
	}

	return &Store{database: database}, nil
}

func (store *Store) SaveSession(token string, user any) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	serialized, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("serialize user: %w", err)
	}

	record := sessionRecord{ID: 1, Token: token, UserJSON: string(serialized)}
	return store.database.Save(&record).Error
}

func (store *Store) LoadSession(user any) (string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	var record sessionRecord
	if err := store.database.First(&record, 1).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNoSession
		}
		return "", err
	}
	if user != nil {
		if err := json.Unmarshal([]byte(record.UserJSON), user); err != nil {
			return "", fmt.Errorf("deserialize user: %w", err)
		}
	}
	return record.Token, nil
}

// Token implements restapi.TokenSource. A missing session reads as an
// empty token, which the client sends as an unauthenticated request.
func (store *Store) Token() string {
	token, err := store.LoadSession(nil)
	if err != nil {
		return ""
	}
	return token
}

func (store *Store) SaveSnapshot(key string, value any) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	serialized, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("serialize snapshot %s: %w", key, err)
	}
	record := snapshotRecord{Key: key, Payload: string(serialized)}
	return store.database.Save(&record).Error
}

func (store *Store) LoadSnapshot(key string, out any) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	var record snapshotRecord
	if err := store.database.First(&record, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal([]byte(record.Payload), out); err != nil {
		return false, fmt.Errorf("deserialize snapshot %s: %w", key, err)
	}
	return true, nil
}

// ClearAll removes the session and every cached snapshot together, so a
// following sign-in can never observe the previous user's data.
func (store *Store) ClearAll() error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if err := store.database.Where("1 = 1").Delete(&sessionRecord{}).Error; err != nil {
		return err
	}
	return store.database.Where("1 = 1").Delete(&snapshotRecord{}).Error
}
