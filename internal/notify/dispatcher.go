package notify

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

const (
	defaultSuppressionWindow = 5 * time.Second
	defaultRecencyCapacity   = 10
	defaultDuration          = 4 * time.Second
)

// Options enumerates the recognized notification settings; there is no
// free-form options bag.
type Options struct {
	Duration    time.Duration
	Sticky      bool
	ActionLabel string
}

type Toast struct {
	ID      string
	Level   Level
	Message string
	Options Options
	ShownAt time.Time
}

// Sink receives toasts for display. The CLI installs a terminal sink;
// tests install recording stubs.
type Sink interface {
	Show(toast Toast)
	Clear()
}

// Dispatcher routes transient messages to its sink, suppressing exact
// duplicate text inside the suppression window. It is an injected
// component, never a package-level singleton, so instances stay
// isolated across tests.
type Dispatcher struct {
	mu     sync.Mutex
	sink   Sink
	recent *recencySet
	active []Toast
	clock  func() time.Time
}

func NewDispatcher(sink Sink) *Dispatcher {
	return &Dispatcher{
		sink:   sink,
		recent: newRecencySet(defaultRecencyCapacity, defaultSuppressionWindow),
		clock:  time.Now,
	}
}

func (dispatcher *Dispatcher) Success(message string, options Options) bool {
	return dispatcher.notify(LevelSuccess, message, options)
}

func (dispatcher *Dispatcher) Error(message string, options Options) bool {
	return dispatcher.notify(LevelError, message, options)
}

func (dispatcher *Dispatcher) Warning(message string, options Options) bool {
	return dispatcher.notify(LevelWarning, message, options)
}

func (dispatcher *Dispatcher) Info(message string, options Options) bool {
	return dispatcher.notify(LevelInfo, message, options)
}

// notify reports whether the toast was shown. Suppression keys purely
// on message text: two call sites producing the same string count as
// duplicates of each other.
func (dispatcher *Dispatcher) notify(level Level, message string, options Options) bool {
	message = strings.TrimSpace(message)
	if message == "" {
		return false
	}
	if options.Duration <= 0 {
		options.Duration = defaultDuration
	}

	dispatcher.mu.Lock()
	now := dispatcher.clock()
	if dispatcher.recent.seen(message, now) {
		dispatcher.mu.Unlock()
		return false
	}
	dispatcher.recent.add(message, now)

	toast := Toast{
		ID:      uuid.NewString(),
		Level:   level,
		Message: message,
		Options: options,
		ShownAt: now,
	}
	dispatcher.active = append(dispatcher.active, toast)
	sink := dispatcher.sink
	dispatcher.mu.Unlock()

	if sink != nil {
		sink.Show(toast)
	}
	return true
}

// DismissAll clears visible toasts and resets duplicate tracking, so a
// message shown just before the clear may show again immediately. A
// second call with nothing visible is a no-op.
func (dispatcher *Dispatcher) DismissAll() {
	dispatcher.mu.Lock()
	dispatcher.active = nil
	dispatcher.recent.reset()
	sink := dispatcher.sink
	dispatcher.mu.Unlock()

	if sink != nil {
		sink.Clear()
	}
}

func (dispatcher *Dispatcher) Active() []Toast {
	dispatcher.mu.Lock()
	defer dispatcher.mu.Unlock()
	return append([]Toast(nil), dispatcher.active...)
}
