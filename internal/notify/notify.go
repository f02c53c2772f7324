// Package notify carries user-facing status messages from background work
// (sync progress, cloud failures) to whatever surface is listening.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Severity classifies a notification for display.
type Severity string

const (
	Success Severity = "success"
	Error   Severity = "error"
	Warning Severity = "warning"
	Info    Severity = "info"
)

// Notification is one user-facing message.
type Notification struct {
	ID       string
	Message  string
	Severity Severity
	At       time.Time
}

// Notifier receives notifications. Implementations must be safe for
// concurrent use; sync runs on background goroutines.
type Notifier interface {
	Notify(n Notification)
}

// New builds a notification with a fresh ID and timestamp.
func New(severity Severity, message string) Notification {
	return Notification{
		ID:       uuid.NewString(),
		Message:  message,
		Severity: severity,
		At:       time.Now(),
	}
}

// Func adapts a plain function to the Notifier interface.
type Func func(n Notification)

func (f Func) Notify(n Notification) { f(n) }

// Discard drops every notification.
var Discard Notifier = Func(func(Notification) {})

// Memory records notifications for inspection, mainly in tests.
type Memory struct {
	mu   sync.Mutex
	seen []Notification
}

func (m *Memory) Notify(n Notification) {
	m.mu.Lock()
	m.seen = append(m.seen, n)
	m.mu.Unlock()
}

// All returns a copy of everything recorded so far.
func (m *Memory) All() []Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Notification, len(m.seen))
	copy(out, m.seen)
	return out
}

// BySeverity returns recorded notifications matching severity.
func (m *Memory) BySeverity(s Severity) []Notification {
	var out []Notification
	for _, n := range m.All() {
		if n.Severity == s {
			out = append(out, n)
		}
	}
	return out
}
