// Package notify carries transient operator messages (toasts) from the
// register to whatever is displaying them.
package notify

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// DefaultAutoDismiss is how long a toast stays up unless configured otherwise.
const DefaultAutoDismiss = 3 * time.Second

// Severity represents how a notification should be styled
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notification is a single toast message.
type Notification struct {
	ID          string        `json:"id"`
	Message     string        `json:"message"`
	Severity    Severity      `json:"severity"`
	AutoDismiss time.Duration `json:"-"`
	CreatedAt   time.Time     `json:"created_at"`
}

// New builds a notification stamped with a fresh id and creation time.
func New(message string, severity Severity, autoDismiss time.Duration) Notification {
	return Notification{
		ID:          uuid.NewString(),
		Message:     message,
		Severity:    severity,
		AutoDismiss: autoDismiss,
		CreatedAt:   time.Now(),
	}
}

type notificationJSON struct {
	ID            string    `json:"id"`
	Message       string    `json:"message"`
	Severity      Severity  `json:"severity"`
	AutoDismissMS int64     `json:"auto_dismiss_ms"`
	CreatedAt     time.Time `json:"created_at"`
}

func (n Notification) MarshalJSON() ([]byte, error) {
	return json.Marshal(notificationJSON{
		ID:            n.ID,
		Message:       n.Message,
		Severity:      n.Severity,
		AutoDismissMS: n.AutoDismiss.Milliseconds(),
		CreatedAt:     n.CreatedAt,
	})
}

func (n *Notification) UnmarshalJSON(data []byte) error {
	var raw notificationJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*n = Notification{
		ID:          raw.ID,
		Message:     raw.Message,
		Severity:    raw.Severity,
		AutoDismiss: time.Duration(raw.AutoDismissMS) * time.Millisecond,
		CreatedAt:   raw.CreatedAt,
	}
	return nil
}

// ExpiresAt is when the toast should disappear. A zero AutoDismiss never expires.
func (n Notification) ExpiresAt() time.Time {
	if n.AutoDismiss <= 0 {
		return time.Time{}
	}
	return n.CreatedAt.Add(n.AutoDismiss)
}

// Sink accepts notifications. Notify must not block the caller.
type Sink interface {
	Notify(n Notification)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Notification)

func (f SinkFunc) Notify(n Notification) { f(n) }

// Discard drops every notification.
var Discard Sink = SinkFunc(func(Notification) {})

// Multi fans a notification out to several sinks in order.
func Multi(sinks ...Sink) Sink {
	return SinkFunc(func(n Notification) {
		for _, s := range sinks {
			s.Notify(n)
		}
	})
}
