package notify

import (
	"sync"
	"time"
)

// Board holds the single toast currently on screen. A newer toast replaces
// the previous one, and Active stops reporting a toast once its
// auto-dismiss deadline has passed.
type Board struct {
	mu      sync.Mutex
	current *Notification
	now     func() time.Time
}

// NewBoard creates a board using the wall clock.
func NewBoard() *Board {
	return &Board{now: time.Now}
}

// NewBoardWithClock creates a board that reads time from now.
func NewBoardWithClock(now func() time.Time) *Board {
	return &Board{now: now}
}

// Notify implements Sink.
func (b *Board) Notify(n Notification) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current = &n
}

// Active returns the toast still on screen, if any.
func (b *Board) Active() (Notification, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == nil {
		return Notification{}, false
	}
	if exp := b.current.ExpiresAt(); !exp.IsZero() && !b.now().Before(exp) {
		b.current = nil
		return Notification{}, false
	}
	return *b.current, true
}

// Dismiss clears the toast early.
func (b *Board) Dismiss() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current = nil
}
