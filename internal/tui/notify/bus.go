// Package notify provides the in-process notification bus feeding the TUI
// toast stack.
package notify

import (
	"fmt"
	"sync"
	"time"

	"github.com/colonyops/librarian/internal/core/notify"
)

// historyLimit bounds the in-memory notification log. The client keeps no
// durable notification storage; this exists only so the current session can
// review recent toasts.
const historyLimit = 100

// Subscriber is a callback invoked when a notification is published.
type Subscriber func(notify.Notification)

// Bus is a synchronous in-process notification bus. It dispatches
// notifications to subscribers inline and retains a bounded in-memory
// history. Publish may be called from any goroutine.
type Bus struct {
	mu          sync.Mutex
	subscribers []Subscriber
	history     []notify.Notification
}

// NewBus creates an empty notification bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a callback that will be invoked on every Publish.
func (b *Bus) Subscribe(fn Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, fn)
}

// Publish dispatches a notification to all subscribers and records it.
func (b *Bus) Publish(n notify.Notification) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	b.mu.Lock()
	b.history = append(b.history, n)
	if len(b.history) > historyLimit {
		b.history = b.history[len(b.history)-historyLimit:]
	}
	subs := make([]Subscriber, len(b.subscribers))
	copy(subs, b.subscribers)
	b.mu.Unlock()

	for _, fn := range subs {
		fn(n)
	}
}

// Errorf publishes an error-level notification.
func (b *Bus) Errorf(format string, args ...any) {
	b.Publish(notify.Notification{
		Level:   notify.LevelError,
		Message: fmt.Sprintf(format, args...),
	})
}

// Warnf publishes a warning-level notification.
func (b *Bus) Warnf(format string, args ...any) {
	b.Publish(notify.Notification{
		Level:   notify.LevelWarning,
		Message: fmt.Sprintf(format, args...),
	})
}

// Infof publishes an info-level notification.
func (b *Bus) Infof(format string, args ...any) {
	b.Publish(notify.Notification{
		Level:   notify.LevelInfo,
		Message: fmt.Sprintf(format, args...),
	})
}

// History returns the notifications published this session, newest first.
func (b *Bus) History() []notify.Notification {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]notify.Notification, 0, len(b.history))
	for i := len(b.history) - 1; i >= 0; i-- {
		out = append(out, b.history[i])
	}
	return out
}
