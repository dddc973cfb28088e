// Package notify is a synchronous publish/subscribe channel for store changes.
//
// Handlers run on the publishing goroutine, in registration order. A handler
// that panics is logged and skipped; the remaining handlers still run.
package notify

import (
	"log/slog"
	"sync"

	"eventbuddy/internal/domain"
)

type subscription struct {
	id   uint64
	kind domain.NotificationKind // empty for SubscribeAll
	fn   domain.NotificationHandler
}

// Bus dispatches domain.Notification values to registered handlers.
type Bus struct {
	logger *slog.Logger

	mu     sync.RWMutex
	nextID uint64
	subs   []subscription
}

// NewBus returns an empty Bus. A nil logger discards panic reports.
func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Bus{logger: logger}
}

// Subscribe registers h for notifications of the given kind.
func (b *Bus) Subscribe(kind domain.NotificationKind, h domain.NotificationHandler) func() {
	return b.add(kind, h)
}

// SubscribeAll registers h for every notification.
func (b *Bus) SubscribeAll(h domain.NotificationHandler) func() {
	return b.add("", h)
}

func (b *Bus) add(kind domain.NotificationKind, h domain.NotificationHandler) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, kind: kind, fn: h})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Bus) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

// Len returns the number of registered handlers.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Publish delivers n to every matching handler. The handler list is copied
// first, so handlers may subscribe or unsubscribe while being called.
func (b *Bus) Publish(n domain.Notification) {
	b.mu.RLock()
	subs := make([]subscription, 0, len(b.subs))
	for _, s := range b.subs {
		if s.kind == "" || s.kind == n.Kind {
			subs = append(subs, s)
		}
	}
	b.mu.RUnlock()

	for _, s := range subs {
		b.call(s, n)
	}
}

func (b *Bus) call(s subscription, n domain.Notification) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("notification handler panicked", "kind", n.Kind, "subscription", s.id, "panic", r)
		}
	}()
	s.fn(n)
}
