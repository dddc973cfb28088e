package notify

import (
	"context"
	"log/slog"
	"testing"

	"eventbuddy/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capturingHandler records the last log record for assertions.
type capturingHandler struct {
	records []slog.Record
}

func (h *capturingHandler) Enabled(_ context.Context, _ slog.Level) bool { return true }

func (h *capturingHandler) Handle(_ context.Context, r slog.Record) error {
	h.records = append(h.records, r.Clone())
	return nil
}

func (h *capturingHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }

func (h *capturingHandler) WithGroup(_ string) slog.Handler { return h }

func TestBus_DeliversInRegistrationOrder(t *testing.T) {
	bus := NewBus(nil)
	var got []string
	bus.Subscribe(domain.NotifyEventsChanged, func(domain.Notification) { got = append(got, "first") })
	bus.SubscribeAll(func(domain.Notification) { got = append(got, "all") })
	bus.Subscribe(domain.NotifyEventsChanged, func(domain.Notification) { got = append(got, "third") })
	bus.Subscribe(domain.NotifyTagsChanged, func(domain.Notification) { got = append(got, "tags") })

	bus.Publish(domain.Notification{Kind: domain.NotifyEventsChanged})

	assert.Equal(t, []string{"first", "all", "third"}, got)
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus(nil)
	calls := 0
	unsubscribe := bus.Subscribe(domain.NotifyFilterChanged, func(domain.Notification) { calls++ })
	require.Equal(t, 1, bus.Len())

	bus.Publish(domain.Notification{Kind: domain.NotifyFilterChanged})
	unsubscribe()
	unsubscribe()
	bus.Publish(domain.Notification{Kind: domain.NotifyFilterChanged})

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, bus.Len())
}

func TestBus_PanickingHandlerDoesNotBlockOthers(t *testing.T) {
	var cap capturingHandler
	bus := NewBus(slog.New(&cap))
	reached := false
	bus.Subscribe(domain.NotifyError, func(domain.Notification) { panic("boom") })
	bus.Subscribe(domain.NotifyError, func(n domain.Notification) {
		reached = true
		assert.Equal(t, "tag in use", n.Message)
	})

	require.NotPanics(t, func() {
		bus.Publish(domain.Notification{Kind: domain.NotifyError, Message: "tag in use"})
	})

	assert.True(t, reached)
	require.Len(t, cap.records, 1)
	assert.Equal(t, "notification handler panicked", cap.records[0].Message)
}

func TestBus_HandlerMayUnsubscribeDuringPublish(t *testing.T) {
	bus := NewBus(nil)
	calls := 0
	var unsubscribe func()
	unsubscribe = bus.Subscribe(domain.NotifyDataReady, func(domain.Notification) {
		calls++
		unsubscribe()
	})

	bus.Publish(domain.Notification{Kind: domain.NotifyDataReady})
	bus.Publish(domain.Notification{Kind: domain.NotifyDataReady})

	assert.Equal(t, 1, calls)
}
