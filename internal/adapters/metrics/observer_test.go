package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventbuddy/internal/domain"
	"eventbuddy/internal/notify"
)

type fixedCounter map[domain.EntityKind]int

func (c fixedCounter) Count(kind domain.EntityKind) int { return c[kind] }

func TestObserver_CountsNotifications(t *testing.T) {
	reg := prometheus.NewRegistry()
	o, err := NewObserver(reg, fixedCounter{domain.KindEvent: 3, domain.KindTag: 1})
	require.NoError(t, err)

	bus := notify.NewBus(nil)
	unsubscribe := o.Attach(bus)
	bus.Publish(domain.Notification{Kind: domain.NotifyDataReady})
	bus.Publish(domain.Notification{Kind: domain.NotifyEventsChanged})
	bus.Publish(domain.Notification{Kind: domain.NotifyEventsChanged})
	unsubscribe()
	bus.Publish(domain.Notification{Kind: domain.NotifyEventsChanged})

	assert.Equal(t, 2.0, testutil.ToFloat64(o.notifications.WithLabelValues(string(domain.NotifyEventsChanged))))
	assert.Equal(t, 1.0, testutil.ToFloat64(o.notifications.WithLabelValues(string(domain.NotifyDataReady))))
	assert.Equal(t, 0.0, testutil.ToFloat64(o.notifications.WithLabelValues(string(domain.NotifyError))))
	assert.Equal(t, 1.0, testutil.ToFloat64(o.ready))

	expected := `
# HELP eventbuddy_records Records held per collection.
# TYPE eventbuddy_records gauge
eventbuddy_records{collection="event"} 3
eventbuddy_records{collection="participant"} 0
eventbuddy_records{collection="tag"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "eventbuddy_records"))
}

func TestNewObserver_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewObserver(reg, fixedCounter{})
	require.NoError(t, err)
	_, err = NewObserver(reg, fixedCounter{})
	require.Error(t, err)
}
