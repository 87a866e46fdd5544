package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"va-backend/internal/domain"
)

func TestBusPublishReachesAllSubscribers(t *testing.T) {
	bus := NewBus(zap.NewNop())
	defer bus.Close()

	ch1, cancel1 := bus.Subscribe()
	defer cancel1()
	ch2, cancel2 := bus.Subscribe()
	defer cancel2()

	bus.Publish(domain.NotificationEvent{
		Kind:           domain.KindNewRegistration,
		RegistrationID: 42,
	})

	for _, ch := range []<-chan domain.NotificationEvent{ch1, ch2} {
		select {
		case evt := <-ch:
			assert.Equal(t, domain.KindNewRegistration, evt.Kind)
			assert.Equal(t, int64(42), evt.RegistrationID)
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive the event")
		}
	}
}

func TestBusCancelStopsDelivery(t *testing.T) {
	bus := NewBus(zap.NewNop())
	defer bus.Close()

	ch, cancel := bus.Subscribe()
	cancel()

	// Channel is closed after cancel
	_, ok := <-ch
	assert.False(t, ok)

	// Publishing after cancel must not panic
	bus.Publish(domain.NotificationEvent{Kind: domain.KindNewRegistration})
}

func TestBusPublishDoesNotBlockOnSlowSubscriber(t *testing.T) {
	bus := NewBus(zap.NewNop())
	defer bus.Close()

	_, cancel := bus.Subscribe()
	defer cancel()

	// Never drain the subscriber; publishing past the buffer must not block
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < subscriberBuffer*2; i++ {
			bus.Publish(domain.NotificationEvent{RegistrationID: int64(i)})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}

func TestBusClose(t *testing.T) {
	bus := NewBus(zap.NewNop())

	ch, cancel := bus.Subscribe()
	defer cancel()

	bus.Close()

	_, ok := <-ch
	require.False(t, ok, "subscriber channel should be closed")

	// Publish and Subscribe after close are no-ops
	bus.Publish(domain.NotificationEvent{Kind: domain.KindNewRegistration})

	ch2, cancel2 := bus.Subscribe()
	defer cancel2()
	_, ok = <-ch2
	assert.False(t, ok)
}
