package service

import (
	"context"
	"sync"

	"va-backend/internal/domain"
	"va-backend/internal/event"

	"go.uber.org/zap"
)

// RoomBroadcaster delivers an event to every live member of a room and
// reports how many connections received it.
type RoomBroadcaster interface {
	Broadcast(room string, evt domain.NotificationEvent) int
}

// NotificationDispatcher consumes notification events from the bus and fans
// them out to the rooms each event resolves to. Delivery is push-only over
// currently open connections; an offline recipient misses the event.
type NotificationDispatcher struct {
	bus         *event.Bus
	broadcaster RoomBroadcaster
	logger      *zap.Logger

	stopOnce sync.Once
	cancel   func()
	done     chan struct{}
}

// NewNotificationDispatcher creates a new dispatcher
func NewNotificationDispatcher(bus *event.Bus, broadcaster RoomBroadcaster, logger *zap.Logger) *NotificationDispatcher {
	return &NotificationDispatcher{
		bus:         bus,
		broadcaster: broadcaster,
		logger:      logger,
		done:        make(chan struct{}),
	}
}

// Start subscribes to the bus and dispatches until Stop is called
func (d *NotificationDispatcher) Start() {
	events, cancel := d.bus.Subscribe()
	d.cancel = cancel

	go func() {
		defer close(d.done)
		for evt := range events {
			d.dispatch(evt)
		}
	}()
}

// Stop unsubscribes and waits for the dispatch loop to drain
func (d *NotificationDispatcher) Stop(ctx context.Context) error {
	d.stopOnce.Do(func() {
		if d.cancel != nil {
			d.cancel()
		}
	})

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *NotificationDispatcher) dispatch(evt domain.NotificationEvent) {
	rooms := evt.Rooms()
	if len(rooms) == 0 {
		d.logger.Debug("notification event has no addressable room",
			zap.String("kind", string(evt.Kind)),
			zap.Int64("registration_id", evt.RegistrationID))
		return
	}

	for _, room := range rooms {
		delivered := d.broadcaster.Broadcast(room, evt)
		d.logger.Debug("notification dispatched",
			zap.String("kind", string(evt.Kind)),
			zap.String("room", room),
			zap.Int("recipients", delivered),
			zap.Int64("registration_id", evt.RegistrationID))
	}
}
