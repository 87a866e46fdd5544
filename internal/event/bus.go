package event

import (
	"sync"

	"va-backend/internal/domain"

	"go.uber.org/zap"
)

// Publisher is the outbound side of the bus, injected into services so a
// mutation's success never depends on fan-out delivery.
type Publisher interface {
	Publish(event domain.NotificationEvent)
}

// Bus is an in-process publish/subscribe channel for notification events.
// Delivery is at-most-once per subscriber: a subscriber whose buffer is full
// loses the event.
type Bus struct {
	mu     sync.RWMutex
	subs   map[int]chan domain.NotificationEvent
	nextID int
	closed bool
	log    *zap.Logger
}

const subscriberBuffer = 64

// NewBus creates a new event bus
func NewBus(log *zap.Logger) *Bus {
	return &Bus{
		subs: make(map[int]chan domain.NotificationEvent),
		log:  log,
	}
}

// Publish delivers the event to every live subscriber without blocking.
func (b *Bus) Publish(event domain.NotificationEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	for id, ch := range b.subs {
		select {
		case ch <- event:
		default:
			b.log.Warn("event dropped for slow subscriber",
				zap.Int("subscriber_id", id),
				zap.String("kind", string(event.Kind)),
				zap.Int64("registration_id", event.RegistrationID))
		}
	}
}

// Subscribe registers a new subscriber and returns its channel plus a cancel
// function. The channel is closed on cancel or bus close.
func (b *Bus) Subscribe() (<-chan domain.NotificationEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan domain.NotificationEvent, subscriberBuffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}

	id := b.nextID
	b.nextID++
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}

	return ch, cancel
}

// Close shuts down the bus and all subscriber channels
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true

	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
