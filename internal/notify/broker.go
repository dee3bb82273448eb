package notify

import (
	"log/slog"
	"sync"

	"github.com/mcoot/singhit/internal/model"
)

// DefaultBuffer is the channel capacity used when Subscribe is given none
const DefaultBuffer = 32

// Broker fans game events out to in-process subscribers. Publishing never
// blocks: a subscriber whose buffer is full misses the event.
type Broker struct {
	mu     sync.RWMutex
	subs   map[chan model.Event]struct{}
	logger *slog.Logger
}

// NewBroker creates an empty broker
func NewBroker(logger *slog.Logger) *Broker {
	return &Broker{
		subs:   make(map[chan model.Event]struct{}),
		logger: logger.With(slog.String("component", "notify")),
	}
}

// Subscribe returns a channel receiving every event published from now on
func (b *Broker) Subscribe(buffer int) <-chan model.Event {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	ch := make(chan model.Event, buffer)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	count := len(b.subs)
	b.mu.Unlock()
	b.logger.Debug("subscriber added", slog.Int("total_subscribers", count))
	return ch
}

// Unsubscribe removes and closes a channel returned by Subscribe
func (b *Broker) Unsubscribe(sub <-chan model.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		if (<-chan model.Event)(ch) == sub {
			delete(b.subs, ch)
			close(ch)
			return
		}
	}
}

// Publish delivers event to every subscriber with buffer space
func (b *Broker) Publish(event model.Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	dropped := 0
	for ch := range b.subs {
		select {
		case ch <- event:
		default:
			dropped++
		}
	}
	if dropped > 0 {
		b.logger.Warn("event dropped - subscriber buffer full",
			slog.String("event", string(event.Type)),
			slog.Int("dropped", dropped))
	}
}

// SubscriberCount returns the number of live subscriptions
func (b *Broker) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Close closes every subscription
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		close(ch)
		delete(b.subs, ch)
	}
}
