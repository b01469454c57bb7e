// Package bus is the in-process change broadcaster. Stores publish an
// event after every durable mutation; connected clients subscribe and
// treat each event as a trigger to reconcile their local view.
package bus

import "sync"

// Event names broadcast to connected clients.
const (
	EventFoodAdded          = "foodAdded"
	EventFoodStatusUpdated  = "foodStatusUpdated"
	EventFoodDeleted        = "foodDeleted"
	EventFoodsReordered     = "foodsReordered"
	EventFoodLevelsUpdated  = "foodLevelsUpdated"
	EventMenuLevelsUpdated  = "menuLevelsUpdated"
	EventStatusHistoryAdded = "statusHistoryAdded"
	EventAppVersion         = "appVersion"
)

// Event is one broadcast notification.
type Event struct {
	Name string `json:"event"`
	Data any    `json:"data"`
}

// subscriberBuffer is how many undelivered events a subscriber may have
// queued before new events are dropped for it. A client that drops an
// event reconciles on its next received one, so lagging is safe.
const subscriberBuffer = 16

// Bus fans events out to all subscribers. Delivery per subscriber is
// in-order and at-most-once; sends never block the publisher.
type Bus struct {
	mu     sync.RWMutex
	subs   map[int]chan Event
	nextID int
	closed bool
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{subs: make(map[int]chan Event)}
}

// Subscribe registers a new subscriber and returns its id and receive
// channel. The channel is closed on Unsubscribe or Close.
func (b *Bus) Subscribe() (int, <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, subscriberBuffer)
	if b.closed {
		close(ch)
		return 0, ch
	}

	b.nextID++
	id := b.nextID
	b.subs[id] = ch
	return id, ch
}

// Unsubscribe removes a subscriber and closes its channel. Unknown ids
// are ignored.
func (b *Bus) Unsubscribe(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(ch)
	}
}

// Publish delivers the event to every subscriber. A subscriber with a
// full buffer misses the event rather than blocking the caller.
func (b *Bus) Publish(name string, data any) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	ev := Event{Name: name, Data: data}
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Close shuts down the bus and closes all subscriber channels. Publish
// and Subscribe become no-ops afterwards.
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
