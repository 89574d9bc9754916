package event

import "sync"

// HandlerFunc receives published events.
type HandlerFunc func(Event)

// Bus routes events from publishers to topic subscribers.
// Handlers run synchronously in publish order.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[Topic][]subscriber
}

type subscriber struct {
	id int
	fn HandlerFunc
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[Topic][]subscriber)}
}

// Subscription identifies a registered handler so it can be removed.
type Subscription struct {
	bus   *Bus
	topic Topic
	id    int
}

// Subscribe registers a handler for a topic.
func (b *Bus) Subscribe(topic Topic, fn HandlerFunc) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.subs[topic] = append(b.subs[topic], subscriber{id: b.nextID, fn: fn})
	return &Subscription{bus: b, topic: topic, id: b.nextID}
}

// Unsubscribe removes the handler. Safe to call multiple times.
func (s *Subscription) Unsubscribe() {
	if s.bus == nil {
		return
	}

	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()

	subs := s.bus.subs[s.topic]
	for i, sub := range subs {
		if sub.id == s.id {
			s.bus.subs[s.topic] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	s.bus = nil
}

// Publish delivers the event to all subscribers of its topic.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	subs := b.subs[e.Topic]
	handlers := make([]HandlerFunc, len(subs))
	for i, sub := range subs {
		handlers[i] = sub.fn
	}
	b.mu.RUnlock()

	for _, fn := range handlers {
		fn(e)
	}
}

// SubscriberCount returns the number of handlers registered for a topic.
func (b *Bus) SubscriberCount(topic Topic) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[topic])
}
