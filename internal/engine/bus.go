package engine

// Topic names a class of events on the bus.
type Topic string

// Event is a typed payload published on the bus. Each concrete event type
// reports the topic it belongs to.
type Event interface {
	Topic() Topic
}

// Handler receives events for a topic.
type Handler func(Event)

// Subscription identifies a registered handler so it can be removed.
type Subscription struct {
	topic Topic
	id    uint64
}

type subscriber struct {
	id uint64
	fn Handler
}

// Bus is a synchronous publish/subscribe channel.
//
// Handlers run on the emitting goroutine, in registration order, before
// Emit returns. The bus is not safe for concurrent use; it belongs to a
// single game session.
type Bus struct {
	handlers map[Topic][]subscriber
	nextID   uint64
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[Topic][]subscriber)}
}

// Subscribe registers fn for topic.
func (b *Bus) Subscribe(topic Topic, fn Handler) Subscription {
	b.nextID++
	b.handlers[topic] = append(b.handlers[topic], subscriber{id: b.nextID, fn: fn})
	return Subscription{topic: topic, id: b.nextID}
}

// Unsubscribe removes a handler. Unknown subscriptions are ignored.
func (b *Bus) Unsubscribe(s Subscription) {
	subs := b.handlers[s.topic]
	for i, sub := range subs {
		if sub.id == s.id {
			b.handlers[s.topic] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Emit delivers ev to every handler subscribed to its topic.
// Handlers added or removed during delivery take effect on the next Emit.
func (b *Bus) Emit(ev Event) {
	subs := b.handlers[ev.Topic()]
	if len(subs) == 0 {
		return
	}
	snapshot := make([]subscriber, len(subs))
	copy(snapshot, subs)
	for _, sub := range snapshot {
		sub.fn(ev)
	}
}

// Clear drops every handler.
func (b *Bus) Clear() {
	b.handlers = make(map[Topic][]subscriber)
}

// HandlerCount returns the number of handlers registered for topic.
func (b *Bus) HandlerCount(topic Topic) int {
	return len(b.handlers[topic])
}

// On subscribes a handler that only sees events of type E.
// Events of other types published under the same topic are skipped.
func On[E Event](b *Bus, topic Topic, fn func(E)) Subscription {
	return b.Subscribe(topic, func(ev Event) {
		if e, ok := ev.(E); ok {
			fn(e)
		}
	})
}
