package notify

import (
	"sync"

	"go.uber.org/zap"
)

// Event is what the hub delivers to subscribers: a toast or any other
// payload (such as a receipt) tagged with a type.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

const (
	EventNotification = "notification"
	EventReceipt      = "receipt"
)

const subscriberBuffer = 32

// Hub is an in-memory, topic-keyed broadcaster. Slow subscribers lose
// events rather than block publishers.
type Hub struct {
	mu     sync.RWMutex
	topics map[string]map[chan Event]struct{}
	logger *zap.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		topics: make(map[string]map[chan Event]struct{}),
		logger: logger,
	}
}

// Subscribe registers for events on topic. The returned cancel function
// unsubscribes and closes the channel; it is safe to call more than once.
func (h *Hub) Subscribe(topic string) (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	h.mu.Lock()
	subs, ok := h.topics[topic]
	if !ok {
		subs = make(map[chan Event]struct{})
		h.topics[topic] = subs
	}
	subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if subs, ok := h.topics[topic]; ok {
				if _, ok := subs[ch]; ok {
					delete(subs, ch)
					close(ch)
				}
				if len(subs) == 0 {
					delete(h.topics, topic)
				}
			}
		})
	}
}

// Publish delivers e to every subscriber of topic without blocking.
func (h *Hub) Publish(topic string, e Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.topics[topic] {
		select {
		case ch <- e:
		default:
			h.logger.Warn("subscriber buffer full, dropping event",
				zap.String("topic", topic),
				zap.String("type", e.Type))
		}
	}
}

// Close drops every subscriber on topic.
func (h *Hub) Close(topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.topics[topic] {
		close(ch)
	}
	delete(h.topics, topic)
}

// Subscribers reports how many subscribers topic has.
func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}

// Sink returns a Sink that publishes notifications on topic.
func (h *Hub) Sink(topic string) Sink {
	return SinkFunc(func(n Notification) {
		h.Publish(topic, Event{Type: EventNotification, Payload: n})
	})
}
