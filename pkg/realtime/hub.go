package realtime

import (
	"sync"

	"github.com/sirenhq/siren/internal/logger"
)

// DefaultQueueSize is the per-subscriber event queue depth.
const DefaultQueueSize = 32

// Subscriber receives events for one incident. Obtain one from
// Hub.Subscribe and always release it with Hub.Unsubscribe.
type Subscriber struct {
	incidentID string
	ch         chan Event
	closeOnce  sync.Once

	mu      sync.Mutex
	dropped uint64
}

// Events returns the subscriber's event channel. The channel is closed when
// the subscriber is unsubscribed or the hub shuts down.
func (s *Subscriber) Events() <-chan Event {
	return s.ch
}

// IncidentID returns the incident this subscriber is attached to.
func (s *Subscriber) IncidentID() string {
	return s.incidentID
}

// Dropped returns how many events were discarded because the subscriber's
// queue was full.
func (s *Subscriber) Dropped() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}

func (s *Subscriber) recordDrop() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dropped++
	return s.dropped
}

func (s *Subscriber) close() {
	s.closeOnce.Do(func() { close(s.ch) })
}

// Hub routes incident events to subscribers. Safe for concurrent use.
type Hub struct {
	mu        sync.RWMutex
	topics    map[string]map[*Subscriber]struct{}
	queueSize int
	closed    bool

	// onDrop, if set, is called after an event is discarded for a slow
	// subscriber. Used to feed the dropped-events metric.
	onDrop func(incidentID string)
}

// NewHub creates a hub with the given per-subscriber queue size.
// A size of 0 uses DefaultQueueSize.
func NewHub(queueSize int) *Hub {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Hub{
		topics:    make(map[string]map[*Subscriber]struct{}),
		queueSize: queueSize,
	}
}

// OnDrop registers a callback invoked whenever an event is dropped.
// Must be called before the hub is in use.
func (h *Hub) OnDrop(fn func(incidentID string)) {
	h.onDrop = fn
}

// Subscribe registers a new subscriber for an incident's events.
// Returns nil if the hub is already closed.
func (h *Hub) Subscribe(incidentID string) *Subscriber {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}

	sub := &Subscriber{
		incidentID: incidentID,
		ch:         make(chan Event, h.queueSize),
	}

	subs, ok := h.topics[incidentID]
	if !ok {
		subs = make(map[*Subscriber]struct{})
		h.topics[incidentID] = subs
	}
	subs[sub] = struct{}{}

	logger.Debug("realtime subscriber attached",
		logger.KeyIncident, incidentID,
		logger.KeySubscribers, len(subs))

	return sub
}

// Unsubscribe removes a subscriber and closes its event channel.
// Safe to call more than once.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	if sub == nil {
		return
	}

	h.mu.Lock()
	if subs, ok := h.topics[sub.incidentID]; ok {
		delete(subs, sub)
		if len(subs) == 0 {
			delete(h.topics, sub.incidentID)
		}
	}
	h.mu.Unlock()

	sub.close()
}

// Publish delivers an event to every subscriber of its incident. Publishing
// never blocks: subscribers with full queues have the event dropped.
func (h *Hub) Publish(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return
	}

	for sub := range h.topics[event.IncidentID] {
		select {
		case sub.ch <- event:
		default:
			total := sub.recordDrop()
			if h.onDrop != nil {
				h.onDrop(event.IncidentID)
			}
			logger.Warn("dropped realtime event for slow subscriber",
				logger.KeyIncident, event.IncidentID,
				logger.KeyEvent, string(event.Type),
				logger.KeyDropped, total)
		}
	}
}

// SubscriberCount returns the number of subscribers for an incident.
func (h *Hub) SubscriberCount(incidentID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[incidentID])
}

// Close shuts the hub down, closing every subscriber channel. Subsequent
// Subscribe calls return nil and Publish calls are ignored.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true

	for _, subs := range h.topics {
		for sub := range subs {
			sub.close()
		}
	}
	h.topics = make(map[string]map[*Subscriber]struct{})
}
