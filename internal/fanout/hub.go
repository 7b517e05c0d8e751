package fanout

import (
	"sync"

	"dispatch-platform-go/internal/logx"
)

const defaultBuffer = 16

type counter interface {
	Inc()
}

// Subscriber is one connected observer. Events arrive on a buffered channel
// in broadcast order; the channel is closed when the subscriber leaves.
type Subscriber struct {
	events chan Event
	groups []string
}

// Events returns the subscriber's event stream.
func (s *Subscriber) Events() <-chan Event {
	return s.events
}

// Groups returns the groups the subscriber joined.
func (s *Subscriber) Groups() []string {
	out := make([]string, len(s.groups))
	copy(out, s.groups)
	return out
}

// Hub maintains group membership and fans events out to the observers of a
// group. It is safe for concurrent Join/Leave/Broadcast. A slow or stuck
// observer never blocks delivery to the rest; its events are dropped once
// its buffer is full.
type Hub struct {
	mu      sync.RWMutex
	groups  map[string]map[*Subscriber]struct{}
	buffer  int
	logger  logx.Logger
	dropped counter
}

// NewHub creates a Hub. buffer is the per-subscriber queue size; dropped may
// be nil.
func NewHub(buffer int, logger logx.Logger, dropped counter) *Hub {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Hub{
		groups:  make(map[string]map[*Subscriber]struct{}),
		buffer:  buffer,
		logger:  logger,
		dropped: dropped,
	}
}

// Join registers a new subscriber in the given groups. Groups are created
// implicitly on first join.
func (h *Hub) Join(groups ...string) *Subscriber {
	sub := &Subscriber{
		events: make(chan Event, h.buffer),
		groups: append([]string(nil), groups...),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, g := range groups {
		members, ok := h.groups[g]
		if !ok {
			members = make(map[*Subscriber]struct{})
			h.groups[g] = members
		}
		members[sub] = struct{}{}
	}
	return sub
}

// Leave removes the subscriber from all its groups and closes its stream.
// Empty groups disappear with their last member.
func (h *Hub) Leave(sub *Subscriber) {
	if sub == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	removed := false
	for _, g := range sub.groups {
		members, ok := h.groups[g]
		if !ok {
			continue
		}
		if _, ok := members[sub]; ok {
			delete(members, sub)
			removed = true
		}
		if len(members) == 0 {
			delete(h.groups, g)
		}
	}
	if removed {
		close(sub.events)
	}
}

// Broadcast delivers ev to every current member of group. Delivery is
// fire-and-forget: per-subscriber FIFO, no acknowledgment, and a full
// subscriber buffer drops the event for that subscriber only.
func (h *Hub) Broadcast(group string, ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.groups[group] {
		select {
		case sub.events <- ev:
		default:
			if h.dropped != nil {
				h.dropped.Inc()
			}
			h.logger.Warn("fanout event dropped",
				logx.String("group", group),
				logx.String("kind", string(ev.Kind)),
			)
		}
	}
}

// GroupSize returns the current number of members of group.
func (h *Hub) GroupSize(group string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.groups[group])
}
