package ws

import (
	"sort"
	"sync"
	"time"
)

const (
	defaultBufferMaxLen = 500
	defaultBufferMaxAge = 30 * time.Minute
)

// EventBuffer keeps recent events for replay on reconnect.
type EventBuffer struct {
	mu     sync.RWMutex
	events []Event
	maxAge time.Duration
	maxLen int
	now    func() time.Time
}

// NewEventBuffer creates an EventBuffer with the given limits.
func NewEventBuffer(maxLen int, maxAge time.Duration) *EventBuffer {
	return &EventBuffer{maxAge: maxAge, maxLen: maxLen, now: time.Now}
}

// Append stores an event, evicting expired and excess entries.
func (eb *EventBuffer) Append(event *Event) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	cutoff := eb.now().Add(-eb.maxAge)

	start := 0
	for start < len(eb.events) && eb.events[start].Time.Before(cutoff) {
		start++
	}

	buf := append(eb.events[start:], *event)
	if len(buf) > eb.maxLen {
		buf = buf[len(buf)-eb.maxLen:]
	}

	eb.events = buf
}

// Since returns a copy of all events with ID > lastEventID.
func (eb *EventBuffer) Since(lastEventID uint64) []Event {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	lo := sort.Search(len(eb.events), func(i int) bool { return eb.events[i].ID > lastEventID })
	if lo >= len(eb.events) {
		return nil
	}

	out := make([]Event, len(eb.events)-lo)
	copy(out, eb.events[lo:])

	return out
}

// OldestID returns the oldest buffered event ID, or 0 if empty.
func (eb *EventBuffer) OldestID() uint64 {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	if len(eb.events) == 0 {
		return 0
	}

	return eb.events[0].ID
}

// Len returns the number of buffered events.
func (eb *EventBuffer) Len() int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	return len(eb.events)
}
