package ecs

// EventKind identifies frame events.
type EventKind string

const (
	EventJumped    EventKind = "jumped"
	EventLanded    EventKind = "landed"
	EventRespawned EventKind = "respawned"
)

// Event is a frame-scoped notification raised by a system.
type Event struct {
	Kind   EventKind
	Entity Entity
}

// EventQueue collects events for the current frame. The scheduler clears it
// once every system has run, so any later system may read what earlier ones
// pushed.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Items returns the events pushed so far this frame.
func (q *EventQueue) Items() []Event {
	if q == nil {
		return nil
	}
	return q.items
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = q.items[:0]
}
