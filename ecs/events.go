package ecs

import "github.com/milk9111/gravwell/ecs/component"

// MergeEvent is pushed once per merge. Survivor keeps its handle and now
// holds Result; Absorbed is released.
type MergeEvent struct {
	Survivor Entity
	Absorbed Entity
	Result   component.Body
}

// EventQueue is a simple FIFO queue of merge events.
type EventQueue struct {
	items []MergeEvent
}

// Push adds an event.
func (q *EventQueue) Push(evt MergeEvent) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []MergeEvent {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
