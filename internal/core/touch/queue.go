package touch

// Queue is a FIFO of touch events waiting to be consumed by a dialog.
// Events leave the queue in arrival order and are never merged, since a
// lost Down or Up corrupts press tracking.
//
// Queue is not safe for concurrent use; it belongs to the single task that
// drives the dialog and to the driver feeding that task.
type Queue struct {
	events []Event
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{events: make([]Event, 0, 16)}
}

// Push appends an event.
func (q *Queue) Push(e Event) {
	q.events = append(q.events, e)
}

// Pop removes and returns the oldest event.
func (q *Queue) Pop() (Event, bool) {
	if len(q.events) == 0 {
		return Event{}, false
	}
	e := q.events[0]
	q.events[0] = Event{}
	q.events = q.events[1:]
	if len(q.events) == 0 {
		q.events = q.events[:0:0]
	}
	return e, true
}

// Len returns the number of pending events.
func (q *Queue) Len() int {
	return len(q.events)
}
