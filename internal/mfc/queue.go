package mfc

import "sync"

// EventKind distinguishes the event kinds a transport can enqueue.
type EventKind int

const (
	// EventUpdate merges a partial session update into a model.
	EventUpdate EventKind = iota + 1
	// EventChat is a room chat message.
	EventChat
	// EventTip is a token tip.
	EventTip
	// EventRoomMember is a named member join/part notice.
	EventRoomMember
	// EventGuestCount is an aggregate guest-count update.
	EventGuestCount
)

// Event wraps the per-kind payloads for the event queue. Exactly one
// payload field matching Kind must be set.
type Event struct {
	Kind EventKind
	Seq  int64 // stamped by Enqueue; strictly increasing
	UID  int   // model id, for EventUpdate

	Update *SessionUpdate
	Chat   *ChatEvent
	Tip    *TipEvent
	Member *RoomMemberEvent
	Guests *GuestCountEvent
}

// eventQueue is a thread-safe FIFO queue for feed events.
//
// The queue is unbounded so a bursty transport never blocks the wire
// reader. Thread-safety covers external enqueuing while the Feed's Run
// loop dequeues; dequeuing itself is single-consumer.
//
// A buffered signal channel enables context-aware waiting in the Run
// loop (prevents goroutine hangs on context cancellation).
type eventQueue struct {
	mu     sync.Mutex
	events []Event
	closed bool
	signal chan struct{} // signals event availability (buffered, size 1)
}

func newEventQueue() *eventQueue {
	return &eventQueue{
		events: make([]Event, 0, 64),
		signal: make(chan struct{}, 1),
	}
}

// Enqueue adds an event to the back of the queue.
// Thread-safe: may be called from any goroutine.
// Returns false if the queue is closed.
func (q *eventQueue) Enqueue(e Event) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}

	q.events = append(q.events, e)

	// Non-blocking signal - buffer of 1 coalesces multiple signals.
	select {
	case q.signal <- struct{}{}:
	default:
	}

	return true
}

// TryDequeue attempts to dequeue without blocking.
// Returns (Event{}, false) if the queue is empty.
func (q *eventQueue) TryDequeue() (Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.events) == 0 {
		return Event{}, false
	}

	e := q.events[0]

	// Nil out the slot so the payload pointers can be collected before
	// the underlying array is reallocated.
	q.events[0] = Event{}

	if len(q.events) == 1 {
		q.events = q.events[:0]
	} else {
		q.events = q.events[1:]
	}

	return e, true
}

// Wait returns a channel that signals when events may be available.
func (q *eventQueue) Wait() <-chan struct{} {
	return q.signal
}

// Len returns the current queue length.
func (q *eventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// Closed reports whether Close has been called.
func (q *eventQueue) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// Close signals that no more events will be enqueued.
// Wakes any blocked waiters by closing the signal channel.
func (q *eventQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}

	q.closed = true
	close(q.signal)
}
