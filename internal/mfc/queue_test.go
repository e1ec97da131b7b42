package mfc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventQueue_EnqueueDequeue(t *testing.T) {
	q := newEventQueue()

	ok := q.Enqueue(Event{Kind: EventChat, Chat: &ChatEvent{UID: 1, From: "guest", Text: "hi"}})
	require.True(t, ok, "enqueue should succeed")

	got, ok := q.TryDequeue()
	require.True(t, ok, "dequeue should succeed")
	assert.Equal(t, EventChat, got.Kind)
	assert.Equal(t, "hi", got.Chat.Text)
}

func TestEventQueue_FIFO(t *testing.T) {
	q := newEventQueue()

	for i := 1; i <= 3; i++ {
		q.Enqueue(Event{Kind: EventUpdate, UID: i, Update: &SessionUpdate{}})
	}

	for i := 1; i <= 3; i++ {
		e, ok := q.TryDequeue()
		require.True(t, ok)
		assert.Equal(t, i, e.UID)
	}
}

func TestEventQueue_TryDequeue_Empty(t *testing.T) {
	q := newEventQueue()

	_, ok := q.TryDequeue()
	assert.False(t, ok, "dequeue from empty queue should return false")
}

func TestEventQueue_Enqueue_AfterClose(t *testing.T) {
	q := newEventQueue()
	q.Close()

	ok := q.Enqueue(Event{Kind: EventChat, Chat: &ChatEvent{}})
	assert.False(t, ok, "enqueue after close should return false")
}

func TestEventQueue_TryDequeue_DrainsAfterClose(t *testing.T) {
	q := newEventQueue()
	q.Enqueue(Event{Kind: EventUpdate, UID: 7, Update: &SessionUpdate{}})
	q.Close()

	e, ok := q.TryDequeue()
	require.True(t, ok, "events enqueued before close should still drain")
	assert.Equal(t, 7, e.UID)

	_, ok = q.TryDequeue()
	assert.False(t, ok)
}

func TestEventQueue_Wait_SignalsOnEnqueue(t *testing.T) {
	q := newEventQueue()

	select {
	case <-q.Wait():
		t.Fatal("empty queue should not signal")
	default:
	}

	q.Enqueue(Event{Kind: EventGuestCount, Guests: &GuestCountEvent{}})

	select {
	case <-q.Wait():
	default:
		t.Fatal("enqueue should signal availability")
	}
}

func TestEventQueue_Close_Idempotent(t *testing.T) {
	q := newEventQueue()
	q.Close()
	q.Close() // must not panic on double close
}
