package matchmaking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(connID string, userID int) WaitingEntry {
	return WaitingEntry{ConnID: connID, UserID: userID, DisplayName: connID}
}

func TestQueueFIFOOrder(t *testing.T) {
	q := newWaitingQueue()
	q.Enqueue(entry("a", 1))
	q.Enqueue(entry("b", 2))
	q.Enqueue(entry("c", 3))

	first := q.PopFirst(func(WaitingEntry) bool { return true })
	require.NotNil(t, first)
	assert.Equal(t, "a", first.ConnID)

	second := q.PopFirst(func(WaitingEntry) bool { return true })
	require.NotNil(t, second)
	assert.Equal(t, "b", second.ConnID)

	assert.Equal(t, 1, q.Len())
}

func TestQueueEnqueueIdempotent(t *testing.T) {
	q := newWaitingQueue()
	q.Enqueue(entry("a", 1))
	q.Enqueue(entry("a", 1))

	assert.Equal(t, 1, q.Len())
	assert.True(t, q.Contains("a"))
}

func TestQueueRemove(t *testing.T) {
	q := newWaitingQueue()
	q.Enqueue(entry("a", 1))
	q.Enqueue(entry("b", 2))

	removed := q.Remove("a")
	require.NotNil(t, removed)
	assert.Equal(t, 1, removed.UserID)
	assert.False(t, q.Contains("a"))
	assert.Equal(t, 1, q.Len())

	// Removing again is a no-op, never an error.
	assert.Nil(t, q.Remove("a"))
	assert.Nil(t, q.Remove("never-queued"))
	assert.Equal(t, 1, q.Len())
}

func TestQueuePopFirstSkipsNonMatching(t *testing.T) {
	q := newWaitingQueue()
	q.Enqueue(entry("a", 1))
	q.Enqueue(entry("b", 2))
	q.Enqueue(entry("c", 3))

	popped := q.PopFirst(func(e WaitingEntry) bool { return e.UserID > 1 })
	require.NotNil(t, popped)
	assert.Equal(t, "b", popped.ConnID)

	// a stays at the head, untouched.
	assert.True(t, q.Contains("a"))
	assert.False(t, q.Contains("b"))
	assert.True(t, q.Contains("c"))
}

func TestQueuePopFirstNoMatch(t *testing.T) {
	q := newWaitingQueue()
	q.Enqueue(entry("a", 1))

	assert.Nil(t, q.PopFirst(func(WaitingEntry) bool { return false }))
	assert.Equal(t, 1, q.Len())
}

// The list and the id index must agree after any interleaving of
// operations.
func TestQueueIndexConsistency(t *testing.T) {
	q := newWaitingQueue()
	ids := []string{"a", "b", "c", "d", "e"}
	for i, id := range ids {
		q.Enqueue(entry(id, i+1))
	}

	q.Remove("c")
	q.Remove("a")
	q.Enqueue(entry("a", 1))
	q.PopFirst(func(e WaitingEntry) bool { return e.ConnID == "e" })

	assert.Equal(t, q.order.Len(), len(q.index))
	for el := q.order.Front(); el != nil; el = el.Next() {
		e := el.Value.(WaitingEntry)
		assert.True(t, q.Contains(e.ConnID))
	}
}
