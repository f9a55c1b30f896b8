package matchmaking

import "container/list"

// WaitingEntry is one connection waiting in the random-chat queue.
// Identity fields are attached by the auth layer before the entry
// reaches the engine.
type WaitingEntry struct {
	ConnID         string
	UserID         int
	DisplayName    string
	AgeBand        string // empty when the user never set one
	WantsAgeFilter bool
}

// waitingQueue holds waiting entries in FIFO order with O(1) lookup
// and removal by connection id. The list and the index are updated
// together: a connection is in one iff it is in the other.
type waitingQueue struct {
	order *list.List
	index map[string]*list.Element
}

func newWaitingQueue() *waitingQueue {
	return &waitingQueue{
		order: list.New(),
		index: make(map[string]*list.Element),
	}
}

// Enqueue appends the entry at the tail. Enqueueing a connection that
// is already queued is a no-op.
func (q *waitingQueue) Enqueue(e WaitingEntry) {
	if _, ok := q.index[e.ConnID]; ok {
		return
	}
	q.index[e.ConnID] = q.order.PushBack(e)
}

// Remove deletes the entry for connID and returns it, or nil if the
// connection is not queued.
func (q *waitingQueue) Remove(connID string) *WaitingEntry {
	el, ok := q.index[connID]
	if !ok {
		return nil
	}
	delete(q.index, connID)
	entry := q.order.Remove(el).(WaitingEntry)
	return &entry
}

// PopFirst removes and returns the oldest entry for which match
// returns true, or nil if no entry matches.
func (q *waitingQueue) PopFirst(match func(WaitingEntry) bool) *WaitingEntry {
	for el := q.order.Front(); el != nil; el = el.Next() {
		entry := el.Value.(WaitingEntry)
		if match(entry) {
			return q.Remove(entry.ConnID)
		}
	}
	return nil
}

func (q *waitingQueue) Contains(connID string) bool {
	_, ok := q.index[connID]
	return ok
}

func (q *waitingQueue) Len() int {
	return q.order.Len()
}
