package matchmaking

import (
	"context"
	"fmt"
	"sync"
)

// fakeTransport records every transport interaction and tracks which
// connections are live.
type fakeTransport struct {
	mu        sync.Mutex
	connected map[string]bool
	emits     []fakeEmit
	channels  map[string]map[string]bool
}

type fakeEmit struct {
	ConnID  string
	Event   string
	Payload interface{}
}

func newFakeTransport(connIDs ...string) *fakeTransport {
	t := &fakeTransport{
		connected: make(map[string]bool),
		channels:  make(map[string]map[string]bool),
	}
	for _, id := range connIDs {
		t.connected[id] = true
	}
	return t
}

func (t *fakeTransport) Join(channel, connID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.channels[channel]; !ok {
		t.channels[channel] = make(map[string]bool)
	}
	t.channels[channel][connID] = true
}

func (t *fakeTransport) Leave(channel, connID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.channels[channel], connID)
}

func (t *fakeTransport) Emit(connID, event string, payload interface{}) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.connected[connID] {
		return
	}
	t.emits = append(t.emits, fakeEmit{ConnID: connID, Event: event, Payload: payload})
}

func (t *fakeTransport) Broadcast(channel, event string, payload interface{}) {
	t.mu.Lock()
	members := make([]string, 0, len(t.channels[channel]))
	for id := range t.channels[channel] {
		members = append(members, id)
	}
	t.mu.Unlock()
	for _, id := range members {
		t.Emit(id, event, payload)
	}
}

func (t *fakeTransport) IsConnected(connID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.connected[connID]
}

func (t *fakeTransport) disconnect(connID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.connected, connID)
}

// eventsFor returns the payloads emitted to connID for one event type.
func (t *fakeTransport) eventsFor(connID, event string) []interface{} {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []interface{}
	for _, e := range t.emits {
		if e.ConnID == connID && e.Event == event {
			out = append(out, e.Payload)
		}
	}
	return out
}

func (t *fakeTransport) inChannel(channel, connID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.channels[channel][connID]
}

// hookedTransport runs a callback whenever liveness is checked, so a
// test can interleave a disconnect at that exact point.
type hookedTransport struct {
	*fakeTransport
	onIsConnected func(connID string)
}

func (t *hookedTransport) IsConnected(connID string) bool {
	if t.onIsConnected != nil {
		t.onIsConnected(connID)
	}
	return t.fakeTransport.IsConnected(connID)
}

// fakeRoomStore hands out sequential room ids, optionally failing or
// running a hook mid-call to simulate work during the suspension
// point.
type fakeRoomStore struct {
	mu       sync.Mutex
	nextID   int
	created  []fakeRoom
	err      error
	onCreate func()
}

type fakeRoom struct {
	ID          string
	User1ID     int
	User2ID     int
	SeedMessage string
}

func (s *fakeRoomStore) CreateRoom(ctx context.Context, user1ID, user2ID int, seedMessage string) (string, error) {
	s.mu.Lock()
	hook := s.onCreate
	s.mu.Unlock()
	if hook != nil {
		hook()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	s.nextID++
	id := fmt.Sprintf("room-%d", s.nextID)
	s.created = append(s.created, fakeRoom{ID: id, User1ID: user1ID, User2ID: user2ID, SeedMessage: seedMessage})
	return id, nil
}

func (s *fakeRoomStore) createdRooms() []fakeRoom {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]fakeRoom(nil), s.created...)
}
