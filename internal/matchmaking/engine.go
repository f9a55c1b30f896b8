package matchmaking

import (
	"context"
	"log"
	"sync"
	"time"
)

// Transport is the realtime layer the engine emits through. The
// websocket hub implements it in production; tests use a fake. Emits
// to connections that are already gone must be harmless no-ops.
type Transport interface {
	Join(channel, connID string)
	Leave(channel, connID string)
	Emit(connID, event string, payload interface{})
	Broadcast(channel, event string, payload interface{})
	IsConnected(connID string) bool
}

// RoomStore persists the durable room record created once per
// successful pairing.
type RoomStore interface {
	CreateRoom(ctx context.Context, user1ID, user2ID int, seedMessage string) (roomID string, err error)
}

// ActiveSession records one side of a confirmed pairing. PeerConnID is
// empty for bot sessions.
type ActiveSession struct {
	RoomID     string
	ConnID     string
	PeerConnID string
	PeerUserID int
	AI         bool
}

// Engine owns the waiting queue and the active-session registry and
// drives the whole random-chat lifecycle: enqueue-or-pair, message
// relay, and teardown on skip or disconnect.
//
// One mutex guards both structures. The scan-and-reserve step of a
// match runs entirely inside it, so two racing find requests can never
// claim the same waiting candidate; only the room-store call runs
// outside the lock.
type Engine struct {
	mu       sync.Mutex
	queue    *waitingQueue
	sessions map[string]*ActiveSession // conn id -> session

	transport   Transport
	rooms       RoomStore
	presence    *Presence
	seedMessage string
}

// NewEngine creates an engine. presence may be nil (gauges disabled).
func NewEngine(transport Transport, rooms RoomStore, presence *Presence, seedMessage string) *Engine {
	return &Engine{
		queue:       newWaitingQueue(),
		sessions:    make(map[string]*ActiveSession),
		transport:   transport,
		rooms:       rooms,
		presence:    presence,
		seedMessage: seedMessage,
	}
}

// FindRandomChat pairs the connection with the earliest compatible
// waiting entry, or enqueues it when none exists. A connection that is
// already waiting or paired is ignored without side effects.
func (e *Engine) FindRandomChat(ctx context.Context, entry WaitingEntry) {
	e.mu.Lock()
	if e.queue.Contains(entry.ConnID) || e.sessions[entry.ConnID] != nil {
		e.mu.Unlock()
		return
	}

	// Reserve the candidate before unlocking. Once removed here no
	// other find call can observe it, which is what makes the
	// room-store call safe to run outside the lock.
	candidate := e.queue.PopFirst(func(c WaitingEntry) bool {
		return AreCompatible(entry, c)
	})
	if candidate == nil {
		e.queue.Enqueue(entry)
		e.mu.Unlock()
		e.publishGauges(ctx)
		e.transport.Emit(entry.ConnID, EventWaiting, "Searching for a partner...")
		return
	}
	e.mu.Unlock()
	e.publishGauges(ctx)

	roomID, err := e.rooms.CreateRoom(ctx, entry.UserID, candidate.UserID, e.seedMessage)
	if err != nil {
		log.Printf("[MATCH] Room create failed for users %d/%d: %v", entry.UserID, candidate.UserID, err)
		e.transport.Emit(entry.ConnID, EventMatchFailed, "Could not start the chat. Please try again.")
		e.transport.Emit(candidate.ConnID, EventMatchFailed, "Could not start the chat. Please try again.")
		return
	}

	e.completePairing(ctx, roomID, entry, *candidate)
}

// completePairing records both sessions, joins the shared channel and
// notifies both sides. Either side may have disconnected while the
// room was being persisted; a dead side gets no session and the live
// side is told the match failed.
func (e *Engine) completePairing(ctx context.Context, roomID string, a, b WaitingEntry) {
	e.mu.Lock()
	e.sessions[a.ConnID] = &ActiveSession{RoomID: roomID, ConnID: a.ConnID, PeerConnID: b.ConnID, PeerUserID: b.UserID}
	e.sessions[b.ConnID] = &ActiveSession{RoomID: roomID, ConnID: b.ConnID, PeerConnID: a.ConnID, PeerUserID: a.UserID}
	e.mu.Unlock()

	// Liveness is checked only after the sessions exist. A disconnect
	// during the room-store call finds nothing to tear down, so
	// checking before inserting would leave the dead side holding a
	// session forever. A disconnect from here on hits a recorded
	// session and goes through the normal OnDisconnect teardown.
	aLive := e.transport.IsConnected(a.ConnID)
	bLive := e.transport.IsConnected(b.ConnID)
	if !aLive || !bLive {
		e.abortPairing(ctx, roomID, a, b, aLive, bLive)
		return
	}

	e.transport.Join(roomID, a.ConnID)
	e.transport.Join(roomID, b.ConnID)
	e.transport.Emit(a.ConnID, EventPairFound, PairFoundPayload{SessionID: roomID, Partner: b.DisplayName, PartnerID: b.UserID})
	e.transport.Emit(b.ConnID, EventPairFound, PairFoundPayload{SessionID: roomID, Partner: a.DisplayName, PartnerID: a.UserID})
	e.publishGauges(ctx)

	log.Printf("[MATCH] Paired users %d and %d in room %s", a.UserID, b.UserID, roomID)
}

// abortPairing backs out a pairing whose participant vanished before
// pair_found went out. If OnDisconnect already tore the sessions down
// the peer has been notified and there is nothing left to do.
func (e *Engine) abortPairing(ctx context.Context, roomID string, a, b WaitingEntry, aLive, bLive bool) {
	e.mu.Lock()
	session := e.sessions[a.ConnID]
	claimed := session != nil && session.RoomID == roomID
	if claimed {
		delete(e.sessions, a.ConnID)
		delete(e.sessions, b.ConnID)
	}
	e.mu.Unlock()
	if !claimed {
		return
	}

	log.Printf("[MATCH] Pairing aborted for room %s: participant gone", roomID)
	if aLive {
		e.transport.Emit(a.ConnID, EventMatchFailed, "Your partner disconnected. Please try again.")
	}
	if bLive {
		e.transport.Emit(b.ConnID, EventMatchFailed, "Your partner disconnected. Please try again.")
	}
	e.publishGauges(ctx)
}

// StartAiChat pairs the connection with the synthetic bot partner,
// bypassing the queue and the matcher. No room is persisted. Ignored
// unless the connection is idle.
func (e *Engine) StartAiChat(ctx context.Context, connID string) {
	e.mu.Lock()
	if e.queue.Contains(connID) || e.sessions[connID] != nil {
		e.mu.Unlock()
		return
	}
	roomID := "ai:" + connID
	e.sessions[connID] = &ActiveSession{RoomID: roomID, ConnID: connID, AI: true}
	e.mu.Unlock()

	e.transport.Join(roomID, connID)
	e.transport.Emit(connID, EventPairFound, PairFoundPayload{SessionID: roomID, Partner: BotDisplayName, PartnerID: BotPartnerID})
	e.publishGauges(ctx)
}

// RelayMessage broadcasts a message within the sender's active
// session. Messages with no session, a mismatched room id or empty
// content are dropped without a reply.
func (e *Engine) RelayMessage(connID string, msg MessagePayload, sender MessageSender) {
	if msg.Content == "" {
		return
	}

	e.mu.Lock()
	session := e.sessions[connID]
	e.mu.Unlock()
	if session == nil || msg.RandomChatRoomID != session.RoomID {
		return
	}

	e.transport.Broadcast(session.RoomID, EventReceiveMessage, ReceiveMessagePayload{
		Content:          msg.Content,
		SenderID:         sender.ID,
		RandomChatRoomID: session.RoomID,
		Sender:           sender,
		CreatedAt:        time.Now().UTC(),
	})
}

// Skip cancels whatever the connection is doing: a waiting connection
// stops searching, a paired one leaves the session and its partner is
// notified. Safe to call in any state.
func (e *Engine) Skip(ctx context.Context, connID string) {
	e.mu.Lock()
	if e.queue.Remove(connID) != nil {
		e.mu.Unlock()
		e.publishGauges(ctx)
		e.transport.Emit(connID, EventChatSkipped, "Stopped searching.")
		return
	}
	e.mu.Unlock()

	if e.endSession(ctx, connID, "Your partner left the chat.") {
		e.transport.Emit(connID, EventChatSkipped, "You left the chat.")
	}
}

// OnDisconnect performs the same cleanup as Skip but never emits to
// the connection itself, which is already gone.
func (e *Engine) OnDisconnect(ctx context.Context, connID string) {
	e.mu.Lock()
	if e.queue.Remove(connID) != nil {
		e.mu.Unlock()
		e.publishGauges(ctx)
		return
	}
	e.mu.Unlock()

	e.endSession(ctx, connID, "Your partner disconnected.")
}

// endSession clears both sides of the connection's session, detaches
// them from the channel and notifies the peer if it is still live.
// Returns false when the connection had no session.
func (e *Engine) endSession(ctx context.Context, connID, peerReason string) bool {
	e.mu.Lock()
	session := e.sessions[connID]
	if session == nil {
		e.mu.Unlock()
		return false
	}
	delete(e.sessions, connID)
	if session.PeerConnID != "" {
		delete(e.sessions, session.PeerConnID)
	}
	e.mu.Unlock()

	e.transport.Leave(session.RoomID, connID)
	if session.PeerConnID != "" && e.transport.IsConnected(session.PeerConnID) {
		e.transport.Leave(session.RoomID, session.PeerConnID)
		e.transport.Emit(session.PeerConnID, EventPartnerDisconnected, peerReason)
	}
	e.publishGauges(ctx)
	return true
}

// Session returns the connection's active session, or nil.
func (e *Engine) Session(connID string) *ActiveSession {
	e.mu.Lock()
	defer e.mu.Unlock()
	if s, ok := e.sessions[connID]; ok {
		copied := *s
		return &copied
	}
	return nil
}

// Stats reports the current queue depth and session count.
func (e *Engine) Stats() (waiting, activeSessions int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.queue.Len(), len(e.sessions)
}

func (e *Engine) publishGauges(ctx context.Context) {
	waiting, sessions := e.Stats()
	e.presence.Publish(ctx, waiting, sessions)
}
