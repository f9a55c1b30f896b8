package matchmaking

import "time"

// Wire event names exchanged with clients over the realtime transport.
const (
	EventFindRandomChat      = "find_random_chat"
	EventWaiting             = "waiting"
	EventPairFound           = "pair_found"
	EventSendMessage         = "send_message"
	EventReceiveMessage      = "receive_message"
	EventSkipRandomChat      = "skip_random_chat"
	EventChatSkipped         = "chat_skipped"
	EventPartnerDisconnected = "partner_disconnected"
	EventStartAiChat         = "start_ai_chat"
	EventMatchFailed         = "match_failed"
)

// Synthetic partner identity for the bot path.
const (
	BotPartnerID   = 0
	BotDisplayName = "Bot"
)

// PairFoundPayload is sent to both sides of a new pairing. PartnerID 0
// marks the bot.
type PairFoundPayload struct {
	SessionID string `json:"sessionId"`
	Partner   string `json:"partner"`
	PartnerID int    `json:"partnerId"`
}

// MessagePayload is the inbound send_message body.
type MessagePayload struct {
	Content          string `json:"content"`
	RandomChatRoomID string `json:"randomChatRoomId"`
}

// MessageSender identifies the author of a relayed message.
type MessageSender struct {
	ID          int    `json:"id"`
	DisplayName string `json:"displayName"`
}

// ReceiveMessagePayload is broadcast to a session's channel for every
// relayed message. CreatedAt is the server timestamp; messages are not
// stored.
type ReceiveMessagePayload struct {
	Content          string        `json:"content"`
	SenderID         int           `json:"senderId"`
	RandomChatRoomID string        `json:"randomChatRoomId"`
	Sender           MessageSender `json:"sender"`
	CreatedAt        time.Time     `json:"createdAt"`
}
