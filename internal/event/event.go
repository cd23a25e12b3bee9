package event

import "encoding/json"

const (
	EventClientMessage = "client_message"
	EventServerMessage = "server_message"
	EventTyping        = "typing"
)

// WsEvent is the envelope for everything that crosses the chat websocket,
// in both directions. Payload stays raw until the event type is known.
type WsEvent struct {
	Event          string          `json:"event"`
	ConversationID string          `json:"conversationId"`
	Payload        json.RawMessage `json:"payload"`
	MessageID      string          `json:"messageId,omitempty"`
}

// Message is the payload of client_message and server_message events.
type Message struct {
	ConversationID string `json:"conversationId"`
	SenderID       string `json:"senderId"`
	Body           string `json:"body"`
	Timestamp      int64  `json:"timestamp"`
	Status         int    `json:"status"`
}

// Typing is the payload of typing events.
type Typing struct {
	ConversationID string `json:"conversationId"`
	UserID         string `json:"userId"`
	IsTyping       bool   `json:"isTyping"`
}
