package model

import "time"

var (
	MessageSentID = 2
	MessageSeenID = 3
)

// ChatMessage is a single message in a simulated conversation. There is no
// real transport behind these: history is seeded locally and replies are
// generated, see internal/chat.
type ChatMessage struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	SenderID       string    `json:"senderId"`
	Body           string    `json:"body"`
	SentAt         time.Time `json:"sentAt"`
	Read           bool      `json:"read"`
	Status         int       `json:"status"`
}

// TypingIndicator signals that a participant started or stopped typing.
type TypingIndicator struct {
	ConversationID string `json:"conversationId"`
	UserID         string `json:"userId"`
	IsTyping       bool   `json:"isTyping"`
}

// VideoDateInfo carries what a participant needs to join a video date room.
type VideoDateInfo struct {
	RoomName string `json:"roomName"`
	Token    string `json:"token"`
	URL      string `json:"url"`
}
