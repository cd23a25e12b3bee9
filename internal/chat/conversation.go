package chat

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gauru07/fullstack-dating-app/internal/model"
)

// ConversationID derives the stable room id for a user pair. Both
// participants resolve to the same id regardless of who opened the chat.
func ConversationID(userID, peerID string) string {
	if userID > peerID {
		userID, peerID = peerID, userID
	}
	return userID + ":" + peerID
}

// Conversation is a per-pair message list. There is no transport or
// persistence behind it: history is seeded locally and replies are
// generated, so it is demo scaffolding until a real messaging backend
// replaces it.
type Conversation struct {
	ID     string
	UserID string
	Peer   model.UserProfile

	mu       sync.Mutex
	messages []model.ChatMessage
}

func newConversation(userID string, peer model.UserProfile) *Conversation {
	c := &Conversation{
		ID:     ConversationID(userID, peer.ID),
		UserID: userID,
		Peer:   peer,
	}
	c.seedHistory(time.Now().UTC())
	return c
}

// seedHistory plants the fixed opening exchange every conversation starts
// with, alternating between the session user and the peer.
func (c *Conversation) seedHistory(now time.Time) {
	name := c.Peer.FullName
	if name == "" {
		name = c.Peer.Username
	}

	seeds := []struct {
		sender string
		body   string
		offset time.Duration
	}{
		{c.UserID, fmt.Sprintf("Hi %s! 👋 How are you doing today?", name), -5 * time.Minute},
		{c.Peer.ID, "Hey! Nice to meet you! 😊 I'm doing great, thanks for asking!", -4 * time.Minute},
		{c.UserID, "That's awesome! What do you like to do for fun?", -3 * time.Minute},
		{c.Peer.ID, "I love traveling and trying new foods! 🍕✈️ What about you?", -2 * time.Minute},
	}

	for _, s := range seeds {
		c.messages = append(c.messages, model.ChatMessage{
			ID:             uuid.New().String(),
			ConversationID: c.ID,
			SenderID:       s.sender,
			Body:           s.body,
			SentAt:         now.Add(s.offset),
			Read:           true,
			Status:         model.MessageSeenID,
		})
	}
}

// Append records a message and returns it with id and timestamp filled in.
func (c *Conversation) Append(senderID, body string) model.ChatMessage {
	msg := model.ChatMessage{
		ID:             uuid.New().String(),
		ConversationID: c.ID,
		SenderID:       senderID,
		Body:           body,
		SentAt:         time.Now().UTC(),
		Status:         model.MessageSentID,
	}

	c.mu.Lock()
	c.messages = append(c.messages, msg)
	c.mu.Unlock()

	return msg
}

// Messages returns a snapshot of the conversation history.
func (c *Conversation) Messages() []model.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]model.ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out
}
