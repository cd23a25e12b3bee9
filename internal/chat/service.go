package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/gauru07/fullstack-dating-app/internal/event"
	"github.com/gauru07/fullstack-dating-app/internal/hub"
	"github.com/gauru07/fullstack-dating-app/internal/model"
)

var (
	ErrPeerNotFound         = errors.New("chat: peer is not a connection")
	ErrConversationNotFound = errors.New("chat: conversation not open")
)

// Connections is the slice of the core backend the chat needs: the peer must
// be an established match before a conversation opens.
type Connections interface {
	Connections(ctx context.Context) ([]model.BackendUser, error)
}

// Service owns the simulated conversations and drives auto-replies over the
// websocket hub. With demo off, messages are still recorded and relayed to
// the room but nothing replies.
type Service struct {
	hub       *hub.Hub
	responder *Responder
	demo      bool
	logger    *zap.Logger

	mu            sync.RWMutex
	conversations map[string]*Conversation
}

// NewService wires the chat into the hub's message stream.
func NewService(h *hub.Hub, responder *Responder, demo bool, logger *zap.Logger) *Service {
	s := &Service{
		hub:           h,
		responder:     responder,
		demo:          demo,
		logger:        logger,
		conversations: make(map[string]*Conversation),
	}
	h.SetMessageHandler(s.handleClientMessage)
	return s
}

// Open returns the conversation between the session user and a peer,
// creating and seeding it on first use. The peer must appear in the user's
// connections.
func (s *Service) Open(ctx context.Context, api Connections, userID, peerID string) (*Conversation, error) {
	id := ConversationID(userID, peerID)

	s.mu.RLock()
	conv, ok := s.conversations[id]
	s.mu.RUnlock()
	if ok {
		return conv, nil
	}

	users, err := api.Connections(ctx)
	if err != nil {
		return nil, fmt.Errorf("open conversation: %w", err)
	}

	var peer *model.UserProfile
	for _, u := range users {
		if u.ID != peerID {
			continue
		}
		p, err := model.NewUserProfile(u)
		if err != nil {
			return nil, fmt.Errorf("open conversation: %w", err)
		}
		peer = &p
		break
	}
	if peer == nil {
		return nil, ErrPeerNotFound
	}

	s.mu.Lock()
	if existing, ok := s.conversations[id]; ok {
		s.mu.Unlock()
		return existing, nil
	}
	conv = newConversation(userID, *peer)
	s.conversations[id] = conv
	s.mu.Unlock()

	s.logger.Info("conversation opened",
		zap.String("conversation_id", id),
		zap.String("peer_id", peerID),
	)
	return conv, nil
}

// Get returns an already-open conversation.
func (s *Service) Get(userID, peerID string) (*Conversation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conv, ok := s.conversations[ConversationID(userID, peerID)]
	return conv, ok
}

// Send appends a message from the session user, relays it to the room and,
// in demo mode, schedules the simulated reply.
func (s *Service) Send(userID, peerID, body string) (model.ChatMessage, error) {
	conv, ok := s.Get(userID, peerID)
	if !ok {
		return model.ChatMessage{}, ErrConversationNotFound
	}

	msg := conv.Append(userID, body)
	s.publishMessage(conv.ID, msg)

	if s.demo {
		s.scheduleReply(conv)
	}
	return msg, nil
}

// handleClientMessage is the hub hook: messages arriving over the websocket
// are recorded the same way as REST sends. The hub has already relayed the
// original event to the room.
func (s *Service) handleClientMessage(conversationID, senderID string, msg event.Message) {
	s.mu.RLock()
	conv, ok := s.conversations[conversationID]
	s.mu.RUnlock()
	if !ok {
		s.logger.Debug("message for unopened conversation dropped",
			zap.String("conversation_id", conversationID),
		)
		return
	}

	conv.Append(senderID, msg.Body)

	if s.demo && senderID == conv.UserID {
		s.scheduleReply(conv)
	}
}

// scheduleReply emits a typing indicator, waits a randomized delay, then
// appends and broadcasts a canned reply from the peer.
func (s *Service) scheduleReply(conv *Conversation) {
	s.publishTyping(conv.ID, conv.Peer.ID, true)

	time.AfterFunc(s.responder.Delay(), func() {
		reply := conv.Append(conv.Peer.ID, s.responder.Pick())
		s.publishTyping(conv.ID, conv.Peer.ID, false)
		s.publishMessage(conv.ID, reply)
	})
}

func (s *Service) publishMessage(conversationID string, msg model.ChatMessage) {
	payload, err := json.Marshal(event.Message{
		ConversationID: conversationID,
		SenderID:       msg.SenderID,
		Body:           msg.Body,
		Timestamp:      msg.SentAt.UnixMilli(),
		Status:         msg.Status,
	})
	if err != nil {
		s.logger.Error("marshal chat message", zap.Error(err))
		return
	}

	s.hub.PublishToRoom(event.WsEvent{
		Event:          event.EventServerMessage,
		ConversationID: conversationID,
		Payload:        payload,
		MessageID:      msg.ID,
	}, conversationID)
}

func (s *Service) publishTyping(conversationID, userID string, isTyping bool) {
	payload, err := json.Marshal(event.Typing{
		ConversationID: conversationID,
		UserID:         userID,
		IsTyping:       isTyping,
	})
	if err != nil {
		s.logger.Error("marshal typing event", zap.Error(err))
		return
	}

	s.hub.PublishToRoom(event.WsEvent{
		Event:          event.EventTyping,
		ConversationID: conversationID,
		Payload:        payload,
	}, conversationID)
}
