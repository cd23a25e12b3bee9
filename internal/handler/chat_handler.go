package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gauru07/fullstack-dating-app/internal/chat"
)

type ChatHandler interface {
	History(c *gin.Context)
	Send(c *gin.Context)
	VideoDate(c *gin.Context)
}

type chatHandler struct {
	chats  *chat.Service
	video  *chat.VideoDateService
	logger *zap.Logger
}

func NewChatHandler(chats *chat.Service, video *chat.VideoDateService, logger *zap.Logger) ChatHandler {
	return &chatHandler{
		chats:  chats,
		video:  video,
		logger: logger,
	}
}

// History opens (or resumes) the conversation with a peer and returns its
// message list plus the peer profile for the header.
func (h *chatHandler) History(c *gin.Context) {
	s, ok := CurrentSession(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no session"})
		return
	}

	user, _ := s.CurrentUser()
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	conv, err := h.chats.Open(c.Request.Context(), s.Client(), user.ID, c.Param("peerId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"conversationId": conv.ID,
		"peer":           conv.Peer,
		"messages":       conv.Messages(),
	})
}

type sendPayload struct {
	Body string `json:"body" binding:"required"`
}

func (h *chatHandler) Send(c *gin.Context) {
	s, ok := CurrentSession(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no session"})
		return
	}

	user, _ := s.CurrentUser()
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var payload sendPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body is required"})
		return
	}

	msg, err := h.chats.Send(user.ID, c.Param("peerId"), payload.Body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// VideoDate mints a LiveKit join token for a video call with the peer.
func (h *chatHandler) VideoDate(c *gin.Context) {
	s, ok := CurrentSession(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no session"})
		return
	}

	user, _ := s.CurrentUser()
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	// the conversation must be open, which proves the peer is a connection
	if _, ok := h.chats.Get(user.ID, c.Param("peerId")); !ok {
		respondError(c, chat.ErrConversationNotFound)
		return
	}

	info, err := h.video.CreateRoom(user.ID)
	if err != nil {
		if err == chat.ErrVideoDisabled {
			c.JSON(http.StatusNotImplemented, gin.H{"error": err.Error()})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"videoDate": info})
}
