package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type InboxHandler interface {
	List(c *gin.Context)
	Accept(c *gin.Context)
	Reject(c *gin.Context)
}

type inboxHandler struct {
	logger *zap.Logger
}

func NewInboxHandler(logger *zap.Logger) InboxHandler {
	return &inboxHandler{logger: logger}
}

func (h *inboxHandler) List(c *gin.Context) {
	s, ok := CurrentSession(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no session"})
		return
	}

	if err := s.Inbox().LoadRequests(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": s.Inbox().Entries()})
}

func (h *inboxHandler) Accept(c *gin.Context) {
	h.review(c, true)
}

func (h *inboxHandler) Reject(c *gin.Context) {
	h.review(c, false)
}

func (h *inboxHandler) review(c *gin.Context, accept bool) {
	s, ok := CurrentSession(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no session"})
		return
	}

	requestID := c.Param("requestId")
	if requestID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "requestId is required"})
		return
	}

	var err error
	if accept {
		err = s.Inbox().Accept(c.Request.Context(), requestID)
	} else {
		err = s.Inbox().Reject(c.Request.Context(), requestID)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": s.Inbox().Entries()})
}
