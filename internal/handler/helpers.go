package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gauru07/fullstack-dating-app/internal/backend"
	"github.com/gauru07/fullstack-dating-app/internal/chat"
	"github.com/gauru07/fullstack-dating-app/internal/discover"
	"github.com/gauru07/fullstack-dating-app/internal/session"
)

// SessionContextKey is where the session middleware parks the resolved
// session for handlers.
const SessionContextKey = "streammatch_session"

// CurrentSession pulls the session the middleware attached.
func CurrentSession(c *gin.Context) (*session.Session, bool) {
	v, ok := c.Get(SessionContextKey)
	if !ok {
		return nil, false
	}
	s, ok := v.(*session.Session)
	return s, ok
}

// respondError maps the error taxonomy onto HTTP statuses uniformly, instead
// of collapsing every failure into one generic message.
func respondError(c *gin.Context, err error) {
	var apiErr *backend.APIError

	switch {
	case errors.As(err, &apiErr):
		c.JSON(apiErr.Status, gin.H{"error": apiErr.Message})
	case errors.Is(err, backend.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
	case errors.Is(err, backend.ErrNotFound), errors.Is(err, chat.ErrPeerNotFound),
		errors.Is(err, chat.ErrConversationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, backend.ErrTransport):
		c.JSON(http.StatusBadGateway, gin.H{"error": "backend unreachable"})
	case errors.Is(err, backend.ErrInvalidResponse):
		c.JSON(http.StatusBadGateway, gin.H{"error": "backend returned an unexpected response"})
	case errors.Is(err, discover.ErrActionInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": "another swipe is still in flight"})
	case errors.Is(err, discover.ErrNoCandidates):
		c.JSON(http.StatusNotFound, gin.H{"error": "no candidates loaded"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
