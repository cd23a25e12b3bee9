package approuters

import (
	"net/http"

	"github.com/gauru07/fullstack-dating-app/internal/configuration"
	"github.com/gauru07/fullstack-dating-app/internal/handler"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionCookieName = "streammatch_session"
	sessionCookieAge  = 60 * 60 * 24 * 7 // one week
)

// SessionMiddleware pins every request to a server-side session. First
// contact gets a fresh cookie; the session itself resolves auth state against
// the backend on creation.
func SessionMiddleware(container *configuration.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(sessionCookieName)
		if err != nil || id == "" {
			id = uuid.New().String()
			c.SetCookie(sessionCookieName, id, sessionCookieAge, "/", "", false, true)
		}

		s, err := container.Sessions.Ensure(c.Request.Context(), id)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
			return
		}

		c.Set(handler.SessionContextKey, s)
		c.Next()
	}
}

// RequireAuth rejects requests whose session has no authenticated user.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := handler.CurrentSession(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
			return
		}
		if user, _ := s.CurrentUser(); user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}
		c.Next()
	}
}
