package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gauru07/fullstack-dating-app/internal/model"
)

type MatchHandler interface {
	List(c *gin.Context)
}

type matchHandler struct {
	logger *zap.Logger
}

func NewMatchHandler(logger *zap.Logger) MatchHandler {
	return &matchHandler{logger: logger}
}

// List returns the established matches as canonical profiles. Records that
// fail normalization are dropped individually.
func (h *matchHandler) List(c *gin.Context) {
	s, ok := CurrentSession(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no session"})
		return
	}

	users, err := s.Client().Connections(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	matches := make([]model.UserProfile, 0, len(users))
	for _, u := range users {
		p, err := model.NewUserProfile(u)
		if err != nil {
			h.logger.Warn("dropping connection entry", zap.Error(err))
			continue
		}
		matches = append(matches, p)
	}

	c.JSON(http.StatusOK, gin.H{"matches": matches})
}
