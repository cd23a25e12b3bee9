package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gauru07/fullstack-dating-app/internal/discover"
)

type DiscoverHandler interface {
	Deck(c *gin.Context)
	Refresh(c *gin.Context)
	Like(c *gin.Context)
	Pass(c *gin.Context)
}

type discoverHandler struct {
	logger *zap.Logger
}

func NewDiscoverHandler(logger *zap.Logger) DiscoverHandler {
	return &discoverHandler{logger: logger}
}

// Deck returns the current candidate. An exhausted or never-loaded deck is
// refreshed first.
func (h *discoverHandler) Deck(c *gin.Context) {
	s, ok := CurrentSession(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no session"})
		return
	}

	d := s.Discover()
	if d.Remaining() == 0 {
		if err := d.LoadProfiles(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}
	}

	candidate, ok := d.Current()
	if !ok {
		c.JSON(http.StatusOK, gin.H{
			"candidate": nil,
			"remaining": 0,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"candidate": candidate,
		"remaining": d.Remaining(),
	})
}

// Refresh discards the deck and fetches a fresh one.
func (h *discoverHandler) Refresh(c *gin.Context) {
	s, ok := CurrentSession(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no session"})
		return
	}

	if err := s.Discover().LoadProfiles(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"remaining": s.Discover().Remaining()})
}

func (h *discoverHandler) Like(c *gin.Context) {
	s, ok := CurrentSession(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no session"})
		return
	}

	outcome, err := s.Discover().Like(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"liked":     outcome.Candidate,
		"matched":   outcome.Matched,
		"simulated": outcome.Simulated,
		"remaining": s.Discover().Remaining(),
	})
}

func (h *discoverHandler) Pass(c *gin.Context) {
	s, ok := CurrentSession(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no session"})
		return
	}

	candidate, err := s.Discover().Pass(c.Request.Context())
	if errors.Is(err, discover.ErrActionInFlight) || errors.Is(err, discover.ErrNoCandidates) {
		respondError(c, err)
		return
	}
	if err != nil {
		// pass is best-effort: the deck advanced, tell the view but flag it
		h.logger.Warn("pass completed with error", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{
			"passed":    candidate,
			"delivered": false,
			"remaining": s.Discover().Remaining(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"passed":    candidate,
		"delivered": true,
		"remaining": s.Discover().Remaining(),
	})
}
