package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gauru07/fullstack-dating-app/internal/model"
)

type AuthHandler interface {
	Login(c *gin.Context)
	Signup(c *gin.Context)
	Logout(c *gin.Context)
	Session(c *gin.Context)
	SetUser(c *gin.Context)
}

type authHandler struct {
	logger *zap.Logger
}

func NewAuthHandler(logger *zap.Logger) AuthHandler {
	return &authHandler{logger: logger}
}

type loginPayload struct {
	EmailID  string `json:"emailId" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *authHandler) Login(c *gin.Context) {
	s, ok := CurrentSession(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no session"})
		return
	}

	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "emailId and password are required"})
		return
	}

	if err := s.SignIn(c.Request.Context(), payload.EmailID, payload.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	user, _ := s.CurrentUser()
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    user,
	})
}

func (h *authHandler) Signup(c *gin.Context) {
	s, ok := CurrentSession(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no session"})
		return
	}

	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signup payload"})
		return
	}

	result, err := s.Client().Signup(c.Request.Context(), json.RawMessage(payload))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": result.Message,
		"user":    result.User,
	})
}

func (h *authHandler) Logout(c *gin.Context) {
	s, ok := CurrentSession(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no session"})
		return
	}

	// Logout always succeeds locally, whatever the backend said.
	s.SignOut(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"message":  "Logged out",
		"redirect": "/",
	})
}

// Session reports the current auth state; the front-end polls this on boot
// instead of calling the core backend directly.
func (h *authHandler) Session(c *gin.Context) {
	s, ok := CurrentSession(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no session"})
		return
	}

	user, loading := s.CurrentUser()
	c.JSON(http.StatusOK, gin.H{
		"user":    user,
		"loading": loading,
	})
}

// SetUser is the debug override escape hatch: it replaces the session user
// without any validation.
func (h *authHandler) SetUser(c *gin.Context) {
	s, ok := CurrentSession(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no session"})
		return
	}

	var user model.BackendUser
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user payload"})
		return
	}

	s.SetCurrentUser(c.Request.Context(), user)
	h.logger.Warn("session user overridden via debug endpoint",
		zap.String("user_id", user.ID),
	)
	c.JSON(http.StatusOK, gin.H{"user": user})
}
