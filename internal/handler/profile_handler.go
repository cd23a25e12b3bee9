package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gauru07/fullstack-dating-app/internal/model"
)

type ProfileHandler interface {
	View(c *gin.Context)
	Update(c *gin.Context)
	UploadPhotos(c *gin.Context)
	DeletePhoto(c *gin.Context)
}

type profileHandler struct {
	logger *zap.Logger
}

func NewProfileHandler(logger *zap.Logger) ProfileHandler {
	return &profileHandler{logger: logger}
}

// View returns the user's own record both raw and normalized, so the edit
// form can bind raw fields while the preview renders the canonical profile.
func (h *profileHandler) View(c *gin.Context) {
	s, ok := CurrentSession(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no session"})
		return
	}

	user, err := s.Client().Profile(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	profile, err := model.NewUserProfile(*user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":    user,
		"profile": profile,
	})
}

func (h *profileHandler) Update(c *gin.Context) {
	s, ok := CurrentSession(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no session"})
		return
	}

	patch, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile payload"})
		return
	}

	if err := s.Client().UpdateProfile(c.Request.Context(), json.RawMessage(patch)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

// UploadPhotos streams the incoming multipart body straight to the backend.
func (h *profileHandler) UploadPhotos(c *gin.Context) {
	s, ok := CurrentSession(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no session"})
		return
	}

	contentType := c.GetHeader("Content-Type")
	if contentType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart body is required"})
		return
	}

	if err := s.Client().UploadPhotos(c.Request.Context(), contentType, c.Request.Body); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Photos uploaded"})
}

func (h *profileHandler) DeletePhoto(c *gin.Context) {
	s, ok := CurrentSession(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no session"})
		return
	}

	photoURL := c.Query("url")
	if photoURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}

	if err := s.Client().DeletePhoto(c.Request.Context(), photoURL); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Photo deleted"})
}
