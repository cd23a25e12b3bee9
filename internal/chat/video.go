package chat

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/livekit/protocol/auth"

	"github.com/gauru07/fullstack-dating-app/internal/model"
)

var ErrVideoDisabled = errors.New("chat: video dates are not configured")

const videoTokenTTL = time.Hour

// VideoConfig holds the LiveKit credentials for video dates.
type VideoConfig struct {
	APIKey    string
	APISecret string
	URL       string
}

// VideoDateService mints LiveKit room tokens so two matched users can move a
// conversation to a video call.
type VideoDateService struct {
	cfg VideoConfig
}

// NewVideoDateService creates the token minter. With empty credentials the
// service stays disabled and CreateRoom fails fast.
func NewVideoDateService(cfg VideoConfig) *VideoDateService {
	return &VideoDateService{cfg: cfg}
}

// Enabled reports whether LiveKit credentials are configured.
func (s *VideoDateService) Enabled() bool {
	return s.cfg.APIKey != "" && s.cfg.APISecret != ""
}

// CreateRoom mints a join token for the given identity in a fresh date
// room. The peer obtains their own token through the same endpoint.
func (s *VideoDateService) CreateRoom(identity string) (model.VideoDateInfo, error) {
	if !s.Enabled() {
		return model.VideoDateInfo{}, ErrVideoDisabled
	}

	roomName := "date-" + uuid.New().String()

	at := auth.NewAccessToken(s.cfg.APIKey, s.cfg.APISecret)
	grant := &auth.VideoGrant{
		RoomJoin: true,
		Room:     roomName,
	}
	at.AddGrant(grant).SetIdentity(identity).SetValidFor(videoTokenTTL)

	token, err := at.ToJWT()
	if err != nil {
		return model.VideoDateInfo{}, fmt.Errorf("mint video token: %w", err)
	}

	return model.VideoDateInfo{
		RoomName: roomName,
		Token:    token,
		URL:      s.cfg.URL,
	}, nil
}
