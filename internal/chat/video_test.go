package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVideoDateService_DisabledWithoutCredentials(t *testing.T) {
	t.Parallel()

	s := NewVideoDateService(VideoConfig{})
	require.False(t, s.Enabled())

	_, err := s.CreateRoom("u1")
	require.ErrorIs(t, err, ErrVideoDisabled)
}

func TestVideoDateService_MintsToken(t *testing.T) {
	t.Parallel()

	s := NewVideoDateService(VideoConfig{
		APIKey:    "devkey",
		APISecret: "devsecret-devsecret-devsecret-00",
		URL:       "wss://livekit.example",
	})
	require.True(t, s.Enabled())

	info, err := s.CreateRoom("u1")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(info.RoomName, "date-"))
	require.NotEmpty(t, info.Token)
	require.Equal(t, "wss://livekit.example", info.URL)

	// each call creates a fresh room
	again, err := s.CreateRoom("u1")
	require.NoError(t, err)
	require.NotEqual(t, info.RoomName, again.RoomName)
}
