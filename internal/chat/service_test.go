package chat

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gauru07/fullstack-dating-app/internal/hub"
	"github.com/gauru07/fullstack-dating-app/internal/model"
)

type fakeConnections struct {
	users []model.BackendUser
	err   error
}

func (f *fakeConnections) Connections(ctx context.Context) ([]model.BackendUser, error) {
	return f.users, f.err
}

func newTestService(t *testing.T, demo bool) *Service {
	t.Helper()

	h := hub.NewHub(nil)
	t.Cleanup(h.Stop)

	return NewService(h, NewResponder(1), demo, zap.NewNop())
}

func TestOpen_RequiresConnection(t *testing.T) {
	t.Parallel()

	s := newTestService(t, false)
	api := &fakeConnections{users: []model.BackendUser{{ID: "p1", FirstName: "Ada"}}}

	conv, err := s.Open(context.Background(), api, "u1", "p1")
	require.NoError(t, err)
	require.Equal(t, ConversationID("u1", "p1"), conv.ID)
	require.Len(t, conv.Messages(), 4)

	_, err = s.Open(context.Background(), api, "u1", "stranger")
	require.ErrorIs(t, err, ErrPeerNotFound)
}

func TestOpen_IsIdempotent(t *testing.T) {
	t.Parallel()

	s := newTestService(t, false)
	api := &fakeConnections{users: []model.BackendUser{{ID: "p1"}}}

	first, err := s.Open(context.Background(), api, "u1", "p1")
	require.NoError(t, err)
	second, err := s.Open(context.Background(), api, "u1", "p1")
	require.NoError(t, err)
	require.Same(t, first, second)

	got, ok := s.Get("u1", "p1")
	require.True(t, ok)
	require.Same(t, first, got)
}

func TestSend_RequiresOpenConversation(t *testing.T) {
	t.Parallel()

	s := newTestService(t, false)

	_, err := s.Send("u1", "p1", "hello")
	require.ErrorIs(t, err, ErrConversationNotFound)
}

func TestSend_RecordsMessage(t *testing.T) {
	t.Parallel()

	s := newTestService(t, false)
	api := &fakeConnections{users: []model.BackendUser{{ID: "p1"}}}

	conv, err := s.Open(context.Background(), api, "u1", "p1")
	require.NoError(t, err)

	msg, err := s.Send("u1", "p1", "hello")
	require.NoError(t, err)
	require.Equal(t, "u1", msg.SenderID)
	require.Len(t, conv.Messages(), 5)
}

func TestSend_DemoModeSchedulesReply(t *testing.T) {
	t.Parallel()

	s := newTestService(t, true)
	api := &fakeConnections{users: []model.BackendUser{{ID: "p1"}}}

	conv, err := s.Open(context.Background(), api, "u1", "p1")
	require.NoError(t, err)

	_, err = s.Send("u1", "p1", "hello")
	require.NoError(t, err)

	// The reply lands after the randomized think time; poll for it.
	require.Eventually(t, func() bool {
		msgs := conv.Messages()
		return len(msgs) == 6 && msgs[5].SenderID == "p1"
	}, 10*time.Second, 50*time.Millisecond)
}

func TestSend_NoReplyOutsideDemoMode(t *testing.T) {
	t.Parallel()

	s := newTestService(t, false)
	api := &fakeConnections{users: []model.BackendUser{{ID: "p1"}}}

	conv, err := s.Open(context.Background(), api, "u1", "p1")
	require.NoError(t, err)

	_, err = s.Send("u1", "p1", "hello")
	require.NoError(t, err)

	time.Sleep(100 * time.Millisecond)
	require.Len(t, conv.Messages(), 5)
}
