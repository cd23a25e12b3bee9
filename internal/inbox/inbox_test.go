package inbox

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeBackend struct {
	received    []json.RawMessage
	receivedErr error

	reviews   [][2]string // verdict, requestID
	reviewErr error
}

func (f *fakeBackend) ReceivedRequests(ctx context.Context) ([]json.RawMessage, error) {
	if f.receivedErr != nil {
		return nil, f.receivedErr
	}
	return f.received, nil
}

func (f *fakeBackend) ReviewRequest(ctx context.Context, verdict, requestID string) error {
	if f.reviewErr != nil {
		return f.reviewErr
	}
	f.reviews = append(f.reviews, [2]string{verdict, requestID})
	return nil
}

func TestLoadRequests_BothWireShapes(t *testing.T) {
	t.Parallel()

	api := &fakeBackend{received: []json.RawMessage{
		json.RawMessage(`{"requestId": "r1", "user": {"_id": "u1", "firstName": "Ada"}}`),
		json.RawMessage(`{"_id": "u2", "firstName": "Grace"}`),
	}}
	inbox := NewInbox(api, zap.NewNop())

	require.NoError(t, inbox.LoadRequests(context.Background()))

	entries := inbox.Entries()
	require.Len(t, entries, 2)
	require.Equal(t, "r1", entries[0].RequestID)
	require.Equal(t, "u1", entries[0].Profile.ID)
	require.Equal(t, "u2", entries[1].RequestID)
}

func TestLoadRequests_DropsUndecodableEntries(t *testing.T) {
	t.Parallel()

	api := &fakeBackend{received: []json.RawMessage{
		json.RawMessage(`{"firstName": "no id"}`),
		json.RawMessage(`{"_id": "u2"}`),
	}}
	inbox := NewInbox(api, zap.NewNop())

	require.NoError(t, inbox.LoadRequests(context.Background()))
	require.Len(t, inbox.Entries(), 1)
}

func TestLoadRequests_FetchFailure(t *testing.T) {
	t.Parallel()

	inbox := NewInbox(&fakeBackend{receivedErr: errors.New("boom")}, zap.NewNop())
	require.Error(t, inbox.LoadRequests(context.Background()))
	require.Empty(t, inbox.Entries())
}

func TestAccept_RemovesEntry(t *testing.T) {
	t.Parallel()

	api := &fakeBackend{received: []json.RawMessage{
		json.RawMessage(`{"requestId": "r1", "user": {"_id": "u1"}}`),
	}}
	inbox := NewInbox(api, zap.NewNop())
	require.NoError(t, inbox.LoadRequests(context.Background()))

	require.NoError(t, inbox.Accept(context.Background(), "r1"))
	require.Empty(t, inbox.Entries())
	require.Equal(t, [][2]string{{"accepted", "r1"}}, api.reviews)
}

func TestReject_FailureKeepsEntry(t *testing.T) {
	t.Parallel()

	api := &fakeBackend{received: []json.RawMessage{
		json.RawMessage(`{"requestId": "r1", "user": {"_id": "u1"}}`),
	}}
	inbox := NewInbox(api, zap.NewNop())
	require.NoError(t, inbox.LoadRequests(context.Background()))

	api.reviewErr = errors.New("boom")
	require.Error(t, inbox.Reject(context.Background(), "r1"))
	require.Len(t, inbox.Entries(), 1)
}
