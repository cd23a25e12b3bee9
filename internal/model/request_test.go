package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeRequestEntry_WrappedShape(t *testing.T) {
	t.Parallel()

	raw := json.RawMessage(`{
		"requestId": "r1",
		"status": "interested",
		"user": {"_id": "u9", "firstName": "Ada", "emailId": "ada@example.com"}
	}`)

	entry, err := DecodeRequestEntry(raw)
	require.NoError(t, err)
	require.Equal(t, "r1", entry.RequestID)
	require.Equal(t, "u9", entry.Profile.ID)
	require.Equal(t, "ada", entry.Profile.Username)
}

func TestDecodeRequestEntry_BareUserShape(t *testing.T) {
	t.Parallel()

	raw := json.RawMessage(`{"_id": "u9", "firstName": "Ada"}`)

	entry, err := DecodeRequestEntry(raw)
	require.NoError(t, err)
	// Without an explicit request id the user id doubles as one.
	require.Equal(t, "u9", entry.RequestID)
	require.Equal(t, "u9", entry.Profile.ID)
}

func TestDecodeRequestEntry_NoUserID(t *testing.T) {
	t.Parallel()

	_, err := DecodeRequestEntry(json.RawMessage(`{"firstName": "Ada"}`))
	require.ErrorIs(t, err, ErrInvalidUserData)
}

func TestDecodeRequestEntry_WrappedWithInvalidUser(t *testing.T) {
	t.Parallel()

	raw := json.RawMessage(`{"requestId": "r1", "user": {"firstName": "Ada"}}`)

	_, err := DecodeRequestEntry(raw)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidUserData)
}
