package model

import (
	"encoding/json"
	"fmt"
)

// RequestEntry pairs a pending connection request with the profile of the
// user who sent it.
type RequestEntry struct {
	RequestID string      `json:"requestId"`
	Profile   UserProfile `json:"profile"`
}

// requestWrapper is the newer wire shape for a received request: an explicit
// request id with the sender nested under "user". Older backends return the
// bare user record instead, with the user's own id doubling as the request id.
type requestWrapper struct {
	RequestID string       `json:"requestId"`
	User      *BackendUser `json:"user"`
	Status    string       `json:"status"`
	CreatedAt string       `json:"createdAt"`
}

// DecodeRequestEntry detects which of the two historical shapes a raw inbox
// entry is in and normalizes it. It fails when neither shape yields a user
// with an id.
func DecodeRequestEntry(raw json.RawMessage) (RequestEntry, error) {
	var wrapped requestWrapper
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.RequestID != "" && wrapped.User != nil {
		profile, err := NewUserProfile(*wrapped.User)
		if err != nil {
			return RequestEntry{}, fmt.Errorf("decode request %s: %w", wrapped.RequestID, err)
		}
		return RequestEntry{RequestID: wrapped.RequestID, Profile: profile}, nil
	}

	// Old shape: the entry is the sender's user record itself.
	var user BackendUser
	if err := json.Unmarshal(raw, &user); err != nil {
		return RequestEntry{}, fmt.Errorf("decode request entry: %w", err)
	}

	profile, err := NewUserProfile(user)
	if err != nil {
		return RequestEntry{}, err
	}

	return RequestEntry{RequestID: user.ID, Profile: profile}, nil
}
