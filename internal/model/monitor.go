package model

// -----------------------------------------------------------------
// Monitor API Response Models
// -----------------------------------------------------------------

// MonitorResponse is the main response for the monitor API.
type MonitorResponse struct {
	Status        string          `json:"status"` // "healthy", "degraded"
	Connections   ConnectionStats `json:"connections"`
	Conversations []RoomInfo      `json:"conversations"`
}

// ConnectionStats holds connection-related statistics.
type ConnectionStats struct {
	TotalConnected     int `json:"totalConnected"`
	TotalConversations int `json:"totalConversations"`
}

// RoomInfo describes one open conversation room.
type RoomInfo struct {
	ConversationID string   `json:"conversationId"`
	TotalMembers   int      `json:"totalMembers"`
	MemberIDs      []string `json:"memberIds"`
}
