package hub

import (
	"sort"

	"github.com/gauru07/fullstack-dating-app/internal/model"
)

// MonitorService reads hub state for the monitoring API.
type MonitorService struct {
	hub *Hub
}

// NewMonitorService creates a monitor over the given hub.
func NewMonitorService(h *Hub) *MonitorService {
	return &MonitorService{hub: h}
}

// GetStats snapshots connected clients and open conversation rooms.
func (m *MonitorService) GetStats() model.MonitorResponse {
	var rooms []model.RoomInfo
	totalClients := 0

	for _, shard := range m.hub.shards {
		shard.RLock()
		for conversationID, room := range shard.rooms {
			info := model.RoomInfo{
				ConversationID: conversationID,
				TotalMembers:   len(room),
			}
			for _, c := range room {
				info.MemberIDs = append(info.MemberIDs, c.userID)
			}
			sort.Strings(info.MemberIDs)
			rooms = append(rooms, info)
			totalClients += len(room)
		}
		shard.RUnlock()
	}

	sort.Slice(rooms, func(i, j int) bool {
		return rooms[i].ConversationID < rooms[j].ConversationID
	})

	return model.MonitorResponse{
		Status: "healthy",
		Connections: model.ConnectionStats{
			TotalConnected:     totalClients,
			TotalConversations: len(rooms),
		},
		Conversations: rooms,
	}
}
