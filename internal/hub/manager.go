package hub

import (
	"context"
	"crypto/sha1"
	"encoding/binary"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gauru07/fullstack-dating-app/internal/event"
)

const (
	shardCount = 16 // conversations are small rooms; 16 shards is plenty
)

type inboundMessage struct {
	event  event.WsEvent
	client *Client
}

type clientBucket struct {
	sync.RWMutex
	rooms map[string]map[string]*Client
}

// MessageHandler receives every chat message a client sends, after it has
// been broadcast to the room. The chat service hooks in here to record the
// message and drive the simulated reply.
type MessageHandler func(conversationID, senderID string, msg event.Message)

// Hub fans websocket events out to conversation rooms.
type Hub struct {
	shards     [shardCount]*clientBucket
	register   chan *Client
	unregister chan *Client
	inbound    chan inboundMessage
	wg         sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc

	onMessage MessageHandler
	origins   map[string]bool
}

// NewHub starts the manager loop and the inbound worker pool. allowedOrigins
// is the websocket origin allowlist; empty allows only same-host requests.
func NewHub(allowedOrigins []string) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	h := &Hub{
		register:   make(chan *Client, 1024),
		unregister: make(chan *Client, 1024),
		inbound:    make(chan inboundMessage, 4096),
		ctx:        ctx,
		cancel:     cancel,
		origins:    make(map[string]bool, len(allowedOrigins)),
	}

	for _, o := range allowedOrigins {
		h.origins[o] = true
	}

	for i := 0; i < shardCount; i++ {
		h.shards[i] = &clientBucket{
			rooms: make(map[string]map[string]*Client),
		}
	}

	go h.run()

	for i := 0; i < workerPoolSize; i++ {
		h.wg.Add(1)
		go func() {
			defer h.wg.Done()
			for {
				select {
				case <-h.ctx.Done():
					return
				case in, ok := <-h.inbound:
					if !ok {
						return
					}
					h.handleEvent(in.event, in.client)
				}
			}
		}()
	}

	return h
}

// SetMessageHandler installs the chat-message hook. Must be called before
// the hub starts serving connections.
func (h *Hub) SetMessageHandler(fn MessageHandler) {
	h.onMessage = fn
}

func (h *Hub) handleEvent(ev event.WsEvent, c *Client) {
	switch ev.Event {
	case event.EventClientMessage:
		var msg event.Message
		if err := json.Unmarshal(ev.Payload, &msg); err != nil {
			log.Printf("failed to unmarshal client message: %v", err)
			return
		}
		msg.ConversationID = c.conversationID
		msg.SenderID = c.userID

		out := ev
		out.Event = event.EventServerMessage
		h.PublishToRoom(out, c.conversationID)

		if h.onMessage != nil {
			h.onMessage(c.conversationID, c.userID, msg)
		}
	case event.EventTyping:
		// typing indicators are relayed as-is
		h.PublishToRoom(ev, c.conversationID)
	default:
		log.Printf("unknown event type: %s", ev.Event)
	}
}

// PublishToRoom delivers an event to every client in a conversation.
func (h *Hub) PublishToRoom(ev event.WsEvent, conversationID string) {
	sh := getShard(conversationID)
	b := h.shards[sh]

	// collect clients while holding RLock
	b.RLock()
	room, ok := b.rooms[conversationID]
	if !ok || len(room) == 0 {
		b.RUnlock()
		return
	}

	clients := make([]*Client, 0, len(room))
	for _, c := range room {
		clients = append(clients, c)
	}
	b.RUnlock()

	// deliver without holding the lock
	for _, c := range clients {
		select {
		case c.egress <- ev:
			// enqueued
		case <-time.After(sendTimeout):
			log.Printf("egress full for client %s in conversation %s", c.ID, conversationID)
			if kickOnFull {
				h.unregister <- c
			}
		}
	}
}

func getShard(conversationID string) uint32 {
	if conversationID == "" {
		return 0
	}

	sum := sha1.Sum([]byte(conversationID))
	return binary.BigEndian.Uint32(sum[:4]) % shardCount
}

func (h *Hub) addClient(c *Client) {
	sh := getShard(c.conversationID)
	b := h.shards[sh]
	b.Lock()
	defer b.Unlock()

	room, ok := b.rooms[c.conversationID]
	if !ok {
		room = make(map[string]*Client)
		b.rooms[c.conversationID] = room
	}

	room[c.ID] = c
	log.Printf("client %s joined conversation %s (shard %d)", c.ID, c.conversationID, sh)
}

func (h *Hub) removeClient(c *Client) {
	sh := getShard(c.conversationID)
	b := h.shards[sh]
	b.Lock()
	defer b.Unlock()

	if room, ok := b.rooms[c.conversationID]; ok {
		delete(room, c.ID)
		if len(room) == 0 {
			delete(b.rooms, c.conversationID)
		}

		c.Close()
		log.Printf("client %s left conversation %s (shard %d)", c.ID, c.conversationID, sh)
	}
}

// Stop shuts the hub down: all connections closed, workers drained.
func (h *Hub) Stop() {
	h.cancel()

	for _, shard := range h.shards {
		shard.RLock()
		for _, room := range shard.rooms {
			for _, client := range room {
				client.Close()
			}
		}
		shard.RUnlock()
	}

	close(h.inbound)
	h.wg.Wait()
}

func (h *Hub) run() {
	for {
		select {
		case <-h.ctx.Done():
			return
		case c := <-h.register:
			h.addClient(c)
		case c := <-h.unregister:
			h.removeClient(c)
		}
	}
}

var websocketUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func (h *Hub) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	return h.origins[origin]
}

// ServeWS upgrades the request and registers the connection in its
// conversation room.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, userID, conversationID string) {
	upgrader := websocketUpgrader
	upgrader.CheckOrigin = h.checkOrigin

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}

	RegisterClient(userID, conversationID, conn, h)
}
