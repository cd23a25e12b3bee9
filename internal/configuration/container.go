package configuration

import (
	"context"
	"fmt"
	"time"

	"github.com/gauru07/fullstack-dating-app/internal/backend"
	"github.com/gauru07/fullstack-dating-app/internal/chat"
	"github.com/gauru07/fullstack-dating-app/internal/discover"
	"github.com/gauru07/fullstack-dating-app/internal/handler"
	"github.com/gauru07/fullstack-dating-app/internal/hub"
	"github.com/gauru07/fullstack-dating-app/internal/session"
	"github.com/gauru07/fullstack-dating-app/internal/store"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Container struct {
	Config   Config
	Logger   *zap.Logger
	Sessions *session.Manager
	Hub      *hub.Hub
	Chats    *chat.Service

	AuthHandler     handler.AuthHandler
	DiscoverHandler handler.DiscoverHandler
	InboxHandler    handler.InboxHandler
	MatchHandler    handler.MatchHandler
	ProfileHandler  handler.ProfileHandler
	ChatHandler     handler.ChatHandler
	MonitorHandler  handler.MonitorHandler

	// private - for cleanup
	mongoClient *mongo.Database
}

func BuildContainer(configPath string) (*Container, error) {
	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}

	// Sessions are cached in mongo when a URI is configured. Without one the
	// cache is process-local, which is fine for development.
	var mongoClient *mongo.Database
	sessionStore := store.NewMemorySessionStore()
	if config.Cache.Uri != "" {
		con, err := store.OpenConnection(config.Cache.Uri, config.Cache.Database)
		if err != nil {
			return nil, err
		}
		mongoClient = con
		sessionStore = store.NewMongoSessionStore(con, config.Cache.SessionsCollection, logger)
	} else {
		logger.Warn("no mongo uri configured, session cache is in-memory only")
	}

	newClient := func() (*backend.Client, error) {
		return backend.New(backend.Config{
			BaseURL: config.Backend.BaseURL,
			Timeout: time.Duration(config.Backend.TimeoutSeconds) * time.Second,
		}, logger)
	}

	var simulator *discover.MatchSimulator
	seed := config.Demo.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if config.Demo.Enabled {
		simulator = discover.NewMatchSimulator(config.Demo.MatchProbability, seed)
	}

	sessions := session.NewManager(newClient, sessionStore, simulator, logger)

	h := hub.NewHub(config.Server.AllowedOrigins)
	responder := chat.NewResponder(seed)
	chats := chat.NewService(h, responder, config.Demo.Enabled, logger)
	video := chat.NewVideoDateService(chat.VideoConfig{
		APIKey:    config.LiveKit.APIKey,
		APISecret: config.LiveKit.APISecret,
		URL:       config.LiveKit.URL,
	})

	monitorService := hub.NewMonitorService(h)

	return &Container{
		Config:          *config,
		Logger:          logger,
		Sessions:        sessions,
		Hub:             h,
		Chats:           chats,
		AuthHandler:     handler.NewAuthHandler(logger),
		DiscoverHandler: handler.NewDiscoverHandler(logger),
		InboxHandler:    handler.NewInboxHandler(logger),
		MatchHandler:    handler.NewMatchHandler(logger),
		ProfileHandler:  handler.NewProfileHandler(logger),
		ChatHandler:     handler.NewChatHandler(chats, video, logger),
		MonitorHandler:  handler.NewMonitorHandler(monitorService),
		mongoClient:     mongoClient,
	}, nil
}

// Close gracefully shuts down all connections
func (c *Container) Close() error {
	// Stop the hub first (closes all WebSocket connections)
	if c.Hub != nil {
		c.Hub.Stop()
	}

	// Sync logger
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}

	// Close MongoDB connection pool
	if c.mongoClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := c.mongoClient.Client().Disconnect(ctx); err != nil {
			return fmt.Errorf("failed to close MongoDB connection: %w", err)
		}
	}

	return nil
}
