package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/gauru07/fullstack-dating-app/internal/model"
)

const defaultStoreTimeout = 5 * time.Second

// SessionStore is the persisted fallback for the session user: the Go
// counterpart of the SPA's localStorage cache. Lookups never fail on bad
// data; a missing or undecodable entry reads as (nil, nil) so corruption is
// discarded instead of propagated.
type SessionStore interface {
	Load(ctx context.Context, sessionID string) (*model.SessionUser, error)
	Save(ctx context.Context, sessionID string, user model.SessionUser) error
	Delete(ctx context.Context, sessionID string) error
}

// -----------------------------------------------------------------
// Mongo-backed store
// -----------------------------------------------------------------

type sessionRecord struct {
	SessionID string            `bson:"session_id"`
	User      model.SessionUser `bson:"user"`
	UpdatedAt time.Time         `bson:"updated_at"`
}

type mongoSessionStore struct {
	repo   *Repository[sessionRecord]
	logger *zap.Logger
}

// NewMongoSessionStore persists session users in the given collection.
func NewMongoSessionStore(db *mongo.Database, collection string, logger *zap.Logger) SessionStore {
	return &mongoSessionStore{
		repo:   NewRepository[sessionRecord](db, collection),
		logger: logger,
	}
}

func (s *mongoSessionStore) Load(ctx context.Context, sessionID string) (*model.SessionUser, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultStoreTimeout)
	defer cancel()

	record, err := s.repo.Get(ctx, "session_id", sessionID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		s.logger.Warn("session cache read failed, treating as empty",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		return nil, nil
	}

	// A record without a user id is cache corruption; discard it.
	if record.User.ID == "" {
		return nil, nil
	}
	return &record.User, nil
}

func (s *mongoSessionStore) Save(ctx context.Context, sessionID string, user model.SessionUser) error {
	ctx, cancel := context.WithTimeout(ctx, defaultStoreTimeout)
	defer cancel()

	record := sessionRecord{
		SessionID: sessionID,
		User:      user,
		UpdatedAt: time.Now().UTC(),
	}
	return s.repo.Put(ctx, "session_id", sessionID, record)
}

func (s *mongoSessionStore) Delete(ctx context.Context, sessionID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultStoreTimeout)
	defer cancel()

	return s.repo.Remove(ctx, "session_id", sessionID)
}

// -----------------------------------------------------------------
// In-memory store
// -----------------------------------------------------------------

type memorySessionStore struct {
	mu    sync.RWMutex
	users map[string]model.SessionUser
}

// NewMemorySessionStore keeps session users in process memory. Used when no
// MongoDB is configured and in tests.
func NewMemorySessionStore() SessionStore {
	return &memorySessionStore{
		users: make(map[string]model.SessionUser),
	}
}

func (s *memorySessionStore) Load(_ context.Context, sessionID string) (*model.SessionUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[sessionID]
	if !ok || user.ID == "" {
		return nil, nil
	}
	return &user, nil
}

func (s *memorySessionStore) Save(_ context.Context, sessionID string, user model.SessionUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[sessionID] = user
	return nil
}

func (s *memorySessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.users, sessionID)
	return nil
}
