package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/gauru07/fullstack-dating-app/internal/backend"
	"github.com/gauru07/fullstack-dating-app/internal/discover"
	"github.com/gauru07/fullstack-dating-app/internal/inbox"
	"github.com/gauru07/fullstack-dating-app/internal/model"
	"github.com/gauru07/fullstack-dating-app/internal/store"
)

var ErrLoginFailed = errors.New("session: login failed")

// transition enumerates the only ways session auth state may change. Every
// write goes through apply under the session mutex, so concurrent sign-in,
// sign-out and auth-check resolutions cannot interleave half-applied.
type transition int

const (
	transitionInitBegin transition = iota
	transitionInitDone
	transitionLoginSuccess
	transitionLogout
	transitionOverride
)

// Session is the auth state for one browser session plus its per-session
// sub-states: the backend client (own cookie jar), the swipe session and the
// request inbox.
type Session struct {
	ID     string
	api    *backend.Client
	store  store.SessionStore
	logger *zap.Logger

	mu      sync.Mutex
	user    *model.BackendUser
	loading bool

	discover *discover.Session
	inbox    *inbox.Inbox
}

func (s *Session) apply(t transition, user *model.BackendUser) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch t {
	case transitionInitBegin:
		s.loading = true
	case transitionInitDone, transitionLoginSuccess:
		s.user = user
		s.loading = false
	case transitionLogout:
		s.user = nil
		s.loading = false
	case transitionOverride:
		s.user = user
	}
}

// CurrentUser returns the session user, if any, and whether the initial auth
// check is still in flight.
func (s *Session) CurrentUser() (*model.BackendUser, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return nil, s.loading
	}
	u := *s.user
	return &u, s.loading
}

// Client exposes the session's backend client for pass-through calls.
func (s *Session) Client() *backend.Client {
	return s.api
}

// Discover returns the session's swipe session.
func (s *Session) Discover() *discover.Session {
	return s.discover
}

// Inbox returns the session's request inbox.
func (s *Session) Inbox() *inbox.Inbox {
	return s.inbox
}

// Init runs the check-session call. A valid remote session is adopted and
// mirrored into the persisted store; on an unauthorized, not-found or
// transport failure the store fallback is used instead, with undecodable
// cached data discarded rather than propagated.
func (s *Session) Init(ctx context.Context) {
	s.apply(transitionInitBegin, nil)

	user, err := s.api.CheckAuth(ctx)
	if err == nil {
		s.apply(transitionInitDone, user)
		if err := s.store.Save(ctx, s.ID, model.NewSessionUser(*user)); err != nil {
			s.logger.Warn("session cache save failed", zap.Error(err))
		}
		return
	}

	if errors.Is(err, backend.ErrUnauthorized) ||
		errors.Is(err, backend.ErrNotFound) ||
		errors.Is(err, backend.ErrTransport) {
		cached, _ := s.store.Load(ctx, s.ID)
		if cached != nil {
			s.logger.Info("auth check failed, using cached session user",
				zap.String("user_id", cached.ID),
				zap.Error(err),
			)
			u := cached.BackendUser()
			s.apply(transitionInitDone, &u)
			return
		}
	}

	s.logger.Debug("auth check failed", zap.Error(err))
	s.apply(transitionInitDone, nil)
}

// SignIn posts credentials. A user object in the response body is adopted
// immediately; a success without one falls back to a fresh auth check. On a
// non-success status the server-supplied message is preserved in the error.
func (s *Session) SignIn(ctx context.Context, emailID, password string) error {
	result, err := s.api.Login(ctx, emailID, password)
	if err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			return fmt.Errorf("%w: %s", ErrLoginFailed, apiErr.Message)
		}
		return fmt.Errorf("%w: %v", ErrLoginFailed, err)
	}

	if result.User != nil {
		s.apply(transitionLoginSuccess, result.User)
		if err := s.store.Save(ctx, s.ID, model.NewSessionUser(*result.User)); err != nil {
			s.logger.Warn("session cache save failed", zap.Error(err))
		}
		return nil
	}

	// Success with no user payload: re-run the init check to fetch it.
	s.Init(ctx)
	return nil
}

// SignOut revokes the remote session best-effort: whatever the remote call
// does, local state and the persisted cache are cleared and the caller can
// redirect to the landing view.
func (s *Session) SignOut(ctx context.Context) {
	if err := s.api.Logout(ctx); err != nil {
		s.logger.Warn("remote logout failed, clearing local session anyway",
			zap.String("session_id", s.ID),
			zap.Error(err),
		)
	}

	s.apply(transitionLogout, nil)
	if err := s.store.Delete(ctx, s.ID); err != nil {
		s.logger.Warn("session cache delete failed", zap.Error(err))
	}
}

// SetCurrentUser overrides both in-memory and persisted state without
// validation. Debug escape hatch; not used by the normal auth flow.
func (s *Session) SetCurrentUser(ctx context.Context, user model.BackendUser) {
	s.apply(transitionOverride, &user)
	if err := s.store.Save(ctx, s.ID, model.NewSessionUser(user)); err != nil {
		s.logger.Warn("session cache save failed", zap.Error(err))
	}
}

// -----------------------------------------------------------------
// Manager
// -----------------------------------------------------------------

// Manager tracks sessions by id and builds new ones on demand.
type Manager struct {
	newClient func() (*backend.Client, error)
	store     store.SessionStore
	sim       *discover.MatchSimulator
	logger    *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager wires the per-session dependencies. sim may be nil when demo
// mode is off.
func NewManager(newClient func() (*backend.Client, error), st store.SessionStore, sim *discover.MatchSimulator, logger *zap.Logger) *Manager {
	return &Manager{
		newClient: newClient,
		store:     st,
		sim:       sim,
		logger:    logger,
		sessions:  make(map[string]*Session),
	}
}

// Ensure returns the session for id, creating and initializing it first if
// this is the first time the id is seen.
func (m *Manager) Ensure(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		return s, nil
	}

	m.mu.Lock()
	if s, ok = m.sessions[id]; ok {
		m.mu.Unlock()
		return s, nil
	}

	client, err := m.newClient()
	if err != nil {
		m.mu.Unlock()
		return nil, fmt.Errorf("session %s: %w", id, err)
	}

	s = &Session{
		ID:     id,
		api:    client,
		store:  m.store,
		logger: m.logger.With(zap.String("session_id", id)),
	}
	s.discover = discover.NewSession(client, m.sim, s.logger)
	s.inbox = inbox.NewInbox(client, s.logger)
	m.sessions[id] = s
	m.mu.Unlock()

	s.Init(ctx)
	return s, nil
}

// Get returns an existing session without creating one.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Drop forgets a session. The persisted cache entry is left to SignOut.
func (m *Manager) Drop(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}
