package discover

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/gauru07/fullstack-dating-app/internal/backend"
	"github.com/gauru07/fullstack-dating-app/internal/model"
)

var (
	ErrNoCandidates   = errors.New("discover: no candidates loaded")
	ErrActionInFlight = errors.New("discover: another swipe action is in flight")
)

// Backend is the slice of the core backend the swipe session needs.
type Backend interface {
	Feed(ctx context.Context) ([]model.BackendUser, error)
	SendInterested(ctx context.Context, userID string) (*backend.SwipeResult, error)
	SendIgnored(ctx context.Context, userID string) error
}

// LikeOutcome reports what happened to a like: whether it produced a match
// and whether that outcome came from the server or the demo simulator.
type LikeOutcome struct {
	Candidate model.UserProfile `json:"candidate"`
	Matched   bool              `json:"matched"`
	Simulated bool              `json:"simulated"`
}

// Session holds an ordered candidate list and a cursor, advanced one step per
// like/pass. When the cursor runs off the end the list is replaced by a fresh
// fetch. A single in-flight guard shared by like and pass rejects double
// submission while a call is outstanding.
type Session struct {
	api    Backend
	sim    *MatchSimulator // nil outside demo mode
	logger *zap.Logger

	mu       sync.Mutex
	profiles []model.UserProfile
	cursor   int
	busy     bool // a like or pass is in flight
}

// NewSession creates an empty swipe session. Call LoadProfiles before
// swiping. sim may be nil; then only server-confirmed matches are reported.
func NewSession(api Backend, sim *MatchSimulator, logger *zap.Logger) *Session {
	return &Session{
		api:    api,
		sim:    sim,
		logger: logger,
	}
}

// LoadProfiles replaces the candidate list from a fresh feed fetch and
// resets the cursor. Individual records that fail normalization are dropped;
// a failed fetch empties the list and is reported as a recoverable error.
func (s *Session) LoadProfiles(ctx context.Context) error {
	users, err := s.api.Feed(ctx)
	if err != nil {
		s.mu.Lock()
		s.profiles = nil
		s.cursor = 0
		s.mu.Unlock()
		return fmt.Errorf("load profiles: %w", err)
	}

	profiles := make([]model.UserProfile, 0, len(users))
	for _, u := range users {
		p, err := model.NewUserProfile(u)
		if err != nil {
			s.logger.Warn("dropping feed entry", zap.Error(err))
			continue
		}
		profiles = append(profiles, p)
	}

	s.mu.Lock()
	s.profiles = profiles
	s.cursor = 0
	s.mu.Unlock()

	s.logger.Debug("feed loaded", zap.Int("candidates", len(profiles)))
	return nil
}

// Current returns the candidate under the cursor.
func (s *Session) Current() (model.UserProfile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentLocked()
}

func (s *Session) currentLocked() (model.UserProfile, bool) {
	if s.cursor >= len(s.profiles) {
		return model.UserProfile{}, false
	}
	return s.profiles[s.cursor], true
}

// Remaining reports how many candidates are left, the current one included.
func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cursor >= len(s.profiles) {
		return 0
	}
	return len(s.profiles) - s.cursor
}

// begin takes the in-flight slot and snapshots the current candidate.
func (s *Session) begin() (model.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busy {
		return model.UserProfile{}, ErrActionInFlight
	}
	candidate, ok := s.currentLocked()
	if !ok {
		return model.UserProfile{}, ErrNoCandidates
	}
	s.busy = true
	return candidate, nil
}

func (s *Session) end() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

// Like posts an interested signal for the current candidate. On success the
// match outcome is the server-confirmed result when the backend reports one,
// the demo simulation when enabled, and no match otherwise. The session
// advances after the call settles; a failed like does not advance, so the
// same candidate stays current for a retry.
func (s *Session) Like(ctx context.Context) (*LikeOutcome, error) {
	candidate, err := s.begin()
	if err != nil {
		return nil, err
	}
	defer s.end()

	result, err := s.api.SendInterested(ctx, candidate.ID)
	if err != nil {
		return nil, fmt.Errorf("like %s: %w", candidate.ID, err)
	}

	outcome := &LikeOutcome{Candidate: candidate}
	switch {
	case result.Match != nil:
		outcome.Matched = *result.Match
	case s.sim != nil:
		outcome.Matched = s.sim.Matched()
		outcome.Simulated = true
	}

	if err := s.advance(ctx); err != nil {
		// the like itself succeeded; a failed reload is recoverable
		s.logger.Warn("reload after like failed", zap.Error(err))
	}
	return outcome, nil
}

// Pass posts an ignored signal for the current candidate. Pass is
// best-effort: the session advances whether or not the call succeeded, and
// any error is returned for surfacing only.
func (s *Session) Pass(ctx context.Context) (model.UserProfile, error) {
	candidate, err := s.begin()
	if err != nil {
		return model.UserProfile{}, err
	}
	defer s.end()

	sendErr := s.api.SendIgnored(ctx, candidate.ID)
	if sendErr != nil {
		s.logger.Warn("pass signal failed",
			zap.String("candidate_id", candidate.ID),
			zap.Error(sendErr),
		)
		sendErr = fmt.Errorf("pass %s: %w", candidate.ID, sendErr)
	}

	if err := s.advance(ctx); err != nil {
		s.logger.Warn("reload after pass failed", zap.Error(err))
	}
	return candidate, sendErr
}

// advance moves the cursor one step, or discards the exhausted session and
// fetches a fresh one when the cursor was already on the last candidate.
func (s *Session) advance(ctx context.Context) error {
	s.mu.Lock()
	if s.cursor < len(s.profiles)-1 {
		s.cursor++
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	return s.LoadProfiles(ctx)
}
