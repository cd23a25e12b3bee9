package discover

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gauru07/fullstack-dating-app/internal/backend"
	"github.com/gauru07/fullstack-dating-app/internal/model"
)

// fakeBackend scripts feed pages and records swipe signals.
type fakeBackend struct {
	feeds     [][]model.BackendUser
	feedCalls int
	feedErr   error

	interested    []string
	interestedErr error
	match         *bool

	ignored    []string
	ignoredErr error
}

func (f *fakeBackend) Feed(ctx context.Context) ([]model.BackendUser, error) {
	if f.feedErr != nil {
		return nil, f.feedErr
	}
	if f.feedCalls >= len(f.feeds) {
		return nil, nil
	}
	page := f.feeds[f.feedCalls]
	f.feedCalls++
	return page, nil
}

func (f *fakeBackend) SendInterested(ctx context.Context, userID string) (*backend.SwipeResult, error) {
	if f.interestedErr != nil {
		return nil, f.interestedErr
	}
	f.interested = append(f.interested, userID)
	return &backend.SwipeResult{Match: f.match}, nil
}

func (f *fakeBackend) SendIgnored(ctx context.Context, userID string) error {
	if f.ignoredErr != nil {
		return f.ignoredErr
	}
	f.ignored = append(f.ignored, userID)
	return nil
}

func users(ids ...string) []model.BackendUser {
	out := make([]model.BackendUser, len(ids))
	for i, id := range ids {
		out[i] = model.BackendUser{ID: id}
	}
	return out
}

func TestLoadProfiles_ResetsCursor(t *testing.T) {
	t.Parallel()

	api := &fakeBackend{feeds: [][]model.BackendUser{users("a", "b", "c")}}
	s := NewSession(api, nil, zap.NewNop())

	require.NoError(t, s.LoadProfiles(context.Background()))
	require.Equal(t, 3, s.Remaining())

	current, ok := s.Current()
	require.True(t, ok)
	require.Equal(t, "a", current.ID)
}

func TestLoadProfiles_FetchFailureEmptiesList(t *testing.T) {
	t.Parallel()

	api := &fakeBackend{feedErr: errors.New("boom")}
	s := NewSession(api, nil, zap.NewNop())

	require.Error(t, s.LoadProfiles(context.Background()))
	require.Equal(t, 0, s.Remaining())

	_, ok := s.Current()
	require.False(t, ok)
}

func TestLoadProfiles_DropsBadRecords(t *testing.T) {
	t.Parallel()

	api := &fakeBackend{feeds: [][]model.BackendUser{{
		{ID: "a"},
		{FirstName: "no id"},
		{ID: "b"},
	}}}
	s := NewSession(api, nil, zap.NewNop())

	require.NoError(t, s.LoadProfiles(context.Background()))
	require.Equal(t, 2, s.Remaining())
}

func TestPass_ExhaustionTriggersSingleReload(t *testing.T) {
	t.Parallel()

	api := &fakeBackend{feeds: [][]model.BackendUser{
		users("a", "b"),
		users("c", "d"),
	}}
	s := NewSession(api, nil, zap.NewNop())
	require.NoError(t, s.LoadProfiles(context.Background()))

	// pass a: plain cursor advance, no reload
	_, err := s.Pass(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, api.feedCalls)

	// pass b: last candidate, exactly one reload
	_, err = s.Pass(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, api.feedCalls)

	current, ok := s.Current()
	require.True(t, ok)
	require.Equal(t, "c", current.ID)
}

func TestLike_FailureDoesNotAdvance(t *testing.T) {
	t.Parallel()

	api := &fakeBackend{feeds: [][]model.BackendUser{users("a", "b")}}
	s := NewSession(api, nil, zap.NewNop())
	require.NoError(t, s.LoadProfiles(context.Background()))

	api.interestedErr = errors.New("boom")
	_, err := s.Like(context.Background())
	require.Error(t, err)

	// same candidate stays current for a retry
	current, ok := s.Current()
	require.True(t, ok)
	require.Equal(t, "a", current.ID)

	api.interestedErr = nil
	outcome, err := s.Like(context.Background())
	require.NoError(t, err)
	require.Equal(t, "a", outcome.Candidate.ID)
}

func TestLike_ServerConfirmedMatchWins(t *testing.T) {
	t.Parallel()

	matched := true
	api := &fakeBackend{
		feeds: [][]model.BackendUser{users("a", "b")},
		match: &matched,
	}
	// simulator present, but the server answer must take precedence
	s := NewSession(api, NewMatchSimulator(0, 1), zap.NewNop())
	require.NoError(t, s.LoadProfiles(context.Background()))

	outcome, err := s.Like(context.Background())
	require.NoError(t, err)
	require.True(t, outcome.Matched)
	require.False(t, outcome.Simulated)
}

func TestLike_SimulatedWhenServerSilent(t *testing.T) {
	t.Parallel()

	api := &fakeBackend{feeds: [][]model.BackendUser{users("a", "b")}}
	s := NewSession(api, NewMatchSimulator(1, 1), zap.NewNop())
	require.NoError(t, s.LoadProfiles(context.Background()))

	outcome, err := s.Like(context.Background())
	require.NoError(t, err)
	require.True(t, outcome.Matched)
	require.True(t, outcome.Simulated)
}

func TestLike_NoSimulatorNoMatch(t *testing.T) {
	t.Parallel()

	api := &fakeBackend{feeds: [][]model.BackendUser{users("a", "b")}}
	s := NewSession(api, nil, zap.NewNop())
	require.NoError(t, s.LoadProfiles(context.Background()))

	outcome, err := s.Like(context.Background())
	require.NoError(t, err)
	require.False(t, outcome.Matched)
	require.False(t, outcome.Simulated)
}

func TestPass_FailureStillAdvances(t *testing.T) {
	t.Parallel()

	api := &fakeBackend{
		feeds:      [][]model.BackendUser{users("a", "b")},
		ignoredErr: errors.New("boom"),
	}
	s := NewSession(api, nil, zap.NewNop())
	require.NoError(t, s.LoadProfiles(context.Background()))

	candidate, err := s.Pass(context.Background())
	require.Error(t, err)
	require.Equal(t, "a", candidate.ID)

	current, ok := s.Current()
	require.True(t, ok)
	require.Equal(t, "b", current.ID)
}

func TestSwipe_EmptyDeck(t *testing.T) {
	t.Parallel()

	s := NewSession(&fakeBackend{}, nil, zap.NewNop())

	_, err := s.Like(context.Background())
	require.ErrorIs(t, err, ErrNoCandidates)

	_, err = s.Pass(context.Background())
	require.ErrorIs(t, err, ErrNoCandidates)
}
