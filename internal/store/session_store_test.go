package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gauru07/fullstack-dating-app/internal/model"
)

func TestMemorySessionStore_Roundtrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := NewMemorySessionStore()

	user := model.NewSessionUser(model.BackendUser{ID: "u1", FirstName: "Ada"})
	require.NoError(t, st.Save(ctx, "s1", user))

	loaded, err := st.Load(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Equal(t, "u1", loaded.ID)

	require.NoError(t, st.Delete(ctx, "s1"))
	loaded, err = st.Load(ctx, "s1")
	require.NoError(t, err)
	require.Nil(t, loaded)
}

func TestMemorySessionStore_MissingReadsEmpty(t *testing.T) {
	t.Parallel()

	st := NewMemorySessionStore()

	loaded, err := st.Load(context.Background(), "nope")
	require.NoError(t, err)
	require.Nil(t, loaded)
}

func TestMemorySessionStore_CorruptEntryDiscarded(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := NewMemorySessionStore()

	// An entry without a user id reads as empty, not as an error.
	require.NoError(t, st.Save(ctx, "s1", model.SessionUser{}))

	loaded, err := st.Load(ctx, "s1")
	require.NoError(t, err)
	require.Nil(t, loaded)
}
