package client

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"admingrid/internal/domain/grid"
)

func newTestStore(t *testing.T) *SnapshotStore {
	t.Helper()
	store, err := NewSnapshotStore(filepath.Join(t.TempDir(), "snapshots.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSnapshotStore_SaveLoad(t *testing.T) {
	store := newTestStore(t)

	rows := []grid.Row{
		grid.NewRow("id", "1", "email", "a@x", "approved", true),
		grid.NewRow("id", "2", "email", "b@x", "score", 12.5),
	}
	require.NoError(t, store.Save("users", rows))

	got, fetchedAt, err := store.Load("users")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID())
	assert.Equal(t, []string{"id", "email", "approved"}, got[0].Fields())
	assert.WithinDuration(t, time.Now(), fetchedAt, time.Minute)

	v, ok := got[1].Get("score")
	require.True(t, ok)
	f, ok := v.Numeric()
	require.True(t, ok)
	assert.Equal(t, 12.5, f)
}

func TestSnapshotStore_SaveReplacesPrevious(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save("users", []grid.Row{grid.NewRow("id", "old")}))
	require.NoError(t, store.Save("users", []grid.Row{grid.NewRow("id", "new")}))

	got, _, err := store.Load("users")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].ID())
}

func TestSnapshotStore_CollectionsAreIndependent(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save("users", []grid.Row{grid.NewRow("id", "u1")}))
	require.NoError(t, store.Save("promos", []grid.Row{grid.NewRow("id", "p1")}))

	users, _, err := store.Load("users")
	require.NoError(t, err)
	assert.Equal(t, "u1", users[0].ID())

	promos, _, err := store.Load("promos")
	require.NoError(t, err)
	assert.Equal(t, "p1", promos[0].ID())
}

func TestSnapshotStore_LoadMissing(t *testing.T) {
	store := newTestStore(t)

	_, _, err := store.Load("never_loaded")
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestSnapshotStore_EmptyRowSet(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save("users", nil))
	got, _, err := store.Load("users")
	require.NoError(t, err)
	assert.Empty(t, got)
}
