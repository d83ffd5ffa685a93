package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBolt(t *testing.T) (*Bolt, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "notifier.db")

	db, err := NewBolt(path)
	require.NoError(t, err)

	return db, path
}

func TestBolt_LastSeen(t *testing.T) {
	db, _ := newTestBolt(t)
	defer db.Close()

	_, err := db.LastSeen("alice", "mentions")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, db.SetLastSeen("alice", "mentions", "m1"))
	require.NoError(t, db.SetLastSeen("bob", "mentions", "m9"))

	id, err := db.LastSeen("alice", "mentions")
	require.NoError(t, err)
	assert.Equal(t, "m1", id)

	_, err = db.LastSeen("alice", "home")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestBolt_LastSeenEmptyID(t *testing.T) {
	db, _ := newTestBolt(t)
	defer db.Close()

	require.NoError(t, db.SetLastSeen("alice", "mentions", ""))

	id, err := db.LastSeen("alice", "mentions")
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestBolt_MetaSurvivesReopen(t *testing.T) {
	db, path := newTestBolt(t)

	meta, err := db.Meta()
	require.NoError(t, err)
	assert.NotEmpty(t, meta.InstanceID)

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, db.RecordPoll(at, 3))
	require.NoError(t, db.RecordPoll(at, 2))
	require.NoError(t, db.Close())

	db, err = NewBolt(path)
	require.NoError(t, err)
	defer db.Close()

	reopened, err := db.Meta()
	require.NoError(t, err)
	assert.Equal(t, meta.InstanceID, reopened.InstanceID)
	assert.Equal(t, int64(2), reopened.Polls)
	assert.Equal(t, int64(5), reopened.Notified)
	assert.True(t, reopened.LastPollAt.Equal(at))
}

func TestReset(t *testing.T) {
	db, path := newTestBolt(t)
	require.NoError(t, db.SetLastSeen("alice", "home", "h1"))

	meta, err := db.Meta()
	require.NoError(t, err)
	require.NoError(t, db.Close())

	require.NoError(t, Reset(path))
	require.NoError(t, Reset(path), "reset of a missing file succeeds")

	db, err = NewBolt(path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.LastSeen("alice", "home")
	require.ErrorIs(t, err, ErrNotFound)

	fresh, err := db.Meta()
	require.NoError(t, err)
	assert.NotEqual(t, meta.InstanceID, fresh.InstanceID)
}
