// ABOUTME: Tests for the SQLite-backed Storage implementation.
// ABOUTME: Covers schema creation, upserts, missing keys, and reopening.

package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*SQLiteStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wallet.db")
	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestSQLiteStoreSetGet(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	require.NoError(t, s.Set(ctx, "recent", "Agent-0x1"))

	got, err := s.Get(ctx, "recent")
	require.NoError(t, err)
	assert.Equal(t, "Agent-0x1", got)
}

func TestSQLiteStoreGetMissing(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	_, err := s.Get(ctx, "nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStoreOverwrite(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	require.NoError(t, s.Set(ctx, "recent", "Agent-0x1"))
	require.NoError(t, s.Set(ctx, "recent", "Agent-0x2"))

	got, err := s.Get(ctx, "recent")
	require.NoError(t, err)
	assert.Equal(t, "Agent-0x2", got, "last write wins")
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	s, path := newTestStore(t)

	require.NoError(t, s.Set(ctx, "recent", "Agent-0x1"))
	require.NoError(t, s.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "recent")
	require.NoError(t, err)
	assert.Equal(t, "Agent-0x1", got)
}

func TestSQLiteStoreCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "wallet.db")
	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set(context.Background(), "k", "v"))
}
