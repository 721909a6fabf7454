package file

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amazons-Team/fatima-api/pkg/kv"
)

func TestSetGetRoundTrip(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "appointments", []byte(`[{"id":"1"}]`)))

	got, err := s.Get(ctx, "appointments")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"1"}]`), got)
}

func TestGetMissingKey(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, kv.ErrKeyNotFound)
}

func TestSetOverwrites(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "user", []byte(`{"id":"p1"}`)))
	require.NoError(t, s.Set(ctx, "user", []byte(`{"id":"d1"}`)))

	got, err := s.Get(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"id":"d1"}`), got)
}

func TestKeySanitization(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "../escape", []byte("x")))

	// The write must land inside the data directory.
	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestRequiresDirectory(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
}
