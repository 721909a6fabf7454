package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amazons-Team/fatima-api/pkg/kv"
)

func TestSetGetRoundTrip(t *testing.T) {
	s, err := New(":memory:")
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "appointments", []byte(`[]`)))

	got, err := s.Get(ctx, "appointments")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)
}

func TestGetMissingKey(t *testing.T) {
	s, err := New(":memory:")
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, kv.ErrKeyNotFound)
}

func TestSetOverwrites(t *testing.T) {
	s, err := New(":memory:")
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "user", []byte("a")))
	require.NoError(t, s.Set(ctx, "user", []byte("b")))

	got, err := s.Get(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, []byte("b"), got)
}
