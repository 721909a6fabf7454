package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Amazons-Team/fatima-api/pkg/errors"
	"github.com/Amazons-Team/fatima-api/pkg/kv/memory"
)

func TestNotificationAddAndList(t *testing.T) {
	ctx := context.Background()
	kvStore := memory.New()

	s, err := NewNotificationStore(ctx, kvStore)
	require.NoError(t, err)

	n, err := s.Add(ctx, "p1", "Appointment booked", "see you tomorrow")
	require.NoError(t, err)
	assert.NotEmpty(t, n.ID)
	assert.False(t, n.IsRead)

	_, err = s.Add(ctx, "d1", "Appointment booked", "new patient")
	require.NoError(t, err)

	byUser := s.ListByUser("p1")
	require.Len(t, byUser, 1)
	assert.Equal(t, "Appointment booked", byUser[0].Title)
}

func TestNotificationMarkRead(t *testing.T) {
	ctx := context.Background()
	s, err := NewNotificationStore(ctx, memory.New())
	require.NoError(t, err)

	n, err := s.Add(ctx, "p1", "title", "content")
	require.NoError(t, err)

	require.NoError(t, s.MarkRead(ctx, "p1", n.ID))
	assert.True(t, s.ListByUser("p1")[0].IsRead)

	err = s.MarkRead(ctx, "p1", "missing")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrNotFound, apperrors.CodeOf(err))
}

func TestMarkReadRequiresOwnership(t *testing.T) {
	ctx := context.Background()
	s, err := NewNotificationStore(ctx, memory.New())
	require.NoError(t, err)

	n, err := s.Add(ctx, "p1", "title", "content")
	require.NoError(t, err)

	// Another user's notification looks like it does not exist.
	err = s.MarkRead(ctx, "d1", n.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrNotFound, apperrors.CodeOf(err))
	assert.False(t, s.ListByUser("p1")[0].IsRead)
}

func TestNotificationsSurviveReload(t *testing.T) {
	ctx := context.Background()
	kvStore := memory.New()

	s, err := NewNotificationStore(ctx, kvStore)
	require.NoError(t, err)
	_, err = s.Add(ctx, "p1", "title", "content")
	require.NoError(t, err)

	reloaded, err := NewNotificationStore(ctx, kvStore)
	require.NoError(t, err)
	assert.Equal(t, s.ListByUser("p1"), reloaded.ListByUser("p1"))
}
