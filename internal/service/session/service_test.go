package session

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amazons-Team/fatima-api/internal/model"
	apperrors "github.com/Amazons-Team/fatima-api/pkg/errors"
	"github.com/Amazons-Team/fatima-api/pkg/kv/memory"
)

func TestLoginWithDemoCredentials(t *testing.T) {
	kvStore := memory.New()
	svc := NewService(kvStore)
	ctx := context.Background()

	sess, err := svc.Login(ctx, "patient@example.com", "password")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, model.RolePatient, sess.User.Role)

	// The active user is persisted under the "user" key.
	blob, err := kvStore.Get(ctx, "user")
	require.NoError(t, err)
	var user model.User
	require.NoError(t, json.Unmarshal(blob, &user))
	assert.Equal(t, "p1", user.ID)
}

func TestLoginEachRole(t *testing.T) {
	svc := NewService(memory.New())
	ctx := context.Background()

	cases := map[string]model.Role{
		"patient@example.com":   model.RolePatient,
		"doctor@example.com":    model.RoleDoctor,
		"admin@example.com":     model.RoleAdmin,
		"developer@example.com": model.RoleDeveloper,
	}
	for email, role := range cases {
		sess, err := svc.Login(ctx, email, "password")
		require.NoError(t, err, email)
		assert.Equal(t, role, sess.User.Role)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := NewService(memory.New())
	ctx := context.Background()

	_, err := svc.Login(ctx, "patient@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrUnauthorized, apperrors.CodeOf(err))

	_, err = svc.Login(ctx, "nobody@example.com", "password")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrUnauthorized, apperrors.CodeOf(err))
}

func TestResolveAndLogout(t *testing.T) {
	svc := NewService(memory.New())

	sess, err := svc.Login(context.Background(), "doctor@example.com", "password")
	require.NoError(t, err)

	user, err := svc.Resolve(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, "d1", user.ID)

	svc.Logout(sess.Token)
	_, err = svc.Resolve(sess.Token)
	require.Error(t, err)

	_, err = svc.Resolve("")
	require.Error(t, err)
}
