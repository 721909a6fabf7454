// Package session is the mock identity provider. There is no real
// authentication: a fixed set of demo users log in with a shared demo
// password, the active user is persisted under the "user" key, and
// live sessions are held in an expiring in-memory cache keyed by an
// opaque token.
package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/Amazons-Team/fatima-api/internal/model"
	apperrors "github.com/Amazons-Team/fatima-api/pkg/errors"
	"github.com/Amazons-Team/fatima-api/pkg/kv"
)

const (
	userKey      = "user"
	demoPassword = "password"

	sessionTTL      = 12 * time.Hour
	cleanupInterval = 30 * time.Minute
)

// demoUsers mirrors the sample accounts the system ships with.
var demoUsers = []*model.User{
	{ID: "p1", Name: "Mohamed Ahmed", Email: "patient@example.com", Phone: "+966 50 123 4567", Role: model.RolePatient},
	{ID: "d1", Name: "Dr. Ahmed Mohamed", Email: "doctor@example.com", Phone: "+966 50 987 6543", Role: model.RoleDoctor},
	{ID: "a1", Name: "Sara Ali", Email: "admin@example.com", Phone: "+966 50 111 2222", Role: model.RoleAdmin},
	{ID: "dev1", Name: "Khaled Omar", Email: "developer@example.com", Phone: "+966 50 333 4444", Role: model.RoleDeveloper},
}

type Service struct {
	kv       kv.Store
	sessions *gocache.Cache
}

func NewService(store kv.Store) *Service {
	return &Service{
		kv:       store,
		sessions: gocache.New(sessionTTL, cleanupInterval),
	}
}

// Login matches the demo credentials, persists the user and returns a
// session token.
func (s *Service) Login(ctx context.Context, email, password string) (*model.Session, error) {
	if password != demoPassword {
		return nil, apperrors.Unauthorized(nil)
	}

	var user *model.User
	for _, u := range demoUsers {
		if u.Email == email {
			copied := *u
			user = &copied
			break
		}
	}
	if user == nil {
		return nil, apperrors.Unauthorized(nil)
	}

	blob, err := json.Marshal(user)
	if err == nil {
		// Last logged-in user is kept alongside the appointment blob;
		// a write failure does not block login.
		_ = s.kv.Set(ctx, userKey, blob)
	}

	token := uuid.NewString()
	s.sessions.Set(token, user, gocache.DefaultExpiration)

	return &model.Session{Token: token, User: user}, nil
}

// Resolve returns the user behind a session token.
func (s *Service) Resolve(token string) (*model.User, error) {
	if token == "" {
		return nil, apperrors.Unauthorized(nil)
	}
	cached, ok := s.sessions.Get(token)
	if !ok {
		return nil, apperrors.Unauthorized(nil)
	}
	user := cached.(*model.User)
	copied := *user
	return &copied, nil
}

func (s *Service) Logout(token string) {
	s.sessions.Delete(token)
}

// EmailFor returns the email address of a known user, for notification
// delivery.
func (s *Service) EmailFor(userID string) (string, bool) {
	for _, u := range demoUsers {
		if u.ID == userID {
			return u.Email, true
		}
	}
	return "", false
}
