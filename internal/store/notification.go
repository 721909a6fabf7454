package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Amazons-Team/fatima-api/internal/model"
	apperrors "github.com/Amazons-Team/fatima-api/pkg/errors"
	"github.com/Amazons-Team/fatima-api/pkg/kv"
)

const notificationsKey = "notifications"

// NotificationStore persists user notifications the same way the
// appointment collection is persisted: full-blob write-through.
type NotificationStore struct {
	mu            sync.RWMutex
	kv            kv.Store
	notifications []*model.Notification
}

func NewNotificationStore(ctx context.Context, store kv.Store) (*NotificationStore, error) {
	s := &NotificationStore{kv: store}

	blob, err := store.Get(ctx, notificationsKey)
	if err == kv.ErrKeyNotFound {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load notifications: %w", err)
	}
	if err := json.Unmarshal(blob, &s.notifications); err != nil {
		// Unreadable history is dropped rather than blocking startup.
		s.notifications = nil
	}
	return s, nil
}

func (s *NotificationStore) persist(ctx context.Context, notifications []*model.Notification) error {
	blob, err := json.Marshal(notifications)
	if err != nil {
		return fmt.Errorf("failed to serialize notifications: %w", err)
	}
	if err := s.kv.Set(ctx, notificationsKey, blob); err != nil {
		return fmt.Errorf("failed to persist notifications: %w", err)
	}
	return nil
}

func (s *NotificationStore) Add(ctx context.Context, userID, title, content string) (*model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notification := &model.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Content:   content,
		CreatedAt: time.Now().Format(time.RFC3339),
	}

	next := append(append([]*model.Notification{}, s.notifications...), notification)
	if err := s.persist(ctx, next); err != nil {
		return nil, err
	}
	s.notifications = next

	copied := *notification
	return &copied, nil
}

func (s *NotificationStore) ListByUser(userID string) []*model.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*model.Notification
	for _, n := range s.notifications {
		if n.UserID == userID {
			copied := *n
			out = append(out, &copied)
		}
	}
	return out
}

// MarkRead flags the notification as read. Records belonging to other
// users are invisible to the caller and report not found.
func (s *NotificationStore) MarkRead(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == id && n.UserID == userID {
			updated := *n
			updated.IsRead = true

			next := append([]*model.Notification{}, s.notifications...)
			next[i] = &updated
			if err := s.persist(ctx, next); err != nil {
				return err
			}
			s.notifications = next
			return nil
		}
	}
	return apperrors.NotFound("notification", nil)
}
