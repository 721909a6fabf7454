// Package audit records who did what to which appointment. Entries go
// to the structured log; they are an operational trail, not a stored
// business entity.
package audit

import (
	"github.com/rs/zerolog"

	"github.com/Amazons-Team/fatima-api/internal/model"
)

type Service struct {
	logger zerolog.Logger
}

func NewService(logger *zerolog.Logger) *Service {
	return &Service{logger: logger.With().Str("component", "audit").Logger()}
}

// Log records an action performed by the given actor on a resource.
func (s *Service) Log(actor *model.User, action, resource, resourceID string) {
	event := s.logger.Info().
		Str("action", action).
		Str("resource", resource).
		Str("resource_id", resourceID)

	if actor != nil {
		event = event.
			Str("actor_id", actor.ID).
			Str("actor_role", string(actor.Role))
	}

	event.Msg("audit")
}
