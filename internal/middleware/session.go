package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/Amazons-Team/fatima-api/internal/model"
	"github.com/Amazons-Team/fatima-api/internal/service/session"
	"github.com/Amazons-Team/fatima-api/pkg/httputil"
)

const (
	HeaderSessionToken = "X-Session-Token"
	ContextUser        = "current_user"
)

// SessionMiddleware resolves the acting user from the session token
// header and aborts unauthenticated requests.
type SessionMiddleware struct {
	sessions *session.Service
}

func NewSessionMiddleware(sessions *session.Service) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions}
}

func (m *SessionMiddleware) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := m.sessions.Resolve(c.GetHeader(HeaderSessionToken))
		if err != nil {
			httputil.RespondWithError(c, err)
			c.Abort()
			return
		}
		c.Set(ContextUser, user)
		c.Next()
	}
}

// CurrentUser returns the actor the session middleware attached to the
// context, or nil on unauthenticated routes.
func CurrentUser(c *gin.Context) *model.User {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil
	}
	user, _ := v.(*model.User)
	return user
}
