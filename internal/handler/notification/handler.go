package notification

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Amazons-Team/fatima-api/internal/middleware"
	"github.com/Amazons-Team/fatima-api/internal/store"
	"github.com/Amazons-Team/fatima-api/pkg/httputil"
)

type Handler struct {
	notifications *store.NotificationStore
}

func NewHandler(notifications *store.NotificationStore) *Handler {
	return &Handler{notifications: notifications}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, session *middleware.SessionMiddleware) {
	notifications := r.Group("/notifications", session.RequireUser())
	{
		notifications.GET("", h.ListNotifications)
		notifications.POST("/:id/read", h.MarkRead)
	}
}

func (h *Handler) ListNotifications(c *gin.Context) {
	user := middleware.CurrentUser(c)
	httputil.RespondWithSuccess(c, http.StatusOK, h.notifications.ListByUser(user.ID))
}

func (h *Handler) MarkRead(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := h.notifications.MarkRead(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, nil)
}
