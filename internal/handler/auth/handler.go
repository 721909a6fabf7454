package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Amazons-Team/fatima-api/internal/middleware"
	"github.com/Amazons-Team/fatima-api/internal/model"
	"github.com/Amazons-Team/fatima-api/internal/service/session"
	apperrors "github.com/Amazons-Team/fatima-api/pkg/errors"
	"github.com/Amazons-Team/fatima-api/pkg/httputil"
)

type Handler struct {
	sessions *session.Service
}

func NewHandler(sessions *session.Service) *Handler {
	return &Handler{sessions: sessions}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, sessionMW *middleware.SessionMiddleware) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
		auth.GET("/me", sessionMW.RequireUser(), h.Me)
	}
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid request body", err))
		return
	}

	sess, err := h.sessions.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, sess)
}

func (h *Handler) Logout(c *gin.Context) {
	h.sessions.Logout(c.GetHeader(middleware.HeaderSessionToken))
	httputil.RespondWithSuccess(c, http.StatusOK, nil)
}

func (h *Handler) Me(c *gin.Context) {
	httputil.RespondWithSuccess(c, http.StatusOK, middleware.CurrentUser(c))
}
