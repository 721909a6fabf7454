package appointment

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Amazons-Team/fatima-api/internal/middleware"
	"github.com/Amazons-Team/fatima-api/internal/model"
	"github.com/Amazons-Team/fatima-api/internal/service/appointment"
	apperrors "github.com/Amazons-Team/fatima-api/pkg/errors"
	"github.com/Amazons-Team/fatima-api/pkg/httputil"
)

type Handler struct {
	service *appointment.Service
}

func NewHandler(service *appointment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, session *middleware.SessionMiddleware) {
	r.GET("/clinics", session.RequireUser(), h.ListClinics)

	appointments := r.Group("/appointments", session.RequireUser())
	{
		appointments.GET("/availability", h.GetAvailability)
		appointments.POST("", h.BookAppointment)
		appointments.GET("", h.ListAppointments)
		appointments.GET("/:id", h.GetAppointment)
		appointments.PATCH("/:id", h.RescheduleAppointment)
		appointments.PATCH("/:id/notes", h.UpdateNotes)
		appointments.POST("/:id/cancel", h.CancelAppointment)
		appointments.POST("/:id/complete", h.CompleteAppointment)
		appointments.DELETE("/:id", h.DeleteAppointment)
	}
}

func (h *Handler) BookAppointment(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid request body", err))
		return
	}

	apt, err := h.service.Book(c.Request.Context(), middleware.CurrentUser(c), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusCreated, apt)
}

func (h *Handler) GetAppointment(c *gin.Context) {
	apt, err := h.service.Get(middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, apt)
}

func (h *Handler) ListAppointments(c *gin.Context) {
	filters := model.AppointmentFilters{
		PatientID: c.Query("patient_id"),
		DoctorID:  c.Query("doctor_id"),
		Date:      c.Query("date"),
		Status:    model.AppointmentStatus(c.Query("status")),
	}

	if raw := c.Query("clinic_id"); raw != "" {
		clinicID, err := strconv.Atoi(raw)
		if err != nil {
			httputil.RespondWithError(c, apperrors.BadRequest("invalid clinic ID", err))
			return
		}
		filters.ClinicID = clinicID
	}

	if filters.Status != "" && !filters.Status.Valid() {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid status filter", nil))
		return
	}

	appointments := h.service.List(middleware.CurrentUser(c), filters)
	httputil.RespondWithSuccess(c, http.StatusOK, appointments)
}

func (h *Handler) RescheduleAppointment(c *gin.Context) {
	var req model.RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid request body", err))
		return
	}

	apt, err := h.service.Reschedule(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, apt)
}

func (h *Handler) UpdateNotes(c *gin.Context) {
	var req model.UpdateNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid request body", err))
		return
	}

	apt, err := h.service.UpdateNotes(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, apt)
}

func (h *Handler) CancelAppointment(c *gin.Context) {
	apt, err := h.service.Cancel(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, apt)
}

func (h *Handler) CompleteAppointment(c *gin.Context) {
	apt, err := h.service.Complete(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, apt)
}

func (h *Handler) DeleteAppointment(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, nil)
}

func (h *Handler) ListClinics(c *gin.Context) {
	httputil.RespondWithSuccess(c, http.StatusOK, model.Clinics())
}

func (h *Handler) GetAvailability(c *gin.Context) {
	slots, err := h.service.AvailableSlots(c.Query("doctor_id"), c.Query("date"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, slots)
}
