package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Amazons-Team/fatima-api/pkg/errors"
)

// Response wraps all API responses
type Response struct {
	Status  string      `json:"status"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// RespondWithSuccess sends a success response
func RespondWithSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, Response{
		Status: "success",
		Data:   data,
	})
}

// RespondWithError maps an AppError code to an HTTP status and sends
// the error response.
func RespondWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch apperrors.CodeOf(err) {
	case apperrors.ErrNotFound:
		status = http.StatusNotFound
		message = err.Error()
	case apperrors.ErrBadRequest:
		status = http.StatusBadRequest
		message = err.Error()
	case apperrors.ErrUnauthorized:
		status = http.StatusUnauthorized
		message = err.Error()
	case apperrors.ErrForbidden:
		status = http.StatusForbidden
		message = err.Error()
	case apperrors.ErrSlotConflict:
		status = http.StatusConflict
		message = err.Error()
	}

	c.JSON(status, Response{
		Status:  "error",
		Message: message,
	})
}
