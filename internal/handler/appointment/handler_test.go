package appointment_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amazons-Team/fatima-api/internal/handler"
	"github.com/Amazons-Team/fatima-api/internal/handler/appointment"
	authHandler "github.com/Amazons-Team/fatima-api/internal/handler/auth"
	notificationHandler "github.com/Amazons-Team/fatima-api/internal/handler/notification"
	"github.com/Amazons-Team/fatima-api/internal/middleware"
	"github.com/Amazons-Team/fatima-api/internal/router"
	appointmentService "github.com/Amazons-Team/fatima-api/internal/service/appointment"
	"github.com/Amazons-Team/fatima-api/internal/service/audit"
	notificationService "github.com/Amazons-Team/fatima-api/internal/service/notification"
	sessionService "github.com/Amazons-Team/fatima-api/internal/service/session"
	"github.com/Amazons-Team/fatima-api/internal/store"
	"github.com/Amazons-Team/fatima-api/pkg/kv/memory"
	"github.com/Amazons-Team/fatima-api/pkg/logger"
	"github.com/Amazons-Team/fatima-api/pkg/messaging"
	"github.com/Amazons-Team/fatima-api/pkg/metrics"
)

type apiResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	ctx := context.Background()

	log := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
	kvStore := memory.New()
	require.NoError(t, kvStore.Set(ctx, "appointments", []byte(`{"version":1,"appointments":[]}`)))

	appointments, err := store.NewAppointmentStore(ctx, kvStore, log, metrics.New("test"))
	require.NoError(t, err)
	notifications, err := store.NewNotificationStore(ctx, kvStore)
	require.NoError(t, err)

	sessions := sessionService.NewService(kvStore)
	notifSvc := notificationService.NewService(notifications, messaging.NewNoopBroker(), notificationService.SMTPConfig{}, sessions, log)
	appointmentSvc := appointmentService.NewService(appointments, notifSvc, audit.NewService(log.Zerolog()))

	r := router.NewRouter(
		router.Config{RateLimitRPS: 1000, RateLimitBurst: 1000, CORS: middleware.DefaultCORSConfig()},
		metrics.New("test_http"),
		middleware.NewSessionMiddleware(sessions),
		authHandler.NewHandler(sessions),
		appointment.NewHandler(appointmentSvc),
		notificationHandler.NewHandler(notifications),
		handler.NewHandler(),
	)
	return r.Engine()
}

func doRequest(t *testing.T, h http.Handler, method, path, token string, body interface{}) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		blob, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(blob)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(middleware.HeaderSessionToken, token)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var resp apiResponse
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func login(t *testing.T, h http.Handler, email string) string {
	t.Helper()

	w, resp := doRequest(t, h, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": "password",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var sess struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &sess))
	require.NotEmpty(t, sess.Token)
	return sess.Token
}

func bookingBody() map[string]interface{} {
	return map[string]interface{}{
		"patient_id":   "p1",
		"patient_name": "Mohamed Ahmed",
		"doctor_id":    "d1",
		"doctor_name":  "Dr. Ahmed Mohamed",
		"clinic_id":    3,
		"date":         "2025-04-10",
		"time":         "10:00",
		"type":         "checkup",
	}
}

func TestBookingFlow(t *testing.T) {
	h := newTestServer(t)
	token := login(t, h, "patient@example.com")

	w, resp := doRequest(t, h, http.MethodPost, "/api/v1/appointments", token, bookingBody())
	require.Equal(t, http.StatusCreated, w.Code)

	var apt struct {
		ID     string `json:"id"`
		Status string `json:"status"`
		Time   string `json:"time"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &apt))
	assert.Equal(t, "scheduled", apt.Status)
	assert.NotEmpty(t, apt.ID)

	// The slot is no longer offered.
	w, resp = doRequest(t, h, http.MethodGet, "/api/v1/appointments/availability?doctor_id=d1&date=2025-04-10", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, string(resp.Data), `"10:00"`)

	// Booking the same slot again conflicts.
	adminToken := login(t, h, "admin@example.com")
	body := bookingBody()
	body["patient_id"] = "p2"
	body["patient_name"] = "Fatima Ali"
	w, _ = doRequest(t, h, http.MethodPost, "/api/v1/appointments", adminToken, body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCancelFlow(t *testing.T) {
	h := newTestServer(t)
	token := login(t, h, "patient@example.com")

	_, resp := doRequest(t, h, http.MethodPost, "/api/v1/appointments", token, bookingBody())
	var apt struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &apt))

	w, resp := doRequest(t, h, http.MethodPost, "/api/v1/appointments/"+apt.ID+"/cancel", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(resp.Data), `"cancelled"`)

	// The record survives cancellation in the patient's list.
	w, resp = doRequest(t, h, http.MethodGet, "/api/v1/appointments", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(resp.Data), apt.ID)

	// The slot is offered again.
	w, resp = doRequest(t, h, http.MethodGet, "/api/v1/appointments/availability?doctor_id=d1&date=2025-04-10", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(resp.Data), `"10:00"`)
}

func TestPatientCannotComplete(t *testing.T) {
	h := newTestServer(t)
	token := login(t, h, "patient@example.com")

	_, resp := doRequest(t, h, http.MethodPost, "/api/v1/appointments", token, bookingBody())
	var apt struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &apt))

	w, _ := doRequest(t, h, http.MethodPost, "/api/v1/appointments/"+apt.ID+"/complete", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	doctorToken := login(t, h, "doctor@example.com")
	w, _ = doRequest(t, h, http.MethodPost, "/api/v1/appointments/"+apt.ID+"/complete", doctorToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteRequiresAdmin(t *testing.T) {
	h := newTestServer(t)
	patientToken := login(t, h, "patient@example.com")

	_, resp := doRequest(t, h, http.MethodPost, "/api/v1/appointments", patientToken, bookingBody())
	var apt struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &apt))

	w, _ := doRequest(t, h, http.MethodDelete, "/api/v1/appointments/"+apt.ID, patientToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	adminToken := login(t, h, "admin@example.com")
	w, _ = doRequest(t, h, http.MethodDelete, "/api/v1/appointments/"+apt.ID, adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = doRequest(t, h, http.MethodDelete, "/api/v1/appointments/"+apt.ID, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	h := newTestServer(t)

	w, _ := doRequest(t, h, http.MethodGet, "/api/v1/appointments", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = doRequest(t, h, http.MethodPost, "/api/v1/appointments", "bogus-token", bookingBody())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestNotificationsCreatedOnBooking(t *testing.T) {
	h := newTestServer(t)
	token := login(t, h, "patient@example.com")

	w, _ := doRequest(t, h, http.MethodPost, "/api/v1/appointments", token, bookingBody())
	require.Equal(t, http.StatusCreated, w.Code)

	w, resp := doRequest(t, h, http.MethodGet, "/api/v1/notifications", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(resp.Data), "Appointment booked")
}

func TestClinicCatalog(t *testing.T) {
	h := newTestServer(t)
	token := login(t, h, "patient@example.com")

	w, resp := doRequest(t, h, http.MethodGet, "/api/v1/clinics", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var clinics []struct {
		Number int    `json:"number"`
		Name   string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &clinics))
	assert.Len(t, clinics, 8)
}

func TestHealthEndpoint(t *testing.T) {
	h := newTestServer(t)

	w, resp := doRequest(t, h, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", resp.Status)
}
