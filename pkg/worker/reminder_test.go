package worker

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amazons-Team/fatima-api/internal/model"
	"github.com/Amazons-Team/fatima-api/internal/service/notification"
	"github.com/Amazons-Team/fatima-api/internal/store"
	"github.com/Amazons-Team/fatima-api/pkg/kv/memory"
	"github.com/Amazons-Team/fatima-api/pkg/logger"
	"github.com/Amazons-Team/fatima-api/pkg/messaging"
	"github.com/Amazons-Team/fatima-api/pkg/metrics"
)

func newReminder(t *testing.T) (*Reminder, *store.AppointmentStore, *store.NotificationStore) {
	t.Helper()
	ctx := context.Background()

	log := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
	kvStore := memory.New()
	require.NoError(t, kvStore.Set(ctx, "appointments", []byte(`{"version":1,"appointments":[]}`)))

	appointments, err := store.NewAppointmentStore(ctx, kvStore, log, metrics.New("test"))
	require.NoError(t, err)
	notifications, err := store.NewNotificationStore(ctx, kvStore)
	require.NoError(t, err)

	notifSvc := notification.NewService(notifications, messaging.NewNoopBroker(), notification.SMTPConfig{}, nil, log)
	r := NewReminder(appointments, notifSvc, ReminderConfig{PollInterval: time.Hour}, log, metrics.New("test_reminder"))
	return r, appointments, notifications
}

func TestScanRemindsTomorrowsAppointmentsOnce(t *testing.T) {
	r, appointments, notifications := newReminder(t)
	ctx := context.Background()

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	_, err := appointments.Add(ctx, &model.Appointment{
		PatientID:  "P001",
		DoctorID:   "D001",
		DoctorName: "Dr. Ahmed Mohamed",
		ClinicID:   3,
		Date:       tomorrow,
		Time:       "10:00",
		Duration:   30,
		Type:       model.AppointmentTypeCheckup,
		Status:     model.AppointmentStatusScheduled,
	})
	require.NoError(t, err)

	r.scan(ctx)
	assert.Len(t, notifications.ListByUser("P001"), 1)
	assert.Len(t, notifications.ListByUser("D001"), 1)

	// A second scan on the same day does not re-notify.
	r.scan(ctx)
	assert.Len(t, notifications.ListByUser("P001"), 1)
}

func TestScanSkipsCancelledAndOtherDays(t *testing.T) {
	r, appointments, notifications := newReminder(t)
	ctx := context.Background()

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	nextWeek := time.Now().AddDate(0, 0, 7).Format("2006-01-02")

	_, err := appointments.Add(ctx, &model.Appointment{
		PatientID: "P001",
		DoctorID:  "D001",
		Date:      tomorrow,
		Time:      "10:00",
		Status:    model.AppointmentStatusCancelled,
	})
	require.NoError(t, err)

	_, err = appointments.Add(ctx, &model.Appointment{
		PatientID: "P002",
		DoctorID:  "D001",
		Date:      nextWeek,
		Time:      "10:00",
		Status:    model.AppointmentStatusScheduled,
	})
	require.NoError(t, err)

	r.scan(ctx)
	assert.Empty(t, notifications.ListByUser("P001"))
	assert.Empty(t, notifications.ListByUser("P002"))
}
