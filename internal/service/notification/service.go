// Package notification fans appointment lifecycle changes out to the
// affected users: a stored notification each for patient and doctor, a
// broker event, and optionally an email.
package notification

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/Amazons-Team/fatima-api/internal/model"
	"github.com/Amazons-Team/fatima-api/internal/store"
	"github.com/Amazons-Team/fatima-api/pkg/logger"
	"github.com/Amazons-Team/fatima-api/pkg/messaging"
)

// SMTPConfig enables outgoing mail when Host is set.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Directory resolves a user's email address. The session service
// implements it over its user roster.
type Directory interface {
	EmailFor(userID string) (string, bool)
}

type mailDialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type Service struct {
	notifications *store.NotificationStore
	broker        messaging.Broker
	smtp          SMTPConfig
	directory     Directory
	dialer        mailDialer
	logger        *logger.Logger
}

func NewService(notifications *store.NotificationStore, broker messaging.Broker, smtp SMTPConfig, directory Directory, log *logger.Logger) *Service {
	s := &Service{
		notifications: notifications,
		broker:        broker,
		smtp:          smtp,
		directory:     directory,
		logger:        log,
	}
	if smtp.Host != "" {
		s.dialer = gomail.NewDialer(smtp.Host, smtp.Port, smtp.Username, smtp.Password)
	}
	return s
}

// event is the payload published to the broker.
type event struct {
	AppointmentID string `json:"appointment_id"`
	PatientID     string `json:"patient_id"`
	DoctorID      string `json:"doctor_id"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Status        string `json:"status"`
}

// NotifyAppointmentChange records notifications for both participants
// and publishes the corresponding broker event. Delivery failures are
// logged, not returned: a booking must not fail because a side channel
// is down.
func (s *Service) NotifyAppointmentChange(ctx context.Context, topic string, apt *model.Appointment) {
	title, content := s.describe(topic, apt)

	for _, userID := range []string{apt.PatientID, apt.DoctorID} {
		if _, err := s.notifications.Add(ctx, userID, title, content); err != nil {
			s.logger.Error(err, "failed to store notification", "user_id", userID)
		}
		s.email(userID, title, content)
	}

	if err := s.broker.Publish(ctx, topic, event{
		AppointmentID: apt.ID,
		PatientID:     apt.PatientID,
		DoctorID:      apt.DoctorID,
		Date:          apt.Date,
		Time:          apt.Time,
		Status:        string(apt.Status),
	}); err != nil {
		s.logger.Error(err, "failed to publish event", "topic", topic)
	}
}

func (s *Service) describe(topic string, apt *model.Appointment) (title, content string) {
	when := fmt.Sprintf("%s at %s", apt.Date, apt.Time)
	switch topic {
	case messaging.TopicAppointmentCreated:
		return "Appointment booked",
			fmt.Sprintf("Appointment with %s on %s has been booked.", apt.DoctorName, when)
	case messaging.TopicAppointmentRescheduled:
		return "Appointment rescheduled",
			fmt.Sprintf("Appointment with %s has been moved to %s.", apt.DoctorName, when)
	case messaging.TopicAppointmentCancelled:
		return "Appointment cancelled",
			fmt.Sprintf("Appointment with %s on %s has been cancelled.", apt.DoctorName, when)
	case messaging.TopicAppointmentCompleted:
		return "Appointment completed",
			fmt.Sprintf("Appointment with %s on %s has been completed.", apt.DoctorName, when)
	case messaging.TopicAppointmentReminder:
		return "Appointment reminder",
			fmt.Sprintf("Reminder: appointment with %s on %s.", apt.DoctorName, when)
	default:
		return "Appointment updated",
			fmt.Sprintf("Appointment with %s on %s has been updated.", apt.DoctorName, when)
	}
}

// email delivers the notification text to the user's address, when
// SMTP is configured and the user is known to the directory. Delivery
// failures are logged like the other side channels.
func (s *Service) email(userID, subject, body string) {
	if s.dialer == nil || s.directory == nil {
		return
	}
	addr, ok := s.directory.EmailFor(userID)
	if !ok {
		return
	}
	if err := s.SendEmail(addr, subject, body); err != nil {
		s.logger.Error(err, "failed to send email", "user_id", userID)
	}
}

// SendEmail delivers a plain-text mail when SMTP is configured.
func (s *Service) SendEmail(to, subject, body string) error {
	if s.dialer == nil {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.smtp.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
