// Package messaging defines the broker interface appointment lifecycle
// events are published through.
package messaging

import "context"

// Broker publishes serialized domain events to a named topic.
type Broker interface {
	Publish(ctx context.Context, topic string, message interface{}) error
	Close() error
}

// Topics for appointment lifecycle events.
const (
	TopicAppointmentCreated     = "appointment.created"
	TopicAppointmentCancelled   = "appointment.cancelled"
	TopicAppointmentRescheduled = "appointment.rescheduled"
	TopicAppointmentCompleted   = "appointment.completed"
	TopicAppointmentDeleted     = "appointment.deleted"
	TopicAppointmentReminder    = "appointment.reminder"
)
