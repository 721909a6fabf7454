// Package appointment implements the booking flow on top of the
// appointment store: request validation, role rules, the status
// lifecycle, and availability slot generation.
package appointment

import (
	"context"
	"fmt"

	"github.com/Amazons-Team/fatima-api/internal/model"
	"github.com/Amazons-Team/fatima-api/internal/service/audit"
	"github.com/Amazons-Team/fatima-api/internal/service/notification"
	"github.com/Amazons-Team/fatima-api/internal/store"
	apperrors "github.com/Amazons-Team/fatima-api/pkg/errors"
	"github.com/Amazons-Team/fatima-api/pkg/messaging"
	"github.com/Amazons-Team/fatima-api/pkg/validator"
)

type Service struct {
	store    *store.AppointmentStore
	notifSvc *notification.Service
	auditor  *audit.Service
	validate *validator.Validator
}

func NewService(s *store.AppointmentStore, notifSvc *notification.Service, auditor *audit.Service) *Service {
	return &Service{
		store:    s,
		notifSvc: notifSvc,
		auditor:  auditor,
		validate: validator.New(),
	}
}

// Book validates the request and creates a scheduled appointment. The
// store rejects the booking with a slot conflict if the doctor already
// has an active appointment at that date and time. Patients can only
// book for themselves; doctors and admins can book on a patient's
// behalf.
func (s *Service) Book(ctx context.Context, actor *model.User, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	if actor.Role == model.RolePatient && req.PatientID != actor.ID {
		return nil, apperrors.Forbidden("patients can only book their own appointments")
	}

	apt, err := s.store.Add(ctx, &model.Appointment{
		PatientID:   req.PatientID,
		PatientName: req.PatientName,
		DoctorID:    req.DoctorID,
		DoctorName:  req.DoctorName,
		ClinicID:    req.ClinicID,
		Date:        req.Date,
		Time:        req.Time,
		Duration:    req.Type.DurationMinutes(),
		Type:        req.Type,
		Status:      model.AppointmentStatusScheduled,
		Notes:       req.Notes,
	})
	if err != nil {
		return nil, err
	}

	s.auditor.Log(actor, "create", "appointment", apt.ID)
	s.notifSvc.NotifyAppointmentChange(ctx, messaging.TopicAppointmentCreated, apt)
	return apt, nil
}

// Cancel moves a scheduled appointment to cancelled. Patients may
// cancel their own appointments, doctors those on their own schedule,
// admins any. Terminal states stay terminal.
func (s *Service) Cancel(ctx context.Context, actor *model.User, id string) (*model.Appointment, error) {
	apt, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeChange(actor, apt); err != nil {
		return nil, err
	}
	if apt.Status == model.AppointmentStatusCancelled {
		return nil, apperrors.BadRequest("appointment is already cancelled", nil)
	}
	if apt.Status == model.AppointmentStatusCompleted {
		return nil, apperrors.BadRequest("cannot cancel a completed appointment", nil)
	}

	cancelled := model.AppointmentStatusCancelled
	updated, err := s.store.Update(ctx, id, store.Patch{Status: &cancelled})
	if err != nil {
		return nil, err
	}

	s.auditor.Log(actor, "cancel", "appointment", id)
	s.notifSvc.NotifyAppointmentChange(ctx, messaging.TopicAppointmentCancelled, updated)
	return updated, nil
}

// Complete marks a scheduled appointment as completed. Patients cannot
// complete appointments; that is the treating doctor's (or an admin's)
// call.
func (s *Service) Complete(ctx context.Context, actor *model.User, id string) (*model.Appointment, error) {
	apt, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case model.RoleAdmin:
	case model.RoleDoctor:
		if apt.DoctorID != actor.ID {
			return nil, apperrors.Forbidden("doctors can only complete their own appointments")
		}
	default:
		return nil, apperrors.Forbidden("only doctors and admins can complete appointments")
	}

	if apt.Status.Terminal() {
		return nil, apperrors.BadRequest(fmt.Sprintf("cannot complete a %s appointment", apt.Status), nil)
	}

	completed := model.AppointmentStatusCompleted
	updated, err := s.store.Update(ctx, id, store.Patch{Status: &completed})
	if err != nil {
		return nil, err
	}

	s.auditor.Log(actor, "complete", "appointment", id)
	s.notifSvc.NotifyAppointmentChange(ctx, messaging.TopicAppointmentCompleted, updated)
	return updated, nil
}

// Reschedule moves a scheduled appointment to a new date and time. The
// store re-validates the slot rule at the new position, so moving onto
// an occupied slot fails with a conflict.
func (s *Service) Reschedule(ctx context.Context, actor *model.User, id string, req *model.RescheduleRequest) (*model.Appointment, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	apt, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeChange(actor, apt); err != nil {
		return nil, err
	}
	if apt.Status.Terminal() {
		return nil, apperrors.BadRequest(fmt.Sprintf("cannot reschedule a %s appointment", apt.Status), nil)
	}

	updated, err := s.store.Update(ctx, id, store.Patch{Date: &req.Date, Time: &req.Time})
	if err != nil {
		return nil, err
	}

	s.auditor.Log(actor, "reschedule", "appointment", id)
	s.notifSvc.NotifyAppointmentChange(ctx, messaging.TopicAppointmentRescheduled, updated)
	return updated, nil
}

// UpdateNotes replaces the free-text notes on a non-deleted record.
func (s *Service) UpdateNotes(ctx context.Context, actor *model.User, id string, req *model.UpdateNotesRequest) (*model.Appointment, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	apt, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeChange(actor, apt); err != nil {
		return nil, err
	}

	updated, err := s.store.Update(ctx, id, store.Patch{Notes: &req.Notes})
	if err != nil {
		return nil, err
	}

	s.auditor.Log(actor, "update_notes", "appointment", id)
	return updated, nil
}

// Delete removes the record entirely. Admin only; cancellation is the
// self-service path for everyone else.
func (s *Service) Delete(ctx context.Context, actor *model.User, id string) error {
	if actor.Role != model.RoleAdmin {
		return apperrors.Forbidden("only admins can delete appointments")
	}

	apt, err := s.store.Get(id)
	if err != nil {
		return err
	}

	if err := s.store.Remove(ctx, id); err != nil {
		return err
	}

	s.auditor.Log(actor, "delete", "appointment", id)
	s.notifSvc.NotifyAppointmentChange(ctx, messaging.TopicAppointmentDeleted, apt)
	return nil
}

// Get returns a single appointment, restricted to its participants for
// non-admin actors.
func (s *Service) Get(actor *model.User, id string) (*model.Appointment, error) {
	apt, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeRead(actor, apt); err != nil {
		return nil, err
	}
	return apt, nil
}

// List returns appointments matching the filters. Patients and doctors
// are scoped to their own records regardless of the requested filter.
func (s *Service) List(actor *model.User, filters model.AppointmentFilters) []*model.Appointment {
	switch actor.Role {
	case model.RolePatient:
		filters.PatientID = actor.ID
	case model.RoleDoctor:
		filters.DoctorID = actor.ID
	}
	return s.store.List(filters)
}

func (s *Service) authorizeChange(actor *model.User, apt *model.Appointment) error {
	switch actor.Role {
	case model.RoleAdmin:
		return nil
	case model.RoleDoctor:
		if apt.DoctorID == actor.ID {
			return nil
		}
	case model.RolePatient:
		if apt.PatientID == actor.ID {
			return nil
		}
	}
	return apperrors.Forbidden("not allowed to modify this appointment")
}

func (s *Service) authorizeRead(actor *model.User, apt *model.Appointment) error {
	switch actor.Role {
	case model.RoleAdmin, model.RoleDeveloper:
		return nil
	case model.RoleDoctor:
		if apt.DoctorID == actor.ID {
			return nil
		}
	case model.RolePatient:
		if apt.PatientID == actor.ID {
			return nil
		}
	}
	return apperrors.Forbidden("not allowed to view this appointment")
}
