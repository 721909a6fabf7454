// Package store owns the appointment collection. It is the single
// source of truth: every mutation is validated against the scheduling
// invariant (at most one non-cancelled appointment per doctor, date and
// time) and written through to durable storage as one JSON blob.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Amazons-Team/fatima-api/internal/model"
	apperrors "github.com/Amazons-Team/fatima-api/pkg/errors"
	"github.com/Amazons-Team/fatima-api/pkg/kv"
	"github.com/Amazons-Team/fatima-api/pkg/logger"
	"github.com/Amazons-Team/fatima-api/pkg/metrics"
)

const appointmentsKey = "appointments"

// collection is the persisted envelope. Version allows the blob shape
// to evolve; loads also accept the bare array written by releases that
// predate the envelope.
type collection struct {
	Version      int                  `json:"version"`
	Appointments []*model.Appointment `json:"appointments"`
}

const collectionVersion = 1

// AppointmentStore holds the collection in memory and writes the full
// collection back to the kv store after every successful mutation.
type AppointmentStore struct {
	mu           sync.RWMutex
	kv           kv.Store
	logger       *logger.Logger
	metrics      *metrics.Metrics
	appointments []*model.Appointment
}

// NewAppointmentStore loads the persisted collection, falling back to
// the built-in seed list when the blob is absent or unreadable.
func NewAppointmentStore(ctx context.Context, store kv.Store, log *logger.Logger, m *metrics.Metrics) (*AppointmentStore, error) {
	s := &AppointmentStore{
		kv:      store,
		logger:  log,
		metrics: m,
	}

	appointments, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	s.appointments = appointments
	return s, nil
}

func (s *AppointmentStore) load(ctx context.Context) ([]*model.Appointment, error) {
	blob, err := s.kv.Get(ctx, appointmentsKey)
	if err == kv.ErrKeyNotFound {
		s.logger.Info("no stored appointments, seeding sample data")
		return seedAppointments(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load appointments: %w", err)
	}

	var envelope collection
	if err := json.Unmarshal(blob, &envelope); err == nil && envelope.Appointments != nil {
		return envelope.Appointments, nil
	}

	// Older releases stored the bare array.
	var legacy []*model.Appointment
	if err := json.Unmarshal(blob, &legacy); err == nil && legacy != nil {
		return legacy, nil
	}

	s.logger.Warn("stored appointment blob is unreadable, seeding sample data")
	return seedAppointments(), nil
}

// persist serializes the given collection. Called with s.mu held; the
// in-memory state is only swapped in after the write succeeds.
func (s *AppointmentStore) persist(ctx context.Context, appointments []*model.Appointment) error {
	blob, err := json.Marshal(collection{
		Version:      collectionVersion,
		Appointments: appointments,
	})
	if err != nil {
		return fmt.Errorf("failed to serialize appointments: %w", err)
	}
	if err := s.kv.Set(ctx, appointmentsKey, blob); err != nil {
		s.countWrite("error")
		return fmt.Errorf("failed to persist appointments: %w", err)
	}
	s.countWrite("success")
	return nil
}

func (s *AppointmentStore) countWrite(status string) {
	if s.metrics != nil {
		s.metrics.StorageWrites.WithLabelValues(status).Inc()
	}
}

func (s *AppointmentStore) countOp(op, status string) {
	if s.metrics != nil {
		s.metrics.StoreOperations.WithLabelValues(op, status).Inc()
	}
}

// Add assigns a fresh id and creation date, validates the scheduling
// invariant and appends the appointment. Unlike earlier revisions of
// this system the conflict rule is enforced here, not left to callers.
func (s *AppointmentStore) Add(ctx context.Context, apt *model.Appointment) (*model.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if apt.Status == "" {
		apt.Status = model.AppointmentStatusScheduled
	}
	if !apt.Status.Valid() {
		s.countOp("add", "error")
		return nil, apperrors.BadRequest(fmt.Sprintf("invalid status %q", apt.Status), nil)
	}

	if apt.Active() && s.conflictLocked(apt.DoctorID, apt.Date, apt.Time, "") {
		s.countOp("add", "conflict")
		if s.metrics != nil {
			s.metrics.SlotConflicts.Inc()
		}
		return nil, apperrors.SlotConflict(apt.DoctorID, apt.Date, apt.Time)
	}

	stored := *apt
	stored.ID = uuid.NewString()
	stored.CreatedAt = time.Now().Format("2006-01-02")

	next := append(append([]*model.Appointment{}, s.appointments...), &stored)
	if err := s.persist(ctx, next); err != nil {
		s.countOp("add", "error")
		return nil, err
	}
	s.appointments = next

	s.countOp("add", "success")
	return &stored, nil
}

// Patch carries the mutable appointment fields; nil means unchanged.
type Patch struct {
	Date   *string
	Time   *string
	Status *model.AppointmentStatus
	Notes  *string
}

// Update merges the patch into the record with the given id. Returns
// ErrNotFound for unknown ids and ErrSlotConflict when the merged
// record would double-book an active slot.
func (s *AppointmentStore) Update(ctx context.Context, id string, patch Patch) (*model.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		s.countOp("update", "not_found")
		return nil, apperrors.NotFound("appointment", nil)
	}

	merged := *s.appointments[idx]
	if patch.Date != nil {
		merged.Date = *patch.Date
	}
	if patch.Time != nil {
		merged.Time = *patch.Time
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			s.countOp("update", "error")
			return nil, apperrors.BadRequest(fmt.Sprintf("invalid status %q", *patch.Status), nil)
		}
		merged.Status = *patch.Status
	}
	if patch.Notes != nil {
		merged.Notes = *patch.Notes
	}

	if merged.Active() && s.conflictLocked(merged.DoctorID, merged.Date, merged.Time, id) {
		s.countOp("update", "conflict")
		if s.metrics != nil {
			s.metrics.SlotConflicts.Inc()
		}
		return nil, apperrors.SlotConflict(merged.DoctorID, merged.Date, merged.Time)
	}

	next := append([]*model.Appointment{}, s.appointments...)
	next[idx] = &merged
	if err := s.persist(ctx, next); err != nil {
		s.countOp("update", "error")
		return nil, err
	}
	s.appointments = next

	s.countOp("update", "success")
	return &merged, nil
}

// Remove deletes the record with the given id. Removing an unknown id
// returns ErrNotFound and leaves the collection unchanged.
func (s *AppointmentStore) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		s.countOp("remove", "not_found")
		return apperrors.NotFound("appointment", nil)
	}

	next := append([]*model.Appointment{}, s.appointments[:idx]...)
	next = append(next, s.appointments[idx+1:]...)
	if err := s.persist(ctx, next); err != nil {
		s.countOp("remove", "error")
		return err
	}
	s.appointments = next

	s.countOp("remove", "success")
	return nil
}

func (s *AppointmentStore) Get(id string) (*model.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return nil, apperrors.NotFound("appointment", nil)
	}
	apt := *s.appointments[idx]
	return &apt, nil
}

// List returns appointments matching the filters, in insertion order.
func (s *AppointmentStore) List(filters model.AppointmentFilters) []*model.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*model.Appointment
	for _, apt := range s.appointments {
		if filters.PatientID != "" && apt.PatientID != filters.PatientID {
			continue
		}
		if filters.DoctorID != "" && apt.DoctorID != filters.DoctorID {
			continue
		}
		if filters.ClinicID != 0 && apt.ClinicID != filters.ClinicID {
			continue
		}
		if filters.Date != "" && apt.Date != filters.Date {
			continue
		}
		if filters.Status != "" && apt.Status != filters.Status {
			continue
		}
		copied := *apt
		out = append(out, &copied)
	}
	return out
}

func (s *AppointmentStore) ListByPatient(patientID string) []*model.Appointment {
	return s.List(model.AppointmentFilters{PatientID: patientID})
}

func (s *AppointmentStore) ListByDoctor(doctorID string) []*model.Appointment {
	return s.List(model.AppointmentFilters{DoctorID: doctorID})
}

func (s *AppointmentStore) ListByClinic(clinicID int) []*model.Appointment {
	return s.List(model.AppointmentFilters{ClinicID: clinicID})
}

func (s *AppointmentStore) ListByDate(date string) []*model.Appointment {
	return s.List(model.AppointmentFilters{Date: date})
}

func (s *AppointmentStore) ListByStatus(status model.AppointmentStatus) []*model.Appointment {
	return s.List(model.AppointmentFilters{Status: status})
}

// CheckAvailability reports whether the doctor has no active
// appointment at the given date and time. Cancelled appointments do
// not block the slot.
func (s *AppointmentStore) CheckAvailability(doctorID, date, tm string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.conflictLocked(doctorID, date, tm, "")
}

func (s *AppointmentStore) conflictLocked(doctorID, date, tm, excludeID string) bool {
	for _, apt := range s.appointments {
		if apt.ID == excludeID {
			continue
		}
		if apt.DoctorID == doctorID && apt.Date == date && apt.Time == tm && apt.Active() {
			return true
		}
	}
	return false
}

func (s *AppointmentStore) indexLocked(id string) int {
	for i, apt := range s.appointments {
		if apt.ID == id {
			return i
		}
	}
	return -1
}
