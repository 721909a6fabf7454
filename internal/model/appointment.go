package model

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further status transition is allowed.
func (s AppointmentStatus) Terminal() bool {
	return s == AppointmentStatusCompleted || s == AppointmentStatusCancelled
}

type AppointmentType string

const (
	AppointmentTypeCheckup   AppointmentType = "checkup"
	AppointmentTypeTreatment AppointmentType = "treatment"
	AppointmentTypeFollowUp  AppointmentType = "follow-up"
)

// DurationMinutes returns the visit length booked for each appointment
// type. Treatments take a full hour, everything else half an hour.
func (t AppointmentType) DurationMinutes() int {
	if t == AppointmentTypeTreatment {
		return 60
	}
	return 30
}

func (t AppointmentType) Valid() bool {
	switch t {
	case AppointmentTypeCheckup, AppointmentTypeTreatment, AppointmentTypeFollowUp:
		return true
	}
	return false
}

// Appointment is the stored booking record. Patient and doctor names are
// snapshots taken at booking time and are never re-resolved. JSON field
// names match the blobs written by earlier releases so existing stored
// collections load unchanged.
type Appointment struct {
	ID          string            `json:"id"`
	PatientID   string            `json:"patientId"`
	PatientName string            `json:"patientName"`
	DoctorID    string            `json:"doctorId"`
	DoctorName  string            `json:"doctorName"`
	ClinicID    int               `json:"clinicId"`
	Date        string            `json:"date"` // YYYY-MM-DD, clinic-local
	Time        string            `json:"time"` // HH:MM, 24h, clinic-local
	Duration    int               `json:"duration"` // minutes
	Type        AppointmentType   `json:"type"`
	Status      AppointmentStatus `json:"status"`
	Notes       string            `json:"notes,omitempty"`
	CreatedAt   string            `json:"createdAt"`
}

// Active reports whether the appointment blocks its slot. Completed
// visits keep the slot in the past; only cancellation frees it.
func (a *Appointment) Active() bool {
	return a.Status != AppointmentStatusCancelled
}

type CreateAppointmentRequest struct {
	PatientID   string          `json:"patient_id" validate:"required"`
	PatientName string          `json:"patient_name" validate:"required"`
	DoctorID    string          `json:"doctor_id" validate:"required"`
	DoctorName  string          `json:"doctor_name" validate:"required"`
	ClinicID    int             `json:"clinic_id" validate:"required"`
	Date        string          `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string          `json:"time" validate:"required,datetime=15:04"`
	Type        AppointmentType `json:"type" validate:"required,oneof=checkup treatment follow-up"`
	Notes       string          `json:"notes" validate:"max=1000"`
}

type UpdateNotesRequest struct {
	Notes string `json:"notes" validate:"max=1000"`
}

type RescheduleRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
	Time string `json:"time" validate:"required,datetime=15:04"`
}

// AppointmentFilters narrows List results; zero values mean no filter.
type AppointmentFilters struct {
	PatientID string
	DoctorID  string
	ClinicID  int
	Date      string
	Status    AppointmentStatus
}

// TimeSlot is a bookable (date, time) pair for a specific doctor.
type TimeSlot struct {
	Date string `json:"date"`
	Time string `json:"time"`
}
