package appointment

import (
	"time"

	"github.com/Amazons-Team/fatima-api/internal/model"
	apperrors "github.com/Amazons-Team/fatima-api/pkg/errors"
)

// Clinic working span. Candidate slots are the half-hour marks from
// opening up to and including the last mark before closing.
const (
	openingTime  = "09:00"
	closingTime  = "17:00"
	slotInterval = 30 * time.Minute
)

// candidateSlots enumerates every bookable half-hour mark of a working
// day: 09:00 through 16:30.
func candidateSlots() []string {
	start, _ := time.Parse("15:04", openingTime)
	end, _ := time.Parse("15:04", closingTime)

	var slots []string
	for t := start; t.Before(end); t = t.Add(slotInterval) {
		slots = append(slots, t.Format("15:04"))
	}
	return slots
}

// AvailableSlots returns the candidate slots the doctor is still free
// for on the given date. The set is recomputed on every call; each
// candidate is checked against the store's availability rule.
func (s *Service) AvailableSlots(doctorID, date string) ([]model.TimeSlot, error) {
	if doctorID == "" {
		return nil, apperrors.BadRequest("doctor_id is required", nil)
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, apperrors.BadRequest("date must be YYYY-MM-DD", err)
	}

	var available []model.TimeSlot
	for _, tm := range candidateSlots() {
		if s.store.CheckAvailability(doctorID, date, tm) {
			available = append(available, model.TimeSlot{Date: date, Time: tm})
		}
	}
	return available, nil
}
