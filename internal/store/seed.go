package store

import "github.com/Amazons-Team/fatima-api/internal/model"

// seedAppointments is the sample collection used on first start and
// when the stored blob cannot be read.
func seedAppointments() []*model.Appointment {
	return []*model.Appointment{
		{
			ID:          "1",
			PatientID:   "P001",
			PatientName: "Mohamed Ahmed",
			DoctorID:    "D001",
			DoctorName:  "Dr. Ahmed Mohamed",
			ClinicID:    3,
			Date:        "2025-04-10",
			Time:        "10:00",
			Duration:    30,
			Type:        model.AppointmentTypeCheckup,
			Status:      model.AppointmentStatusScheduled,
			CreatedAt:   "2025-04-01",
		},
		{
			ID:          "2",
			PatientID:   "P002",
			PatientName: "Fatima Ali",
			DoctorID:    "D002",
			DoctorName:  "Dr. Sara Ali",
			ClinicID:    7,
			Date:        "2025-04-10",
			Time:        "11:30",
			Duration:    60,
			Type:        model.AppointmentTypeTreatment,
			Status:      model.AppointmentStatusScheduled,
			Notes:       "root canal treatment",
			CreatedAt:   "2025-04-02",
		},
		{
			ID:          "3",
			PatientID:   "P003",
			PatientName: "Ahmed Khaled",
			DoctorID:    "D003",
			DoctorName:  "Dr. Mohamed Khaled",
			ClinicID:    5,
			Date:        "2025-04-10",
			Time:        "09:00",
			Duration:    30,
			Type:        model.AppointmentTypeFollowUp,
			Status:      model.AppointmentStatusCompleted,
			Notes:       "follow-up after extraction",
			CreatedAt:   "2025-04-01",
		},
		{
			ID:          "4",
			PatientID:   "P004",
			PatientName: "Sara Mahmoud",
			DoctorID:    "D004",
			DoctorName:  "Dr. Fatima Ahmed",
			ClinicID:    4,
			Date:        "2025-04-11",
			Time:        "10:00",
			Duration:    30,
			Type:        model.AppointmentTypeCheckup,
			Status:      model.AppointmentStatusScheduled,
			CreatedAt:   "2025-04-03",
		},
		{
			ID:          "5",
			PatientID:   "P005",
			PatientName: "Khaled Omar",
			DoctorID:    "D005",
			DoctorName:  "Dr. Omar Hassan",
			ClinicID:    1,
			Date:        "2025-04-11",
			Time:        "12:00",
			Duration:    60,
			Type:        model.AppointmentTypeTreatment,
			Status:      model.AppointmentStatusCancelled,
			Notes:       "cancelled by the patient",
			CreatedAt:   "2025-04-02",
		},
	}
}
