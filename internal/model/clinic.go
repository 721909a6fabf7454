package model

// Clinic is a treatment room. Rooms are numbered, and each doctor is
// assigned to one room at booking time; the appointment records the
// room number as a snapshot.
type Clinic struct {
	Number   int    `json:"number"`
	Name     string `json:"name"`
	DoctorID string `json:"doctorId,omitempty"`
}

// Clinics returns the fixed room catalog. The rooms never change at
// runtime; doctor assignments here are the demo roster.
func Clinics() []Clinic {
	return []Clinic{
		{Number: 1, Name: "Surgery Room 1", DoctorID: "D005"},
		{Number: 2, Name: "Surgery Room 2"},
		{Number: 3, Name: "General Dentistry 1", DoctorID: "D001"},
		{Number: 4, Name: "General Dentistry 2", DoctorID: "D004"},
		{Number: 5, Name: "Orthodontics", DoctorID: "D003"},
		{Number: 6, Name: "Pediatric Dentistry"},
		{Number: 7, Name: "Endodontics", DoctorID: "D002"},
		{Number: 8, Name: "Radiology"},
	}
}
