package doctor

// Specialty values the booking workflow offers as care tiers. Doctors may
// carry any non-empty specialty; these two are the ones patients can book.
const (
	GeneralPractitioner = "General Practitioner"
	Specialist          = "Specialist"
)

// SampleSpecialists are the names the admin menu adds in one step.
var SampleSpecialists = []string{"Dr. Benz", "Dr. lambo", "Dr. Money", "Dr. Dee", "Dr. Patelo"}

type Doctor struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
}

type CreateDoctorRequest struct {
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
}

type DoctorListResponse struct {
	Success bool     `json:"success"`
	Doctors []Doctor `json:"doctors"`
	Total   int      `json:"total"`
}
