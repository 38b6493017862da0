package patient

import "github.com/allan6757/Hospitali/internal/pagination"

// Patient is a registered clinic patient. Patients are never updated.
type Patient struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Age         int    `json:"age"`
	Gender      string `json:"gender"`
}

// CreatePatientRequest carries raw user input. Age is text because it is
// typed at a prompt or posted as a form value and validated here.
type CreatePatientRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Age         string `json:"age"`
	Gender      string `json:"gender"`
}

// PaginatedPatientListResponse represents a paginated list of patients
type PaginatedPatientListResponse struct {
	Success    bool            `json:"success"`
	Patients   []Patient       `json:"patients"`
	Pagination pagination.Meta `json:"pagination"`
}
