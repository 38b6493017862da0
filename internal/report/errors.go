package report

import "github.com/allan6757/Hospitali/internal/apperr"

const reasonRequired = "is required"

func errPatientNotFound(id int64) error {
	return apperr.NotFound("patient", id)
}
