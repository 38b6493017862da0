package patient

import "github.com/allan6757/Hospitali/internal/apperr"

const resourceName = "patient"

const (
	reasonRequired   = "is required"
	reasonAgeInteger = "must be a non-negative integer"
)

func errNotFound(id int64) error {
	return apperr.NotFound(resourceName, id)
}
