package doctor

import "github.com/allan6757/Hospitali/internal/apperr"

const resourceName = "doctor"

const reasonRequired = "is required"

func errNotFound(id int64) error {
	return apperr.NotFound(resourceName, id)
}
