package apperr

import "net/http"

// HTTPStatus maps a failure onto the response status for the JSON API.
func HTTPStatus(err error) int {
	switch {
	case IsValidation(err):
		return http.StatusBadRequest
	case IsNotFound(err):
		return http.StatusNotFound
	case IsIntegrity(err):
		return http.StatusConflict
	case IsUnavailable(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Code is the short machine-readable error name used in JSON bodies.
func Code(err error) string {
	switch {
	case IsValidation(err):
		return "validation_error"
	case IsNotFound(err):
		return "not_found"
	case IsIntegrity(err):
		return "integrity_violation"
	case IsUnavailable(err):
		return "store_unavailable"
	default:
		return "internal_error"
	}
}
