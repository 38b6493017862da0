package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// Booker is implemented by *Workflow.
type Booker interface {
	Book(ctx context.Context, patientID string, c Choices) *Result
}

var _ Booker = (*Workflow)(nil)

type Handler struct {
	booker Booker
}

func NewHandler(booker Booker) *Handler {
	return &Handler{booker: booker}
}

// Answer is a prompt answer posted as either a JSON string or a JSON number.
type Answer string

func (a *Answer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Answer(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*a = Answer(n.String())
	return nil
}

type BookingRequest struct {
	PatientID Answer `json:"patient_id"`
	Tier      Answer `json:"tier"`
	DoctorID  Answer `json:"doctor_id"`
	Payment   Answer `json:"payment"`
	Insurer   Answer `json:"insurer"`
}

type BookingResponse struct {
	Success bool `json:"success"`
	*Result
}

// CreateBooking serves POST /bookings. Every outcome is reported in the
// body; the status code only distinguishes the broad failure kind.
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":   "invalid_request",
			"message": "Invalid JSON payload: " + err.Error(),
		})
		return
	}

	result := h.booker.Book(r.Context(), strings.TrimSpace(string(req.PatientID)), Choices{
		Tier:     string(req.Tier),
		DoctorID: string(req.DoctorID),
		Payment:  string(req.Payment),
		Insurer:  string(req.Insurer),
	})

	respondJSON(w, statusFor(result.Outcome), BookingResponse{Success: result.Confirmed(), Result: result})
}

func statusFor(o Outcome) int {
	switch o {
	case OutcomeConfirmed:
		return http.StatusCreated
	case OutcomeNotFound:
		return http.StatusNotFound
	case OutcomeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusUnprocessableEntity
	}
}

func respondJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}
