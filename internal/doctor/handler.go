package doctor

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/allan6757/Hospitali/internal/apperr"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

type DoctorSuccessResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Doctor  *Doctor `json:"doctor,omitempty"`
}

func (h *Handler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	var req CreateDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	d, err := h.service.CreateDoctor(r.Context(), req)
	if err != nil {
		respondFailure(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, DoctorSuccessResponse{
		Success: true,
		Message: "Doctor created successfully",
		Doctor:  d,
	})
}

// ListDoctors lists every doctor, or only those whose specialty equals the
// specialty query parameter.
func (h *Handler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	var (
		doctors []Doctor
		err     error
	)
	if specialty := r.URL.Query().Get("specialty"); specialty != "" {
		doctors, err = h.service.FindBySpecialty(r.Context(), specialty)
	} else {
		doctors, err = h.service.ListDoctors(r.Context())
	}
	if err != nil {
		respondFailure(w, err)
		return
	}

	respondJSON(w, http.StatusOK, DoctorListResponse{Success: true, Doctors: doctors, Total: len(doctors)})
}

func (h *Handler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_id", "Doctor ID must be a number")
		return
	}

	d, err := h.service.FindDoctor(r.Context(), id)
	if err != nil {
		respondFailure(w, err)
		return
	}
	if d == nil {
		respondError(w, http.StatusNotFound, "not_found", "Doctor not found")
		return
	}

	respondJSON(w, http.StatusOK, DoctorSuccessResponse{Success: true, Message: "Doctor found", Doctor: d})
}

func (h *Handler) AddSampleSpecialists(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.service.AddSampleSpecialists(r.Context())
	if err != nil {
		respondFailure(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, DoctorListResponse{Success: true, Doctors: doctors, Total: len(doctors)})
}

func respondJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

func respondFailure(w http.ResponseWriter, err error) {
	respondError(w, apperr.HTTPStatus(err), apperr.Code(err), err.Error())
}

func respondError(w http.ResponseWriter, statusCode int, errorType, message string) {
	respondJSON(w, statusCode, map[string]interface{}{
		"error":   errorType,
		"message": message,
	})
}
