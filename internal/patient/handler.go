package patient

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/allan6757/Hospitali/internal/apperr"
	"github.com/allan6757/Hospitali/internal/pagination"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

type PatientSuccessResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Patient *Patient `json:"patient,omitempty"`
}

func (h *Handler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	var req CreatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	p, err := h.service.CreatePatient(r.Context(), req)
	if err != nil {
		respondFailure(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, PatientSuccessResponse{
		Success: true,
		Message: "Patient created successfully",
		Patient: p,
	})
}

func (h *Handler) ListPatients(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromQuery(r.URL.Query())

	response, err := h.service.ListPatientsWithPagination(r.Context(), params)
	if err != nil {
		respondFailure(w, err)
		return
	}

	respondJSON(w, http.StatusOK, response)
}

func (h *Handler) GetPatient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	p, err := h.service.FindPatient(r.Context(), id)
	if err != nil {
		respondFailure(w, err)
		return
	}
	if p == nil {
		respondError(w, http.StatusNotFound, "not_found", "Patient not found")
		return
	}

	respondJSON(w, http.StatusOK, PatientSuccessResponse{Success: true, Message: "Patient found", Patient: p})
}

func (h *Handler) DeletePatient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeletePatient(r.Context(), id); err != nil {
		respondFailure(w, err)
		return
	}

	respondJSON(w, http.StatusOK, PatientSuccessResponse{
		Success: true,
		Message: "Patient and their reports deleted successfully",
	})
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_id", "Patient ID must be a number")
		return 0, false
	}
	return id, true
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
