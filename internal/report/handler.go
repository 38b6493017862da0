package report

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

type ReportSuccessResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Report  *Report `json:"report,omitempty"`
}

func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	var req CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	rep, err := h.service.CreateReport(r.Context(), req)
	if err != nil {
		respondFailure(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, ReportSuccessResponse{
		Success: true,
		Message: "Report created successfully",
		Report:  rep,
	})
}

// ListPatientReports serves GET /patients/{id}/reports.
func (h *Handler) ListPatientReports(w http.ResponseWriter, r *http.Request) {
	patientID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_id", "Patient ID must be a number")
		return
	}

	reports, err := h.service.ListForPatient(r.Context(), patientID)
	if err != nil {
		respondFailure(w, err)
		return
	}

	respondJSON(w, http.StatusOK, PatientReportListResponse{
		Success:   true,
		PatientID: patientID,
		Reports:   reports,
	})
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
