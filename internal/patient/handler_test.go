package patient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"github.com/allan6757/Hospitali/internal/apperr"
	"github.com/allan6757/Hospitali/internal/pagination"
)

// mockService implements ServiceInterface for testing
type mockService struct {
	createPatientFunc              func(ctx context.Context, req CreatePatientRequest) (*Patient, error)
	listPatientsFunc               func(ctx context.Context) ([]Patient, error)
	listPatientsWithPaginationFunc func(ctx context.Context, params pagination.Params) (*PaginatedPatientListResponse, error)
	findPatientFunc                func(ctx context.Context, id int64) (*Patient, error)
	deletePatientFunc              func(ctx context.Context, id int64) error
}

func (m *mockService) CreatePatient(ctx context.Context, req CreatePatientRequest) (*Patient, error) {
	if m.createPatientFunc != nil {
		return m.createPatientFunc(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) ListPatients(ctx context.Context) ([]Patient, error) {
	if m.listPatientsFunc != nil {
		return m.listPatientsFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) ListPatientsWithPagination(ctx context.Context, params pagination.Params) (*PaginatedPatientListResponse, error) {
	if m.listPatientsWithPaginationFunc != nil {
		return m.listPatientsWithPaginationFunc(ctx, params)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) FindPatient(ctx context.Context, id int64) (*Patient, error) {
	if m.findPatientFunc != nil {
		return m.findPatientFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) DeletePatient(ctx context.Context, id int64) error {
	if m.deletePatientFunc != nil {
		return m.deletePatientFunc(ctx, id)
	}
	return errors.New("not implemented")
}

func TestHandlerCreatePatient_Success(t *testing.T) {
	mockSvc := &mockService{
		createPatientFunc: func(ctx context.Context, req CreatePatientRequest) (*Patient, error) {
			return &Patient{ID: 1, Name: req.Name, PhoneNumber: req.PhoneNumber, Age: 35, Gender: req.Gender}, nil
		},
	}
	handler := NewHandler(mockSvc)

	body, _ := json.Marshal(CreatePatientRequest{Name: "Leta Coke", PhoneNumber: "0700000000", Age: "35", Gender: "Male"})
	req := httptest.NewRequest(http.MethodPost, "/patients", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	handler.CreatePatient(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", rr.Code)
	}

	var response PatientSuccessResponse
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !response.Success {
		t.Error("Expected success to be true")
	}
	if response.Patient == nil || response.Patient.Name != "Leta Coke" {
		t.Errorf("Unexpected patient in response: %+v", response.Patient)
	}
}

func TestHandlerCreatePatient_InvalidJSON(t *testing.T) {
	handler := NewHandler(&mockService{})

	req := httptest.NewRequest(http.MethodPost, "/patients", bytes.NewReader([]byte("{not json")))
	rr := httptest.NewRecorder()

	handler.CreatePatient(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
}

func TestHandlerCreatePatient_ValidationError(t *testing.T) {
	mockSvc := &mockService{
		createPatientFunc: func(ctx context.Context, req CreatePatientRequest) (*Patient, error) {
			return nil, apperr.Validation("age", reasonAgeInteger)
		},
	}
	handler := NewHandler(mockSvc)

	body, _ := json.Marshal(CreatePatientRequest{Name: "Leta", PhoneNumber: "07", Age: "abc", Gender: "Male"})
	req := httptest.NewRequest(http.MethodPost, "/patients", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	handler.CreatePatient(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", rr.Code)
	}

	var response map[string]interface{}
	json.NewDecoder(rr.Body).Decode(&response)
	if response["error"] != "validation_error" {
		t.Errorf("Expected error 'validation_error', got %v", response["error"])
	}
}

func TestHandlerListPatients_ReadsPagination(t *testing.T) {
	var got pagination.Params
	mockSvc := &mockService{
		listPatientsWithPaginationFunc: func(ctx context.Context, params pagination.Params) (*PaginatedPatientListResponse, error) {
			got = params
			return &PaginatedPatientListResponse{Success: true, Patients: []Patient{}}, nil
		},
	}
	handler := NewHandler(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/patients?page=3&limit=5", nil)
	rr := httptest.NewRecorder()

	handler.ListPatients(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if got.Page != 3 || got.Limit != 5 {
		t.Errorf("Expected page 3 limit 5, got %+v", got)
	}
}

func TestHandlerGetPatient(t *testing.T) {
	mockSvc := &mockService{
		findPatientFunc: func(ctx context.Context, id int64) (*Patient, error) {
			if id == 1 {
				return &Patient{ID: 1, Name: "Leta Coke"}, nil
			}
			return nil, nil
		},
	}
	handler := NewHandler(mockSvc)

	testCases := []struct {
		id     string
		status int
	}{
		{"1", http.StatusOK},
		{"2", http.StatusNotFound},
		{"abc", http.StatusBadRequest},
	}

	for _, tc := range testCases {
		req := httptest.NewRequest(http.MethodGet, "/patients/"+tc.id, nil)
		req = mux.SetURLVars(req, map[string]string{"id": tc.id})
		rr := httptest.NewRecorder()

		handler.GetPatient(rr, req)

		if rr.Code != tc.status {
			t.Errorf("GET /patients/%s: expected status %d, got %d", tc.id, tc.status, rr.Code)
		}
	}
}

func TestHandlerDeletePatient_NotFound(t *testing.T) {
	mockSvc := &mockService{
		deletePatientFunc: func(ctx context.Context, id int64) error {
			return errNotFound(id)
		},
	}
	handler := NewHandler(mockSvc)

	req := httptest.NewRequest(http.MethodDelete, "/patients/9", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "9"})
	rr := httptest.NewRecorder()

	handler.DeletePatient(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rr.Code)
	}
}

func TestHandlerDeletePatient_StoreUnavailable(t *testing.T) {
	mockSvc := &mockService{
		deletePatientFunc: func(ctx context.Context, id int64) error {
			return apperr.Unavailable("delete patient", errors.New("connection reset"))
		},
	}
	handler := NewHandler(mockSvc)

	req := httptest.NewRequest(http.MethodDelete, "/patients/1", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "1"})
	rr := httptest.NewRecorder()

	handler.DeletePatient(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", rr.Code)
	}
}
