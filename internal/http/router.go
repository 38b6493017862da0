package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/allan6757/Hospitali/internal/booking"
	"github.com/allan6757/Hospitali/internal/doctor"
	"github.com/allan6757/Hospitali/internal/patient"
	"github.com/allan6757/Hospitali/internal/report"
	"github.com/allan6757/Hospitali/internal/telemetry"
)

// Handlers groups the per-entity HTTP handlers mounted by the router.
type Handlers struct {
	Patients *patient.Handler
	Doctors  *doctor.Handler
	Reports  *report.Handler
	Bookings *booking.Handler
}

// SetupRouter initializes all routes for the application
func SetupRouter(h Handlers, metrics *telemetry.Metrics, serviceName string, allowedOrigins []string) *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware(serviceName))
	r.Use(MetricsMiddleware(metrics))
	r.Use(CORSMiddleware(allowedOrigins))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok", "service": serviceName})
	}).Methods("GET")

	// Patient routes
	r.HandleFunc("/patients", h.Patients.CreatePatient).Methods("POST", "OPTIONS")
	r.HandleFunc("/patients", h.Patients.ListPatients).Methods("GET")
	r.HandleFunc("/patients/{id}", h.Patients.GetPatient).Methods("GET")
	r.HandleFunc("/patients/{id}", h.Patients.DeletePatient).Methods("DELETE", "OPTIONS")
	r.HandleFunc("/patients/{id}/reports", h.Reports.ListPatientReports).Methods("GET")

	// Doctor routes
	r.HandleFunc("/doctors", h.Doctors.CreateDoctor).Methods("POST", "OPTIONS")
	r.HandleFunc("/doctors", h.Doctors.ListDoctors).Methods("GET")
	r.HandleFunc("/doctors/sample-specialists", h.Doctors.AddSampleSpecialists).Methods("POST", "OPTIONS")
	r.HandleFunc("/doctors/{id}", h.Doctors.GetDoctor).Methods("GET")

	// Report and booking routes
	r.HandleFunc("/reports", h.Reports.CreateReport).Methods("POST", "OPTIONS")
	r.HandleFunc("/bookings", h.Bookings.CreateBooking).Methods("POST", "OPTIONS")

	return r
}
