package report

import (
	"context"

	"github.com/allan6757/Hospitali/internal/patient"
)

// ServiceInterface defines the contract for report business logic operations
type ServiceInterface interface {
	CreateReport(ctx context.Context, req CreateReportRequest) (*Report, error)
	ListForPatient(ctx context.Context, patientID int64) ([]PatientReport, error)
}

// PatientLookup resolves a patient id; *patient.Repository satisfies it.
type PatientLookup interface {
	Find(ctx context.Context, id int64) (*patient.Patient, error)
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
