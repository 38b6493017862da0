package report

import "context"

// RepositoryInterface defines the contract for report data access
type RepositoryInterface interface {
	Create(ctx context.Context, r Report) (*Report, error)
	ListForPatient(ctx context.Context, patientID int64) ([]PatientReport, error)
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
