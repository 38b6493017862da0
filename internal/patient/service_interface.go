package patient

import (
	"context"

	"github.com/allan6757/Hospitali/internal/pagination"
)

// ServiceInterface defines the contract for patient business logic operations
type ServiceInterface interface {
	CreatePatient(ctx context.Context, req CreatePatientRequest) (*Patient, error)
	ListPatients(ctx context.Context) ([]Patient, error)
	ListPatientsWithPagination(ctx context.Context, params pagination.Params) (*PaginatedPatientListResponse, error)
	FindPatient(ctx context.Context, id int64) (*Patient, error)
	DeletePatient(ctx context.Context, id int64) error
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
