package doctor

import "context"

// ServiceInterface defines the contract for doctor business logic operations
type ServiceInterface interface {
	CreateDoctor(ctx context.Context, req CreateDoctorRequest) (*Doctor, error)
	ListDoctors(ctx context.Context) ([]Doctor, error)
	FindDoctor(ctx context.Context, id int64) (*Doctor, error)
	FindBySpecialty(ctx context.Context, specialty string) ([]Doctor, error)
	AddSampleSpecialists(ctx context.Context) ([]Doctor, error)
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
