package patient

import "context"

// RepositoryInterface defines the contract for patient data access
type RepositoryInterface interface {
	Create(ctx context.Context, p Patient) (*Patient, error)
	ListAll(ctx context.Context) ([]Patient, error)
	ListPage(ctx context.Context, limit, offset int) ([]Patient, int, error)
	Find(ctx context.Context, id int64) (*Patient, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
