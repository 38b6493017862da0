package doctor

import "context"

// RepositoryInterface defines the contract for doctor data access
type RepositoryInterface interface {
	Create(ctx context.Context, d Doctor) (*Doctor, error)
	CreateMany(ctx context.Context, doctors []Doctor) ([]Doctor, error)
	ListAll(ctx context.Context) ([]Doctor, error)
	Find(ctx context.Context, id int64) (*Doctor, error)
	FindBySpecialty(ctx context.Context, specialty string) ([]Doctor, error)
	Delete(ctx context.Context, id int64) error
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
