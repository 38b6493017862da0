package doctor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/allan6757/Hospitali/internal/db"
)

type Repository struct {
	db      *sql.DB
	doctors string
}

func NewRepository(conn *sql.DB, schema string) *Repository {
	return &Repository{
		db:      conn,
		doctors: db.Table(schema, db.DoctorsTable),
	}
}

const doctorColumns = `id, name, specialty`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDoctor(row rowScanner) (*Doctor, error) {
	var d Doctor
	if err := row.Scan(&d.ID, &d.Name, &d.Specialty); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *Repository) Create(ctx context.Context, d Doctor) (*Doctor, error) {
	return r.insert(ctx, r.db, d)
}

// CreateMany inserts all doctors in one transaction; either every row is
// stored or none is.
func (r *Repository) CreateMany(ctx context.Context, doctors []Doctor) ([]Doctor, error) {
	created := make([]Doctor, 0, len(doctors))

	err := db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		for _, d := range doctors {
			c, err := r.insert(ctx, tx, d)
			if err != nil {
				return err
			}
			created = append(created, *c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *Repository) insert(ctx context.Context, q db.Querier, d Doctor) (*Doctor, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, specialty)
		VALUES ($1, $2)
		RETURNING %s
	`, r.doctors, doctorColumns)

	created, err := scanDoctor(q.QueryRowContext(ctx, query, d.Name, d.Specialty))
	if err != nil {
		return nil, db.Classify("failed to insert doctor", err)
	}
	return created, nil
}

func (r *Repository) ListAll(ctx context.Context) ([]Doctor, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY id`, doctorColumns, r.doctors)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, db.Classify("failed to query doctors", err)
	}
	defer rows.Close()

	return collect(rows)
}

// Find returns nil without error when no doctor has the id.
func (r *Repository) Find(ctx context.Context, id int64) (*Doctor, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, doctorColumns, r.doctors)

	d, err := scanDoctor(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, db.Classify("failed to query doctor", err)
	}
	return d, nil
}

// FindBySpecialty matches the specialty exactly, case included.
func (r *Repository) FindBySpecialty(ctx context.Context, specialty string) ([]Doctor, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE specialty = $1 ORDER BY id`, doctorColumns, r.doctors)

	rows, err := r.db.QueryContext(ctx, query, specialty)
	if err != nil {
		return nil, db.Classify("failed to query doctors by specialty", err)
	}
	defer rows.Close()

	return collect(rows)
}

// Delete removes a doctor. Reports written by the doctor keep existing with
// no doctor reference.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.doctors)

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return db.Classify("failed to delete doctor", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return errNotFound(id)
	}
	return nil
}

func collect(rows *sql.Rows) ([]Doctor, error) {
	doctors := []Doctor{}
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan doctor: %w", err)
		}
		doctors = append(doctors, *d)
	}

	if err := rows.Err(); err != nil {
		return nil, db.Classify("error iterating doctors", err)
	}
	return doctors, nil
}
