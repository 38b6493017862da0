package patient

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/allan6757/Hospitali/internal/db"
)

type Repository struct {
	db       *sql.DB
	patients string
	reports  string
}

func NewRepository(conn *sql.DB, schema string) *Repository {
	return &Repository{
		db:       conn,
		patients: db.Table(schema, db.PatientsTable),
		reports:  db.Table(schema, db.ReportsTable),
	}
}

const patientColumns = `id, name, phone_number, age, gender`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPatient(row rowScanner) (*Patient, error) {
	var p Patient
	var phoneNumber sql.NullString
	var age sql.NullInt64
	var gender sql.NullString

	if err := row.Scan(&p.ID, &p.Name, &phoneNumber, &age, &gender); err != nil {
		return nil, err
	}

	if phoneNumber.Valid {
		p.PhoneNumber = phoneNumber.String
	}
	if age.Valid {
		p.Age = int(age.Int64)
	}
	if gender.Valid {
		p.Gender = gender.String
	}
	return &p, nil
}

func (r *Repository) Create(ctx context.Context, p Patient) (*Patient, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, phone_number, age, gender)
		VALUES ($1, $2, $3, $4)
		RETURNING %s
	`, r.patients, patientColumns)

	created, err := scanPatient(r.db.QueryRowContext(ctx, query, p.Name, p.PhoneNumber, p.Age, p.Gender))
	if err != nil {
		return nil, db.Classify("failed to insert patient", err)
	}
	return created, nil
}

func (r *Repository) ListAll(ctx context.Context) ([]Patient, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY id`, patientColumns, r.patients)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, db.Classify("failed to query patients", err)
	}
	defer rows.Close()

	return collect(rows)
}

// ListPage returns one page of patients in identifier order plus the total count.
func (r *Repository) ListPage(ctx context.Context, limit, offset int) ([]Patient, int, error) {
	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, r.patients)
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, db.Classify("failed to count patients", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY id LIMIT $1 OFFSET $2`, patientColumns, r.patients)
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, db.Classify("failed to query patients", err)
	}
	defer rows.Close()

	patients, err := collect(rows)
	if err != nil {
		return nil, 0, err
	}
	return patients, total, nil
}

// Find returns nil without error when no patient has the id.
func (r *Repository) Find(ctx context.Context, id int64) (*Patient, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, patientColumns, r.patients)

	p, err := scanPatient(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, db.Classify("failed to query patient", err)
	}
	return p, nil
}

// Delete removes the patient; the schema cascades the removal to its
// reports. Both happen in one transaction. It returns how many reports
// went with the patient.
func (r *Repository) Delete(ctx context.Context, id int64) (int64, error) {
	var removed int64

	err := db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE patient_id = $1`, r.reports)
		if err := tx.QueryRowContext(ctx, countQuery, id).Scan(&removed); err != nil {
			return db.Classify("failed to count patient reports", err)
		}

		deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.patients)
		result, err := tx.ExecContext(ctx, deleteQuery, id)
		if err != nil {
			return db.Classify("failed to delete patient", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			return errNotFound(id)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

func collect(rows *sql.Rows) ([]Patient, error) {
	patients := []Patient{}
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan patient: %w", err)
		}
		patients = append(patients, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, db.Classify("error iterating patients", err)
	}
	return patients, nil
}
