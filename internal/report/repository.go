package report

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/allan6757/Hospitali/internal/db"
)

type Repository struct {
	db      *sql.DB
	reports string
	doctors string
}

func NewRepository(conn *sql.DB, schema string) *Repository {
	return &Repository{
		db:      conn,
		reports: db.Table(schema, db.ReportsTable),
		doctors: db.Table(schema, db.DoctorsTable),
	}
}

// Create stores the report as given. References are not checked here; the
// store rejects a missing patient or doctor with an integrity error.
func (r *Repository) Create(ctx context.Context, rep Report) (*Report, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (patient_id, doctor_id, report_content)
		VALUES ($1, $2, $3)
		RETURNING id, patient_id, doctor_id, report_content
	`, r.reports)

	var doctorID sql.NullInt64
	if rep.DoctorID != nil {
		doctorID = sql.NullInt64{Int64: *rep.DoctorID, Valid: true}
	}

	var created Report
	var storedDoctor sql.NullInt64
	err := r.db.QueryRowContext(ctx, query, rep.PatientID, doctorID, rep.Content).
		Scan(&created.ID, &created.PatientID, &storedDoctor, &created.Content)
	if err != nil {
		return nil, db.Classify("failed to insert report", err)
	}

	if storedDoctor.Valid {
		id := storedDoctor.Int64
		created.DoctorID = &id
	}
	return &created, nil
}

// ListForPatient returns the patient's reports joined with their doctor,
// in report id order. Reports without a doctor are left out.
func (r *Repository) ListForPatient(ctx context.Context, patientID int64) ([]PatientReport, error) {
	query := fmt.Sprintf(`
		SELECT mr.id, d.name, d.specialty, mr.report_content
		FROM %s mr
		INNER JOIN %s d ON d.id = mr.doctor_id
		WHERE mr.patient_id = $1
		ORDER BY mr.id
	`, r.reports, r.doctors)

	rows, err := r.db.QueryContext(ctx, query, patientID)
	if err != nil {
		return nil, db.Classify("failed to query patient reports", err)
	}
	defer rows.Close()

	reports := []PatientReport{}
	for rows.Next() {
		var pr PatientReport
		if err := rows.Scan(&pr.ReportID, &pr.DoctorName, &pr.DoctorSpecialty, &pr.Content); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, pr)
	}

	if err := rows.Err(); err != nil {
		return nil, db.Classify("error iterating reports", err)
	}
	return reports, nil
}
