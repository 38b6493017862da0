package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/allan6757/Hospitali/internal/db"
)

const defaultTestDSN = "host=localhost port=5432 user=postgres password=postgres dbname=hospitali_test sslmode=disable"

// SetupTestDB connects to the test database named by TEST_DATABASE_DSN,
// falling back to a local hospitali_test database.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = defaultTestDSN
	}

	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		t.Fatalf("Failed to ping test database: %v", err)
	}

	t.Cleanup(func() { conn.Close() })
	return conn
}

// SetupTestSchema provisions a throwaway clinic schema and drops it when
// the test ends.
func SetupTestSchema(t *testing.T, conn *sql.DB) string {
	t.Helper()

	schema := "clinic_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	if err := db.Provision(context.Background(), conn, schema); err != nil {
		t.Fatalf("Failed to provision schema %s: %v", schema, err)
	}

	t.Cleanup(func() {
		if err := db.Drop(context.Background(), conn, schema); err != nil {
			t.Logf("Warning: failed to drop schema %s: %v", schema, err)
		}
	})
	return schema
}

// InsertPatient adds a patient row directly and returns its id.
func InsertPatient(t *testing.T, conn *sql.DB, schema, name string) int64 {
	t.Helper()

	query := fmt.Sprintf(`INSERT INTO %s (name, phone_number, age, gender) VALUES ($1, '0700000000', 30, 'Female') RETURNING id`,
		db.Table(schema, db.PatientsTable))

	var id int64
	if err := conn.QueryRow(query, name).Scan(&id); err != nil {
		t.Fatalf("Failed to insert test patient: %v", err)
	}
	return id
}

// InsertDoctor adds a doctor row directly and returns its id.
func InsertDoctor(t *testing.T, conn *sql.DB, schema, name, specialty string) int64 {
	t.Helper()

	query := fmt.Sprintf(`INSERT INTO %s (name, specialty) VALUES ($1, $2) RETURNING id`,
		db.Table(schema, db.DoctorsTable))

	var id int64
	if err := conn.QueryRow(query, name, specialty).Scan(&id); err != nil {
		t.Fatalf("Failed to insert test doctor: %v", err)
	}
	return id
}

// InsertReport adds a report row directly. A nil doctorID stores NULL.
func InsertReport(t *testing.T, conn *sql.DB, schema string, patientID int64, doctorID *int64, content string) int64 {
	t.Helper()

	query := fmt.Sprintf(`INSERT INTO %s (patient_id, doctor_id, report_content) VALUES ($1, $2, $3) RETURNING id`,
		db.Table(schema, db.ReportsTable))

	var doctor sql.NullInt64
	if doctorID != nil {
		doctor = sql.NullInt64{Int64: *doctorID, Valid: true}
	}

	var id int64
	if err := conn.QueryRow(query, patientID, doctor, content).Scan(&id); err != nil {
		t.Fatalf("Failed to insert test report: %v", err)
	}
	return id
}

// CountRows returns the number of rows in one clinic relation.
func CountRows(t *testing.T, conn *sql.DB, schema, table string) int {
	t.Helper()

	var n int
	if err := conn.QueryRow(fmt.Sprintf(`SELECT COUNT(*) FROM %s`, db.Table(schema, table))).Scan(&n); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}
