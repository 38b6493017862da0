//go:build integration

package db_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/allan6757/Hospitali/internal/db"
	"github.com/allan6757/Hospitali/internal/testutil"
)

func TestProvision_RepeatKeepsDataAndRules_Integration(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	schema := testutil.SetupTestSchema(t, conn)
	ctx := context.Background()

	patientID := testutil.InsertPatient(t, conn, schema, "Ziende Sana")
	otherID := testutil.InsertPatient(t, conn, schema, "Leta Coke")
	doctorID := testutil.InsertDoctor(t, conn, schema, "Dr. Dee", "General Practitioner")
	testutil.InsertReport(t, conn, schema, patientID, &doctorID, "Patient is recovering well from the flu.")
	testutil.InsertReport(t, conn, schema, otherID, &doctorID, "Follow-up in two weeks.")

	for i := 0; i < 2; i++ {
		if err := db.Provision(ctx, conn, schema); err != nil {
			t.Fatalf("Provision #%d on a provisioned schema failed: %v", i+2, err)
		}
	}

	if n := testutil.CountRows(t, conn, schema, db.PatientsTable); n != 2 {
		t.Errorf("Expected 2 patients after reprovisioning, got %d", n)
	}
	if n := testutil.CountRows(t, conn, schema, db.DoctorsTable); n != 1 {
		t.Errorf("Expected 1 doctor after reprovisioning, got %d", n)
	}
	if n := testutil.CountRows(t, conn, schema, db.ReportsTable); n != 2 {
		t.Errorf("Expected 2 reports after reprovisioning, got %d", n)
	}

	// deleting a doctor keeps their reports with no doctor reference
	if _, err := conn.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, db.Table(schema, db.DoctorsTable)), doctorID); err != nil {
		t.Fatalf("Failed to delete doctor: %v", err)
	}
	var stillLinked int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE doctor_id IS NOT NULL`, db.Table(schema, db.ReportsTable))
	if err := conn.QueryRowContext(ctx, query).Scan(&stillLinked); err != nil {
		t.Fatalf("Failed to count linked reports: %v", err)
	}
	if stillLinked != 0 {
		t.Errorf("Expected doctor references to be cleared, %d remain", stillLinked)
	}
	if n := testutil.CountRows(t, conn, schema, db.ReportsTable); n != 2 {
		t.Errorf("Expected reports to survive doctor deletion, got %d", n)
	}

	// deleting a patient removes only that patient's reports
	if _, err := conn.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, db.Table(schema, db.PatientsTable)), patientID); err != nil {
		t.Fatalf("Failed to delete patient: %v", err)
	}
	var remaining int64
	query = fmt.Sprintf(`SELECT patient_id FROM %s`, db.Table(schema, db.ReportsTable))
	if n := testutil.CountRows(t, conn, schema, db.ReportsTable); n != 1 {
		t.Fatalf("Expected one report left, got %d", n)
	}
	if err := conn.QueryRowContext(ctx, query).Scan(&remaining); err != nil {
		t.Fatalf("Failed to read remaining report: %v", err)
	}
	if remaining != otherID {
		t.Errorf("Expected remaining report to belong to patient %d, got %d", otherID, remaining)
	}
}
