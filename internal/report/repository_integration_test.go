//go:build integration

package report

import (
	"context"
	"testing"

	"github.com/allan6757/Hospitali/internal/apperr"
	"github.com/allan6757/Hospitali/internal/db"
	"github.com/allan6757/Hospitali/internal/doctor"
	"github.com/allan6757/Hospitali/internal/testutil"
)

func TestRepositoryCreate_UnknownPatientIsIntegrityFailure_Integration(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	schema := testutil.SetupTestSchema(t, conn)
	repo := NewRepository(conn, schema)

	_, err := repo.Create(context.Background(), Report{PatientID: 999, Content: "Orphan."})
	if !apperr.IsIntegrity(err) {
		t.Fatalf("Expected integrity failure, got: %v", err)
	}
	if n := testutil.CountRows(t, conn, schema, db.ReportsTable); n != 0 {
		t.Errorf("Expected no reports, got %d", n)
	}
}

func TestListForPatient_JoinOrderAndNullDoctor_Integration(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	schema := testutil.SetupTestSchema(t, conn)
	repo := NewRepository(conn, schema)
	ctx := context.Background()

	patientID := testutil.InsertPatient(t, conn, schema, "Leta Coke")
	patelo := testutil.InsertDoctor(t, conn, schema, "Dr. Patelo", doctor.Specialist)
	dee := testutil.InsertDoctor(t, conn, schema, "Dr. Dee", doctor.GeneralPractitioner)

	first, err := repo.Create(ctx, Report{PatientID: patientID, DoctorID: &patelo, Content: "First visit."})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := repo.Create(ctx, Report{PatientID: patientID, Content: "No doctor attached."}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	third, err := repo.Create(ctx, Report{PatientID: patientID, DoctorID: &dee, Content: "Second visit."})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	reports, err := repo.ListForPatient(ctx, patientID)
	if err != nil {
		t.Fatalf("ListForPatient failed: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("Expected 2 attributed reports, got %+v", reports)
	}
	if reports[0].ReportID != first.ID || reports[1].ReportID != third.ID {
		t.Errorf("Expected report id order, got %+v", reports)
	}
	if reports[0].DoctorName != "Dr. Patelo" || reports[0].DoctorSpecialty != doctor.Specialist {
		t.Errorf("Unexpected join result: %+v", reports[0])
	}
}

func TestListForPatient_DeletedDoctorExcludesReport_Integration(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	schema := testutil.SetupTestSchema(t, conn)
	repo := NewRepository(conn, schema)
	doctors := doctor.NewRepository(conn, schema)
	ctx := context.Background()

	patientID := testutil.InsertPatient(t, conn, schema, "Ziende Sana")
	doctorID := testutil.InsertDoctor(t, conn, schema, "Dr. Dee", doctor.GeneralPractitioner)
	testutil.InsertReport(t, conn, schema, patientID, &doctorID, "Patient is recovering well from the flu.")

	if err := doctors.Delete(ctx, doctorID); err != nil {
		t.Fatalf("Delete doctor failed: %v", err)
	}

	if n := testutil.CountRows(t, conn, schema, db.ReportsTable); n != 1 {
		t.Errorf("Expected the report to survive, got %d rows", n)
	}

	reports, err := repo.ListForPatient(ctx, patientID)
	if err != nil {
		t.Fatalf("ListForPatient failed: %v", err)
	}
	if len(reports) != 0 {
		t.Errorf("Expected nullified report to be excluded, got %+v", reports)
	}
}
