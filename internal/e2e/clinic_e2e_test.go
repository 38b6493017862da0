//go:build integration

package e2e

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/allan6757/Hospitali/internal/db"
	"github.com/allan6757/Hospitali/internal/messaging"
	"github.com/allan6757/Hospitali/internal/testutil"
)

type idEnvelope struct {
	Patient struct {
		ID int64 `json:"id"`
	} `json:"patient"`
	Doctor struct {
		ID int64 `json:"id"`
	} `json:"doctor"`
}

func TestE2E_RegisterReportAndBook(t *testing.T) {
	ts := SetupE2ETest(t)
	client := ts.NewClient()

	resp := client.POST(t, "/patients", map[string]interface{}{
		"name": "Ziende Sana", "phone_number": "0768686868", "age": "28", "gender": "Female",
	})
	testutil.AssertStatusCode(t, resp, http.StatusCreated)
	var created idEnvelope
	testutil.DecodeJSON(t, resp, &created)
	patientID := created.Patient.ID

	resp = client.POST(t, "/doctors", map[string]interface{}{"name": "Dr. Dee", "specialty": "General Practitioner"})
	testutil.AssertStatusCode(t, resp, http.StatusCreated)
	testutil.DecodeJSON(t, resp, &created)
	doctorID := created.Doctor.ID

	resp = client.POST(t, "/reports", map[string]interface{}{
		"patient_id": patientID, "doctor_id": doctorID, "report_content": "Patient is recovering well from the flu.",
	})
	testutil.AssertStatusCode(t, resp, http.StatusCreated)
	resp.Body.Close()

	resp = client.GET(t, fmt.Sprintf("/patients/%d/reports", patientID))
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	var reports struct {
		Reports []struct {
			DoctorName string `json:"doctor_name"`
		} `json:"reports"`
	}
	testutil.DecodeJSON(t, resp, &reports)
	if len(reports.Reports) != 1 || reports.Reports[0].DoctorName != "Dr. Dee" {
		t.Errorf("Unexpected reports: %+v", reports.Reports)
	}

	resp = client.POST(t, "/bookings", map[string]interface{}{
		"patient_id": patientID, "tier": "1", "doctor_id": doctorID, "payment": "Insurance", "insurer": 2,
	})
	testutil.AssertStatusCode(t, resp, http.StatusCreated)
	var booked struct {
		Outcome   string `json:"outcome"`
		Message   string `json:"message"`
		Insurer   string `json:"insurer"`
		Reference string `json:"reference"`
	}
	testutil.DecodeJSON(t, resp, &booked)
	if booked.Outcome != "confirmed" || booked.Insurer != "NHIF" || booked.Reference == "" {
		t.Errorf("Unexpected booking: %+v", booked)
	}
	if booked.Message != "Appointment with Dr. Dee booked successfully!" {
		t.Errorf("Unexpected message: %s", booked.Message)
	}

	ts.MockPublisher.AssertEventCount(t, messaging.EventPatientCreated, 1)
	ts.MockPublisher.AssertEventCount(t, messaging.EventReportCreated, 1)
	ts.MockPublisher.AssertEventCount(t, messaging.EventBookingConfirmed, 1)
}

func TestE2E_RejectedInputLeavesStoreUnchanged(t *testing.T) {
	ts := SetupE2ETest(t)
	client := ts.NewClient()

	resp := client.POST(t, "/patients", map[string]interface{}{
		"name": "Leta Coke", "phone_number": "0700000000", "age": "abc", "gender": "Male",
	})
	testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
	resp.Body.Close()

	resp = client.POST(t, "/reports", map[string]interface{}{"patient_id": 999, "report_content": "Orphan."})
	testutil.AssertStatusCode(t, resp, http.StatusConflict)
	resp.Body.Close()

	resp = client.POST(t, "/bookings", map[string]interface{}{"patient_id": 999, "tier": "1"})
	testutil.AssertStatusCode(t, resp, http.StatusNotFound)
	resp.Body.Close()

	if n := testutil.CountRows(t, ts.DB, ts.Schema, db.PatientsTable); n != 0 {
		t.Errorf("Expected no patients, got %d", n)
	}
	if n := testutil.CountRows(t, ts.DB, ts.Schema, db.ReportsTable); n != 0 {
		t.Errorf("Expected no reports, got %d", n)
	}
}

func TestE2E_DeletePatientCascades(t *testing.T) {
	ts := SetupE2ETest(t)
	client := ts.NewClient()

	patientID := testutil.InsertPatient(t, ts.DB, ts.Schema, "Leta Coke")
	doctorID := testutil.InsertDoctor(t, ts.DB, ts.Schema, "Dr. Patelo", "Specialist")
	testutil.InsertReport(t, ts.DB, ts.Schema, patientID, &doctorID, "Patient has a rare neurological condition.")
	testutil.InsertReport(t, ts.DB, ts.Schema, patientID, &doctorID, "Follow-up.")

	resp := client.DELETE(t, fmt.Sprintf("/patients/%d", patientID))
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	resp.Body.Close()

	if n := testutil.CountRows(t, ts.DB, ts.Schema, db.ReportsTable); n != 0 {
		t.Errorf("Expected reports to be removed, got %d", n)
	}

	resp = client.GET(t, fmt.Sprintf("/patients/%d", patientID))
	testutil.AssertStatusCode(t, resp, http.StatusNotFound)
	resp.Body.Close()

	resp = client.DELETE(t, fmt.Sprintf("/patients/%d", patientID))
	testutil.AssertStatusCode(t, resp, http.StatusNotFound)
	resp.Body.Close()

	event := ts.MockPublisher.LastEventByKey(messaging.EventPatientDeleted)
	if event == nil {
		t.Fatal("Expected patient.deleted event")
	}
	deleted := event.EventData.(messaging.PatientDeletedEvent)
	if deleted.Data.ReportsRemoved != 2 {
		t.Errorf("Expected 2 reports removed, got %d", deleted.Data.ReportsRemoved)
	}
}

func TestE2E_SampleSpecialistsAndFilter(t *testing.T) {
	ts := SetupE2ETest(t)
	client := ts.NewClient()

	resp := client.POST(t, "/doctors/sample-specialists", nil)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)
	resp.Body.Close()

	resp = client.GET(t, "/doctors?specialty=Specialist")
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	var list struct {
		Total int `json:"total"`
	}
	testutil.DecodeJSON(t, resp, &list)
	if list.Total != 5 {
		t.Errorf("Expected 5 specialists, got %d", list.Total)
	}

	resp = client.GET(t, "/doctors?specialty=Specialists")
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	testutil.DecodeJSON(t, resp, &list)
	if list.Total != 0 {
		t.Errorf("Expected exact match only, got %d", list.Total)
	}
}
