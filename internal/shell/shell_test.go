package shell

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/allan6757/Hospitali/internal/apperr"
	"github.com/allan6757/Hospitali/internal/booking"
	"github.com/allan6757/Hospitali/internal/doctor"
	"github.com/allan6757/Hospitali/internal/pagination"
	"github.com/allan6757/Hospitali/internal/patient"
	"github.com/allan6757/Hospitali/internal/report"
)

// clinic is an in-memory stand-in for the three services and the booking
// lookups.
type clinic struct {
	patients []patient.Patient
	doctors  []doctor.Doctor
	reports  map[int64][]report.PatientReport
	err      error
}

func (c *clinic) CreatePatient(ctx context.Context, req patient.CreatePatientRequest) (*patient.Patient, error) {
	if req.Name == "" || req.PhoneNumber == "" || req.Age == "" || req.Gender == "" {
		return nil, apperr.Validation("name", "is required")
	}
	if req.Age == "abc" {
		return nil, apperr.Validation("age", "must be a non-negative integer")
	}
	p := patient.Patient{ID: int64(len(c.patients) + 1), Name: req.Name, PhoneNumber: req.PhoneNumber, Gender: req.Gender}
	c.patients = append(c.patients, p)
	return &p, nil
}

func (c *clinic) ListPatients(ctx context.Context) ([]patient.Patient, error) {
	return c.patients, nil
}

func (c *clinic) ListPatientsWithPagination(ctx context.Context, params pagination.Params) (*patient.PaginatedPatientListResponse, error) {
	return nil, errors.New("not implemented")
}

func (c *clinic) FindPatient(ctx context.Context, id int64) (*patient.Patient, error) {
	return c.Find(ctx, id)
}

func (c *clinic) DeletePatient(ctx context.Context, id int64) error {
	return errors.New("not implemented")
}

func (c *clinic) Find(ctx context.Context, id int64) (*patient.Patient, error) {
	for _, p := range c.patients {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, nil
}

func (c *clinic) CreateDoctor(ctx context.Context, req doctor.CreateDoctorRequest) (*doctor.Doctor, error) {
	if req.Name == "" || req.Specialty == "" {
		return nil, apperr.Validation("name", "is required")
	}
	d := doctor.Doctor{ID: int64(len(c.doctors) + 1), Name: req.Name, Specialty: req.Specialty}
	c.doctors = append(c.doctors, d)
	return &d, nil
}

func (c *clinic) ListDoctors(ctx context.Context) ([]doctor.Doctor, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.doctors, nil
}

func (c *clinic) FindDoctor(ctx context.Context, id int64) (*doctor.Doctor, error) {
	for _, d := range c.doctors {
		if d.ID == id {
			return &d, nil
		}
	}
	return nil, nil
}

func (c *clinic) FindBySpecialty(ctx context.Context, specialty string) ([]doctor.Doctor, error) {
	var out []doctor.Doctor
	for _, d := range c.doctors {
		if d.Specialty == specialty {
			out = append(out, d)
		}
	}
	return out, nil
}

func (c *clinic) AddSampleSpecialists(ctx context.Context) ([]doctor.Doctor, error) {
	var added []doctor.Doctor
	for _, name := range doctor.SampleSpecialists {
		d, _ := c.CreateDoctor(ctx, doctor.CreateDoctorRequest{Name: name, Specialty: doctor.Specialist})
		added = append(added, *d)
	}
	return added, nil
}

func (c *clinic) CreateReport(ctx context.Context, req report.CreateReportRequest) (*report.Report, error) {
	return nil, errors.New("not implemented")
}

func (c *clinic) ListForPatient(ctx context.Context, patientID int64) ([]report.PatientReport, error) {
	if p, _ := c.Find(ctx, patientID); p == nil {
		return nil, apperr.NotFound("patient", patientID)
	}
	return c.reports[patientID], nil
}

// doctorLookup adapts clinic to booking.DoctorFinder.
type doctorLookup struct{ *clinic }

func (d doctorLookup) Find(ctx context.Context, id int64) (*doctor.Doctor, error) {
	return d.FindDoctor(ctx, id)
}

func run(t *testing.T, c *clinic, input string) string {
	t.Helper()

	var out bytes.Buffer
	workflow := booking.NewWorkflow(c, doctorLookup{c}, nil, nil, zerolog.Nop())
	sh := New(strings.NewReader(input), &out, c, c, c, workflow, zerolog.Nop())

	if err := sh.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	return out.String()
}

func assertContains(t *testing.T, output string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q\n--- output ---\n%s", want, output)
		}
	}
}

func TestRun_ExitAndEndOfInput(t *testing.T) {
	out := run(t, &clinic{}, "5\n")
	assertContains(t, out, banner, "Exiting application. Goodbye!")

	// input ending without "5" stops cleanly
	out = run(t, &clinic{}, "9\n")
	assertContains(t, out, "Invalid choice. Please try again.")
}

func TestRun_RegisterPatient(t *testing.T) {
	c := &clinic{}
	out := run(t, c, "1\nLeta Coke\n0700000000\n35\nMale\n1\nBad Age\n0700\nabc\nMale\n1\n\n\n\n\n5\n")

	assertContains(t, out,
		"User 'Leta Coke' created successfully. Your User ID is 1.",
		"Error: Age must be a number.",
		"Error: All fields are required.",
	)
	if len(c.patients) != 1 {
		t.Errorf("Expected 1 patient, got %d", len(c.patients))
	}
}

func TestRun_BookAppointmentWithInsurance(t *testing.T) {
	c := &clinic{
		patients: []patient.Patient{{ID: 1, Name: "Ziende Sana"}},
		doctors:  []doctor.Doctor{{ID: 1, Name: "Dr. Dee", Specialty: doctor.GeneralPractitioner}},
	}

	out := run(t, c, "2\n1\n1\n1\n2\n2\n5\n")

	assertContains(t, out,
		"Available General Practitioners:",
		"ID: 1, Name: Dr. Dee",
		"1. SHA",
		"Thank you. Your insurance with NHIF will be processed.",
		"Appointment with Dr. Dee booked successfully!",
		"Booking reference: ",
	)
}

func TestRun_BookAppointmentUnknownPatient(t *testing.T) {
	out := run(t, &clinic{}, "2\n42\n5\n")

	assertContains(t, out, "User not found. Please log in first by selecting '1' from the main menu.")
	if strings.Contains(out, "Choose your mode of treatment") {
		t.Error("Booking must stop after an unknown patient")
	}
}

func TestRun_ViewReports(t *testing.T) {
	c := &clinic{
		patients: []patient.Patient{{ID: 1, Name: "Leta Coke"}, {ID: 2, Name: "Ziende Sana"}},
		reports: map[int64][]report.PatientReport{
			1: {{ReportID: 1, DoctorName: "Dr. Patelo", DoctorSpecialty: doctor.Specialist, Content: "Patient has a rare neurological condition."}},
		},
	}

	out := run(t, c, "3\n1\n3\n2\n3\n9\n3\nx\n5\n")

	assertContains(t, out,
		"Report ID: 1",
		"Doctor: Dr. Patelo (Specialist)",
		"Report Content: Patient has a rare neurological condition.",
		"You have no medical reports yet.",
		"User not found.",
		"Error: Invalid user ID. Please enter a number.",
	)
}

func TestRun_ManageDoctors(t *testing.T) {
	c := &clinic{}
	out := run(t, c, "4\n2\n1\nDr. Patelo\nSpecialist\n1\n\n\n3\n2\n7\n4\n5\n")

	assertContains(t, out,
		"--- Doctor Management ---",
		"No doctors found.",
		"Doctor 'Dr. Patelo' created successfully.",
		"Error: Name and specialty are required.",
		"5 sample specialists have been added.",
		"ID: 6, Name: Dr. Patelo, Specialty: Specialist",
		"Invalid choice. Please try again.",
	)
	if len(c.doctors) != 6 {
		t.Errorf("Expected 6 doctors, got %d", len(c.doctors))
	}
}

func TestRun_StoreErrorIsPrinted(t *testing.T) {
	c := &clinic{err: apperr.Unavailable("query doctors", errors.New("connection refused"))}
	out := run(t, c, "4\n2\n4\n5\n")

	assertContains(t, out, "Error: query doctors: store unavailable")
}
