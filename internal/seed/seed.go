// Package seed loads a YAML fixture of sample clinic data through the
// regular create operations.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/allan6757/Hospitali/internal/doctor"
	"github.com/allan6757/Hospitali/internal/patient"
	"github.com/allan6757/Hospitali/internal/report"
)

//go:embed fixture.yaml
var defaultFixture []byte

type Fixture struct {
	Patients []PatientEntry `yaml:"patients"`
	Doctors  []DoctorEntry  `yaml:"doctors"`
	Reports  []ReportEntry  `yaml:"reports"`
}

type PatientEntry struct {
	Name        string `yaml:"name"`
	PhoneNumber string `yaml:"phone_number"`
	Age         int    `yaml:"age"`
	Gender      string `yaml:"gender"`
}

type DoctorEntry struct {
	Name      string `yaml:"name"`
	Specialty string `yaml:"specialty"`
}

// ReportEntry refers to patients and doctors by 1-based position in the
// fixture. Doctor 0 means no doctor.
type ReportEntry struct {
	Patient int    `yaml:"patient"`
	Doctor  int    `yaml:"doctor"`
	Content string `yaml:"content"`
}

// Summary counts what a seeding run created.
type Summary struct {
	Patients int
	Doctors  int
	Reports  int
}

// Parse decodes a fixture and checks that every report points inside the
// patient and doctor lists.
func Parse(r io.Reader) (*Fixture, error) {
	var f Fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to decode fixture: %w", err)
	}

	for i, rep := range f.Reports {
		if rep.Patient < 1 || rep.Patient > len(f.Patients) {
			return nil, fmt.Errorf("report %d: patient %d is not in the fixture", i+1, rep.Patient)
		}
		if rep.Doctor < 0 || rep.Doctor > len(f.Doctors) {
			return nil, fmt.Errorf("report %d: doctor %d is not in the fixture", i+1, rep.Doctor)
		}
	}
	return &f, nil
}

// Load reads the fixture at path, or the built-in sample data when path is
// empty.
func Load(path string) (*Fixture, error) {
	if path == "" {
		return Parse(bytes.NewReader(defaultFixture))
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixture: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

type Seeder struct {
	patients patient.ServiceInterface
	doctors  doctor.ServiceInterface
	reports  report.ServiceInterface
	logger   zerolog.Logger
}

func NewSeeder(patients patient.ServiceInterface, doctors doctor.ServiceInterface, reports report.ServiceInterface, logger zerolog.Logger) *Seeder {
	return &Seeder{
		patients: patients,
		doctors:  doctors,
		reports:  reports,
		logger:   logger.With().Str("component", "seed").Logger(),
	}
}

// Run creates patients, then doctors, then reports. It stops at the first
// failure; rows created before it are kept.
func (s *Seeder) Run(ctx context.Context, f *Fixture) (Summary, error) {
	var summary Summary

	s.logger.Info().Int("count", len(f.Patients)).Msg("seeding patients")
	patientIDs := make([]int64, 0, len(f.Patients))
	for _, entry := range f.Patients {
		p, err := s.patients.CreatePatient(ctx, patient.CreatePatientRequest{
			Name:        entry.Name,
			PhoneNumber: entry.PhoneNumber,
			Age:         strconv.Itoa(entry.Age),
			Gender:      entry.Gender,
		})
		if err != nil {
			return summary, fmt.Errorf("failed to seed patient %q: %w", entry.Name, err)
		}
		patientIDs = append(patientIDs, p.ID)
		summary.Patients++
	}

	s.logger.Info().Int("count", len(f.Doctors)).Msg("seeding doctors")
	doctorIDs := make([]int64, 0, len(f.Doctors))
	for _, entry := range f.Doctors {
		d, err := s.doctors.CreateDoctor(ctx, doctor.CreateDoctorRequest{Name: entry.Name, Specialty: entry.Specialty})
		if err != nil {
			return summary, fmt.Errorf("failed to seed doctor %q: %w", entry.Name, err)
		}
		doctorIDs = append(doctorIDs, d.ID)
		summary.Doctors++
	}

	s.logger.Info().Int("count", len(f.Reports)).Msg("creating sample reports")
	for i, entry := range f.Reports {
		req := report.CreateReportRequest{
			PatientID: patientIDs[entry.Patient-1],
			Content:   entry.Content,
		}
		if entry.Doctor > 0 {
			id := doctorIDs[entry.Doctor-1]
			req.DoctorID = &id
		}
		if _, err := s.reports.CreateReport(ctx, req); err != nil {
			return summary, fmt.Errorf("failed to seed report %d: %w", i+1, err)
		}
		summary.Reports++
	}

	s.logger.Info().
		Int("patients", summary.Patients).
		Int("doctors", summary.Doctors).
		Int("reports", summary.Reports).
		Msg("database seeded")
	return summary, nil
}
