// Package shell is the interactive text menu. It reads answers line by line
// and forwards them to the services; it makes no decisions of its own.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/allan6757/Hospitali/internal/apperr"
	"github.com/allan6757/Hospitali/internal/booking"
	"github.com/allan6757/Hospitali/internal/doctor"
	"github.com/allan6757/Hospitali/internal/patient"
	"github.com/allan6757/Hospitali/internal/report"
)

const banner = "WeLcoME TO tHe BaLLeRs HeAlTh CaRe SyStEm"

var errInputClosed = errors.New("input closed")

// SessionStarter is implemented by *booking.Workflow.
type SessionStarter interface {
	NewSession() *booking.Session
}

type Shell struct {
	in     *bufio.Scanner
	out    io.Writer
	logger zerolog.Logger

	patients patient.ServiceInterface
	doctors  doctor.ServiceInterface
	reports  report.ServiceInterface
	bookings SessionStarter
}

func New(in io.Reader, out io.Writer, patients patient.ServiceInterface, doctors doctor.ServiceInterface, reports report.ServiceInterface, bookings SessionStarter, logger zerolog.Logger) *Shell {
	return &Shell{
		in:       bufio.NewScanner(in),
		out:      out,
		logger:   logger.With().Str("component", "shell").Logger(),
		patients: patients,
		doctors:  doctors,
		reports:  reports,
		bookings: bookings,
	}
}

// Run shows the main menu until the user exits or the input ends.
func (s *Shell) Run(ctx context.Context) error {
	for {
		s.println("\n" + banner)
		s.println("1. Log In / Fill Your Details")
		s.println("2. Book an Appointment")
		s.println("3. View Medical Reports")
		s.println("4. Manage Doctors (Admin)")
		s.println("5. Exit")

		choice, err := s.ask("Enter your choice: ")
		if err != nil {
			return s.closed(err)
		}

		switch choice {
		case "1":
			err = s.registerPatient(ctx)
		case "2":
			err = s.bookAppointment(ctx)
		case "3":
			err = s.viewReports(ctx)
		case "4":
			err = s.manageDoctors(ctx)
		case "5":
			s.println("Exiting application. Goodbye!👋")
			return nil
		default:
			s.println("Invalid choice. Please try again.")
		}
		if err != nil {
			return s.closed(err)
		}
	}
}

func (s *Shell) manageDoctors(ctx context.Context) error {
	for {
		s.println("\n--- Doctor Management ---")
		s.println("1. Create new doctor")
		s.println("2. View all doctors")
		s.println("3. Add specialists")
		s.println("4. Back to main menu")

		choice, err := s.ask("Enter your choice: ")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = s.createDoctor(ctx)
		case "2":
			s.listDoctors(ctx)
		case "3":
			s.addSpecialists(ctx)
		case "4":
			return nil
		default:
			s.println("Invalid choice. Please try again.")
		}
		if err != nil {
			return err
		}
	}
}

func (s *Shell) registerPatient(ctx context.Context) error {
	s.println("\n--- Log In / Fill Your Details ---")
	s.println("Please enter your details to create a user account.")

	var req patient.CreatePatientRequest
	for _, field := range []struct {
		prompt string
		dest   *string
	}{
		{"Username: ", &req.Name},
		{"Phone Number: ", &req.PhoneNumber},
		{"Age: ", &req.Age},
		{"Gender: ", &req.Gender},
	} {
		answer, err := s.ask(field.prompt)
		if err != nil {
			return err
		}
		*field.dest = answer
	}

	p, err := s.patients.CreatePatient(ctx, req)
	if err != nil {
		var ve *apperr.ValidationError
		switch {
		case errors.As(err, &ve) && ve.Field == "age" && strings.TrimSpace(req.Age) != "":
			s.println("Error: Age must be a number.")
		case errors.As(err, &ve):
			s.println("Error: All fields are required.")
		default:
			s.storeError(err)
		}
		return nil
	}

	s.printf("User '%s' created successfully. Your User ID is %d.\n", p.Name, p.ID)
	return nil
}

func (s *Shell) viewReports(ctx context.Context) error {
	answer, err := s.ask("Enter your user ID to view reports: ")
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(answer, 10, 64)
	if err != nil {
		s.println("Error: Invalid user ID. Please enter a number.")
		return nil
	}

	reports, err := s.reports.ListForPatient(ctx, id)
	switch {
	case apperr.IsNotFound(err):
		s.println("User not found.")
		return nil
	case err != nil:
		s.storeError(err)
		return nil
	case len(reports) == 0:
		s.println("You have no medical reports yet.")
		return nil
	}

	s.println("\n--- Your Medical Reports ---")
	for _, r := range reports {
		s.printf("Report ID: %d\n", r.ReportID)
		s.printf("Doctor: %s (%s)\n", r.DoctorName, r.DoctorSpecialty)
		s.printf("Report Content: %s\n\n", r.Content)
	}
	return nil
}

func (s *Shell) bookAppointment(ctx context.Context) error {
	session := s.bookings.NewSession()

	for {
		prompt := session.Prompt()
		if prompt.Title != "" {
			s.println("\n" + prompt.Title)
		}
		for _, option := range prompt.Options {
			s.println(option)
		}

		answer, err := s.ask(prompt.Text)
		if err != nil {
			return err
		}

		result := session.Advance(ctx, answer)
		if result == nil {
			continue
		}

		if result.Summary != "" {
			s.println("\n" + result.Summary)
		}
		s.println(result.Message)
		if result.Confirmed() {
			s.printf("Booking reference: %s\n", result.Reference)
		}
		return nil
	}
}

func (s *Shell) createDoctor(ctx context.Context) error {
	s.println("\nEnter doctor details:")

	name, err := s.ask("Name: ")
	if err != nil {
		return err
	}
	specialty, err := s.ask("Specialty (e.g., 'Specialist' or 'General Practitioner'): ")
	if err != nil {
		return err
	}

	d, err := s.doctors.CreateDoctor(ctx, doctor.CreateDoctorRequest{Name: name, Specialty: specialty})
	if apperr.IsValidation(err) {
		s.println("Error: Name and specialty are required.")
		return nil
	}
	if err != nil {
		s.storeError(err)
		return nil
	}

	s.printf("Doctor '%s' created successfully.\n", d.Name)
	return nil
}

func (s *Shell) listDoctors(ctx context.Context) {
	doctors, err := s.doctors.ListDoctors(ctx)
	if err != nil {
		s.storeError(err)
		return
	}
	if len(doctors) == 0 {
		s.println("No doctors found.")
		return
	}

	s.println("\n--- All Doctors ---")
	for _, d := range doctors {
		s.printf("ID: %d, Name: %s, Specialty: %s\n", d.ID, d.Name, d.Specialty)
	}
}

func (s *Shell) addSpecialists(ctx context.Context) {
	added, err := s.doctors.AddSampleSpecialists(ctx)
	if err != nil {
		s.storeError(err)
		return
	}
	s.printf("%d sample specialists have been added.\n", len(added))
}

func (s *Shell) storeError(err error) {
	s.logger.Error().Err(err).Msg("operation failed")
	s.printf("Error: %v\n", err)
}

// ask prints the prompt and returns the trimmed answer.
func (s *Shell) ask(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", errInputClosed
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *Shell) closed(err error) error {
	if errors.Is(err, errInputClosed) {
		s.println("")
		return nil
	}
	return err
}

func (s *Shell) println(line string) {
	fmt.Fprintln(s.out, line)
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}
