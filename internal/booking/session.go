package booking

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/allan6757/Hospitali/internal/doctor"
	"github.com/allan6757/Hospitali/internal/patient"
)

// Session is one booking conversation, advanced one answer at a time. It
// is not safe for concurrent use.
type Session struct {
	w *Workflow

	state   State
	patient *patient.Patient
	tier    string
	doctors []doctor.Doctor
	doctor  *doctor.Doctor
	payment string
	summary string
	result  *Result
}

func (s *Session) State() State { return s.state }

func (s *Session) Done() bool { return s.result != nil }

// Result is nil until the conversation has ended.
func (s *Session) Result() *Result { return s.result }

// Prompt describes what the session is waiting for.
func (s *Session) Prompt() Prompt {
	switch s.state {
	case StateIdentify:
		return Prompt{Title: "--- Book an Appointment ---", Text: "Enter your User ID to proceed: "}
	case StateSelectTier:
		return Prompt{
			Title:   "Choose your mode of treatment:",
			Options: []string{"1. General Doctor", "2. Specialist"},
			Text:    "Enter your choice (1 or 2): ",
		}
	case StateSelectDoctor:
		options := make([]string, 0, len(s.doctors))
		for _, d := range s.doctors {
			options = append(options, fmt.Sprintf("ID: %d, Name: %s", d.ID, d.Name))
		}
		return Prompt{
			Title:   fmt.Sprintf("Available %ss:", s.tier),
			Options: options,
			Text:    "Enter the ID of the doctor you want to see: ",
		}
	case StateSelectPayment:
		return Prompt{
			Title:   "Choose your payment option:",
			Options: []string{"1. Cash", "2. Insurance"},
			Text:    "Enter your choice (1 or 2): ",
		}
	case StateSelectInsurer:
		options := make([]string, 0, len(Insurers))
		for i, name := range Insurers {
			options = append(options, fmt.Sprintf("%d. %s", i+1, name))
		}
		return Prompt{
			Title:   "--- Insurance Companies ---",
			Options: options,
			Text:    "Enter the number for your insurance provider: ",
		}
	default:
		return Prompt{}
	}
}

// Advance consumes one answer. It returns the result once the conversation
// has ended and nil while more input is needed. Advancing a finished
// session returns its result unchanged.
func (s *Session) Advance(ctx context.Context, input string) *Result {
	if s.result != nil {
		return s.result
	}

	ctx, span := tracer.Start(ctx, "booking.advance")
	defer span.End()
	span.SetAttributes(attribute.String("booking.state", s.state.String()))

	input = strings.TrimSpace(input)
	switch s.state {
	case StateIdentify:
		s.identify(ctx, input)
	case StateSelectTier:
		s.selectTier(ctx, input)
	case StateSelectDoctor:
		s.selectDoctor(ctx, input)
	case StateSelectPayment:
		s.selectPayment(ctx, input)
	case StateSelectInsurer:
		s.selectInsurer(ctx, input)
	}
	return s.result
}

func (s *Session) identify(ctx context.Context, input string) {
	id, err := strconv.ParseInt(input, 10, 64)
	if err != nil {
		s.fail(ctx, OutcomeNotFound, "Invalid User ID. Please enter a number.")
		return
	}

	p, err := s.w.patients.Find(ctx, id)
	if err != nil {
		s.unavailable(ctx, err)
		return
	}
	if p == nil {
		s.fail(ctx, OutcomeNotFound, "User not found. Please log in first by selecting '1' from the main menu.")
		return
	}

	s.patient = p
	s.state = StateSelectTier
}

func (s *Session) selectTier(ctx context.Context, input string) {
	tier, ok := parseTier(input)
	if !ok {
		s.fail(ctx, OutcomeInvalidTier, "Invalid choice.")
		return
	}
	s.tier = tier

	doctors, err := s.w.doctors.FindBySpecialty(ctx, tier)
	if err != nil {
		s.unavailable(ctx, err)
		return
	}
	if len(doctors) == 0 {
		s.fail(ctx, OutcomeNoDoctors, fmt.Sprintf("No %ss available at the moment.", tier))
		return
	}

	s.doctors = doctors
	s.state = StateSelectDoctor
}

func (s *Session) selectDoctor(ctx context.Context, input string) {
	id, err := strconv.ParseInt(input, 10, 64)
	if err != nil {
		s.fail(ctx, OutcomeInvalidDoctor, "Invalid input. Please enter a number.")
		return
	}

	// Any doctor of the tier may be chosen, not only the ones listed.
	d, err := s.w.doctors.Find(ctx, id)
	if err != nil {
		s.unavailable(ctx, err)
		return
	}
	if d == nil || d.Specialty != s.tier {
		s.fail(ctx, OutcomeInvalidDoctor, "Invalid doctor ID or specialty mismatch.")
		return
	}

	s.doctor = d
	s.state = StateSelectPayment
}

func (s *Session) selectPayment(ctx context.Context, input string) {
	switch input {
	case "1", PaymentCash:
		s.payment = PaymentCash
		s.summary = "Thank you. Please proceed to the cashier."
		s.confirm(ctx, "")
	case "2", PaymentInsurance:
		s.payment = PaymentInsurance
		s.state = StateSelectInsurer
	default:
		s.fail(ctx, OutcomeInvalidPayment, "Invalid payment choice.")
	}
}

func (s *Session) selectInsurer(ctx context.Context, input string) {
	n, err := strconv.Atoi(input)
	if err != nil {
		s.fail(ctx, OutcomeInvalidInsurer, "Invalid input. Please enter a number.")
		return
	}
	if n < 1 || n > len(Insurers) {
		s.fail(ctx, OutcomeInvalidInsurer, "Invalid choice.")
		return
	}

	insurer := Insurers[n-1]
	s.summary = fmt.Sprintf("Thank you. Your insurance with %s will be processed.", insurer)
	s.confirm(ctx, insurer)
}

func (s *Session) confirm(ctx context.Context, insurer string) {
	s.finish(ctx, &Result{
		Outcome:   OutcomeConfirmed,
		Message:   fmt.Sprintf("Appointment with %s booked successfully!", s.doctor.Name),
		Patient:   s.patient,
		Doctor:    s.doctor,
		Tier:      s.tier,
		Payment:   s.payment,
		Summary:   s.summary,
		Insurer:   insurer,
		Reference: s.w.newRef(),
	})
}

func (s *Session) fail(ctx context.Context, outcome Outcome, message string) {
	s.finish(ctx, &Result{
		Outcome: outcome,
		Message: message,
		Patient: s.patient,
		Doctor:  s.doctor,
		Tier:    s.tier,
		Payment: s.payment,
	})
}

func (s *Session) unavailable(ctx context.Context, err error) {
	s.finish(ctx, &Result{
		Outcome: OutcomeUnavailable,
		Message: "The clinic records are unavailable right now. Please try again later.",
		Err:     err,
	})
}

func (s *Session) finish(ctx context.Context, r *Result) {
	s.result = r
	s.state = StateDone
	s.w.finished(ctx, r)
}

func parseTier(input string) (string, bool) {
	switch input {
	case "1", doctor.GeneralPractitioner:
		return doctor.GeneralPractitioner, true
	case "2", doctor.Specialist:
		return doctor.Specialist, true
	default:
		return "", false
	}
}
