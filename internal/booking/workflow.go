package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/allan6757/Hospitali/internal/doctor"
	"github.com/allan6757/Hospitali/internal/messaging"
	"github.com/allan6757/Hospitali/internal/patient"
	"github.com/allan6757/Hospitali/internal/telemetry"
)

var tracer = otel.Tracer("github.com/allan6757/Hospitali/internal/booking")

// PatientFinder is the read side of the patient repository.
type PatientFinder interface {
	Find(ctx context.Context, id int64) (*patient.Patient, error)
}

// DoctorFinder is the read side of the doctor repository.
type DoctorFinder interface {
	Find(ctx context.Context, id int64) (*doctor.Doctor, error)
	FindBySpecialty(ctx context.Context, specialty string) ([]doctor.Doctor, error)
}

// Workflow runs booking conversations. It only reads the store; a booking
// is announced but never saved.
type Workflow struct {
	patients  PatientFinder
	doctors   DoctorFinder
	publisher messaging.PublisherInterface
	metrics   *telemetry.Metrics
	logger    zerolog.Logger
	now       func() time.Time
	newRef    func() string
}

func NewWorkflow(patients PatientFinder, doctors DoctorFinder, publisher messaging.PublisherInterface, metrics *telemetry.Metrics, logger zerolog.Logger) *Workflow {
	return &Workflow{
		patients:  patients,
		doctors:   doctors,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger.With().Str("component", "booking").Logger(),
		now:       time.Now,
		newRef:    uuid.NewString,
	}
}

// NewSession starts a conversation at StateIdentify.
func (w *Workflow) NewSession() *Session {
	return &Session{w: w}
}

// Book runs a whole conversation from pre-collected answers. The insurer is
// only read when the payment is insurance.
func (w *Workflow) Book(ctx context.Context, patientID string, c Choices) *Result {
	ctx, span := tracer.Start(ctx, "booking.book")
	defer span.End()

	s := w.NewSession()
	for _, input := range []string{patientID, c.Tier, c.DoctorID, c.Payment, c.Insurer} {
		if r := s.Advance(ctx, input); r != nil {
			span.SetAttributes(attribute.String("booking.outcome", string(r.Outcome)))
			return r
		}
	}
	return s.Result()
}

func (w *Workflow) finished(ctx context.Context, r *Result) {
	w.metrics.RecordBookingOutcome(ctx, string(r.Outcome))

	switch {
	case r.Outcome == OutcomeUnavailable:
		w.logger.Error().Err(r.Err).Msg("booking aborted, store unavailable")
		return
	case !r.Confirmed():
		w.logger.Info().Str("outcome", string(r.Outcome)).Msg("booking ended")
		return
	}

	w.logger.Info().
		Str("reference", r.Reference).
		Int64("patient_id", r.Patient.ID).
		Int64("doctor_id", r.Doctor.ID).
		Str("payment", r.Payment).
		Msg("booking confirmed")

	if w.publisher == nil {
		return
	}
	event := messaging.BookingConfirmedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventBookingConfirmed),
		Data: messaging.BookingConfirmedData{
			Reference:   r.Reference,
			PatientID:   r.Patient.ID,
			DoctorID:    r.Doctor.ID,
			DoctorName:  r.Doctor.Name,
			Tier:        r.Tier,
			Payment:     r.Payment,
			Insurer:     r.Insurer,
			ConfirmedAt: w.now().UTC(),
		},
	}
	if err := w.publisher.Publish(ctx, messaging.EventBookingConfirmed, event); err != nil {
		w.logger.Warn().Err(err).Str("routing_key", messaging.EventBookingConfirmed).Msg("failed to publish event")
	}
}
