package doctor

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/allan6757/Hospitali/internal/apperr"
	"github.com/allan6757/Hospitali/internal/messaging"
	"github.com/allan6757/Hospitali/internal/telemetry"
)

var tracer = otel.Tracer("github.com/allan6757/Hospitali/internal/doctor")

type Service struct {
	repo      RepositoryInterface
	publisher messaging.PublisherInterface
	metrics   *telemetry.Metrics
	logger    zerolog.Logger
}

func NewService(repo RepositoryInterface, publisher messaging.PublisherInterface, metrics *telemetry.Metrics, logger zerolog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger.With().Str("component", "doctor").Logger(),
	}
}

func (s *Service) CreateDoctor(ctx context.Context, req CreateDoctorRequest) (*Doctor, error) {
	ctx, span := tracer.Start(ctx, "doctor.create")
	defer span.End()

	d, err := parseCreateRequest(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	created, err := s.repo.Create(ctx, d)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		return nil, err
	}
	span.SetAttributes(attribute.Int64("doctor.id", created.ID))

	s.created(ctx, *created)
	return created, nil
}

func (s *Service) ListDoctors(ctx context.Context) ([]Doctor, error) {
	ctx, span := tracer.Start(ctx, "doctor.list")
	defer span.End()

	return s.repo.ListAll(ctx)
}

// FindDoctor returns nil, nil when the doctor does not exist.
func (s *Service) FindDoctor(ctx context.Context, id int64) (*Doctor, error) {
	ctx, span := tracer.Start(ctx, "doctor.find")
	defer span.End()

	return s.repo.Find(ctx, id)
}

func (s *Service) FindBySpecialty(ctx context.Context, specialty string) ([]Doctor, error) {
	ctx, span := tracer.Start(ctx, "doctor.find_by_specialty")
	defer span.End()
	span.SetAttributes(attribute.String("doctor.specialty", specialty))

	return s.repo.FindBySpecialty(ctx, specialty)
}

// AddSampleSpecialists stores the fixed sample roster. Calling it twice adds
// the roster twice; doctors are not deduplicated by name.
func (s *Service) AddSampleSpecialists(ctx context.Context) ([]Doctor, error) {
	ctx, span := tracer.Start(ctx, "doctor.add_sample_specialists")
	defer span.End()

	roster := make([]Doctor, 0, len(SampleSpecialists))
	for _, name := range SampleSpecialists {
		roster = append(roster, Doctor{Name: name, Specialty: Specialist})
	}

	created, err := s.repo.CreateMany(ctx, roster)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		return nil, err
	}

	for _, d := range created {
		s.created(ctx, d)
	}
	return created, nil
}

func (s *Service) created(ctx context.Context, d Doctor) {
	s.metrics.RecordDoctorOperation(ctx, "create")
	s.logger.Info().Int64("doctor_id", d.ID).Str("name", d.Name).Str("specialty", d.Specialty).Msg("doctor created")

	if s.publisher == nil {
		return
	}
	event := messaging.DoctorCreatedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventDoctorCreated),
		Data: messaging.DoctorCreatedData{
			DoctorID:  d.ID,
			Name:      d.Name,
			Specialty: d.Specialty,
		},
	}
	if err := s.publisher.Publish(ctx, messaging.EventDoctorCreated, event); err != nil {
		s.logger.Warn().Err(err).Str("routing_key", messaging.EventDoctorCreated).Msg("failed to publish event")
	}
}

func parseCreateRequest(req CreateDoctorRequest) (Doctor, error) {
	d := Doctor{
		Name:      strings.TrimSpace(req.Name),
		Specialty: strings.TrimSpace(req.Specialty),
	}

	if err := validation.Validate(d.Name, validation.Required); err != nil {
		return Doctor{}, apperr.Validation("name", reasonRequired)
	}
	if err := validation.Validate(d.Specialty, validation.Required); err != nil {
		return Doctor{}, apperr.Validation("specialty", reasonRequired)
	}
	return d, nil
}
