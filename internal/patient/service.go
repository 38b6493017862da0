package patient

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/allan6757/Hospitali/internal/apperr"
	"github.com/allan6757/Hospitali/internal/messaging"
	"github.com/allan6757/Hospitali/internal/pagination"
	"github.com/allan6757/Hospitali/internal/telemetry"
)

var tracer = otel.Tracer("github.com/allan6757/Hospitali/internal/patient")

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
		logger:    logger.With().Str("component", "patient").Logger(),
	}
}

// CreatePatient validates raw input and registers the patient. Invalid
// input returns a *apperr.ValidationError and nothing is inserted.
func (s *Service) CreatePatient(ctx context.Context, req CreatePatientRequest) (*Patient, error) {
	ctx, span := tracer.Start(ctx, "patient.create")
	defer span.End()

	p, err := parseCreateRequest(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		return nil, err
	}
	span.SetAttributes(attribute.Int64("patient.id", created.ID))

	s.metrics.RecordPatientOperation(ctx, "create")
	s.logger.Info().Int64("patient_id", created.ID).Str("name", created.Name).Msg("patient created")

	event := messaging.PatientCreatedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventPatientCreated),
		Data: messaging.PatientCreatedData{
			PatientID:   created.ID,
			Name:        created.Name,
			PhoneNumber: created.PhoneNumber,
			Age:         created.Age,
			Gender:      created.Gender,
		},
	}
	s.publish(ctx, messaging.EventPatientCreated, event)

	return created, nil
}

func (s *Service) ListPatients(ctx context.Context) ([]Patient, error) {
	ctx, span := tracer.Start(ctx, "patient.list")
	defer span.End()

	return s.repo.ListAll(ctx)
}

func (s *Service) ListPatientsWithPagination(ctx context.Context, params pagination.Params) (*PaginatedPatientListResponse, error) {
	ctx, span := tracer.Start(ctx, "patient.list_page")
	defer span.End()

	params.Normalize()
	patients, total, err := s.repo.ListPage(ctx, params.Limit, params.Offset())
	if err != nil {
		return nil, err
	}

	return &PaginatedPatientListResponse{
		Success:    true,
		Patients:   patients,
		Pagination: params.MetaFor(total),
	}, nil
}

// FindPatient returns nil, nil when the patient does not exist.
func (s *Service) FindPatient(ctx context.Context, id int64) (*Patient, error) {
	ctx, span := tracer.Start(ctx, "patient.find")
	defer span.End()

	return s.repo.Find(ctx, id)
}

// DeletePatient removes the patient and all of its reports.
func (s *Service) DeletePatient(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "patient.delete")
	defer span.End()
	span.SetAttributes(attribute.Int64("patient.id", id))

	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "delete failed")
		return err
	}

	s.metrics.RecordPatientOperation(ctx, "delete")
	s.logger.Info().Int64("patient_id", id).Int64("reports_removed", removed).Msg("patient deleted")

	event := messaging.PatientDeletedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventPatientDeleted),
		Data: messaging.PatientDeletedData{
			PatientID:      id,
			ReportsRemoved: removed,
			DeletedAt:      time.Now().UTC(),
		},
	}
	s.publish(ctx, messaging.EventPatientDeleted, event)

	return nil
}

func (s *Service) publish(ctx context.Context, routingKey string, event interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, routingKey, event); err != nil {
		s.logger.Warn().Err(err).Str("routing_key", routingKey).Msg("failed to publish event")
	}
}

// parseCreateRequest checks fields in prompt order and reports the first
// one that fails.
func parseCreateRequest(req CreatePatientRequest) (Patient, error) {
	name := strings.TrimSpace(req.Name)
	phone := strings.TrimSpace(req.PhoneNumber)
	age := strings.TrimSpace(req.Age)
	gender := strings.TrimSpace(req.Gender)

	checks := []struct {
		field string
		value string
		rules []validation.Rule
	}{
		{"name", name, []validation.Rule{validation.Required}},
		{"phone_number", phone, []validation.Rule{validation.Required}},
		{"age", age, []validation.Rule{validation.Required, validation.By(nonNegativeInteger)}},
		{"gender", gender, []validation.Rule{validation.Required}},
	}
	for _, c := range checks {
		if err := validation.Validate(c.value, c.rules...); err != nil {
			reason := reasonRequired
			if c.value != "" {
				reason = err.Error()
			}
			return Patient{}, apperr.Validation(c.field, reason)
		}
	}

	n, _ := strconv.ParseInt(age, 10, 32)
	return Patient{Name: name, PhoneNumber: phone, Age: int(n), Gender: gender}, nil
}

func nonNegativeInteger(value interface{}) error {
	s, _ := value.(string)
	// the age column is a 32-bit INTEGER
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil || n < 0 {
		return errors.New(reasonAgeInteger)
	}
	return nil
}
