package report

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

var tracer = otel.Tracer("github.com/allan6757/Hospitali/internal/report")

type Service struct {
	repo      RepositoryInterface
	patients  PatientLookup
	publisher messaging.PublisherInterface
	metrics   *telemetry.Metrics
	logger    zerolog.Logger
}

func NewService(repo RepositoryInterface, patients PatientLookup, publisher messaging.PublisherInterface, metrics *telemetry.Metrics, logger zerolog.Logger) *Service {
	return &Service{
		repo:      repo,
		patients:  patients,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger.With().Str("component", "report").Logger(),
	}
}

// CreateReport stores a report. A reference to a missing patient or doctor
// comes back from the store as an integrity error.
func (s *Service) CreateReport(ctx context.Context, req CreateReportRequest) (*Report, error) {
	ctx, span := tracer.Start(ctx, "report.create")
	defer span.End()

	rep, err := parseCreateRequest(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	created, err := s.repo.Create(ctx, rep)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		return nil, err
	}
	span.SetAttributes(attribute.Int64("report.id", created.ID))

	s.metrics.RecordReportOperation(ctx, "create")
	s.logger.Info().Int64("report_id", created.ID).Int64("patient_id", created.PatientID).Msg("report created")

	if s.publisher != nil {
		event := messaging.ReportCreatedEvent{
			BaseEvent: messaging.NewBaseEvent(messaging.EventReportCreated),
			Data: messaging.ReportCreatedData{
				ReportID:  created.ID,
				PatientID: created.PatientID,
				DoctorID:  created.DoctorID,
			},
		}
		if err := s.publisher.Publish(ctx, messaging.EventReportCreated, event); err != nil {
			s.logger.Warn().Err(err).Str("routing_key", messaging.EventReportCreated).Msg("failed to publish event")
		}
	}

	return created, nil
}

// ListForPatient returns a NotFoundError when the patient does not exist,
// and an empty slice when the patient has no attributed reports.
func (s *Service) ListForPatient(ctx context.Context, patientID int64) ([]PatientReport, error) {
	ctx, span := tracer.Start(ctx, "report.list_for_patient")
	defer span.End()
	span.SetAttributes(attribute.Int64("patient.id", patientID))

	p, err := s.patients.Find(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errPatientNotFound(patientID)
	}

	return s.repo.ListForPatient(ctx, patientID)
}

func parseCreateRequest(req CreateReportRequest) (Report, error) {
	rep := Report{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		Content:   strings.TrimSpace(req.Content),
	}

	if err := validation.Validate(rep.Content, validation.Required); err != nil {
		return Report{}, apperr.Validation("report_content", reasonRequired)
	}
	return rep, nil
}
