package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/allan6757/Hospitali"

// Metrics holds the custom instruments. A nil *Metrics records nothing.
type Metrics struct {
	HTTPRequestsTotal metric.Int64Counter
	HTTPDurationMs    metric.Float64Histogram

	PatientTotal         metric.Int64Counter
	DoctorTotal          metric.Int64Counter
	ReportTotal          metric.Int64Counter
	BookingOutcomesTotal metric.Int64Counter
}

// InitMetrics registers the instruments on the global meter provider.
func InitMetrics() (*Metrics, error) {
	meter := otel.Meter(instrumentationName)

	httpRequestsTotal, err := meter.Int64Counter(
		"http_server_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	httpDurationMs, err := meter.Float64Histogram(
		"http_server_duration_milliseconds",
		metric.WithDescription("HTTP request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	patientTotal, err := meter.Int64Counter(
		"patient_total",
		metric.WithDescription("Total number of patient operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}

	doctorTotal, err := meter.Int64Counter(
		"doctor_total",
		metric.WithDescription("Total number of doctor operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}

	reportTotal, err := meter.Int64Counter(
		"report_total",
		metric.WithDescription("Total number of medical report operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}

	bookingOutcomesTotal, err := meter.Int64Counter(
		"booking_outcomes_total",
		metric.WithDescription("Terminal outcomes reached by the booking workflow"),
		metric.WithUnit("{booking}"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		HTTPRequestsTotal:    httpRequestsTotal,
		HTTPDurationMs:       httpDurationMs,
		PatientTotal:         patientTotal,
		DoctorTotal:          doctorTotal,
		ReportTotal:          reportTotal,
		BookingOutcomesTotal: bookingOutcomesTotal,
	}, nil
}

// RecordHTTPRequest records an HTTP request metric
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, route string, statusCode int, durationMs float64) {
	if m == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("http_method", method),
		attribute.String("http_route", route),
		attribute.Int("http_status_code", statusCode),
	}

	m.HTTPRequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.HTTPDurationMs.Record(ctx, durationMs, metric.WithAttributes(attrs...))
}

func (m *Metrics) RecordPatientOperation(ctx context.Context, operation string) {
	if m == nil {
		return
	}
	m.PatientTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", operation)))
}

func (m *Metrics) RecordDoctorOperation(ctx context.Context, operation string) {
	if m == nil {
		return
	}
	m.DoctorTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", operation)))
}

func (m *Metrics) RecordReportOperation(ctx context.Context, operation string) {
	if m == nil {
		return
	}
	m.ReportTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", operation)))
}

// RecordBookingOutcome counts a terminal workflow outcome.
func (m *Metrics) RecordBookingOutcome(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.BookingOutcomesTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
