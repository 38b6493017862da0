package messaging

import (
	"time"

	"github.com/google/uuid"
)

// Event routing keys
const (
	EventPatientCreated   = "patient.created"
	EventPatientDeleted   = "patient.deleted"
	EventDoctorCreated    = "doctor.created"
	EventReportCreated    = "report.created"
	EventBookingConfirmed = "booking.confirmed"
)

const ServiceName = "hospitali"

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventType   string    `json:"event_type"`
	EventID     string    `json:"event_id"`
	Timestamp   time.Time `json:"timestamp"`
	ServiceName string    `json:"service_name"`
}

type PatientCreatedEvent struct {
	BaseEvent
	Data PatientCreatedData `json:"data"`
}

type PatientCreatedData struct {
	PatientID   int64  `json:"patient_id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Age         int    `json:"age"`
	Gender      string `json:"gender"`
}

type PatientDeletedEvent struct {
	BaseEvent
	Data PatientDeletedData `json:"data"`
}

type PatientDeletedData struct {
	PatientID      int64     `json:"patient_id"`
	ReportsRemoved int64     `json:"reports_removed"`
	DeletedAt      time.Time `json:"deleted_at"`
}

type DoctorCreatedEvent struct {
	BaseEvent
	Data DoctorCreatedData `json:"data"`
}

type DoctorCreatedData struct {
	DoctorID  int64  `json:"doctor_id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
}

type ReportCreatedEvent struct {
	BaseEvent
	Data ReportCreatedData `json:"data"`
}

type ReportCreatedData struct {
	ReportID  int64  `json:"report_id"`
	PatientID int64  `json:"patient_id"`
	DoctorID  *int64 `json:"doctor_id,omitempty"`
}

// BookingConfirmedEvent is a notification only. Bookings are not stored.
type BookingConfirmedEvent struct {
	BaseEvent
	Data BookingConfirmedData `json:"data"`
}

type BookingConfirmedData struct {
	Reference   string    `json:"reference"`
	PatientID   int64     `json:"patient_id"`
	DoctorID    int64     `json:"doctor_id"`
	DoctorName  string    `json:"doctor_name"`
	Tier        string    `json:"tier"`
	Payment     string    `json:"payment"`
	Insurer     string    `json:"insurer,omitempty"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}

// NewBaseEvent creates a base event with common fields
func NewBaseEvent(eventType string) BaseEvent {
	return BaseEvent{
		EventType:   eventType,
		EventID:     uuid.NewString(),
		Timestamp:   time.Now().UTC(),
		ServiceName: ServiceName,
	}
}
