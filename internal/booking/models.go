package booking

import (
	"github.com/allan6757/Hospitali/internal/doctor"
	"github.com/allan6757/Hospitali/internal/patient"
)

// State is a step of the booking conversation. States only move forward.
type State int

const (
	StateIdentify State = iota
	StateSelectTier
	StateSelectDoctor
	StateSelectPayment
	StateSelectInsurer
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdentify:
		return "identify"
	case StateSelectTier:
		return "select-tier"
	case StateSelectDoctor:
		return "select-doctor"
	case StateSelectPayment:
		return "select-payment"
	case StateSelectInsurer:
		return "select-insurer"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Outcome is how a booking conversation ended.
type Outcome string

const (
	OutcomeNotFound       Outcome = "not-found"
	OutcomeInvalidTier    Outcome = "invalid-tier"
	OutcomeNoDoctors      Outcome = "no-doctors"
	OutcomeInvalidDoctor  Outcome = "invalid-doctor"
	OutcomeInvalidPayment Outcome = "invalid-payment"
	OutcomeInvalidInsurer Outcome = "invalid-insurer"
	OutcomeConfirmed      Outcome = "confirmed"
	OutcomeUnavailable    Outcome = "unavailable"
)

const (
	PaymentCash      = "Cash"
	PaymentInsurance = "Insurance"
)

// Insurers are offered in this order and chosen by 1-based position.
var Insurers = []string{"SHA", "NHIF", "OLD MUTUAL", "BIMA"}

// Choices are the raw answers for a one-shot booking. Each field takes the
// menu number or the spelled-out option, as typed at the prompt.
type Choices struct {
	Tier     string `json:"tier"`
	DoctorID string `json:"doctor_id"`
	Payment  string `json:"payment"`
	Insurer  string `json:"insurer,omitempty"`
}

// Result describes a finished conversation. Only confirmed results carry a
// reference.
type Result struct {
	Outcome   Outcome          `json:"outcome"`
	Message   string           `json:"message"`
	Patient   *patient.Patient `json:"patient,omitempty"`
	Doctor    *doctor.Doctor   `json:"doctor,omitempty"`
	Tier      string           `json:"tier,omitempty"`
	Payment   string           `json:"payment,omitempty"`
	Summary   string           `json:"payment_summary,omitempty"`
	Insurer   string           `json:"insurer,omitempty"`
	Reference string           `json:"reference,omitempty"`

	// Err is set for OutcomeUnavailable.
	Err error `json:"-"`
}

func (r *Result) Confirmed() bool {
	return r.Outcome == OutcomeConfirmed
}

// Prompt is what the current state asks for.
type Prompt struct {
	Title   string   `json:"title,omitempty"`
	Text    string   `json:"text"`
	Options []string `json:"options,omitempty"`
}
