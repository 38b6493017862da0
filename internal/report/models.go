package report

// Report is a medical report. DoctorID is nil when the report has no
// attributed doctor, including after that doctor was deleted.
type Report struct {
	ID        int64  `json:"id"`
	PatientID int64  `json:"patient_id"`
	DoctorID  *int64 `json:"doctor_id"`
	Content   string `json:"report_content"`
}

type CreateReportRequest struct {
	PatientID int64  `json:"patient_id"`
	DoctorID  *int64 `json:"doctor_id,omitempty"`
	Content   string `json:"report_content"`
}

// PatientReport is a report as shown to its patient, joined with the
// writing doctor.
type PatientReport struct {
	ReportID        int64  `json:"report_id"`
	DoctorName      string `json:"doctor_name"`
	DoctorSpecialty string `json:"doctor_specialty"`
	Content         string `json:"report_content"`
}

type PatientReportListResponse struct {
	Success   bool            `json:"success"`
	PatientID int64           `json:"patient_id"`
	Reports   []PatientReport `json:"reports"`
}
