package triage

// Risk levels the triage service may return. Anything else is treated as Low
// by the rendering layer.
const (
	RiskLow    = "Low"
	RiskMedium = "Medium"
	RiskHigh   = "High"
)

// Defaults applied when the operator leaves a field blank or the service
// omits one. These mirror the service's own fallbacks.
const (
	DefaultAge        = 35
	DefaultGender     = "Unknown"
	DefaultDepartment = "General Medicine"
)

// PatientInput is the payload submitted to the triage service. Symptoms is
// the only required field; everything else is best effort.
type PatientInput struct {
	Age                   int      `json:"age"`
	Gender                string   `json:"gender"`
	Symptoms              string   `json:"symptoms"`
	BloodPressure         string   `json:"blood_pressure,omitempty"`
	HeartRate             *int     `json:"heart_rate,omitempty"`
	Temperature           *float64 `json:"temperature,omitempty"`
	PreExistingConditions []string `json:"pre_existing_conditions,omitempty"`
}

// TriageResult is the assessment returned by the triage service.
type TriageResult struct {
	RiskLevel              string          `json:"risk_level"`
	ConfidenceScore        *float64        `json:"confidence_score,omitempty"`
	RecommendedDepartment  string          `json:"recommended_department"`
	AlternativeDepartments []string        `json:"alternative_departments,omitempty"`
	Summary                string          `json:"summary,omitempty"`
	ContributingFactors    []ExplainFactor `json:"contributing_factors,omitempty"`
}

// Risk returns the risk level, defaulting to Low when the service omitted it.
func (r *TriageResult) Risk() string {
	if r.RiskLevel == "" {
		return RiskLow
	}
	return r.RiskLevel
}

// Department returns the recommended department, defaulting to General
// Medicine when the service omitted it.
func (r *TriageResult) Department() string {
	if r.RecommendedDepartment == "" {
		return DefaultDepartment
	}
	return r.RecommendedDepartment
}

// ExplainFactor is one explainability entry attached to an assessment.
// Impact is free form; unrecognized values get the low styling.
type ExplainFactor struct {
	Factor      string `json:"factor"`
	Impact      string `json:"impact"`
	Description string `json:"description"`
}

// DashboardSummary is the aggregate view returned by the dashboard service.
// Map keys may be absent, meaning zero. Department iteration order is not
// contractual.
type DashboardSummary struct {
	TotalTriages int            `json:"total_triages"`
	ByRiskLevel  map[string]int `json:"by_risk_level"`
	ByDepartment map[string]int `json:"by_department"`
	Recent       []RecentEntry  `json:"recent,omitempty"`
}

// RecentEntry is one row of the recent-activity feed.
type RecentEntry struct {
	ID                    string      `json:"id,omitempty"`
	Timestamp             string      `json:"timestamp,omitempty"`
	RiskLevel             string      `json:"risk_level"`
	ConfidenceScore       *float64    `json:"confidence_score,omitempty"`
	RecommendedDepartment string      `json:"recommended_department"`
	PatientInput          PatientEcho `json:"patient_input"`
}

// PatientEcho is the slice of the submitted input the dashboard service
// echoes back with each historical entry.
type PatientEcho struct {
	Symptoms string `json:"symptoms"`
}

// HistoryEntry is one row of the full triage history. Same shape as the
// recent feed today; kept separate so the two feeds can drift.
type HistoryEntry = RecentEntry

// PatientPartial is the patient object returned by the document and image
// extraction endpoints. Every field is optional; absent fields must leave
// existing form content untouched.
type PatientPartial struct {
	Age                    *int     `json:"age,omitempty"`
	Gender                 string   `json:"gender,omitempty"`
	Symptoms               string   `json:"symptoms,omitempty"`
	BloodPressureSystolic  *int     `json:"blood_pressure_systolic,omitempty"`
	BloodPressureDiastolic *int     `json:"blood_pressure_diastolic,omitempty"`
	HeartRate              *int     `json:"heart_rate,omitempty"`
	Temperature            *float64 `json:"temperature,omitempty"`
	PreExistingConditions  []string `json:"pre_existing_conditions,omitempty"`

	// The extraction service has shipped the raw OCR text under both names.
	// RawExtraction wins when both are present.
	RawExtraction string `json:"raw_extraction,omitempty"`
	Raw           string `json:"raw,omitempty"`
}

// ExtractedText returns the raw extracted text, preferring raw_extraction
// over raw. Empty means the service extracted nothing.
func (p *PatientPartial) ExtractedText() string {
	if p.RawExtraction != "" {
		return p.RawExtraction
	}
	return p.Raw
}

// BloodPressure joins systolic/diastolic into the display form "sys/dia".
// With only a systolic reading the bare value is returned; without one the
// result is empty regardless of diastolic.
func (p *PatientPartial) BloodPressure() string {
	if p.BloodPressureSystolic == nil {
		return ""
	}
	if p.BloodPressureDiastolic == nil {
		return itoa(*p.BloodPressureSystolic)
	}
	return itoa(*p.BloodPressureSystolic) + "/" + itoa(*p.BloodPressureDiastolic)
}

// ExtractionResult is the envelope both upload endpoints respond with.
type ExtractionResult struct {
	Success bool           `json:"success"`
	Patient PatientPartial `json:"patient"`
}
