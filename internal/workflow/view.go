package workflow

import (
	"context"
	"io"

	"github.com/linnemanlabs/intake/internal/triage"
)

// Element IDs the orchestrator binds to. These are a fixed naming contract
// with the intake page markup.
const (
	FieldAge           = "age"
	FieldGender        = "gender"
	FieldSymptoms      = "symptoms"
	FieldBloodPressure = "blood-pressure"
	FieldHeartRate     = "heart-rate"
	FieldTemperature   = "temperature"
	FieldConditions    = "conditions"

	ButtonSubmit = "triage-submit"

	PanelResult        = "result-panel"
	PanelFactors       = "factors-panel"
	PanelExtraction    = "extraction-panel"
	PanelExtractionErr = "extraction-error"
	TextExtracted      = "extracted-text"

	StatusUpload  = "upload-status"
	StatusAnalyze = "analyze-status"

	StatLow         = "stat-low"
	StatMedium      = "stat-medium"
	StatHigh        = "stat-high"
	ListDepartments = "department-bars"
	ListRecent      = "recent-activity"
	TableHistory    = "history-table"
)

// View is the orchestrator's window onto the page. Implementations must
// tolerate the three lanes mutating disjoint regions concurrently; writes
// to the same element are last-write-wins.
type View interface {
	// Field returns the current value of a form field, "" when unset.
	Field(id string) string
	SetField(id, value string)

	SetText(id, text string)
	SetHTML(id, fragment string)

	Show(id string)
	Hide(id string)
	SetEnabled(id string, enabled bool)

	// Alert raises a blocking operator notification.
	Alert(message string)
}

// Transport is the outbound boundary the orchestrator drives. Injected so
// tests can substitute a fake without touching global state.
type Transport interface {
	SubmitTriage(ctx context.Context, input *triage.PatientInput) (*triage.TriageResult, error)
	UploadDocument(ctx context.Context, filename string, r io.Reader) (*triage.ExtractionResult, error)
	AnalyzeDocumentImage(ctx context.Context, filename string, r io.Reader) (*triage.ExtractionResult, error)
	DashboardSummary(ctx context.Context) (*triage.DashboardSummary, error)
	DashboardHistory(ctx context.Context) ([]triage.HistoryEntry, error)
}
