package workflow

import (
	"context"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/linnemanlabs/go-core/log"
	"github.com/linnemanlabs/go-core/xerrors"
	"github.com/oklog/ulid/v2"

	"github.com/linnemanlabs/intake/internal/render"
	"github.com/linnemanlabs/intake/internal/triage"
)

// Lane names used in logs, metrics, and hooks.
const (
	LaneTriage  = "triage"
	LaneUpload  = "upload"
	LaneAnalyze = "analyze"
)

// Lane outcomes.
const (
	OutcomeSuccess  = "success"
	OutcomeError    = "error"
	OutcomeRejected = "rejected"
)

// Submit button labels. The busy label is shown while an assessment is in
// flight; the idle label is restored on every exit path.
const (
	submitLabel     = "Get Assessment"
	submitBusyLabel = "Assessing…"
)

// Operator-facing status strings.
const (
	msgSymptomsRequired = "Symptoms are required."
	msgUploading        = "Uploading…"
	msgUploadDone       = "Upload complete."
	msgAnalyzing        = "Analyzing…"
	msgAnalyzeDone      = "Analysis complete."
	msgAnalyzeFailed    = "Analysis failed"
	msgNoTextExtracted  = "No text extracted."
)

// Hooks lets callers observe lane settlements without coupling the
// orchestrator to a metrics backend.
type Hooks struct {
	// OnLane fires when a lane settles, with its duration in seconds.
	OnLane func(lane, outcome string, duration float64)

	// OnRefreshDone fires when a background dashboard refresh finishes.
	OnRefreshDone func(err error)
}

// Orchestrator sequences the three intake lanes against a View. Lanes are
// independent: one may be triggered while another is still in flight, and a
// failure in one never touches another's state.
type Orchestrator struct {
	transport Transport
	view      View
	logger    log.Logger
	hooks     Hooks
}

// New creates an orchestrator. Transport and view are required.
func New(transport Transport, view View, logger log.Logger, hooks Hooks) *Orchestrator {
	if transport == nil {
		panic(xerrors.New("transport is required"))
	}
	if view == nil {
		panic(xerrors.New("view is required"))
	}
	if logger == nil {
		logger = log.Nop()
	}
	return &Orchestrator{
		transport: transport,
		view:      view,
		logger:    logger,
		hooks:     hooks,
	}
}

// SubmitTriage runs the triage submission lane: validate, submit, render
// the result and explainability panels, then refresh the dashboard in the
// background. The submit control is restored whether the call succeeds or
// fails.
func (o *Orchestrator) SubmitTriage(ctx context.Context) {
	start := time.Now()

	symptoms := strings.TrimSpace(o.view.Field(FieldSymptoms))
	if symptoms == "" {
		o.view.Alert(msgSymptomsRequired)
		o.settle(LaneTriage, OutcomeRejected, start)
		return
	}

	L := o.logger.With("lane", LaneTriage, "run_id", ulid.Make().String())

	o.view.SetEnabled(ButtonSubmit, false)
	o.view.SetText(ButtonSubmit, submitBusyLabel)
	defer func() {
		o.view.SetText(ButtonSubmit, submitLabel)
		o.view.SetEnabled(ButtonSubmit, true)
	}()

	input := o.collectInput(symptoms)

	res, err := o.transport.SubmitTriage(ctx, input)
	if err != nil {
		L.Error(ctx, err, "triage submission failed")
		o.view.Alert(err.Error())
		o.settle(LaneTriage, OutcomeError, start)
		return
	}

	o.view.SetHTML(PanelResult, render.ResultPanel(res))
	o.view.SetHTML(PanelFactors, render.FactorsPanel(res.ContributingFactors))
	o.view.Show(PanelResult)
	o.view.Show(PanelFactors)

	L.Info(ctx, "triage rendered",
		"risk", res.Risk(),
		"department", res.Department(),
		"factors", len(res.ContributingFactors),
	)
	o.settle(LaneTriage, OutcomeSuccess, start)

	// Fire-and-forget: a failed or slow refresh must not disturb the
	// already-rendered result panel.
	go func() {
		err := o.RefreshDashboard(context.WithoutCancel(ctx))
		if o.hooks.OnRefreshDone != nil {
			o.hooks.OnRefreshDone(err)
		}
	}()
}

// UploadDocument runs the document upload lane. On success the form is
// filled additively from the returned patient object; fields the service
// did not return keep whatever the operator typed.
func (o *Orchestrator) UploadDocument(ctx context.Context, filename string, file io.Reader) {
	start := time.Now()
	L := o.logger.With("lane", LaneUpload, "run_id", ulid.Make().String())

	o.view.SetText(StatusUpload, msgUploading)

	res, err := o.transport.UploadDocument(ctx, filename, file)
	if err != nil {
		L.Error(ctx, err, "document upload failed", "filename", filename)
		o.view.SetText(StatusUpload, err.Error())
		o.settle(LaneUpload, OutcomeError, start)
		return
	}

	o.view.SetText(StatusUpload, msgUploadDone)
	o.fillForm(&res.Patient)

	L.Info(ctx, "document processed", "filename", filename)
	o.settle(LaneUpload, OutcomeSuccess, start)
}

// AnalyzeImage runs the image analysis lane: reveal the extraction panel,
// clear any prior error, and on success fill the form and show the raw
// extracted text. Failures reveal the error panel without touching fields
// a previous lane may have filled.
func (o *Orchestrator) AnalyzeImage(ctx context.Context, filename string, file io.Reader) {
	start := time.Now()
	L := o.logger.With("lane", LaneAnalyze, "run_id", ulid.Make().String())

	o.view.SetText(StatusAnalyze, msgAnalyzing)
	o.view.Hide(PanelExtractionErr)
	o.view.SetText(PanelExtractionErr, "")
	o.view.Show(PanelExtraction)

	res, err := o.transport.AnalyzeDocumentImage(ctx, filename, file)
	if err != nil {
		L.Error(ctx, err, "image analysis failed", "filename", filename)
		o.view.SetText(StatusAnalyze, msgAnalyzeFailed)
		o.view.SetText(TextExtracted, "")
		o.view.SetText(PanelExtractionErr, err.Error())
		o.view.Show(PanelExtractionErr)
		o.settle(LaneAnalyze, OutcomeError, start)
		return
	}

	o.view.SetText(StatusAnalyze, msgAnalyzeDone)
	o.fillForm(&res.Patient)

	text := res.Patient.ExtractedText()
	if text == "" {
		text = msgNoTextExtracted
	}
	o.view.SetText(TextExtracted, text)

	L.Info(ctx, "image analyzed", "filename", filename, "extracted_chars", len(text))
	o.settle(LaneAnalyze, OutcomeSuccess, start)
}

// RefreshDashboard fetches the dashboard summary and re-renders the stat
// counters, department bars, and recent-activity feed. A fetch failure
// degrades only the feed; the other panels keep their last content.
func (o *Orchestrator) RefreshDashboard(ctx context.Context) error {
	summary, err := o.transport.DashboardSummary(ctx)
	if err != nil {
		o.logger.Warn(ctx, "dashboard summary fetch failed", "error", err)
		o.view.SetHTML(ListRecent, render.SummaryUnavailable)
		return err
	}

	f := render.Dashboard(summary)
	o.view.SetText(StatLow, strconv.Itoa(f.LowCount))
	o.view.SetText(StatMedium, strconv.Itoa(f.MediumCount))
	o.view.SetText(StatHigh, strconv.Itoa(f.HighCount))
	o.view.SetHTML(ListDepartments, f.Departments)
	if f.Recent != "" {
		o.view.SetHTML(ListRecent, f.Recent)
	}
	return nil
}

// LoadHistory fetches and renders the full triage history table.
func (o *Orchestrator) LoadHistory(ctx context.Context) error {
	entries, err := o.transport.DashboardHistory(ctx)
	if err != nil {
		o.logger.Warn(ctx, "history fetch failed", "error", err)
		o.view.SetHTML(TableHistory, render.HistoryUnavailable)
		return err
	}
	o.view.SetHTML(TableHistory, render.HistoryTable(entries))
	return nil
}

// collectInput assembles the submission payload from the form. Symptoms is
// already validated; the rest parse best effort with service defaults.
func (o *Orchestrator) collectInput(symptoms string) *triage.PatientInput {
	return &triage.PatientInput{
		Age:                   triage.ParseAge(o.view.Field(FieldAge)),
		Gender:                triage.ParseGender(o.view.Field(FieldGender)),
		Symptoms:              symptoms,
		BloodPressure:         triage.NormalizeBloodPressure(o.view.Field(FieldBloodPressure)),
		HeartRate:             triage.ParseOptionalInt(o.view.Field(FieldHeartRate)),
		Temperature:           triage.ParseOptionalFloat(o.view.Field(FieldTemperature)),
		PreExistingConditions: triage.ParseConditions(o.view.Field(FieldConditions)),
	}
}

// fillForm writes returned patient fields into the form. Only fields
// present in the partial overwrite; both upload lanes share this routine,
// so concurrent fills are last-write-wins by arrival order.
func (o *Orchestrator) fillForm(p *triage.PatientPartial) {
	if p.Age != nil {
		o.view.SetField(FieldAge, strconv.Itoa(*p.Age))
	}
	if p.Gender != "" {
		o.view.SetField(FieldGender, p.Gender)
	}
	if p.Symptoms != "" {
		o.view.SetField(FieldSymptoms, p.Symptoms)
	}
	if bp := p.BloodPressure(); bp != "" {
		o.view.SetField(FieldBloodPressure, bp)
	}
	if p.HeartRate != nil {
		o.view.SetField(FieldHeartRate, strconv.Itoa(*p.HeartRate))
	}
	if p.Temperature != nil {
		o.view.SetField(FieldTemperature, strconv.FormatFloat(*p.Temperature, 'f', -1, 64))
	}
	if len(p.PreExistingConditions) > 0 {
		o.view.SetField(FieldConditions, strings.Join(p.PreExistingConditions, ", "))
	}
}

func (o *Orchestrator) settle(lane, outcome string, start time.Time) {
	if o.hooks.OnLane != nil {
		o.hooks.OnLane(lane, outcome, time.Since(start).Seconds())
	}
}
