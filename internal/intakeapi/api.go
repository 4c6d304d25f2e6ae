// Package intakeapi exposes the intake workflow lanes to the page shell.
// Each endpoint runs one lane against a patch-recording view and returns
// the resulting view mutations for the shell to apply.
package intakeapi

import (
	"encoding/json"
	"mime/multipart"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-chi/chi/v5"
	"github.com/linnemanlabs/go-core/httpmw"
	"github.com/linnemanlabs/go-core/log"
	"github.com/linnemanlabs/go-core/xerrors"

	"github.com/linnemanlabs/intake/internal/patchview"
	"github.com/linnemanlabs/intake/internal/workflow"
)

// formBodyLimit caps the JSON form submission body.
const formBodyLimit = 64 * 1024

// API holds dependencies for the lane endpoints.
type API struct {
	logger         log.Logger
	transport      workflow.Transport
	hooks          workflow.Hooks
	uploadMaxBytes int64
}

// New creates the API. A nil logger gets a nop logger; transport is
// required.
func New(logger log.Logger, transport workflow.Transport, hooks workflow.Hooks, uploadMaxBytes int64) *API {
	if logger == nil {
		logger = log.Nop()
	}
	if transport == nil {
		panic(xerrors.New("transport is required"))
	}
	return &API{
		logger:         logger,
		transport:      transport,
		hooks:          hooks,
		uploadMaxBytes: uploadMaxBytes,
	}
}

// RegisterRoutes attaches the lane endpoints to the router.
func (a *API) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.With(httpmw.MaxBody(formBodyLimit)).Post("/triage", a.handleTriage)
		r.With(httpmw.MaxBody(a.uploadMaxBytes)).Post("/upload-document", a.handleUploadDocument)
		r.With(httpmw.MaxBody(a.uploadMaxBytes)).Post("/analyze-document-image", a.handleAnalyzeImage)
		r.Get("/dashboard", a.handleDashboard)
		r.Get("/history", a.handleHistory)
	})
}

func (a *API) handleTriage(w http.ResponseWriter, r *http.Request) {
	var form map[string]string
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, `{"error":"invalid payload"}`, http.StatusBadRequest)
		return
	}

	annotateLane(r, workflow.LaneTriage)

	view := patchview.New(form)
	a.orchestrator(view).SubmitTriage(r.Context())
	writeOps(w, view)
}

func (a *API) handleUploadDocument(w http.ResponseWriter, r *http.Request) {
	file, header, err := formFile(r, "document")
	if err != nil {
		http.Error(w, `{"error":"No file provided."}`, http.StatusBadRequest)
		return
	}
	defer func() { _ = file.Close() }()

	annotateLane(r, workflow.LaneUpload)

	view := patchview.New(nil)
	a.orchestrator(view).UploadDocument(r.Context(), header.Filename, file)
	writeOps(w, view)
}

func (a *API) handleAnalyzeImage(w http.ResponseWriter, r *http.Request) {
	file, header, err := formFile(r, "image")
	if err != nil {
		http.Error(w, `{"error":"No image provided."}`, http.StatusBadRequest)
		return
	}
	defer func() { _ = file.Close() }()

	annotateLane(r, workflow.LaneAnalyze)

	view := patchview.New(nil)
	a.orchestrator(view).AnalyzeImage(r.Context(), header.Filename, file)
	writeOps(w, view)
}

func (a *API) handleDashboard(w http.ResponseWriter, r *http.Request) {
	view := patchview.New(nil)
	// Errors degrade into the rendered ops; nothing further to surface.
	_ = a.orchestrator(view).RefreshDashboard(r.Context())
	writeOps(w, view)
}

func (a *API) handleHistory(w http.ResponseWriter, r *http.Request) {
	view := patchview.New(nil)
	_ = a.orchestrator(view).LoadHistory(r.Context())
	writeOps(w, view)
}

func (a *API) orchestrator(view workflow.View) *workflow.Orchestrator {
	return workflow.New(a.transport, view, a.logger, a.hooks)
}

// formFile fetches the uploaded file from the named multipart field, with
// "file" accepted as a legacy alias.
func formFile(r *http.Request, field string) (multipart.File, *multipart.FileHeader, error) {
	file, hdr, err := r.FormFile(field)
	if err == nil {
		return file, hdr, nil
	}
	return r.FormFile("file")
}

func annotateLane(r *http.Request, lane string) {
	span := trace.SpanFromContext(r.Context())
	span.SetAttributes(attribute.String("intake.lane", lane))
}

func writeOps(w http.ResponseWriter, view *patchview.View) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"ops": view.Ops(),
	})
}
