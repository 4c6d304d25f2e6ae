// Package triageapi is the HTTP client for the remote triage, extraction,
// and dashboard services. It normalizes every call into a result or a
// single operator-facing failure message.
package triageapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/linnemanlabs/intake/internal/triage"
)

// Fixed fallback messages per operation, used when a failing response
// carries no parseable error payload.
const (
	triageFallback  = "Triage failed"
	uploadFallback  = "Upload failed"
	analyzeFallback = "Analysis failed"
)

const httpTimeout = 30 * time.Second

// errorBodyLimit caps how much of a failure body we read looking for a
// message.
const errorBodyLimit = 64 * 1024

// Client calls the remote services. Calls are fire-once: no retries, no
// client-side deadline beyond the HTTP timeout.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the service at baseURL. Outbound requests are
// traced via otelhttp.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   httpTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// apiError is a failure message meant for the operator verbatim. Error
// text is either server-supplied or one of the fixed fallbacks.
type apiError struct {
	msg string
}

func (e *apiError) Error() string { return e.msg }

// SubmitTriage submits patient input for assessment.
func (c *Client) SubmitTriage(ctx context.Context, input *triage.PatientInput) (*triage.TriageResult, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("marshal triage input: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/triage", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var out triage.TriageResult
	if err := c.do(req, &out, triageFallback); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadDocument sends a document (PDF/TXT/CSV) for text extraction.
func (c *Client) UploadDocument(ctx context.Context, filename string, r io.Reader) (*triage.ExtractionResult, error) {
	return c.postFile(ctx, "/api/upload-document", "document", filename, r, uploadFallback)
}

// AnalyzeDocumentImage sends a document image for OCR extraction.
func (c *Client) AnalyzeDocumentImage(ctx context.Context, filename string, r io.Reader) (*triage.ExtractionResult, error) {
	return c.postFile(ctx, "/api/analyze-document-image", "image", filename, r, analyzeFallback)
}

// DashboardSummary fetches the aggregate triage dashboard.
func (c *Client) DashboardSummary(ctx context.Context) (*triage.DashboardSummary, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/dashboard/summary", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	var out triage.DashboardSummary
	if err := c.do(req, &out, "Summary failed"); err != nil {
		return nil, err
	}
	return &out, nil
}

// DashboardHistory fetches the recent triage history.
func (c *Client) DashboardHistory(ctx context.Context) ([]triage.HistoryEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/dashboard/history", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	var out struct {
		History []triage.HistoryEntry `json:"history"`
	}
	if err := c.do(req, &out, "History failed"); err != nil {
		return nil, err
	}
	return out.History, nil
}

func (c *Client) postFile(ctx context.Context, path, field, filename string, r io.Reader, fallback string) (*triage.ExtractionResult, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out triage.ExtractionResult
	if err := c.do(req, &out, fallback); err != nil {
		return nil, err
	}
	return &out, nil
}

// do issues the request once and decodes the response into out. Non-2xx
// responses become an apiError with the server's message or the fallback;
// network-level failures propagate the transport error as-is.
func (c *Client) do(req *http.Request, out any, fallback string) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &apiError{msg: errorMessage(resp.Body, fallback)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &apiError{msg: fallback}
	}
	return nil
}

// errorMessage extracts the human-readable message from a failure body,
// falling back to the fixed per-operation message.
func errorMessage(body io.Reader, fallback string) string {
	data, err := io.ReadAll(io.LimitReader(body, errorBodyLimit))
	if err != nil {
		return fallback
	}
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || payload.Error == "" {
		return fallback
	}
	return payload.Error
}
