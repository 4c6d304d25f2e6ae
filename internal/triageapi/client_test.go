package triageapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/linnemanlabs/intake/internal/triage"
)

func TestSubmitTriage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/triage" {
			t.Errorf("got %s %s, want POST /api/triage", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}

		var in triage.PatientInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Fatalf("decode input: %v", err)
		}
		if in.Symptoms != "chest pain" || in.Age != 62 {
			t.Errorf("input = %+v", in)
		}

		_, _ = w.Write([]byte(`{"risk_level":"High","confidence_score":0.87,"recommended_department":"Cardiology"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	res, err := c.SubmitTriage(context.Background(), &triage.PatientInput{Age: 62, Gender: "Male", Symptoms: "chest pain"})
	if err != nil {
		t.Fatalf("SubmitTriage: %v", err)
	}
	if res.RiskLevel != "High" || res.RecommendedDepartment != "Cardiology" {
		t.Errorf("result = %+v", res)
	}
	if res.ConfidenceScore == nil || *res.ConfidenceScore != 0.87 {
		t.Errorf("confidence = %v, want 0.87", res.ConfidenceScore)
	}
}

func TestSubmitTriage_ServerMessage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"model unavailable"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.SubmitTriage(context.Background(), &triage.PatientInput{Symptoms: "x"})
	if err == nil {
		t.Fatal("expected error")
	}
	// The server's message must reach the operator verbatim, no wrapping.
	if err.Error() != "model unavailable" {
		t.Errorf("err = %q, want %q", err.Error(), "model unavailable")
	}
}

func TestSubmitTriage_Fallbacks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		code int
	}{
		{"no body", "", http.StatusInternalServerError},
		{"non-json body", "<html>oops</html>", http.StatusBadGateway},
		{"json without error key", `{"detail":"nope"}`, http.StatusBadRequest},
		{"empty error value", `{"error":""}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.code)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := New(srv.URL)
			_, err := c.SubmitTriage(context.Background(), &triage.PatientInput{Symptoms: "x"})
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Error() != "Triage failed" {
				t.Errorf("err = %q, want %q", err.Error(), "Triage failed")
			}
		})
	}
}

func TestSubmitTriage_MalformedSuccessBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.SubmitTriage(context.Background(), &triage.PatientInput{Symptoms: "x"})
	if err == nil || err.Error() != "Triage failed" {
		t.Errorf("err = %v, want Triage failed", err)
	}
}

func TestSubmitTriage_NetworkError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // refuse connections

	c := New(srv.URL)
	_, err := c.SubmitTriage(context.Background(), &triage.PatientInput{Symptoms: "x"})
	if err == nil {
		t.Fatal("expected error")
	}
	// Transport errors propagate as-is, they are not rewritten to the fallback.
	if err.Error() == "Triage failed" {
		t.Errorf("network error was masked by fallback: %v", err)
	}
}

func TestUploadDocument(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/upload-document" {
			t.Errorf("path = %s", r.URL.Path)
		}
		file, header, err := r.FormFile("document")
		if err != nil {
			t.Fatalf("FormFile(document): %v", err)
		}
		defer func() { _ = file.Close() }()
		if header.Filename != "notes.txt" {
			t.Errorf("filename = %q", header.Filename)
		}
		_, _ = w.Write([]byte(`{"success":true,"patient":{"age":62,"symptoms":"chest pain","raw_extraction":"Age: 62"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	res, err := c.UploadDocument(context.Background(), "notes.txt", strings.NewReader("Age: 62\nSymptoms: chest pain"))
	if err != nil {
		t.Fatalf("UploadDocument: %v", err)
	}
	if !res.Success {
		t.Error("Success = false")
	}
	if res.Patient.Age == nil || *res.Patient.Age != 62 {
		t.Errorf("age = %v, want 62", res.Patient.Age)
	}
	if res.Patient.ExtractedText() != "Age: 62" {
		t.Errorf("extracted text = %q", res.Patient.ExtractedText())
	}
}

func TestUploadDocument_Fallback(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.UploadDocument(context.Background(), "notes.txt", strings.NewReader("x"))
	if err == nil || err.Error() != "Upload failed" {
		t.Errorf("err = %v, want Upload failed", err)
	}
}

func TestAnalyzeDocumentImage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/analyze-document-image" {
			t.Errorf("path = %s", r.URL.Path)
		}
		// The image lane uses a different multipart field name.
		if _, _, err := r.FormFile("image"); err != nil {
			t.Fatalf("FormFile(image): %v", err)
		}
		_, _ = w.Write([]byte(`{"success":true,"patient":{"raw":"scanned text"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	res, err := c.AnalyzeDocumentImage(context.Background(), "scan.png", strings.NewReader("fakepng"))
	if err != nil {
		t.Fatalf("AnalyzeDocumentImage: %v", err)
	}
	if res.Patient.ExtractedText() != "scanned text" {
		t.Errorf("extracted text = %q", res.Patient.ExtractedText())
	}
}

func TestAnalyzeDocumentImage_Fallback(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.AnalyzeDocumentImage(context.Background(), "scan.png", strings.NewReader("x"))
	if err == nil || err.Error() != "Analysis failed" {
		t.Errorf("err = %v, want Analysis failed", err)
	}
}

func TestDashboardSummary(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/dashboard/summary" {
			t.Errorf("got %s %s, want GET /api/dashboard/summary", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"total_triages":4,"by_risk_level":{"High":3,"Low":1},"by_department":{"Cardiology":3},"recent":[{"risk_level":"High","recommended_department":"Cardiology","patient_input":{"symptoms":"chest pain"}}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	s, err := c.DashboardSummary(context.Background())
	if err != nil {
		t.Fatalf("DashboardSummary: %v", err)
	}
	if s.TotalTriages != 4 || s.ByRiskLevel["High"] != 3 {
		t.Errorf("summary = %+v", s)
	}
	if len(s.Recent) != 1 || s.Recent[0].PatientInput.Symptoms != "chest pain" {
		t.Errorf("recent = %+v", s.Recent)
	}
}

func TestDashboardHistory(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/dashboard/history" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"history":[{"id":"t1","risk_level":"Low","recommended_department":"General Medicine"}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	entries, err := c.DashboardHistory(context.Background())
	if err != nil {
		t.Fatalf("DashboardHistory: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "t1" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestNewTrimsTrailingSlash(t *testing.T) {
	t.Parallel()

	c := New("http://triage.internal/")
	if c.baseURL != "http://triage.internal" {
		t.Errorf("baseURL = %q", c.baseURL)
	}
}
