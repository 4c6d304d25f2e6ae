package workflow

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsHooks(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	hooks := m.Hooks()

	hooks.OnLane(LaneTriage, OutcomeSuccess, 0.25)
	hooks.OnLane(LaneTriage, OutcomeSuccess, 0.75)
	hooks.OnLane(LaneUpload, OutcomeError, 1.5)
	hooks.OnRefreshDone(nil)
	hooks.OnRefreshDone(errors.New("boom"))

	if got := testutil.ToFloat64(m.LanesTotal.WithLabelValues(LaneTriage, OutcomeSuccess)); got != 2 {
		t.Errorf("triage success count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.LanesTotal.WithLabelValues(LaneUpload, OutcomeError)); got != 1 {
		t.Errorf("upload error count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.RefreshesTotal.WithLabelValues(OutcomeSuccess)); got != 1 {
		t.Errorf("refresh success count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.RefreshesTotal.WithLabelValues(OutcomeError)); got != 1 {
		t.Errorf("refresh error count = %v, want 1", got)
	}
}

func TestNewMetricsRegistersAll(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	NewMetrics(reg)

	// Re-registering must conflict for every metric.
	defer func() {
		if recover() == nil {
			t.Error("expected duplicate registration to panic")
		}
	}()
	NewMetrics(reg)
}
