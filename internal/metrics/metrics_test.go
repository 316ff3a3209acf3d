package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_Counters(t *testing.T) {
	m := MustNewMetrics(prometheus.NewRegistry())

	m.PresetServed("medium")
	m.PresetServed("medium")
	m.PresetServed("high")
	m.JobBuilt("SKEINFORGE")
	m.ObserveRequest("/api/v1/presets/{quality}", "GET", 200, 3*time.Millisecond)
	m.ObserveRequest("", "GET", 404, time.Millisecond)

	if got := testutil.ToFloat64(m.presetsServed.WithLabelValues("medium")); got != 2 {
		t.Errorf("presets_served{medium} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.jobsBuilt.WithLabelValues("SKEINFORGE")); got != 1 {
		t.Errorf("slice_jobs{SKEINFORGE} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues("unmatched", "GET", "404")); got != 1 {
		t.Errorf("requests{unmatched} = %v, want 1", got)
	}
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.PresetServed("low")
	m.JobBuilt("MIRACLEGRUE")
	m.ObserveRequest("/x", "GET", 200, 0)
}

func TestMetrics_Handler(t *testing.T) {
	m := MustNewMetrics(nil)
	m.PresetServed("low")

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	body := w.Body.String()
	if !strings.Contains(body, `slicecfg_presets_served_total{quality="low"} 1`) {
		t.Errorf("expected preset counter in exposition, got:\n%s", body)
	}
}
