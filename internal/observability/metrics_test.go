package observability

import (
	"testing"
	"time"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	m.RecordRequest("/api/projects", "GET", 200, 5*time.Millisecond)
	m.RecordRequest("/api/projects", "GET", 200, 3*time.Millisecond)
	m.RecordRequest("/api/projects", "GET", 404, time.Millisecond)
	m.RecordError("/api/projects", "GET", "NOT_FOUND")

	if got := m.RequestCount("/api/projects", "GET", 200); got != 2 {
		t.Errorf("RequestCount(200) = %d, want 2", got)
	}
	if got := m.RequestCount("/api/projects", "GET", 404); got != 1 {
		t.Errorf("RequestCount(404) = %d, want 1", got)
	}
	if got := m.ErrorCount("/api/projects", "GET", "NOT_FOUND"); got != 1 {
		t.Errorf("ErrorCount = %d, want 1", got)
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/x", "GET", 200, 0)
	m.RecordError("/x", "GET", "INTERNAL_ERROR")
	if m.RequestCount("/x", "GET", 200) != 0 {
		t.Error("nil metrics must report zero")
	}
}
