package observability

import (
	"testing"
	"time"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	m.RecordRequest("/api/forms", "GET", 200, 5*time.Millisecond)
	m.RecordRequest("/api/forms", "GET", 200, 7*time.Millisecond)
	m.RecordRequest("/api/forms", "POST", 400, time.Millisecond)

	if got := m.RequestTotal("/api/forms", "GET", 200); got != 2 {
		t.Errorf("expected 2 recorded requests, got %d", got)
	}
	if got := m.RequestTotal("/api/forms", "POST", 400); got != 1 {
		t.Errorf("expected 1 recorded request, got %d", got)
	}
	if got := m.RequestTotal("/api/forms", "DELETE", 200); got != 0 {
		t.Errorf("expected 0 for unrecorded key, got %d", got)
	}
}

func TestMetricsNilReceiver(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, 0)
	m.RecordError("/", "GET", "INTERNAL_ERROR")
	if got := m.RequestTotal("/", "GET", 200); got != 0 {
		t.Errorf("expected nil metrics to report 0, got %d", got)
	}
}
