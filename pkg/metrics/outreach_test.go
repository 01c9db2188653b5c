package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestOutreachMetricsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewOutreachMetrics(reg)

	m.AddLeadsIngested("campaign-1", 3)
	m.AddLeadsIngested("campaign-1", 2)
	m.AddLeadsIngested("campaign-1", 0)
	m.IncSinkSuccess("leads_uploaded")
	m.IncSinkFailure("campaign_created")

	if got := testutil.ToFloat64(m.leadsIngested.WithLabelValues("campaign-1")); got != 5 {
		t.Fatalf("expected 5 ingested leads, got %v", got)
	}
	if got := testutil.ToFloat64(m.sinkSuccess.WithLabelValues("leads_uploaded")); got != 1 {
		t.Fatalf("expected 1 sink success, got %v", got)
	}
	if got := testutil.ToFloat64(m.sinkFailure.WithLabelValues("campaign_created")); got != 1 {
		t.Fatalf("expected 1 sink failure, got %v", got)
	}
}

func TestNilRegistererIsSafe(t *testing.T) {
	m := NewOutreachMetrics(nil)
	m.AddLeadsIngested("campaign-1", 1)
	m.IncSinkSuccess("leads_uploaded")
	m.IncSinkFailure("leads_uploaded")
}
