package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// OutreachMetrics records ingestion volume and automation sink outcomes.
type OutreachMetrics struct {
	leadsIngested *prometheus.CounterVec
	sinkSuccess   *prometheus.CounterVec
	sinkFailure   *prometheus.CounterVec
}

// NewOutreachMetrics registers the outreach metrics on the provided registerer.
func NewOutreachMetrics(reg prometheus.Registerer) *OutreachMetrics {
	if reg == nil {
		return &OutreachMetrics{}
	}
	leadsIngested := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "leads_ingested_total",
		Help: "Lead rows persisted from CSV uploads.",
	}, []string{"campaign_id"})
	sinkSuccess := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "automation_dispatch_success_total",
		Help: "Successful automation webhook dispatches.",
	}, []string{"event"})
	sinkFailure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "automation_dispatch_failure_total",
		Help: "Failed automation webhook dispatches.",
	}, []string{"event"})
	reg.MustRegister(leadsIngested, sinkSuccess, sinkFailure)
	return &OutreachMetrics{
		leadsIngested: leadsIngested,
		sinkSuccess:   sinkSuccess,
		sinkFailure:   sinkFailure,
	}
}

// AddLeadsIngested records persisted lead rows for a campaign.
func (m *OutreachMetrics) AddLeadsIngested(campaignID string, count int) {
	if m == nil || m.leadsIngested == nil || count <= 0 {
		return
	}
	m.leadsIngested.WithLabelValues(normalizeLabel(campaignID)).Add(float64(count))
}

// IncSinkSuccess increments the success counter for the named webhook event.
func (m *OutreachMetrics) IncSinkSuccess(event string) {
	if m == nil || m.sinkSuccess == nil {
		return
	}
	m.sinkSuccess.WithLabelValues(normalizeLabel(event)).Inc()
}

// IncSinkFailure increments the failure counter for the named webhook event.
func (m *OutreachMetrics) IncSinkFailure(event string) {
	if m == nil || m.sinkFailure == nil {
		return
	}
	m.sinkFailure.WithLabelValues(normalizeLabel(event)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
