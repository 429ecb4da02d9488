package metrics

import "github.com/prometheus/client_golang/prometheus"

// ConversationMetrics exposes counters/histograms for the chat flow.
type ConversationMetrics struct {
	turnsTotal  *prometheus.CounterVec
	llmTotal    *prometheus.CounterVec
	leadsSaved  prometheus.Counter
	emailsTotal *prometheus.CounterVec
	turnLatency prometheus.Histogram
}

func NewConversationMetrics(reg prometheus.Registerer) *ConversationMetrics {
	m := &ConversationMetrics{
		turnsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadflow",
			Subsystem: "conversation",
			Name:      "turns_total",
			Help:      "Total chat turns processed, by resulting state",
		}, []string{"status"}),
		llmTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadflow",
			Subsystem: "conversation",
			Name:      "llm_requests_total",
			Help:      "Total completion-service calls, by operation and outcome",
		}, []string{"operation", "outcome"}),
		leadsSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "leadflow",
			Subsystem: "leads",
			Name:      "saved_total",
			Help:      "Total lead rows appended to the spreadsheet",
		}),
		emailsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadflow",
			Subsystem: "notify",
			Name:      "emails_total",
			Help:      "Total follow-up email sends, by final status",
		}, []string{"status"}),
		turnLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "leadflow",
			Subsystem: "conversation",
			Name:      "turn_latency_seconds",
			Help:      "Latency of one chat turn end to end",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.turnsTotal, m.llmTotal, m.leadsSaved, m.emailsTotal, m.turnLatency)
	return m
}

func (m *ConversationMetrics) ObserveTurn(status string) {
	if m == nil {
		return
	}
	m.turnsTotal.WithLabelValues(status).Inc()
}

func (m *ConversationMetrics) ObserveLLMRequest(operation, outcome string) {
	if m == nil {
		return
	}
	m.llmTotal.WithLabelValues(operation, outcome).Inc()
}

func (m *ConversationMetrics) ObserveLeadSaved() {
	if m == nil {
		return
	}
	m.leadsSaved.Inc()
}

func (m *ConversationMetrics) ObserveEmail(status string) {
	if m == nil {
		return
	}
	m.emailsTotal.WithLabelValues(status).Inc()
}

func (m *ConversationMetrics) ObserveTurnLatency(seconds float64) {
	if m == nil {
		return
	}
	m.turnLatency.Observe(seconds)
}
