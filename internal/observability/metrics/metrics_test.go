package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestConversationMetricsObserve(t *testing.T) {
	m := NewConversationMetrics(prometheus.NewRegistry())
	m.ObserveTurn("ONGOING")
	m.ObserveLLMRequest("extract", "ok")
	m.ObserveLeadSaved()
	m.ObserveEmail("sent")
	m.ObserveTurnLatency(0.5)
}

func TestConversationMetricsNilSafe(t *testing.T) {
	var m *ConversationMetrics
	m.ObserveTurn("ENDED")
	m.ObserveLLMRequest("detect_end", "error")
	m.ObserveLeadSaved()
	m.ObserveEmail("failed")
	m.ObserveTurnLatency(0.1)
}
