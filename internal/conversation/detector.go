package conversation

import (
	"context"
	"encoding/json"

	"github.com/technosurge/leadflow/internal/observability/metrics"
	"github.com/technosurge/leadflow/pkg/logging"
)

// Verdict is the end-of-conversation judgement from the completion service.
type Verdict struct {
	Ended  bool   `json:"ended"`
	Reason string `json:"reason"`
}

// EndDetector asks the completion service whether the conversation objective
// (name + email captured AND expressed interest) has been met.
type EndDetector struct {
	llm     LLMClient
	model   string
	metrics *metrics.ConversationMetrics
	logger  *logging.Logger
}

// NewEndDetector creates an end-of-conversation detector.
func NewEndDetector(llm LLMClient, model string, m *metrics.ConversationMetrics, logger *logging.Logger) *EndDetector {
	if llm == nil {
		panic("conversation: detector LLM client cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &EndDetector{llm: llm, model: model, metrics: m, logger: logger}
}

// Detect judges the full conversation memory. On any service or parse
// failure it fails open toward continuing: ended=false.
func (d *EndDetector) Detect(ctx context.Context, history []ChatMessage) Verdict {
	raw, err := json.Marshal(history)
	if err != nil {
		d.logger.Error("failed to encode history for end detection", "error", err)
		return Verdict{}
	}

	resp, err := d.llm.Complete(ctx, LLMRequest{
		Model:    d.model,
		System:   []string{endDetectionSystemPrompt},
		Messages: []ChatMessage{{Role: ChatRoleUser, Content: string(raw)}},
	})
	if err != nil {
		d.metrics.ObserveLLMRequest("detect_end", "error")
		d.logger.Error("end detection failed, continuing conversation", "error", err)
		return Verdict{}
	}

	var verdict Verdict
	if err := json.Unmarshal([]byte(resp.Text), &verdict); err != nil {
		d.metrics.ObserveLLMRequest("detect_end", "parse_error")
		d.logger.Warn("end detection returned malformed JSON, continuing conversation",
			"error", err, "raw", resp.Text)
		return Verdict{}
	}
	d.metrics.ObserveLLMRequest("detect_end", "ok")

	if verdict.Ended {
		d.logger.Info("conversation objective detected as met", "reason", verdict.Reason)
	}
	return verdict
}
