package conversation

import (
	"context"

	"github.com/technosurge/leadflow/internal/observability/metrics"
	"github.com/technosurge/leadflow/pkg/logging"
)

const (
	responderMaxTokens   = 200
	responderTemperature = 0.7
)

// Responder composes the assistant's reply from the sales system prompt and
// the full message history.
type Responder struct {
	llm     LLMClient
	model   string
	metrics *metrics.ConversationMetrics
	logger  *logging.Logger
}

// NewResponder creates a conversation responder.
func NewResponder(llm LLMClient, model string, m *metrics.ConversationMetrics, logger *logging.Logger) *Responder {
	if llm == nil {
		panic("conversation: responder LLM client cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Responder{llm: llm, model: model, metrics: m, logger: logger}
}

// Reply generates the next assistant turn. The conversation must always
// produce a reply, so any service failure degrades to a static apology.
func (r *Responder) Reply(ctx context.Context, history []ChatMessage) string {
	resp, err := r.llm.Complete(ctx, LLMRequest{
		Model:       r.model,
		System:      []string{salesSystemPrompt},
		Messages:    history,
		MaxTokens:   responderMaxTokens,
		Temperature: responderTemperature,
	})
	if err != nil {
		r.metrics.ObserveLLMRequest("respond", "error")
		r.logger.Error("responder completion failed, using apology reply", "error", err)
		return apologyReply
	}
	r.metrics.ObserveLLMRequest("respond", "ok")
	return resp.Text
}
