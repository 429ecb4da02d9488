package conversation

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/technosurge/leadflow/internal/leads"
	"github.com/technosurge/leadflow/internal/observability/metrics"
	"github.com/technosurge/leadflow/pkg/logging"
)

// LeadExtractor pulls {name, email, refused} out of the latest user utterance
// via the completion service, merging against the previously known Lead.
type LeadExtractor struct {
	llm     LLMClient
	model   string
	metrics *metrics.ConversationMetrics
	logger  *logging.Logger
}

// NewLeadExtractor creates a lead extractor.
func NewLeadExtractor(llm LLMClient, model string, m *metrics.ConversationMetrics, logger *logging.Logger) *LeadExtractor {
	if llm == nil {
		panic("conversation: extractor LLM client cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &LeadExtractor{llm: llm, model: model, metrics: m, logger: logger}
}

type extractionPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Refused bool   `json:"refused"`
}

// Extract updates prev with whatever the utterance revealed. It never fails:
// on any service or parse error the previous Lead is returned unmodified.
func (e *LeadExtractor) Extract(ctx context.Context, utterance string, prev leads.Lead) leads.Lead {
	prevName := "none"
	if prev.HasName() {
		prevName = prev.Name
	}
	prevEmail := "none"
	if prev.HasEmail() {
		prevEmail = prev.Email
	}

	resp, err := e.llm.Complete(ctx, LLMRequest{
		Model:  e.model,
		System: []string{extractionSystemPrompt},
		Messages: []ChatMessage{{
			Role:    ChatRoleUser,
			Content: fmt.Sprintf("Previous name: %s, Previous email: %s. User input: %s", prevName, prevEmail, utterance),
		}},
	})
	if err != nil {
		e.metrics.ObserveLLMRequest("extract", "error")
		e.logger.Error("lead extraction failed, keeping previous lead", "error", err)
		return prev
	}

	var payload extractionPayload
	if err := json.Unmarshal([]byte(resp.Text), &payload); err != nil {
		e.metrics.ObserveLLMRequest("extract", "parse_error")
		e.logger.Warn("lead extraction returned malformed JSON, keeping previous lead",
			"error", err, "raw", resp.Text)
		return prev
	}
	e.metrics.ObserveLLMRequest("extract", "ok")

	merged := prev.Merge(payload.Name, payload.Email)
	merged.Refused = payload.Refused
	if payload.Refused {
		e.logger.Warn("user refused to provide contact details")
	}
	return merged
}
