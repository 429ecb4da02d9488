package conversation

import (
	"context"
	"encoding/json"

	"github.com/technosurge/leadflow/internal/leads"
	"github.com/technosurge/leadflow/internal/observability/metrics"
	"github.com/technosurge/leadflow/internal/sheet"
	"github.com/technosurge/leadflow/pkg/logging"
)

// LeadPersister finalizes a lead when the conversation ends: it summarizes
// the transcript via the completion service and appends a row to the
// spreadsheet.
type LeadPersister struct {
	llm     LLMClient
	model   string
	store   sheet.RowStore
	metrics *metrics.ConversationMetrics
	logger  *logging.Logger
}

// NewLeadPersister creates a lead persister. store may be nil when the
// spreadsheet is unavailable; Save then degrades to a no-op.
func NewLeadPersister(llm LLMClient, model string, store sheet.RowStore, m *metrics.ConversationMetrics, logger *logging.Logger) *LeadPersister {
	if llm == nil {
		panic("conversation: persister LLM client cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &LeadPersister{llm: llm, model: model, store: store, metrics: m, logger: logger}
}

// Save attaches a 2-3 sentence summary to the lead and appends
// [name, email, summary] to the spreadsheet. It returns the (possibly
// summarized) lead and whether a row was written. Without a reachable
// spreadsheet the lead is returned unchanged. Save does not deduplicate;
// callers gate re-invocation through the session state machine.
func (p *LeadPersister) Save(ctx context.Context, lead leads.Lead, history []ChatMessage) (leads.Lead, bool) {
	if p.store == nil {
		p.logger.Warn("spreadsheet unavailable, lead not persisted",
			"name", lead.Name, "email", lead.Email)
		return lead, false
	}

	lead.Summary = p.summarize(ctx, history)

	row := sheet.Row{Name: lead.Name, Email: lead.Email, Summary: lead.Summary}
	if err := p.store.Append(ctx, row); err != nil {
		p.logger.Error("failed to append lead row", "error", err, "email", lead.Email)
		return lead, false
	}

	p.metrics.ObserveLeadSaved()
	p.logger.Info("lead saved to spreadsheet", "name", lead.Name, "email", lead.Email)
	return lead, true
}

func (p *LeadPersister) summarize(ctx context.Context, history []ChatMessage) string {
	raw, err := json.Marshal(history)
	if err != nil {
		p.logger.Error("failed to encode history for summary", "error", err)
		return ""
	}

	resp, err := p.llm.Complete(ctx, LLMRequest{
		Model:    p.model,
		System:   []string{summarySystemPrompt},
		Messages: []ChatMessage{{Role: ChatRoleUser, Content: string(raw)}},
	})
	if err != nil {
		p.metrics.ObserveLLMRequest("summarize", "error")
		p.logger.Error("conversation summary failed, saving without summary", "error", err)
		return ""
	}
	p.metrics.ObserveLLMRequest("summarize", "ok")
	return resp.Text
}
