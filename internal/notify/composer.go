package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/technosurge/leadflow/internal/conversation"
	"github.com/technosurge/leadflow/internal/leads"
	"github.com/technosurge/leadflow/internal/observability/metrics"
	"github.com/technosurge/leadflow/pkg/logging"
)

const composerSystemPrompt = `You are an email-writing assistant for Technosurge, an AI automation agency.
Write a warm, professional follow-up email to a prospect who just finished a chat
with our sales assistant. Thank them for their interest, briefly restate how
Technosurge's AI agents capture missed leads and automate customer engagement,
and invite them to a demo call as the next step. Keep the body under 200 words.
Respond ONLY with a JSON object of the form {"subject": "...", "body": "..."} and
nothing else.`

// Composer drafts follow-up emails for captured leads, with a static fallback
// when the model is unavailable.
type Composer struct {
	llm     conversation.LLMClient
	model   string
	metrics *metrics.ConversationMetrics
	logger  *logging.Logger
}

// NewComposer creates a follow-up email composer.
func NewComposer(llm conversation.LLMClient, model string, m *metrics.ConversationMetrics, logger *logging.Logger) *Composer {
	if logger == nil {
		logger = logging.Default()
	}
	return &Composer{llm: llm, model: model, metrics: m, logger: logger}
}

type composedEmail struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Compose returns a subject and body for the lead's follow-up email. A model
// failure or malformed response falls back to a canned draft so the send can
// still go out.
func (c *Composer) Compose(ctx context.Context, lead leads.Lead) (subject, body string) {
	if c.llm == nil {
		return c.fallback(lead)
	}

	user := fmt.Sprintf("Prospect name: %s. Conversation summary: %s", lead.DisplayName(), lead.Summary)
	resp, err := c.llm.Complete(ctx, conversation.LLMRequest{
		Model:       c.model,
		System:      []string{composerSystemPrompt},
		Messages:    []conversation.ChatMessage{{Role: conversation.ChatRoleUser, Content: user}},
		MaxTokens:   400,
		Temperature: 0.7,
	})
	if err != nil {
		c.metrics.ObserveLLMRequest("compose_email", "error")
		c.logger.Warn("email composition failed, using fallback draft", "error", err)
		return c.fallback(lead)
	}
	c.metrics.ObserveLLMRequest("compose_email", "ok")

	var draft composedEmail
	if err := json.Unmarshal([]byte(extractJSONObject(resp.Text)), &draft); err != nil || draft.Subject == "" || draft.Body == "" {
		c.logger.Warn("email composition returned malformed draft, using fallback", "raw", resp.Text)
		return c.fallback(lead)
	}
	return draft.Subject, draft.Body
}

func (c *Composer) fallback(lead leads.Lead) (string, string) {
	subject := "Thank you for your interest in Technosurge"
	body := fmt.Sprintf(`Hi %s,

Thank you for chatting with us today! We're excited to show you how Technosurge's
AI agents can capture missed leads and automate your customer engagement.

We'll be in touch shortly to schedule your demo. In the meantime, feel free to
reply to this email with any questions.

Best regards,
The Technosurge Team`, lead.DisplayName())
	return subject, body
}

// extractJSONObject trims markdown code fences and surrounding prose that
// models sometimes wrap around JSON output.
func extractJSONObject(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return s
	}
	return s[start : end+1]
}
