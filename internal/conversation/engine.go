package conversation

import (
	"context"
	"strings"

	"github.com/technosurge/leadflow/internal/leads"
	"github.com/technosurge/leadflow/internal/observability/metrics"
	"github.com/technosurge/leadflow/pkg/logging"
)

// LeadMailer sends the follow-up marketing email once a conversation ends.
// The boolean result reports delivery success; failures never propagate.
type LeadMailer interface {
	SendToLead(ctx context.Context, lead leads.Lead) bool
}

// Engine is the conversation state machine. Each inbound turn moves a session
// through ONGOING -> AWAITING_FINAL_CONFIRMATION -> ENDED, keeping the lead
// current and firing the persist/email side effects exactly once on entering
// ENDED.
type Engine struct {
	extractor *LeadExtractor
	detector  *EndDetector
	responder *Responder
	persister *LeadPersister
	mailer    LeadMailer
	metrics   *metrics.ConversationMetrics
	logger    *logging.Logger
}

// NewEngine wires the conversation components together. mailer may be nil
// when outbound email is disabled.
func NewEngine(extractor *LeadExtractor, detector *EndDetector, responder *Responder, persister *LeadPersister, mailer LeadMailer, m *metrics.ConversationMetrics, logger *logging.Logger) *Engine {
	if logger == nil {
		logger = logging.Default()
	}
	return &Engine{
		extractor: extractor,
		detector:  detector,
		responder: responder,
		persister: persister,
		mailer:    mailer,
		metrics:   m,
		logger:    logger,
	}
}

// Turn processes one inbound chat turn against the session and returns the
// assistant's reply. The session is mutated in place; the caller owns
// persistence and per-session serialization.
func (e *Engine) Turn(ctx context.Context, sess *Session, message string) string {
	message = strings.TrimSpace(message)

	// A turn without a message is tolerated: greet on a fresh session,
	// otherwise replay the last assistant reply without mutating history so
	// a reconnecting client never sees the conversation restart.
	if message == "" {
		if len(sess.Messages) == 0 {
			sess.Append(ChatRoleAssistant, greetingReply)
			e.metrics.ObserveTurn(string(sess.Status))
			return greetingReply
		}
		e.metrics.ObserveTurn(string(sess.Status))
		return e.lastAssistantReply(sess)
	}

	if sess.Ended() {
		// Terminal for the conversation loop: no extraction, no side effects.
		e.metrics.ObserveTurn(string(sess.Status))
		return farewellReply(sess.Lead.DisplayName())
	}

	sess.Append(ChatRoleUser, message)

	// The extractor runs on every non-terminal turn to keep the lead current.
	sess.Lead = e.extractor.Extract(ctx, message, sess.Lead)

	var reply string
	switch sess.Status {
	case StatusAwaitingConfirmation:
		if isNegativeClosing(message) {
			e.finish(ctx, sess)
			reply = farewellReply(sess.Lead.DisplayName())
		} else {
			// The user introduced a new need; the ended judgement is revoked.
			sess.Status = StatusOngoing
			reply = e.responder.Reply(ctx, sess.Messages)
		}

	default: // StatusOngoing
		if ClassifyIntent(message) == IntentEnd {
			reply = e.responder.Reply(ctx, sess.Messages)
			e.finish(ctx, sess)
		} else {
			verdict := e.detector.Detect(ctx, sess.Messages)
			if verdict.Ended && sess.Lead.HasEmail() && !sess.ConfirmationAsked {
				sess.Status = StatusAwaitingConfirmation
				sess.ConfirmationAsked = true
				reply = confirmationPrompt
			} else {
				reply = e.responder.Reply(ctx, sess.Messages)
			}
		}
	}

	sess.Append(ChatRoleAssistant, reply)
	e.metrics.ObserveTurn(string(sess.Status))
	return reply
}

// lastAssistantReply returns the most recent assistant message, falling back
// to the greeting when the history holds none.
func (e *Engine) lastAssistantReply(sess *Session) string {
	for i := len(sess.Messages) - 1; i >= 0; i-- {
		if sess.Messages[i].Role == ChatRoleAssistant {
			return sess.Messages[i].Content
		}
	}
	return greetingReply
}

// finish enters the terminal state and fires the persist and email side
// effects. Both are attempts: failures degrade to false flags, never errors.
func (e *Engine) finish(ctx context.Context, sess *Session) {
	sess.Status = StatusEnded

	lead, saved := e.persister.Save(ctx, sess.Lead, sess.Messages)
	sess.Lead = lead
	sess.LeadSaved = saved

	if sess.Lead.HasEmail() && e.mailer != nil {
		sess.EmailSent = e.mailer.SendToLead(ctx, sess.Lead)
	}

	e.logger.Info("conversation ended",
		"name", sess.Lead.Name,
		"email", sess.Lead.Email,
		"lead_saved", sess.LeadSaved,
		"email_sent", sess.EmailSent,
	)
}
