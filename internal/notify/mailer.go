package notify

import (
	"context"
	"time"

	"github.com/technosurge/leadflow/internal/leads"
	"github.com/technosurge/leadflow/internal/observability/metrics"
	"github.com/technosurge/leadflow/internal/sheet"
	"github.com/technosurge/leadflow/pkg/logging"
)

// Mailer composes and sends follow-up emails to captured leads, retrying
// transient failures and recording the outcome on the lead's spreadsheet row.
type Mailer struct {
	composer   *Composer
	sender     EmailSender
	store      sheet.RowStore
	maxRetries int
	retryDelay time.Duration
	sleep      func(time.Duration)
	metrics    *metrics.ConversationMetrics
	logger     *logging.Logger
}

// MailerConfig holds Mailer settings.
type MailerConfig struct {
	MaxRetries int
	RetryDelay time.Duration
}

// NewMailer creates a follow-up mailer. The store is optional; when set, the
// lead's row status is updated to SENT or FAILED after the attempt.
func NewMailer(composer *Composer, sender EmailSender, store sheet.RowStore, cfg MailerConfig, m *metrics.ConversationMetrics, logger *logging.Logger) *Mailer {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 5 * time.Second
	}
	return &Mailer{
		composer:   composer,
		sender:     sender,
		store:      store,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		sleep:      time.Sleep,
		metrics:    m,
		logger:     logger,
	}
}

// SendToLead drafts and sends the follow-up email for a lead. It reports
// whether the send ultimately succeeded; failures are logged and reflected in
// the sheet status rather than propagated.
func (m *Mailer) SendToLead(ctx context.Context, lead leads.Lead) bool {
	if m.sender == nil {
		m.logger.Warn("no email sender configured, skipping follow-up", "email", lead.Email)
		return false
	}
	if !lead.HasEmail() {
		return false
	}

	subject, body := m.composer.Compose(ctx, lead)
	msg := EmailMessage{
		To:      lead.Email,
		ToName:  lead.DisplayName(),
		Subject: subject,
		Body:    body,
	}

	var lastErr error
	for attempt := 1; attempt <= m.maxRetries; attempt++ {
		if err := m.sender.Send(ctx, msg); err != nil {
			lastErr = err
			m.logger.Warn("follow-up send attempt failed",
				"attempt", attempt, "max_retries", m.maxRetries, "to", lead.Email, "error", err)
			if attempt < m.maxRetries {
				m.sleep(m.retryDelay)
			}
			continue
		}
		m.metrics.ObserveEmail("sent")
		m.recordStatus(ctx, lead.Email, sheet.StatusSent)
		m.logger.Info("follow-up email sent", "to", lead.Email, "attempts", attempt)
		return true
	}

	m.metrics.ObserveEmail("failed")
	m.recordStatus(ctx, lead.Email, sheet.StatusFailed)
	m.logger.Error("follow-up email failed after retries", "to", lead.Email, "error", lastErr)
	return false
}

// recordStatus is best effort; a sheet write failure never changes the send
// outcome.
func (m *Mailer) recordStatus(ctx context.Context, email, status string) {
	if m.store == nil {
		return
	}
	if err := m.store.UpdateStatus(ctx, email, status); err != nil {
		m.logger.Warn("failed to record email status", "email", email, "status", status, "error", err)
	}
}
