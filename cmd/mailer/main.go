// Command mailer runs one batch pass over the lead spreadsheet and sends
// follow-up emails to every lead that has a real address and no SENT status
// yet. It exists for re-driving sends after an outage and for cron-style
// deployments without the chat API.
package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	openai "github.com/sashabaranov/go-openai"
	"github.com/technosurge/leadflow/cmd/mainconfig"
	appconfig "github.com/technosurge/leadflow/internal/config"
	"github.com/technosurge/leadflow/internal/conversation"
	"github.com/technosurge/leadflow/internal/leads"
	"github.com/technosurge/leadflow/internal/notify"
	"github.com/technosurge/leadflow/internal/observability/metrics"
	"github.com/technosurge/leadflow/internal/sheet"
	"github.com/technosurge/leadflow/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	ctx := context.Background()

	if cfg.SpreadsheetID == "" {
		logger.Error("LEAD_SPREADSHEET_ID is required")
		os.Exit(1)
	}
	store, err := sheet.NewGoogleStore(ctx, sheet.GoogleConfig{
		CredentialsBase64: cfg.SheetCredentialsBase64,
		SpreadsheetID:     cfg.SpreadsheetID,
		SheetName:         cfg.SheetName,
	}, logger)
	if err != nil {
		logger.Error("failed to initialize Google Sheets store", "error", err)
		os.Exit(1)
	}

	sender := mainconfig.EmailSender(ctx, cfg, logger)
	if sender == nil {
		logger.Error("email provider not configured", "provider", cfg.EmailProvider)
		os.Exit(1)
	}

	var llm conversation.LLMClient
	if cfg.OpenAIAPIKey != "" {
		llm = conversation.NewOpenAIClient(openai.NewClient(cfg.OpenAIAPIKey), cfg.OpenAIEmailModel, cfg.CompletionTimeout)
	} else {
		logger.Warn("OPENAI_API_KEY not set, using canned follow-up drafts")
	}

	m := metrics.NewConversationMetrics(nil)
	composer := notify.NewComposer(llm, cfg.OpenAIEmailModel, m, logger)
	mailer := notify.NewMailer(composer, sender, store, notify.MailerConfig{
		MaxRetries: cfg.EmailMaxRetries,
		RetryDelay: cfg.EmailRetryDelay,
	}, m, logger)

	rows, err := store.Rows(ctx)
	if err != nil {
		logger.Error("failed to read lead rows", "error", err)
		os.Exit(1)
	}

	var sent, skipped, failed int
	for _, row := range rows {
		lead := leads.Lead{Name: row.Name, Email: row.Email, Summary: row.Summary}
		if !lead.HasEmail() || row.Status == sheet.StatusSent {
			skipped++
			continue
		}
		if mailer.SendToLead(ctx, lead) {
			sent++
		} else {
			failed++
		}
	}

	logger.Info("mailer run complete", "rows", len(rows), "sent", sent, "skipped", skipped, "failed", failed)
	if failed > 0 {
		os.Exit(1)
	}
}
