package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	openai "github.com/sashabaranov/go-openai"
	"github.com/technosurge/leadflow/cmd/mainconfig"
	"github.com/technosurge/leadflow/internal/api/router"
	appconfig "github.com/technosurge/leadflow/internal/config"
	"github.com/technosurge/leadflow/internal/conversation"
	"github.com/technosurge/leadflow/internal/notify"
	"github.com/technosurge/leadflow/internal/observability/metrics"
	"github.com/technosurge/leadflow/internal/sheet"
	"github.com/technosurge/leadflow/pkg/logging"
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting leadflow API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	// Metrics
	reg := prometheus.NewRegistry()
	convMetrics := metrics.NewConversationMetrics(reg)
	metricsHandler := promhttp.HandlerFor(reg, promhttp.HandlerOpts{})

	// LLM clients: OpenAI is primary, Gemini (when configured) catches
	// failures.
	if cfg.OpenAIAPIKey == "" {
		logger.Error("OPENAI_API_KEY is required")
		os.Exit(1)
	}
	var llm conversation.LLMClient = conversation.NewOpenAIClient(
		openai.NewClient(cfg.OpenAIAPIKey), cfg.OpenAIModel, cfg.CompletionTimeout)
	if cfg.GeminiAPIKey != "" {
		gemini, err := conversation.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Error("failed to initialize Gemini fallback", "error", err)
		} else {
			llm = conversation.NewFallbackLLMClient(llm, gemini, logger)
			logger.Info("Gemini fallback enabled", "model", cfg.GeminiModel)
		}
	}

	// Lead spreadsheet. A misconfigured sheet degrades to no persistence
	// rather than blocking the conversation flow.
	var rowStore sheet.RowStore
	if cfg.SpreadsheetID != "" {
		store, err := sheet.NewGoogleStore(ctx, sheet.GoogleConfig{
			CredentialsBase64: cfg.SheetCredentialsBase64,
			SpreadsheetID:     cfg.SpreadsheetID,
			SheetName:         cfg.SheetName,
		}, logger)
		if err != nil {
			logger.Error("failed to initialize Google Sheets store, leads will not be persisted", "error", err)
		} else {
			rowStore = store
		}
	} else {
		logger.Warn("LEAD_SPREADSHEET_ID not set, leads will not be persisted")
	}

	// Session store
	var sessionStore conversation.SessionStore
	switch cfg.SessionBackend {
	case "redis":
		opts := &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		sessionStore = conversation.NewRedisSessionStore(redis.NewClient(opts), cfg.SessionTTL)
		logger.Info("using redis session store", "addr", cfg.RedisAddr)
	default:
		memStore := conversation.NewMemorySessionStore(cfg.SessionTTL, logger)
		defer memStore.Close()
		sessionStore = memStore
	}

	// Email transport
	sender := mainconfig.EmailSender(ctx, cfg, logger)
	if sender == nil {
		logger.Warn("email provider not configured, follow-up emails disabled", "provider", cfg.EmailProvider)
	}

	// Conversation pipeline
	composer := notify.NewComposer(llm, cfg.OpenAIEmailModel, convMetrics, logger)
	mailer := notify.NewMailer(composer, sender, rowStore, notify.MailerConfig{
		MaxRetries: cfg.EmailMaxRetries,
		RetryDelay: cfg.EmailRetryDelay,
	}, convMetrics, logger)

	extractor := conversation.NewLeadExtractor(llm, cfg.OpenAIModel, convMetrics, logger)
	detector := conversation.NewEndDetector(llm, cfg.OpenAIModel, convMetrics, logger)
	responder := conversation.NewResponder(llm, cfg.OpenAIModel, convMetrics, logger)
	persister := conversation.NewLeadPersister(llm, cfg.OpenAIEmailModel, rowStore, convMetrics, logger)
	engine := conversation.NewEngine(extractor, detector, responder, persister, mailer, convMetrics, logger)

	chatHandler := conversation.NewHandler(engine, sessionStore, convMetrics, logger)

	r := router.New(&router.Config{
		Logger:             logger,
		ChatHandler:        chatHandler,
		MetricsHandler:     metricsHandler,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server exited")
}
