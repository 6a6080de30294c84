package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	pkgvalidator "github.com/johnquangdev/fathom-relay/pkg/validator"

	"github.com/johnquangdev/fathom-relay/internal/adapter/handler"
	"github.com/johnquangdev/fathom-relay/internal/infrastructure/cache"
	"github.com/johnquangdev/fathom-relay/internal/infrastructure/external/slack"
	httpmw "github.com/johnquangdev/fathom-relay/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/fathom-relay/internal/infrastructure/metrics"
	"github.com/johnquangdev/fathom-relay/internal/usecase/analysis"
	"github.com/johnquangdev/fathom-relay/internal/usecase/health"
	"github.com/johnquangdev/fathom-relay/internal/usecase/intake"
	"github.com/johnquangdev/fathom-relay/internal/usecase/notify"
	pkgai "github.com/johnquangdev/fathom-relay/pkg/ai"
	"github.com/johnquangdev/fathom-relay/pkg/config"
	pkglogger "github.com/johnquangdev/fathom-relay/pkg/logger"
)

// @title           Fathom Relay API
// @version         1.0
// @description     Receives call-completion webhooks, summarizes transcripts and posts them to Slack

// @BasePath  /

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := pkglogger.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// Initialize Echo instance
	e := echo.New()
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = true

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(httpmw.RequestLogger(logger, m))
	e.Use(httpmw.Recover(logger))
	e.Use(middleware.BodyLimit("10M"))

	// Initialize dependencies
	logger.Info("🔧 Initializing dependencies...")

	processed := cache.NewProcessedSet()

	// Initialize analysis provider
	logger.Info("🤖 Initializing analyzer...", zap.String("provider", cfg.Analyzer.Provider))
	var completer analysis.Completer
	switch {
	case !cfg.AnalysisConfigured():
		logger.Warn("⚠️  No analysis API key configured; calls will be posted without a summary",
			zap.String("provider", cfg.Analyzer.Provider))
	case cfg.Analyzer.Provider == config.ProviderGroq:
		completer = pkgai.NewGroqClient(&cfg.Groq, cfg.Analyzer.Timeout)
	default:
		completer = pkgai.NewAnthropicClient(&cfg.Anthropic, cfg.Analyzer.Timeout)
	}
	analyzer := analysis.NewService(completer, analysis.Options{
		Timeout:         cfg.Analyzer.Timeout,
		RetryMaxElapsed: cfg.Analyzer.RetryMaxElapsed,
	}, logger, m)

	// Initialize Slack client
	logger.Info("💬 Initializing Slack client...")
	if cfg.Slack.BotToken != "" && cfg.Slack.Channel == "" {
		logger.Warn("⚠️  SLACK_BOT_TOKEN is set without SLACK_CHANNEL; bot delivery disabled")
	}
	slackClient := slack.NewClient(&cfg.Slack)
	if slackClient.Configured() {
		logger.Info("✅ Slack delivery configured",
			zap.String("mode", slackClient.Mode()),
			zap.String("channel", slackClient.Channel()))
	} else {
		logger.Warn("⚠️  Slack not configured; notifications will be skipped")
	}
	notifier := notify.NewService(slackClient, cfg.Slack.Timeout, logger, m)

	intakeService := intake.NewService(processed, analyzer, notifier, pkgvalidator.New(), intake.Options{
		RequireTranscript: cfg.Analyzer.RequireTranscript,
		RollbackOnFailure: cfg.Dedup.RollbackOnFailure,
	}, logger, m)

	reporter := health.NewReporter(analyzer.Configured(), notifier.Configured(), processed)

	// Setup router with handlers
	logger.Info("🛣️  Setting up routes...")
	router := handler.NewRouter(
		handler.NewWebhookHandler(intakeService, logger),
		handler.NewHealthHandler(reporter),
		m,
		logger,
	)
	router.Setup(e)

	// Start server
	addr := cfg.GetServerAddr()
	go func() {
		logger.Info("🚀 Starting server",
			zap.String("addr", addr),
			zap.String("environment", cfg.Server.Environment),
			zap.Bool("analysis_configured", cfg.AnalysisConfigured()),
			zap.Bool("notifier_configured", cfg.NotifierConfigured()),
		)
		logger.Info("🔗 Endpoints",
			zap.String("webhook", "POST /webhook/fathom"),
			zap.String("health", "GET /health"),
			zap.Bool("metrics", m != nil),
		)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal("❌ Server forced to shutdown", zap.Error(err))
	}

	logger.Info("✅ Server stopped gracefully")
}
