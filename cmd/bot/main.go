package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tradeassist/internal/config"
	"tradeassist/internal/handler"
	"tradeassist/internal/i18n"
	"tradeassist/internal/middleware"
	"tradeassist/internal/report"
	"tradeassist/internal/service"
	"tradeassist/internal/storage"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := cfg.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting trading assistant bot",
		zap.String("storage", cfg.Storage.Driver),
		zap.String("currency", cfg.Report.Currency),
	)

	// Open user store
	userRepo, closeStore, err := storage.Open(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open user store", zap.Error(err))
	}
	defer closeStore()

	// Initialize services
	texts := i18n.Default()
	conversationService := service.NewConversationService(userRepo, texts, report.NewStatic(cfg.Report.Currency), logger)
	statsService := service.NewStatsService(userRepo, logger)

	// Initialize Telegram bot
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: cfg.PollTimeout},
		OnError: func(err error, c tele.Context) {
			logger.Error("Telegram error", zap.Error(err))
		},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	logger.Info("Telegram bot initialized", zap.String("username", bot.Me.Username))

	bot.Use(middleware.RecoverMiddleware(logger), middleware.LoggingMiddleware(logger))

	// Initialize handler
	h := handler.NewHandler(bot, conversationService, texts, logger)
	h.RegisterHandlers()
	if err := h.SetCommands(); err != nil {
		logger.Warn("Failed to publish command menu", zap.Error(err))
	}

	logger.Info("Handlers registered")

	// Start stats job in background
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go runStatsJob(ctx, statsService, cfg.StatsInterval, logger)

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	// Graceful shutdown
	bot.Stop()
	cancel()

	logger.Info("Bot stopped gracefully")
}

// runStatsJob logs user statistics periodically
func runStatsJob(ctx context.Context, statsService *service.StatsService, interval time.Duration, logger *zap.Logger) {
	// Run once at startup; errors are logged by the service
	_ = statsService.LogSnapshot()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Stats job stopped")
			return
		case <-ticker.C:
			_ = statsService.LogSnapshot()
		}
	}
}
