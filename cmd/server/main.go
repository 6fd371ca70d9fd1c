package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/yourusername/media-fetch-go/api"
	"github.com/yourusername/media-fetch-go/internal/app"
	"github.com/yourusername/media-fetch-go/internal/infrastructure"
	"github.com/yourusername/media-fetch-go/internal/session"
	"github.com/yourusername/media-fetch-go/pkg/logger"
)

var configPath = flag.String("config", "", "Path to config file")

func main() {
	flag.Parse()

	// Load configuration
	config, err := app.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:      config.Logging.Level,
		Format:     config.Logging.Format,
		OutputPath: config.Logging.OutputPath,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if config.Telegram.Token == "" {
		log.Fatal("Telegram token not configured, set MEDIAFETCH_TELEGRAM_TOKEN or telegram.token")
	}

	log.Info("Starting media-fetch server",
		zap.String("version", "1.0.0"),
		zap.String("host", config.Server.Host),
		zap.Int("port", config.Server.Port),
		zap.Bool("webhook", config.Telegram.UseWebhook))

	// Create workspace root for downloads
	if err := os.MkdirAll(config.Download.WorkspaceRoot, 0755); err != nil {
		log.Fatal("Failed to create workspace root", zap.Error(err))
	}

	// Wire the pipeline
	engine := infrastructure.NewYTDLPEngine(&config.Engine, log)
	transport := infrastructure.NewTelegramTransport(&config.Telegram, log)
	sessions := session.NewStore(config.Session.TTL)
	executor := app.NewExecutor(engine, config.Download.WorkspaceRoot, log)
	delivery := app.NewDeliveryRouter(transport, config.Download.MaxSendBytes, log)
	pipeline := app.NewPipeline(engine, transport, sessions, executor, delivery, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if config.Session.TTL > 0 {
		go sessions.StartJanitor(ctx, config.Session.SweepInterval)
	}

	// Setup HTTP router
	webhookPath := ""
	if config.Telegram.UseWebhook {
		webhookPath = config.Telegram.WebhookPath
	}
	router := api.SetupRouter(sessions, transport, pipeline, webhookPath, log)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info("HTTP server listening", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Receive updates via long polling unless the webhook is configured
	if !config.Telegram.UseWebhook {
		go func() {
			if err := transport.Poll(ctx, pipeline); err != nil && ctx.Err() == nil {
				log.Error("Polling stopped", zap.Error(err))
			}
		}()
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal")

	log.Info("Shutting down server...")
	cancel()

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}
