package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pioneering-site/internal/config"
	"pioneering-site/internal/database"
	"pioneering-site/internal/handlers"
	"pioneering-site/internal/logging"
	"pioneering-site/internal/repository"
	"pioneering-site/internal/router"
	"pioneering-site/internal/services"
)

func main() {
	// ──── Step 1: Load Environment Variables ────
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	if _, err := logging.Init(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile}); err != nil {
		fmt.Fprintf(os.Stderr, "logging setup failed: %v\n", err)
		os.Exit(1)
	}
	slog.Info("starting pioneering site backend", "env", cfg.Env)

	systemInstruction, err := cfg.SystemInstruction(services.DefaultSystemInstruction)
	if err != nil {
		slog.Error("system instruction unavailable", "error", err)
		os.Exit(1)
	}

	// ──── Step 2: Initialize Gemini Provider ────
	if cfg.GeminiAPIKey == "" {
		slog.Warn("GEMINI_API_KEY is not set, chat requests will fail")
	}
	completer, closeCompleter, err := services.NewCompleter(context.Background(), services.CompleterOptions{
		Backend: cfg.GeminiBackend,
		BaseURL: cfg.GeminiBaseURL,
		Model:   cfg.GeminiModel,
		APIKey:  cfg.GeminiAPIKey,
		Timeout: time.Duration(cfg.GeminiTimeoutSeconds) * time.Second,
	})
	if completer == nil {
		slog.Error("gemini provider setup failed", "error", err)
		os.Exit(1)
	}
	if err != nil {
		slog.Warn("gemini provider unavailable, chat requests will fail", "backend", cfg.GeminiBackend, "error", err)
	}
	defer closeCompleter()
	slog.Info("gemini provider ready", "backend", cfg.GeminiBackend, "model", cfg.GeminiModel)

	// ──── Step 3: Initialize Lead Capture ────
	var mailer services.Mailer
	if cfg.EmailJSEnabled() {
		mailer = services.NewEmailJSMailer(cfg.EmailJSServiceID, cfg.EmailJSTemplateID, cfg.EmailJSPublicKey, cfg.EmailJSPrivateKey)
		slog.Info("lead notifications via EmailJS")
	} else {
		mailer = services.NewEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
	}
	leadService := services.NewLeadService(mailer, cfg.LeadNotifyEmail, cfg.SiteName)

	// ──── Step 4: Optional Lead Archive (PostgreSQL) ────
	if cfg.DatabaseURL != "" {
		pool, err := database.NewPostgresPool(cfg.DatabaseURL)
		if err != nil {
			slog.Error("PostgreSQL connection failed", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := database.RunMigrations(pool, "migrations"); err != nil {
			slog.Error("database migration failed", "error", err)
			os.Exit(1)
		}
		leadService.WithArchive(repository.NewLeadRepo(pool))
		slog.Info("lead archive enabled")
	}

	// ──── Step 5: Optional Lead Dedupe (Redis) ────
	if cfg.RedisURL != "" {
		redisClient, err := database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			slog.Error("Redis connection failed", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()

		window := time.Duration(cfg.LeadDedupWindowSeconds) * time.Second
		leadService.WithDeduper(repository.NewLeadDeduper(redisClient, window))
		slog.Info("lead dedupe enabled", "window", window.String())
	}

	// ──── Step 6: Initialize Handlers ────
	chatHandler := handlers.NewChatHandler(completer, systemInstruction)
	leadHandler := handlers.NewLeadHandler(leadService)

	// ──── Step 7: Start HTTP Server ────
	r := router.New(chatHandler, leadHandler, cfg.AllowedOrigin, cfg.StaticDir)

	// WriteTimeout must outlast one upstream call.
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: time.Duration(cfg.GeminiTimeoutSeconds+15) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		slog.Error("listen failed", "addr", server.Addr, "error", err)
		os.Exit(1)
	}

	slog.Info("server ready",
		"addr", fmt.Sprintf("http://localhost:%s", cfg.Port),
		"chat", "/api/chat",
		"leads", "/api/leads",
	)

	if err := serve(server, ln, sigChan, 30*time.Second); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

// serve runs server on ln until stop fires, then drains in-flight requests
// for up to grace before returning.
func serve(server *http.Server, ln net.Listener, stop <-chan os.Signal, grace time.Duration) error {
	drained := make(chan error, 1)
	go func() {
		<-stop
		slog.Info("shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), grace)
		defer cancel()
		drained <- server.Shutdown(ctx)
	}()

	if err := server.Serve(ln); err != http.ErrServerClosed {
		return err
	}
	return <-drained
}
