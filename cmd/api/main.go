package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/scambait/honeypot/internal/api/router"
	appconfig "github.com/scambait/honeypot/internal/config"
	"github.com/scambait/honeypot/internal/callback"
	"github.com/scambait/honeypot/internal/detection"
	"github.com/scambait/honeypot/internal/engagement"
	"github.com/scambait/honeypot/internal/generation"
	"github.com/scambait/honeypot/internal/honeypot"
	"github.com/scambait/honeypot/internal/intel"
	"github.com/scambait/honeypot/internal/observability/metrics"
	"github.com/scambait/honeypot/internal/session"
	"github.com/scambait/honeypot/pkg/logging"
)

func main() {
	// .env is a local development convenience; absence is fine.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting agentic-honeypot API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	store := session.NewStore(logger, cfg.SessionIdleTTL)

	// Optional Redis transcript archive.
	var archive *session.TranscriptArchive
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, transcript archive disabled", "error", err)
		} else {
			archive = session.NewTranscriptArchive(client, cfg.TranscriptTTL)
			logger.Info("transcript archive enabled", "addr", cfg.RedisAddr)
		}
		cancel()
	}

	// The Groq generator is nil without an API key; the fallback
	// layer then serves scripted replies only.
	groq := generation.NewGroqGenerator(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.GroqModel, logger)
	if groq == nil {
		logger.Warn("GROQ_API_KEY not set, running on scripted replies")
	}
	var primary generation.Generator
	if groq != nil {
		primary = groq
	}
	generator := generation.NewFallbackGenerator(primary, cfg.GenerateTimeout, logger)

	reg := prometheus.NewRegistry()
	engagementMetrics := metrics.NewEngagementMetrics(reg, func() float64 {
		return float64(store.Len())
	})

	svc := honeypot.NewService(honeypot.ServiceDeps{
		Store:     store,
		Detector:  detection.NewDetector(logger, cfg.KeywordDensityThreshold),
		Extractor: intel.NewExtractor(logger),
		Machine:   engagement.NewMachine(cfg),
		Scheduler: callback.NewScheduler(cfg.MinMessages),
		Transport: callback.NewHTTPTransport(cfg.CallbackURL, cfg.CallbackTimeout, logger),
		Generator: generator,
		Archive:   archive,
		Metrics:   engagementMetrics,
		Logger:    logger,
	})

	r := router.New(&router.Config{
		Logger:             logger,
		Handler:            honeypot.NewHandler(svc, logger),
		MetricsHandler:     promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: []string{"*"},
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	// Drain in-flight callbacks and archive writes.
	svc.Close()

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}
