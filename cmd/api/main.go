package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/kingluffyxx/portfolio/cmd/mainconfig"
	"github.com/kingluffyxx/portfolio/internal/api/router"
	"github.com/kingluffyxx/portfolio/internal/calcom"
	appconfig "github.com/kingluffyxx/portfolio/internal/config"
	"github.com/kingluffyxx/portfolio/internal/contact"
	"github.com/kingluffyxx/portfolio/internal/http/handlers"
	"github.com/kingluffyxx/portfolio/internal/notify"
	"github.com/kingluffyxx/portfolio/internal/observability/metrics"
	"github.com/kingluffyxx/portfolio/internal/schedule"
	"github.com/kingluffyxx/portfolio/internal/site"
	"github.com/kingluffyxx/portfolio/internal/turnstile"
	"github.com/kingluffyxx/portfolio/pkg/logging"
)

func main() {
	// Local development convenience; production injects real env vars.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting portfolio API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	// Metrics registry with process/go collectors plus site counters.
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	siteMetrics := metrics.NewSiteMetrics(registry)

	// Redis is optional; without it the slots proxy hits Cal.com on every
	// request.
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		opts := &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		redisClient = redis.NewClient(opts)
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Error("redis unreachable, continuing without slot cache", "error", err)
			redisClient = nil
		}
	}
	slotCache := schedule.NewSlotCache(redisClient, cfg.SlotCacheTTL)

	calClient := calcom.NewClient(cfg.CalcomAPIURL, cfg.CalcomAPIKey, logger)
	if !calClient.Configured() {
		logger.Warn("cal.com api key not set, booking endpoints will report not configured")
	}

	sender := buildEmailSender(cfg, logger)
	if sender == nil {
		logger.Warn("no email provider configured, contact form runs in dev mode")
	}
	verifier := turnstile.NewClient("", cfg.TurnstileSecretKey, logger)
	contactService := contact.NewService(sender, verifier, cfg.ContactEmail, logger)

	routerCfg := &router.Config{
		Logger:             logger,
		SlotsHandler:       handlers.NewSlotsHandler(calClient, slotCache, siteMetrics, logger),
		BookHandler:        handlers.NewBookHandler(calClient, siteMetrics, logger),
		ContactHandler:     handlers.NewContactHandler(contactService, siteMetrics, logger),
		SiteHandler:        site.NewHandler(logger),
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitPerSecond: cfg.RateLimitPerSecond,
		RateLimitBurst:     cfg.RateLimitBurst,
	}
	r := router.New(routerCfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
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
	if redisClient != nil {
		_ = redisClient.Close()
	}

	logger.Info("server stopped")
}

// buildEmailSender picks the contact-relay provider. A nil return means no
// provider is configured and the contact service will run in dev mode.
func buildEmailSender(cfg *appconfig.Config, logger *logging.Logger) notify.EmailSender {
	switch cfg.EmailProvider {
	case "ses":
		awsCfg, err := mainconfig.LoadAWSConfig(context.Background(), cfg)
		if err != nil {
			logger.Error("failed to load AWS config, contact form falls back to dev mode", "error", err)
			return nil
		}
		if s := notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.SESFromEmail,
			FromName:  cfg.SESFromName,
		}, logger); s != nil {
			return s
		}
	default:
		if s := notify.NewResendSender(cfg.ResendAPIKey, cfg.ResendFromEmail, logger); s != nil {
			return s
		}
	}
	return nil
}
