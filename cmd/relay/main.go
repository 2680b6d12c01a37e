package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/tagwatch/tagwatch/internal/audit"
	"github.com/tagwatch/tagwatch/internal/config"
	"github.com/tagwatch/tagwatch/internal/consumer"
	"github.com/tagwatch/tagwatch/internal/handlers"
	"github.com/tagwatch/tagwatch/internal/logging"
	natsclient "github.com/tagwatch/tagwatch/internal/messaging/nats"
	"github.com/tagwatch/tagwatch/internal/notify"
	"github.com/tagwatch/tagwatch/internal/ratelimit"
	"github.com/tagwatch/tagwatch/internal/relay"
	"github.com/tagwatch/tagwatch/internal/server"
	"github.com/tagwatch/tagwatch/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	addr := flag.String("addr", "", "override listen address")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Initialize structured logging
	logger := logging.New(
		logging.ParseLevel(cfg.Logging.Level),
		cfg.Logging.Format,
	).With(logging.Service("relay"))
	logging.SetDefault(logger)

	slog.Info("Starting relay service",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Logging.Level),
		slog.String("log_format", cfg.Logging.Format),
	)
	if *configPath != "" {
		slog.Info("Loaded configuration", slog.String("config_path", *configPath))
	}

	// Record store
	var recordStore store.Store
	redisStore, err := store.NewRedisStore(cfg.Redis.URL, cfg.Redis.KeyPrefix)
	if err != nil {
		slog.Warn("Redis unavailable, falling back to in-memory store",
			slog.String("url", cfg.Redis.URL),
			slog.String("error", err.Error()),
		)
		recordStore = store.NewMemoryStore()
	} else {
		recordStore = redisStore
		slog.Info("Connected to Redis", slog.String("url", cfg.Redis.URL))
	}
	defer recordStore.Close()

	// Message bus
	var busClient *natsclient.Client
	if cfg.NATS.Enabled {
		natsCfg := natsclient.DefaultConfig()
		natsCfg.URL = cfg.NATS.URL
		busClient, err = natsclient.NewClient(natsCfg)
		if err != nil {
			log.Fatalf("connect NATS: %v", err)
		}
		defer busClient.Close()
		slog.Info("Connected to NATS", slog.String("url", cfg.NATS.URL))
	}

	// Notification channels
	channel := buildNotificationChannel(cfg, busClient)
	slog.Info("Notification channel configured", slog.String("type", channel.Type()))

	// Rate limiter for the webhook endpoint
	var limiter ratelimit.RateLimiter
	if cfg.Ingest.RateLimitEnabled {
		limiter, err = ratelimit.NewRedisRateLimiter(
			cfg.Redis.URL,
			cfg.Ingest.RateLimitRequests,
			cfg.Ingest.RateLimitWindow,
		)
		if err != nil {
			slog.Warn("Failed to initialize rate limiter, continuing without rate limiting",
				slog.String("error", err.Error()),
			)
			limiter = &ratelimit.NoOpRateLimiter{}
		}
	} else {
		limiter = &ratelimit.NoOpRateLimiter{}
		slog.Info("Rate limiting disabled in configuration")
	}
	defer limiter.Close()

	// Audit log
	var auditor *audit.Recorder
	if cfg.Audit.Enabled && cfg.Audit.DatabaseURL != "" {
		slog.Info("Running database migrations")
		m, err := migrate.New("file://migrations", cfg.Audit.DatabaseURL)
		if err != nil {
			slog.Error("Failed to initialize migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			slog.Error("Failed to run migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}

		auditor, err = audit.NewRecorder(context.Background(), cfg.Audit.DatabaseURL, logger.Logger)
		if err != nil {
			log.Fatalf("connect audit database: %v", err)
		}
		defer auditor.Close()
		slog.Info("Audit log enabled")
	}

	// Relay core
	relayOpts := []relay.Option{relay.WithLogger(logger.Logger)}
	if cfg.Ingest.Strict {
		relayOpts = append(relayOpts, relay.WithStrictValidation())
	}
	if auditor != nil {
		relayOpts = append(relayOpts, relay.WithAuditor(auditor))
	}
	pushRelay := relay.New(recordStore, channel, relayOpts...)

	// Inbound bus consumer
	if busClient != nil {
		pushConsumer := consumer.New(busClient, pushRelay, cfg.NATS.Subject, cfg.NATS.Queue, logger.Logger)
		if err := pushConsumer.Start(); err != nil {
			log.Fatalf("subscribe to push events: %v", err)
		}
		defer pushConsumer.Stop()
	}

	// HTTP server
	handler := handlers.New(pushRelay, recordStore, limiter, auditor, cfg.Ingest.Token, logger.Logger)

	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	if *addr != "" {
		listenAddr = *addr
	}

	srv := &http.Server{
		Addr:         listenAddr,
		Handler:      server.NewRouter(handler),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Relay service listening", slog.String("addr", listenAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-shutdownCtx.Done()
	slog.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Graceful shutdown failed", slog.String("error", err.Error()))
	}

	if busClient != nil {
		if err := busClient.Drain(); err != nil {
			slog.Warn("NATS drain failed", slog.String("error", err.Error()))
		}
	}

	slog.Info("Server stopped")
}

func buildNotificationChannel(cfg *config.Config, busClient *natsclient.Client) notify.Channel {
	var channels []notify.Channel

	for _, name := range cfg.Notify.Channels {
		switch name {
		case "broker":
			if busClient == nil {
				slog.Warn("Broker channel requested but NATS is disabled")
				continue
			}
			channels = append(channels, notify.NewBrokerChannel(busClient, cfg.Notify.Subject))
		case "webhook":
			if cfg.Notify.WebhookURL == "" {
				slog.Warn("Webhook channel requested but notify.webhook_url is empty")
				continue
			}
			channels = append(channels, notify.NewWebhookChannel(cfg.Notify.WebhookURL, cfg.Notify.WebhookTimeout))
		case "log":
			channels = append(channels, notify.NewLogChannel(slog.Default()))
		default:
			slog.Warn("Unknown notification channel", slog.String("channel", name))
		}
	}

	switch len(channels) {
	case 0:
		slog.Warn("No notification channels configured, using log channel")
		return notify.NewLogChannel(slog.Default())
	case 1:
		return channels[0]
	default:
		return notify.NewMultiChannel(channels...)
	}
}
