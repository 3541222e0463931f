package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oggyb/buka-sms/internal/cache/redis"
	"github.com/oggyb/buka-sms/internal/config"
	"github.com/oggyb/buka-sms/internal/handler"
	"github.com/oggyb/buka-sms/internal/logging"
	"github.com/oggyb/buka-sms/internal/metrics"
	routes "github.com/oggyb/buka-sms/internal/router"
	"github.com/oggyb/buka-sms/internal/server"
	"github.com/oggyb/buka-sms/internal/service"
	"github.com/oggyb/buka-sms/internal/sms"
)

// @title       Buka SMS Relay API
// @version     1.0
// @description Relays signed send requests to the Buka SMS API.
// @BasePath    /
func main() {
	// Base context for the whole application lifetime.
	rootCtx := context.Background()

	// Load configuration from environment/.env.
	cfg := config.New()

	logger := logging.New(cfg.App.LogLevel, cfg.IsDevelopment())
	log := logging.Component(logger, "main")

	metrics.MustRegister()

	// Init cache.
	cache := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer cache.Close()
	if err := cache.Ping(rootCtx); err != nil {
		log.WithError(err).Fatal("failed to connect to redis")
	}

	// Init SMS provider client.
	smsClient, err := sms.NewClient(cfg.Buka.SMS())
	if err != nil {
		log.WithError(err).Fatal("invalid Buka configuration")
	}

	// Init services.
	smsSvc := service.NewSMSService(
		smsClient,
		cache,
		service.Options{
			RateQPS:        cfg.Sender.RateQPS,
			RateBurst:      cfg.Sender.RateBurst,
			SendTimeout:    cfg.Sender.SendTimeout,
			IdempotencyTTL: cfg.Sender.IdempotencyTTL,
		},
		logger,
	)

	// HTTP dependencies & server wiring.
	deps := routes.AppDeps{
		Home: handler.NewHomeHandler(smsSvc, logger),
		SMS:  handler.NewSMSHandler(smsSvc, logger),
	}

	addr := cfg.Addr()
	srv := server.New(addr, deps, logging.Component(logger, "http"))

	// Create a context that is cancelled on SIGINT/SIGTERM (Ctrl+C, docker stop etc.).
	ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start the HTTP server in a separate goroutine so we can listen for signals.
	go func() {
		log.WithField("addr", addr).Info("HTTP server listening")

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("HTTP server error")
		}
	}()

	// Block until we receive a shutdown signal.
	<-ctx.Done()
	log.Info("Shutdown signal received, starting graceful shutdown...")

	// Give in-flight sends some time to finish.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("HTTP server graceful shutdown failed")
	} else {
		log.Info("HTTP server stopped.")
	}

	log.Info("Shutdown complete.")
}
