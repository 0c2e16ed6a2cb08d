// cmd/identify-server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"fishlog-identify/internal/classifier"
	"fishlog-identify/internal/common/config"
	"fishlog-identify/internal/common/database"
	commonhttp "fishlog-identify/internal/common/http"
	"fishlog-identify/internal/common/logger"
	"fishlog-identify/internal/common/middleware"
	"fishlog-identify/internal/common/observability"
	"fishlog-identify/internal/identify"
	"fishlog-identify/internal/species"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting identify server...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	missing := cfg.MissingCredentials()
	if len(missing) > 0 {
		zapLog.Error("Required settings are missing, identification requests will fail until fixed",
			zap.Strings("missing", missing))
	}

	checks := map[string]identify.ReadinessCheck{}

	// --- Species directory source ---
	// A nil loader reports an error on every Load, which the service
	// treats as a degraded directory.
	var loader *species.Loader
	source, closeSource, err := species.OpenSource(cfg)
	if err != nil {
		zapLog.Warn("Species directory source unavailable, running in open mode", zap.Error(err))
	} else {
		defer closeSource()
		loader = species.NewLoader(source, config.GetDuration(cfg.Directory.Timeout))
		if p, ok := source.(species.Pinger); ok {
			checks["directory"] = p.Ping
		}
		zapLog.Info("Species directory source configured", zap.String("source", source.Name()))
	}

	// --- Classifier ---
	httpClient := commonhttp.NewClient(0)
	classifierClient := classifier.NewClient(classifier.Config{
		BaseURL:         cfg.Classifier.BaseURL,
		APIKey:          cfg.Classifier.APIKey,
		Model:           cfg.Classifier.Model,
		MaxOutputTokens: cfg.Classifier.MaxOutputTokens,
		ImageDetail:     cfg.Classifier.ImageDetail,
		Timeout:         config.GetDuration(cfg.Classifier.Timeout),
	}, httpClient, log)

	// --- Rate limiter ---
	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		var redis *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			redis, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			return redis.Ping(ctx)
		}, 5, time.Second, zapLog, "Redis connection")

		proxies, perr := middleware.ParseTrustedProxies(cfg.RateLimit.TrustedProxies)
		if perr != nil {
			zapLog.Fatal("Invalid trusted proxies", zap.Error(perr))
		}

		if err != nil {
			zapLog.Warn("Rate limiting disabled", zap.Error(err))
		} else {
			defer redis.Close()
			limiter = middleware.NewRateLimiter(redis.GetClient(), cfg.RateLimit.Requests,
				config.GetDuration(cfg.RateLimit.Window), cfg.RateLimit.Prefix, log).
				WithTrustedProxies(proxies)
			checks["redis"] = redis.Ping
			zapLog.Info("Rate limiting enabled",
				zap.Int("requests", cfg.RateLimit.Requests),
				zap.Int("windowMs", cfg.RateLimit.Window),
				zap.Int("trustedProxies", len(proxies)))
		}
	}

	service := identify.NewService(loader, classifierClient, log, obs)
	handler := identify.NewHandler(&identify.Config{
		MaxBodyBytes:       cfg.Server.MaxBodyBytes,
		MissingCredentials: missing,
	}, service, log)

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      identify.NewRouter(handler, identify.RouterOptions{RateLimiter: limiter, Checks: checks}),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down HTTP server", zap.Error(err))
	}

	zapLog.Info("Identify server stopped gracefully")
}
