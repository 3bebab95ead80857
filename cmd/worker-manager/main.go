// cmd/worker-manager/main.go
package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"travel-planner-workers/internal/api"
	"travel-planner-workers/internal/common/cache"
	"travel-planner-workers/internal/common/camunda"
	"travel-planner-workers/internal/common/config"
	"travel-planner-workers/internal/common/database"
	"travel-planner-workers/internal/common/logger"
	"travel-planner-workers/internal/common/observability"
	"travel-planner-workers/pkg/registry"

	ab "travel-planner-workers/internal/workers/travel/allocate-budget"
	bi "travel-planner-workers/internal/workers/travel/build-itinerary"
	cti "travel-planner-workers/internal/workers/travel/classify-travel-intent"
	ctp "travel-planner-workers/internal/workers/travel/compose-travel-plan"
	ehc "travel-planner-workers/internal/workers/travel/estimate-hotel-cost"
	etc "travel-planner-workers/internal/workers/travel/estimate-transport-cost"
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
		bootLog := logger.New("info", "console")
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.NewFromConfig(cfg.Logging)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()
	checks := map[string]api.CheckFunc{}

	// --- Estimate cache, Redis-backed when enabled ---
	cacheOpts := cache.Options{
		Prefix:   cfg.Cache.Prefix,
		TTL:      config.GetDuration(cfg.Cache.TTL),
		LocalTTL: config.GetDuration(cfg.Cache.LocalTTL),
	}
	if cfg.Cache.Enabled {
		redis := database.NewRedis(cfg.Database.Redis)
		err = retryWithBackoff(func() error {
			return redis.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redis.Close()
		zapLog.Info("Redis connected successfully")

		cacheOpts.Remote = cache.NewRedisStore(redis.Client)
		checks["redis"] = redis.Ping
	}
	estimates := cache.New(cacheOpts, log)

	// --- Handlers, shared by Zeebe workers and the HTTP API ---
	handlers := api.Handlers{
		Intent:    cti.NewHandler(cti.LoadConfig(config.GetWorkerConfig(cfg, cti.TaskType)), obs, log),
		Hotel:     ehc.NewHandler(ehc.LoadConfig(config.GetWorkerConfig(cfg, ehc.TaskType)), estimates, obs, log),
		Transport: etc.NewHandler(etc.LoadConfig(config.GetWorkerConfig(cfg, etc.TaskType), cfg.Planner), estimates, obs, log),
		Budget:    ab.NewHandler(ab.LoadConfig(config.GetWorkerConfig(cfg, ab.TaskType)), obs, log),
		Itinerary: bi.NewHandler(bi.LoadConfig(config.GetWorkerConfig(cfg, bi.TaskType)), obs, log),
		Compose:   ctp.NewHandler(ctp.LoadConfig(config.GetWorkerConfig(cfg, ctp.TaskType), cfg.App), obs, log),
	}

	checkRegistry(cfg.Registry.Path, zapLog)

	// --- Zeebe workers ---
	var workers []*camunda.CamundaWorker
	var zeebe *camunda.Client
	if cfg.AnyWorkerEnabled() {
		zeebe, err = camunda.NewClientWithConfig(ctx, camunda.ConfigFromSettings(cfg.Camunda))
		if err != nil {
			zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
		}
		zapLog.Info("Zeebe client connected successfully")
		checks["zeebe"] = zeebe.HealthCheck

		jobHandlers := map[string]camunda.JobHandler{
			cti.TaskType: handlers.Intent,
			ehc.TaskType: handlers.Hotel,
			etc.TaskType: handlers.Transport,
			ab.TaskType:  handlers.Budget,
			bi.TaskType:  handlers.Itinerary,
			ctp.TaskType: handlers.Compose,
		}
		for _, taskType := range config.TaskTypes {
			if !config.IsWorkerEnabled(cfg, taskType) {
				zapLog.Info("worker disabled", zap.String("taskType", taskType))
				continue
			}
			w := camunda.NewWorker(zeebe.GetClient(), taskType, config.GetWorkerConfig(cfg, taskType), jobHandlers[taskType], log)
			workers = append(workers, w)
		}
		zapLog.Info("workers registered", zap.Int("count", len(workers)))
	} else {
		zapLog.Info("no workers enabled, serving HTTP API only")
	}

	// --- HTTP API, health & metrics ---
	gin.SetMode(cfg.HTTP.GinMode)
	server := api.NewServer(handlers, api.Options{
		AppName:         cfg.App.Name,
		AppVersion:      cfg.App.Version,
		AllowedOrigins:  cfg.HTTP.AllowedOrigins,
		ReadinessChecks: checks,
	}, obs, log)

	srv := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.HTTP.Address))
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.HTTP.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down HTTP server", zap.Error(err))
	}
	for _, w := range workers {
		w.Stop()
	}
	if zeebe != nil {
		if err := zeebe.Close(); err != nil {
			zapLog.Error("Error closing Zeebe client", zap.Error(err))
		}
	}

	zapLog.Info("Worker manager stopped gracefully")
}

// checkRegistry warns when the activity registry and the served task types
// drift apart. A missing registry is not fatal.
func checkRegistry(path string, log *zap.Logger) {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		log.Warn("activity registry not loaded", zap.String("path", path), zap.Error(err))
		return
	}
	if err := reg.Validate(); err != nil {
		log.Warn("activity registry invalid", zap.String("path", path), zap.Error(err))
	}
	for _, taskType := range config.TaskTypes {
		if _, ok := reg.FindByTaskType(taskType); !ok {
			log.Warn("task type missing from activity registry", zap.String("taskType", taskType))
		}
	}
}
