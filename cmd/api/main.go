package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ridedemand/config"
	"ridedemand/handlers"
	"ridedemand/logging"
	"ridedemand/services"

	"github.com/gin-gonic/gin"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.NewStructuredLogger(os.Stdout, slog.LevelInfo)
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logging.LogError(logger, "failed to load config", err)
		os.Exit(1)
	}
	gin.SetMode(cfg.Server.Mode)

	// Redis is optional; without it predictions are cached in process only.
	var remote *services.CacheService
	if cfg.Redis.Enabled() {
		remote, err = services.NewCacheService(cfg.Redis, logger)
		if err != nil {
			logger.Warn("redis unavailable, using local prediction cache",
				slog.String("addr", cfg.Redis.Addr()),
				slog.String("error", err.Error()))
			remote = nil
		} else {
			defer remote.Close()
		}
	}
	cache := services.NewPredictionCache(cfg.Cache, remote, logger)

	predictor := services.LoadPredictor(cfg.Model.Path, cache, logger)
	if !predictor.Ready() {
		logger.Warn("serving without a model; every prediction will fail until the server is restarted with a trained artifact",
			slog.String("path", cfg.Model.Path))
	}

	router := handlers.NewRouter(cfg, predictor, logger)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logging.LogOperation(logger, "server starting",
			slog.String("addr", srv.Addr),
			slog.Bool("model_ready", predictor.Ready()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.LogError(logger, "server failed", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.LogError(logger, "graceful shutdown failed", err)
	}
}
