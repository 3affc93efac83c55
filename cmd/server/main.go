package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/alertaid/disaster-risk-service/internal/adapter/http"
	kafkaadapter "github.com/alertaid/disaster-risk-service/internal/adapter/kafka"
	"github.com/alertaid/disaster-risk-service/internal/adapter/openweather"
	"github.com/alertaid/disaster-risk-service/internal/adapter/usgs"
	"github.com/alertaid/disaster-risk-service/internal/config"
	"github.com/alertaid/disaster-risk-service/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	weather := openweather.NewClient(cfg, logger)
	if weather.Configured() {
		logger.Info("openweather enabled", "base_url", cfg.OpenWeatherBaseURL, "timeout", cfg.OpenWeatherTimeout)
	} else {
		logger.Info("openweather key missing, serving fallback conditions")
	}

	quakes := usgs.NewClient(cfg, logger)

	// Alert publishing is feature-flagged via KAFKA_BROKERS / ALERTS_ENABLED.
	var publisher httpadapter.AlertPublisher
	var kafkaPub *kafkaadapter.Publisher
	if cfg.AlertsEnabled {
		kafkaPub = kafkaadapter.NewPublisher(cfg, logger)
		publisher = kafkaPub
		metrics.AlertsEnabled.Set(1)
		logger.Info("alert publishing enabled", "topic", cfg.KafkaAlertTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("alert publishing disabled")
	}

	ready := httpadapter.ReadinessFunc(func(context.Context) error { return nil })

	srv := httpadapter.NewServer(cfg.HTTPAddr, weather, quakes, publisher, ready, metrics, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaPub != nil {
		if err := kafkaPub.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
