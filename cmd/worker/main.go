// The worker binary runs the appointment reminder loop on its own,
// against the same storage and broker configuration as the API.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/Amazons-Team/fatima-api/config"
	notificationService "github.com/Amazons-Team/fatima-api/internal/service/notification"
	sessionService "github.com/Amazons-Team/fatima-api/internal/service/session"
	"github.com/Amazons-Team/fatima-api/internal/store"
	"github.com/Amazons-Team/fatima-api/pkg/kv"
	kvfile "github.com/Amazons-Team/fatima-api/pkg/kv/file"
	kvmemory "github.com/Amazons-Team/fatima-api/pkg/kv/memory"
	kvpostgres "github.com/Amazons-Team/fatima-api/pkg/kv/postgres"
	kvredis "github.com/Amazons-Team/fatima-api/pkg/kv/redis"
	kvsqlite "github.com/Amazons-Team/fatima-api/pkg/kv/sqlite"
	"github.com/Amazons-Team/fatima-api/pkg/logger"
	"github.com/Amazons-Team/fatima-api/pkg/messaging"
	kafkabroker "github.com/Amazons-Team/fatima-api/pkg/messaging/kafka"
	redisbroker "github.com/Amazons-Team/fatima-api/pkg/messaging/redis"
	"github.com/Amazons-Team/fatima-api/pkg/metrics"
	"github.com/Amazons-Team/fatima-api/pkg/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)

	m := metrics.New("fatima_worker")
	m.MustRegister(prometheus.DefaultRegisterer)

	kvStore, err := newKVStore(cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize storage")
	}
	defer kvStore.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appointments, err := store.NewAppointmentStore(ctx, kvStore, appLogger, m)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize appointment store")
	}
	notifications, err := store.NewNotificationStore(ctx, kvStore)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize notification store")
	}

	broker, err := newBroker(cfg.Events, appLogger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize event broker")
	}
	defer broker.Close()

	sessions := sessionService.NewService(kvStore)
	notifSvc := notificationService.NewService(notifications, broker, notificationService.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	}, sessions, appLogger)

	reminder := worker.NewReminder(appointments, notifSvc, worker.ReminderConfig{
		PollInterval: cfg.Reminder.PollInterval,
	}, appLogger, m)
	go reminder.Start(ctx)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	metricsSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Worker.MetricsPort),
		Handler: mux,
	}
	go func() {
		log.Info().Int("port", cfg.Worker.MetricsPort).Msg("serving worker metrics")
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics listener failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down worker...")
	cancel()
	metricsSrv.Close()
}

func newKVStore(cfg config.StorageConfig) (kv.Store, error) {
	switch cfg.Backend {
	case "file", "":
		return kvfile.New(cfg.DataDir)
	case "sqlite":
		return kvsqlite.New(cfg.SQLitePath)
	case "postgres":
		return kvpostgres.New(kvpostgres.Config{
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			User:     cfg.Postgres.User,
			Password: cfg.Postgres.Password,
			Name:     cfg.Postgres.Name,
			SSLMode:  cfg.Postgres.SSLMode,
		})
	case "redis":
		return kvredis.New(kvredis.Config{URL: cfg.RedisURL})
	case "memory":
		return kvmemory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

func newBroker(cfg config.EventsConfig, appLogger *logger.Logger) (messaging.Broker, error) {
	switch cfg.Backend {
	case "none", "":
		return messaging.NewNoopBroker(), nil
	case "redis":
		return redisbroker.NewBroker(redisbroker.Config{URL: cfg.RedisURL}, appLogger.Zerolog())
	case "kafka":
		return kafkabroker.NewBroker(kafkabroker.Config{Brokers: cfg.KafkaBrokers}, appLogger.Zerolog())
	default:
		return nil, fmt.Errorf("unknown events backend %q", cfg.Backend)
	}
}
