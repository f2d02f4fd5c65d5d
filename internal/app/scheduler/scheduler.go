// Package scheduler собирает и запускает планировщик напоминаний о продлении.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/barber-booking/internal/config"
	"github.com/magabrotheeeer/barber-booking/internal/rabbitmq"
	schedulerservice "github.com/magabrotheeeer/barber-booking/internal/services/scheduler"
	"github.com/magabrotheeeer/barber-booking/internal/storage"
	"github.com/magabrotheeeer/barber-booking/internal/storage/postgres"
	"github.com/magabrotheeeer/barber-booking/internal/storage/redisdoc"
)

// App представляет приложение планировщика.
type App struct {
	schedulerService *schedulerservice.Service
	conn             *amqp.Connection
	ch               *amqp.Channel
	store            storage.Store
	logger           *slog.Logger
}

func newStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.StorageBackend {
	case "postgres":
		return postgres.New(cfg.StorageConnectionString)
	case "redis":
		return redisdoc.New(ctx, cfg.RedisConnection)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.StorageBackend)
	}
}

type readyChecker interface {
	CheckReady(ctx context.Context) error
}

func waitForStore(ctx context.Context, store readyChecker) error {
	for range 10 {
		if err := store.CheckReady(ctx); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("storage not ready: %w", ctx.Err())
		case <-time.After(3 * time.Second):
		}
	}
	return fmt.Errorf("storage not ready after retries")
}

// New создает новый экземпляр приложения планировщика.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("failed to connect RabbitMQ: %w", err)
	}

	queues := rabbitmq.GetNotificationQueues()
	ch, err := rabbitmq.SetupChannel(conn, queues)
	if err != nil {
		closeResources(nil, conn, logger)
		return nil, fmt.Errorf("failed to setup RabbitMQ channel: %w", err)
	}

	store, err := newStore(ctx, cfg)
	if err != nil {
		closeResources(ch, conn, logger)
		return nil, fmt.Errorf("failed to connect storage: %w", err)
	}

	if err := waitForStore(ctx, store); err != nil {
		closeResources(ch, conn, logger)
		return nil, err
	}

	schedulerService := schedulerservice.New(store, cfg.RenewalWindowDays, logger)

	return &App{
		schedulerService: schedulerService,
		conn:             conn,
		ch:               ch,
		store:            store,
		logger:           logger,
	}, nil
}

func closeResources(ch *amqp.Channel, conn *amqp.Connection, logger *slog.Logger) {
	if ch != nil {
		if err := ch.Close(); err != nil {
			logger.Error("failed to close channel", "error", err)
		}
	}
	if conn != nil {
		if err := conn.Close(); err != nil {
			logger.Error("failed to close connection", "error", err)
		}
	}
}

// Run запускает планировщик.
func (a *App) Run(ctx context.Context) error {
	go a.schedulerService.Run(ctx, a.ch)

	<-ctx.Done()

	a.logger.Info("shutting down scheduler service")

	closeResources(a.ch, a.conn, a.logger)

	if err := a.store.Close(); err != nil {
		a.logger.Error("failed to close storage", "error", err)
	}

	return nil
}
