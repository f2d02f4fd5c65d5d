// Package sender собирает и запускает отправщик почтовых напоминаний.
package sender

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/barber-booking/internal/config"
	"github.com/magabrotheeeer/barber-booking/internal/lib/smtp"
	"github.com/magabrotheeeer/barber-booking/internal/rabbitmq"
	senderservice "github.com/magabrotheeeer/barber-booking/internal/services/sender"
)

// App представляет приложение отправщика уведомлений.
type App struct {
	senderService *senderservice.Service
	conn          *amqp.Connection
	ch            *amqp.Channel
	logger        *slog.Logger
}

// New создает новый экземпляр приложения отправщика.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("failed to connect RabbitMQ: %w", err)
	}

	queues := rabbitmq.GetNotificationQueues()
	ch, err := rabbitmq.SetupChannel(conn, queues)
	if err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			logger.Error("failed to close connection", "error", closeErr)
		}
		return nil, fmt.Errorf("failed to setup RabbitMQ channel: %w", err)
	}

	transport := smtp.NewTransport(cfg, logger)
	senderService := senderservice.New(transport, logger)

	return &App{
		senderService: senderService,
		conn:          conn,
		ch:            ch,
		logger:        logger,
	}, nil
}

// Run запускает потребителя очереди напоминаний.
func (a *App) Run(ctx context.Context) error {
	go func() {
		if err := rabbitmq.ConsumerMessage(ctx, a.ch, rabbitmq.RenewalQueue,
			a.senderService.SendRenewalReminder); err != nil {
			a.logger.Error("consumer stopped", "error", err)
		}
	}()

	<-ctx.Done()

	a.logger.Info("shutting down sender service")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", "error", err)
	}

	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", "error", err)
	}

	return nil
}
