// Package sender читает очередь уведомлений и доставляет их ретранслятору.
package sender

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/economy-ledger/internal/config"
	"github.com/magabrotheeeer/economy-ledger/internal/lib/metrics"
	"github.com/magabrotheeeer/economy-ledger/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/economy-ledger/internal/lib/sl"
	"github.com/magabrotheeeer/economy-ledger/internal/notify"
	senderservice "github.com/magabrotheeeer/economy-ledger/internal/services/sender"
)

type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.SenderService
	queue         string
	limit         int
	logger        *slog.Logger
}

func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if cfg.RelayURL == "" {
		return nil, fmt.Errorf("relay url is not configured")
	}
	conn, err := rabbitmq.Connect(cfg.RabbitURL, cfg.ConnRetries, cfg.ConnDelay)
	if err != nil {
		return nil, fmt.Errorf("failed to connect RabbitMQ: %w", err)
	}

	topology := rabbitmq.NotificationTopology(cfg.Exchange, cfg.WebhookQueue, cfg.WebhookRoute)
	ch, err := rabbitmq.SetupChannel(conn, topology, cfg.ConsumerLimit)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to setup RabbitMQ channel: %w", err)
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	transport := notify.NewClient(cfg.RelayURL, cfg.NotifyTimeout)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderservice.NewSenderService(transport, m, logger),
		queue:         cfg.WebhookQueue,
		limit:         cfg.ConsumerLimit,
		logger:        logger,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.logger.Info("consumer started", slog.String("queue", a.queue), slog.Int("limit", a.limit))
	err := rabbitmq.ConsumerMessage(ctx, a.logger, a.ch, a.queue, a.limit, a.senderService.Deliver)
	if err != nil {
		a.logger.Error("failed to start consumer", slog.String("queue", a.queue), sl.Err(err))
	}

	a.logger.Info("sender service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", sl.Err(err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", sl.Err(err))
	}
	return err
}
