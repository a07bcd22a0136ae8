// Package scheduler запускает периодический пересчёт счетов: кредиты,
// членство и пенсионные проценты.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/economy-ledger/internal/config"
	"github.com/magabrotheeeer/economy-ledger/internal/lib/metrics"
	"github.com/magabrotheeeer/economy-ledger/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/economy-ledger/internal/lib/sl"
	"github.com/magabrotheeeer/economy-ledger/internal/notify"
	ledgerservice "github.com/magabrotheeeer/economy-ledger/internal/services/ledger"
	schedulerservice "github.com/magabrotheeeer/economy-ledger/internal/services/scheduler"
	"github.com/magabrotheeeer/economy-ledger/internal/storage/repository"
)

// App представляет приложение планировщика.
type App struct {
	schedulerService *schedulerservice.SchedulerService
	jobs             []schedulerservice.Job
	db               *repository.Storage
	conn             *amqp.Connection
	ch               *amqp.Channel
	logger           *slog.Logger
}

func waitForDB(db *repository.Storage) error {
	for range 10 {
		err := repository.CheckDatabaseReady(db)
		if err == nil {
			return nil
		}
		time.Sleep(3 * time.Second)
	}
	return fmt.Errorf("database not ready after retries")
}

// New создает новый экземпляр приложения планировщика.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect storage: %w", err)
	}
	if err := waitForDB(db); err != nil {
		closeResources(nil, nil, db, logger)
		return nil, err
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	var (
		conn     *amqp.Connection
		ch       *amqp.Channel
		notifier ledgerservice.Notifier = notify.Discard{Log: logger}
	)
	if !cfg.NotifyDisabled && cfg.RabbitURL != "" {
		conn, err = rabbitmq.Connect(cfg.RabbitURL, cfg.ConnRetries, cfg.ConnDelay)
		if err != nil {
			closeResources(nil, nil, db, logger)
			return nil, fmt.Errorf("failed to connect RabbitMQ: %w", err)
		}
		topology := rabbitmq.NotificationTopology(cfg.Exchange, cfg.WebhookQueue, cfg.WebhookRoute)
		ch, err = rabbitmq.SetupChannel(conn, topology, 0)
		if err != nil {
			closeResources(nil, conn, db, logger)
			return nil, fmt.Errorf("failed to setup RabbitMQ channel: %w", err)
		}
		notifier = notify.NewPublisher(ch, cfg.Exchange, cfg.WebhookRoute, m, logger)
	}

	runner := ledgerservice.NewRunner(db, notifier, m, logger)

	return &App{
		schedulerService: schedulerservice.NewSchedulerService(runner, db, m, logger),
		jobs:             schedulerservice.Jobs(cfg.LoanInterval, cfg.MembershipInterval, cfg.RetirementInterval),
		db:               db,
		conn:             conn,
		ch:               ch,
		logger:           logger,
	}, nil
}

func closeResources(ch *amqp.Channel, conn *amqp.Connection, db *repository.Storage, logger *slog.Logger) {
	if ch != nil {
		if err := ch.Close(); err != nil {
			logger.Error("failed to close channel", sl.Err(err))
		}
	}
	if conn != nil {
		if err := conn.Close(); err != nil {
			logger.Error("failed to close connection", sl.Err(err))
		}
	}
	if db != nil {
		if err := db.Close(); err != nil {
			logger.Error("failed to close storage", sl.Err(err))
		}
	}
}

// Run запускает задачи и блокируется до отмены ctx.
func (a *App) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	for _, job := range a.jobs {
		wg.Add(1)
		go func(job schedulerservice.Job) {
			defer wg.Done()
			a.logger.Info("scheduler job started", slog.String("job", job.Name), slog.Duration("interval", job.Interval))
			a.schedulerService.Start(ctx, job)
		}(job)
	}

	<-ctx.Done()
	a.logger.Info("shutting down scheduler service")
	wg.Wait()

	closeResources(a.ch, a.conn, a.db, a.logger)
	return nil
}
