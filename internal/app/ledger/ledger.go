// Package ledger собирает HTTP-приложение экономики: хранилище, кэш
// справочников, публикацию уведомлений, сервисы и маршруты.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/economy-ledger/internal/cache"
	"github.com/magabrotheeeer/economy-ledger/internal/config"
	"github.com/magabrotheeeer/economy-ledger/internal/http/handlers/account"
	"github.com/magabrotheeeer/economy-ledger/internal/http/handlers/admin"
	"github.com/magabrotheeeer/economy-ledger/internal/http/handlers/auth"
	"github.com/magabrotheeeer/economy-ledger/internal/http/handlers/contract"
	"github.com/magabrotheeeer/economy-ledger/internal/http/handlers/cosmetics"
	"github.com/magabrotheeeer/economy-ledger/internal/http/handlers/health"
	"github.com/magabrotheeeer/economy-ledger/internal/http/handlers/inventory"
	"github.com/magabrotheeeer/economy-ledger/internal/http/handlers/jobs"
	"github.com/magabrotheeeer/economy-ledger/internal/http/handlers/loan"
	"github.com/magabrotheeeer/economy-ledger/internal/http/handlers/membership"
	"github.com/magabrotheeeer/economy-ledger/internal/http/handlers/retirement"
	"github.com/magabrotheeeer/economy-ledger/internal/http/handlers/shop"
	"github.com/magabrotheeeer/economy-ledger/internal/http/handlers/transfer"
	"github.com/magabrotheeeer/economy-ledger/internal/lib/jwt"
	"github.com/magabrotheeeer/economy-ledger/internal/lib/metrics"
	"github.com/magabrotheeeer/economy-ledger/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/economy-ledger/internal/lib/sl"
	"github.com/magabrotheeeer/economy-ledger/internal/migrations"
	"github.com/magabrotheeeer/economy-ledger/internal/notify"
	accountservice "github.com/magabrotheeeer/economy-ledger/internal/services/account"
	adminservice "github.com/magabrotheeeer/economy-ledger/internal/services/admin"
	authservice "github.com/magabrotheeeer/economy-ledger/internal/services/auth"
	catalogservice "github.com/magabrotheeeer/economy-ledger/internal/services/catalog"
	contractservice "github.com/magabrotheeeer/economy-ledger/internal/services/contract"
	cosmeticsservice "github.com/magabrotheeeer/economy-ledger/internal/services/cosmetics"
	inventoryservice "github.com/magabrotheeeer/economy-ledger/internal/services/inventory"
	jobservice "github.com/magabrotheeeer/economy-ledger/internal/services/jobs"
	ledgerservice "github.com/magabrotheeeer/economy-ledger/internal/services/ledger"
	loanservice "github.com/magabrotheeeer/economy-ledger/internal/services/loan"
	membershipservice "github.com/magabrotheeeer/economy-ledger/internal/services/membership"
	retirementservice "github.com/magabrotheeeer/economy-ledger/internal/services/retirement"
	shopservice "github.com/magabrotheeeer/economy-ledger/internal/services/shop"
	transferservice "github.com/magabrotheeeer/economy-ledger/internal/services/transfer"
	"github.com/magabrotheeeer/economy-ledger/internal/storage/repository"
)

const shutdownTimeout = 15 * time.Second

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
	conn   *amqp.Connection
	ch     *amqp.Channel
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect storage: %w", err)
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("cache not initialized: %w", err)
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	app := &App{
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}

	var notifier ledgerservice.Notifier = notify.Discard{Log: logger}
	if !cfg.NotifyDisabled && cfg.RabbitURL != "" {
		app.conn, err = rabbitmq.Connect(cfg.RabbitURL, cfg.ConnRetries, cfg.ConnDelay)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("failed to connect RabbitMQ: %w", err)
		}
		topology := rabbitmq.NotificationTopology(cfg.Exchange, cfg.WebhookQueue, cfg.WebhookRoute)
		app.ch, err = rabbitmq.SetupChannel(app.conn, topology, 0)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("failed to setup RabbitMQ channel: %w", err)
		}
		notifier = notify.NewPublisher(app.ch, cfg.Exchange, cfg.WebhookRoute, m, logger)
	} else {
		logger.Warn("notifications disabled")
	}

	runner := ledgerservice.NewRunner(db, notifier, m, logger)
	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	catalogService := catalogservice.NewCatalogService(db, cacheRedis, cfg.CatalogTTL, logger)
	contractService := contractservice.NewContractService(runner, db)

	handlers := Handlers{
		Auth: auth.New(logger, authservice.NewAuthService(db, jwtMaker, cfg.AdminUsername)),
		Health: health.New(logger, map[string]health.Pinger{
			"database": db,
			"cache":    cacheRedis,
		}),
		Account:    account.New(logger, accountservice.NewAccountService(runner, db, cfg.HistoryLimit)),
		Transfer:   transfer.New(logger, transferservice.NewTransferService(runner)),
		Shop:       shop.New(logger, catalogService, shopservice.NewShopService(runner)),
		Inventory:  inventory.New(logger, inventoryservice.NewInventoryService(runner, db)),
		Cosmetics:  cosmetics.New(logger, catalogService, cosmeticsservice.NewCosmeticsService(runner)),
		Loan:       loan.New(logger, loanservice.NewLoanService(runner)),
		Membership: membership.New(logger, membershipservice.NewMembershipService(runner)),
		Retirement: retirement.New(logger, retirementservice.NewRetirementService(runner, cfg.RetirementDailyCap)),
		Jobs:       jobs.New(logger, catalogService, jobservice.NewJobService(runner)),
		Contract:   contract.New(logger, contractService),
		Admin:      admin.New(logger, adminservice.NewAdminService(runner, db), catalogService, contractService),
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg.HTTPServer, jwtMaker, m, handlers)

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return app, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

// close освобождает ресурсы в порядке, обратном открытию.
func (a *App) close() {
	if a.ch != nil {
		if err := a.ch.Close(); err != nil {
			a.logger.Error("failed to close channel", sl.Err(err))
		}
	}
	if a.conn != nil {
		if err := a.conn.Close(); err != nil {
			a.logger.Error("failed to close connection", sl.Err(err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Error("failed to close cache", sl.Err(err))
		}
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close storage", sl.Err(err))
	}
}
