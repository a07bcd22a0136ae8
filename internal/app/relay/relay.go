// Package relay запускает ретранслятор уведомлений во внешний вебхук.
package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"

	"github.com/magabrotheeeer/economy-ledger/internal/config"
	relayhandler "github.com/magabrotheeeer/economy-ledger/internal/http/handlers/relay"
	"github.com/magabrotheeeer/economy-ledger/internal/notify"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	server *http.Server
	logger *slog.Logger
}

// RegisterRoutes подключает обработчик ретранслятора к корню и /api/notify.
func RegisterRoutes(r chi.Router, h http.Handler) {
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type"},
			MaxAge:         300,
		}),
	)
	r.Handle("/", h)
	r.Handle("/api/notify", h)
}

func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if cfg.SlackWebhookURL == "" {
		return nil, fmt.Errorf("slack webhook url is not configured")
	}
	webhook := notify.NewWebhook(cfg.SlackWebhookURL, cfg.UpstreamTimeout)

	router := chi.NewRouter()
	RegisterRoutes(router, relayhandler.New(logger, webhook))

	return &App{
		server: &http.Server{
			Addr:         cfg.AddressRelay,
			Handler:      router,
			ReadTimeout:  cfg.TimeoutHTTP,
			WriteTimeout: cfg.TimeoutHTTP,
			IdleTimeout:  cfg.IdleTimeout,
		},
		logger: logger,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("relay server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down relay server gracefully")
		return a.server.Shutdown(timeoutCtx)
	}
}
