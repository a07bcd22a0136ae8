package ledger

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	// Документация swagger.
	_ "github.com/magabrotheeeer/economy-ledger/docs"
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
	"github.com/magabrotheeeer/economy-ledger/internal/http/middlewarectx"
	"github.com/magabrotheeeer/economy-ledger/internal/lib/metrics"
)

// Handlers набор обработчиков API.
type Handlers struct {
	Auth       *auth.Handler
	Health     *health.Handler
	Account    *account.Handler
	Transfer   *transfer.Handler
	Shop       *shop.Handler
	Inventory  *inventory.Handler
	Cosmetics  *cosmetics.Handler
	Loan       *loan.Handler
	Membership *membership.Handler
	Retirement *retirement.Handler
	Jobs       *jobs.Handler
	Contract   *contract.Handler
	Admin      *admin.Handler
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg config.HTTPServer, parser middlewarectx.TokenParser, m *metrics.Metrics, h Handlers) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		m.Middleware,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", h.Auth.Register)
		r.Post("/login", h.Auth.Login)
		r.Get("/health", h.Health.ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(parser, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger, cfg.RateLimit, cfg.RateBurst))

			r.Get("/me", h.Account.Me)
			r.Post("/me/renewal", h.Account.RequestRenewal)
			r.Get("/history", h.Account.History)
			r.Post("/transfers", h.Transfer.ServeHTTP)

			r.Get("/shop/items", h.Shop.Items)
			r.Post("/shop/purchase", h.Shop.Purchase)
			r.Get("/bps/items", h.Shop.BPSItems)
			r.Post("/bps/purchase", h.Shop.PurchaseBPS)

			r.Get("/inventory", h.Inventory.List)
			r.Post("/inventory/{id}/use", h.Inventory.Use)
			r.Post("/inventory/{id}/sell", h.Inventory.Sell)

			r.Get("/cosmetics", h.Cosmetics.List)
			r.Post("/cosmetics/{id}/buy", h.Cosmetics.Buy)
			r.Post("/cosmetics/equip", h.Cosmetics.Equip)

			r.Get("/loans", h.Loan.Status)
			r.Post("/loans", h.Loan.Take)
			r.Post("/loans/repay", h.Loan.Repay)

			r.Get("/memberships/plans", h.Membership.Plans)
			r.Post("/memberships", h.Membership.Purchase)
			r.Delete("/memberships", h.Membership.Cancel)

			r.Post("/retirement/deposit", h.Retirement.Deposit)
			r.Post("/retirement/withdraw", h.Retirement.Withdraw)

			r.Get("/jobs", h.Jobs.List)
			r.Post("/jobs/{id}/work", h.Jobs.Work)

			r.Get("/contracts", h.Contract.List)
			r.Post("/contracts/{id}/respond", h.Contract.Respond)
			r.Post("/contracts/{id}/extension/respond", h.Contract.RespondExtension)
			r.Post("/contracts/{id}/request", h.Contract.Request)
			r.Delete("/contracts/{id}/request", h.Contract.CancelRequest)

			// Администрирование
			r.Route("/admin", func(r chi.Router) {
				r.Use(middlewarectx.AdminOnly(logger))

				r.Post("/grant", h.Admin.Grant)
				r.Post("/grant-bps", h.Admin.GrantBPS)
				r.Post("/trials", h.Admin.GrantTrial)
				r.Post("/employment", h.Admin.SetEmployment)

				r.Get("/renewals", h.Admin.Renewals)
				r.Post("/renewals/{id}/approve", h.Admin.ApproveRenewal)
				r.Post("/renewals/{id}/deny", h.Admin.DenyRenewal)

				r.Post("/shop/items", h.Admin.CreateShopItem)
				r.Post("/bps/items", h.Admin.CreateBPSItem)
				r.Post("/cosmetics", h.Admin.CreateCosmetic)
				r.Post("/jobs", h.Admin.CreateJob)

				r.Post("/contracts", h.Admin.OfferContract)
				r.Post("/contracts/{id}/pay", h.Admin.PayContract)
				r.Post("/contracts/{id}/terminate", h.Admin.TerminateContract)
				r.Post("/contracts/{id}/extension", h.Admin.OfferExtension)
				r.Post("/contracts/{id}/resolve", h.Admin.ResolveRequest)
				r.Post("/contracts/{id}/trade", h.Admin.TradeContract)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
