// Package shop реализует HTTP-обработчики магазина: каталог товаров за наличные
// и купонов за бонусные очки, покупки из обоих каталогов.
package shop

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/economy-ledger/internal/http/middlewarectx"
	"github.com/magabrotheeeer/economy-ledger/internal/http/response"
	"github.com/magabrotheeeer/economy-ledger/internal/models"
	services "github.com/magabrotheeeer/economy-ledger/internal/services/shop"
)

// Catalog читает каталоги магазина.
type Catalog interface {
	ShopItems(ctx context.Context) ([]models.ShopItem, error)
	BPSItems(ctx context.Context) ([]models.BPSItem, error)
}

// Service описывает интерфейс покупок.
type Service interface {
	Purchase(ctx context.Context, uid string, itemID int64) (*services.Receipt, error)
	PurchaseBPS(ctx context.Context, uid string, itemID int64) (*services.Receipt, error)
}

// Handler обрабатывает запросы магазина.
type Handler struct {
	log      *slog.Logger
	catalog  Catalog
	service  Service
	validate *validator.Validate
}

// New создает Handler.
func New(log *slog.Logger, catalog Catalog, service Service) *Handler {
	return &Handler{
		log:      log,
		catalog:  catalog,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) logger(r *http.Request, op string) *slog.Logger {
	return h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

// Items godoc
// @Summary Товары магазина
// @Tags Shop
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /shop/items [get]
func (h *Handler) Items(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.shop.Items")

	items, err := h.catalog.ShopItems(r.Context())
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"items": items,
	}))
}

// BPSItems godoc
// @Summary Купоны за бонусные очки
// @Tags Shop
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /bps/items [get]
func (h *Handler) BPSItems(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.shop.BPSItems")

	items, err := h.catalog.BPSItems(r.Context())
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"items": items,
	}))
}

// Purchase godoc
// @Summary Покупка товара
// @Description Цена: базовая, затем скидка купона, затем налог уровня членства.
// @Tags Shop
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.PurchaseRequest true "Идентификатор товара"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse "Товар не найден"
// @Failure 409 {object} response.ErrorResponse "Недостаточно средств или документ просрочен"
// @Router /shop/purchase [post]
func (h *Handler) Purchase(w http.ResponseWriter, r *http.Request) {
	h.purchase(w, r, "handlers.shop.Purchase", h.service.Purchase)
}

// PurchaseBPS godoc
// @Summary Покупка купона за бонусные очки
// @Tags Shop
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.PurchaseRequest true "Идентификатор купона"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.ErrorResponse "Недостаточно BPS"
// @Router /bps/purchase [post]
func (h *Handler) PurchaseBPS(w http.ResponseWriter, r *http.Request) {
	h.purchase(w, r, "handlers.shop.PurchaseBPS", h.service.PurchaseBPS)
}

type purchaseFunc func(ctx context.Context, uid string, itemID int64) (*services.Receipt, error)

func (h *Handler) purchase(w http.ResponseWriter, r *http.Request, op string, buy purchaseFunc) {
	log := h.logger(r, op)

	var req models.PurchaseRequest
	if !response.Decode(w, r, log, h.validate, &req) {
		return
	}

	receipt, err := buy(r.Context(), middlewarectx.UserUIDFrom(r.Context()), req.ItemID)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	log.Info("purchase completed", slog.Int64("item_id", req.ItemID))
	render.JSON(w, r, response.StatusOKWithData(receipt))
}
