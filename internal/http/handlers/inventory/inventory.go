// Package inventory реализует HTTP-обработчики инвентаря: список предметов,
// использование и продажа предмета.
package inventory

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/economy-ledger/internal/http/middlewarectx"
	"github.com/magabrotheeeer/economy-ledger/internal/http/request"
	"github.com/magabrotheeeer/economy-ledger/internal/http/response"
	"github.com/magabrotheeeer/economy-ledger/internal/lib/sl"
	"github.com/magabrotheeeer/economy-ledger/internal/models"
)

// Service описывает интерфейс бизнес-логики инвентаря.
type Service interface {
	List(ctx context.Context, uid string) ([]models.InventoryItem, error)
	Use(ctx context.Context, uid string, itemID int64) (*models.Account, error)
	Sell(ctx context.Context, uid string, itemID int64) (*models.Account, error)
}

// Handler обрабатывает запросы инвентаря.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

func (h *Handler) logger(r *http.Request, op string) *slog.Logger {
	return h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

// List godoc
// @Summary Инвентарь пользователя
// @Tags Inventory
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /inventory [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.inventory.List")

	items, err := h.service.List(r.Context(), middlewarectx.UserUIDFrom(r.Context()))
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"items": items,
	}))
}

// Use godoc
// @Summary Использовать предмет
// @Description Купон активирует скидку, обычный предмет увеличивает счётчик заказов.
// @Tags Inventory
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID предмета"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse "Скидка уже активна"
// @Router /inventory/{id}/use [post]
func (h *Handler) Use(w http.ResponseWriter, r *http.Request) {
	h.consume(w, r, "handlers.inventory.Use", h.service.Use)
}

// Sell godoc
// @Summary Продать предмет
// @Description Продаётся за половину уплаченной цены, купоны и бесплатные предметы не продаются.
// @Tags Inventory
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID предмета"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.ErrorResponse "Предмет нельзя продать"
// @Router /inventory/{id}/sell [post]
func (h *Handler) Sell(w http.ResponseWriter, r *http.Request) {
	h.consume(w, r, "handlers.inventory.Sell", h.service.Sell)
}

func (h *Handler) consume(w http.ResponseWriter, r *http.Request, op string,
	fn func(ctx context.Context, uid string, itemID int64) (*models.Account, error)) {
	log := h.logger(r, op)

	id, err := request.ID(r, "id")
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	acc, err := fn(r.Context(), middlewarectx.UserUIDFrom(r.Context()), id)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	log.Info("inventory item consumed", slog.Int64("item_id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"account": acc,
	}))
}
