// Package retirement реализует HTTP-обработчики пенсионных накоплений.
package retirement

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/economy-ledger/internal/http/middlewarectx"
	"github.com/magabrotheeeer/economy-ledger/internal/http/response"
	"github.com/magabrotheeeer/economy-ledger/internal/models"
	services "github.com/magabrotheeeer/economy-ledger/internal/services/retirement"
)

// Service описывает интерфейс пенсионных операций.
type Service interface {
	Deposit(ctx context.Context, uid string, amount decimal.Decimal) (*services.Summary, error)
	Withdraw(ctx context.Context, uid string, amount decimal.Decimal) (*services.Summary, error)
}

// Handler обрабатывает пенсионные запросы.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// Deposit godoc
// @Summary Пополнить пенсионные накопления
// @Description Доступно работающим, оборот ограничен дневным лимитом.
// @Tags Retirement
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.AmountRequest true "Сумма"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.ErrorResponse "Не работает или превышен лимит"
// @Router /retirement/deposit [post]
func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, "handlers.retirement.Deposit", h.service.Deposit)
}

// Withdraw godoc
// @Summary Снять пенсионные накопления
// @Description Доступно пенсионерам, оборот ограничен дневным лимитом.
// @Tags Retirement
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.AmountRequest true "Сумма"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.ErrorResponse "Не пенсионер или недостаточно накоплений"
// @Router /retirement/withdraw [post]
func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, "handlers.retirement.Withdraw", h.service.Withdraw)
}

func (h *Handler) move(w http.ResponseWriter, r *http.Request, op string,
	fn func(ctx context.Context, uid string, amount decimal.Decimal) (*services.Summary, error)) {
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.AmountRequest
	if !response.Decode(w, r, log, h.validate, &req) {
		return
	}

	sum, err := fn(r.Context(), middlewarectx.UserUIDFrom(r.Context()), req.Amount)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	log.Info("retirement savings moved", slog.String("amount", req.Amount.String()))
	render.JSON(w, r, response.StatusOKWithData(sum))
}
