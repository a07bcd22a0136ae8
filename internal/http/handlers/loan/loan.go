// Package loan реализует HTTP-обработчики займов: состояние, получение и погашение.
package loan

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
	services "github.com/magabrotheeeer/economy-ledger/internal/services/loan"
)

// Service описывает интерфейс бизнес-логики займов.
type Service interface {
	Status(ctx context.Context, uid string) (*services.Status, error)
	Take(ctx context.Context, uid string, amount decimal.Decimal) (*services.Status, error)
	Repay(ctx context.Context, uid string) (*services.Repayment, error)
}

// Handler обрабатывает запросы займов.
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

func (h *Handler) logger(r *http.Request, op string) *slog.Logger {
	return h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

// Status godoc
// @Summary Состояние займа и кредитный рейтинг
// @Tags Loans
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /loans [get]
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.loan.Status")

	st, err := h.service.Status(r.Context(), middlewarectx.UserUIDFrom(r.Context()))
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(st))
}

// Take godoc
// @Summary Взять займ
// @Description Сумма ограничена лимитом кредитного уровня, срок до конца месяца.
// @Tags Loans
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.AmountRequest true "Сумма займа"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.ErrorResponse "Активный займ, кулдаун или превышен лимит"
// @Failure 422 {object} response.ErrorResponse "Некорректная сумма"
// @Router /loans [post]
func (h *Handler) Take(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.loan.Take")

	var req models.AmountRequest
	if !response.Decode(w, r, log, h.validate, &req) {
		return
	}

	st, err := h.service.Take(r.Context(), middlewarectx.UserUIDFrom(r.Context()), req.Amount)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	log.Info("loan issued", slog.String("amount", req.Amount.String()))
	render.JSON(w, r, response.StatusOKWithData(st))
}

// Repay godoc
// @Summary Погасить займ
// @Description Списывает долг с процентами за просрочку целиком.
// @Tags Loans
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 409 {object} response.ErrorResponse "Нет долга или недостаточно средств"
// @Router /loans/repay [post]
func (h *Handler) Repay(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.loan.Repay")

	rep, err := h.service.Repay(r.Context(), middlewarectx.UserUIDFrom(r.Context()))
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	log.Info("loan repaid", slog.String("amount", rep.Repaid.String()))
	render.JSON(w, r, response.StatusOKWithData(rep))
}
