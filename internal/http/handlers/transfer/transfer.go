// Package transfer реализует HTTP-обработчик перевода наличных другому пользователю.
package transfer

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
	services "github.com/magabrotheeeer/economy-ledger/internal/services/transfer"
)

// Service описывает интерфейс бизнес-логики перевода.
type Service interface {
	Transfer(ctx context.Context, senderUID, recipient string, amount decimal.Decimal) (*services.Receipt, error)
}

// Handler обрабатывает запросы на перевод.
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

// ServeHTTP godoc
// @Summary Перевод наличных
// @Description Переводит сумму пользователю, имя получателя без учёта регистра.
// @Tags Transfers
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.TransferRequest true "Получатель и сумма"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse "Получатель не найден"
// @Failure 409 {object} response.ErrorResponse "Недостаточно средств"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /transfers [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.transfer"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.TransferRequest
	if !response.Decode(w, r, log, h.validate, &req) {
		return
	}

	receipt, err := h.service.Transfer(r.Context(), middlewarectx.UserUIDFrom(r.Context()), req.Recipient, req.Amount)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}

	log.Info("transfer completed", slog.String("recipient", receipt.Recipient), slog.String("amount", receipt.Amount.String()))
	render.JSON(w, r, response.StatusOKWithData(receipt))
}
