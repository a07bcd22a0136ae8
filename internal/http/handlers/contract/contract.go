// Package contract реализует HTTP-обработчики контрактов со стороны игрока:
// список контрактов, ответ на предложение и продление, запросы обмена и освобождения.
package contract

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/economy-ledger/internal/http/middlewarectx"
	"github.com/magabrotheeeer/economy-ledger/internal/http/request"
	"github.com/magabrotheeeer/economy-ledger/internal/http/response"
	"github.com/magabrotheeeer/economy-ledger/internal/lib/sl"
	"github.com/magabrotheeeer/economy-ledger/internal/models"
)

// Service описывает операции игрока с контрактами.
type Service interface {
	List(ctx context.Context, playerUID string) ([]models.Contract, error)
	Respond(ctx context.Context, playerUID string, id int64, accept bool) (*models.Contract, error)
	RespondExtension(ctx context.Context, playerUID string, id int64, accept bool) (*models.Contract, error)
	Request(ctx context.Context, playerUID string, id int64, kind string) (*models.Contract, error)
	CancelRequest(ctx context.Context, playerUID string, id int64) (*models.Contract, error)
}

// Handler обрабатывает запросы игрока по контрактам.
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

// contractID читает id контракта из пути. При ошибке ответ уже записан.
func contractID(w http.ResponseWriter, r *http.Request, log *slog.Logger) (int64, bool) {
	id, err := request.ID(r, "id")
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return 0, false
	}
	return id, true
}

func (h *Handler) reply(w http.ResponseWriter, r *http.Request, log *slog.Logger, c *models.Contract, err error) {
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"contract": c,
	}))
}

// List godoc
// @Summary Контракты игрока
// @Tags Contracts
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /contracts [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.contract.List")

	list, err := h.service.List(r.Context(), middlewarectx.UserUIDFrom(r.Context()))
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"contracts": list,
	}))
}

// Respond godoc
// @Summary Ответ на предложение контракта
// @Tags Contracts
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID контракта"
// @Param request body models.ContractDecisionRequest true "Решение"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.ErrorResponse
// @Router /contracts/{id}/respond [post]
func (h *Handler) Respond(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.contract.Respond")

	id, ok := contractID(w, r, log)
	if !ok {
		return
	}
	var req models.ContractDecisionRequest
	if !response.Decode(w, r, log, h.validate, &req) {
		return
	}
	c, err := h.service.Respond(r.Context(), middlewarectx.UserUIDFrom(r.Context()), id, req.Accept)
	h.reply(w, r, log, c, err)
}

// RespondExtension godoc
// @Summary Ответ на предложение продления
// @Tags Contracts
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID контракта"
// @Param request body models.ContractDecisionRequest true "Решение"
// @Success 200 {object} response.Response
// @Router /contracts/{id}/extension/respond [post]
func (h *Handler) RespondExtension(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.contract.RespondExtension")

	id, ok := contractID(w, r, log)
	if !ok {
		return
	}
	var req models.ContractDecisionRequest
	if !response.Decode(w, r, log, h.validate, &req) {
		return
	}
	c, err := h.service.RespondExtension(r.Context(), middlewarectx.UserUIDFrom(r.Context()), id, req.Accept)
	h.reply(w, r, log, c, err)
}

// Request godoc
// @Summary Запрос обмена или освобождения
// @Tags Contracts
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID контракта"
// @Param request body models.ContractChangeRequest true "trade или release"
// @Success 200 {object} response.Response
// @Router /contracts/{id}/request [post]
func (h *Handler) Request(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.contract.Request")

	id, ok := contractID(w, r, log)
	if !ok {
		return
	}
	var req models.ContractChangeRequest
	if !response.Decode(w, r, log, h.validate, &req) {
		return
	}
	c, err := h.service.Request(r.Context(), middlewarectx.UserUIDFrom(r.Context()), id, req.Kind)
	h.reply(w, r, log, c, err)
}

// CancelRequest godoc
// @Summary Отменить запрос
// @Tags Contracts
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID контракта"
// @Success 200 {object} response.Response
// @Router /contracts/{id}/request [delete]
func (h *Handler) CancelRequest(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.contract.CancelRequest")

	id, ok := contractID(w, r, log)
	if !ok {
		return
	}
	c, err := h.service.CancelRequest(r.Context(), middlewarectx.UserUIDFrom(r.Context()), id)
	h.reply(w, r, log, c, err)
}
