package admin

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/economy-ledger/internal/http/request"
	"github.com/magabrotheeeer/economy-ledger/internal/http/response"
	"github.com/magabrotheeeer/economy-ledger/internal/lib/sl"
	"github.com/magabrotheeeer/economy-ledger/internal/models"
	services "github.com/magabrotheeeer/economy-ledger/internal/services/contract"
)

// Contracts операции команды над контрактами.
type Contracts interface {
	Offer(ctx context.Context, o services.Offer) (*models.Contract, error)
	Pay(ctx context.Context, id int64, guaranteed, bonus decimal.Decimal) (*models.Contract, error)
	Terminate(ctx context.Context, id int64, reason string) error
	OfferExtension(ctx context.Context, id int64, years int, guaranteed, bonus decimal.Decimal) (*models.Contract, error)
	Resolve(ctx context.Context, id int64, decision string) (*models.Contract, error)
	Trade(ctx context.Context, id int64, team string) (*models.Contract, error)
}

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

func replyContract(w http.ResponseWriter, r *http.Request, log *slog.Logger, c *models.Contract, err error) {
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"contract": c,
	}))
}

// OfferContract godoc
// @Summary Предложить контракт игроку
// @Tags Admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.ContractOfferRequest true "Условия"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.ErrorResponse "Игрок не найден"
// @Router /admin/contracts [post]
func (h *Handler) OfferContract(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.OfferContract")

	var req models.ContractOfferRequest
	if !response.Decode(w, r, log, h.validate, &req) {
		return
	}
	c, err := h.contracts.Offer(r.Context(), services.Offer{
		Username:      req.Username,
		TeamName:      req.TeamName,
		SigningBonus:  req.SigningBonus,
		Seasons:       req.Seasons,
		GuaranteedPay: req.GuaranteedPay,
		BonusPay:      req.BonusPay,
		Incentives:    req.Incentives,
	})
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	log.Info("contract offered", slog.Int64("contract_id", c.ID), slog.String("team", c.TeamName))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"contract": c,
	}))
}

// PayContract godoc
// @Summary Выплата по контракту
// @Description Последняя выплата завершает и удаляет контракт.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID контракта"
// @Param request body models.InstallmentRequest true "Суммы"
// @Success 200 {object} response.Response
// @Router /admin/contracts/{id}/pay [post]
func (h *Handler) PayContract(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.PayContract")

	id, ok := contractID(w, r, log)
	if !ok {
		return
	}
	var req models.InstallmentRequest
	if !response.Decode(w, r, log, h.validate, &req) {
		return
	}
	c, err := h.contracts.Pay(r.Context(), id, req.Guaranteed, req.Bonus)
	replyContract(w, r, log, c, err)
}

// TerminateContract godoc
// @Summary Расторгнуть контракт
// @Tags Admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID контракта"
// @Param request body models.TerminateRequest true "cut или void"
// @Success 200 {object} response.Response
// @Router /admin/contracts/{id}/terminate [post]
func (h *Handler) TerminateContract(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.TerminateContract")

	id, ok := contractID(w, r, log)
	if !ok {
		return
	}
	var req models.TerminateRequest
	if !response.Decode(w, r, log, h.validate, &req) {
		return
	}
	if err := h.contracts.Terminate(r.Context(), id, req.Reason); err != nil {
		response.Fail(w, r, log, err)
		return
	}
	log.Info("contract terminated", slog.Int64("contract_id", id), slog.String("reason", req.Reason))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"terminated": id,
	}))
}

// OfferExtension godoc
// @Summary Предложить продление контракта
// @Tags Admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID контракта"
// @Param request body models.ExtensionOfferRequest true "Условия продления"
// @Success 200 {object} response.Response
// @Router /admin/contracts/{id}/extension [post]
func (h *Handler) OfferExtension(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.OfferExtension")

	id, ok := contractID(w, r, log)
	if !ok {
		return
	}
	var req models.ExtensionOfferRequest
	if !response.Decode(w, r, log, h.validate, &req) {
		return
	}
	c, err := h.contracts.OfferExtension(r.Context(), id, req.Years, req.GuaranteedPay, req.BonusPay)
	replyContract(w, r, log, c, err)
}

// ResolveRequest godoc
// @Summary Решение по запросу игрока
// @Tags Admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID контракта"
// @Param request body models.ResolveRequest true "approve, looking или reject"
// @Success 200 {object} response.Response
// @Router /admin/contracts/{id}/resolve [post]
func (h *Handler) ResolveRequest(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.ResolveRequest")

	id, ok := contractID(w, r, log)
	if !ok {
		return
	}
	var req models.ResolveRequest
	if !response.Decode(w, r, log, h.validate, &req) {
		return
	}
	c, err := h.contracts.Resolve(r.Context(), id, req.Decision)
	replyContract(w, r, log, c, err)
}

// TradeContract godoc
// @Summary Обменять игрока в другую команду
// @Tags Admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID контракта"
// @Param request body models.TradeRequest true "Новая команда"
// @Success 200 {object} response.Response
// @Router /admin/contracts/{id}/trade [post]
func (h *Handler) TradeContract(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.TradeContract")

	id, ok := contractID(w, r, log)
	if !ok {
		return
	}
	var req models.TradeRequest
	if !response.Decode(w, r, log, h.validate, &req) {
		return
	}
	c, err := h.contracts.Trade(r.Context(), id, req.TeamName)
	replyContract(w, r, log, c, err)
}
