// Package membership реализует HTTP-обработчики уровней членства.
package membership

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/economy-ledger/internal/economy"
	"github.com/magabrotheeeer/economy-ledger/internal/http/middlewarectx"
	"github.com/magabrotheeeer/economy-ledger/internal/http/response"
	"github.com/magabrotheeeer/economy-ledger/internal/models"
)

// Service описывает интерфейс бизнес-логики членства.
type Service interface {
	Plans() []economy.Plan
	Purchase(ctx context.Context, uid string, tier models.Tier) (*models.Account, error)
	Cancel(ctx context.Context, uid string) (*models.Account, error)
}

// Handler обрабатывает запросы членства.
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

// Plans godoc
// @Summary Уровни членства
// @Tags Memberships
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /memberships/plans [get]
func (h *Handler) Plans(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"plans": h.service.Plans(),
	}))
}

// Purchase godoc
// @Summary Купить уровень членства
// @Tags Memberships
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.MembershipRequest true "Уровень"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.ErrorResponse "Уровень уже активен или недостаточно средств"
// @Router /memberships [post]
func (h *Handler) Purchase(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.membership.Purchase")

	var req models.MembershipRequest
	if !response.Decode(w, r, log, h.validate, &req) {
		return
	}

	acc, err := h.service.Purchase(r.Context(), middlewarectx.UserUIDFrom(r.Context()), models.Tier(req.Tier))
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	log.Info("membership purchased", slog.String("tier", req.Tier))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"account": acc,
	}))
}

// Cancel godoc
// @Summary Отменить членство
// @Tags Memberships
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 409 {object} response.ErrorResponse "Уже стандартный уровень"
// @Router /memberships [delete]
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.membership.Cancel")

	acc, err := h.service.Cancel(r.Context(), middlewarectx.UserUIDFrom(r.Context()))
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	log.Info("membership cancelled")
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"account": acc,
	}))
}
