// Package admin реализует HTTP-обработчики администратора: начисления, продление
// документов, пробные периоды, статус занятости, пополнение каталогов и
// управление контрактами. Все маршруты пакета доступны только роли admin.
package admin

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/economy-ledger/internal/http/response"
	"github.com/magabrotheeeer/economy-ledger/internal/lib/sl"
	"github.com/magabrotheeeer/economy-ledger/internal/models"
)

// Service описывает операции администратора над счетами.
type Service interface {
	Grant(ctx context.Context, username string, amount decimal.Decimal) (*models.Account, error)
	GrantBPS(ctx context.Context, username string, amount int64) (*models.Account, error)
	GrantTrial(ctx context.Context, username string, tier models.Tier, days int) (*models.Account, error)
	SetEmployment(ctx context.Context, username string, status models.EmploymentStatus) (*models.Account, error)
	PendingRenewals(ctx context.Context) ([]*models.Account, error)
	ApproveRenewal(ctx context.Context, uid string, expiration *time.Time) (*models.Account, error)
	DenyRenewal(ctx context.Context, uid string) (*models.Account, error)
}

// Handler обрабатывает запросы администратора.
type Handler struct {
	log       *slog.Logger
	service   Service
	catalog   Catalog
	contracts Contracts
	validate  *validator.Validate
}

// New создает Handler.
func New(log *slog.Logger, service Service, catalog Catalog, contracts Contracts) *Handler {
	return &Handler{
		log:       log,
		service:   service,
		catalog:   catalog,
		contracts: contracts,
		validate:  validator.New(),
	}
}

func (h *Handler) logger(r *http.Request, op string) *slog.Logger {
	return h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

func replyAccount(w http.ResponseWriter, r *http.Request, log *slog.Logger, acc *models.Account, err error) {
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"account": acc,
	}))
}

// Grant godoc
// @Summary Начислить наличные
// @Tags Admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.GrantRequest true "Пользователь и сумма"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /admin/grant [post]
func (h *Handler) Grant(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.Grant")

	var req models.GrantRequest
	if !response.Decode(w, r, log, h.validate, &req) {
		return
	}
	acc, err := h.service.Grant(r.Context(), req.Username, req.Amount)
	if err == nil {
		log.Info("cash granted", slog.String("username", req.Username), slog.String("amount", req.Amount.String()))
	}
	replyAccount(w, r, log, acc, err)
}

// GrantBPS godoc
// @Summary Начислить бонусные очки
// @Tags Admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.GrantBPSRequest true "Пользователь и количество"
// @Success 200 {object} response.Response
// @Router /admin/grant-bps [post]
func (h *Handler) GrantBPS(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.GrantBPS")

	var req models.GrantBPSRequest
	if !response.Decode(w, r, log, h.validate, &req) {
		return
	}
	acc, err := h.service.GrantBPS(r.Context(), req.Username, req.Amount)
	replyAccount(w, r, log, acc, err)
}

// GrantTrial godoc
// @Summary Выдать пробный период
// @Tags Admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.TrialRequest true "Пользователь, уровень и срок"
// @Success 200 {object} response.Response
// @Router /admin/trials [post]
func (h *Handler) GrantTrial(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.GrantTrial")

	var req models.TrialRequest
	if !response.Decode(w, r, log, h.validate, &req) {
		return
	}
	acc, err := h.service.GrantTrial(r.Context(), req.Username, models.Tier(req.Tier), req.Days)
	replyAccount(w, r, log, acc, err)
}

// SetEmployment godoc
// @Summary Изменить статус занятости
// @Tags Admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.EmploymentRequest true "Пользователь и статус"
// @Success 200 {object} response.Response
// @Router /admin/employment [post]
func (h *Handler) SetEmployment(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.SetEmployment")

	var req models.EmploymentRequest
	if !response.Decode(w, r, log, h.validate, &req) {
		return
	}
	acc, err := h.service.SetEmployment(r.Context(), req.Username, models.EmploymentStatus(req.Status))
	replyAccount(w, r, log, acc, err)
}

// Renewals godoc
// @Summary Запросы продления документов
// @Tags Admin
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/renewals [get]
func (h *Handler) Renewals(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.Renewals")

	list, err := h.service.PendingRenewals(r.Context())
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"accounts": list,
	}))
}

// ApproveRenewal godoc
// @Summary Одобрить продление документа
// @Description Без expiration_date документ продлевается на год.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path string true "UID счёта"
// @Param request body models.ApproveRenewalRequest false "Дата окончания"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.ErrorResponse "Нет запроса"
// @Router /admin/renewals/{id}/approve [post]
func (h *Handler) ApproveRenewal(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.ApproveRenewal")

	uid := strings.TrimSpace(chi.URLParam(r, "id"))
	var req models.ApproveRenewalRequest
	// Тело необязательно.
	if r.ContentLength != 0 && !response.Decode(w, r, log, h.validate, &req) {
		return
	}

	var expiration *time.Time
	if req.ExpirationDate != "" {
		t, err := time.Parse(time.DateOnly, req.ExpirationDate)
		if err != nil {
			log.Error("invalid expiration date", sl.Err(err))
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("expiration_date must be YYYY-MM-DD"))
			return
		}
		expiration = &t
	}

	acc, err := h.service.ApproveRenewal(r.Context(), uid, expiration)
	if err == nil {
		log.Info("renewal approved", slog.String("uid", uid))
	}
	replyAccount(w, r, log, acc, err)
}

// DenyRenewal godoc
// @Summary Отклонить продление документа
// @Tags Admin
// @Produce  json
// @Security BearerAuth
// @Param id path string true "UID счёта"
// @Success 200 {object} response.Response
// @Router /admin/renewals/{id}/deny [post]
func (h *Handler) DenyRenewal(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.DenyRenewal")

	uid := strings.TrimSpace(chi.URLParam(r, "id"))
	acc, err := h.service.DenyRenewal(r.Context(), uid)
	replyAccount(w, r, log, acc, err)
}
