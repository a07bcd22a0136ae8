// Package account реализует HTTP-обработчики профиля пользователя: чтение счёта,
// запрос продления документа и журнал операций.
package account

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/economy-ledger/internal/http/middlewarectx"
	"github.com/magabrotheeeer/economy-ledger/internal/http/request"
	"github.com/magabrotheeeer/economy-ledger/internal/http/response"
	"github.com/magabrotheeeer/economy-ledger/internal/models"
	services "github.com/magabrotheeeer/economy-ledger/internal/services/account"
)

// Service описывает интерфейс бизнес-логики профиля.
type Service interface {
	Profile(ctx context.Context, uid string) (*services.Profile, error)
	RequestRenewal(ctx context.Context, uid string) error
	History(ctx context.Context, uid string, limit int) ([]models.HistoryEntry, error)
}

// Handler обрабатывает запросы профиля.
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

// Me godoc
// @Summary Профиль пользователя
// @Description Возвращает счёт после сверки начислений и производные показатели.
// @Tags Account
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.account.Me")

	profile, err := h.service.Profile(r.Context(), middlewarectx.UserUIDFrom(r.Context()))
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(profile))
}

// RequestRenewal godoc
// @Summary Запрос продления документа
// @Tags Account
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 409 {object} response.ErrorResponse "Запрос уже отправлен"
// @Router /me/renewal [post]
func (h *Handler) RequestRenewal(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.account.RequestRenewal")

	if err := h.service.RequestRenewal(r.Context(), middlewarectx.UserUIDFrom(r.Context())); err != nil {
		response.Fail(w, r, log, err)
		return
	}
	log.Info("renewal requested")
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"renewal_pending": true,
	}))
}

// History godoc
// @Summary Журнал операций
// @Description Записи от новых к старым, limit от 1 до 200.
// @Tags Account
// @Produce  json
// @Security BearerAuth
// @Param limit query int false "Число записей"
// @Success 200 {object} response.Response
// @Router /history [get]
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.account.History")

	entries, err := h.service.History(r.Context(), middlewarectx.UserUIDFrom(r.Context()), request.IntQuery(r, "limit"))
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"history": entries,
	}))
}
