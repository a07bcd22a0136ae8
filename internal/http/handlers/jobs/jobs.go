// Package jobs реализует HTTP-обработчики работ.
package jobs

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

// Catalog читает каталог работ.
type Catalog interface {
	Jobs(ctx context.Context) ([]models.Job, error)
}

// Service описывает выполнение работы.
type Service interface {
	Work(ctx context.Context, uid string, jobID int64) (*models.Account, error)
}

// Handler обрабатывает запросы работ.
type Handler struct {
	log     *slog.Logger
	catalog Catalog
	service Service
}

// New создает Handler.
func New(log *slog.Logger, catalog Catalog, service Service) *Handler {
	return &Handler{log: log, catalog: catalog, service: service}
}

// List godoc
// @Summary Доступные работы
// @Tags Jobs
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /jobs [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(slog.String("op", "handlers.jobs.List"), slog.String("request_id", middleware.GetReqID(r.Context())))

	jobs, err := h.catalog.Jobs(r.Context())
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"jobs": jobs,
	}))
}

// Work godoc
// @Summary Выполнить работу
// @Tags Jobs
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID работы"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /jobs/{id}/work [post]
func (h *Handler) Work(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(slog.String("op", "handlers.jobs.Work"), slog.String("request_id", middleware.GetReqID(r.Context())))

	id, err := request.ID(r, "id")
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	acc, err := h.service.Work(r.Context(), middlewarectx.UserUIDFrom(r.Context()), id)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	log.Info("job completed", slog.Int64("job_id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"balance": acc.Balance,
	}))
}
