// Package cosmetics реализует HTTP-обработчики косметики навигационной панели.
package cosmetics

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/economy-ledger/internal/http/middlewarectx"
	"github.com/magabrotheeeer/economy-ledger/internal/http/response"
	"github.com/magabrotheeeer/economy-ledger/internal/models"
)

// Catalog читает каталог косметики.
type Catalog interface {
	Cosmetics(ctx context.Context) ([]models.Cosmetic, error)
}

// Service описывает покупку и установку косметики.
type Service interface {
	Buy(ctx context.Context, uid, cosmeticID string) (*models.Account, error)
	Equip(ctx context.Context, uid, cosmeticID string) (*models.Account, error)
}

// Handler обрабатывает запросы косметики.
type Handler struct {
	log      *slog.Logger
	catalog  Catalog
	service  Service
	validate *validator.Validate
}

// New создает Handler.
func New(log *slog.Logger, catalog Catalog, service Service) *Handler {
	return &Handler{
		log:      log,
		catalog:  catalog,
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

// List godoc
// @Summary Каталог косметики
// @Tags Cosmetics
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /cosmetics [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.cosmetics.List")

	items, err := h.catalog.Cosmetics(r.Context())
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"cosmetics": items,
	}))
}

// Buy godoc
// @Summary Купить косметику
// @Tags Cosmetics
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID косметики"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.ErrorResponse "Уже куплена или документ недействителен"
// @Router /cosmetics/{id}/buy [post]
func (h *Handler) Buy(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.cosmetics.Buy")

	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		log.Error("empty cosmetic id")
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	acc, err := h.service.Buy(r.Context(), middlewarectx.UserUIDFrom(r.Context()), id)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	log.Info("cosmetic purchased", slog.String("cosmetic_id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"account": acc,
	}))
}

// Equip godoc
// @Summary Установить косметику
// @Description Пустой cosmetic_id снимает косметику.
// @Tags Cosmetics
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.EquipRequest true "ID косметики"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.ErrorResponse "Косметика не куплена"
// @Router /cosmetics/equip [post]
func (h *Handler) Equip(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.cosmetics.Equip")

	var req models.EquipRequest
	if !response.Decode(w, r, log, h.validate, &req) {
		return
	}

	acc, err := h.service.Equip(r.Context(), middlewarectx.UserUIDFrom(r.Context()), req.CosmeticID)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"navbar_color": acc.NavbarColor,
	}))
}
