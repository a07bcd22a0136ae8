package admin

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/economy-ledger/internal/http/response"
	"github.com/magabrotheeeer/economy-ledger/internal/models"
)

// Catalog пополняет каталоги.
type Catalog interface {
	CreateShopItem(ctx context.Context, it *models.ShopItem) error
	CreateBPSItem(ctx context.Context, it *models.BPSItem) error
	CreateCosmetic(ctx context.Context, it *models.Cosmetic) error
	CreateJob(ctx context.Context, j *models.Job) error
}

func created(w http.ResponseWriter, r *http.Request, log *slog.Logger, key string, v any, err error) {
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	log.Info("catalog entry created", slog.String("kind", key))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		key: v,
	}))
}

// CreateShopItem godoc
// @Summary Добавить товар магазина
// @Tags Admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.ShopItemRequest true "Товар"
// @Success 201 {object} response.Response
// @Router /admin/shop/items [post]
func (h *Handler) CreateShopItem(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.CreateShopItem")

	var req models.ShopItemRequest
	if !response.Decode(w, r, log, h.validate, &req) {
		return
	}
	it := &models.ShopItem{Name: req.Name, Cost: req.Cost, Image: req.Image, Type: req.Type, Featured: req.Featured}
	created(w, r, log, "item", it, h.catalog.CreateShopItem(r.Context(), it))
}

// CreateBPSItem godoc
// @Summary Добавить купон
// @Tags Admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.BPSItemRequest true "Купон"
// @Success 201 {object} response.Response
// @Router /admin/bps/items [post]
func (h *Handler) CreateBPSItem(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.CreateBPSItem")

	var req models.BPSItemRequest
	if !response.Decode(w, r, log, h.validate, &req) {
		return
	}
	it := &models.BPSItem{Name: req.Name, Cost: req.Cost, DiscountValue: req.DiscountValue}
	created(w, r, log, "item", it, h.catalog.CreateBPSItem(r.Context(), it))
}

// CreateCosmetic godoc
// @Summary Добавить косметику
// @Tags Admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.CosmeticRequest true "Косметика"
// @Success 201 {object} response.Response
// @Router /admin/cosmetics [post]
func (h *Handler) CreateCosmetic(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.CreateCosmetic")

	var req models.CosmeticRequest
	if !response.Decode(w, r, log, h.validate, &req) {
		return
	}
	it := &models.Cosmetic{ID: req.ID, Name: req.Name, Price: req.Price, Color: req.Color}
	created(w, r, log, "cosmetic", it, h.catalog.CreateCosmetic(r.Context(), it))
}

// CreateJob godoc
// @Summary Добавить работу
// @Tags Admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.JobRequest true "Работа"
// @Success 201 {object} response.Response
// @Router /admin/jobs [post]
func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.CreateJob")

	var req models.JobRequest
	if !response.Decode(w, r, log, h.validate, &req) {
		return
	}
	j := &models.Job{Name: req.Name, Pay: req.Pay}
	created(w, r, log, "job", j, h.catalog.CreateJob(r.Context(), j))
}
