// Package relay реализует HTTP-обработчик ретранслятора уведомлений: принимает
// {"message": ...} и пересылает текст во внешний вебхук мессенджера.
//
// Ответы ретранслятора не используют общий конверт response.Response:
// клиенты ждут {"success": true} или {"error": "..."}.
package relay

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/economy-ledger/internal/lib/sl"
	"github.com/magabrotheeeer/economy-ledger/internal/models"
)

// Upstream пересылает текст во внешний вебхук.
type Upstream interface {
	Forward(ctx context.Context, text string) error
}

// Handler принимает уведомления.
type Handler struct {
	log      *slog.Logger
	upstream Upstream
}

// New создает Handler.
func New(log *slog.Logger, upstream Upstream) *Handler {
	return &Handler{log: log, upstream: upstream}
}

type errorBody struct {
	Error string `json:"error"`
}

type successBody struct {
	Success bool `json:"success"`
}

// ServeHTTP обрабатывает POST и OPTIONS, прочие методы получают 405.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.relay"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
		return
	case http.MethodPost:
	default:
		render.Status(r, http.StatusMethodNotAllowed)
		render.JSON(w, r, errorBody{Error: "Method not allowed"})
		return
	}

	var req models.Notification
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		log.Warn("message is missing", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorBody{Error: "Message is required"})
		return
	}

	if err := h.upstream.Forward(r.Context(), req.Message); err != nil {
		log.Error("failed to forward message", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, errorBody{Error: "Slack webhook failed"})
		return
	}

	log.Debug("message forwarded")
	render.JSON(w, r, successBody{Success: true})
}
