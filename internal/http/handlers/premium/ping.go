// Package premium содержит пример маршрута, доступного только пользователям
// с премиум-доступом. Сам доступ проверяет middleware RequirePremium.
package premium

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/readiness-entitlements/internal/http/middlewarectx"
	"github.com/magabrotheeeer/readiness-entitlements/internal/http/response"
)

// Handler отвечает на запросы к премиум-маршруту.
type Handler struct {
	log *slog.Logger
}

// New создаёт Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Пример премиум-маршрута
// @Tags Premium
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Доступ открыт"
// @Failure 401 {object} response.Response "Пользователь не авторизован"
// @Failure 403 {object} response.Response "Нужна премиум-подписка"
// @Router /premium/ping [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.premium.ping"

	userID, _ := middlewarectx.UserIDFromContext(r.Context())
	h.log.Debug("premium route served",
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("user_id", userID),
	)

	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "pong",
		"user_id": userID,
	}))
}
