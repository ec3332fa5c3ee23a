// Package status реализует HTTP-обработчик статуса подписки текущего пользователя.
//
// Ответ — JSON-контракт SubscriptionStatus без обёртки, его поля читают
// UI-компоненты напрямую.
package status

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/readiness-entitlements/internal/http/middlewarectx"
	"github.com/magabrotheeeer/readiness-entitlements/internal/http/response"
	"github.com/magabrotheeeer/readiness-entitlements/internal/lib/sl"
	"github.com/magabrotheeeer/readiness-entitlements/internal/models"
)

// Service описывает получение статуса подписки.
type Service interface {
	Status(ctx context.Context, userID string) (models.SubscriptionStatus, error)
}

// Handler обрабатывает GET /api/v1/subscription/status.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создаёт Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Статус подписки текущего пользователя
// @Description Возвращает JSON-контракт статуса подписки без обёртки.
// @Tags Entitlements
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} models.SubscriptionStatus "Статус подписки"
// @Failure 401 {object} response.Response "Пользователь не авторизован"
// @Failure 500 {object} response.Response "Запрос отменён"
// @Router /subscription/status [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.entitlement.status"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := middlewarectx.UserIDFromContext(r.Context())
	if !ok {
		log.Error("user id not found in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	res, err := h.service.Status(r.Context(), userID)
	if err != nil {
		log.Error("failed to resolve subscription status", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not resolve subscription status"))
		return
	}

	log.Debug("subscription status resolved", slog.String("user_id", userID), slog.String("tier", res.Tier))
	render.JSON(w, r, res)
}
