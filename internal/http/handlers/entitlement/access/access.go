// Package access реализует HTTP-обработчик решения о доступе к премиум-функциям
// для текущего пользователя.
package access

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/readiness-entitlements/internal/http/middlewarectx"
	"github.com/magabrotheeeer/readiness-entitlements/internal/http/response"
	"github.com/magabrotheeeer/readiness-entitlements/internal/models"
)

// Service вычисляет решение о доступе.
type Service interface {
	Check(ctx context.Context, userID string) models.EntitlementDecision
}

// Handler обрабатывает GET /api/v1/subscription/access.
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

// ServeHTTP всегда отвечает 200: решение в состоянии loading означает, что
// статус получить не удалось и доступ закрыт.
//
// @Summary Решение о доступе к премиум-функциям
// @Tags Entitlements
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} models.EntitlementDecision "Решение о доступе"
// @Failure 401 {object} response.Response "Пользователь не авторизован"
// @Router /subscription/access [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.entitlement.access"

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

	decision := h.service.Check(r.Context(), userID)
	log.Debug("access decision computed",
		slog.String("user_id", userID),
		slog.String("state", string(decision.State)),
	)
	render.JSON(w, r, decision)
}
