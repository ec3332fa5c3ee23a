// Package lookup реализует административный HTTP-обработчик, возвращающий
// статус подписки произвольного пользователя по его идентификатору.
//
// Идентификатор берётся из URL и проверяется валидатором как UUID.
package lookup

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/readiness-entitlements/internal/http/response"
	"github.com/magabrotheeeer/readiness-entitlements/internal/lib/sl"
	"github.com/magabrotheeeer/readiness-entitlements/internal/models"
)

// Service описывает получение статуса подписки.
type Service interface {
	Status(ctx context.Context, userID string) (models.SubscriptionStatus, error)
}

// Request — параметры запроса из URL.
type Request struct {
	UserID string `validate:"required,uuid"`
}

// Handler обрабатывает GET /api/v1/admin/entitlements/{userID}.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создаёт Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Статус подписки произвольного пользователя
// @Tags Admin
// @Produce  json
// @Security BearerAuth
// @Param userID path string true "Идентификатор пользователя (UUID)"
// @Success 200 {object} response.Response "Статус подписки"
// @Failure 400 {object} response.Response "Некорректный идентификатор"
// @Failure 403 {object} response.Response "Нет роли admin"
// @Failure 500 {object} response.Response "Запрос отменён"
// @Router /admin/entitlements/{userID} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.lookup"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	req := Request{UserID: chi.URLParam(r, "userID")}
	if err := h.validate.Struct(req); err != nil {
		var validateErr validator.ValidationErrors
		if !errors.As(err, &validateErr) {
			log.Error("failed to validate request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid request"))
			return
		}
		log.Warn("invalid user id", slog.String("user_id", req.UserID))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(validateErr))
		return
	}

	res, err := h.service.Status(r.Context(), req.UserID)
	if err != nil {
		log.Error("failed to resolve subscription status", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not resolve subscription status"))
		return
	}

	log.Info("subscription status looked up", slog.String("user_id", req.UserID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"user_id": req.UserID,
		"status":  res,
	}))
}
