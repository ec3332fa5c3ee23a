package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/readiness-entitlements/internal/http/response"
)

// AccessChecker решает, доступны ли пользователю премиум-функции.
type AccessChecker interface {
	Allow(ctx context.Context, userID string) bool
}

// RequirePremium пропускает запрос только при открытом премиум-доступе.
// Пока статус не получен, доступ считается закрытым.
func RequirePremium(gate AccessChecker, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := log.With(slog.String("request_id", middleware.GetReqID(r.Context())))

			userID, ok := UserIDFromContext(r.Context())
			if !ok {
				log.Error("user identification missing")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user identification missing"))
				return
			}

			if !gate.Allow(r.Context(), userID) {
				log.Info("premium access denied", slog.String("user_id", userID))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("premium subscription required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
