// Package entitlements собирает HTTP-сервис прав доступа: маршруты,
// зависимости и жизненный цикл приложения.
package entitlements

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	// OpenAPI-описание для /docs/.
	_ "github.com/magabrotheeeer/readiness-entitlements/docs"
	"github.com/magabrotheeeer/readiness-entitlements/internal/http/handlers/admin/lookup"
	accesshandler "github.com/magabrotheeeer/readiness-entitlements/internal/http/handlers/entitlement/access"
	statushandler "github.com/magabrotheeeer/readiness-entitlements/internal/http/handlers/entitlement/status"
	"github.com/magabrotheeeer/readiness-entitlements/internal/http/handlers/health"
	"github.com/magabrotheeeer/readiness-entitlements/internal/http/handlers/premium"
	"github.com/magabrotheeeer/readiness-entitlements/internal/http/middlewarectx"
	"github.com/magabrotheeeer/readiness-entitlements/internal/services/access"
	"github.com/magabrotheeeer/readiness-entitlements/internal/services/entitlement"
)

// AdminRole — роль, которой доступны административные маршруты.
const AdminRole = "admin"

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, resolver *entitlement.Resolver, gate *access.Gate,
	tokens middlewarectx.TokenParser, limiter *rate.Limiter, db health.Checker, reg *prometheus.Registry) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middlewarectx.JWTMiddleware(tokens, logger))
		r.Use(middlewarectx.RateLimitMiddleware(limiter, logger))

		r.Get("/subscription/status", statushandler.New(logger, resolver).ServeHTTP)
		r.Get("/subscription/access", accesshandler.New(logger, gate).ServeHTTP)

		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RequirePremium(gate, logger))
			r.Get("/premium/ping", premium.New(logger).ServeHTTP)
		})

		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RequireRole(AdminRole, logger))
			r.Get("/admin/entitlements/{userID}", lookup.New(logger, resolver).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger, db).ServeHTTP)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
