package entitlements

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/streadway/amqp"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/readiness-entitlements/internal/cache"
	"github.com/magabrotheeeer/readiness-entitlements/internal/config"
	"github.com/magabrotheeeer/readiness-entitlements/internal/lib/jwt"
	"github.com/magabrotheeeer/readiness-entitlements/internal/lib/sl"
	"github.com/magabrotheeeer/readiness-entitlements/internal/metrics"
	"github.com/magabrotheeeer/readiness-entitlements/internal/migrations"
	"github.com/magabrotheeeer/readiness-entitlements/internal/rabbitmq"
	"github.com/magabrotheeeer/readiness-entitlements/internal/services/access"
	"github.com/magabrotheeeer/readiness-entitlements/internal/services/entitlement"
	"github.com/magabrotheeeer/readiness-entitlements/internal/services/paymentevents"
	"github.com/magabrotheeeer/readiness-entitlements/internal/storage/repository"
)

const shutdownTimeout = 15 * time.Second

// App — собранное приложение сервиса прав доступа.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache

	amqpConn *amqp.Connection
	channel  *amqp.Channel
	queue    string
	events   *paymentevents.Service
}

// New подключает хранилища, применяет миграции и собирает HTTP-сервер.
// Redis подключается только при положительном cache_ttl, RabbitMQ — только
// при заданном URL.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (_ *App, err error) {
	const op = "entitlements.New"

	app := &App{logger: logger}
	defer func() {
		if err != nil {
			app.close()
		}
	}()

	app.db, err = repository.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = migrations.Run(app.db.DB, cfg.MigrationsPath); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = app.db.CheckDatabaseReady(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	var statusCache entitlement.Cache
	if cfg.CacheTTL > 0 {
		app.cache, err = cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		statusCache = app.cache
		logger.Info("status cache enabled", slog.Duration("ttl", cfg.CacheTTL))
	}

	resolver := entitlement.New(app.db, app.db, statusCache, m, logger, cfg.Entitlement)
	gate := access.New(resolver, time.Now, m, logger)
	tokens := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)

	if cfg.URL != "" {
		app.amqpConn, err = rabbitmq.Connect(ctx, cfg.URL, cfg.Retries, cfg.RetryDelay)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		app.channel, err = rabbitmq.SetupChannel(app.amqpConn, cfg.Exchange, rabbitmq.PaymentQueues(cfg.RabbitMQConnection))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		app.queue = cfg.Queue
		app.events = paymentevents.New(resolver, logger)
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, resolver, gate, tokens, limiter, app.db, reg)

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return app, nil
}

// Run запускает потребителя платёжных событий и HTTP-сервер и блокируется
// до отмены ctx или ошибки сервера.
func (a *App) Run(ctx context.Context) error {
	const op = "entitlements.Run"
	defer a.close()

	if a.channel != nil {
		if err := rabbitmq.ConsumerMessage(ctx, a.channel, a.queue, a.events.Handle, a.logger); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		a.logger.Info("payment events consumer started", slog.String("queue", a.queue))
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		return a.server.Shutdown(timeoutCtx)
	}
}

func (a *App) close() {
	if a.channel != nil {
		if err := a.channel.Close(); err != nil {
			a.logger.Warn("failed to close amqp channel", sl.Err(err))
		}
	}
	if a.amqpConn != nil {
		if err := a.amqpConn.Close(); err != nil {
			a.logger.Warn("failed to close amqp connection", sl.Err(err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn("failed to close redis", sl.Err(err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close database", sl.Err(err))
		}
	}
}
