// Package paymentevents обрабатывает события об изменении платежей:
// при каждом событии закешированный статус пользователя сбрасывается,
// чтобы следующая проверка доступа прочитала свежие данные.
package paymentevents

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/readiness-entitlements/internal/lib/sl"
	"github.com/magabrotheeeer/readiness-entitlements/internal/models"
)

// Invalidator сбрасывает закешированный статус пользователя.
type Invalidator interface {
	Invalidate(ctx context.Context, userID string) error
}

// Service разбирает и применяет платёжные события.
type Service struct {
	invalidator Invalidator
	validate    *validator.Validate
	log         *slog.Logger
}

// New создаёт Service.
func New(invalidator Invalidator, log *slog.Logger) *Service {
	return &Service{
		invalidator: invalidator,
		validate:    validator.New(),
		log:         log,
	}
}

// Handle обрабатывает тело сообщения из очереди. Некорректные сообщения
// логируются и отбрасываются (nil), ошибка сброса кеша возвращается, чтобы
// сообщение было доставлено повторно.
func (s *Service) Handle(ctx context.Context, body []byte) error {
	const op = "paymentevents.Handle"
	log := s.log.With(sl.Op(op))

	var event models.PaymentEvent
	if err := json.Unmarshal(body, &event); err != nil {
		log.Warn("failed to decode payment event, dropping", sl.Err(err))
		return nil
	}
	if err := s.validate.Struct(event); err != nil {
		log.Warn("invalid payment event, dropping", sl.Err(err))
		return nil
	}

	if err := s.invalidator.Invalidate(ctx, event.UserID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Debug("entitlement cache invalidated",
		slog.String("user_id", event.UserID),
		slog.String("event", event.Event),
	)
	return nil
}
