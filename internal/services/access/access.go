// Package access отвечает на вопрос, может ли пользователь прямо сейчас
// пользоваться премиум-функциями. Каждая проверка начинается в состоянии
// loading, в котором доступ закрыт.
package access

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/magabrotheeeer/readiness-entitlements/internal/lib/sl"
	"github.com/magabrotheeeer/readiness-entitlements/internal/metrics"
	"github.com/magabrotheeeer/readiness-entitlements/internal/models"
)

// TrialStatus — значение subscriptionStatus у пользователей на пробном периоде.
const TrialStatus = "trial"

const day = 24 * time.Hour

// StatusProvider отдаёт статус подписки пользователя.
type StatusProvider interface {
	Status(ctx context.Context, userID string) (models.SubscriptionStatus, error)
}

// Gate вычисляет решение о доступе по статусу подписки.
type Gate struct {
	provider StatusProvider
	now      func() time.Time
	metrics  *metrics.Metrics
	log      *slog.Logger
}

// New создаёт Gate. Если now равен nil, используется time.Now.
func New(provider StatusProvider, now func() time.Time, m *metrics.Metrics, log *slog.Logger) *Gate {
	if now == nil {
		now = time.Now
	}
	return &Gate{
		provider: provider,
		now:      now,
		metrics:  m,
		log:      log,
	}
}

// Check получает свежий статус и вычисляет решение. При ошибке получения
// или разбора статуса возвращается решение в состоянии loading без доступа.
func (g *Gate) Check(ctx context.Context, userID string) models.EntitlementDecision {
	const op = "access.Check"
	log := g.log.With(sl.Op(op), slog.String("user_id", userID))

	decision := models.LoadingDecision()
	status, err := g.provider.Status(ctx, userID)
	if err != nil {
		log.Error("failed to fetch subscription status", sl.Err(err))
		g.metrics.Decision(decision.State)
		return decision
	}

	resolved, err := Evaluate(status, g.now())
	if err != nil {
		log.Error("failed to evaluate subscription status", sl.Err(err))
		g.metrics.Decision(decision.State)
		return decision
	}

	g.metrics.Decision(resolved.State)
	log.Debug("access resolved",
		slog.String("state", string(resolved.State)),
		slog.Bool("premium", resolved.CanAccessPremiumFeatures))
	return resolved
}

// Allow сообщает, доступны ли пользователю премиум-функции.
func (g *Gate) Allow(ctx context.Context, userID string) bool {
	return g.Check(ctx, userID).CanAccessPremiumFeatures
}

// Evaluate переводит статус подписки в решение о доступе на момент now.
func Evaluate(status models.SubscriptionStatus, now time.Time) (models.EntitlementDecision, error) {
	const op = "access.Evaluate"

	isTrialUser := status.SubscriptionStatus == TrialStatus
	daysLeft := 0
	if isTrialUser && status.TrialEndsAt != nil {
		trialEndsAt, err := time.Parse(time.RFC3339Nano, *status.TrialEndsAt)
		if err != nil {
			return models.LoadingDecision(), fmt.Errorf("%s: invalid trialEndsAt: %w", op, err)
		}
		daysLeft = DaysLeftInTrial(trialEndsAt, now)
	}

	decision := models.EntitlementDecision{
		State:                    models.AccessFree,
		IsActive:                 status.HasActiveSubscription,
		Tier:                     status.Tier,
		IsTrialUser:              isTrialUser,
		DaysLeftInTrial:          daysLeft,
		CanAccessPremiumFeatures: status.HasActiveSubscription || (isTrialUser && daysLeft > 0),
	}
	switch {
	case decision.IsActive:
		decision.State = models.AccessActive
	case decision.CanAccessPremiumFeatures:
		decision.State = models.AccessTrial
	}
	return decision, nil
}

// DaysLeftInTrial возвращает число дней до окончания пробного периода,
// округлённое вверх. Истёкший период даёт 0.
func DaysLeftInTrial(trialEndsAt, now time.Time) int {
	days := int(math.Ceil(float64(trialEndsAt.Sub(now)) / float64(day)))
	if days < 0 {
		return 0
	}
	return days
}
