// Package entitlement вычисляет права доступа пользователя по платёжным
// записям и профилю. Ошибки хранилищ не пробрасываются: они логируются
// и превращаются в отсутствие платежа или профиля, поэтому доступ закрывается,
// а страница всё равно отображается.
package entitlement

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/magabrotheeeer/readiness-entitlements/internal/config"
	"github.com/magabrotheeeer/readiness-entitlements/internal/lib/sl"
	"github.com/magabrotheeeer/readiness-entitlements/internal/metrics"
	"github.com/magabrotheeeer/readiness-entitlements/internal/models"
)

// DefaultPaymentLimit — сколько последних записей рассматривается при выборе платежа.
const DefaultPaymentLimit = 5

// PaymentRepository читает платёжные записи пользователя.
type PaymentRepository interface {
	// ListRecentPayments возвращает до limit последних записей, новые первыми.
	ListRecentPayments(ctx context.Context, userID string, limit int) ([]*models.PaymentRecord, error)
}

// ProfileRepository читает профиль пользователя.
type ProfileRepository interface {
	// GetProfile возвращает профиль или nil, если его нет.
	GetProfile(ctx context.Context, userID string) (*models.UserProfile, error)
}

// Cache описывает кеш статусов.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Resolver сводит платёжные записи и профиль в один статус подписки.
type Resolver struct {
	payments    PaymentRepository
	profiles    ProfileRepository
	cache       Cache
	metrics     *metrics.Metrics
	log         *slog.Logger
	tiers       map[string]struct{}
	defaultTier string
	limit       int
	cacheTTL    time.Duration
}

// New создаёт Resolver. cache может быть nil, тогда статусы не кешируются;
// кеш также не используется при нулевом cfg.CacheTTL. Пустой cfg.Tiers
// означает, что допустим любой тариф.
func New(payments PaymentRepository, profiles ProfileRepository, cache Cache,
	m *metrics.Metrics, log *slog.Logger, cfg config.Entitlement) *Resolver {
	tiers := make(map[string]struct{}, len(cfg.Tiers))
	for _, t := range cfg.Tiers {
		tiers[normalizeTier(t)] = struct{}{}
	}
	defaultTier := normalizeTier(cfg.DefaultTier)
	if defaultTier == "" {
		defaultTier = "free"
	}
	limit := cfg.PaymentLimit
	if limit <= 0 {
		limit = DefaultPaymentLimit
	}
	if cfg.CacheTTL <= 0 {
		cache = nil
	}
	return &Resolver{
		payments:    payments,
		profiles:    profiles,
		cache:       cache,
		metrics:     m,
		log:         log,
		tiers:       tiers,
		defaultTier: defaultTier,
		limit:       limit,
		cacheTTL:    cfg.CacheTTL,
	}
}

// HasActivePayment сообщает, даёт ли запись оплаченный доступ.
//
// Флаг AccessGranted=true доверяет отсутствующему статусу, но не плохому:
// при статусе failed доступа нет. При AccessGranted=false или без флага
// отсутствующий статус доступа не даёт.
func HasActivePayment(p *models.PaymentRecord) bool {
	if p == nil {
		return false
	}
	if p.PaymentStatus.Present() {
		return p.PaymentStatus.Active()
	}
	return p.Granted()
}

// ResolvePaymentTier возвращает тариф записи: PlanType, если задан, иначе Tier.
// Второе значение false, если тарифа нет или запись nil.
func ResolvePaymentTier(p *models.PaymentRecord) (string, bool) {
	if p == nil {
		return "", false
	}
	if p.PlanType != "" {
		return p.PlanType, true
	}
	if p.Tier != "" {
		return p.Tier, true
	}
	return "", false
}

// SelectPayment выбирает самую значимую запись: сначала с AccessGranted=true,
// затем с активным статусом, затем самую свежую. Порядок входного среза не меняется.
func SelectPayment(records []*models.PaymentRecord) *models.PaymentRecord {
	return selectSorted(sortByRecency(records))
}

// sortByRecency возвращает копию записей без nil, упорядоченную от новых к старым.
func sortByRecency(records []*models.PaymentRecord) []*models.PaymentRecord {
	sorted := make([]*models.PaymentRecord, 0, len(records))
	for _, r := range records {
		if r != nil {
			sorted = append(sorted, r)
		}
	}
	slices.SortStableFunc(sorted, compareRecency)
	return sorted
}

func selectSorted(sorted []*models.PaymentRecord) *models.PaymentRecord {
	if len(sorted) == 0 {
		return nil
	}
	for _, r := range sorted {
		if r.Granted() {
			return r
		}
	}
	for _, r := range sorted {
		if r.PaymentStatus.Active() {
			return r
		}
	}
	return sorted[0]
}

// compareRecency: updated_at DESC NULLS LAST, затем created_at DESC NULLS LAST.
func compareRecency(a, b *models.PaymentRecord) int {
	if c := compareTimeDesc(a.UpdatedAt, b.UpdatedAt); c != 0 {
		return c
	}
	return compareTimeDesc(a.CreatedAt, b.CreatedAt)
}

func compareTimeDesc(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return b.Compare(*a)
	}
}

// ResolveLatestGrantedPayment загружает последние записи пользователя и выбирает
// из них одну. Ошибка хранилища логируется, результат в этом случае nil.
func (r *Resolver) ResolveLatestGrantedPayment(ctx context.Context, userID string) *models.PaymentRecord {
	const op = "entitlement.ResolveLatestGrantedPayment"
	records, err := r.payments.ListRecentPayments(ctx, userID, r.limit)
	if err != nil {
		r.log.Error("failed to load payment records", sl.Op(op),
			slog.String("user_id", userID), sl.Err(err))
		r.metrics.StoreError("payments")
		return nil
	}
	// Лимит применяется после сортировки: хранилище может вернуть записи
	// не по порядку или больше лимита.
	sorted := sortByRecency(records)
	if len(sorted) > r.limit {
		sorted = sorted[:r.limit]
	}
	return selectSorted(sorted)
}

// Status возвращает статус подписки пользователя. Ошибка возвращается
// только если контекст отменён.
func (r *Resolver) Status(ctx context.Context, userID string) (models.SubscriptionStatus, error) {
	const op = "entitlement.Status"
	log := r.log.With(sl.Op(op), slog.String("user_id", userID))

	if err := ctx.Err(); err != nil {
		return models.SubscriptionStatus{}, fmt.Errorf("%s: %w", op, err)
	}

	key := CacheKey(userID)
	if r.cache != nil {
		var cached models.SubscriptionStatus
		found, err := r.cache.Get(ctx, key, &cached)
		switch {
		case err != nil:
			log.Warn("failed to read status from cache", sl.Err(err))
			r.metrics.CacheLookup("error")
		case found:
			r.metrics.CacheLookup("hit")
			return cached, nil
		default:
			r.metrics.CacheLookup("miss")
		}
	}

	payment := r.ResolveLatestGrantedPayment(ctx, userID)
	profile, err := r.profiles.GetProfile(ctx, userID)
	if err != nil {
		log.Error("failed to load profile", sl.Err(err))
		r.metrics.StoreError("profiles")
		profile = nil
	}

	if err = ctx.Err(); err != nil {
		return models.SubscriptionStatus{}, fmt.Errorf("%s: %w", op, err)
	}

	status := r.BuildStatus(payment, profile)
	log.Debug("resolved subscription status",
		slog.Bool("verified", status.IsVerified),
		slog.Bool("active", status.HasActiveSubscription),
		slog.String("tier", status.Tier))

	if r.cache != nil {
		if err = r.cache.Set(ctx, key, status, r.cacheTTL); err != nil {
			log.Warn("failed to cache status", slog.String("key", key), sl.Err(err))
		}
	}
	return status, nil
}

// BuildStatus собирает статус из выбранной записи и профиля. Оба аргумента могут быть nil.
func (r *Resolver) BuildStatus(payment *models.PaymentRecord, profile *models.UserProfile) models.SubscriptionStatus {
	status := models.SubscriptionStatus{
		IsVerified:            payment != nil,
		HasActiveSubscription: HasActivePayment(payment),
		Tier:                  r.resolveTier(payment, profile),
		SubscriptionStatus:    "free",
	}

	switch {
	case profile != nil && profile.SubscriptionStatus != "":
		status.SubscriptionStatus = profile.SubscriptionStatus
	case payment != nil && payment.PaymentStatus.Present():
		status.SubscriptionStatus = string(payment.PaymentStatus)
	}

	if profile != nil {
		if profile.SubscriptionTier != nil {
			tier := *profile.SubscriptionTier
			status.SubscriptionTier = &tier
		}
		if profile.TrialEndsAt != nil {
			// Дробные секунды сохраняются.
			trialEndsAt := profile.TrialEndsAt.UTC().Format(time.RFC3339Nano)
			status.TrialEndsAt = &trialEndsAt
		}
	}
	return status
}

func (r *Resolver) resolveTier(payment *models.PaymentRecord, profile *models.UserProfile) string {
	tier, ok := ResolvePaymentTier(payment)
	if !ok && profile != nil && profile.SubscriptionTier != nil {
		tier, ok = *profile.SubscriptionTier, *profile.SubscriptionTier != ""
	}
	if !ok {
		return r.defaultTier
	}

	tier = normalizeTier(tier)
	if len(r.tiers) == 0 {
		return tier
	}
	if _, known := r.tiers[tier]; !known {
		r.log.Warn("unknown tier, falling back to default",
			slog.String("tier", tier), slog.String("default", r.defaultTier))
		return r.defaultTier
	}
	return tier
}

// Invalidate удаляет закешированный статус пользователя.
func (r *Resolver) Invalidate(ctx context.Context, userID string) error {
	const op = "entitlement.Invalidate"
	if r.cache == nil {
		return nil
	}
	if err := r.cache.Invalidate(ctx, CacheKey(userID)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CacheKey возвращает ключ кеша статуса пользователя.
func CacheKey(userID string) string {
	return "entitlement:status:" + userID
}

func normalizeTier(tier string) string {
	return strings.ToLower(strings.TrimSpace(tier))
}
