package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/readiness-entitlements/internal/models"
)

// GetProfile возвращает профиль пользователя. Если профиля нет, возвращает nil без ошибки.
func (s *Storage) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	const op = "storage.GetProfile"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT user_id, subscription_status, subscription_tier, trial_ends_at
			  FROM user_profiles
			  WHERE user_id = $1`
	var (
		p           models.UserProfile
		tier        sql.NullString
		trialEndsAt sql.NullTime
	)
	err := s.DB.QueryRowContext(ctx, query, userID).Scan(&p.UserID, &p.SubscriptionStatus, &tier, &trialEndsAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if tier.Valid {
		p.SubscriptionTier = &tier.String
	}
	if trialEndsAt.Valid {
		p.TrialEndsAt = &trialEndsAt.Time
	}
	return &p, nil
}
