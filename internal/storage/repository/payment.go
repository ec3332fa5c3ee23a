package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/readiness-entitlements/internal/models"
)

// ListRecentPayments возвращает не более limit последних платёжных записей
// пользователя: сначала по updated_at, затем по created_at, NULL в конце.
func (s *Storage) ListRecentPayments(ctx context.Context, userID string, limit int) ([]*models.PaymentRecord, error) {
	const op = "storage.ListRecentPayments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, tier, plan_type, payment_status, access_granted,
			      updated_at, created_at
			  FROM payment_records
			  WHERE user_id = $1
			  ORDER BY updated_at DESC NULLS LAST, created_at DESC NULLS LAST
			  LIMIT $2`
	rows, err := s.DB.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.PaymentRecord
	for rows.Next() {
		var (
			p                      models.PaymentRecord
			tier, planType, status sql.NullString
			accessGranted          sql.NullBool
			updatedAt, createdAt   sql.NullTime
		)
		if err = rows.Scan(&p.ID, &p.UserID, &tier, &planType, &status, &accessGranted,
			&updatedAt, &createdAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		p.Tier = tier.String
		p.PlanType = planType.String
		p.PaymentStatus = models.ParsePaymentStatus(status.String)
		if accessGranted.Valid {
			granted := accessGranted.Bool
			p.AccessGranted = &granted
		}
		if updatedAt.Valid {
			p.UpdatedAt = &updatedAt.Time
		}
		if createdAt.Valid {
			p.CreatedAt = &createdAt.Time
		}
		result = append(result, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
