package models

import "time"

// UserProfile хранит отображаемые пользователю данные подписки.
// Профиль может отставать от платёжных записей и используется только для отображения.
type UserProfile struct {
	UserID             string
	SubscriptionStatus string     // Статус для отображения, например "trial"
	SubscriptionTier   *string    // Отображаемый тариф
	TrialEndsAt        *time.Time // Окончание пробного периода
}
