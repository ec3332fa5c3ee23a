package models

// SubscriptionStatus — JSON-контракт статуса подписки.
// Имена полей используются UI-компонентами и не должны меняться.
type SubscriptionStatus struct {
	IsVerified            bool    `json:"isVerified"`
	HasActiveSubscription bool    `json:"hasActiveSubscription"`
	Tier                  string  `json:"tier"`
	SubscriptionStatus    string  `json:"subscriptionStatus"`
	SubscriptionTier      *string `json:"subscriptionTier"`
	TrialEndsAt           *string `json:"trialEndsAt"`
}

// AccessState — состояние проверки доступа.
type AccessState string

const (
	AccessLoading AccessState = "loading"
	AccessActive  AccessState = "active"
	AccessTrial   AccessState = "trial"
	AccessFree    AccessState = "free"
)

// EntitlementDecision — итоговое решение о доступе. Не сохраняется,
// пересчитывается при каждой проверке.
type EntitlementDecision struct {
	State                    AccessState `json:"state"`
	IsActive                 bool        `json:"isActive"`
	Tier                     string      `json:"tier"`
	IsTrialUser              bool        `json:"isTrialUser"`
	DaysLeftInTrial          int         `json:"daysLeftInTrial"`
	CanAccessPremiumFeatures bool        `json:"canAccessPremiumFeatures"`
}

// LoadingDecision возвращает начальное решение: доступ закрыт до получения статуса.
func LoadingDecision() EntitlementDecision {
	return EntitlementDecision{State: AccessLoading}
}
