// Package models содержит доменные структуры сервиса прав доступа:
// платёжные записи, профиль пользователя и производное решение о доступе.
package models

import (
	"strings"
	"time"
)

// PaymentStatus — нормализованный статус платёжной записи.
// Нулевое значение означает, что статус отсутствует (NULL или пустая строка).
type PaymentStatus string

const (
	PaymentStatusAbsent    PaymentStatus = ""
	PaymentStatusActive    PaymentStatus = "active"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusPremium   PaymentStatus = "premium"
	PaymentStatusTrialing  PaymentStatus = "trialing"
	PaymentStatusInactive  PaymentStatus = "inactive"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusUnknown   PaymentStatus = "unknown"
)

// ParsePaymentStatus приводит произвольный текст статуса к закрытому набору значений.
// Пустая строка даёт PaymentStatusAbsent, нераспознанный текст — PaymentStatusUnknown.
func ParsePaymentStatus(raw string) PaymentStatus {
	if raw == "" {
		return PaymentStatusAbsent
	}
	switch s := PaymentStatus(strings.ToLower(strings.TrimSpace(raw))); s {
	case PaymentStatusActive, PaymentStatusCompleted, PaymentStatusPaid,
		PaymentStatusPremium, PaymentStatusTrialing, PaymentStatusInactive,
		PaymentStatusFailed:
		return s
	default:
		return PaymentStatusUnknown
	}
}

// Present сообщает, был ли статус записан в записи.
func (s PaymentStatus) Present() bool {
	return s != PaymentStatusAbsent
}

// Active сообщает, входит ли статус в набор статусов, дающих доступ.
func (s PaymentStatus) Active() bool {
	switch s {
	case PaymentStatusActive, PaymentStatusCompleted, PaymentStatusPaid,
		PaymentStatusPremium, PaymentStatusTrialing:
		return true
	default:
		return false
	}
}

// PaymentRecord — одна запись о платеже или подписке пользователя.
// У пользователя может быть ноль, одна или несколько записей.
type PaymentRecord struct {
	ID            string        `json:"id"`
	UserID        string        `json:"user_id"`
	Tier          string        `json:"tier,omitempty"`      // Тариф, пустая строка если не задан
	PlanType      string        `json:"plan_type,omitempty"` // Расширенный тип плана, приоритетнее Tier
	PaymentStatus PaymentStatus `json:"payment_status,omitempty"`
	AccessGranted *bool         `json:"access_granted,omitempty"` // Административный флаг: true, false или не задан
	UpdatedAt     *time.Time    `json:"updated_at,omitempty"`
	CreatedAt     *time.Time    `json:"created_at,omitempty"`
}

// Granted сообщает, выставлен ли флаг AccessGranted явно в true.
func (p *PaymentRecord) Granted() bool {
	return p.AccessGranted != nil && *p.AccessGranted
}
