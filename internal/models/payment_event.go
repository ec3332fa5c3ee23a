package models

// PaymentEvent — сообщение из очереди об изменении платёжных данных пользователя.
type PaymentEvent struct {
	UserID string `json:"user_id" validate:"required,uuid"`
	Event  string `json:"event"`
}
