package rabbitmq

import "github.com/magabrotheeeer/readiness-entitlements/internal/config"

const prefetchCount = 10

type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// PaymentQueues возвращает очереди, которые слушает сервис.
func PaymentQueues(cfg config.RabbitMQConnection) []QueueConfig {
	return []QueueConfig{
		{QueueName: cfg.Queue, RoutingKey: cfg.RoutingKey},
	}
}
