package rabbitmq

// NotificationsExchange — exchange для всех уведомлений сервиса.
const NotificationsExchange = "notifications"

// Очереди и ключи маршрутизации уведомлений.
const (
	RenewalQueue      = "notifications.renewal"
	RenewalRoutingKey = "renewal"
)

// QueueConfig описывает очередь и её ключ маршрутизации.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetNotificationQueues возвращает набор очередей уведомлений сервиса.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: RenewalQueue, RoutingKey: RenewalRoutingKey},
	}
}
