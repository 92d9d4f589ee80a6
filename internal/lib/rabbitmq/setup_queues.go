package rabbitmq

// Имена обменника, очереди и ключа маршрутизации для уведомлений
// об обновлении курсов.
const (
	// NotificationExchange — обменник уведомлений платформы.
	NotificationExchange = "course.updates"
	// CourseUpdatedQueue — очередь задач на рассылку писем подписчикам.
	CourseUpdatedQueue = "course.updates.notify"
	// CourseUpdatedKey — ключ маршрутизации задач рассылки.
	CourseUpdatedKey = "updated"
)

// QueueConfig описывает очередь и её ключ маршрутизации.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetNotificationQueues возвращает очереди уведомлений платформы.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: CourseUpdatedQueue, RoutingKey: CourseUpdatedKey},
	}
}
