package rabbitmq

import "github.com/streadway/amqp"

// NotificationQueue — очередь задач на рассылку уведомлений поверх канала RabbitMQ.
// Сервисы работают с ней через узкий интерфейс Enqueue и не владеют каналом.
type NotificationQueue struct {
	ch *amqp.Channel
}

// NewNotificationQueue создаёт очередь задач поверх открытого канала.
func NewNotificationQueue(ch *amqp.Channel) *NotificationQueue {
	return &NotificationQueue{ch: ch}
}

// Enqueue публикует задачу рассылки в обменник уведомлений.
func (q *NotificationQueue) Enqueue(message any) error {
	return PublishMessage(q.ch, NotificationExchange, CourseUpdatedKey, message)
}
