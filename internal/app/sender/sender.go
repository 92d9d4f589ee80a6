// Package sender собирает воркер рассылки уведомлений: потребляет задачи
// из RabbitMQ и отправляет письма подписчикам курсов.
package sender

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/daniilsolovey/course-platform/internal/config"
	"github.com/daniilsolovey/course-platform/internal/lib/rabbitmq"
	"github.com/daniilsolovey/course-platform/internal/lib/smtp"
	notificationservice "github.com/daniilsolovey/course-platform/internal/services/notification"
	"github.com/daniilsolovey/course-platform/internal/storage/repository"
)

// App — приложение воркера рассылки.
type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *notificationservice.SenderService
	logger        *slog.Logger
}

// New собирает воркер: подключает хранилище, RabbitMQ и SMTP транспорт.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	conn, err := rabbitmq.Connect(cfg.RabbitMQConnection, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	transport := smtp.NewTransport(cfg.SMTP, logger)
	senderService := notificationservice.NewSenderService(db, transport, logger)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		logger:        logger,
	}, nil
}

// Run запускает потребителя очереди задач рассылки и ждёт отмены контекста.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.ch, rabbitmq.CourseUpdatedQueue, a.senderService.SendCourseUpdate)
	if err != nil {
		a.logger.Error("failed to start course update consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("sender service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}

	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}

	return nil
}
