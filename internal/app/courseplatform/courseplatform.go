// Package courseplatform собирает API-сервер платформы курсов:
// хранилище, миграции, Redis для refresh-токенов, RabbitMQ для задач
// рассылки и HTTP-маршруты.
package courseplatform

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/daniilsolovey/course-platform/internal/cache"
	"github.com/daniilsolovey/course-platform/internal/config"
	"github.com/daniilsolovey/course-platform/internal/lib/jwt"
	"github.com/daniilsolovey/course-platform/internal/lib/rabbitmq"
	"github.com/daniilsolovey/course-platform/internal/migrations"
	"github.com/daniilsolovey/course-platform/internal/paymentprovider"
	authservice "github.com/daniilsolovey/course-platform/internal/services/auth"
	courseservice "github.com/daniilsolovey/course-platform/internal/services/course"
	lessonservice "github.com/daniilsolovey/course-platform/internal/services/lesson"
	notificationservice "github.com/daniilsolovey/course-platform/internal/services/notification"
	paymentservice "github.com/daniilsolovey/course-platform/internal/services/payment"
	subscriptionservice "github.com/daniilsolovey/course-platform/internal/services/subscription"
	"github.com/daniilsolovey/course-platform/internal/storage/repository"
)

// App — HTTP-приложение платформы курсов.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	conn   *amqp.Connection
	ch     *amqp.Channel
}

// New собирает приложение: подключает зависимости и регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	tokenStore, err := cache.InitServer(ctx, cfg.RedisConnection)
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

	jwtMaker := jwt.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	authService := authservice.New(db, tokenStore, jwtMaker, cfg.RefreshTTL)

	queue := rabbitmq.NewNotificationQueue(ch)
	notifier := notificationservice.NewDispatcher(db, queue, logger)

	courseService := courseservice.New(db, notifier, logger)
	lessonService := lessonservice.New(db, notifier, logger)
	subscriptionService := subscriptionservice.New(db, logger)

	providerClient := paymentprovider.NewClient(cfg.APIKey, cfg.APIURL, cfg.SuccessURL)
	paymentService := paymentservice.New(db, providerClient, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, &Services{
		Auth:         authService,
		Course:       courseService,
		Lesson:       lessonService,
		Subscription: subscriptionService,
		Payment:      paymentService,
		Notifier:     notifier,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		conn:   conn,
		ch:     ch,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.ch.Close(); closeErr != nil {
			a.logger.Error("failed to close channel", slog.Any("err", closeErr))
		}
		if closeErr := a.conn.Close(); closeErr != nil {
			a.logger.Error("failed to close connection", slog.Any("err", closeErr))
		}
		if closeErr := a.db.DB.Close(); closeErr != nil {
			a.logger.Error("failed to close database", slog.Any("err", closeErr))
		}
		return err
	}
}
