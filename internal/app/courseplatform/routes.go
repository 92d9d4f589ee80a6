// Package courseplatform предоставляет маршруты для основного приложения.
package courseplatform

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	loginhandler "github.com/daniilsolovey/course-platform/internal/http/handlers/auth/login"
	refreshhandler "github.com/daniilsolovey/course-platform/internal/http/handlers/auth/refresh"
	registerhandler "github.com/daniilsolovey/course-platform/internal/http/handlers/auth/register"
	coursecreate "github.com/daniilsolovey/course-platform/internal/http/handlers/course/create"
	courselist "github.com/daniilsolovey/course-platform/internal/http/handlers/course/list"
	"github.com/daniilsolovey/course-platform/internal/http/handlers/course/notificationsend"
	"github.com/daniilsolovey/course-platform/internal/http/handlers/course/notificationstatus"
	courseread "github.com/daniilsolovey/course-platform/internal/http/handlers/course/read"
	courseremove "github.com/daniilsolovey/course-platform/internal/http/handlers/course/remove"
	courseupdate "github.com/daniilsolovey/course-platform/internal/http/handlers/course/update"
	lessoncreate "github.com/daniilsolovey/course-platform/internal/http/handlers/lesson/create"
	lessonlist "github.com/daniilsolovey/course-platform/internal/http/handlers/lesson/list"
	lessonread "github.com/daniilsolovey/course-platform/internal/http/handlers/lesson/read"
	lessonremove "github.com/daniilsolovey/course-platform/internal/http/handlers/lesson/remove"
	lessonupdate "github.com/daniilsolovey/course-platform/internal/http/handlers/lesson/update"
	"github.com/daniilsolovey/course-platform/internal/http/handlers/payment/paymentcreate"
	"github.com/daniilsolovey/course-platform/internal/http/handlers/payment/paymentlist"
	"github.com/daniilsolovey/course-platform/internal/http/handlers/payment/paymentsession"
	subscriptionlist "github.com/daniilsolovey/course-platform/internal/http/handlers/subscription/list"
	subscriptiontoggle "github.com/daniilsolovey/course-platform/internal/http/handlers/subscription/toggle"
	userread "github.com/daniilsolovey/course-platform/internal/http/handlers/user/read"
	userupdate "github.com/daniilsolovey/course-platform/internal/http/handlers/user/update"
	"github.com/daniilsolovey/course-platform/internal/http/middlewarectx"
	authservice "github.com/daniilsolovey/course-platform/internal/services/auth"
	courseservice "github.com/daniilsolovey/course-platform/internal/services/course"
	lessonservice "github.com/daniilsolovey/course-platform/internal/services/lesson"
	notificationservice "github.com/daniilsolovey/course-platform/internal/services/notification"
	paymentservice "github.com/daniilsolovey/course-platform/internal/services/payment"
	subscriptionservice "github.com/daniilsolovey/course-platform/internal/services/subscription"
)

// Services — сервисы, которыми пользуются HTTP-обработчики.
type Services struct {
	Auth         *authservice.Service
	Course       *courseservice.Service
	Lesson       *lessonservice.Service
	Subscription *subscriptionservice.Service
	Payment      *paymentservice.Service
	Notifier     *notificationservice.Dispatcher
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, s *Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/users/create", registerhandler.New(logger, s.Auth).ServeHTTP)
		r.Post("/login", loginhandler.New(logger, s.Auth).ServeHTTP)
		r.Post("/token/refresh", refreshhandler.New(logger, s.Auth).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(s.Auth, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/users/{uid}", userread.New(logger, s.Auth).ServeHTTP)
			r.Patch("/users/{uid}", userupdate.New(logger, s.Auth).ServeHTTP)
			r.Put("/users/{uid}", userupdate.New(logger, s.Auth).ServeHTTP)

			r.Post("/courses", coursecreate.New(logger, s.Course).ServeHTTP)
			r.Get("/courses", courselist.New(logger, s.Course).ServeHTTP)
			r.Get("/courses/{id}", courseread.New(logger, s.Course).ServeHTTP)
			r.Patch("/courses/{id}", courseupdate.New(logger, s.Course).ServeHTTP)
			r.Put("/courses/{id}", courseupdate.New(logger, s.Course).ServeHTTP)
			r.Delete("/courses/{id}", courseremove.New(logger, s.Course).ServeHTTP)
			r.Get("/courses/{id}/notifications", notificationstatus.New(logger, s.Course, s.Notifier).ServeHTTP)
			r.Post("/courses/{id}/notifications", notificationsend.New(logger, s.Course, s.Notifier).ServeHTTP)

			r.Post("/lessons/create", lessoncreate.New(logger, s.Lesson).ServeHTTP)
			r.Get("/lessons", lessonlist.New(logger, s.Lesson).ServeHTTP)
			r.Get("/lessons/{id}", lessonread.New(logger, s.Lesson).ServeHTTP)
			r.Patch("/lessons/{id}/update", lessonupdate.New(logger, s.Lesson).ServeHTTP)
			r.Put("/lessons/{id}/update", lessonupdate.New(logger, s.Lesson).ServeHTTP)
			r.Delete("/lessons/{id}/delete", lessonremove.New(logger, s.Lesson).ServeHTTP)

			r.Post("/subscriptions", subscriptiontoggle.New(logger, s.Subscription).ServeHTTP)
			r.Get("/subscriptions", subscriptionlist.New(logger, s.Subscription).ServeHTTP)

			r.Post("/payments", paymentcreate.New(logger, s.Payment).ServeHTTP)
			r.Get("/payments/list", paymentlist.New(logger, s.Payment).ServeHTTP)
			r.Post("/payments/session", paymentsession.New(logger, s.Payment).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
