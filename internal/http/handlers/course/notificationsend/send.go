// Package notificationsend реализует HTTP-обработчик явной постановки
// рассылки уведомлений подписчикам курса. Активное охлаждение отвечает
// статусом 429 Too Many Requests.
package notificationsend

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/daniilsolovey/course-platform/internal/http/middlewarectx"
	"github.com/daniilsolovey/course-platform/internal/http/response"
	"github.com/daniilsolovey/course-platform/internal/lib/sl"
	"github.com/daniilsolovey/course-platform/internal/models"
	"github.com/daniilsolovey/course-platform/internal/services/course"
	"github.com/daniilsolovey/course-platform/internal/services/notification"
)

// Handler обрабатывает HTTP-запросы на постановку рассылки.
type Handler struct {
	log      *slog.Logger
	courses  CourseService
	notifier NotificationService
}

// CourseService возвращает курс для проверки прав доступа.
type CourseService interface {
	GetCourse(ctx context.Context, id int64) (*models.Course, error)
}

// NotificationService описывает интерфейс постановки рассылки.
type NotificationService interface {
	Dispatch(ctx context.Context, courseID int64) error
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, courses CourseService, notifier NotificationService) *Handler {
	return &Handler{
		log:      log,
		courses:  courses,
		notifier: notifier,
	}
}

// ServeHTTP godoc
// @Summary Разослать уведомления подписчикам
// @Description Ставит задачу рассылки уведомлений подписчикам курса. При активном охлаждении возвращает 429.
// @Tags Notifications
// @Produce  json
// @Param id path int true "ID курса"
// @Success 200 {object} response.Response "Рассылка поставлена в очередь"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Курс не найден"
// @Failure 429 {object} response.ErrorResponse "Охлаждение ещё не истекло"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /courses/{id}/notifications [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.course.notificationsend"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	// Достаточно аутентификации: рассылка уходит только подписчикам курса.
	_, ok := middlewarectx.ActorFromContext(r.Context())
	if !ok {
		log.Error("actor not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("invalid id format", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	if _, err := h.courses.GetCourse(r.Context(), id); err != nil {
		if errors.Is(err, course.ErrCourseNotFound) {
			log.Error("course not found", slog.Int64("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("course not found"))
			return
		}
		log.Error("failed to read course", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	if err := h.notifier.Dispatch(r.Context(), id); err != nil {
		if errors.Is(err, notification.ErrThrottled) {
			log.Info("notification throttled", slog.Int64("id", id))
			w.WriteHeader(http.StatusTooManyRequests)
			render.JSON(w, r, response.Error("notification cooldown is active"))
			return
		}
		log.Error("failed to dispatch notification", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	log.Info("notification enqueued", slog.Int64("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "notification enqueued",
	}))
}
