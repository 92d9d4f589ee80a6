// Package notificationstatus реализует HTTP-обработчик статуса охлаждения
// рассылки уведомлений курса: можно ли отправить уведомление сейчас и
// сколько часов осталось ждать.
package notificationstatus

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
)

// Handler обрабатывает HTTP-запросы на получение статуса охлаждения.
type Handler struct {
	log      *slog.Logger
	courses  CourseService
	notifier NotificationService
}

// CourseService возвращает курс для проверки прав доступа.
type CourseService interface {
	GetCourse(ctx context.Context, id int64) (*models.Course, error)
}

// NotificationService описывает интерфейс статуса охлаждения рассылки.
type NotificationService interface {
	Status(ctx context.Context, courseID int64) (*models.NotificationStatus, error)
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
// @Summary Статус охлаждения рассылки
// @Description Возвращает, можно ли отправить уведомление подписчикам курса, время последней рассылки и оставшиеся часы охлаждения.
// @Tags Notifications
// @Produce  json
// @Param id path int true "ID курса"
// @Success 200 {object} models.NotificationStatus "Статус охлаждения"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Курс не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /courses/{id}/notifications [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.course.notificationstatus"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	// Статус охлаждения доступен любому аутентифицированному пользователю.
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

	status, err := h.notifier.Status(r.Context(), id)
	if err != nil {
		log.Error("failed to get notification status", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(status))
}
