// Package notification реализует рассылку уведомлений подписчикам курсов
// с охлаждением: между рассылками одного курса проходит не меньше
// models.NotificationCooldown. Диспетчер работает на стороне API и ставит
// задачи в очередь, отправкой писем занимается фоновый воркер (sender.go).
package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/daniilsolovey/course-platform/internal/lib/sl"
	"github.com/daniilsolovey/course-platform/internal/models"
)

// ErrThrottled возвращается, когда с последней рассылки курса прошло
// меньше времени охлаждения.
var ErrThrottled = errors.New("notification cooldown is active")

// CourseUpdateJob — задача рассылки уведомлений об обновлении курса.
type CourseUpdateJob struct {
	CourseID int64 `json:"course_id"`
}

// CourseReader возвращает курс по идентификатору.
type CourseReader interface {
	ReadCourse(ctx context.Context, id int64) (*models.Course, error)
}

// JobQueue — очередь асинхронных задач. Диспетчер её не владеет:
// доставка задач как минимум однократная, исполняет их внешний воркер.
type JobQueue interface {
	Enqueue(message any) error
}

// Dispatcher ставит задачи рассылки в очередь, соблюдая охлаждение.
type Dispatcher struct {
	courses CourseReader
	queue   JobQueue
	log     *slog.Logger
}

// NewDispatcher создает новый экземпляр Dispatcher.
func NewDispatcher(courses CourseReader, queue JobQueue, log *slog.Logger) *Dispatcher {
	return &Dispatcher{
		courses: courses,
		queue:   queue,
		log:     log,
	}
}

// DispatchIfDue ставит задачу рассылки, если охлаждение курса истекло.
// Вызывается после обновления курса или его урока; когда рассылка не
// положена, молча пропускает — это не ошибка обновления.
func (d *Dispatcher) DispatchIfDue(ctx context.Context, courseID int64) (bool, error) {
	const op = "notification.DispatchIfDue"
	course, err := d.courses.ReadCourse(ctx, courseID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if !course.ShouldSendNotification(time.Now().UTC()) {
		d.log.Info("notification not due yet", slog.Int64("course_id", courseID))
		return false, nil
	}
	if err := d.queue.Enqueue(CourseUpdateJob{CourseID: courseID}); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	d.log.Info("course update notification enqueued", slog.Int64("course_id", courseID))
	return true, nil
}

// Dispatch ставит задачу рассылки по явному запросу. В отличие от
// DispatchIfDue активное охлаждение считается ошибкой ErrThrottled.
func (d *Dispatcher) Dispatch(ctx context.Context, courseID int64) error {
	const op = "notification.Dispatch"
	course, err := d.courses.ReadCourse(ctx, courseID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !course.ShouldSendNotification(time.Now().UTC()) {
		return ErrThrottled
	}
	if err := d.queue.Enqueue(CourseUpdateJob{CourseID: courseID}); err != nil {
		d.log.Error("failed to enqueue notification", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Status возвращает состояние охлаждения рассылки курса: можно ли отправить
// уведомление, когда была последняя рассылка и сколько часов осталось ждать.
func (d *Dispatcher) Status(ctx context.Context, courseID int64) (*models.NotificationStatus, error) {
	const op = "notification.Status"
	course, err := d.courses.ReadCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()
	status := models.NotificationStatus{
		CourseID:             course.ID,
		CourseName:           course.Name,
		CanSend:              course.ShouldSendNotification(now),
		LastNotificationSent: course.LastNotificationSent,
	}
	if course.LastNotificationSent != nil {
		hours := now.Sub(*course.LastNotificationSent).Hours()
		status.HoursSinceLast = &hours
		status.NextInHours = max(0, models.NotificationCooldown.Hours()-hours)
	}
	return &status, nil
}
