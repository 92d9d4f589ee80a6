// Package lesson реализует бизнес-логику работы с уроками курсов.
package lesson

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/daniilsolovey/course-platform/internal/lib/sl"
	"github.com/daniilsolovey/course-platform/internal/lib/videolink"
	"github.com/daniilsolovey/course-platform/internal/models"
	"github.com/daniilsolovey/course-platform/internal/storage/repository"
)

// ErrLessonNotFound возвращается, когда урок с указанным ID не существует.
var ErrLessonNotFound = errors.New("lesson not found")

// ErrCourseNotFound возвращается при создании урока в несуществующем курсе.
var ErrCourseNotFound = errors.New("course not found")

// ErrInvalidVideoLink возвращается для ссылок на сторонние видеохостинги.
var ErrInvalidVideoLink = videolink.ErrInvalidLink

// Repository описывает контракт для работы с уроками в базе данных.
type Repository interface {
	CreateLesson(ctx context.Context, lesson models.Lesson) (int64, error)
	ReadLesson(ctx context.Context, id int64) (*models.Lesson, error)
	ListLessons(ctx context.Context, limit, offset int) ([]*models.Lesson, error)
	UpdateLesson(ctx context.Context, lesson models.Lesson) (int, error)
	RemoveLesson(ctx context.Context, id int64) (int, error)
	ReadCourse(ctx context.Context, id int64) (*models.Course, error)
}

// Notifier ставит задачу рассылки уведомлений, если охлаждение курса истекло.
type Notifier interface {
	DispatchIfDue(ctx context.Context, courseID int64) (bool, error)
}

// Service отвечает за бизнес-логику уроков.
type Service struct {
	repo     Repository
	notifier Notifier
	log      *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, notifier Notifier, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		log:      log,
	}
}

// Create создает урок в указанном курсе. Владельцем становится вызывающий
// пользователь. Ссылка на видео проверяется до записи в базу.
func (s *Service) Create(ctx context.Context, ownerUID string, req models.DummyLesson) (int64, error) {
	const op = "lesson.Create"
	if err := videolink.Validate(req.VideoURL); err != nil {
		return 0, err
	}
	if _, err := s.repo.ReadCourse(ctx, req.CourseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrCourseNotFound
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.repo.CreateLesson(ctx, models.Lesson{
		Name:        req.Name,
		Description: req.Description,
		Photo:       req.Photo,
		VideoURL:    req.VideoURL,
		CourseID:    req.CourseID,
		OwnerUID:    ownerUID,
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("lesson created", slog.Int64("lesson_id", id), slog.Int64("course_id", req.CourseID))
	return id, nil
}

// GetLesson возвращает урок целиком, в том числе владельца.
// Используется обработчиками для проверки прав перед мутациями.
func (s *Service) GetLesson(ctx context.Context, id int64) (*models.Lesson, error) {
	lesson, err := s.repo.ReadLesson(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLessonNotFound
		}
		return nil, err
	}
	return lesson, nil
}

// Read возвращает представление урока для ответа API.
func (s *Service) Read(ctx context.Context, id int64) (*models.LessonInfo, error) {
	lesson, err := s.GetLesson(ctx, id)
	if err != nil {
		return nil, err
	}
	return lessonInfo(lesson), nil
}

// List возвращает страницу уроков.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*models.LessonInfo, error) {
	const op = "lesson.List"
	lessons, err := s.repo.ListLessons(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	result := make([]*models.LessonInfo, 0, len(lessons))
	for _, lesson := range lessons {
		result = append(result, lessonInfo(lesson))
	}
	return result, nil
}

// Update применяет частичное обновление урока. Курс и владелец урока не
// меняются. Новая ссылка на видео проверяется; после обновления ставится
// задача рассылки уведомлений подписчикам родительского курса, если
// охлаждение истекло. Сбой постановки задачи обновление не отменяет.
func (s *Service) Update(ctx context.Context, id int64, req models.DummyLessonUpdate) error {
	const op = "lesson.Update"
	lesson, err := s.GetLesson(ctx, id)
	if err != nil {
		return err
	}

	if req.VideoURL != nil {
		if err := videolink.Validate(*req.VideoURL); err != nil {
			return err
		}
		lesson.VideoURL = *req.VideoURL
	}
	if req.Name != nil {
		lesson.Name = *req.Name
	}
	if req.Description != nil {
		lesson.Description = *req.Description
	}
	if req.Photo != nil {
		lesson.Photo = *req.Photo
	}

	if _, err := s.repo.UpdateLesson(ctx, *lesson); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.notifier.DispatchIfDue(ctx, lesson.CourseID); err != nil {
		s.log.Error("failed to dispatch update notification", sl.Err(err))
	}
	return nil
}

// Remove удаляет урок по ID.
func (s *Service) Remove(ctx context.Context, id int64) error {
	const op = "lesson.Remove"
	removed, err := s.repo.RemoveLesson(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if removed == 0 {
		return ErrLessonNotFound
	}
	s.log.Info("lesson removed", slog.Int64("lesson_id", id))
	return nil
}

func lessonInfo(lesson *models.Lesson) *models.LessonInfo {
	return &models.LessonInfo{
		ID:          lesson.ID,
		Name:        lesson.Name,
		Description: lesson.Description,
		Photo:       lesson.Photo,
		VideoURL:    lesson.VideoURL,
		CourseID:    lesson.CourseID,
		OwnerUID:    lesson.OwnerUID,
	}
}
