// Package course реализует бизнес-логику работы с курсами платформы.
package course

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/daniilsolovey/course-platform/internal/lib/sl"
	"github.com/daniilsolovey/course-platform/internal/models"
	"github.com/daniilsolovey/course-platform/internal/storage/repository"
)

// ErrCourseNotFound возвращается, когда курс с указанным ID не существует.
var ErrCourseNotFound = errors.New("course not found")

// Repository описывает контракт для работы с курсами в базе данных.
type Repository interface {
	CreateCourse(ctx context.Context, course models.Course) (int64, error)
	ReadCourse(ctx context.Context, id int64) (*models.Course, error)
	ListCourses(ctx context.Context, limit, offset int) ([]*models.Course, error)
	UpdateCourse(ctx context.Context, course models.Course) (int, error)
	RemoveCourse(ctx context.Context, id int64) (int, error)
	ListLessonsByCourse(ctx context.Context, courseID int64) ([]*models.Lesson, error)
	CountLessonsByCourse(ctx context.Context, courseID int64) (int, error)
}

// Notifier ставит задачу рассылки уведомлений, если охлаждение курса истекло.
type Notifier interface {
	DispatchIfDue(ctx context.Context, courseID int64) (bool, error)
}

// Service отвечает за бизнес-логику курсов.
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

// Create создает курс. Владельцем становится вызывающий пользователь.
func (s *Service) Create(ctx context.Context, ownerUID string, req models.DummyCourse) (int64, error) {
	const op = "course.Create"
	id, err := s.repo.CreateCourse(ctx, models.Course{
		Name:        req.Name,
		Description: req.Description,
		Photo:       req.Photo,
		OwnerUID:    ownerUID,
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("course created", slog.Int64("course_id", id), slog.String("owner_uid", ownerUID))
	return id, nil
}

// GetCourse возвращает курс целиком, в том числе владельца.
// Используется обработчиками для проверки прав перед мутациями.
func (s *Service) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.repo.ReadCourse(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

// Read возвращает курс с его уроками и счётчиком уроков.
func (s *Service) Read(ctx context.Context, id int64) (*models.CourseInfo, error) {
	const op = "course.Read"
	course, err := s.GetCourse(ctx, id)
	if err != nil {
		return nil, err
	}

	lessons, err := s.repo.ListLessonsByCourse(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	info := models.CourseInfo{
		ID:          course.ID,
		Name:        course.Name,
		Description: course.Description,
		Photo:       course.Photo,
		OwnerUID:    course.OwnerUID,
		LessonCount: len(lessons),
		Lessons:     make([]models.LessonInfo, 0, len(lessons)),
	}
	for _, lesson := range lessons {
		info.Lessons = append(info.Lessons, models.LessonInfo{
			ID:          lesson.ID,
			Name:        lesson.Name,
			Description: lesson.Description,
			Photo:       lesson.Photo,
			VideoURL:    lesson.VideoURL,
			CourseID:    lesson.CourseID,
			OwnerUID:    lesson.OwnerUID,
		})
	}
	return &info, nil
}

// List возвращает страницу курсов со счётчиком уроков каждого.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*models.CourseInfo, error) {
	const op = "course.List"
	courses, err := s.repo.ListCourses(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]*models.CourseInfo, 0, len(courses))
	for _, course := range courses {
		count, err := s.repo.CountLessonsByCourse(ctx, course.ID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &models.CourseInfo{
			ID:          course.ID,
			Name:        course.Name,
			Description: course.Description,
			Photo:       course.Photo,
			OwnerUID:    course.OwnerUID,
			LessonCount: count,
		})
	}
	return result, nil
}

// Update применяет частичное обновление курса и при истёкшем охлаждении
// ставит задачу рассылки уведомлений подписчикам. Сбой постановки задачи
// логируется, но само обновление курса не отменяет.
func (s *Service) Update(ctx context.Context, id int64, req models.DummyCourseUpdate) error {
	const op = "course.Update"
	course, err := s.GetCourse(ctx, id)
	if err != nil {
		return err
	}

	if req.Name != nil {
		course.Name = *req.Name
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Photo != nil {
		course.Photo = *req.Photo
	}

	if _, err := s.repo.UpdateCourse(ctx, *course); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.notifier.DispatchIfDue(ctx, id); err != nil {
		s.log.Error("failed to dispatch update notification", sl.Err(err))
	}
	return nil
}

// Remove удаляет курс вместе с уроками, подписками и связями платежей.
func (s *Service) Remove(ctx context.Context, id int64) error {
	const op = "course.Remove"
	removed, err := s.repo.RemoveCourse(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if removed == 0 {
		return ErrCourseNotFound
	}
	s.log.Info("course removed", slog.Int64("course_id", id))
	return nil
}
