// Package subscription реализует переключение и просмотр подписок на курсы.
package subscription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/daniilsolovey/course-platform/internal/models"
	"github.com/daniilsolovey/course-platform/internal/storage/repository"
)

// ErrCourseNotFound возвращается при попытке подписаться на несуществующий курс.
var ErrCourseNotFound = errors.New("course not found")

// Repository описывает контракт для работы с подписками в базе данных.
type Repository interface {
	// ReadCourse возвращает курс по идентификатору.
	ReadCourse(ctx context.Context, id int64) (*models.Course, error)
	// ToggleSubscription атомарно переключает подписку и возвращает итоговое состояние.
	ToggleSubscription(ctx context.Context, userUID string, courseID int64) (bool, error)
	// ListSubscriptions возвращает подписки пользователя.
	ListSubscriptions(ctx context.Context, userUID string) ([]*models.SubscriptionInfo, error)
}

// Service отвечает за бизнес-логику подписок.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// Toggle переключает подписку пользователя на курс. Повторный вызов
// возвращает подписку в исходное состояние.
func (s *Service) Toggle(ctx context.Context, userUID string, courseID int64) (*models.ToggleResult, error) {
	const op = "subscription.Toggle"

	course, err := s.repo.ReadCourse(ctx, courseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	subscribed, err := s.repo.ToggleSubscription(ctx, userUID, courseID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := &models.ToggleResult{
		SubscriptionStatus: subscribed,
		CourseID:           course.ID,
		CourseName:         course.Name,
	}
	if subscribed {
		result.Message = "Подписка добавлена"
	} else {
		result.Message = "Подписка удалена"
	}

	s.log.Info("subscription toggled",
		slog.String("user_uid", userUID),
		slog.Int64("course_id", courseID),
		slog.Bool("subscribed", subscribed))
	return result, nil
}

// List возвращает подписки пользователя.
func (s *Service) List(ctx context.Context, userUID string) ([]*models.SubscriptionInfo, error) {
	const op = "subscription.List"
	result, err := s.repo.ListSubscriptions(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
