// Package payment реализует журнал платежей и инициацию платёжных сессий
// у внешнего провайдера.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/daniilsolovey/course-platform/internal/lib/sl"
	"github.com/daniilsolovey/course-platform/internal/models"
	"github.com/daniilsolovey/course-platform/internal/paymentprovider"
	"github.com/daniilsolovey/course-platform/internal/storage/repository"
)

// ErrCourseNotFound возвращается при платеже за несуществующий курс.
var ErrCourseNotFound = errors.New("course not found")

// ErrProviderUnavailable возвращается, когда платёжный провайдер не ответил
// или ответил ошибкой. Локальная запись сессии при этом сохраняется.
var ErrProviderUnavailable = errors.New("payment provider unavailable")

// Repository описывает контракт для работы с платежами в базе данных.
type Repository interface {
	CreatePayment(ctx context.Context, payment models.Payment) (int64, error)
	ListPayments(ctx context.Context, courseID *int64, method *string) ([]*models.Payment, error)
	CreatePaymentCourse(ctx context.Context, pc models.PaymentCourse) (int64, error)
	LinkPaymentSession(ctx context.Context, id int64, sessionID, paymentLink string) error
	ReadCourse(ctx context.Context, id int64) (*models.Course, error)
}

// ProviderClient — клиент внешнего платёжного процессора.
type ProviderClient interface {
	CreatePrice(ctx context.Context, unitAmount int64) (*paymentprovider.Price, error)
	CreateCheckoutSession(ctx context.Context, priceID string) (*paymentprovider.Session, error)
}

// Service отвечает за бизнес-логику платежей.
type Service struct {
	repo     Repository
	provider ProviderClient
	log      *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, provider ProviderClient, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		provider: provider,
		log:      log,
	}
}

// Create добавляет запись в журнал платежей. Плательщиком становится
// вызывающий пользователь, дата проставляется базой.
func (s *Service) Create(ctx context.Context, userUID string, req models.DummyPayment) (int64, error) {
	const op = "payment.Create"
	if req.CourseID != nil {
		if _, err := s.repo.ReadCourse(ctx, *req.CourseID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return 0, ErrCourseNotFound
			}
			return 0, fmt.Errorf("%s: %w", op, err)
		}
	}

	id, err := s.repo.CreatePayment(ctx, models.Payment{
		UserUID:  userUID,
		CourseID: req.CourseID,
		Amount:   req.Amount,
		Method:   req.Method,
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("payment recorded",
		slog.Int64("payment_id", id),
		slog.String("user_uid", userUID),
		slog.String("method", req.Method))
	return id, nil
}

// List возвращает платежи с фильтрами по курсу и способу оплаты.
// Суммы отдаются строками с двумя знаками после запятой.
func (s *Service) List(ctx context.Context, courseID *int64, method *string) ([]*models.PaymentInfo, error) {
	const op = "payment.List"
	payments, err := s.repo.ListPayments(ctx, courseID, method)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]*models.PaymentInfo, 0, len(payments))
	for _, p := range payments {
		result = append(result, &models.PaymentInfo{
			ID:          p.ID,
			UserUID:     p.UserUID,
			CourseID:    p.CourseID,
			Amount:      strconv.FormatFloat(p.Amount, 'f', 2, 64),
			Method:      p.Method,
			PaymentDate: p.PaymentDate,
		})
	}
	return result, nil
}

// InitiateSession создаёт платёжную сессию у провайдера.
//
// Локальная запись сохраняется до обращения к провайдеру; если провайдер
// недоступен, запись остаётся без идентификатора сессии и ссылки, а вызов
// возвращает ErrProviderUnavailable. Сумма конвертируется в минорные
// единицы с округлением до ближайшего цента.
func (s *Service) InitiateSession(ctx context.Context, userUID string, req models.DummyPaymentSession) (*models.PaymentSessionInfo, error) {
	const op = "payment.InitiateSession"

	pc := models.PaymentCourse{
		UserUID: userUID,
		Amount:  req.Amount,
	}
	id, err := s.repo.CreatePaymentCourse(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	pc.ID = id

	unitAmount := int64(math.Round(req.Amount * 100))
	price, err := s.provider.CreatePrice(ctx, unitAmount)
	if err != nil {
		s.log.Error("payment provider rejected price creation",
			slog.Int64("payment_course_id", id), sl.Err(err))
		return nil, ErrProviderUnavailable
	}

	session, err := s.provider.CreateCheckoutSession(ctx, price.ID)
	if err != nil {
		s.log.Error("payment provider rejected session creation",
			slog.Int64("payment_course_id", id), sl.Err(err))
		return nil, ErrProviderUnavailable
	}

	if err := s.repo.LinkPaymentSession(ctx, id, session.ID, session.URL); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("payment session created",
		slog.Int64("payment_course_id", id),
		slog.String("session_id", session.ID))
	return &models.PaymentSessionInfo{
		ID:          id,
		Amount:      pc.AmountString(),
		SessionID:   &session.ID,
		PaymentLink: &session.URL,
	}, nil
}
