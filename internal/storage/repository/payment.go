package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/daniilsolovey/course-platform/internal/models"
)

// CreatePayment добавляет запись в журнал платежей и возвращает её ID.
// Журнал только пополняется, записи никогда не изменяются.
func (s *Storage) CreatePayment(ctx context.Context, payment models.Payment) (int64, error) {
	const op = "storage.CreatePayment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO payments (user_uid, course_id, amount, payment_method)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		payment.UserUID, payment.CourseID, payment.Amount, payment.Method).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListPayments возвращает платежи с фильтрами по курсу и способу оплаты,
// отсортированные по дате оплаты от новых к старым.
func (s *Storage) ListPayments(ctx context.Context, courseID *int64, method *string) ([]*models.Payment, error) {
	const op = "storage.ListPayments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, course_id, amount, payment_method, payment_date
	          FROM payments
	          WHERE ($1::bigint IS NULL OR course_id = $1)
	            AND ($2::text IS NULL OR payment_method = $2)
	          ORDER BY payment_date DESC`
	rows, err := s.DB.QueryContext(ctx, query, courseID, method)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var result []*models.Payment
	for rows.Next() {
		var item models.Payment
		if err := rows.Scan(&item.ID, &item.UserUID, &item.CourseID, &item.Amount,
			&item.Method, &item.PaymentDate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = rows.Close(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CreatePaymentCourse сохраняет запись о платёжной сессии до обращения
// к провайдеру: идентификатор сессии и ссылка пока пусты.
func (s *Storage) CreatePaymentCourse(ctx context.Context, pc models.PaymentCourse) (int64, error) {
	const op = "storage.CreatePaymentCourse"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO payment_courses (user_uid, amount)
	          VALUES ($1, $2)
	          RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query, pc.UserUID, pc.Amount).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// LinkPaymentSession записывает идентификатор сессии и ссылку на оплату,
// полученные от платёжного провайдера.
func (s *Storage) LinkPaymentSession(ctx context.Context, id int64, sessionID, paymentLink string) error {
	const op = "storage.LinkPaymentSession"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE payment_courses SET session_id = $1, payment_link = $2 WHERE id = $3`
	if _, err := s.DB.ExecContext(ctx, query, sessionID, paymentLink, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ReadPaymentCourse возвращает запись платёжной сессии по её ID.
func (s *Storage) ReadPaymentCourse(ctx context.Context, id int64) (*models.PaymentCourse, error) {
	const op = "storage.ReadPaymentCourse"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, amount, session_id, payment_link, created_at
	          FROM payment_courses WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.PaymentCourse
	err := row.Scan(&result.ID, &result.UserUID, &result.Amount,
		&result.SessionID, &result.PaymentLink, &result.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}
