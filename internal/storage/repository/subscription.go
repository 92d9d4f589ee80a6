package repository

import (
	"context"
	"fmt"

	"github.com/daniilsolovey/course-platform/internal/models"
)

// ToggleSubscription атомарно переключает подписку пользователя на курс
// и возвращает итоговое состояние: true — подписан, false — отписан.
//
// Проверка существования и мутация выполняются в одной транзакции:
// сначала условное удаление, затем вставка с ON CONFLICT DO NOTHING по
// уникальному индексу (user_uid, course_id). Конфликт вставки означает,
// что параллельный запрос уже подписал пользователя — строка одна в любом
// исходе, двойных подписок не бывает.
func (s *Storage) ToggleSubscription(ctx context.Context, userUID string, courseID int64) (bool, error) {
	const op = "storage.ToggleSubscription"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = tx.Rollback() }()

	deleteQuery := `DELETE FROM course_subscriptions
	                WHERE user_uid = $1 AND course_id = $2`
	result, err := tx.ExecContext(ctx, deleteQuery, userUID, courseID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if deleted > 0 {
		if err := tx.Commit(); err != nil {
			return false, fmt.Errorf("%s: %w", op, err)
		}
		return false, nil
	}

	insertQuery := `INSERT INTO course_subscriptions (user_uid, course_id)
	                VALUES ($1, $2)
	                ON CONFLICT (user_uid, course_id) DO NOTHING`
	if _, err := tx.ExecContext(ctx, insertQuery, userUID, courseID); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

// ListSubscriptions возвращает подписки пользователя с названием курса и почтой подписчика.
func (s *Storage) ListSubscriptions(ctx context.Context, userUID string) ([]*models.SubscriptionInfo, error) {
	const op = "storage.ListSubscriptions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT cs.id, cs.course_id, c.name, u.email
	          FROM course_subscriptions cs
	          JOIN courses c ON c.id = cs.course_id
	          JOIN users u ON u.uid = cs.user_uid
	          WHERE cs.user_uid = $1
	          ORDER BY cs.id`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var result []*models.SubscriptionInfo
	for rows.Next() {
		var item models.SubscriptionInfo
		if err := rows.Scan(&item.ID, &item.CourseID, &item.CourseName, &item.UserEmail); err != nil {
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

// ListSubscriberEmails возвращает почтовые адреса всех подписчиков курса.
func (s *Storage) ListSubscriberEmails(ctx context.Context, courseID int64) ([]string, error) {
	const op = "storage.ListSubscriberEmails"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT u.email
	          FROM course_subscriptions cs
	          JOIN users u ON u.uid = cs.user_uid
	          WHERE cs.course_id = $1
	          ORDER BY cs.id`
	rows, err := s.DB.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var result []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, email)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = rows.Close(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
