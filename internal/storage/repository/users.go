package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/daniilsolovey/course-platform/internal/models"
)

// RegisterUser сохраняет нового пользователя и возвращает его UID.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	uid := uuid.NewString()
	query := `INSERT INTO users (uid, email, password_hash, name, phone, city, avatar,
	              is_active, is_staff, is_moderator)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          RETURNING uid`
	var newUID string
	err := s.DB.QueryRowContext(ctx, query,
		uid, user.Email, user.PasswordHash, user.Name, user.Phone, user.City, user.Avatar,
		user.IsActive, user.IsStaff, user.IsModerator).Scan(&newUID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetUserByEmail возвращает пользователя по email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, password_hash, name, phone, city, avatar,
	              is_active, is_staff, is_moderator, last_login, created_at
	          FROM users WHERE email = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, email), op)
}

// GetUserByUID возвращает пользователя по UID.
func (s *Storage) GetUserByUID(ctx context.Context, uid string) (*models.User, error) {
	const op = "storage.GetUserByUID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, password_hash, name, phone, city, avatar,
	              is_active, is_staff, is_moderator, last_login, created_at
	          FROM users WHERE uid = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, uid), op)
}

func (s *Storage) scanUser(row *sql.Row, op string) (*models.User, error) {
	var user models.User
	err := row.Scan(&user.UID, &user.Email, &user.PasswordHash, &user.Name, &user.Phone,
		&user.City, &user.Avatar, &user.IsActive, &user.IsStaff, &user.IsModerator,
		&user.LastLogin, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &user, nil
}

// UpdateUserProfile обновляет изменяемые поля профиля пользователя.
func (s *Storage) UpdateUserProfile(ctx context.Context, user models.User) (int, error) {
	const op = "storage.UpdateUserProfile"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
	          SET name = $1, phone = $2, city = $3, avatar = $4, password_hash = $5
	          WHERE uid = $6`
	result, err := s.DB.ExecContext(ctx, query,
		user.Name, user.Phone, user.City, user.Avatar, user.PasswordHash, user.UID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// UpdateLastLogin проставляет дату последнего входа пользователя.
func (s *Storage) UpdateLastLogin(ctx context.Context, uid string, loginAt time.Time) error {
	const op = "storage.UpdateLastLogin"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users SET last_login = $1 WHERE uid = $2`
	if _, err := s.DB.ExecContext(ctx, query, loginAt, uid); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DeactivateInactiveUsers одним запросом снимает флаг активности со всех
// пользователей, не входивших с момента cutoff. Возвращает число затронутых строк.
func (s *Storage) DeactivateInactiveUsers(ctx context.Context, cutoff time.Time) (int, error) {
	const op = "storage.DeactivateInactiveUsers"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users SET is_active = false
	          WHERE is_active = true AND last_login < $1`
	result, err := s.DB.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
