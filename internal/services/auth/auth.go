// Package auth содержит логику регистрации, входа и обновления пары токенов.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/daniilsolovey/course-platform/internal/lib/jwt"
	"github.com/daniilsolovey/course-platform/internal/lib/password"
	"github.com/daniilsolovey/course-platform/internal/models"
	"github.com/daniilsolovey/course-platform/internal/storage/repository"
)

// ErrInvalidCredentials возвращается при неверной паре email/пароль.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidRefreshToken возвращается при неизвестном или истёкшем refresh-токене.
var ErrInvalidRefreshToken = errors.New("invalid refresh token")

// ErrInactiveUser возвращается при попытке входа деактивированного пользователя.
var ErrInactiveUser = errors.New("user is deactivated")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)
	// GetUserByEmail возвращает пользователя по email или ошибку, если не найден.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUserByUID возвращает пользователя по UID.
	GetUserByUID(ctx context.Context, uid string) (*models.User, error)
	// UpdateUserProfile обновляет изменяемые поля профиля.
	UpdateUserProfile(ctx context.Context, user models.User) (int, error)
	// UpdateLastLogin проставляет дату последнего входа.
	UpdateLastLogin(ctx context.Context, uid string, loginAt time.Time) error
}

// TokenStore хранит refresh-токены пользователей.
type TokenStore interface {
	SaveRefreshToken(ctx context.Context, token, userUID string, ttl time.Duration) error
	GetRefreshToken(ctx context.Context, token string) (string, bool, error)
	DeleteRefreshToken(ctx context.Context, token string) error
}

// Service отвечает за регистрацию, авторизацию и валидацию JWT.
type Service struct {
	users      UserRepository
	tokens     TokenStore
	jwtMaker   jwt.Maker
	refreshTTL time.Duration
}

// New создает новый экземпляр Service.
func New(users UserRepository, tokens TokenStore, jwtMaker jwt.Maker, refreshTTL time.Duration) *Service {
	return &Service{
		users:      users,
		tokens:     tokens,
		jwtMaker:   jwtMaker,
		refreshTTL: refreshTTL,
	}
}

// Register создает нового активного пользователя с хэшированием пароля.
// Новые пользователи в группу модераторов не входят.
func (s *Service) Register(ctx context.Context, req models.DummyUser) (string, error) {
	const op = "auth.Register"
	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	user := models.User{
		Email:        req.Email,
		PasswordHash: hashed,
		Name:         req.Name,
		Phone:        req.Phone,
		City:         req.City,
		IsActive:     true,
	}
	return s.users.RegisterUser(ctx, user)
}

// Login проверяет пароль пользователя, обновляет дату последнего входа
// и выдаёт пару токенов: access JWT и refresh-токен в Redis.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (token, refresh string, err error) {
	const op = "auth.Login"
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", "", ErrInvalidCredentials
		}
		return "", "", fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", "", ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", "", ErrInactiveUser
	}

	if err := s.users.UpdateLastLogin(ctx, user.UID, time.Now().UTC()); err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}

	token, err = s.jwtMaker.GenerateToken(user.UID, user.Email, user.Role())
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}
	refresh = uuid.NewString()
	if err := s.tokens.SaveRefreshToken(ctx, refresh, user.UID, s.refreshTTL); err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}
	return token, refresh, nil
}

// Refresh проверяет refresh-токен, ротирует его и выдаёт новый access JWT.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (token, refresh string, err error) {
	const op = "auth.Refresh"
	userUID, found, err := s.tokens.GetRefreshToken(ctx, refreshToken)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return "", "", ErrInvalidRefreshToken
	}

	user, err := s.users.GetUserByUID(ctx, userUID)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}

	// Старый токен гасится до выдачи нового: повторное использование невозможно.
	if err := s.tokens.DeleteRefreshToken(ctx, refreshToken); err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}

	token, err = s.jwtMaker.GenerateToken(user.UID, user.Email, user.Role())
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}
	refresh = uuid.NewString()
	if err := s.tokens.SaveRefreshToken(ctx, refresh, user.UID, s.refreshTTL); err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}
	return token, refresh, nil
}

// ValidateToken проверяет JWT и возвращает данные пользователя для контекста запроса.
func (s *Service) ValidateToken(_ context.Context, token string) (*models.Actor, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, err
	}
	return &models.Actor{
		UID:   claims.UserUID,
		Email: claims.Email,
		Role:  claims.Role,
	}, nil
}

// GetProfile возвращает публичный профиль пользователя.
func (s *Service) GetProfile(ctx context.Context, uid string) (*models.UserInfo, error) {
	user, err := s.users.GetUserByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	return &models.UserInfo{
		UID:       user.UID,
		Email:     user.Email,
		Name:      user.Name,
		Phone:     user.Phone,
		City:      user.City,
		Avatar:    user.Avatar,
		IsActive:  user.IsActive,
		LastLogin: user.LastLogin,
	}, nil
}

// UpdateProfile применяет частичное обновление профиля пользователя.
// Пароль при смене хэшируется заново.
func (s *Service) UpdateProfile(ctx context.Context, uid string, req models.DummyUserUpdate) (*models.UserInfo, error) {
	const op = "auth.UpdateProfile"
	user, err := s.users.GetUserByUID(ctx, uid)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.City != nil {
		user.City = *req.City
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}
	if req.Password != nil {
		hashed, err := password.GetHash(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		user.PasswordHash = hashed
	}

	if _, err := s.users.UpdateUserProfile(ctx, *user); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s.GetProfile(ctx, uid)
}
