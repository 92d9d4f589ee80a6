// Package cache реализует хранилище refresh-токенов на основе Redis.
// Токен живёт до истечения TTL или до ротации при обновлении пары токенов.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/daniilsolovey/course-platform/internal/config"
)

// TokenStore хранит соответствие refresh-токена пользователю.
type TokenStore struct {
	Db *redis.Client
}

// InitServer подключается к Redis и проверяет доступность сервера.
func InitServer(ctx context.Context, cfg config.RedisConnection) (*TokenStore, error) {
	const op = "cache.InitServer"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &TokenStore{Db: db}, nil
}

func refreshKey(token string) string {
	return "refresh:" + token
}

// SaveRefreshToken сохраняет refresh-токен пользователя с временем жизни ttl.
func (c *TokenStore) SaveRefreshToken(ctx context.Context, token, userUID string, ttl time.Duration) error {
	const op = "cache.SaveRefreshToken"
	if err := c.Db.Set(ctx, refreshKey(token), userUID, ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetRefreshToken возвращает UID владельца токена. Второе значение false,
// если токен неизвестен или истёк.
func (c *TokenStore) GetRefreshToken(ctx context.Context, token string) (string, bool, error) {
	const op = "cache.GetRefreshToken"
	val, err := c.Db.Get(ctx, refreshKey(token)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", op, err)
	}
	return val, true, nil
}

// DeleteRefreshToken удаляет refresh-токен (ротация или выход из системы).
func (c *TokenStore) DeleteRefreshToken(ctx context.Context, token string) error {
	const op = "cache.DeleteRefreshToken"
	if err := c.Db.Del(ctx, refreshKey(token)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
