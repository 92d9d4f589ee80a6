// Package sweeper реализует фоновую блокировку неактивных пользователей:
// раз в сутки деактивирует всех, кто не входил дольше порога неактивности.
package sweeper

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/daniilsolovey/course-platform/internal/lib/sl"
)

var usersBlocked = promauto.NewCounter(prometheus.CounterOpts{
	Name: "course_platform_sweeper_users_blocked_total",
	Help: "Количество пользователей, заблокированных за неактивность.",
})

// Repository описывает контракт для массовой деактивации пользователей.
type Repository interface {
	// DeactivateInactiveUsers деактивирует активных пользователей,
	// не входивших после cutoff, и возвращает их количество.
	DeactivateInactiveUsers(ctx context.Context, cutoff time.Time) (int, error)
}

// Result — итог одного прохода блокировки.
type Result struct {
	Status       string    `json:"status"`
	UsersBlocked int       `json:"users_blocked"`
	Timestamp    time.Time `json:"timestamp"`
}

// Sweeper периодически блокирует неактивных пользователей.
type Sweeper struct {
	repo          Repository
	interval      time.Duration
	inactiveAfter time.Duration
	log           *slog.Logger
}

// New создает новый экземпляр Sweeper.
func New(repo Repository, interval, inactiveAfter time.Duration, log *slog.Logger) *Sweeper {
	return &Sweeper{
		repo:          repo,
		interval:      interval,
		inactiveAfter: inactiveAfter,
		log:           log,
	}
}

// Run запускает цикл блокировки: один проход сразу, затем по тикеру.
// Ошибки проходов логируются и не останавливают цикл; выход только по
// отмене контекста.
func (s *Sweeper) Run(ctx context.Context) {
	s.log.Info("sweeper started",
		slog.Duration("interval", s.interval),
		slog.Duration("inactive_after", s.inactiveAfter))

	if _, err := s.Sweep(ctx); err != nil {
		s.log.Error("sweep failed", sl.Err(err))
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("sweeper stopped")
			return
		case <-ticker.C:
			if _, err := s.Sweep(ctx); err != nil {
				s.log.Error("sweep failed", sl.Err(err))
			}
		}
	}
}

// Sweep выполняет один проход: деактивирует пользователей, не входивших
// дольше порога неактивности, и возвращает структурированный итог.
func (s *Sweeper) Sweep(ctx context.Context) (*Result, error) {
	now := time.Now().UTC()
	cutoff := now.Add(-s.inactiveAfter)

	blocked, err := s.repo.DeactivateInactiveUsers(ctx, cutoff)
	if err != nil {
		return nil, err
	}
	usersBlocked.Add(float64(blocked))

	s.log.Info("sweep finished",
		slog.Time("cutoff", cutoff),
		slog.Int("users_blocked", blocked))
	return &Result{
		Status:       "completed",
		UsersBlocked: blocked,
		Timestamp:    now,
	}, nil
}
