// Package scheduler собирает фоновое приложение блокировки неактивных
// пользователей: раз в сутки деактивирует всех, кто не входил дольше порога.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/daniilsolovey/course-platform/internal/config"
	sweeperservice "github.com/daniilsolovey/course-platform/internal/services/sweeper"
	"github.com/daniilsolovey/course-platform/internal/storage/repository"
)

// App — приложение планировщика блокировки.
type App struct {
	sweeper *sweeperservice.Sweeper
	db      *repository.Storage
	logger  *slog.Logger
}

func waitForDB(db *repository.Storage) error {
	for range 10 {
		err := repository.CheckDatabaseReady(db)
		if err == nil {
			return nil
		}
		time.Sleep(3 * time.Second)
	}
	return fmt.Errorf("database not ready after retries")
}

// New создает новый экземпляр приложения планировщика.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect storage: %w", err)
	}

	if err := waitForDB(db); err != nil {
		return nil, err
	}

	sweeper := sweeperservice.New(db, cfg.SweepInterval, cfg.InactiveAfter, logger)

	return &App{
		sweeper: sweeper,
		db:      db,
		logger:  logger,
	}, nil
}

// Run запускает цикл блокировки и отдаёт метрики до отмены контекста.
func (a *App) Run(ctx context.Context) error {
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(":9091", nil); err != nil {
			a.logger.Error("metrics server stopped", slog.Any("err", err))
		}
	}()

	a.sweeper.Run(ctx)

	a.logger.Info("shutting down scheduler service")
	if err := a.db.DB.Close(); err != nil {
		a.logger.Error("failed to close database", slog.Any("err", err))
	}
	return nil
}
