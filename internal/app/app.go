// Package app собирает хранилище и клиента ИИ по конфигурации. Используется и сервером, и CLI.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/reminders-api/internal/config"
	"github.com/BuzzLyutic/reminders-api/internal/enhance"
	"github.com/BuzzLyutic/reminders-api/internal/kv"
	"github.com/BuzzLyutic/reminders-api/internal/repo"
	"github.com/BuzzLyutic/reminders-api/internal/service"
)

type App struct {
	Config   config.Config
	Store    *service.ReminderStore
	Enhancer *enhance.Client

	closers []func() error
}

func Open(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	a := &App{Config: cfg}

	r, err := a.openRepo(ctx, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Store = service.NewReminderStore(r, logger)
	if err := a.Store.Load(ctx); err != nil {
		a.Close()
		return nil, err
	}

	a.Enhancer, err = enhance.New(ctx, enhance.Config{
		APIKey:  cfg.AI.APIKey,
		Model:   cfg.AI.Model,
		BaseURL: cfg.AI.BaseURL,
	}, logger)
	if err != nil {
		a.Close()
		return nil, err
	}
	if !a.Enhancer.Configured() {
		logger.Warn("AI is not configured, set API_KEY to enable enhancements")
	}

	return a, nil
}

func (a *App) openRepo(ctx context.Context, logger *zap.Logger) (repo.ReminderRepository, error) {
	switch a.Config.Backend {
	case config.BackendRemote:
		pool, err := pgxpool.New(ctx, a.Config.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.closers = append(a.closers, func() error { pool.Close(); return nil })

		if err := pool.Ping(ctx); err != nil {
			return nil, fmt.Errorf("failed to ping the database: %w", err)
		}
		if err := repo.Migrate(ctx, pool); err != nil {
			return nil, err
		}
		logger.Info("connected to the database")
		return repo.NewPostgresRepo(pool), nil

	case config.BackendLocal:
		slot, err := kv.Open(a.Config.Storage.Kind, a.Config.Storage.Path, a.Config.Storage.Slot)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, slot.Close)

		logger.Info("using local storage",
			zap.String("kind", a.Config.Storage.Kind),
			zap.String("path", a.Config.Storage.Path),
		)
		return repo.NewSlotRepo(ctx, slot, logger)
	}
	return nil, fmt.Errorf("unknown backend %q", a.Config.Backend)
}

func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
