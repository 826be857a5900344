package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/reminders-api/internal/app"
	"github.com/BuzzLyutic/reminders-api/internal/config"
	"github.com/BuzzLyutic/reminders-api/internal/handler"
	"github.com/BuzzLyutic/reminders-api/internal/worker"
)

func main() {
	// Подключаем логгер
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	// Хранилище (Postgres или локальный слот) и клиент ИИ
	a, err := app.Open(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open storage", zap.Error(err)) // дальше работать смысла нет
	}
	defer a.Close()

	// Другие клиенты тоже пишут в удаленную БД - периодически перечитываем список
	if every, _ := cfg.RefreshEvery(); every > 0 && cfg.Backend == config.BackendRemote {
		refresher := worker.NewRefresher(a.Store, logger, every)
		refresher.Start(context.Background())
		defer refresher.Stop()
	}

	h := handler.NewReminderHandler(a.Store, a.Enhancer, cfg.Backend, logger)

	srv := http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.NewRouter(h),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second, // запрос к ИИ бывает долгим
	}

	go func() {
		logger.Info("Server started", zap.String("addr", srv.Addr), zap.String("backend", cfg.Backend))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Shutdown error", zap.Error(err))
	}
	logger.Info("Server stopped successfully!")
}
