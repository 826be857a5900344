package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Loader - то, что умеет перечитать себя из хранилища (service.ReminderStore)
type Loader interface {
	Load(ctx context.Context) error
}

// Refresher периодически перечитывает список из удаленной БД,
// чтобы увидеть изменения других клиентов.
type Refresher struct {
	loader   Loader
	logger   *zap.Logger
	interval time.Duration
	wg       sync.WaitGroup
	stop     chan struct{}
	once     sync.Once
}

func NewRefresher(loader Loader, logger *zap.Logger, interval time.Duration) *Refresher {
	return &Refresher{
		loader:   loader,
		logger:   logger,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (r *Refresher) Start(ctx context.Context) {
	r.logger.Info("Starting refresher", zap.Duration("interval", r.interval))

	r.wg.Add(1)
	go r.run(ctx)
}

func (r *Refresher) Stop() {
	r.once.Do(func() {
		r.logger.Info("Stopping refresher...")
		close(r.stop)
	})
	r.wg.Wait()
}

func (r *Refresher) run(ctx context.Context) {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Ошибку уже залогировал store, список остается прежним
			if err := r.loader.Load(ctx); err != nil {
				r.logger.Warn("refresh failed", zap.Error(err))
			}
		}
	}
}
