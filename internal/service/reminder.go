package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/reminders-api/internal/model"
	"github.com/BuzzLyutic/reminders-api/internal/repo"
	"github.com/BuzzLyutic/reminders-api/internal/view"
)

var (
	ErrValidation  = errors.New("validation error")
	ErrPersistence = errors.New("persistence error")
)

// ReminderStore держит актуальный список в памяти и синхронизирует его с репозиторием.
// Память меняется только после успешного ответа хранилища.
type ReminderStore struct {
	repo   repo.ReminderRepository
	logger *zap.Logger
	now    func() time.Time

	mu        sync.RWMutex
	reminders []model.Reminder
}

func NewReminderStore(repo repo.ReminderRepository, logger *zap.Logger) *ReminderStore {
	return &ReminderStore{
		repo:      repo,
		logger:    logger,
		now:       time.Now,
		reminders: []model.Reminder{},
	}
}

// Load перечитывает список из репозитория (при старте и по запросу)
func (s *ReminderStore) Load(ctx context.Context) error {
	list, err := s.repo.List(ctx)
	if err != nil {
		return s.persistenceError("failed to fetch reminders", err)
	}

	s.mu.Lock()
	s.reminders = list
	s.mu.Unlock()

	s.logger.Info("reminders loaded", zap.Int("count", len(list)))
	return nil
}

// List - копия списка в порядке хранения
func (s *ReminderStore) List() []model.Reminder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.reminders)
}

func (s *ReminderStore) Get(id string) (model.Reminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.reminders[i], nil
	}
	return model.Reminder{}, repo.ErrorNotFound
}

func (s *ReminderStore) View(f model.Filter) []model.Reminder {
	return view.Apply(s.List(), f)
}

func (s *ReminderStore) Stats() view.Stats {
	return view.Summarize(s.List())
}

func (s *ReminderStore) Add(ctx context.Context, d model.Draft) (model.Reminder, error) {
	d, err := s.validate(d)
	if err != nil { // Пустой заголовок - в хранилище не идем
		return model.Reminder{}, err
	}

	created, err := s.repo.Add(ctx, d, s.now())
	if err != nil {
		return model.Reminder{}, s.persistenceError("failed to add reminder", err)
	}

	s.mu.Lock()
	s.reminders = append([]model.Reminder{created}, s.reminders...)
	s.mu.Unlock()

	s.logger.Info("reminder added", zap.String("id", created.ID))
	return created, nil
}

func (s *ReminderStore) Update(ctx context.Context, id string, d model.Draft) (model.Reminder, error) {
	d, err := s.validate(d)
	if err != nil {
		return model.Reminder{}, err
	}
	if _, err := s.Get(id); err != nil {
		return model.Reminder{}, s.notFound("update", id)
	}

	if err := s.repo.Update(ctx, id, d); err != nil {
		if errors.Is(err, repo.ErrorNotFound) {
			return model.Reminder{}, s.notFound("update", id)
		}
		return model.Reminder{}, s.persistenceError("failed to update reminder", err)
	}

	return s.replace(id, func(r model.Reminder) model.Reminder { return r.Apply(d) })
}

// ToggleComplete переключает isCompleted. Если хранилище ответило ошибкой, локально ничего не меняется.
func (s *ReminderStore) ToggleComplete(ctx context.Context, id string) (model.Reminder, error) {
	current, err := s.Get(id)
	if err != nil {
		return model.Reminder{}, s.notFound("toggle", id)
	}

	completed := !current.IsCompleted
	if err := s.repo.SetCompleted(ctx, id, completed); err != nil {
		if errors.Is(err, repo.ErrorNotFound) {
			return model.Reminder{}, s.notFound("toggle", id)
		}
		return model.Reminder{}, s.persistenceError("failed to toggle reminder", err)
	}

	return s.replace(id, func(r model.Reminder) model.Reminder {
		r.IsCompleted = completed
		return r
	})
}

// Remove удаляет безвозвратно. Подтверждение спрашивает вызывающий.
func (s *ReminderStore) Remove(ctx context.Context, id string) error {
	if _, err := s.Get(id); err != nil {
		return s.notFound("remove", id)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrorNotFound) {
			return s.notFound("remove", id)
		}
		return s.persistenceError("failed to remove reminder", err)
	}

	s.mu.Lock()
	if i := s.indexOf(id); i >= 0 {
		s.reminders = slices.Delete(slices.Clone(s.reminders), i, i+1)
	}
	s.mu.Unlock()

	s.logger.Info("reminder removed", zap.String("id", id))
	return nil
}

func (s *ReminderStore) replace(id string, fn func(model.Reminder) model.Reminder) (model.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 { // удалили параллельно, пока шел запрос
		return model.Reminder{}, repo.ErrorNotFound
	}
	next := slices.Clone(s.reminders)
	next[i] = fn(next[i])
	s.reminders = next
	return next[i], nil
}

func (s *ReminderStore) indexOf(id string) int {
	return slices.IndexFunc(s.reminders, func(r model.Reminder) bool { return r.ID == id })
}

func (s *ReminderStore) notFound(op, id string) error {
	s.logger.Warn("reminder not found", zap.String("op", op), zap.String("id", id))
	return repo.ErrorNotFound
}

func (s *ReminderStore) persistenceError(msg string, err error) error {
	s.logger.Error(msg, zap.Error(err))
	return fmt.Errorf("%w: %s: %w", ErrPersistence, msg, err)
}

func (s *ReminderStore) validate(d model.Draft) (model.Draft, error) {
	if strings.TrimSpace(d.Title) == "" {
		return d, ErrValidation
	}
	d = d.Normalize()
	if !d.Priority.Valid() {
		return d, fmt.Errorf("%w: %w", ErrValidation, model.ErrInvalidPriority)
	}
	return d, nil
}
