package repo

import (
	"context"
	"encoding/json"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/reminders-api/internal/kv"
	"github.com/BuzzLyutic/reminders-api/internal/model"
)

// SlotRepo - локальный вариант: весь список лежит одним JSON-массивом в слоте.
type SlotRepo struct {
	slot   kv.Slot
	logger *zap.Logger

	mu        sync.Mutex
	reminders []model.Reminder
	newID     func() string
}

// NewSlotRepo читает слот один раз. Битое содержимое считается пустым списком.
func NewSlotRepo(ctx context.Context, slot kv.Slot, logger *zap.Logger) (*SlotRepo, error) {
	r := &SlotRepo{
		slot:      slot,
		logger:    logger,
		reminders: []model.Reminder{},
		newID:     uuid.NewString,
	}

	data, err := slot.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return r, nil
	}

	var stored []model.Reminder
	if err := json.Unmarshal(data, &stored); err != nil {
		logger.Warn("stored reminders are unreadable, starting empty", zap.Error(err))
		return r, nil
	}
	if stored != nil {
		r.reminders = stored
	}
	return r, nil
}

func (r *SlotRepo) List(ctx context.Context) ([]model.Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.reminders), nil
}

func (r *SlotRepo) Add(ctx context.Context, d model.Draft, createdAt time.Time) (model.Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rem := model.Reminder{
		ID:          r.newID(),
		Title:       d.Title,
		Description: d.Description,
		Priority:    d.Priority,
		IsCompleted: false,
		CreatedAt:   createdAt.UnixMilli(),
	}

	next := make([]model.Reminder, 0, len(r.reminders)+1)
	next = append(next, rem)
	next = append(next, r.reminders...)
	if err := r.commit(ctx, next); err != nil {
		return model.Reminder{}, err
	}
	return rem, nil
}

func (r *SlotRepo) Update(ctx context.Context, id string, d model.Draft) error {
	return r.mutate(ctx, id, func(rem model.Reminder) model.Reminder {
		return rem.Apply(d)
	})
}

func (r *SlotRepo) SetCompleted(ctx context.Context, id string, completed bool) error {
	return r.mutate(ctx, id, func(rem model.Reminder) model.Reminder {
		rem.IsCompleted = completed
		return rem
	})
}

func (r *SlotRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return ErrorNotFound
	}
	return r.commit(ctx, slices.Delete(slices.Clone(r.reminders), i, i+1))
}

func (r *SlotRepo) mutate(ctx context.Context, id string, fn func(model.Reminder) model.Reminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return ErrorNotFound
	}
	next := slices.Clone(r.reminders)
	next[i] = fn(next[i])
	return r.commit(ctx, next)
}

func (r *SlotRepo) indexOf(id string) int {
	return slices.IndexFunc(r.reminders, func(rem model.Reminder) bool { return rem.ID == id })
}

// commit пишет весь список; память меняется только после успешной записи.
func (r *SlotRepo) commit(ctx context.Context, next []model.Reminder) error {
	data, err := json.Marshal(next)
	if err != nil {
		return err
	}
	if err := r.slot.Store(ctx, data); err != nil {
		return err
	}
	r.reminders = next
	return nil
}
