package repo

import (
	"context"
	"time"

	"github.com/BuzzLyutic/reminders-api/internal/model"
)

// ReminderRepository - общий интерфейс для удаленной (Postgres) и локальной (слот) реализаций
type ReminderRepository interface {
	List(ctx context.Context) ([]model.Reminder, error)
	Add(ctx context.Context, d model.Draft, createdAt time.Time) (model.Reminder, error)
	Update(ctx context.Context, id string, d model.Draft) error
	SetCompleted(ctx context.Context, id string, completed bool) error
	Delete(ctx context.Context, id string) error
}
