package repo

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BuzzLyutic/reminders-api/internal/model"
	"github.com/BuzzLyutic/reminders-api/internal/testutil"
)

func setupPostgres(t *testing.T) (*PostgresRepo, *pgxpool.Pool) {
	pool, cleanup := testutil.SetupTestDB(t)
	t.Cleanup(cleanup)

	require.NoError(t, Migrate(context.Background(), pool))
	return NewPostgresRepo(pool), pool
}

func TestPostgresRepo(t *testing.T) {
	r, pool := setupPostgres(t)
	ctx := context.Background()

	t.Run("add returns the stored row", func(t *testing.T) {
		testutil.TruncateReminders(t, pool)
		createdAt := time.Now().Truncate(time.Millisecond)

		got, err := r.Add(ctx, model.Draft{Title: "Buy milk", Description: "2l", Priority: model.PriorityHigh}, createdAt)
		require.NoError(t, err)

		assert.NotEmpty(t, got.ID)
		assert.Equal(t, "Buy milk", got.Title)
		assert.Equal(t, model.PriorityHigh, got.Priority)
		assert.False(t, got.IsCompleted)
		assert.Equal(t, createdAt.UnixMilli(), got.CreatedAt)
	})

	t.Run("list is ordered by created_at desc", func(t *testing.T) {
		testutil.TruncateReminders(t, pool)
		base := time.Now()
		for i, title := range []string{"old", "mid", "new"} {
			_, err := r.Add(ctx, model.Draft{Title: title, Priority: model.PriorityLow}, base.Add(time.Duration(i)*time.Minute))
			require.NoError(t, err)
		}

		list, err := r.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, "new", list[0].Title)
		assert.Equal(t, "old", list[2].Title)
	})

	t.Run("update, toggle and delete", func(t *testing.T) {
		testutil.TruncateReminders(t, pool)
		created, err := r.Add(ctx, model.Draft{Title: "a", Priority: model.PriorityMedium}, time.Now())
		require.NoError(t, err)

		require.NoError(t, r.Update(ctx, created.ID, model.Draft{Title: "b", Description: "d", Priority: model.PriorityLow}))
		require.NoError(t, r.SetCompleted(ctx, created.ID, true))

		list, err := r.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "b", list[0].Title)
		assert.Equal(t, model.PriorityLow, list[0].Priority)
		assert.True(t, list[0].IsCompleted)
		assert.Equal(t, created.CreatedAt, list[0].CreatedAt)

		require.NoError(t, r.Delete(ctx, created.ID))
		list, err = r.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("missing ids", func(t *testing.T) {
		missing := "00000000-0000-0000-0000-000000000000"
		assert.ErrorIs(t, r.Update(ctx, missing, model.Draft{Title: "x", Priority: model.PriorityLow}), ErrorNotFound)
		assert.ErrorIs(t, r.SetCompleted(ctx, missing, true), ErrorNotFound)
		assert.ErrorIs(t, r.Delete(ctx, missing), ErrorNotFound)
		assert.ErrorIs(t, r.Delete(ctx, "not-a-uuid"), ErrorNotFound)
	})
}
