package repo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/reminders-api/internal/model"
)

var (
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("conflict")
)

const reminderColumns = `id::text AS id, title, description, priority, is_completed, created_at`

type PostgresRepo struct { // Удаленный вариант хранилища
	pool *pgxpool.Pool
}

func NewPostgresRepo(pool *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{
		pool: pool,
	}
}

func (r *PostgresRepo) List(ctx context.Context) ([]model.Reminder, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+reminderColumns+`
		FROM reminders
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}

	dbRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Row])
	if err != nil {
		return nil, err
	}

	reminders := make([]model.Reminder, 0, len(dbRows))
	for _, row := range dbRows {
		reminders = append(reminders, row.Reminder())
	}
	return reminders, nil
}

func (r *PostgresRepo) Add(ctx context.Context, d model.Draft, createdAt time.Time) (model.Reminder, error) {
	rows, err := r.pool.Query(ctx, `
		INSERT INTO reminders (title, description, priority, is_completed, created_at)
		VALUES ($1, $2, $3, false, $4)
		RETURNING `+reminderColumns,
		d.Title, d.Description, string(d.Priority), createdAt.UTC(),
	)
	if err != nil {
		return model.Reminder{}, r.mapError(err)
	}

	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Row])
	if err != nil {
		return model.Reminder{}, r.mapError(err)
	}
	return row.Reminder(), nil
}

func (r *PostgresRepo) Update(ctx context.Context, id string, d model.Draft) error {
	return r.exec(ctx, `
		UPDATE reminders
		SET title = $2, description = $3, priority = $4
		WHERE id = $1::uuid
	`, id, d.Title, d.Description, string(d.Priority))
}

func (r *PostgresRepo) SetCompleted(ctx context.Context, id string, completed bool) error {
	return r.exec(ctx, `UPDATE reminders SET is_completed = $2 WHERE id = $1::uuid`, id, completed)
}

func (r *PostgresRepo) Delete(ctx context.Context, id string) error {
	return r.exec(ctx, `DELETE FROM reminders WHERE id = $1::uuid`, id)
}

func (r *PostgresRepo) exec(ctx context.Context, sql string, args ...any) error {
	cmd, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return r.mapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrorNotFound
	}
	return nil
}

// mapError переводит коды Postgres в ошибки репозитория
func (r *PostgresRepo) mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrorNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return ErrorConflict
		case "22P02": // id не похож на uuid - такой строки быть не может
			return ErrorNotFound
		}
	}
	return err
}
