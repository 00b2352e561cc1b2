package todos

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, t Todo) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO todos (id, user_id, text, completed, created_at) VALUES ($1, $2, $3, $4, $5)`,
		t.ID, t.UserID, t.Text, t.Completed, t.CreatedAt,
	)
	return err
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Todo, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, user_id, text, completed, created_at FROM todos WHERE user_id = $1 ORDER BY created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Todo, 0)
	for rows.Next() {
		var t Todo
		if err := rows.Scan(&t.ID, &t.UserID, &t.Text, &t.Completed, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *PGRepo) Toggle(ctx context.Context, userID, id string) (Todo, error) {
	const query = `
UPDATE todos SET completed = NOT completed
WHERE id = $1 AND user_id = $2
RETURNING id, user_id, text, completed, created_at`
	var t Todo
	err := r.DB.QueryRowContext(ctx, query, id, userID).Scan(&t.ID, &t.UserID, &t.Text, &t.Completed, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Todo{}, ErrNotFound
		}
		return Todo{}, err
	}
	return t, nil
}

func (r *PGRepo) Delete(ctx context.Context, userID, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM todos WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)
