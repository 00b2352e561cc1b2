package goals

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"career-backend/internal/shared/storage/db"
)

// PGRepo implements Repo using Postgres. Tasks and suggestions live in JSONB columns.
type PGRepo struct {
	DB *sql.DB
}

const categoryColumns = `id, user_id, category, tasks, suggestions, sort_order, created_at, updated_at`

func (r *PGRepo) List(ctx context.Context) ([]Category, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+categoryColumns+` FROM goal_categories ORDER BY sort_order ASC, created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PGRepo) Get(ctx context.Context, id string) (Category, error) {
	c, err := scanCategory(r.DB.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM goal_categories WHERE id = $1 LIMIT 1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Category{}, ErrNotFound
		}
		return Category{}, err
	}
	return c, nil
}

func (r *PGRepo) Create(ctx context.Context, c Category) error {
	tasks, suggestions, err := encodeLists(c)
	if err != nil {
		return err
	}
	const query = `
INSERT INTO goal_categories (` + categoryColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = r.DB.ExecContext(ctx, query, c.ID, c.UserID, c.Category, tasks, suggestions, c.Order, c.CreatedAt, c.UpdatedAt)
	return err
}

func (r *PGRepo) Save(ctx context.Context, c Category) error {
	tasks, suggestions, err := encodeLists(c)
	if err != nil {
		return err
	}
	const query = `
UPDATE goal_categories
SET category = $2, tasks = $3, suggestions = $4, updated_at = $5
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, c.ID, c.Category, tasks, suggestions, c.UpdatedAt)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM goal_categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func (r *PGRepo) SetOrder(ctx context.Context, ids []string) error {
	return db.InTx(ctx, r.DB, func(tx *sql.Tx) error {
		for i, id := range ids {
			res, err := tx.ExecContext(ctx, `UPDATE goal_categories SET sort_order = $2 WHERE id = $1`, id, i)
			if err != nil {
				return err
			}
			if err := expectOneRow(res); err != nil {
				return err
			}
		}
		return nil
	})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row rowScanner) (Category, error) {
	var c Category
	var tasks, suggestions []byte
	if err := row.Scan(&c.ID, &c.UserID, &c.Category, &tasks, &suggestions, &c.Order, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return Category{}, err
	}
	c.Tasks = []Task{}
	c.Suggestions = []Suggestion{}
	if len(tasks) > 0 {
		if err := json.Unmarshal(tasks, &c.Tasks); err != nil {
			return Category{}, fmt.Errorf("decode tasks: %w", err)
		}
	}
	if len(suggestions) > 0 {
		if err := json.Unmarshal(suggestions, &c.Suggestions); err != nil {
			return Category{}, fmt.Errorf("decode suggestions: %w", err)
		}
	}
	return c, nil
}

func encodeLists(c Category) ([]byte, []byte, error) {
	if c.Tasks == nil {
		c.Tasks = []Task{}
	}
	if c.Suggestions == nil {
		c.Suggestions = []Suggestion{}
	}
	tasks, err := json.Marshal(c.Tasks)
	if err != nil {
		return nil, nil, err
	}
	suggestions, err := json.Marshal(c.Suggestions)
	if err != nil {
		return nil, nil, err
	}
	return tasks, suggestions, nil
}

func expectOneRow(res sql.Result) error {
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
