package activities

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const activityColumns = `id, user_id, user_email, type, title, description, time_spent, status, activity_date, start_time, end_time, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, a Activity) error {
	const query = `
INSERT INTO activities (` + activityColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.DB.ExecContext(ctx, query,
		a.ID,
		a.UserID,
		nullableString(a.UserEmail),
		a.Type,
		a.Title,
		a.Description,
		a.TimeSpent,
		a.Status,
		a.Date,
		nullableString(a.StartTime),
		nullableString(a.EndTime),
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

func (r *PGRepo) Update(ctx context.Context, a Activity) error {
	const query = `
UPDATE activities
SET type = $3, title = $4, description = $5, time_spent = $6, status = $7, activity_date = $8,
    start_time = $9, end_time = $10, updated_at = $11
WHERE id = $1 AND user_id = $2`
	res, err := r.DB.ExecContext(ctx, query,
		a.ID,
		a.UserID,
		a.Type,
		a.Title,
		a.Description,
		a.TimeSpent,
		a.Status,
		a.Date,
		nullableString(a.StartTime),
		nullableString(a.EndTime),
		a.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func (r *PGRepo) GetByID(ctx context.Context, userID, id string) (Activity, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+activityColumns+` FROM activities WHERE id = $1 AND user_id = $2 LIMIT 1`, id, userID)
	a, err := scanActivity(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Activity{}, ErrNotFound
		}
		return Activity{}, err
	}
	return a, nil
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Activity, error) {
	return r.query(ctx, `SELECT `+activityColumns+` FROM activities WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *PGRepo) ListByDate(ctx context.Context, userID, date string) ([]Activity, error) {
	return r.query(ctx, `SELECT `+activityColumns+` FROM activities WHERE user_id = $1 AND activity_date = $2 ORDER BY created_at DESC`, userID, date)
}

func (r *PGRepo) query(ctx context.Context, query string, args ...any) ([]Activity, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]Activity, 0)
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PGRepo) Delete(ctx context.Context, userID, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM activities WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanActivity(row rowScanner) (Activity, error) {
	var a Activity
	var email, start, end sql.NullString
	err := row.Scan(
		&a.ID,
		&a.UserID,
		&email,
		&a.Type,
		&a.Title,
		&a.Description,
		&a.TimeSpent,
		&a.Status,
		&a.Date,
		&start,
		&end,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return Activity{}, err
	}
	a.UserEmail = email.String
	a.StartTime = start.String
	a.EndTime = end.String
	return a, nil
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

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

var _ Repo = (*PGRepo)(nil)
