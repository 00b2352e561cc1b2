package users

import (
	"context"
	"database/sql"
	"errors"
)

type PGRepo struct {
	DB *sql.DB
}

// Upsert keeps the stored name and picture when the login omits them.
func (r *PGRepo) Upsert(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, email, full_name, picture_url, created_at, updated_at, last_login_at)
VALUES ($1, $2, $3, $4, now(), now(), now())
ON CONFLICT (id) DO UPDATE SET
  email = EXCLUDED.email,
  full_name = COALESCE(EXCLUDED.full_name, users.full_name),
  picture_url = COALESCE(EXCLUDED.picture_url, users.picture_url),
  updated_at = now(),
  last_login_at = now()`
	_, err := r.DB.ExecContext(ctx, query, user.ID, user.Email, optional(user.FullName), optional(user.PictureURL))
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	const query = `
SELECT id, email, full_name, picture_url, created_at, updated_at, last_login_at
FROM users
WHERE id = $1`
	user, err := scanUser(r.DB.QueryRowContext(ctx, query, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return user, err
}

func scanUser(row interface{ Scan(dest ...any) error }) (User, error) {
	var (
		u          User
		fullName   sql.NullString
		pictureURL sql.NullString
		lastLogin  sql.NullTime
	)
	if err := row.Scan(&u.ID, &u.Email, &fullName, &pictureURL, &u.CreatedAt, &u.UpdatedAt, &lastLogin); err != nil {
		return User{}, err
	}
	u.FullName, u.PictureURL = fullName.String, pictureURL.String
	if lastLogin.Valid {
		u.LastLoginAt = &lastLogin.Time
	}
	return u, nil
}

// optional maps "" to SQL NULL so COALESCE can keep the stored value.
func optional(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

var _ Repo = (*PGRepo)(nil)
