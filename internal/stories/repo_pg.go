package stories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const storyColumns = `id, author_id, author_email, title, content, excerpt, display_date, image_key, youtube_link, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, s Story) error {
	const query = `
INSERT INTO stories (` + storyColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.DB.ExecContext(ctx, query,
		s.ID,
		s.AuthorID,
		nullableString(s.AuthorEmail),
		s.Title,
		s.Content,
		s.Excerpt,
		s.Date,
		nullableString(s.ImageKey),
		nullableString(s.YouTubeLink),
		s.CreatedAt,
		s.UpdatedAt,
	)
	return err
}

func (r *PGRepo) Update(ctx context.Context, s Story) error {
	const query = `
UPDATE stories
SET title = $3, content = $4, excerpt = $5, image_key = $6, youtube_link = $7, updated_at = $8
WHERE id = $1 AND author_id = $2`
	res, err := r.DB.ExecContext(ctx, query,
		s.ID,
		s.AuthorID,
		s.Title,
		s.Content,
		s.Excerpt,
		nullableString(s.ImageKey),
		nullableString(s.YouTubeLink),
		s.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func (r *PGRepo) GetByID(ctx context.Context, authorID, id string) (Story, error) {
	const query = `SELECT ` + storyColumns + ` FROM stories WHERE id = $1 AND author_id = $2 LIMIT 1`
	s, err := scanStory(r.DB.QueryRowContext(ctx, query, id, authorID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Story{}, ErrNotFound
		}
		return Story{}, err
	}
	return s, nil
}

func (r *PGRepo) ListByAuthor(ctx context.Context, authorID string, limit, offset int) ([]Story, error) {
	query := `SELECT ` + storyColumns + ` FROM stories WHERE author_id = $1 ORDER BY created_at DESC`
	args := []any{authorID}
	if limit > 0 {
		query += ` LIMIT $2 OFFSET $3`
		args = append(args, limit, offset)
	}
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func (r *PGRepo) ListByIDs(ctx context.Context, authorID string, ids []string) ([]Story, error) {
	if len(ids) == 0 {
		return []Story{}, nil
	}
	placeholders := make([]string, len(ids))
	args := make([]any, 0, len(ids)+1)
	args = append(args, authorID)
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+2)
		args = append(args, id)
	}
	query := `SELECT ` + storyColumns + ` FROM stories WHERE author_id = $1 AND id IN (` +
		strings.Join(placeholders, ", ") + `) ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func (r *PGRepo) Delete(ctx context.Context, authorID, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM stories WHERE id = $1 AND author_id = $2`, id, authorID)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStory(row rowScanner) (Story, error) {
	var s Story
	var email, imageKey, youtube sql.NullString
	err := row.Scan(
		&s.ID,
		&s.AuthorID,
		&email,
		&s.Title,
		&s.Content,
		&s.Excerpt,
		&s.Date,
		&imageKey,
		&youtube,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return Story{}, err
	}
	s.AuthorEmail = email.String
	s.ImageKey = imageKey.String
	s.YouTubeLink = youtube.String
	return s, nil
}

func collect(rows *sql.Rows) ([]Story, error) {
	out := make([]Story, 0)
	for rows.Next() {
		s, err := scanStory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
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
