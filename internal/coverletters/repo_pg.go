package coverletters

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres. Story ids are kept as a JSONB array.
type PGRepo struct {
	DB *sql.DB
}

const letterColumns = `id, user_id, user_email, job_description, story_ids, cover_letter, created_at`

func (r *PGRepo) Create(ctx context.Context, l CoverLetter) error {
	ids := l.StoryIDs
	if ids == nil {
		ids = []string{}
	}
	storyIDs, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	var email any
	if l.UserEmail != "" {
		email = l.UserEmail
	}
	_, err = r.DB.ExecContext(ctx,
		`INSERT INTO cover_letters (`+letterColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		l.ID, l.UserID, email, l.JobDescription, storyIDs, l.CoverLetter, l.CreatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID, id string) (CoverLetter, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+letterColumns+` FROM cover_letters WHERE id = $1 AND user_id = $2 LIMIT 1`, id, userID)
	l, err := scanLetter(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CoverLetter{}, ErrNotFound
		}
		return CoverLetter{}, err
	}
	return l, nil
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]CoverLetter, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+letterColumns+` FROM cover_letters WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]CoverLetter, 0)
	for rows.Next() {
		l, err := scanLetter(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *PGRepo) Delete(ctx context.Context, userID, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM cover_letters WHERE id = $1 AND user_id = $2`, id, userID)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLetter(row rowScanner) (CoverLetter, error) {
	var l CoverLetter
	var email sql.NullString
	var storyIDs []byte
	if err := row.Scan(&l.ID, &l.UserID, &email, &l.JobDescription, &storyIDs, &l.CoverLetter, &l.CreatedAt); err != nil {
		return CoverLetter{}, err
	}
	l.UserEmail = email.String
	l.StoryIDs = []string{}
	if len(storyIDs) > 0 {
		if err := json.Unmarshal(storyIDs, &l.StoryIDs); err != nil {
			return CoverLetter{}, fmt.Errorf("decode story ids: %w", err)
		}
	}
	return l, nil
}

var _ Repo = (*PGRepo)(nil)
