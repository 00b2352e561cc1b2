package resumes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// table describes how one record kind maps onto its Postgres table.
// Columns always start with id, user_id; update arguments follow $1 id and $2 user_id.
type table[T any] struct {
	name       string
	columns    []string
	insertArgs func(T) ([]any, error)
	updateSet  string
	updateArgs func(T) ([]any, error)
	scan       func(rowScanner) (T, error)
}

type rowScanner interface {
	Scan(dest ...any) error
}

// PGStore implements Store for one table.
type PGStore[T record[T]] struct {
	DB    *sql.DB
	table table[T]
}

// NewPGRepos returns Postgres-backed stores for every record kind.
func NewPGRepos(db *sql.DB) Repos {
	return Repos{
		Jobs:     &PGStore[Job]{DB: db, table: jobsTable},
		Projects: &PGStore[Project]{DB: db, table: projectsTable},
		Skills:   &PGStore[Skill]{DB: db, table: skillsTable},
		Files:    &PGStore[File]{DB: db, table: filesTable},
	}
}

func (s *PGStore[T]) selectSQL() string {
	return `SELECT ` + strings.Join(s.table.columns, ", ") + ` FROM ` + s.table.name
}

func (s *PGStore[T]) Create(ctx context.Context, v T) error {
	args, err := s.table.insertArgs(v)
	if err != nil {
		return err
	}
	placeholders := make([]string, len(args))
	for i := range args {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := `INSERT INTO ` + s.table.name + ` (` + strings.Join(s.table.columns, ", ") + `) VALUES (` + strings.Join(placeholders, ", ") + `)`
	_, err = s.DB.ExecContext(ctx, query, args...)
	return err
}

func (s *PGStore[T]) Update(ctx context.Context, v T) error {
	rest, err := s.table.updateArgs(v)
	if err != nil {
		return err
	}
	args := append([]any{v.key(), v.owner()}, rest...)
	query := `UPDATE ` + s.table.name + ` SET ` + s.table.updateSet + ` WHERE id = $1 AND user_id = $2`
	res, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func (s *PGStore[T]) Get(ctx context.Context, userID, id string) (T, error) {
	v, err := s.table.scan(s.DB.QueryRowContext(ctx, s.selectSQL()+` WHERE id = $1 AND user_id = $2 LIMIT 1`, id, userID))
	if err != nil {
		var zero T
		if errors.Is(err, sql.ErrNoRows) {
			return zero, ErrNotFound
		}
		return zero, err
	}
	return v, nil
}

func (s *PGStore[T]) List(ctx context.Context, userID string, selectedOnly bool) ([]T, error) {
	query := s.selectSQL() + ` WHERE user_id = $1`
	if selectedOnly {
		query += ` AND selected = true`
	}
	query += ` ORDER BY created_at ASC`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		v, err := s.table.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *PGStore[T]) SetSelected(ctx context.Context, userID, id string, selected bool) (T, error) {
	query := `UPDATE ` + s.table.name + ` SET selected = $3 WHERE id = $1 AND user_id = $2 RETURNING ` + strings.Join(s.table.columns, ", ")
	v, err := s.table.scan(s.DB.QueryRowContext(ctx, query, id, userID, selected))
	if err != nil {
		var zero T
		if errors.Is(err, sql.ErrNoRows) {
			return zero, ErrNotFound
		}
		return zero, err
	}
	return v, nil
}

func (s *PGStore[T]) Delete(ctx context.Context, userID, id string) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM `+s.table.name+` WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	return expectOneRow(res)
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

var (
	_ Store[Job]     = (*PGStore[Job])(nil)
	_ Store[Project] = (*PGStore[Project])(nil)
	_ Store[Skill]   = (*PGStore[Skill])(nil)
	_ Store[File]    = (*PGStore[File])(nil)
)
