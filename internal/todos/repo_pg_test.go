package todos

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoToggleReturnsRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Now().UTC()
	mock.ExpectQuery("UPDATE todos SET completed = NOT completed").
		WithArgs("t1", "u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "text", "completed", "created_at"}).
			AddRow("t1", "u1", "apply", true, now))

	got, err := (&PGRepo{DB: db}).Toggle(context.Background(), "u1", "t1")
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !got.Completed || got.Text != "apply" {
		t.Fatalf("unexpected todo: %+v", got)
	}
}

func TestPGRepoToggleNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("UPDATE todos").
		WithArgs("t1", "u2").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "text", "completed", "created_at"}))

	_, err = (&PGRepo{DB: db}).Toggle(context.Background(), "u2", "t1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoDeleteNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec("DELETE FROM todos").WithArgs("t1", "u1").WillReturnResult(sqlmock.NewResult(0, 0))
	if err := (&PGRepo{DB: db}).Delete(context.Background(), "u1", "t1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
