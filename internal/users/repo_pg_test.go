package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoUpsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec("INSERT INTO users").
		WithArgs("google:1", "a@example.com", "A", nil).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := &PGRepo{DB: db}
	if err := repo.Upsert(context.Background(), User{ID: "google:1", Email: "a@example.com", FullName: "A"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPGRepoGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Now().UTC()
	mock.ExpectQuery("FROM users").
		WithArgs("google:1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "full_name", "picture_url", "created_at", "updated_at", "last_login_at"}).
			AddRow("google:1", "a@example.com", nil, "https://img", now, now, nil))

	user, err := (&PGRepo{DB: db}).GetByID(context.Background(), "google:1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if user.FullName != "" || user.PictureURL != "https://img" || user.LastLoginAt != nil {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("FROM users").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "full_name", "picture_url", "created_at", "updated_at", "last_login_at"}))

	if _, err := (&PGRepo{DB: db}).GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryRepoKeepsProfileFieldsOnSparseLogin(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	if err := repo.Upsert(ctx, User{ID: "google:1", Email: "a@example.com", FullName: "Ada", PictureURL: "https://img"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	first, _ := repo.GetByID(ctx, "google:1")

	if err := repo.Upsert(ctx, User{ID: "google:1", Email: "ada@example.com"}); err != nil {
		t.Fatalf("Upsert again: %v", err)
	}
	got, err := repo.GetByID(ctx, "google:1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.FullName != "Ada" || got.PictureURL != "https://img" || got.Email != "ada@example.com" {
		t.Fatalf("unexpected user: %+v", got)
	}
	if !got.CreatedAt.Equal(first.CreatedAt) || got.LastLoginAt == nil {
		t.Fatalf("expected created_at kept and login stamped: %+v", got)
	}
}
