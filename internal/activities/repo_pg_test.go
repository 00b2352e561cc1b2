package activities

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoListByDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "user_id", "user_email", "type", "title", "description", "time_spent", "status", "activity_date", "start_time", "end_time", "created_at", "updated_at"}).
		AddRow("a1", "u1", nil, TypeJobSearch, "Applied", "", 30, StatusCompleted, "2026-04-10", "09:00", "09:30", now, now)
	mock.ExpectQuery("FROM activities WHERE user_id = \\$1 AND activity_date = \\$2").
		WithArgs("u1", "2026-04-10").
		WillReturnRows(rows)

	got, err := (&PGRepo{DB: db}).ListByDate(context.Background(), "u1", "2026-04-10")
	if err != nil {
		t.Fatalf("ListByDate: %v", err)
	}
	if len(got) != 1 || got[0].StartTime != "09:00" || got[0].UserEmail != "" {
		t.Fatalf("unexpected rows: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
