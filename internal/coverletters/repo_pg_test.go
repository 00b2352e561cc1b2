package coverletters

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateEncodesStoryIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Now().UTC()
	mock.ExpectExec("INSERT INTO cover_letters").
		WithArgs("cl-1", "u1", nil, "jd", []byte(`["s1","s2"]`), "Dear team", now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = (&PGRepo{DB: db}).Create(context.Background(), CoverLetter{
		ID:             "cl-1",
		UserID:         "u1",
		JobDescription: "jd",
		StoryIDs:       []string{"s1", "s2"},
		CoverLetter:    "Dear team",
		CreatedAt:      now,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListDecodesStoryIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Now().UTC()
	mock.ExpectQuery("FROM cover_letters WHERE user_id = \\$1").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "user_email", "job_description", "story_ids", "cover_letter", "created_at"}).
			AddRow("cl-1", "u1", "u1@example.com", "jd", []byte(`["s1"]`), "Dear team", now))

	got, err := (&PGRepo{DB: db}).ListByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(got) != 1 || len(got[0].StoryIDs) != 1 || got[0].StoryIDs[0] != "s1" {
		t.Fatalf("unexpected letters: %+v", got)
	}
}
