package health

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusWithoutDatabase(t *testing.T) {
	st := NewService(nil, false).Status(context.Background())
	assert.Equal(t, Status{OK: true, Database: "memory", LLM: "missing"}, st)
}

func TestStatusPingsDatabase(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectPing()
	st := NewService(db, true).Status(context.Background())
	assert.Equal(t, Status{OK: true, Database: "ok", LLM: "configured"}, st)

	mock.ExpectPing().WillReturnError(errors.New("down"))
	st = NewService(db, true).Status(context.Background())
	assert.False(t, st.OK)
	assert.Equal(t, "unreachable", st.Database)
}
