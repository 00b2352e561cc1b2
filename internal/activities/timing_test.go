package activities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinutesBetween(t *testing.T) {
	tests := []struct {
		start, end string
		want       int
	}{
		{"09:00", "10:30", 90},
		{"23:30", "00:15", 45},
		{"08:00", "08:00", 0},
	}
	for _, tt := range tests {
		got, err := MinutesBetween(tt.start, tt.end)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s-%s", tt.start, tt.end)
	}

	_, err := MinutesBetween("9am", "10:00")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "45m", FormatMinutes(45))
	assert.Equal(t, "1h 5m", FormatMinutes(65))
	assert.Equal(t, "2h 0m", FormatMinutes(120))
	assert.Equal(t, "0m", FormatMinutes(0))
}

func TestSummarize(t *testing.T) {
	list := []Activity{
		{Date: "2026-02-01", Type: TypeJobSearch, TimeSpent: 30},
		{Date: "2026-02-01", Type: TypeUpskilling, TimeSpent: 45},
		{Date: "2026-01-31", Type: TypeJobSearch, TimeSpent: 600},
	}
	got := Summarize("2026-02-01", list)
	assert.Equal(t, 2, got.Count)
	assert.Equal(t, 75, got.TotalMinutes)
	assert.Equal(t, "1h 15m", got.TotalFormatted)
	assert.Equal(t, 30, got.ByType[TypeJobSearch])
	assert.Equal(t, 45, got.ByType[TypeUpskilling])
}
