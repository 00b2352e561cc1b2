package activities

import (
	"fmt"
	"strings"
	"time"
)

// MinutesBetween returns the minutes from start to end (HH:MM).
// An end before the start is taken to be on the following day.
func MinutesBetween(start, end string) (int, error) {
	s, err := time.Parse(clockLayout, strings.TrimSpace(start))
	if err != nil {
		return 0, fmt.Errorf("%w: startTime must be HH:MM", ErrInvalidInput)
	}
	e, err := time.Parse(clockLayout, strings.TrimSpace(end))
	if err != nil {
		return 0, fmt.Errorf("%w: endTime must be HH:MM", ErrInvalidInput)
	}
	d := e.Sub(s)
	if d < 0 {
		d += 24 * time.Hour
	}
	return int(d / time.Minute), nil
}

// FormatMinutes renders minutes as "1h 5m", or "45m" under an hour.
func FormatMinutes(minutes int) string {
	hours := minutes / 60
	mins := minutes % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	return fmt.Sprintf("%dm", mins)
}

// Summarize totals the activities that fall on date.
func Summarize(date string, list []Activity) Summary {
	out := Summary{
		Date:   date,
		ByType: map[string]int{TypeJobSearch: 0, TypeUpskilling: 0},
	}
	for _, a := range list {
		if a.Date != date {
			continue
		}
		out.Count++
		out.TotalMinutes += a.TimeSpent
		out.ByType[a.Type] += a.TimeSpent
	}
	out.TotalFormatted = FormatMinutes(out.TotalMinutes)
	return out
}
