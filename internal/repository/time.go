package repository

import (
	"database/sql"
	"time"

	"timetrack/backend/internal/model"
)

// Timestamps are stored as RFC3339 text, booking days as YYYY-MM-DD
// and clock times as HH:MM, so lexicographic ordering in SQL matches
// chronological ordering.

func parseTime(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err == nil {
		return t.UTC(), nil
	}
	t, err = time.Parse(time.RFC3339, raw)
	if err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, err
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseClockColumn(raw sql.NullString) (*time.Duration, error) {
	if !raw.Valid {
		return nil, nil
	}
	clock, err := model.ParseClock(raw.String)
	if err != nil {
		return nil, err
	}
	return &clock, nil
}

func clockColumn(clock *time.Duration) any {
	if clock == nil {
		return nil
	}
	return model.FormatClock(*clock)
}
