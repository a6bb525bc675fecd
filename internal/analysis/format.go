package analysis

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"timetrack/backend/internal/model"
)

// DateString renders a day as ISO-8601 (YYYY-MM-DD), or "" for the
// zero value.
func DateString(day time.Time) string {
	if day.IsZero() {
		return ""
	}
	return model.FormatDay(day)
}

// ClockString renders a clock time as 24-hour HH:mm, or "" for nil.
func ClockString(clock *time.Duration) string {
	if clock == nil {
		return ""
	}
	return model.FormatClock(*clock)
}

// DurationString renders a duration as "[sign]HH:MM" using the
// magnitude for the digits: '-' prefix for negative values, a single
// space otherwise. Nil renders as "".
func DurationString(d *time.Duration) string {
	if d == nil {
		return ""
	}
	minutes := int(*d / time.Minute)
	sign := ' '
	if minutes < 0 {
		sign = '-'
		minutes = -minutes
	}
	return fmt.Sprintf("%c%02d:%02d", sign, minutes/60, minutes%60)
}

// PercentString renders a percentage in its shortest decimal form with
// at least one fractional digit, e.g. "100.0%".
func PercentString(p float64) string {
	s := strconv.FormatFloat(p, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s + "%"
}
