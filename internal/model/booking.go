package model

import (
	"fmt"
	"time"
)

const (
	DayLayout   = "2006-01-02"
	ClockLayout = "15:04"
)

// Booking is a recorded time interval attributed to one activity.
// Day is the calendar date at UTC midnight; Start and End are clock
// times expressed as offsets from midnight. A nil End marks an open
// booking, i.e. work still in progress.
type Booking struct {
	ID       int64
	UserID   string
	Day      time.Time
	Start    time.Duration
	End      *time.Duration
	Activity int64
	Comment  string
}

// Open reports whether the booking has not been finished yet.
func (b Booking) Open() bool {
	return b.End == nil
}

func ParseDay(value string) (time.Time, error) {
	return time.Parse(DayLayout, value)
}

func FormatDay(day time.Time) string {
	return day.Format(DayLayout)
}

func ParseClock(value string) (time.Duration, error) {
	t, err := time.Parse(ClockLayout, value)
	if err != nil {
		return 0, err
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

func FormatClock(clock time.Duration) string {
	minutes := int(clock / time.Minute)
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
