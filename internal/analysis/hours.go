package analysis

import (
	"context"
	"time"

	"timetrack/backend/internal/model"
)

// Day-level comments attached to hour analysis rows.
const (
	CommentIncomplete = "Day has unfinished bookings!"
	CommentOverlap    = "Day has overlapping bookings!"
	CommentLongDay    = "> 10 hours worktime!"
	CommentShortBreak = "Break too short!"
)

// DayResult is one day of the hour analysis. Valid discriminates the
// two shapes: a day whose bookings could be evaluated carries the full
// set of figures, a day with open or overlapping bookings carries only
// its date and the comment explaining why it was skipped.
type DayResult struct {
	Day       time.Time
	Valid     bool
	Start     time.Duration
	End       time.Duration
	Presence  time.Duration
	Worktime  time.Duration
	Breaktime time.Duration
	Total     time.Duration
	Overtime  time.Duration
	Comment   string
}

// HourComputer derives daily presence, worked and break time from a
// user's bookings and keeps a running overtime ledger across the
// analyzed period.
type HourComputer struct {
	bookings BookingSource
}

func NewHourComputer(bookings BookingSource) *HourComputer {
	return &HourComputer{bookings: bookings}
}

// Analyze walks the days of [firstDay, firstDayAfter) in order,
// producing one result per day that has bookings. The overtime and
// cumulative worktime accumulators are threaded through the walk and
// advance only on valid days; invalid days are reported but leave the
// ledger untouched.
func (c *HourComputer) Analyze(ctx context.Context, userID string, firstDay, firstDayAfter time.Time) ([]DayResult, error) {
	bookings, err := c.bookings.BookingsInRange(ctx, userID, firstDay, firstDayAfter)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string][]model.Booking)
	for _, b := range bookings {
		key := model.FormatDay(b.Day)
		byDay[key] = append(byDay[key], b)
	}

	results := make([]DayResult, 0, len(byDay))
	var overtime, total time.Duration
	for day := firstDay; day.Before(firstDayAfter); day = day.AddDate(0, 0, 1) {
		dayBookings := byDay[model.FormatDay(day)]
		if len(dayBookings) == 0 {
			continue
		}
		result := evaluateDay(day, dayBookings, overtime, total)
		results = append(results, result)
		if result.Valid {
			overtime = result.Overtime
			total = result.Total
		}
	}
	return results, nil
}

func evaluateDay(day time.Time, bookings []model.Booking, overtime, total time.Duration) DayResult {
	for _, b := range bookings {
		if b.Open() {
			return DayResult{Day: day, Comment: CommentIncomplete}
		}
	}
	if hasOverlaps(bookings) {
		return DayResult{Day: day, Comment: CommentOverlap}
	}

	start := bookings[0].Start
	end := *bookings[0].End
	var worktime time.Duration
	for _, b := range bookings {
		worktime += *b.End - b.Start
		if b.Start < start {
			start = b.Start
		}
		if *b.End > end {
			end = *b.End
		}
	}

	presence := end - start
	breaktime := presence - worktime

	// On weekdays overtime is the time worked beyond eight hours; on
	// weekends every worked minute counts.
	contribution := worktime
	if weekday(day) {
		contribution -= 8 * time.Hour
	}

	return DayResult{
		Day:       day,
		Valid:     true,
		Start:     start,
		End:       end,
		Presence:  presence,
		Worktime:  worktime,
		Breaktime: breaktime,
		Total:     total + worktime,
		Overtime:  overtime + contribution,
		Comment:   dayComment(worktime, breaktime),
	}
}

func dayComment(worktime, breaktime time.Duration) string {
	switch {
	case worktime > 10*time.Hour:
		return CommentLongDay
	case worktime > 9*time.Hour && breaktime < 45*time.Minute:
		return CommentShortBreak
	case worktime > 6*time.Hour && breaktime < 30*time.Minute:
		return CommentShortBreak
	}
	return ""
}

func hasOverlaps(bookings []model.Booking) bool {
	for i, a := range bookings {
		for _, b := range bookings[i+1:] {
			if overlaps(a.Start, *a.End, b.Start, *b.End) {
				return true
			}
		}
	}
	return false
}

// overlaps reports whether two closed timeframes share any time.
// Touching endpoints do not count as overlap.
func overlaps(start1, end1, start2, end2 time.Duration) bool {
	return start1 < end2 && start2 < end1
}

func weekday(day time.Time) bool {
	wd := day.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}
