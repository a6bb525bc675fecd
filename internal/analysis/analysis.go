// Package analysis computes per-project, per-activity and per-day
// summaries over a user's bookings. The computers are pure: they read
// from the booking and activity sources and build fresh result sets on
// every call, so concurrent analyses need no coordination.
package analysis

import (
	"context"
	"time"

	"timetrack/backend/internal/model"
)

// BookingSource delivers a user's bookings for the half-open day range
// [firstDay, firstDayAfter), sorted by (day, starttime) ascending.
// Implementations reject ranges where firstDay is not before
// firstDayAfter.
type BookingSource interface {
	BookingsInRange(ctx context.Context, userID string, firstDay, firstDayAfter time.Time) ([]model.Booking, error)
}

// ActivitySource resolves an activity by its database id. Lookups fail
// if the activity does not exist or belongs to another user.
type ActivitySource interface {
	ActivityByID(ctx context.Context, userID string, id int64) (*model.Activity, error)
}
