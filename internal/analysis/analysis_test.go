package analysis_test

import (
	"context"
	"sort"
	"time"

	"timetrack/backend/internal/model"
	"timetrack/backend/internal/repository"
	"timetrack/backend/internal/service"
)

// fakeStore is an in-memory booking and activity source with the same
// contract as the real services: half-open day ranges sorted by
// (day, starttime), owner-scoped activity lookups.
type fakeStore struct {
	bookings   []model.Booking
	activities map[int64]model.Activity
}

func (f *fakeStore) BookingsInRange(_ context.Context, userID string, firstDay, firstDayAfter time.Time) ([]model.Booking, error) {
	if !firstDay.Before(firstDayAfter) {
		return nil, service.ErrInvalidRange
	}
	selected := make([]model.Booking, 0)
	for _, b := range f.bookings {
		if b.UserID != userID || b.Day.Before(firstDay) || !b.Day.Before(firstDayAfter) {
			continue
		}
		selected = append(selected, b)
	}
	sort.SliceStable(selected, func(i, j int) bool {
		if !selected[i].Day.Equal(selected[j].Day) {
			return selected[i].Day.Before(selected[j].Day)
		}
		return selected[i].Start < selected[j].Start
	})
	return selected, nil
}

func (f *fakeStore) ActivityByID(_ context.Context, userID string, id int64) (*model.Activity, error) {
	activity, ok := f.activities[id]
	if !ok || activity.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return &activity, nil
}

const testUser = "user-1"

func day(d int) time.Time {
	return time.Date(2017, time.March, d, 0, 0, 0, 0, time.UTC)
}

func clock(h, m int) time.Duration {
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute
}

func closed(d int, start, end time.Duration, activity int64, comment string) model.Booking {
	return model.Booking{
		UserID:   testUser,
		Day:      day(d),
		Start:    start,
		End:      &end,
		Activity: activity,
		Comment:  comment,
	}
}

func open(d int, start time.Duration, activity int64) model.Booking {
	return model.Booking{
		UserID:   testUser,
		Day:      day(d),
		Start:    start,
		Activity: activity,
	}
}

// marchStore is one month of bookings across three activities in two
// projects, including an unfinished day. All expectations in the
// computer tests are derived from it.
func marchStore() *fakeStore {
	return &fakeStore{
		activities: map[int64]model.Activity{
			1: {ID: 1, UserID: testUser, ProjectName: "a", ProjectID: "f", ActivityName: "c", ActivityID: "h"},
			2: {ID: 2, UserID: testUser, ProjectName: "b", ProjectID: "g", ActivityName: "d", ActivityID: "i"},
			3: {ID: 3, UserID: testUser, ProjectName: "a", ProjectID: "f", ActivityName: "e", ActivityID: "j"},
		},
		bookings: []model.Booking{
			closed(1, clock(12, 34), clock(13, 57), 1, "Comment 1"),
			closed(1, clock(13, 57), clock(14, 35), 2, ""),
			closed(6, clock(8, 15), clock(9, 42), 3, "Comment 2"),
			closed(6, clock(15, 39), clock(18, 45), 1, "Comment 3"),
			closed(9, clock(9, 42), clock(14, 35), 2, ""),
			closed(9, clock(14, 35), clock(17, 25), 3, ""),
			closed(15, clock(8, 15), clock(15, 39), 1, "Comment 2"),
			closed(15, clock(15, 39), clock(18, 45), 2, "Comment 3"),
			open(24, clock(8, 15), 3),
			closed(28, clock(9, 42), clock(18, 45), 1, ""),
		},
	}
}
