package analysis

import (
	"context"
	"sort"
	"strings"
	"time"

	"timetrack/backend/internal/model"
)

// GroupData is one row of a project or activity analysis. Activity
// fields are empty on project-level rows and on the synthetic Total
// row that closes every result set.
type GroupData struct {
	ProjectName  string
	ProjectID    string
	ActivityName string
	ActivityID   string
	Minutes      time.Duration
	Percentage   float64
	Comment      string
}

// GroupComputer totals booked time per group over a day range. The
// aggregate step decides the grouping target: per-activity rows kept
// as they are, or merged into one row per project.
type GroupComputer struct {
	activities ActivitySource
	bookings   BookingSource
	aggregate  func([]GroupData) []GroupData
}

// NewActivityComputer groups by activity, sorted by (projectId,
// activityId).
func NewActivityComputer(activities ActivitySource, bookings BookingSource) *GroupComputer {
	return &GroupComputer{
		activities: activities,
		bookings:   bookings,
		aggregate:  sortByActivity,
	}
}

// NewProjectComputer merges activity rows into one row per project,
// sorted by projectId.
func NewProjectComputer(activities ActivitySource, bookings BookingSource) *GroupComputer {
	return &GroupComputer{
		activities: activities,
		bookings:   bookings,
		aggregate:  mergeByProject,
	}
}

// Analyze totals the user's booked minutes per group over
// [firstDay, firstDayAfter), computes each group's share of the grand
// total and appends the Total row. Comments are only carried for
// single-day ranges. Open bookings contribute no time; a group holding
// nothing but open bookings produces no row.
func (c *GroupComputer) Analyze(ctx context.Context, userID string, firstDay, firstDayAfter time.Time) ([]GroupData, error) {
	bookings, err := c.bookings.BookingsInRange(ctx, userID, firstDay, firstDayAfter)
	if err != nil {
		return nil, err
	}
	withComments := firstDay.AddDate(0, 0, 1).Equal(firstDayAfter)

	results := make([]GroupData, 0)
	for _, group := range groupByActivity(bookings) {
		data, err := c.groupData(ctx, userID, group, withComments)
		if err != nil {
			return nil, err
		}
		if data == nil {
			continue
		}
		results = append(results, *data)
	}

	results = c.aggregate(results)

	var total time.Duration
	for _, r := range results {
		total += r.Minutes
	}
	totalMinutes := float64(total / time.Minute)
	for i := range results {
		results[i].Percentage = float64(results[i].Minutes/time.Minute) * 100.0 / totalMinutes
	}

	return append(results, GroupData{
		ProjectName: "Total",
		Minutes:     total,
		Percentage:  100.0,
	}), nil
}

// groupByActivity splits the booking list into per-activity groups,
// keeping the groups in order of first appearance.
func groupByActivity(bookings []model.Booking) [][]model.Booking {
	index := make(map[int64]int)
	groups := make([][]model.Booking, 0)
	for _, b := range bookings {
		i, ok := index[b.Activity]
		if !ok {
			i = len(groups)
			index[b.Activity] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], b)
	}
	return groups
}

func (c *GroupComputer) groupData(ctx context.Context, userID string, bookings []model.Booking, withComments bool) (*GroupData, error) {
	activity, err := c.activities.ActivityByID(ctx, userID, bookings[0].Activity)
	if err != nil {
		return nil, err
	}

	var minutes time.Duration
	var comments []string
	closed := 0
	for _, b := range bookings {
		if b.Open() {
			continue
		}
		closed++
		minutes += *b.End - b.Start
		if withComments && strings.TrimSpace(b.Comment) != "" && !contains(comments, b.Comment) {
			comments = append(comments, b.Comment)
		}
	}
	if closed == 0 {
		return nil, nil
	}

	return &GroupData{
		ProjectName:  activity.ProjectName,
		ProjectID:    activity.ProjectID,
		ActivityName: activity.ActivityName,
		ActivityID:   activity.ActivityID,
		Minutes:      minutes,
		Comment:      strings.Join(comments, ", "),
	}, nil
}

func sortByActivity(results []GroupData) []GroupData {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].ProjectID != results[j].ProjectID {
			return results[i].ProjectID < results[j].ProjectID
		}
		return results[i].ActivityID < results[j].ActivityID
	})
	return results
}

func mergeByProject(results []GroupData) []GroupData {
	index := make(map[string]int)
	merged := make([]GroupData, 0, len(results))
	for _, r := range results {
		i, ok := index[r.ProjectID]
		if !ok {
			index[r.ProjectID] = len(merged)
			merged = append(merged, GroupData{
				ProjectName: r.ProjectName,
				ProjectID:   r.ProjectID,
				Minutes:     r.Minutes,
				Comment:     r.Comment,
			})
			continue
		}
		merged[i].Minutes += r.Minutes
		merged[i].Comment = mergeComments(merged[i].Comment, r.Comment)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].ProjectID < merged[j].ProjectID
	})
	return merged
}

// mergeComments joins two comment rollups, skipping blanks and exact
// duplicates.
func mergeComments(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "" || a == b:
		return a
	default:
		return a + ", " + b
	}
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
