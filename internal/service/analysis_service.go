package service

import (
	"context"
	"errors"

	"timetrack/backend/internal/analysis"
	apperrors "timetrack/backend/internal/errors"
	"timetrack/backend/internal/repository"
)

// AnalysisService runs the analysis computers and maps their numeric
// results to display-ready string rows. It adds no logic of its own
// beyond formatting and error translation.
type AnalysisService struct {
	hours      *analysis.HourComputer
	projects   *analysis.GroupComputer
	activities *analysis.GroupComputer
}

type HourRow struct {
	Bookingday string `json:"bookingday"`
	Starttime  string `json:"starttime"`
	Endtime    string `json:"endtime"`
	Presence   string `json:"presence"`
	Worktime   string `json:"worktime"`
	Breaktime  string `json:"breaktime"`
	Total      string `json:"total"`
	Overtime   string `json:"overtime"`
	Comment    string `json:"comment"`
}

type ProjectRow struct {
	ProjectID   string `json:"projectId"`
	ProjectName string `json:"projectName"`
	Minutes     string `json:"minutes"`
	Percentage  string `json:"percentage"`
	Comment     string `json:"comment"`
}

type ActivityRow struct {
	ProjectID    string `json:"projectId"`
	ProjectName  string `json:"projectName"`
	ActivityID   string `json:"activityId"`
	ActivityName string `json:"activityName"`
	Minutes      string `json:"minutes"`
	Percentage   string `json:"percentage"`
	Comment      string `json:"comment"`
}

func NewAnalysisService(activities *ActivityService, bookings *BookingService) *AnalysisService {
	return &AnalysisService{
		hours:      analysis.NewHourComputer(bookings),
		projects:   analysis.NewProjectComputer(activities, bookings),
		activities: analysis.NewActivityComputer(activities, bookings),
	}
}

func (s *AnalysisService) RunHourAnalysis(ctx context.Context, userID, firstDay, firstDayAfter string) ([]HourRow, *apperrors.APIError) {
	first, after, apiErr := parseDayRange(firstDay, firstDayAfter)
	if apiErr != nil {
		return nil, apiErr
	}

	results, err := s.hours.Analyze(ctx, userID, first, after)
	if err != nil {
		return nil, analysisError(err)
	}

	rows := make([]HourRow, 0, len(results))
	for _, r := range results {
		row := HourRow{
			Bookingday: analysis.DateString(r.Day),
			Comment:    r.Comment,
		}
		if r.Valid {
			row.Starttime = analysis.ClockString(&r.Start)
			row.Endtime = analysis.ClockString(&r.End)
			row.Presence = analysis.DurationString(&r.Presence)
			row.Worktime = analysis.DurationString(&r.Worktime)
			row.Breaktime = analysis.DurationString(&r.Breaktime)
			row.Total = analysis.DurationString(&r.Total)
			row.Overtime = analysis.DurationString(&r.Overtime)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *AnalysisService) RunProjectAnalysis(ctx context.Context, userID, firstDay, firstDayAfter string) ([]ProjectRow, *apperrors.APIError) {
	first, after, apiErr := parseDayRange(firstDay, firstDayAfter)
	if apiErr != nil {
		return nil, apiErr
	}

	results, err := s.projects.Analyze(ctx, userID, first, after)
	if err != nil {
		return nil, analysisError(err)
	}

	rows := make([]ProjectRow, 0, len(results))
	for _, r := range results {
		rows = append(rows, ProjectRow{
			ProjectID:   r.ProjectID,
			ProjectName: r.ProjectName,
			Minutes:     analysis.DurationString(&r.Minutes),
			Percentage:  analysis.PercentString(r.Percentage),
			Comment:     r.Comment,
		})
	}
	return rows, nil
}

func (s *AnalysisService) RunActivityAnalysis(ctx context.Context, userID, firstDay, firstDayAfter string) ([]ActivityRow, *apperrors.APIError) {
	first, after, apiErr := parseDayRange(firstDay, firstDayAfter)
	if apiErr != nil {
		return nil, apiErr
	}

	results, err := s.activities.Analyze(ctx, userID, first, after)
	if err != nil {
		return nil, analysisError(err)
	}

	rows := make([]ActivityRow, 0, len(results))
	for _, r := range results {
		rows = append(rows, ActivityRow{
			ProjectID:    r.ProjectID,
			ProjectName:  r.ProjectName,
			ActivityID:   r.ActivityID,
			ActivityName: r.ActivityName,
			Minutes:      analysis.DurationString(&r.Minutes),
			Percentage:   analysis.PercentString(r.Percentage),
			Comment:      r.Comment,
		})
	}
	return rows, nil
}

func analysisError(err error) *apperrors.APIError {
	switch {
	case errors.Is(err, ErrInvalidRange):
		return apperrors.BadRequest("invalid_range", err.Error())
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NotFound("activity_not_found", "a booking references an unknown activity")
	default:
		return apperrors.Internal("failed to run analysis")
	}
}
