package service

import (
	"context"
	"strings"

	apperrors "timetrack/backend/internal/errors"
	"timetrack/backend/internal/model"
	"timetrack/backend/internal/repository"
)

type ActivityService struct {
	repo *repository.ActivityRepository
}

type ActivityInput struct {
	ProjectName  string
	ProjectID    string
	ActivityName string
	ActivityID   string
}

type ChangeActivityInput struct {
	ProjectName  *string
	ProjectID    *string
	ActivityName *string
	ActivityID   *string
	Hidden       *bool
}

func NewActivityService(repo *repository.ActivityRepository) *ActivityService {
	return &ActivityService{repo: repo}
}

func (s *ActivityService) AddActivity(ctx context.Context, userID string, input ActivityInput) (*model.Activity, *apperrors.APIError) {
	if apiErr := validateActivityInput(input); apiErr != nil {
		return nil, apiErr
	}

	activity := model.Activity{
		UserID:       userID,
		ProjectName:  input.ProjectName,
		ProjectID:    input.ProjectID,
		ActivityName: input.ActivityName,
		ActivityID:   input.ActivityID,
	}
	id, err := s.repo.Create(ctx, &activity)
	if err != nil {
		return nil, apperrors.Internal("failed to create activity")
	}
	activity.ID = id
	return &activity, nil
}

func (s *ActivityService) ChangeActivity(ctx context.Context, userID string, id int64, input ChangeActivityInput) (*model.Activity, *apperrors.APIError) {
	activity, apiErr := s.GetActivityByID(ctx, userID, id)
	if apiErr != nil {
		return nil, apiErr
	}

	if input.ProjectName != nil {
		activity.ProjectName = *input.ProjectName
	}
	if input.ProjectID != nil {
		activity.ProjectID = *input.ProjectID
	}
	if input.ActivityName != nil {
		activity.ActivityName = *input.ActivityName
	}
	if input.ActivityID != nil {
		activity.ActivityID = *input.ActivityID
	}
	if input.Hidden != nil {
		activity.Hidden = *input.Hidden
	}

	if err := s.repo.Update(ctx, activity); err != nil {
		return nil, apperrors.Internal("failed to update activity")
	}
	return activity, nil
}

func (s *ActivityService) DeleteActivity(ctx context.Context, userID string, id int64) *apperrors.APIError {
	if _, apiErr := s.GetActivityByID(ctx, userID, id); apiErr != nil {
		return apiErr
	}
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return apperrors.Internal("failed to delete activity")
	}
	return nil
}

func (s *ActivityService) GetActivities(ctx context.Context, userID string) ([]model.Activity, *apperrors.APIError) {
	activities, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to list activities")
	}
	return activities, nil
}

func (s *ActivityService) GetActivityByID(ctx context.Context, userID string, id int64) (*model.Activity, *apperrors.APIError) {
	activity, err := s.repo.GetByID(ctx, userID, id)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("activity_not_found", "activity not found")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to get activity")
	}
	return activity, nil
}

// ActivityByID satisfies the analysis engine's activity source; the
// repository's not-found sentinel is propagated unchanged.
func (s *ActivityService) ActivityByID(ctx context.Context, userID string, id int64) (*model.Activity, error) {
	return s.repo.GetByID(ctx, userID, id)
}

func validateActivityInput(input ActivityInput) *apperrors.APIError {
	for _, field := range []string{input.ProjectName, input.ProjectID, input.ActivityName, input.ActivityID} {
		if strings.TrimSpace(field) == "" {
			return apperrors.BadRequest("invalid_activity", "project and activity names and ids are required")
		}
	}
	return nil
}
