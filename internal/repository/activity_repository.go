package repository

import (
	"context"
	"database/sql"
	"fmt"

	"timetrack/backend/internal/model"
)

type ActivityRepository struct {
	db *sql.DB
}

func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(ctx context.Context, activity *model.Activity) (int64, error) {
	result, err := r.db.ExecContext(
		ctx,
		`INSERT INTO activities (user_id, project_name, project_id, activity_name, activity_id, hidden)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		activity.UserID,
		activity.ProjectName,
		activity.ProjectID,
		activity.ActivityName,
		activity.ActivityID,
		activity.Hidden,
	)
	if err != nil {
		return 0, fmt.Errorf("create activity: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create activity id: %w", err)
	}
	return id, nil
}

func (r *ActivityRepository) Update(ctx context.Context, activity *model.Activity) error {
	_, err := r.db.ExecContext(
		ctx,
		`UPDATE activities
		 SET project_name = ?,
		     project_id = ?,
		     activity_name = ?,
		     activity_id = ?,
		     hidden = ?
		 WHERE id = ? AND user_id = ?`,
		activity.ProjectName,
		activity.ProjectID,
		activity.ActivityName,
		activity.ActivityID,
		activity.Hidden,
		activity.ID,
		activity.UserID,
	)
	if err != nil {
		return fmt.Errorf("update activity: %w", err)
	}
	return nil
}

func (r *ActivityRepository) Delete(ctx context.Context, userID string, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM activities WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete activity: %w", err)
	}
	return nil
}

func (r *ActivityRepository) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM activities WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("delete activities of user: %w", err)
	}
	return nil
}

// GetByID resolves an activity scoped to its owner; an id owned by a
// different user comes back as ErrNotFound.
func (r *ActivityRepository) GetByID(ctx context.Context, userID string, id int64) (*model.Activity, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, user_id, project_name, project_id, activity_name, activity_id, hidden
		 FROM activities
		 WHERE id = ? AND user_id = ?`,
		id,
		userID,
	)

	var activity model.Activity
	err := row.Scan(
		&activity.ID,
		&activity.UserID,
		&activity.ProjectName,
		&activity.ProjectID,
		&activity.ActivityName,
		&activity.ActivityID,
		&activity.Hidden,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan activity: %w", err)
	}
	return &activity, nil
}

func (r *ActivityRepository) ListByUser(ctx context.Context, userID string) ([]model.Activity, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, user_id, project_name, project_id, activity_name, activity_id, hidden
		 FROM activities
		 WHERE user_id = ?
		 ORDER BY UPPER(project_id), UPPER(activity_id)`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	activities := make([]model.Activity, 0)
	for rows.Next() {
		var activity model.Activity
		if err := rows.Scan(
			&activity.ID,
			&activity.UserID,
			&activity.ProjectName,
			&activity.ProjectID,
			&activity.ActivityName,
			&activity.ActivityID,
			&activity.Hidden,
		); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		activities = append(activities, activity)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activities: %w", err)
	}
	return activities, nil
}
