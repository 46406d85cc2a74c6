package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/outingsplit/internal/models"
	"github.com/mmynk/outingsplit/internal/storage"
)

const activityColumns = "id, group_id, title, amount, payer_id, policy, created_at"

// CreateActivity persists a new activity with its participants.
func (s *SQLiteStore) CreateActivity(ctx context.Context, activity *models.Activity) error {
	// Generate IDs if not set
	if activity.ID == "" {
		activity.ID = uuid.New().String()
	}
	if activity.CreatedAt == 0 {
		activity.CreatedAt = time.Now().Unix()
	}
	if activity.Policy == "" {
		activity.Policy = "equal"
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO activities ("+activityColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
		activity.ID, activity.GroupID, activity.Title, activity.Amount,
		activity.PayerID, activity.Policy, activity.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert activity: %w", err)
	}

	for i, p := range activity.Participants {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO activity_participants (activity_id, member_id, position, weight, exact_amount)
			 VALUES (?, ?, ?, ?, ?)`,
			activity.ID, p.MemberID, i, p.Weight, p.ExactAmount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetActivity retrieves an activity by ID, including its participants.
func (s *SQLiteStore) GetActivity(ctx context.Context, activityID string) (*models.Activity, error) {
	activity := &models.Activity{}
	err := s.db.QueryRowContext(ctx,
		"SELECT "+activityColumns+" FROM activities WHERE id = ?",
		activityID,
	).Scan(&activity.ID, &activity.GroupID, &activity.Title, &activity.Amount,
		&activity.PayerID, &activity.Policy, &activity.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("activity %s: %w", activityID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT member_id, weight, exact_amount FROM activity_participants
		 WHERE activity_id = ? ORDER BY position`,
		activityID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.MemberID, &p.Weight, &p.ExactAmount); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		activity.Participants = append(activity.Participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}

	return activity, nil
}

// ListActivitiesByGroup retrieves all activities of a group in recording order.
func (s *SQLiteStore) ListActivitiesByGroup(ctx context.Context, groupID string) ([]*models.Activity, error) {
	return listActivities(ctx, s.db, groupID)
}

func listActivities(ctx context.Context, q queryer, groupID string) ([]*models.Activity, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT "+activityColumns+" FROM activities WHERE group_id = ? ORDER BY created_at, rowid",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities by group: %w", err)
	}

	var activities []*models.Activity
	byID := make(map[string]*models.Activity)
	for rows.Next() {
		a := &models.Activity{}
		if err := rows.Scan(&a.ID, &a.GroupID, &a.Title, &a.Amount,
			&a.PayerID, &a.Policy, &a.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, a)
		byID[a.ID] = a
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activities: %w", err)
	}

	partRows, err := q.QueryContext(ctx,
		`SELECT ap.activity_id, ap.member_id, ap.weight, ap.exact_amount
		 FROM activity_participants ap
		 JOIN activities a ON a.id = ap.activity_id
		 WHERE a.group_id = ?
		 ORDER BY ap.activity_id, ap.position`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer partRows.Close()

	for partRows.Next() {
		var activityID string
		var p models.Participant
		if err := partRows.Scan(&activityID, &p.MemberID, &p.Weight, &p.ExactAmount); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		if a, ok := byID[activityID]; ok {
			a.Participants = append(a.Participants, p)
		}
	}
	if err := partRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}

	return activities, nil
}

// DeleteActivity removes an activity by ID.
func (s *SQLiteStore) DeleteActivity(ctx context.Context, activityID string) error {
	return s.execDelete(ctx, "activity", "DELETE FROM activities WHERE id = ?", activityID)
}
