package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const interviewColumns = `id, role_id, interviewer_type, interviewer_name, scheduled_at, notes, created_at`

// ListInterviews retrieves the interviewer schedule for a role, soonest
// first.
func (db *DB) ListInterviews(ctx context.Context, roleID uuid.UUID) ([]RoleInterview, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+interviewColumns+`
		 FROM role_interviews
		 WHERE role_id = $1
		 ORDER BY scheduled_at ASC, created_at ASC`,
		roleID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list interviews: %w", err)
	}
	defer rows.Close()

	var interviews []RoleInterview
	for rows.Next() {
		var iv RoleInterview
		if err := rows.Scan(&iv.ID, &iv.RoleID, &iv.InterviewerType, &iv.InterviewerName,
			&iv.ScheduledAt, &iv.Notes, &iv.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan interview: %w", err)
		}
		interviews = append(interviews, iv)
	}
	return interviews, nil
}

// CreateInterview adds an interviewer slot to a role and returns the
// stored row.
func (db *DB) CreateInterview(ctx context.Context, iv *RoleInterview) (*RoleInterview, error) {
	var stored RoleInterview
	err := db.pool.QueryRow(ctx,
		`INSERT INTO role_interviews (role_id, interviewer_type, interviewer_name, scheduled_at, notes)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+interviewColumns,
		iv.RoleID, iv.InterviewerType, iv.InterviewerName, iv.ScheduledAt, iv.Notes,
	).Scan(&stored.ID, &stored.RoleID, &stored.InterviewerType, &stored.InterviewerName,
		&stored.ScheduledAt, &stored.Notes, &stored.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create interview: %w", err)
	}
	return &stored, nil
}

// GetInterviewForUser retrieves an interview only when the enclosing role
// belongs to the user. Returns nil when there is no such interview.
func (db *DB) GetInterviewForUser(ctx context.Context, interviewID, userID uuid.UUID) (*RoleInterview, error) {
	var iv RoleInterview
	err := db.pool.QueryRow(ctx,
		`SELECT iv.id, iv.role_id, iv.interviewer_type, iv.interviewer_name, iv.scheduled_at, iv.notes, iv.created_at
		 FROM role_interviews iv
		 JOIN roles r ON r.id = iv.role_id
		 WHERE iv.id = $1 AND r.user_id = $2`,
		interviewID, userID,
	).Scan(&iv.ID, &iv.RoleID, &iv.InterviewerType, &iv.InterviewerName,
		&iv.ScheduledAt, &iv.Notes, &iv.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get interview: %w", err)
	}
	return &iv, nil
}

// UpdateInterview replaces an interview's editable fields and returns the
// stored row.
func (db *DB) UpdateInterview(ctx context.Context, iv *RoleInterview) (*RoleInterview, error) {
	var stored RoleInterview
	err := db.pool.QueryRow(ctx,
		`UPDATE role_interviews
		 SET interviewer_type = $1, interviewer_name = $2, scheduled_at = $3, notes = $4
		 WHERE id = $5
		 RETURNING `+interviewColumns,
		iv.InterviewerType, iv.InterviewerName, iv.ScheduledAt, iv.Notes, iv.ID,
	).Scan(&stored.ID, &stored.RoleID, &stored.InterviewerType, &stored.InterviewerName,
		&stored.ScheduledAt, &stored.Notes, &stored.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update interview: %w", err)
	}
	return &stored, nil
}

// DeleteInterview removes an interviewer slot.
func (db *DB) DeleteInterview(ctx context.Context, interviewID uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM role_interviews WHERE id = $1`, interviewID)
	if err != nil {
		return fmt.Errorf("failed to delete interview: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("interview not found: %s", interviewID)
	}
	return nil
}

// ListUpcomingInterviews retrieves all of a user's scheduled interviews
// from now onward, across every role, soonest first.
func (db *DB) ListUpcomingInterviews(ctx context.Context, userID uuid.UUID, now time.Time) ([]UpcomingInterview, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT iv.id, iv.role_id, r.title, r.company,
		        iv.interviewer_type, iv.interviewer_name, iv.scheduled_at, iv.notes
		 FROM role_interviews iv
		 JOIN roles r ON r.id = iv.role_id
		 WHERE r.user_id = $1 AND iv.scheduled_at IS NOT NULL AND iv.scheduled_at >= $2
		 ORDER BY iv.scheduled_at ASC`,
		userID, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming interviews: %w", err)
	}
	defer rows.Close()

	var interviews []UpcomingInterview
	for rows.Next() {
		var iv UpcomingInterview
		if err := rows.Scan(&iv.ID, &iv.RoleID, &iv.RoleTitle, &iv.Company,
			&iv.InterviewerType, &iv.InterviewerName, &iv.ScheduledAt, &iv.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan upcoming interview: %w", err)
		}
		interviews = append(interviews, iv)
	}
	return interviews, nil
}
