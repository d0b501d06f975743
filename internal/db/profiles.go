package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const profileColumns = `id, user_id, full_name, headline, current_role, company,
	 years_experience, location, summary, extra_context, resume_file_name,
	 created_at, updated_at`

func scanProfile(row pgx.Row) (*UserProfile, error) {
	var p UserProfile
	err := row.Scan(&p.ID, &p.UserID, &p.FullName, &p.Headline, &p.CurrentRole,
		&p.Company, &p.YearsExperience, &p.Location, &p.Summary, &p.ExtraContext,
		&p.ResumeFileName, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetProfile retrieves the profile for a user. Returns nil when the user
// has not created one yet.
func (db *DB) GetProfile(ctx context.Context, userID uuid.UUID) (*UserProfile, error) {
	profile, err := scanProfile(db.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM user_profiles WHERE user_id = $1`,
		userID,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

// UpsertProfile creates or replaces the profile for p.UserID and returns
// the stored row.
func (db *DB) UpsertProfile(ctx context.Context, p *UserProfile) (*UserProfile, error) {
	stored, err := scanProfile(db.pool.QueryRow(ctx,
		`INSERT INTO user_profiles
			(user_id, full_name, headline, current_role, company,
			 years_experience, location, summary, extra_context, resume_file_name)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (user_id) DO UPDATE SET
			full_name = $2, headline = $3, current_role = $4, company = $5,
			years_experience = $6, location = $7, summary = $8,
			extra_context = $9, resume_file_name = $10, updated_at = NOW()
		 RETURNING `+profileColumns,
		p.UserID, p.FullName, p.Headline, p.CurrentRole, p.Company,
		p.YearsExperience, p.Location, p.Summary, p.ExtraContext, p.ResumeFileName,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert profile: %w", err)
	}
	return stored, nil
}

// SetResumeFileName records the uploaded resume's file name on the user's
// profile, creating a minimal profile with the fallback full name when the
// user has none yet.
func (db *DB) SetResumeFileName(ctx context.Context, userID uuid.UUID, fallbackFullName, fileName string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO user_profiles (user_id, full_name, resume_file_name)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id) DO UPDATE SET resume_file_name = $3, updated_at = NOW()`,
		userID, fallbackFullName, fileName,
	)
	if err != nil {
		return fmt.Errorf("failed to set resume file name: %w", err)
	}
	return nil
}
