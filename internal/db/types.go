package db

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"` // Never serialize to JSON
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserProfile holds the candidate's background used to brief the
// interviewer agent. All fields except FullName are optional.
type UserProfile struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	FullName        string    `json:"full_name"`
	Headline        *string   `json:"headline"`
	CurrentRole     *string   `json:"current_role"`
	Company         *string   `json:"company"`
	YearsExperience *int      `json:"years_experience"`
	Location        *string   `json:"location"`
	Summary         *string   `json:"summary"`
	ExtraContext    *string   `json:"extra_context"`
	ResumeFileName  *string   `json:"resume_file_name"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Role is a position the user is interviewing for
type Role struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	Company     *string   `json:"company"`
	Level       *string   `json:"level"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RoleInterview is a scheduled interviewer slot for a role
type RoleInterview struct {
	ID              uuid.UUID  `json:"id"`
	RoleID          uuid.UUID  `json:"role_id"`
	InterviewerType string     `json:"interviewer_type"`
	InterviewerName string     `json:"interviewer_name"`
	ScheduledAt     *time.Time `json:"scheduled_at"`
	Notes           *string    `json:"notes"`
	CreatedAt       time.Time  `json:"created_at"`
}

// UpcomingInterview is a RoleInterview joined with its role, for the
// cross-role upcoming listing
type UpcomingInterview struct {
	ID              uuid.UUID  `json:"id"`
	RoleID          uuid.UUID  `json:"role_id"`
	RoleTitle       string     `json:"role_title"`
	Company         *string    `json:"company"`
	InterviewerType string     `json:"interviewer_type"`
	InterviewerName string     `json:"interviewer_name"`
	ScheduledAt     *time.Time `json:"scheduled_at"`
	Notes           *string    `json:"notes"`
}

// RolePrepItem is one entry on a role's preparation checklist
type RolePrepItem struct {
	ID        uuid.UUID `json:"id"`
	RoleID    uuid.UUID `json:"role_id"`
	Title     string    `json:"title"`
	Details   *string   `json:"details"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Prep item status values
const (
	PrepStatusNotStarted = "not_started"
	PrepStatusInProgress = "in_progress"
	PrepStatusDone       = "done"
)
