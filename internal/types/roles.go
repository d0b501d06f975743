package types

// CreateRoleRequest represents the request to track a new target role.
type CreateRoleRequest struct {
	Title       string `json:"title" validate:"required,min=1"`
	Company     string `json:"company,omitempty"`
	Level       string `json:"level,omitempty"`
	Description string `json:"description" validate:"required,min=1"`
}

// UpdateRoleRequest represents the request to edit a tracked role.
type UpdateRoleRequest struct {
	Title       string `json:"title" validate:"required,min=1"`
	Company     string `json:"company,omitempty"`
	Level       string `json:"level,omitempty"`
	Description string `json:"description" validate:"required,min=1"`
}

// CreateInterviewRequest represents the request to schedule an interviewer
// for a role. ScheduledAt must be an RFC 3339 date-time.
type CreateInterviewRequest struct {
	InterviewerType string `json:"interviewer_type" validate:"required,min=1"`
	InterviewerName string `json:"interviewer_name" validate:"required,min=1"`
	ScheduledAt     string `json:"scheduled_at" validate:"required"`
	Notes           string `json:"notes,omitempty"`
}

// UpdateInterviewRequest represents the request to edit a scheduled
// interviewer slot. Empty interviewer_type and scheduled_at keep the stored
// values; notes are replaced outright, with empty clearing them.
type UpdateInterviewRequest struct {
	InterviewerType string `json:"interviewer_type,omitempty"`
	ScheduledAt     string `json:"scheduled_at,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

// CreatePrepItemRequest represents the request to add a prep checklist
// entry. Status defaults to "not_started" when empty.
type CreatePrepItemRequest struct {
	Title   string `json:"title" validate:"required,min=1"`
	Details string `json:"details,omitempty"`
	Status  string `json:"status,omitempty" validate:"omitempty,oneof=not_started in_progress done"`
}

// UpdatePrepItemRequest represents the request to edit a prep checklist
// entry. Empty fields keep their stored values.
type UpdatePrepItemRequest struct {
	Title   string `json:"title,omitempty"`
	Details string `json:"details,omitempty"`
	Status  string `json:"status,omitempty" validate:"omitempty,oneof=not_started in_progress done"`
}
