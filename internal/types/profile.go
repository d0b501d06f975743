package types

// ProfileRequest represents the create-or-replace profile request. Optional
// text fields are trimmed by the handler; empty strings are stored as NULL.
type ProfileRequest struct {
	FullName        string `json:"full_name" validate:"required,min=1"`
	Headline        string `json:"headline,omitempty"`
	CurrentRole     string `json:"current_role,omitempty"`
	Company         string `json:"company,omitempty"`
	YearsExperience *int   `json:"years_experience,omitempty" validate:"omitempty,min=0,max=80"`
	Location        string `json:"location,omitempty"`
	Summary         string `json:"summary,omitempty"`
	ExtraContext    string `json:"extra_context,omitempty"`
	ResumeFileName  string `json:"resume_file_name,omitempty"`
}

// ProfileSuggestions is the heuristic field extraction returned after a
// resume upload. Null fields mean the extractor found nothing usable.
type ProfileSuggestions struct {
	FullName     *string `json:"full_name"`
	Headline     *string `json:"headline"`
	CurrentRole  *string `json:"current_role"`
	Company      *string `json:"company"`
	Summary      *string `json:"summary"`
	ExtraContext *string `json:"extra_context"`
}

// Document describes one stored supporting document.
type Document struct {
	StoredName string `json:"stored_name"`
	FileName   string `json:"file_name"`
	Size       int64  `json:"size"`
}
