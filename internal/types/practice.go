package types

import "github.com/jbsdesign/InterviewPrepCoach/internal/interview"

// PracticeRequest represents one turn of the practice interview. Message
// may be empty on a kickoff request; History is the transcript accumulated
// so far, supplied verbatim and in order by the caller.
type PracticeRequest struct {
	RoleTitle string           `json:"role_title,omitempty"`
	Company   string           `json:"company,omitempty"`
	Message   string           `json:"message"`
	History   []interview.Turn `json:"history,omitempty"`
}

// PracticeResponse carries the interviewer's reply for one turn.
type PracticeResponse struct {
	Success bool   `json:"success"`
	Reply   string `json:"reply,omitempty"`
	Error   string `json:"error,omitempty"`
}

// SpeechRequest represents a text-to-speech request.
type SpeechRequest struct {
	Text string `json:"text" validate:"required,min=1"`
}

// TranscriptionResponse carries the recognized text for an uploaded audio
// clip.
type TranscriptionResponse struct {
	Success bool   `json:"success"`
	Text    string `json:"text,omitempty"`
	Error   string `json:"error,omitempty"`
}
