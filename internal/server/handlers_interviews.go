package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jbsdesign/InterviewPrepCoach/internal/db"
	"github.com/jbsdesign/InterviewPrepCoach/internal/types"
)

// ---------------------------------------------------------------------
// Interview Schedule Handlers
// ---------------------------------------------------------------------

func (s *Server) handleListInterviews(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	role, ok := s.roleForUser(w, r, userID)
	if !ok {
		return
	}

	interviews, err := s.db.ListInterviews(r.Context(), role.ID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if interviews == nil {
		interviews = []db.RoleInterview{}
	}

	s.jsonResponse(w, http.StatusOK, map[string][]db.RoleInterview{"interviews": interviews})
}

func (s *Server) handleCreateInterview(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	role, ok := s.roleForUser(w, r, userID)
	if !ok {
		return
	}

	var req types.CreateInterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "scheduled_at must be an RFC 3339 date-time")
		return
	}

	interview := &db.RoleInterview{
		RoleID:          role.ID,
		InterviewerType: req.InterviewerType,
		InterviewerName: req.InterviewerName,
		ScheduledAt:     &scheduledAt,
		Notes:           nullable(req.Notes),
	}

	stored, err := s.db.CreateInterview(r.Context(), interview)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]*db.RoleInterview{"interview": stored})
}

func (s *Server) handleUpdateInterview(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	interview, ok := s.interviewForUser(w, r, userID)
	if !ok {
		return
	}

	var req types.UpdateInterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Empty interviewer type and schedule keep the stored values; an
	// unparseable date-time is ignored rather than rejected. Notes are
	// always replaced, so an omitted notes field clears them.
	if interviewerType := strings.TrimSpace(req.InterviewerType); interviewerType != "" {
		interview.InterviewerType = interviewerType
	}
	if raw := strings.TrimSpace(req.ScheduledAt); raw != "" {
		if scheduledAt, err := time.Parse(time.RFC3339, raw); err == nil {
			interview.ScheduledAt = &scheduledAt
		}
	}
	interview.Notes = nullable(req.Notes)

	stored, err := s.db.UpdateInterview(r.Context(), interview)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if stored == nil {
		s.errorResponse(w, http.StatusNotFound, "Interview not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]*db.RoleInterview{"interview": stored})
}

func (s *Server) handleDeleteInterview(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	interview, ok := s.interviewForUser(w, r, userID)
	if !ok {
		return
	}

	if err := s.db.DeleteInterview(r.Context(), interview.ID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]bool{"success": true})
}

// interviewForUser resolves the {interviewId} path value to an interview
// whose role belongs to the user, writing the error response itself when it
// cannot.
func (s *Server) interviewForUser(w http.ResponseWriter, r *http.Request, userID uuid.UUID) (*db.RoleInterview, bool) {
	interviewID, err := uuid.Parse(r.PathValue("interviewId"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid interview ID")
		return nil, false
	}

	interview, err := s.db.GetInterviewForUser(r.Context(), interviewID, userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return nil, false
	}
	if interview == nil {
		s.errorResponse(w, http.StatusNotFound, "Interview not found")
		return nil, false
	}

	return interview, true
}

func (s *Server) handleUpcomingInterviews(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	interviews, err := s.db.ListUpcomingInterviews(r.Context(), userID, time.Now())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if interviews == nil {
		interviews = []db.UpcomingInterview{}
	}

	s.jsonResponse(w, http.StatusOK, map[string][]db.UpcomingInterview{"interviews": interviews})
}
