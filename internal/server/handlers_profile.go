package server

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jbsdesign/InterviewPrepCoach/internal/db"
	"github.com/jbsdesign/InterviewPrepCoach/internal/extraction"
	"github.com/jbsdesign/InterviewPrepCoach/internal/types"
)

const (
	maxResumeBytes   = 10 << 20 // 10 MB
	maxDocumentBytes = 25 << 20 // 25 MB
)

// ---------------------------------------------------------------------
// Profile Handlers
// ---------------------------------------------------------------------

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	profile, err := s.db.GetProfile(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	// profile is null until the user saves one.
	s.jsonResponse(w, http.StatusOK, map[string]*db.UserProfile{"profile": profile})
}

func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	var req types.ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		s.errorResponse(w, http.StatusBadRequest, "Full name is required")
		return
	}

	profile := &db.UserProfile{
		UserID:          userID,
		FullName:        fullName,
		Headline:        nullable(req.Headline),
		CurrentRole:     nullable(req.CurrentRole),
		Company:         nullable(req.Company),
		YearsExperience: req.YearsExperience,
		Location:        nullable(req.Location),
		Summary:         nullable(req.Summary),
		ExtraContext:    nullable(req.ExtraContext),
		ResumeFileName:  nullable(req.ResumeFileName),
	}

	stored, err := s.db.UpsertProfile(r.Context(), profile)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]*db.UserProfile{"profile": stored})
}

// handleUploadResume records the resume's file name on the user's profile,
// creating a minimal profile if the user has none yet.
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	file, header, err := s.resumeFormFile(w, r)
	if err != nil {
		return
	}
	defer file.Close()

	isText, isPdf := classifyResume(header)
	if !isText && !isPdf {
		s.errorResponse(w, http.StatusBadRequest, "Unsupported file type. Please upload a .pdf or .txt resume.")
		return
	}

	safeName := header.Filename
	if safeName == "" {
		if isPdf {
			safeName = "resume.pdf"
		} else {
			safeName = "resume.txt"
		}
	}
	safeName = filepath.Base(safeName)

	user, err := s.db.GetUser(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if user == nil {
		s.errorResponse(w, http.StatusNotFound, "Account not found")
		return
	}

	fallbackFullName := user.Name
	if fallbackFullName == "" {
		fallbackFullName = user.Email
	}

	if err := s.db.SetResumeFileName(r.Context(), userID, fallbackFullName, safeName); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success":        true,
		"resumeFileName": safeName,
	})
}

// handleExtractResume reads a text resume and returns heuristic profile
// field suggestions without persisting anything.
func (s *Server) handleExtractResume(w http.ResponseWriter, r *http.Request, _ uuid.UUID) {
	file, header, err := s.resumeFormFile(w, r)
	if err != nil {
		return
	}
	defer file.Close()

	isText, isPdf := classifyResume(header)
	if !isText && !isPdf {
		s.errorResponse(w, http.StatusBadRequest, "Unsupported file type. Please upload a .pdf or .txt resume.")
		return
	}

	raw, err := io.ReadAll(io.LimitReader(file, maxResumeBytes))
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to read resume")
		return
	}

	// Binary PDFs need an offline text export; resumes already saved as
	// text pass straight through.
	if isPdf && strings.HasPrefix(string(raw), "%PDF") {
		s.errorResponse(w, http.StatusBadRequest, "Unable to parse PDF resume: please upload a plain text export of your resume.")
		return
	}

	text := extraction.CleanText(string(raw))
	if strings.TrimSpace(text) == "" {
		s.errorResponse(w, http.StatusBadRequest, "That file appears to be empty")
		return
	}

	suggestions := extraction.ExtractProfile(text)

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"suggestions": types.ProfileSuggestions{
			FullName:     suggestions.FullName,
			Headline:     suggestions.Headline,
			CurrentRole:  suggestions.CurrentRole,
			Company:      suggestions.Company,
			Summary:      suggestions.Summary,
			ExtraContext: suggestions.ExtraContext,
		},
	})
}

// resumeFormFile extracts the "resume" part from a multipart request,
// writing the error response itself on failure.
func (s *Server) resumeFormFile(w http.ResponseWriter, r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	if err := r.ParseMultipartForm(maxResumeBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid form data")
		return nil, nil, err
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Missing resume file")
		return nil, nil, err
	}

	return file, header, nil
}

// classifyResume reports whether the upload looks like a text or PDF resume
// based on its name and declared content type.
func classifyResume(header *multipart.FileHeader) (isText, isPdf bool) {
	lowerName := strings.ToLower(header.Filename)
	mimeType := strings.ToLower(header.Header.Get("Content-Type"))

	isText = strings.HasSuffix(lowerName, ".txt") ||
		strings.HasSuffix(lowerName, ".md") ||
		mimeType == "text/plain" ||
		mimeType == "text/markdown"
	isPdf = strings.HasSuffix(lowerName, ".pdf") ||
		mimeType == "application/pdf" ||
		mimeType == "application/x-pdf"
	return isText, isPdf
}

// nullable trims a request string and maps empty to NULL.
func nullable(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
