package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/jbsdesign/InterviewPrepCoach/internal/db"
	"github.com/jbsdesign/InterviewPrepCoach/internal/interview"
	"github.com/jbsdesign/InterviewPrepCoach/internal/llm"
	"github.com/jbsdesign/InterviewPrepCoach/internal/types"
)

const maxAudioBytes = 25 << 20 // 25 MB, the provider's transcription cap

// ---------------------------------------------------------------------
// Practice Interview Handlers
// ---------------------------------------------------------------------

// handlePracticeInterview produces the interviewer's next turn. It works
// without a session; a valid bearer token only lets the interviewer see the
// caller's stored profile.
func (s *Server) handlePracticeInterview(w http.ResponseWriter, r *http.Request) {
	var req types.PracticeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.jsonResponse(w, http.StatusBadRequest, types.PracticeResponse{Error: "Invalid request body"})
		return
	}

	profile := s.bestEffortProfile(r)

	reply, err := s.agent.Reply(r.Context(), interview.Context{
		RoleTitle: req.RoleTitle,
		Company:   req.Company,
		Message:   req.Message,
	}, req.History, profile)
	if err != nil {
		log.Printf("Practice interview agent error: %v", err)
		s.jsonResponse(w, http.StatusInternalServerError, types.PracticeResponse{
			Error: "There was a problem talking to the interview agent.",
		})
		return
	}

	s.jsonResponse(w, http.StatusOK, types.PracticeResponse{Success: true, Reply: reply})
}

// bestEffortProfile loads the caller's profile when the request carries a
// valid token. Failures only mean the interviewer starts without background.
func (s *Server) bestEffortProfile(r *http.Request) *db.UserProfile {
	if s.db == nil || s.jwtService == nil {
		return nil
	}

	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil
	}

	claims, err := s.jwtService.ValidateToken(parts[1])
	if err != nil {
		return nil
	}

	profile, err := s.db.GetProfile(r.Context(), claims.UserID)
	if err != nil {
		log.Printf("Error loading profile for practice interview: %v", err)
		return nil
	}

	return profile
}

func (s *Server) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	if s.llm == nil {
		s.jsonResponse(w, http.StatusInternalServerError, types.TranscriptionResponse{
			Error: "Speech input is not available because the OpenAI API key is not configured.",
		})
		return
	}

	if err := r.ParseMultipartForm(maxAudioBytes); err != nil {
		s.jsonResponse(w, http.StatusBadRequest, types.TranscriptionResponse{Error: "Invalid form data"})
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		s.jsonResponse(w, http.StatusBadRequest, types.TranscriptionResponse{Error: "Missing audio file"})
		return
	}
	defer file.Close()

	text, err := s.llm.Transcribe(r.Context(), header.Filename, file)
	if err != nil {
		if llm.IsQuotaExceeded(err) {
			s.jsonResponse(w, http.StatusTooManyRequests, types.TranscriptionResponse{
				Error: "Speech input is temporarily unavailable because the OpenAI account is out of quota. You can still type your answers.",
			})
			return
		}
		log.Printf("Speech transcription error: %v", err)
		s.jsonResponse(w, http.StatusInternalServerError, types.TranscriptionResponse{
			Error: "There was a problem transcribing that audio.",
		})
		return
	}

	s.jsonResponse(w, http.StatusOK, types.TranscriptionResponse{Success: true, Text: text})
}

func (s *Server) handleSpeech(w http.ResponseWriter, r *http.Request) {
	var req types.SpeechRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Missing text for TTS")
		return
	}

	input := strings.TrimSpace(req.Text)
	if input == "" {
		s.errorResponse(w, http.StatusBadRequest, "Missing text for TTS")
		return
	}

	if s.llm == nil {
		s.errorResponse(w, http.StatusInternalServerError, "TTS is not configured")
		return
	}

	audio, err := s.llm.Speak(r.Context(), input)
	if err != nil {
		log.Printf("Practice interview TTS error: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Unable to generate speech audio")
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(audio)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(audio); err != nil {
		log.Printf("Error writing speech audio: %v", err)
	}
}
