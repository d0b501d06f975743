package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jbsdesign/InterviewPrepCoach/internal/db"
	"github.com/jbsdesign/InterviewPrepCoach/internal/types"
)

// ---------------------------------------------------------------------
// Prep Checklist Handlers
// ---------------------------------------------------------------------

func (s *Server) handleListPrepItems(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	role, ok := s.roleForUser(w, r, userID)
	if !ok {
		return
	}

	items, err := s.db.ListPrepItems(r.Context(), role.ID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if items == nil {
		items = []db.RolePrepItem{}
	}

	s.jsonResponse(w, http.StatusOK, map[string][]db.RolePrepItem{"items": items})
}

func (s *Server) handleCreatePrepItem(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	role, ok := s.roleForUser(w, r, userID)
	if !ok {
		return
	}

	var req types.CreatePrepItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	status := req.Status
	if status == "" {
		status = db.PrepStatusNotStarted
	}

	item := &db.RolePrepItem{
		RoleID:  role.ID,
		Title:   req.Title,
		Details: nullable(req.Details),
		Status:  status,
	}

	stored, err := s.db.CreatePrepItem(r.Context(), item)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]*db.RolePrepItem{"item": stored})
}

func (s *Server) handleUpdatePrepItem(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	item, ok := s.prepItemForUser(w, r, userID)
	if !ok {
		return
	}

	var req types.UpdatePrepItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	// Empty request fields keep the stored values.
	if title := strings.TrimSpace(req.Title); title != "" {
		item.Title = title
	}
	if req.Details != "" {
		item.Details = nullable(req.Details)
	}
	if req.Status != "" {
		item.Status = req.Status
	}

	stored, err := s.db.UpdatePrepItem(r.Context(), item)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if stored == nil {
		s.errorResponse(w, http.StatusNotFound, "Prep item not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]*db.RolePrepItem{"item": stored})
}

func (s *Server) handleDeletePrepItem(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	item, ok := s.prepItemForUser(w, r, userID)
	if !ok {
		return
	}

	if err := s.db.DeletePrepItem(r.Context(), item.ID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]bool{"success": true})
}

// prepItemForUser resolves the {itemId} path value to a prep item whose role
// belongs to the user, writing the error response itself when it cannot.
func (s *Server) prepItemForUser(w http.ResponseWriter, r *http.Request, userID uuid.UUID) (*db.RolePrepItem, bool) {
	itemID, err := uuid.Parse(r.PathValue("itemId"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid prep item ID")
		return nil, false
	}

	item, err := s.db.GetPrepItemForUser(r.Context(), itemID, userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return nil, false
	}
	if item == nil {
		s.errorResponse(w, http.StatusNotFound, "Prep item not found")
		return nil, false
	}

	return item, true
}
