package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/jbsdesign/InterviewPrepCoach/internal/db"
	"github.com/jbsdesign/InterviewPrepCoach/internal/types"
)

// ---------------------------------------------------------------------
// Role Handlers
// ---------------------------------------------------------------------

func (s *Server) handleListRoles(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	roles, err := s.db.ListRoles(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if roles == nil {
		roles = []db.Role{}
	}

	s.jsonResponse(w, http.StatusOK, map[string][]db.Role{"roles": roles})
}

func (s *Server) handleCreateRole(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	var req types.CreateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	role := &db.Role{
		UserID:      userID,
		Title:       req.Title,
		Company:     nullable(req.Company),
		Level:       nullable(req.Level),
		Description: req.Description,
	}

	stored, err := s.db.CreateRole(r.Context(), role)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]*db.Role{"role": stored})
}

func (s *Server) handleGetRole(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	role, ok := s.roleForUser(w, r, userID)
	if !ok {
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]*db.Role{"role": role})
}

func (s *Server) handleUpdateRole(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	role, ok := s.roleForUser(w, r, userID)
	if !ok {
		return
	}

	var req types.UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	role.Title = req.Title
	role.Company = nullable(req.Company)
	role.Level = nullable(req.Level)
	role.Description = req.Description

	stored, err := s.db.UpdateRole(r.Context(), role)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if stored == nil {
		s.errorResponse(w, http.StatusNotFound, "Role not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]*db.Role{"role": stored})
}

func (s *Server) handleDeleteRole(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	role, ok := s.roleForUser(w, r, userID)
	if !ok {
		return
	}

	if err := s.db.DeleteRole(r.Context(), role.ID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]bool{"success": true})
}

// roleForUser resolves the {roleId} path value to a role owned by the user,
// writing the error response itself when it cannot.
func (s *Server) roleForUser(w http.ResponseWriter, r *http.Request, userID uuid.UUID) (*db.Role, bool) {
	roleID, err := uuid.Parse(r.PathValue("roleId"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid role ID")
		return nil, false
	}

	role, err := s.db.GetRoleForUser(r.Context(), roleID, userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return nil, false
	}
	if role == nil {
		s.errorResponse(w, http.StatusNotFound, "Role not found")
		return nil, false
	}

	return role, true
}
