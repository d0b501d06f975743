package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbsdesign/InterviewPrepCoach/internal/db"
	"github.com/jbsdesign/InterviewPrepCoach/internal/types"
)

func createPrepItem(t *testing.T, s *Server, userID, roleID uuid.UUID, req types.CreatePrepItemRequest) *db.RolePrepItem {
	t.Helper()

	httpReq := httptest.NewRequest(http.MethodPost, "/roles/"+roleID.String()+"/prep-items", jsonBody(t, req))
	httpReq.SetPathValue("roleId", roleID.String())
	w := httptest.NewRecorder()
	s.handleCreatePrepItem(w, httpReq, userID)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Item *db.RolePrepItem `json:"item"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Item)
	return resp.Item
}

func TestPrepItemHandlers_CreateDefaultsStatus(t *testing.T) {
	s, _ := newStoreServer(t)
	userID := uuid.New()
	role := createRole(t, s, userID, types.CreateRoleRequest{Title: "SRE", Description: "On-call"})

	item := createPrepItem(t, s, userID, role.ID, types.CreatePrepItemRequest{
		Title: "Review system design notes",
	})

	assert.Equal(t, db.PrepStatusNotStarted, item.Status)
	assert.Nil(t, item.Details)
}

func TestPrepItemHandlers_CreateRejectsBadStatus(t *testing.T) {
	s, _ := newStoreServer(t)
	userID := uuid.New()
	role := createRole(t, s, userID, types.CreateRoleRequest{Title: "SRE", Description: "On-call"})

	req := httptest.NewRequest(http.MethodPost, "/roles/"+role.ID.String()+"/prep-items",
		jsonBody(t, types.CreatePrepItemRequest{Title: "Read up", Status: "paused"}))
	req.SetPathValue("roleId", role.ID.String())
	w := httptest.NewRecorder()
	s.handleCreatePrepItem(w, req, userID)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation error")
}

func TestPrepItemHandlers_UpdateKeepsStoredOnEmptyFields(t *testing.T) {
	s, _ := newStoreServer(t)
	userID := uuid.New()
	role := createRole(t, s, userID, types.CreateRoleRequest{Title: "SRE", Description: "On-call"})

	item := createPrepItem(t, s, userID, role.ID, types.CreatePrepItemRequest{
		Title:   "Review system design notes",
		Details: "Focus on queueing",
	})

	req := httptest.NewRequest(http.MethodPatch, "/prep-items/"+item.ID.String(),
		jsonBody(t, types.UpdatePrepItemRequest{Status: db.PrepStatusDone}))
	req.SetPathValue("itemId", item.ID.String())
	w := httptest.NewRecorder()
	s.handleUpdatePrepItem(w, req, userID)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Item *db.RolePrepItem `json:"item"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, db.PrepStatusDone, resp.Item.Status)
	assert.Equal(t, "Review system design notes", resp.Item.Title)
	require.NotNil(t, resp.Item.Details)
	assert.Equal(t, "Focus on queueing", *resp.Item.Details)
}

func TestPrepItemHandlers_InvalidID(t *testing.T) {
	s, _ := newStoreServer(t)

	req := httptest.NewRequest(http.MethodPatch, "/prep-items/not-a-uuid",
		jsonBody(t, types.UpdatePrepItemRequest{}))
	req.SetPathValue("itemId", "not-a-uuid")
	w := httptest.NewRecorder()
	s.handleUpdatePrepItem(w, req, uuid.New())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid prep item ID")
}

func TestPrepItemHandlers_NotFound(t *testing.T) {
	s, _ := newStoreServer(t)

	itemID := uuid.NewString()
	req := httptest.NewRequest(http.MethodDelete, "/prep-items/"+itemID, nil)
	req.SetPathValue("itemId", itemID)
	w := httptest.NewRecorder()
	s.handleDeletePrepItem(w, req, uuid.New())

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Prep item not found")
}

func TestPrepItemHandlers_OwnershipScoped(t *testing.T) {
	s, _ := newStoreServer(t)
	owner := uuid.New()
	role := createRole(t, s, owner, types.CreateRoleRequest{Title: "SRE", Description: "On-call"})
	item := createPrepItem(t, s, owner, role.ID, types.CreatePrepItemRequest{Title: "Read runbooks"})

	req := httptest.NewRequest(http.MethodDelete, "/prep-items/"+item.ID.String(), nil)
	req.SetPathValue("itemId", item.ID.String())
	w := httptest.NewRecorder()
	s.handleDeletePrepItem(w, req, uuid.New())

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPrepItemHandlers_Delete(t *testing.T) {
	s, store := newStoreServer(t)
	userID := uuid.New()
	role := createRole(t, s, userID, types.CreateRoleRequest{Title: "SRE", Description: "On-call"})
	item := createPrepItem(t, s, userID, role.ID, types.CreatePrepItemRequest{Title: "Read runbooks"})

	req := httptest.NewRequest(http.MethodDelete, "/prep-items/"+item.ID.String(), nil)
	req.SetPathValue("itemId", item.ID.String())
	w := httptest.NewRecorder()
	s.handleDeletePrepItem(w, req, userID)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success": true}`, w.Body.String())
	assert.Empty(t, store.prepItems)
}
