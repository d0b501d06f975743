package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbsdesign/InterviewPrepCoach/internal/db"
	"github.com/jbsdesign/InterviewPrepCoach/internal/types"
)

// createInterview drives handleCreateInterview and returns the stored row.
func createInterview(t *testing.T, s *Server, userID uuid.UUID, roleID uuid.UUID, req types.CreateInterviewRequest) *db.RoleInterview {
	t.Helper()

	httpReq := httptest.NewRequest(http.MethodPost, "/roles/"+roleID.String()+"/interviews", jsonBody(t, req))
	httpReq.SetPathValue("roleId", roleID.String())
	w := httptest.NewRecorder()
	s.handleCreateInterview(w, httpReq, userID)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Interview *db.RoleInterview `json:"interview"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Interview)
	return resp.Interview
}

func patchInterview(t *testing.T, s *Server, userID, interviewID uuid.UUID, req types.UpdateInterviewRequest) *httptest.ResponseRecorder {
	t.Helper()

	httpReq := httptest.NewRequest(http.MethodPatch, "/interviews/"+interviewID.String(), jsonBody(t, req))
	httpReq.SetPathValue("interviewId", interviewID.String())
	w := httptest.NewRecorder()
	s.handleUpdateInterview(w, httpReq, userID)
	return w
}

func TestInterviewHandlers_CreateAndList(t *testing.T) {
	s, _ := newStoreServer(t)
	userID := uuid.New()
	role := createRole(t, s, userID, types.CreateRoleRequest{Title: "Data Analyst", Description: "BI team"})

	scheduledAt := time.Now().Add(72 * time.Hour).UTC().Truncate(time.Second)
	interview := createInterview(t, s, userID, role.ID, types.CreateInterviewRequest{
		InterviewerType: "recruiter",
		InterviewerName: "Sam",
		ScheduledAt:     scheduledAt.Format(time.RFC3339),
		Notes:           "Intro call",
	})
	require.NotNil(t, interview.ScheduledAt)
	assert.True(t, interview.ScheduledAt.Equal(scheduledAt))

	req := httptest.NewRequest(http.MethodGet, "/roles/"+role.ID.String()+"/interviews", nil)
	req.SetPathValue("roleId", role.ID.String())
	w := httptest.NewRecorder()
	s.handleListInterviews(w, req, userID)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Interviews []db.RoleInterview `json:"interviews"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Interviews, 1)
	assert.Equal(t, "Sam", resp.Interviews[0].InterviewerName)
}

func TestInterviewHandlers_CreateRejectsBadDate(t *testing.T) {
	s, _ := newStoreServer(t)
	userID := uuid.New()
	role := createRole(t, s, userID, types.CreateRoleRequest{Title: "Data Analyst", Description: "BI team"})

	req := httptest.NewRequest(http.MethodPost, "/roles/"+role.ID.String()+"/interviews",
		jsonBody(t, types.CreateInterviewRequest{
			InterviewerType: "recruiter",
			InterviewerName: "Sam",
			ScheduledAt:     "next tuesday",
		}))
	req.SetPathValue("roleId", role.ID.String())
	w := httptest.NewRecorder()
	s.handleCreateInterview(w, req, userID)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "RFC 3339")
}

func TestInterviewHandlers_Update(t *testing.T) {
	s, _ := newStoreServer(t)
	userID := uuid.New()
	role := createRole(t, s, userID, types.CreateRoleRequest{Title: "Data Analyst", Description: "BI team"})

	scheduledAt := time.Now().Add(72 * time.Hour).UTC().Truncate(time.Second)
	interview := createInterview(t, s, userID, role.ID, types.CreateInterviewRequest{
		InterviewerType: "recruiter",
		InterviewerName: "Sam",
		ScheduledAt:     scheduledAt.Format(time.RFC3339),
		Notes:           "Intro call",
	})

	rescheduled := scheduledAt.Add(24 * time.Hour)
	w := patchInterview(t, s, userID, interview.ID, types.UpdateInterviewRequest{
		InterviewerType: "hiring_manager",
		ScheduledAt:     rescheduled.Format(time.RFC3339),
		Notes:           "Moved to Thursday",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Interview *db.RoleInterview `json:"interview"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "hiring_manager", resp.Interview.InterviewerType)
	assert.Equal(t, "Sam", resp.Interview.InterviewerName)
	require.NotNil(t, resp.Interview.ScheduledAt)
	assert.True(t, resp.Interview.ScheduledAt.Equal(rescheduled))
	require.NotNil(t, resp.Interview.Notes)
	assert.Equal(t, "Moved to Thursday", *resp.Interview.Notes)
}

func TestInterviewHandlers_UpdateKeepsStoredOnEmptyFields(t *testing.T) {
	s, _ := newStoreServer(t)
	userID := uuid.New()
	role := createRole(t, s, userID, types.CreateRoleRequest{Title: "Data Analyst", Description: "BI team"})

	scheduledAt := time.Now().Add(72 * time.Hour).UTC().Truncate(time.Second)
	interview := createInterview(t, s, userID, role.ID, types.CreateInterviewRequest{
		InterviewerType: "recruiter",
		InterviewerName: "Sam",
		ScheduledAt:     scheduledAt.Format(time.RFC3339),
		Notes:           "Intro call",
	})

	// Empty type and an unparseable date keep the stored values; the
	// omitted notes field clears the notes.
	w := patchInterview(t, s, userID, interview.ID, types.UpdateInterviewRequest{
		ScheduledAt: "sometime soon",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Interview *db.RoleInterview `json:"interview"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "recruiter", resp.Interview.InterviewerType)
	require.NotNil(t, resp.Interview.ScheduledAt)
	assert.True(t, resp.Interview.ScheduledAt.Equal(scheduledAt))
	assert.Nil(t, resp.Interview.Notes)
}

func TestInterviewHandlers_UpdateInvalidID(t *testing.T) {
	s, _ := newStoreServer(t)

	req := httptest.NewRequest(http.MethodPatch, "/interviews/not-a-uuid", jsonBody(t, types.UpdateInterviewRequest{}))
	req.SetPathValue("interviewId", "not-a-uuid")
	w := httptest.NewRecorder()
	s.handleUpdateInterview(w, req, uuid.New())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid interview ID")
}

func TestInterviewHandlers_UpdateNotFound(t *testing.T) {
	s, _ := newStoreServer(t)

	w := patchInterview(t, s, uuid.New(), uuid.New(), types.UpdateInterviewRequest{Notes: "hello"})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Interview not found")
}

func TestInterviewHandlers_UpdateOwnershipScoped(t *testing.T) {
	s, _ := newStoreServer(t)
	owner := uuid.New()
	role := createRole(t, s, owner, types.CreateRoleRequest{Title: "Data Analyst", Description: "BI team"})

	interview := createInterview(t, s, owner, role.ID, types.CreateInterviewRequest{
		InterviewerType: "recruiter",
		InterviewerName: "Sam",
		ScheduledAt:     time.Now().Add(time.Hour).UTC().Format(time.RFC3339),
	})

	w := patchInterview(t, s, uuid.New(), interview.ID, types.UpdateInterviewRequest{Notes: "hijack"})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInterviewHandlers_Delete(t *testing.T) {
	s, store := newStoreServer(t)
	userID := uuid.New()
	role := createRole(t, s, userID, types.CreateRoleRequest{Title: "Data Analyst", Description: "BI team"})

	interview := createInterview(t, s, userID, role.ID, types.CreateInterviewRequest{
		InterviewerType: "recruiter",
		InterviewerName: "Sam",
		ScheduledAt:     time.Now().Add(time.Hour).UTC().Format(time.RFC3339),
	})

	req := httptest.NewRequest(http.MethodDelete, "/interviews/"+interview.ID.String(), nil)
	req.SetPathValue("interviewId", interview.ID.String())
	w := httptest.NewRecorder()
	s.handleDeleteInterview(w, req, userID)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success": true}`, w.Body.String())
	assert.Empty(t, store.interviews)

	// A second delete is a 404, the slot is gone.
	w = httptest.NewRecorder()
	s.handleDeleteInterview(w, req, userID)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInterviewHandlers_Upcoming(t *testing.T) {
	s, _ := newStoreServer(t)
	userID := uuid.New()
	role := createRole(t, s, userID, types.CreateRoleRequest{Title: "Data Analyst", Description: "BI team"})

	createInterview(t, s, userID, role.ID, types.CreateInterviewRequest{
		InterviewerType: "recruiter",
		InterviewerName: "Sam",
		ScheduledAt:     time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339),
	})

	req := httptest.NewRequest(http.MethodGet, "/interviews/upcoming", nil)
	w := httptest.NewRecorder()
	s.handleUpcomingInterviews(w, req, userID)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Interviews []db.UpcomingInterview `json:"interviews"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Interviews, 1)
	assert.Equal(t, "Data Analyst", resp.Interviews[0].RoleTitle)
}
