package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbsdesign/InterviewPrepCoach/internal/db"
	"github.com/jbsdesign/InterviewPrepCoach/internal/types"
)

func resumeForm(t *testing.T, fileName, contentType, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="resume"; filename="`+fileName+`"`)
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestProfileHandlers_GetMissingProfileIsNull(t *testing.T) {
	s, _ := newStoreServer(t)

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	w := httptest.NewRecorder()
	s.handleGetProfile(w, req, uuid.New())

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"profile": null}`, w.Body.String())
}

func TestProfileHandlers_PutAndGet(t *testing.T) {
	s, _ := newStoreServer(t)
	userID := uuid.New()

	years := 6
	req := httptest.NewRequest(http.MethodPut, "/profile", jsonBody(t, types.ProfileRequest{
		FullName:        "  Dana Tester  ",
		Headline:        "Backend engineer",
		CurrentRole:     "Senior Engineer",
		Company:         "Initech",
		YearsExperience: &years,
	}))
	w := httptest.NewRecorder()
	s.handlePutProfile(w, req, userID)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Profile *db.UserProfile `json:"profile"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Profile)
	assert.Equal(t, "Dana Tester", resp.Profile.FullName)
	require.NotNil(t, resp.Profile.Headline)
	assert.Equal(t, "Backend engineer", *resp.Profile.Headline)
	// Omitted optional fields come back as NULL, not empty strings.
	assert.Nil(t, resp.Profile.Location)

	getReq := httptest.NewRequest(http.MethodGet, "/profile", nil)
	w = httptest.NewRecorder()
	s.handleGetProfile(w, getReq, userID)

	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Profile)
	assert.Equal(t, "Dana Tester", resp.Profile.FullName)
}

func TestProfileHandlers_PutRequiresFullName(t *testing.T) {
	s, _ := newStoreServer(t)

	req := httptest.NewRequest(http.MethodPut, "/profile",
		jsonBody(t, types.ProfileRequest{FullName: "   "}))
	w := httptest.NewRecorder()
	s.handlePutProfile(w, req, uuid.New())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Full name is required")
}

func TestUploadResume(t *testing.T) {
	t.Run("records file name with fallback profile", func(t *testing.T) {
		s, store := newStoreServer(t)
		userID := store.addUser("Dana Tester", "dana@example.com")

		body, contentType := resumeForm(t, "my-resume.txt", "text/plain", "Dana Tester\nBackend engineer")
		req := httptest.NewRequest(http.MethodPost, "/profile/resume", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		s.handleUploadResume(w, req, userID)

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success        bool   `json:"success"`
			ResumeFileName string `json:"resumeFileName"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "my-resume.txt", resp.ResumeFileName)

		profile := store.profiles[userID]
		require.NotNil(t, profile)
		assert.Equal(t, "Dana Tester", profile.FullName)
		require.NotNil(t, profile.ResumeFileName)
		assert.Equal(t, "my-resume.txt", *profile.ResumeFileName)
	})

	t.Run("unknown account", func(t *testing.T) {
		s, _ := newStoreServer(t)

		body, contentType := resumeForm(t, "my-resume.txt", "text/plain", "text")
		req := httptest.NewRequest(http.MethodPost, "/profile/resume", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		s.handleUploadResume(w, req, uuid.New())

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Account not found")
	})

	t.Run("unsupported file type", func(t *testing.T) {
		s, store := newStoreServer(t)
		userID := store.addUser("Dana Tester", "dana@example.com")

		body, contentType := resumeForm(t, "resume.docx",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document", "binary")
		req := httptest.NewRequest(http.MethodPost, "/profile/resume", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		s.handleUploadResume(w, req, userID)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Unsupported file type")
	})
}

func TestExtractResume(t *testing.T) {
	t.Run("returns suggestions", func(t *testing.T) {
		s, _ := newStoreServer(t)

		resume := "Dana Tester\nBackend Engineer at Initech\n\nSummary\nBuilds payment systems.\n"
		body, contentType := resumeForm(t, "resume.txt", "text/plain", resume)
		req := httptest.NewRequest(http.MethodPost, "/profile/resume/extract", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		s.handleExtractResume(w, req, uuid.New())

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success     bool                      `json:"success"`
			Suggestions *types.ProfileSuggestions `json:"suggestions"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		require.NotNil(t, resp.Suggestions)
		require.NotNil(t, resp.Suggestions.FullName)
		assert.Equal(t, "Dana Tester", *resp.Suggestions.FullName)
	})

	t.Run("binary pdf rejected", func(t *testing.T) {
		s, _ := newStoreServer(t)

		body, contentType := resumeForm(t, "resume.pdf", "application/pdf", "%PDF-1.7 binary content")
		req := httptest.NewRequest(http.MethodPost, "/profile/resume/extract", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		s.handleExtractResume(w, req, uuid.New())

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "plain text export")
	})

	t.Run("empty file rejected", func(t *testing.T) {
		s, _ := newStoreServer(t)

		body, contentType := resumeForm(t, "resume.txt", "text/plain", "   \n\n  ")
		req := httptest.NewRequest(http.MethodPost, "/profile/resume/extract", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		s.handleExtractResume(w, req, uuid.New())

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "appears to be empty")
	})

	t.Run("missing file", func(t *testing.T) {
		s, _ := newStoreServer(t)

		body, contentType := documentForm(t, "unrelated", "resume.txt")
		req := httptest.NewRequest(http.MethodPost, "/profile/resume/extract", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		s.handleExtractResume(w, req, uuid.New())

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Missing resume file")
	})
}
