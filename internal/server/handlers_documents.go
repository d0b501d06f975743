package server

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"

	"github.com/jbsdesign/InterviewPrepCoach/internal/storage"
)

// ---------------------------------------------------------------------
// Supporting Document Handlers
// ---------------------------------------------------------------------

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	documents, err := s.documents.List(userID.String())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list documents")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"documents": documents})
}

func (s *Server) handleUploadDocuments(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	if err := r.ParseMultipartForm(maxDocumentBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	var headers []*multipart.FileHeader
	if r.MultipartForm != nil {
		headers = r.MultipartForm.File["supporting"]
	}
	if len(headers) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "No supporting documents were provided")
		return
	}

	uploads := make([]storage.Upload, 0, len(headers))
	var opened []multipart.File
	defer func() {
		for _, f := range opened {
			f.Close()
		}
	}()

	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Unable to read uploaded document")
			return
		}
		opened = append(opened, f)
		uploads = append(uploads, storage.Upload{
			FileName:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        f,
		})
	}

	saved, err := s.documents.Save(r.Context(), userID.String(), uploads)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to store documents")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success":   true,
		"documents": saved,
	})
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	storedName := r.PathValue("storedName")
	if storedName == "" {
		s.errorResponse(w, http.StatusBadRequest, "Missing document identifier")
		return
	}

	if err := s.documents.Delete(userID.String(), storedName); err != nil {
		if errors.Is(err, storage.ErrDocumentNotFound) {
			s.errorResponse(w, http.StatusNotFound, "Document not found")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Unable to delete that document")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]bool{"success": true})
}
