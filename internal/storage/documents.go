package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jbsdesign/InterviewPrepCoach/internal/types"
)

// ErrDocumentNotFound is returned when a stored document does not exist.
var ErrDocumentNotFound = errors.New("document not found")

// Stored names are "<uuid>-<original name>"; the display name starts after the
// 36 character UUID and its trailing dash.
const storedNamePrefixLen = 37

// DocumentStore keeps supporting documents on disk, one directory per user.
type DocumentStore struct {
	root string
}

// NewDocumentStore builds a store rooted at dir. Documents live under
// dir/supporting/<userID>/.
func NewDocumentStore(dir string) *DocumentStore {
	return &DocumentStore{root: dir}
}

// Upload is one incoming document to persist.
type Upload struct {
	FileName    string
	ContentType string
	Data        io.Reader
}

// SavedDocument describes a persisted upload.
type SavedDocument struct {
	FileName string `json:"fileName"`
	Size     int64  `json:"size"`
	Type     string `json:"type"`
}

func (s *DocumentStore) userDir(userID string) string {
	return filepath.Join(s.root, "supporting", userID)
}

// List returns the user's stored documents. A missing directory is treated as
// having no documents.
func (s *DocumentStore) List(userID string) ([]types.Document, error) {
	entries, err := os.ReadDir(s.userDir(userID))
	if err != nil {
		if os.IsNotExist(err) {
			return []types.Document{}, nil
		}
		return nil, fmt.Errorf("failed to read document directory: %w", err)
	}

	documents := []types.Document{}
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to stat document %s: %w", entry.Name(), err)
		}

		storedName := entry.Name()
		fileName := storedName
		if len(storedName) > storedNamePrefixLen {
			fileName = storedName[storedNamePrefixLen:]
		}

		documents = append(documents, types.Document{
			StoredName: storedName,
			FileName:   fileName,
			Size:       info.Size(),
		})
	}

	sort.Slice(documents, func(i, j int) bool {
		return documents[i].StoredName < documents[j].StoredName
	})

	return documents, nil
}

// Save persists the uploads under fresh unique names, writing them
// concurrently. It returns a descriptor per saved document.
func (s *DocumentStore) Save(ctx context.Context, userID string, uploads []Upload) ([]SavedDocument, error) {
	if len(uploads) == 0 {
		return nil, errors.New("no documents were provided")
	}

	dir := s.userDir(userID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create document directory: %w", err)
	}

	saved := make([]SavedDocument, len(uploads))

	g, _ := errgroup.WithContext(ctx)
	for i, upload := range uploads {
		g.Go(func() error {
			fileName := upload.FileName
			if fileName == "" {
				fileName = "document"
			}
			fileName = filepath.Base(fileName)

			contentType := upload.ContentType
			if contentType == "" {
				contentType = "application/octet-stream"
			}

			storedName := uuid.NewString() + "-" + fileName
			target := filepath.Join(dir, storedName)

			out, err := os.Create(target)
			if err != nil {
				return fmt.Errorf("failed to create document %s: %w", fileName, err)
			}

			size, err := io.Copy(out, upload.Data)
			if closeErr := out.Close(); err == nil {
				err = closeErr
			}
			if err != nil {
				os.Remove(target)
				return fmt.Errorf("failed to write document %s: %w", fileName, err)
			}

			saved[i] = SavedDocument{FileName: fileName, Size: size, Type: contentType}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return saved, nil
}

// Delete removes a single stored document by its stored name.
func (s *DocumentStore) Delete(userID, storedName string) error {
	if storedName == "" || storedName != filepath.Base(storedName) {
		return ErrDocumentNotFound
	}

	target := filepath.Join(s.userDir(userID), storedName)
	if _, err := os.Stat(target); err != nil {
		if os.IsNotExist(err) {
			return ErrDocumentNotFound
		}
		return fmt.Errorf("failed to stat document %s: %w", storedName, err)
	}

	if err := os.Remove(target); err != nil {
		return fmt.Errorf("failed to delete document %s: %w", storedName, err)
	}

	return nil
}
