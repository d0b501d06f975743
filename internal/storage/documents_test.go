package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentStore_SaveAndList(t *testing.T) {
	store := NewDocumentStore(t.TempDir())

	saved, err := store.Save(context.Background(), "user-1", []Upload{
		{FileName: "cover-letter.pdf", ContentType: "application/pdf", Data: strings.NewReader("pdf bytes")},
		{FileName: "references.txt", Data: strings.NewReader("list of references")},
	})
	require.NoError(t, err)
	require.Len(t, saved, 2)

	assert.Equal(t, "cover-letter.pdf", saved[0].FileName)
	assert.Equal(t, int64(len("pdf bytes")), saved[0].Size)
	assert.Equal(t, "application/pdf", saved[0].Type)
	assert.Equal(t, "application/octet-stream", saved[1].Type)

	documents, err := store.List("user-1")
	require.NoError(t, err)
	require.Len(t, documents, 2)

	names := []string{documents[0].FileName, documents[1].FileName}
	assert.Contains(t, names, "cover-letter.pdf")
	assert.Contains(t, names, "references.txt")

	for _, doc := range documents {
		assert.True(t, strings.HasSuffix(doc.StoredName, doc.FileName))
		assert.Greater(t, len(doc.StoredName), len(doc.FileName))
	}
}

func TestDocumentStore_SaveRejectsEmptyBatch(t *testing.T) {
	store := NewDocumentStore(t.TempDir())

	_, err := store.Save(context.Background(), "user-1", nil)
	require.Error(t, err)
}

func TestDocumentStore_SaveDefaultsFileName(t *testing.T) {
	store := NewDocumentStore(t.TempDir())

	saved, err := store.Save(context.Background(), "user-1", []Upload{
		{Data: strings.NewReader("anonymous upload")},
	})
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "document", saved[0].FileName)
}

func TestDocumentStore_SaveStripsPathComponents(t *testing.T) {
	root := t.TempDir()
	store := NewDocumentStore(root)

	saved, err := store.Save(context.Background(), "user-1", []Upload{
		{FileName: "../../escape.txt", Data: strings.NewReader("content")},
	})
	require.NoError(t, err)
	assert.Equal(t, "escape.txt", saved[0].FileName)

	_, err = os.Stat(filepath.Join(root, "escape.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestDocumentStore_ListMissingDirectory(t *testing.T) {
	store := NewDocumentStore(t.TempDir())

	documents, err := store.List("nobody")
	require.NoError(t, err)
	assert.Empty(t, documents)
}

func TestDocumentStore_Delete(t *testing.T) {
	store := NewDocumentStore(t.TempDir())

	_, err := store.Save(context.Background(), "user-1", []Upload{
		{FileName: "notes.txt", Data: strings.NewReader("notes")},
	})
	require.NoError(t, err)

	documents, err := store.List("user-1")
	require.NoError(t, err)
	require.Len(t, documents, 1)

	require.NoError(t, store.Delete("user-1", documents[0].StoredName))

	documents, err = store.List("user-1")
	require.NoError(t, err)
	assert.Empty(t, documents)
}

func TestDocumentStore_DeleteMissingDocument(t *testing.T) {
	store := NewDocumentStore(t.TempDir())

	err := store.Delete("user-1", "does-not-exist.txt")
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestDocumentStore_DeleteRejectsTraversal(t *testing.T) {
	store := NewDocumentStore(t.TempDir())

	err := store.Delete("user-1", "../other-user/secret.txt")
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestDocumentStore_DocumentsAreScopedPerUser(t *testing.T) {
	store := NewDocumentStore(t.TempDir())

	_, err := store.Save(context.Background(), "user-1", []Upload{
		{FileName: "mine.txt", Data: strings.NewReader("mine")},
	})
	require.NoError(t, err)

	documents, err := store.List("user-2")
	require.NoError(t, err)
	assert.Empty(t, documents)
}
