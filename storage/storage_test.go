package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateStoragePath(t *testing.T) {
	id := uuid.New()

	path := generateStoragePath(id, "lab results 2024.pdf")
	assert.Equal(t, id.String()[:2], strings.SplitN(path, "/", 2)[0])
	assert.Contains(t, path, id.String())
	assert.Contains(t, path, "lab_results_2024")
	assert.True(t, strings.HasSuffix(path, ".pdf"))
	assert.NotContains(t, strings.SplitN(path, "/", 2)[1], " ")
}

func TestLocalStorageRoundTrip(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/files/")
	require.NoError(t, err)

	ctx := context.Background()
	id := uuid.New()

	path, err := s.Upload(ctx, id, "scan.png", strings.NewReader("image-bytes"))
	require.NoError(t, err)

	url := s.PublicURL(path)
	assert.Equal(t, "http://localhost:8080/files/"+path, url)

	rc, err := s.Download(ctx, path)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	rc.Close()
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(data))

	require.NoError(t, s.Delete(ctx, path))
	_, err = s.Download(ctx, path)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStorageDeleteMissingIsNoop(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/files")
	require.NoError(t, err)

	assert.NoError(t, s.Delete(context.Background(), "ab/none.png"))
}

func TestGetContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", getContentType("report.pdf"))
	assert.Equal(t, "image/png", getContentType("scan.PNG"))
	assert.Equal(t, "image/jpeg", getContentType("card.jpeg"))
	assert.Equal(t, "application/octet-stream", getContentType("notes.xyz"))
}
