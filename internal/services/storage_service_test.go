// internal/services/storage_service_test.go
package services

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00}

func newLocalStorage(t *testing.T) *StorageService {
	t.Helper()
	cfg := newTestConfig()
	cfg.Storage.UploadDir = t.TempDir()
	svc, err := NewStorageService(cfg)
	require.NoError(t, err)
	return svc
}

// makeUpload builds a real multipart file header the way a browser form
// submission would.
func makeUpload(t *testing.T, filename string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("images", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(&body, writer.Boundary())
	form, err := reader.ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	headers := form.File["images"]
	require.Len(t, headers, 1)
	file, err := headers[0].Open()
	require.NoError(t, err)
	t.Cleanup(func() { file.Close() })

	return file, headers[0]
}

func TestUploadImageLocal(t *testing.T) {
	svc := newLocalStorage(t)
	file, header := makeUpload(t, "photo.png", pngBytes)

	result, err := svc.UploadImage(file, header, 7)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(result.URL, "/uploads/products/7/"), "got %s", result.URL)
	assert.Equal(t, ".png", filepath.Ext(result.Key))
	assert.Equal(t, int64(len(pngBytes)), result.Size)

	stored := filepath.Join(svc.cfg.UploadDir, filepath.FromSlash(result.Key))
	data, err := os.ReadFile(stored)
	require.NoError(t, err)
	assert.Equal(t, pngBytes, data)
}

func TestUploadImageRejectsBadExtension(t *testing.T) {
	svc := newLocalStorage(t)
	file, header := makeUpload(t, "notes.txt", []byte("hello"))

	_, err := svc.UploadImage(file, header, 1)
	assert.Error(t, err)
}

func TestUploadImageRejectsFakeImage(t *testing.T) {
	svc := newLocalStorage(t)
	// Image extension, non-image payload.
	file, header := makeUpload(t, "fake.png", []byte("<script>alert(1)</script>"))

	_, err := svc.UploadImage(file, header, 1)
	assert.Error(t, err)
}

func TestUploadImageRejectsOversize(t *testing.T) {
	cfg := newTestConfig()
	cfg.Storage.UploadDir = t.TempDir()
	cfg.Storage.MaxUploadBytes = 4
	svc, err := NewStorageService(cfg)
	require.NoError(t, err)

	file, header := makeUpload(t, "photo.png", pngBytes)
	_, err = svc.UploadImage(file, header, 1)
	assert.Error(t, err)
}

func TestDeleteIsIdempotent(t *testing.T) {
	svc := newLocalStorage(t)
	file, header := makeUpload(t, "photo.png", pngBytes)

	result, err := svc.UploadImage(file, header, 3)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(result.URL))

	stored := filepath.Join(svc.cfg.UploadDir, filepath.FromSlash(result.Key))
	_, statErr := os.Stat(stored)
	assert.True(t, os.IsNotExist(statErr))

	// Absent objects and empty URLs are not errors.
	assert.NoError(t, svc.Delete(result.URL))
	assert.NoError(t, svc.Delete(""))
}

func TestNewStorageServiceRejectsMisconfiguration(t *testing.T) {
	cfg := newTestConfig()
	cfg.Storage.Backend = "s3"
	cfg.Storage.Bucket = ""
	_, err := NewStorageService(cfg)
	assert.Error(t, err)

	cfg.Storage.Backend = "ftp"
	_, err = NewStorageService(cfg)
	assert.Error(t, err)
}

func TestObjectKeyFromURL(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"/uploads/products/3/123-abc.png", "products/3/123-abc.png"},
		{"https://bucket.s3.us-east-1.amazonaws.com/products/3/123-abc.png", "products/3/123-abc.png"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, objectKeyFromURL(tc.url), tc.url)
	}
}
