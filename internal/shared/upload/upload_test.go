package upload

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	appconfig "github.com/fpt-software/website-api/internal/config"
	sharedError "github.com/fpt-software/website-api/internal/shared/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52}

func newLocalService(t *testing.T) (*Service, string) {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "uploads")
	storage, err := NewLocalStorage(dir, "/uploads/")
	require.NoError(t, err)

	svc := NewService(storage, "announcements", 1024)
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return svc, dir
}

func TestUpload_StoresImage(t *testing.T) {
	// Given
	svc, dir := newLocalService(t)
	file := &File{FieldName: "file", OriginalName: "Logo.PNG", MimeType: "image/png", Size: int64(len(pngHeader)), Content: pngHeader}

	// When
	result, err := svc.Upload(context.Background(), file)

	// Then
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.FileURL, "/uploads/announcements/file-1700000000000-"))
	assert.True(t, strings.HasSuffix(result.FileURL, ".png"))
	assert.Equal(t, "image/png", result.MimeType)
	assert.Equal(t, []string{"image"}, result.Tags)

	stored, err := os.ReadFile(result.FilePath)
	require.NoError(t, err)
	assert.Equal(t, pngHeader, stored)
	assert.True(t, strings.HasPrefix(result.FilePath, dir))
}

func TestUpload_Rejections(t *testing.T) {
	testCases := []struct {
		name    string
		file    *File
		wantErr error
		wantMsg string
	}{
		{
			name:    "no file",
			file:    nil,
			wantErr: ErrFileMissing,
			wantMsg: "No file provided",
		},
		{
			name:    "too large",
			file:    &File{OriginalName: "big.txt", MimeType: "text/plain", Size: 2048, Content: []byte("x")},
			wantErr: ErrFileTooLarge,
		},
		{
			name:    "declared type not allowed",
			file:    &File{OriginalName: "run.sh", MimeType: "application/x-sh", Size: 9, Content: []byte("echo hi\n")},
			wantErr: ErrFileType,
			wantMsg: "File type application/x-sh is not allowed",
		},
		{
			name:    "executable disguised as png",
			file:    &File{OriginalName: "cat.png", MimeType: "image/png", Size: 4, Content: []byte{0x4D, 0x5A, 0x90, 0x00}},
			wantErr: ErrFileType,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := newLocalService(t)

			_, err := svc.Upload(context.Background(), tc.file)

			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.wantErr))
			if tc.wantMsg != "" {
				resp, ok := sharedError.ResolveDomainError(err)
				require.True(t, ok)
				assert.Equal(t, tc.wantMsg, resp.Message)
			}
		})
	}
}

func TestUpload_PlainTextUsesDeclaredType(t *testing.T) {
	svc, _ := newLocalService(t)

	result, err := svc.Upload(context.Background(), &File{
		FieldName: "file", OriginalName: "notes.txt", MimeType: "text/plain; charset=utf-8", Size: 5, Content: []byte("hello"),
	})

	require.NoError(t, err)
	assert.Equal(t, "text/plain", result.MimeType)
	assert.Equal(t, []string{"document", "text"}, result.Tags)
}

func TestDelete_OnlyOwnedFiles(t *testing.T) {
	// Given: one stored file
	svc, _ := newLocalService(t)
	result, err := svc.Upload(context.Background(), &File{FieldName: "file", OriginalName: "a.txt", MimeType: "text/plain", Size: 1, Content: []byte("a")})
	require.NoError(t, err)

	// Then: foreign and traversal URLs are ignored
	assert.False(t, svc.Delete(context.Background(), "https://cdn.example.com/a.png"))
	assert.False(t, svc.Delete(context.Background(), "/uploads/../secret.txt"))
	assert.False(t, svc.Delete(context.Background(), ""))

	// And: the owned file is removed once
	assert.True(t, svc.Delete(context.Background(), result.FileURL))
	_, err = os.Stat(result.FilePath)
	assert.True(t, os.IsNotExist(err))
	assert.False(t, svc.Delete(context.Background(), result.FileURL))
}

func TestTags(t *testing.T) {
	assert.Equal(t, []string{"image"}, Tags("image/webp"))
	assert.Equal(t, []string{"document", "pdf"}, Tags("application/pdf"))
	assert.Equal(t, []string{"document", "word"}, Tags("application/msword"))
	assert.Equal(t, []string{"document", "word"}, Tags("application/vnd.openxmlformats-officedocument.wordprocessingml.document"))
	assert.Equal(t, []string{"document", "text"}, Tags("text/plain"))
	assert.Empty(t, Tags("application/zip"))
}

func TestNewStorage_Local(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "files")

	storage, err := NewStorage(context.Background(), appconfig.UploadConfig{Driver: appconfig.StorageLocal, Dir: dir, PublicPrefix: "/uploads/"})

	require.NoError(t, err)
	assert.True(t, storage.Owns("/uploads/announcements/a.png"))
	assert.DirExists(t, dir)
}

func TestNewStorage_UnknownDriver(t *testing.T) {
	_, err := NewStorage(context.Background(), appconfig.UploadConfig{Driver: "ftp"})

	assert.Error(t, err)
}
