package crud

import (
	"context"
	"errors"
	"strings"
	"testing"

	sharedError "github.com/fpt-software/website-api/internal/shared/error"
	"github.com/fpt-software/website-api/internal/shared/upload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	err     error
	deleted []string
}

func (f *fakeUploader) Upload(_ context.Context, file *upload.File) (*upload.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &upload.Result{FileURL: "/uploads/announcements/" + file.OriginalName}, nil
}

func (f *fakeUploader) Delete(_ context.Context, fileURL string) bool {
	f.deleted = append(f.deleted, fileURL)
	return true
}

func (f *fakeUploader) Owns(fileURL string) bool {
	return strings.HasPrefix(fileURL, "/uploads/")
}

func TestHandleFileUpload_NoFileKeepsExisting(t *testing.T) {
	files := NewFileAttachments(&fakeUploader{})

	got, err := files.HandleFileUpload(context.Background(), nil, ptr("existing"))
	require.NoError(t, err)
	assert.Equal(t, "existing", *got)

	got, err = files.HandleFileUpload(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestHandleFileUpload_ReturnsNewURL(t *testing.T) {
	files := NewFileAttachments(&fakeUploader{})

	got, err := files.HandleFileUpload(context.Background(), &upload.File{OriginalName: "a.png"}, ptr("existing"))

	require.NoError(t, err)
	assert.Equal(t, "/uploads/announcements/a.png", *got)
}

func TestHandleFileUpload_FailureIsConflict(t *testing.T) {
	files := NewFileAttachments(&fakeUploader{err: errors.New("File type application/zip is not allowed")})

	_, err := files.HandleFileUpload(context.Background(), &upload.File{OriginalName: "a.zip"}, nil)

	require.ErrorIs(t, err, ErrFileUploadFailed)
	resp, ok := sharedError.ResolveDomainError(err)
	require.True(t, ok)
	assert.Equal(t, 409, resp.Status)
	assert.Equal(t, "File upload failed: File type application/zip is not allowed", resp.Message)
}

func TestDeleteFileIfExists_OnlyOwnedURLs(t *testing.T) {
	uploader := &fakeUploader{}
	files := NewFileAttachments(uploader)
	ctx := context.Background()

	files.DeleteFileIfExists(ctx, nil)
	files.DeleteFileIfExists(ctx, ptr("https://cdn.example.com/a.png"))
	files.DeleteFileIfExists(ctx, ptr("/uploads/announcements/a.png"))

	assert.Equal(t, []string{"/uploads/announcements/a.png"}, uploader.deleted)
}

func TestDiscard_SkipsUnchangedURL(t *testing.T) {
	uploader := &fakeUploader{}
	files := NewFileAttachments(uploader)
	ctx := context.Background()

	files.Discard(ctx, ptr("/uploads/a.png"), ptr("/uploads/a.png"))
	files.Discard(ctx, nil, ptr("/uploads/a.png"))
	files.Discard(ctx, ptr("/uploads/b.png"), ptr("/uploads/a.png"))

	assert.Equal(t, []string{"/uploads/b.png"}, uploader.deleted)
}
