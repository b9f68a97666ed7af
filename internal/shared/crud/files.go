package crud

import (
	"context"

	sharedError "github.com/fpt-software/website-api/internal/shared/error"
	"github.com/fpt-software/website-api/internal/shared/upload"
)

// Uploader is the upload collaborator; *upload.Service satisfies it.
type Uploader interface {
	Upload(ctx context.Context, file *upload.File) (*upload.Result, error)
	Delete(ctx context.Context, fileURL string) bool
	Owns(fileURL string) bool
}

// FileAttachments adds optional file handling to a resource service.
type FileAttachments struct {
	uploader Uploader
}

func NewFileAttachments(uploader Uploader) *FileAttachments {
	return &FileAttachments{uploader: uploader}
}

// HandleFileUpload stores file and returns its URL. Without a file the
// existing URL is returned unchanged.
func (f *FileAttachments) HandleFileUpload(ctx context.Context, file *upload.File, existing *string) (*string, error) {
	if file == nil {
		return existing, nil
	}

	result, err := f.uploader.Upload(ctx, file)
	if err != nil {
		return nil, sharedError.WithMessage(ErrFileUploadFailed, "File upload failed: "+err.Error())
	}
	return &result.FileURL, nil
}

// DeleteFileIfExists removes fileURL when it points at storage this service
// owns. Foreign URLs are left alone.
func (f *FileAttachments) DeleteFileIfExists(ctx context.Context, fileURL *string) {
	if fileURL == nil || !f.uploader.Owns(*fileURL) {
		return
	}
	f.uploader.Delete(ctx, *fileURL)
}

// Discard deletes current when it is a file other than previous. Used to drop
// a freshly uploaded file after the write that needed it failed, or to drop
// the replaced file after the write succeeded.
func (f *FileAttachments) Discard(ctx context.Context, current, previous *string) {
	if current == nil || (previous != nil && *current == *previous) {
		return
	}
	f.DeleteFileIfExists(ctx, current)
}

// Upload exposes the collaborator for standalone uploads.
func (f *FileAttachments) Upload(ctx context.Context, file *upload.File) (*upload.Result, error) {
	return f.uploader.Upload(ctx, file)
}
