package upload

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"

	sharedError "github.com/fpt-software/website-api/internal/shared/error"
)

func sharedErrorf(sentinel sharedError.DomainError, format string, args ...any) error {
	return sharedError.WithMessage(sentinel, fmt.Sprintf(format, args...))
}

// FromMultipart reads a multipart file header into a File.
func FromMultipart(header *multipart.FileHeader) (*File, error) {
	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open multipart file: %w", err)
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read multipart file: %w", err)
	}

	fieldName := "file"
	if _, params, err := mime.ParseMediaType(header.Header.Get("Content-Disposition")); err == nil && params["name"] != "" {
		fieldName = params["name"]
	}

	return &File{
		FieldName:    fieldName,
		OriginalName: header.Filename,
		MimeType:     header.Header.Get("Content-Type"),
		Size:         header.Size,
		Content:      content,
	}, nil
}
