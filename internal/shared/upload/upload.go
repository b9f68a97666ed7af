package upload

import (
	"context"
	"fmt"
	"mime"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/fpt-software/website-api/internal/shared/logger"
	"github.com/google/uuid"
	"github.com/h2non/filetype"
	"github.com/samber/lo"
)

// DefaultMaxSize is the upload ceiling when none is configured.
const DefaultMaxSize int64 = 10 * 1024 * 1024

// AllowedMIMETypes is the upload allow list.
var AllowedMIMETypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"text/plain",
}

var (
	unsafeName = regexp.MustCompile(`[^A-Za-z0-9_-]`)
	safeExt    = regexp.MustCompile(`^\.[A-Za-z0-9]{1,10}$`)
)

// File is an uploaded file held in memory.
type File struct {
	FieldName    string
	OriginalName string
	MimeType     string // as declared by the client
	Size         int64
	Content      []byte
}

// Result describes a stored file.
type Result struct {
	FieldName    string   `json:"fieldName"`
	OriginalName string   `json:"originalName"`
	MimeType     string   `json:"mimeType"`
	FilePath     string   `json:"filePath"`
	FileURL      string   `json:"fileUrl"`
	Tags         []string `json:"tags"`
}

// Storage persists file content under a key and exposes it at a public URL.
type Storage interface {
	Save(ctx context.Context, key string, content []byte, contentType string) (filePath, fileURL string, err error)
	Delete(ctx context.Context, fileURL string) error
	// Owns reports whether fileURL points into this storage.
	Owns(fileURL string) bool
}

// Service validates uploads and hands them to a Storage.
type Service struct {
	storage Storage
	folder  string
	maxSize int64
	now     func() time.Time
}

func NewService(storage Storage, folder string, maxSize int64) *Service {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Service{
		storage: storage,
		folder:  strings.Trim(folder, "/"),
		maxSize: maxSize,
		now:     time.Now,
	}
}

// Upload validates f and stores it.
func (s *Service) Upload(ctx context.Context, f *File) (*Result, error) {
	log := logger.Named(ctx, "upload")

	if f == nil || len(f.Content) == 0 {
		return nil, sharedErrorf(ErrFileMissing, "No file provided")
	}
	log.Info("uploading file", "original_name", f.OriginalName, "size", f.Size)

	mimeType, err := s.validate(f)
	if err != nil {
		log.Warn("upload rejected", "original_name", f.OriginalName, "error", err)
		return nil, err
	}

	key := s.objectKey(f)
	filePath, fileURL, err := s.storage.Save(ctx, key, f.Content, mimeType)
	if err != nil {
		log.Error("store file failed", "key", key, "error", err)
		return nil, fmt.Errorf("store file: %w", err)
	}

	log.Info("file uploaded", "url", fileURL)
	return &Result{
		FieldName:    f.FieldName,
		OriginalName: f.OriginalName,
		MimeType:     mimeType,
		FilePath:     filePath,
		FileURL:      fileURL,
		Tags:         Tags(mimeType),
	}, nil
}

// Owns reports whether fileURL was produced by this service's storage.
func (s *Service) Owns(fileURL string) bool {
	return fileURL != "" && s.storage.Owns(fileURL)
}

// Delete removes a stored file. Failures are logged, not returned; the
// result reports whether the file is gone.
func (s *Service) Delete(ctx context.Context, fileURL string) bool {
	log := logger.Named(ctx, "upload")

	if !s.Owns(fileURL) {
		return false
	}
	if err := s.storage.Delete(ctx, fileURL); err != nil {
		log.Error("delete file failed", "url", fileURL, "error", err)
		return false
	}

	log.Info("file deleted", "url", fileURL)
	return true
}

// validate checks size and type and returns the effective MIME type.
// Sniffed content wins over the declared type when it is recognised.
func (s *Service) validate(f *File) (string, error) {
	size := max(f.Size, int64(len(f.Content)))
	if size > s.maxSize {
		return "", sharedErrorf(ErrFileTooLarge, "File size exceeds maximum allowed size of %dMB", s.maxSize/(1024*1024))
	}

	mimeType := declaredType(f.MimeType)
	if kind, err := filetype.Match(f.Content); err == nil && kind != filetype.Unknown {
		mimeType = kind.MIME.Value
	}

	if !lo.Contains(AllowedMIMETypes, mimeType) {
		return "", sharedErrorf(ErrFileType, "File type %s is not allowed", mimeType)
	}
	return mimeType, nil
}

// objectKey builds <folder>/<field>-<unix ms>-<random><ext>.
func (s *Service) objectKey(f *File) string {
	field := unsafeName.ReplaceAllString(f.FieldName, "")
	if field == "" {
		field = "file"
	}

	ext := strings.ToLower(path.Ext(f.OriginalName))
	if !safeExt.MatchString(ext) {
		ext = ""
	}

	name := fmt.Sprintf("%s-%d-%s%s", field, s.now().UnixMilli(), uuid.NewString()[:8], ext)
	if s.folder == "" {
		return name
	}
	return s.folder + "/" + name
}

func declaredType(value string) string {
	mediaType, _, err := mime.ParseMediaType(value)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(value))
	}
	return mediaType
}

// Tags derives descriptive tags from a MIME type.
func Tags(mimeType string) []string {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return []string{"image"}
	case strings.HasPrefix(mimeType, "application/pdf"):
		return []string{"document", "pdf"}
	case strings.Contains(mimeType, "word"):
		return []string{"document", "word"}
	case strings.HasPrefix(mimeType, "text/"):
		return []string{"document", "text"}
	default:
		return []string{}
	}
}
