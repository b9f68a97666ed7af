package upload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage keeps files under a directory served at a URL prefix,
// e.g. uploads/announcements/x.png <-> /uploads/announcements/x.png.
type LocalStorage struct {
	dir          string
	publicPrefix string
}

func NewLocalStorage(dir, publicPrefix string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &LocalStorage{
		dir:          filepath.Clean(dir),
		publicPrefix: "/" + strings.Trim(publicPrefix, "/") + "/",
	}, nil
}

func (s *LocalStorage) Save(_ context.Context, key string, content []byte, _ string) (string, string, error) {
	target := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", "", fmt.Errorf("create dir: %w", err)
	}
	if err := os.WriteFile(target, content, 0o644); err != nil {
		return "", "", fmt.Errorf("write %s: %w", target, err)
	}
	return target, s.publicPrefix + key, nil
}

func (s *LocalStorage) Owns(fileURL string) bool {
	_, ok := s.pathFor(fileURL)
	return ok
}

func (s *LocalStorage) Delete(_ context.Context, fileURL string) error {
	target, ok := s.pathFor(fileURL)
	if !ok {
		return fmt.Errorf("url %q is not a local upload", fileURL)
	}
	return os.Remove(target)
}

// pathFor maps a public URL back to a file inside dir.
func (s *LocalStorage) pathFor(fileURL string) (string, bool) {
	rel, ok := strings.CutPrefix(fileURL, s.publicPrefix)
	if !ok || rel == "" {
		return "", false
	}

	target := filepath.Join(s.dir, filepath.FromSlash(rel))
	if !strings.HasPrefix(target, s.dir+string(filepath.Separator)) {
		return "", false
	}
	return target, true
}
