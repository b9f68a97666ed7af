package upload

import (
	"context"
	"fmt"

	appconfig "github.com/fpt-software/website-api/internal/config"
)

// NewStorage builds the configured storage driver.
func NewStorage(ctx context.Context, cfg appconfig.UploadConfig) (Storage, error) {
	switch cfg.Driver {
	case appconfig.StorageS3:
		client, err := NewS3Client(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		return NewS3Storage(client, cfg.S3.Bucket, cfg.S3.PublicURL), nil
	case appconfig.StorageLocal, "":
		return NewLocalStorage(cfg.Dir, cfg.PublicPrefix)
	default:
		return nil, fmt.Errorf("unsupported upload driver %q", cfg.Driver)
	}
}
