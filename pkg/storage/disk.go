// Package storage writes exported plan snapshots to a local directory or an
// S3-compatible bucket (AWS S3, MinIO, R2).
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/gymstack/gymcore/config"
)

// ErrNotExist is returned by Get for a missing path.
var ErrNotExist = errors.New("storage: file does not exist")

// Disk is a flat key/value file store.
type Disk interface {
	// Put writes content to path, replacing any existing file.
	Put(ctx context.Context, path string, content []byte) error
	Get(ctx context.Context, path string) ([]byte, error)
	Exists(ctx context.Context, path string) (bool, error)
	// Delete removes path. A missing path is not an error.
	Delete(ctx context.Context, path string) error
	// URL is the public address of path.
	URL(path string) string
}

// Open returns the disk named by STORAGE_DISK.
func Open(ctx context.Context) (Disk, error) {
	switch name := config.StorageDefault(); name {
	case "local":
		return NewLocalDisk(config.StorageLocalRoot(), config.StorageURL())
	case "s3":
		return NewS3Disk(ctx, S3Options{
			Bucket:   config.StorageS3Bucket(),
			Region:   config.StorageS3Region(),
			Key:      config.StorageS3Key(),
			Secret:   config.StorageS3Secret(),
			Endpoint: config.StorageS3Endpoint(),
			BaseURL:  config.StorageS3URL(),
		})
	default:
		return nil, fmt.Errorf("storage: unsupported STORAGE_DISK %q (supported: local, s3)", name)
	}
}
