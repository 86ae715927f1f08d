// Package storage abstracts the object store that holds user-uploaded
// images. Two drivers exist: S3-compatible object storage for production
// and a local filesystem disk for development.
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/foodnest/foodnest/config"
)

// Disk is the narrow object-store surface the application needs.
type Disk interface {
	// Put stores content under path and returns nil on success.
	Put(ctx context.Context, path string, content io.Reader) error
	// Delete removes the object at path. Missing objects are not an error.
	Delete(ctx context.Context, path string) error
	// URL returns the public URL for path.
	URL(path string) string
}

// New builds the configured disk (STORAGE_DISK: "s3" or "local").
func New() (Disk, error) {
	switch driver := config.StorageDefault(); driver {
	case "s3":
		return newS3Disk()
	case "local":
		return newLocalDisk()
	default:
		return nil, fmt.Errorf("storage: unsupported STORAGE_DISK %q (supported: local, s3)", driver)
	}
}
