package catalog

import (
	"context"
	"time"
)

// ObjectStorageService abstracts the object storage backend used for
// product images. Implementations live in infrastructure/storage.
type ObjectStorageService interface {
	// GenerateUploadURL returns a presigned URL the client can PUT the
	// object to, along with its expiry time
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL returns a presigned URL for reading the object
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject removes the object from storage
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists reports whether the object has been uploaded
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}
