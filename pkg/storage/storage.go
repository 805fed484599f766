// Package storage defines where exported list snapshots are written: the local
// filesystem or S3-compatible object storage (AWS S3, Aliyun OSS, MinIO).
package storage

import (
	"context"
	"io"
)

// ProxyPathPrefix is the console route that serves stored objects.
const ProxyPathPrefix = "/console/snapshots/"

// Storage defines the interface for object storage operations.
type Storage interface {
	// PutObject uploads an object.
	// key: object key such as "snapshots/20250101T000000Z-<id>.json"
	PutObject(ctx context.Context, key string, data io.Reader, contentType string, size int64) error

	// GetObject retrieves an object.
	// Returns a ReadCloser that must be closed by the caller.
	GetObject(ctx context.Context, key string) (io.ReadCloser, error)

	// DeleteObject removes an object.
	DeleteObject(ctx context.Context, key string) error

	// ObjectExists checks if an object exists.
	ObjectExists(ctx context.Context, key string) (bool, error)

	// GenerateURL creates an access URL for the object.
	// Local storage and S3 proxy mode return ProxyPathPrefix + key,
	// S3 presigned mode returns a presigned URL.
	GenerateURL(ctx context.Context, key string) (string, error)

	// Type returns the storage type identifier ("local" or "s3").
	Type() string
}
