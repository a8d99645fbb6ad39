package storage

import (
	"context"
	"io"
	"time"
)

// Package storage contains the blob gateway abstraction over S3-compatible
// object stores. Implementations must avoid local disk and rely on streaming
// I/O only; the record store stays authoritative for structure while this
// gateway is authoritative only for binary payload existence.

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1 and
// the implementation will buffer/chunk as supported by the backend.
// ContentType and Metadata are optional.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is a reusable, S3-compatible blob gateway interface. Keys carry a
// kind prefix (images/, videos/, documents/) assigned by the service layer, so
// a key alone identifies both the object and its kind.
type Storage interface {
	// Put uploads an object under the given key using the provided reader and options.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes an object by key.
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited URL that can be used to download the object without credentials.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
	// ObjectURL returns the stable public URL of an object; it does not check
	// that the object exists.
	ObjectURL(key string) string
}
