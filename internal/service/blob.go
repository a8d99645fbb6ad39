package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"

	"mediavault/internal/model"
	"mediavault/internal/storage"
)

// putBlob streams a payload to the blob gateway under a prefix-scoped,
// UUID-generated key and returns the stored reference. The original filename
// is only used for its extension and is kept as object metadata.
func putBlob(ctx context.Context, store storage.Storage, prefix string, r io.Reader, originalFilename, contentType string, size int64) (model.BlobRef, error) {
	if r == nil {
		return model.BlobRef{}, ErrReaderNil
	}
	ext := filepath.Ext(originalFilename)
	key := filepath.ToSlash(filepath.Join(prefix, uuid.New().String()+ext))

	info, err := store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	})
	if err != nil {
		return model.BlobRef{}, fmt.Errorf("upload to storage: %w", err)
	}
	return model.BlobRef{PublicID: info.Key, URL: store.ObjectURL(info.Key)}, nil
}

// dropBlob is the compensating action after a failed record insert. The
// original error stays primary; a failed cleanup is attached to it.
func dropBlob(ctx context.Context, store storage.Storage, key string, cause error) error {
	if delErr := store.Delete(ctx, key); delErr != nil {
		return fmt.Errorf("db save failed: %v; rollback delete failed: %v", cause, delErr)
	}
	return fmt.Errorf("db save failed: %w", cause)
}
