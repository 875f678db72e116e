// AngelaMos | 2026
// storage.go

package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/vipinpawar/jeopardy-app/internal/config"
	"github.com/vipinpawar/jeopardy-app/internal/core"
)

var ErrObjectNotFound = fmt.Errorf("object: %w", core.ErrNotFound)

// Object is an opened stored blob. Callers must close Body.
type Object struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

// ObjectStore is implemented by each blob backend.
type ObjectStore interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (*Object, error)
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Bucket() string
	Close() error
}

// New opens the backend selected by cfg.Backend. It returns nil, nil when
// storage is disabled so callers can treat uploads as unavailable.
func New(ctx context.Context, cfg config.StorageConfig) (ObjectStore, error) {
	var (
		store ObjectStore
		err   error
	)

	switch cfg.Backend {
	case config.StorageNone, "":
		return nil, nil
	case config.StorageMinio:
		store, err = NewMinioStore(cfg.Minio)
	case config.StorageGCS:
		store, err = NewGCSStore(ctx, cfg.GCS)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.Backend, err)
	}

	if err := store.EnsureBucket(ctx); err != nil {
		_ = store.Close() //nolint:errcheck // cleanup on init failure
		return nil, fmt.Errorf("ensure bucket %s: %w", store.Bucket(), err)
	}

	return store, nil
}

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ImageExtension reports the file extension for an accepted image type.
func ImageExtension(contentType string) (string, bool) {
	ext, ok := imageExtensions[strings.ToLower(strings.TrimSpace(contentType))]
	return ext, ok
}

// NewKey builds a collision-free object key such as "items/<uuid>.png".
func NewKey(prefix, ext string) string {
	return path.Join(prefix, uuid.NewString()+ext)
}

// ValidKey rejects keys that could escape the bucket namespace.
func ValidKey(key string) bool {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return false
	}
	for _, part := range strings.Split(key, "/") {
		if part == "" || part == "." || part == ".." {
			return false
		}
	}
	return true
}
