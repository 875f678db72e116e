// AngelaMos | 2026
// gcs.go

package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/vipinpawar/jeopardy-app/internal/config"
)

type GCSStore struct {
	client    *storage.Client
	bucket    string
	projectID string
}

func NewGCSStore(ctx context.Context, cfg config.GCSConfig) (*GCSStore, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, errors.New("gcs bucket is required")
	}

	var opts []option.ClientOption
	if strings.TrimSpace(cfg.CredentialsFile) != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &GCSStore{
		client:    client,
		bucket:    cfg.Bucket,
		projectID: cfg.ProjectID,
	}, nil
}

func (g *GCSStore) EnsureBucket(ctx context.Context) error {
	_, err := g.client.Bucket(g.bucket).Attrs(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrBucketNotExist) {
		return err
	}
	if strings.TrimSpace(g.projectID) == "" {
		return errors.New("gcs project id is required to create bucket")
	}
	return g.client.Bucket(g.bucket).Create(ctx, g.projectID, nil)
}

func (g *GCSStore) Put(
	ctx context.Context,
	key string,
	r io.Reader,
	_ int64,
	contentType string,
) error {
	writer := g.client.Bucket(g.bucket).Object(key).NewWriter(ctx)
	if strings.TrimSpace(contentType) != "" {
		writer.ContentType = contentType
	}
	if _, err := io.Copy(writer, r); err != nil {
		_ = writer.Close() //nolint:errcheck // already failing
		return fmt.Errorf("put %s: %w", key, err)
	}
	return writer.Close()
}

func (g *GCSStore) Get(ctx context.Context, key string) (*Object, error) {
	reader, err := g.client.Bucket(g.bucket).Object(key).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, ErrObjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}

	return &Object{
		Body:        reader,
		ContentType: reader.Attrs.ContentType,
		Size:        reader.Attrs.Size,
	}, nil
}

func (g *GCSStore) Delete(ctx context.Context, key string) error {
	err := g.client.Bucket(g.bucket).Object(key).Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil
	}
	return err
}

func (g *GCSStore) Ping(ctx context.Context) error {
	_, err := g.client.Bucket(g.bucket).Attrs(ctx)
	return err
}

func (g *GCSStore) Bucket() string {
	return g.bucket
}

func (g *GCSStore) Close() error {
	return g.client.Close()
}
