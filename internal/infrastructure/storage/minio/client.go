// Package minio reads SDF datasets from an S3-compatible object store and
// stores annotated outputs back.
package minio

import (
	"context"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/turtacn/AtomSense/internal/config"
	"github.com/turtacn/AtomSense/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/AtomSense/pkg/errors"
)

// objectAPI is the slice of the minio SDK the store uses. The production
// implementation delegates to *minio.Client; tests install a fake.
type objectAPI interface {
	BucketExists(ctx context.Context, bucket string) (bool, error)
	MakeBucket(ctx context.Context, bucket string, opts minio.MakeBucketOptions) error
	ListObjects(ctx context.Context, bucket string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
	GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error)
	PutObject(ctx context.Context, bucket, key string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	StatObject(ctx context.Context, bucket, key string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
}

type sdkAPI struct {
	c *minio.Client
}

func (a sdkAPI) BucketExists(ctx context.Context, bucket string) (bool, error) {
	return a.c.BucketExists(ctx, bucket)
}

func (a sdkAPI) MakeBucket(ctx context.Context, bucket string, opts minio.MakeBucketOptions) error {
	return a.c.MakeBucket(ctx, bucket, opts)
}

func (a sdkAPI) ListObjects(ctx context.Context, bucket string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	return a.c.ListObjects(ctx, bucket, opts)
}

func (a sdkAPI) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	return a.c.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
}

func (a sdkAPI) PutObject(ctx context.Context, bucket, key string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	return a.c.PutObject(ctx, bucket, key, r, size, opts)
}

func (a sdkAPI) StatObject(ctx context.Context, bucket, key string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	return a.c.StatObject(ctx, bucket, key, opts)
}

// Client holds the connection and the configured bucket.
type Client struct {
	api    objectAPI
	bucket string
	log    logging.Logger
}

// NewClient connects to the object store and makes sure the configured
// bucket exists.
func NewClient(ctx context.Context, cfg *config.MinIOConfig, log logging.Logger) (*Client, error) {
	if cfg == nil || cfg.Endpoint == "" {
		return nil, errors.InvalidParam("minio endpoint is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.InvalidParam("minio bucket is required")
	}
	if log == nil {
		log = logging.NewNopLogger()
	}

	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeObjectStore, "failed to create minio client")
	}

	c := &Client{api: sdkAPI{c: mc}, bucket: cfg.Bucket, log: log}
	if err := c.ensureBucket(ctx); err != nil {
		return nil, err
	}
	log.Info("minio connected",
		logging.String("endpoint", cfg.Endpoint),
		logging.String("bucket", cfg.Bucket))
	return c, nil
}

func newClient(api objectAPI, bucket string, log logging.Logger) *Client {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Client{api: api, bucket: bucket, log: log}
}

func (c *Client) ensureBucket(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	exists, err := c.api.BucketExists(ctx, c.bucket)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeObjectStore, "failed to check bucket")
	}
	if exists {
		return nil
	}
	if err := c.api.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{}); err != nil {
		return errors.Wrap(err, errors.ErrCodeObjectStore, "failed to create bucket")
	}
	c.log.Info("bucket created", logging.String("bucket", c.bucket))
	return nil
}

// Ping verifies the bucket is still reachable.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.api.BucketExists(ctx, c.bucket)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeObjectStore, "minio ping failed")
	}
	return nil
}
