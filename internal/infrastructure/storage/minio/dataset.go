package minio

import (
	"bytes"
	"context"
	"io"
	"path"
	"strings"
	"time"

	miniogo "github.com/minio/minio-go/v7"

	"github.com/turtacn/AtomSense/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/AtomSense/pkg/errors"
)

// DatasetObject describes one stored SDF file.
type DatasetObject struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// DatasetStore lists and fetches SDF datasets and stores annotated outputs.
// Keys ending in .sdf or .mol count as dataset members; everything else in
// the bucket is ignored.
type DatasetStore struct {
	client *Client
}

// NewDatasetStore wraps a connected client.
func NewDatasetStore(c *Client) *DatasetStore {
	return &DatasetStore{client: c}
}

func isDatasetKey(key string) bool {
	switch strings.ToLower(path.Ext(key)) {
	case ".sdf", ".mol":
		return true
	}
	return false
}

// List enumerates dataset objects under the prefix, recursively.
func (s *DatasetStore) List(ctx context.Context, prefix string) ([]DatasetObject, error) {
	objects := s.client.api.ListObjects(ctx, s.client.bucket, miniogo.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})

	var out []DatasetObject
	for info := range objects {
		if info.Err != nil {
			return nil, errors.Wrap(info.Err, errors.ErrCodeObjectStore, "failed to list objects")
		}
		if !isDatasetKey(info.Key) {
			continue
		}
		out = append(out, DatasetObject{
			Key:          info.Key,
			Size:         info.Size,
			LastModified: info.LastModified,
		})
	}
	return out, nil
}

// Fetch opens one dataset object for reading. The caller closes it.
func (s *DatasetStore) Fetch(ctx context.Context, key string) (io.ReadCloser, error) {
	if key == "" {
		return nil, errors.InvalidParam("object key is required")
	}
	if _, err := s.client.api.StatObject(ctx, s.client.bucket, key, miniogo.StatObjectOptions{}); err != nil {
		resp := miniogo.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" {
			return nil, errors.NotFound("dataset object " + key)
		}
		return nil, errors.Wrap(err, errors.ErrCodeObjectStore, "failed to stat object")
	}
	rc, err := s.client.api.GetObject(ctx, s.client.bucket, key)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeObjectStore, "failed to fetch object")
	}
	return rc, nil
}

// StoreAnnotated writes an annotated SDF next to the source, under an
// "annotated/" prefix mirroring the original key.
func (s *DatasetStore) StoreAnnotated(ctx context.Context, sourceKey string, data []byte) (string, error) {
	if sourceKey == "" {
		return "", errors.InvalidParam("source key is required")
	}
	if len(data) == 0 {
		return "", errors.InvalidParam("annotated data is empty")
	}

	key := path.Join("annotated", sourceKey)
	_, err := s.client.api.PutObject(ctx, s.client.bucket, key,
		bytes.NewReader(data), int64(len(data)),
		miniogo.PutObjectOptions{ContentType: "chemical/x-mdl-sdfile"})
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeObjectStore, "failed to store annotated sdf")
	}

	s.client.log.Debug("annotated sdf stored",
		logging.String("key", key),
		logging.Int("bytes", len(data)))
	return key, nil
}
