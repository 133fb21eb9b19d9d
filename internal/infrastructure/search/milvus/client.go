// Package milvus keeps typed-fingerprint vectors in a Milvus collection and
// answers nearest-neighbour queries over them.
package milvus

import (
	"context"
	"time"

	"github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"

	"github.com/turtacn/AtomSense/internal/config"
	"github.com/turtacn/AtomSense/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/AtomSense/pkg/errors"
)

// milvusNewClient is swapped out by tests.
var milvusNewClient = client.NewClient

// vectorAPI is the slice of client.Client the index and searcher use.
type vectorAPI interface {
	HasCollection(ctx context.Context, collName string) (bool, error)
	CreateCollection(ctx context.Context, collSchema *entity.Schema, shardNum int32, opts ...client.CreateCollectionOption) error
	CreateIndex(ctx context.Context, collName string, fieldName string, idx entity.Index, async bool, opts ...client.IndexOption) error
	LoadCollection(ctx context.Context, collName string, async bool, opts ...client.LoadCollectionOption) error
	Upsert(ctx context.Context, collName string, partitionName string, columns ...entity.Column) (entity.Column, error)
	Delete(ctx context.Context, collName string, partitionName string, expr string) error
	Search(ctx context.Context, collName string, partitions []string, expr string,
		outputFields []string, vectors []entity.Vector, vectorField string,
		metricType entity.MetricType, topK int, sp entity.SearchParam,
		opts ...client.SearchQueryOptionFunc) ([]client.SearchResult, error)
	Close() error
}

// Client owns the Milvus connection.
type Client struct {
	api vectorAPI
	log logging.Logger
}

// NewClient dials the Milvus endpoint.
func NewClient(ctx context.Context, cfg *config.MilvusConfig, log logging.Logger) (*Client, error) {
	if cfg == nil || cfg.Addr == "" {
		return nil, errors.InvalidParam("milvus address is required")
	}
	if log == nil {
		log = logging.NewNopLogger()
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	mc, err := milvusNewClient(ctx, client.Config{
		Address: cfg.Addr,
		DBName:  cfg.DBName,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeVectorIndex, "failed to connect to milvus")
	}

	log.Info("milvus connected", logging.String("addr", cfg.Addr))
	return &Client{api: mc, log: log}, nil
}

func newClient(api vectorAPI, log logging.Logger) *Client {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Client{api: api, log: log}
}

// Close releases the connection.
func (c *Client) Close() error {
	return c.api.Close()
}
