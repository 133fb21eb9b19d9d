// Package opensearch indexes type occurrences so results are searchable by
// assigned atom type.
package opensearch

import (
	"context"
	"crypto/tls"
	"io"
	"net/http"
	"strings"

	"github.com/opensearch-project/opensearch-go/v3"
	"github.com/opensearch-project/opensearch-go/v3/opensearchapi"

	"github.com/turtacn/AtomSense/internal/config"
	"github.com/turtacn/AtomSense/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/AtomSense/pkg/errors"
)

// documentAPI is the slice of the OpenSearch client the indexer and searcher
// use. Tests install a fake; production delegates to the typed v3 client.
type documentAPI interface {
	EnsureIndex(ctx context.Context, index, mapping string) error
	Index(ctx context.Context, index, docID string, body io.Reader) error
	Search(ctx context.Context, index string, query io.Reader) (*opensearchapi.SearchResp, error)
	Ping(ctx context.Context) error
}

type typedAPI struct {
	c *opensearchapi.Client
}

func (a typedAPI) EnsureIndex(ctx context.Context, index, mapping string) error {
	_, err := a.c.Indices.Create(ctx, opensearchapi.IndicesCreateReq{
		Index: index,
		Body:  strings.NewReader(mapping),
	})
	if err != nil && strings.Contains(err.Error(), "resource_already_exists_exception") {
		return nil
	}
	return err
}

func (a typedAPI) Index(ctx context.Context, index, docID string, body io.Reader) error {
	_, err := a.c.Index(ctx, opensearchapi.IndexReq{
		Index:      index,
		DocumentID: docID,
		Body:       body,
	})
	return err
}

func (a typedAPI) Search(ctx context.Context, index string, query io.Reader) (*opensearchapi.SearchResp, error) {
	return a.c.Search(ctx, &opensearchapi.SearchReq{
		Indices: []string{index},
		Body:    query,
	})
}

func (a typedAPI) Ping(ctx context.Context) error {
	_, err := a.c.Ping(ctx, nil)
	return err
}

// Client owns the connection and the configured index name.
type Client struct {
	api   documentAPI
	index string
	log   logging.Logger
}

// NewClient dials the cluster and verifies it answers.
func NewClient(ctx context.Context, cfg *config.OpenSearchConfig, log logging.Logger) (*Client, error) {
	if cfg == nil || len(cfg.Addresses) == 0 {
		return nil, errors.InvalidParam("opensearch addresses are required")
	}
	if cfg.Index == "" {
		return nil, errors.InvalidParam("opensearch index name is required")
	}
	if log == nil {
		log = logging.NewNopLogger()
	}

	transport := &http.Transport{}
	if cfg.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	osc, err := opensearchapi.NewClient(opensearchapi.Config{
		Client: opensearch.Config{
			Addresses: cfg.Addresses,
			Username:  cfg.User,
			Password:  cfg.Password,
			Transport: transport,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSearchIndex, "failed to create opensearch client")
	}

	c := &Client{api: typedAPI{c: osc}, index: cfg.Index, log: log}
	if err := c.Ping(ctx); err != nil {
		return nil, err
	}
	log.Info("opensearch connected", logging.String("index", cfg.Index))
	return c, nil
}

func newClient(api documentAPI, index string, log logging.Logger) *Client {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Client{api: api, index: index, log: log}
}

// Ping verifies the cluster answers.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.api.Ping(ctx); err != nil {
		return errors.Wrap(err, errors.ErrCodeSearchIndex, "opensearch ping failed")
	}
	return nil
}
