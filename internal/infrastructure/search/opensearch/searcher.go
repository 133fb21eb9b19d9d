package opensearch

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/turtacn/AtomSense/pkg/errors"
)

// Occurrence is one search hit: a stored classification that contains the
// queried atom type.
type Occurrence struct {
	ResultID       string         `json:"result_id"`
	ContentHash    string         `json:"content_hash"`
	Name           string         `json:"name"`
	Formula        string         `json:"formula"`
	Mode           string         `json:"mode"`
	TypeCounts     map[string]int `json:"type_counts"`
	UnmatchedCount int            `json:"unmatched_count"`
}

// Searcher answers "which molecules contain this atom type" queries.
type Searcher struct {
	client *Client
}

// NewSearcher wraps a connected client.
func NewSearcher(c *Client) *Searcher {
	return &Searcher{client: c}
}

const byTypeQuery = `{
  "size": %d,
  "query": {"term": {"types": %q}},
  "sort": [{"created_at": {"order": "desc"}}]
}`

// ByType returns up to limit classifications that assigned the named type,
// newest first.
func (s *Searcher) ByType(ctx context.Context, typeName string, limit int) ([]Occurrence, error) {
	if typeName == "" {
		return nil, errors.InvalidParam("type name is required")
	}
	if limit <= 0 {
		limit = 20
	}

	query := fmt.Sprintf(byTypeQuery, limit, typeName)
	resp, err := s.client.api.Search(ctx, s.client.index, strings.NewReader(query))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSearchIndex, "occurrence search failed")
	}

	out := make([]Occurrence, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		var occ Occurrence
		if err := json.Unmarshal(hit.Source, &occ); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to decode occurrence")
		}
		out = append(out, occ)
	}
	return out, nil
}
