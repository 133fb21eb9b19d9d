package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	app "github.com/turtacn/AtomSense/internal/application/perception"
	"github.com/turtacn/AtomSense/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/AtomSense/pkg/errors"
)

// occurrenceMapping declares types as keywords so exact-type searches stay
// cheap, and disables dynamic mapping surprises on the counts object.
const occurrenceMapping = `{
  "mappings": {
    "properties": {
      "result_id":       {"type": "keyword"},
      "content_hash":    {"type": "keyword"},
      "name":            {"type": "text"},
      "formula":         {"type": "keyword"},
      "mode":            {"type": "keyword"},
      "types":           {"type": "keyword"},
      "type_counts":     {"type": "object", "enabled": false},
      "atom_count":      {"type": "integer"},
      "unmatched_count": {"type": "integer"},
      "created_at":      {"type": "date"}
    }
  }
}`

// occurrenceDoc is what one classification looks like in the index.
type occurrenceDoc struct {
	ResultID       string         `json:"result_id"`
	ContentHash    string         `json:"content_hash"`
	Name           string         `json:"name"`
	Formula        string         `json:"formula"`
	Mode           string         `json:"mode"`
	Types          []string       `json:"types"`
	TypeCounts     map[string]int `json:"type_counts"`
	AtomCount      int            `json:"atom_count"`
	UnmatchedCount int            `json:"unmatched_count"`
	CreatedAt      time.Time      `json:"created_at"`
}

// OccurrenceIndexer writes one document per classification, identified by
// content hash and mode so re-running a molecule overwrites its document.
type OccurrenceIndexer struct {
	client *Client
}

var _ app.OccurrenceIndexer = (*OccurrenceIndexer)(nil)

// NewOccurrenceIndexer creates the index with its mapping when missing.
func NewOccurrenceIndexer(ctx context.Context, c *Client) (*OccurrenceIndexer, error) {
	if err := c.api.EnsureIndex(ctx, c.index, occurrenceMapping); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSearchIndex, "failed to ensure index")
	}
	return &OccurrenceIndexer{client: c}, nil
}

// IndexResult stores one classification's type occurrences.
func (ix *OccurrenceIndexer) IndexResult(ctx context.Context, r *app.Result) error {
	if r == nil {
		return errors.InvalidParam("result is required")
	}

	// Deduplicated type list; counts carry the multiplicity.
	counts := r.TypeCounts()
	types := make([]string, 0, len(counts))
	for name := range counts {
		types = append(types, name)
	}

	doc := occurrenceDoc{
		ResultID:       string(r.ID),
		ContentHash:    r.ContentHash,
		Name:           r.Name,
		Formula:        r.Formula,
		Mode:           r.Mode,
		Types:          types,
		TypeCounts:     counts,
		AtomCount:      len(r.Atoms),
		UnmatchedCount: r.UnmatchedCount,
		CreatedAt:      r.CreatedAt,
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to marshal occurrence document")
	}

	docID := r.ContentHash + ":" + r.Mode
	if err := ix.client.api.Index(ctx, ix.client.index, docID, bytes.NewReader(body)); err != nil {
		return errors.Wrap(err, errors.ErrCodeSearchIndex, "failed to index occurrence")
	}

	ix.client.log.Debug("occurrence indexed",
		logging.String("doc_id", docID),
		logging.Int("types", len(types)))
	return nil
}
