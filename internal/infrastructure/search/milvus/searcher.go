package milvus

import (
	"context"

	"github.com/milvus-io/milvus-sdk-go/v2/entity"

	"github.com/turtacn/AtomSense/internal/domain/fingerprint"
	"github.com/turtacn/AtomSense/pkg/errors"
)

// Hit is one nearest-neighbour match. Similarity is Tanimoto, in [0,1].
type Hit struct {
	ID         string  `json:"id"`
	Similarity float64 `json:"similarity"`
}

// Searcher answers nearest-neighbour queries against a VectorIndex's
// collection.
type Searcher struct {
	index *VectorIndex
	topK  int
}

// NewSearcher wraps an index. defaultTopK bounds queries that pass topK <= 0.
func NewSearcher(index *VectorIndex, defaultTopK int) *Searcher {
	if defaultTopK <= 0 {
		defaultTopK = 10
	}
	return &Searcher{index: index, topK: defaultTopK}
}

// Similar returns the topK stored fingerprints closest to the query, ranked
// by Tanimoto similarity.
func (s *Searcher) Similar(ctx context.Context, fp *fingerprint.Fingerprint, topK int) ([]Hit, error) {
	if fp == nil {
		return nil, errors.InvalidParam("query fingerprint is required")
	}
	if fp.Length != s.index.dim {
		return nil, errors.InvalidParam("query fingerprint width does not match the collection")
	}
	if topK <= 0 {
		topK = s.topK
	}

	sp, err := entity.NewIndexBinIvfFlatSearchParam(queryNprobe)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeVectorIndex, "failed to build search params")
	}

	results, err := s.index.client.api.Search(ctx, s.index.collection, nil, "",
		[]string{fieldID},
		[]entity.Vector{entity.BinaryVector(fp.ToBytes())},
		fieldVector, entity.JACCARD, topK, sp)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeVectorIndex, "vector search failed")
	}

	var hits []Hit
	for _, res := range results {
		ids, ok := res.IDs.(*entity.ColumnVarChar)
		if !ok {
			return nil, errors.New(errors.ErrCodeVectorIndex, "unexpected id column type")
		}
		for i, id := range ids.Data() {
			if i >= len(res.Scores) {
				break
			}
			// JACCARD scores are distances; Tanimoto = 1 - distance.
			hits = append(hits, Hit{ID: id, Similarity: 1 - float64(res.Scores[i])})
		}
	}
	return hits, nil
}
