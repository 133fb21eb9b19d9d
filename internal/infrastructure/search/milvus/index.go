package milvus

import (
	"context"
	"fmt"

	"github.com/milvus-io/milvus-sdk-go/v2/entity"

	app "github.com/turtacn/AtomSense/internal/application/perception"
	"github.com/turtacn/AtomSense/internal/domain/fingerprint"
	"github.com/turtacn/AtomSense/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/AtomSense/pkg/errors"
)

const (
	fieldID     = "id"
	fieldVector = "fingerprint"

	// nlist/nprobe tuned for collections in the low millions.
	indexNlist  = 1024
	queryNprobe = 16
)

// VectorIndex stores packed typed fingerprints as Milvus binary vectors.
// Tanimoto similarity over bit vectors is 1 - Jaccard distance, which the
// JACCARD metric gives us natively.
type VectorIndex struct {
	client     *Client
	collection string
	dim        int
	log        logging.Logger
}

var _ app.VectorIndexer = (*VectorIndex)(nil)

// NewVectorIndex binds the index to a collection and makes sure it exists,
// is indexed, and is loaded. dim is the fingerprint bit width; every stored
// vector must match it.
func NewVectorIndex(ctx context.Context, c *Client, collection string, dim int, log logging.Logger) (*VectorIndex, error) {
	if collection == "" {
		return nil, errors.InvalidParam("collection name is required")
	}
	if dim <= 0 || dim%8 != 0 {
		return nil, errors.InvalidParam("fingerprint bit width must be a positive multiple of 8")
	}
	if log == nil {
		log = logging.NewNopLogger()
	}

	idx := &VectorIndex{client: c, collection: collection, dim: dim, log: log}
	if err := idx.ensureCollection(ctx); err != nil {
		return nil, err
	}
	return idx, nil
}

func (v *VectorIndex) ensureCollection(ctx context.Context) error {
	exists, err := v.client.api.HasCollection(ctx, v.collection)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeVectorIndex, "failed to check collection")
	}
	if !exists {
		schema := entity.NewSchema().
			WithName(v.collection).
			WithDescription("typed molecular fingerprints").
			WithField(entity.NewField().
				WithName(fieldID).
				WithDataType(entity.FieldTypeVarChar).
				WithMaxLength(64).
				WithIsPrimaryKey(true)).
			WithField(entity.NewField().
				WithName(fieldVector).
				WithDataType(entity.FieldTypeBinaryVector).
				WithDim(int64(v.dim)))
		if err := v.client.api.CreateCollection(ctx, schema, 1); err != nil {
			return errors.Wrap(err, errors.ErrCodeVectorIndex, "failed to create collection")
		}

		binIdx, err := entity.NewIndexBinIvfFlat(entity.JACCARD, indexNlist)
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeVectorIndex, "failed to build index descriptor")
		}
		if err := v.client.api.CreateIndex(ctx, v.collection, fieldVector, binIdx, false); err != nil {
			return errors.Wrap(err, errors.ErrCodeVectorIndex, "failed to create index")
		}
		v.log.Info("fingerprint collection created",
			logging.String("collection", v.collection),
			logging.Int("dim", v.dim))
	}

	if err := v.client.api.LoadCollection(ctx, v.collection, false); err != nil {
		return errors.Wrap(err, errors.ErrCodeVectorIndex, "failed to load collection")
	}
	return nil
}

// UpsertFingerprint stores one fingerprint under the result identity,
// replacing any previous vector for it.
func (v *VectorIndex) UpsertFingerprint(ctx context.Context, id string, fp *fingerprint.Fingerprint) error {
	if id == "" {
		return errors.InvalidParam("fingerprint id is required")
	}
	if fp == nil {
		return errors.InvalidParam("fingerprint is required")
	}
	if fp.Length != v.dim {
		return errors.InvalidParam(fmt.Sprintf(
			"fingerprint width %d does not match collection width %d", fp.Length, v.dim))
	}

	_, err := v.client.api.Upsert(ctx, v.collection, "",
		entity.NewColumnVarChar(fieldID, []string{id}),
		entity.NewColumnBinaryVector(fieldVector, v.dim, [][]byte{fp.ToBytes()}),
	)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeVectorIndex, "failed to upsert fingerprint")
	}

	v.log.Debug("fingerprint upserted", logging.String("id", id))
	return nil
}

// Delete removes one fingerprint by identity.
func (v *VectorIndex) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.InvalidParam("fingerprint id is required")
	}
	expr := fmt.Sprintf(`%s == "%s"`, fieldID, id)
	if err := v.client.api.Delete(ctx, v.collection, "", expr); err != nil {
		return errors.Wrap(err, errors.ErrCodeVectorIndex, "failed to delete fingerprint")
	}
	return nil
}
