// Package repositories implements the application's persistence contracts
// over postgres.
package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	app "github.com/turtacn/AtomSense/internal/application/perception"
	"github.com/turtacn/AtomSense/internal/infrastructure/database/postgres"
	"github.com/turtacn/AtomSense/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/AtomSense/pkg/errors"
	"github.com/turtacn/AtomSense/pkg/types/common"
)

// querier is the slice of pgxpool the repository uses; tests substitute a
// mock.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ResultRepo stores perception results, one row per (content hash, mode).
type ResultRepo struct {
	db  querier
	log logging.Logger
}

// NewResultRepo builds the repository over a connection pool.
func NewResultRepo(pool *postgres.Pool, log logging.Logger) *ResultRepo {
	return newResultRepo(pool.Raw(), log)
}

func newResultRepo(db querier, log logging.Logger) *ResultRepo {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &ResultRepo{db: db, log: log}
}

const saveResultSQL = `
INSERT INTO perception_results
    (id, molecule_id, name, formula, mode, content_hash, atoms, unmatched_count, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (content_hash, mode) DO UPDATE SET
    molecule_id = EXCLUDED.molecule_id,
    name        = EXCLUDED.name,
    formula     = EXCLUDED.formula,
    atoms       = EXCLUDED.atoms,
    unmatched_count = EXCLUDED.unmatched_count`

// Save upserts the result.  Re-classifying the same structure refreshes the
// stored row instead of accumulating duplicates.
func (r *ResultRepo) Save(ctx context.Context, res *app.Result) error {
	if res == nil {
		return errors.InvalidParam("cannot save a nil result")
	}
	atoms, err := json.Marshal(res.Atoms)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "encode assignments")
	}
	createdAt := res.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = r.db.Exec(ctx, saveResultSQL,
		string(res.ID), string(res.MoleculeID), res.Name, res.Formula,
		res.Mode, res.ContentHash, atoms, res.UnmatchedCount, createdAt)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabase, "save perception result")
	}
	r.log.Debug("perception result saved",
		logging.String("id", string(res.ID)),
		logging.String("hash", res.ContentHash))
	return nil
}

const selectResultSQL = `
SELECT id, molecule_id, name, formula, mode, content_hash, atoms, unmatched_count, created_at
FROM perception_results`

// FindByID fetches one result by its identity.
func (r *ResultRepo) FindByID(ctx context.Context, id string) (*app.Result, error) {
	row := r.db.QueryRow(ctx, selectResultSQL+" WHERE id = $1", id)
	return scanResult(row)
}

// FindByHash fetches the stored result for a (content hash, mode) pair.
func (r *ResultRepo) FindByHash(ctx context.Context, hash, mode string) (*app.Result, error) {
	row := r.db.QueryRow(ctx, selectResultSQL+" WHERE content_hash = $1 AND mode = $2", hash, mode)
	return scanResult(row)
}

// ListRecent returns the newest results, newest first.
func (r *ResultRepo) ListRecent(ctx context.Context, limit int) ([]*app.Result, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.Query(ctx, selectResultSQL+" ORDER BY created_at DESC LIMIT $1", limit)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabase, "list perception results")
	}
	defer rows.Close()

	var results []*app.Result
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabase, "iterate perception results")
	}
	return results, nil
}

func scanResult(row pgx.Row) (*app.Result, error) {
	var (
		res       app.Result
		id, molID string
		atoms     []byte
	)
	err := row.Scan(&id, &molID, &res.Name, &res.Formula, &res.Mode,
		&res.ContentHash, &atoms, &res.UnmatchedCount, &res.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, errors.NotFound("perception result not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabase, "scan perception result")
	}
	res.ID = common.ID(id)
	res.MoleculeID = common.ID(molID)
	if err := json.Unmarshal(atoms, &res.Atoms); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "decode assignments")
	}
	return &res, nil
}
