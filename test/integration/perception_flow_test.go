//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app "github.com/turtacn/AtomSense/internal/application/perception"
	"github.com/turtacn/AtomSense/internal/domain/perception"
	pgconn "github.com/turtacn/AtomSense/internal/infrastructure/database/postgres"
	pgrepo "github.com/turtacn/AtomSense/internal/infrastructure/database/postgres/repositories"
	redisdb "github.com/turtacn/AtomSense/internal/infrastructure/database/redis"
	"github.com/turtacn/AtomSense/pkg/errors"
)

func TestPerceptionFlow_PostgresStore(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	ctx := context.Background()
	cfg := startPostgres(t)

	require.NoError(t, pgconn.Migrate(cfg, nil))

	pool, err := pgconn.NewPool(ctx, cfg, nil)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	store := pgrepo.NewResultRepo(pool, nil)
	svc := app.NewService(nil, app.WithResultStore(store))

	res, err := svc.Perceive(ctx, methanol(t), perception.ModePermissive)
	require.NoError(t, err)
	require.Len(t, res.Atoms, 2)
	assert.Equal(t, "C.sp3", res.Atoms[0].Type)
	assert.Equal(t, "O.sp3", res.Atoms[1].Type)

	// The synchronous fan-out persisted the result before Perceive
	// returned.
	got, err := store.FindByID(ctx, string(res.ID))
	require.NoError(t, err)
	assert.Equal(t, res.ContentHash, got.ContentHash)
	assert.Equal(t, res.TypeNames(), got.TypeNames())

	byHash, err := store.FindByHash(ctx, res.ContentHash, res.Mode)
	require.NoError(t, err)
	assert.Equal(t, res.ID, byHash.ID)

	recent, err := store.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)

	_, err = store.FindByID(ctx, "00000000-0000-0000-0000-000000000000")
	assert.True(t, errors.IsNotFound(err))
}

func TestPerceptionFlow_RedisCacheShortCircuits(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	ctx := context.Background()
	cfg := startRedis(t)

	client, err := redisdb.NewClient(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	store := &countingStore{}
	svc := app.NewService(nil,
		app.WithResultStore(store),
		app.WithResultCache(redisdb.NewCache(client, nil)),
		app.WithCacheTTL(time.Minute),
	)

	first, err := svc.Perceive(ctx, methanol(t), perception.ModePermissive)
	require.NoError(t, err)

	second, err := svc.Perceive(ctx, methanol(t), perception.ModePermissive)
	require.NoError(t, err)

	// Identical content in the same mode is answered from the cache, so
	// the store sees exactly one save and the result identity survives.
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, store.saves)

	// A different mode is a different cache entry.
	_, err = svc.Perceive(ctx, methanol(t), perception.ModeExplicitHydrogens)
	require.NoError(t, err)
	assert.Equal(t, 2, store.saves)
}

// countingStore records saves without a database.
type countingStore struct {
	saves int
}

func (s *countingStore) Save(_ context.Context, _ *app.Result) error {
	s.saves++
	return nil
}

func (s *countingStore) FindByID(_ context.Context, _ string) (*app.Result, error) {
	return nil, errors.NotFound("not stored")
}

func (s *countingStore) FindByHash(_ context.Context, _, _ string) (*app.Result, error) {
	return nil, errors.NotFound("not stored")
}

func (s *countingStore) ListRecent(_ context.Context, _ int) ([]*app.Result, error) {
	return nil, nil
}
