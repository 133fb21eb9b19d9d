package perception

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/AtomSense/internal/domain/fingerprint"
	"github.com/turtacn/AtomSense/internal/domain/molecule"
	"github.com/turtacn/AtomSense/internal/domain/perception"
	"github.com/turtacn/AtomSense/internal/testutil"
	"github.com/turtacn/AtomSense/pkg/errors"
	"github.com/turtacn/AtomSense/pkg/types/chem"
)

// methanol builds CH3OH with implicit hydrogens stated per heavy atom.
func methanol(t *testing.T) *molecule.Molecule {
	t.Helper()
	mol := molecule.New()
	mol.Title = "methanol"

	c, err := molecule.NewAtom("C")
	require.NoError(t, err)
	mol.AddAtom(c.SetImplicitHydrogens(3))

	o, err := molecule.NewAtom("O")
	require.NoError(t, err)
	mol.AddAtom(o.SetImplicitHydrogens(1))

	_, err = mol.AddBond(c, o, chem.OrderSingle)
	require.NoError(t, err)
	return mol
}

type fakeStore struct {
	saved []*Result
	err   error
}

func (f *fakeStore) Save(_ context.Context, r *Result) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, r)
	return nil
}

func (f *fakeStore) FindByID(context.Context, string) (*Result, error) {
	return nil, errors.NotFound("result")
}

func (f *fakeStore) FindByHash(context.Context, string, string) (*Result, error) {
	return nil, errors.NotFound("result")
}

func (f *fakeStore) ListRecent(context.Context, int) ([]*Result, error) { return nil, nil }

type fakeMirror struct {
	calls int
	err   error
}

func (f *fakeMirror) MirrorTypedGraph(context.Context, *molecule.Molecule, *Result) error {
	f.calls++
	return f.err
}

type fakePublisher struct {
	published []*Result
}

func (f *fakePublisher) PublishPerceptionCompleted(_ context.Context, r *Result) error {
	f.published = append(f.published, r)
	return nil
}

type fakeIndexer struct {
	indexed []*Result
}

func (f *fakeIndexer) IndexResult(_ context.Context, r *Result) error {
	f.indexed = append(f.indexed, r)
	return nil
}

type fakeVectors struct {
	ids []string
	fps []*fingerprint.Fingerprint
}

func (f *fakeVectors) UpsertFingerprint(_ context.Context, id string, fp *fingerprint.Fingerprint) error {
	f.ids = append(f.ids, id)
	f.fps = append(f.fps, fp)
	return nil
}

// memoryCache is an in-process stand-in for the redis adapter with the same
// read-through contract.
type memoryCache struct {
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (m *memoryCache) GetOrSet(ctx context.Context, key string, dest interface{}, _ time.Duration,
	loader func(ctx context.Context) (interface{}, error)) (bool, error) {
	if data, ok := m.entries[key]; ok {
		return true, json.Unmarshal(data, dest)
	}
	val, err := loader(ctx)
	if err != nil {
		return false, err
	}
	data, err := json.Marshal(val)
	if err != nil {
		return false, err
	}
	m.entries[key] = data
	return false, json.Unmarshal(data, dest)
}

func TestService_PerceiveAssignsTypes(t *testing.T) {
	svc := NewService(nil)

	res, err := svc.Perceive(context.Background(), methanol(t), perception.ModePermissive)
	require.NoError(t, err)

	require.Len(t, res.Atoms, 2)
	assert.Equal(t, "C.sp3", res.Atoms[0].Type)
	assert.Equal(t, "O.sp3", res.Atoms[1].Type)
	assert.True(t, res.Atoms[0].Matched)
	assert.Equal(t, 0, res.UnmatchedCount)
	assert.Equal(t, "permissive", res.Mode)
	assert.Equal(t, "methanol", res.Name)
	assert.NotEmpty(t, res.ContentHash)
	assert.NotEmpty(t, res.ID)
}

func TestService_PerceiveCountsUnmatched(t *testing.T) {
	mol := molecule.New()
	mol.AddAtom(molecule.NewPseudoAtom("R1"))

	svc := NewService(nil)
	res, err := svc.Perceive(context.Background(), mol, perception.ModePermissive)
	require.NoError(t, err)

	require.Len(t, res.Atoms, 1)
	assert.Equal(t, "X", res.Atoms[0].Type)
	assert.False(t, res.Atoms[0].Matched)
	assert.Equal(t, 1, res.UnmatchedCount)
}

func TestService_PerceiveValidatesInput(t *testing.T) {
	svc := NewService(nil)

	_, err := svc.Perceive(context.Background(), nil, perception.ModePermissive)
	assert.True(t, errors.IsCode(err, errors.ErrCodeBadRequest))

	_, err = svc.Perceive(context.Background(), molecule.New(), perception.ModePermissive)
	assert.True(t, errors.IsCode(err, errors.ErrCodeMoleculeInvalid))

	_, err = svc.Perceive(context.Background(), methanol(t), perception.Mode(99))
	assert.Error(t, err)
}

func TestService_FanOutReachesEverySink(t *testing.T) {
	store := &fakeStore{}
	mirror := &fakeMirror{}
	pub := &fakePublisher{}
	ix := &fakeIndexer{}
	vec := &fakeVectors{}

	svc := NewService(nil,
		WithResultStore(store),
		WithGraphMirror(mirror),
		WithEventPublisher(pub),
		WithOccurrenceIndexer(ix),
		WithVectorIndexer(vec),
	)

	res, err := svc.Perceive(context.Background(), methanol(t), perception.ModePermissive)
	require.NoError(t, err)

	require.Len(t, store.saved, 1)
	assert.Equal(t, res.ContentHash, store.saved[0].ContentHash)
	assert.Equal(t, 1, mirror.calls)
	require.Len(t, pub.published, 1)
	require.Len(t, ix.indexed, 1)
	require.Len(t, vec.ids, 1)
	assert.Equal(t, string(res.ID), vec.ids[0])
	assert.Equal(t, fingerprint.DefaultLength, vec.fps[0].Length)
}

func TestService_SinkFailureDoesNotAbort(t *testing.T) {
	store := &fakeStore{err: errors.New(errors.ErrCodeDatabase, "store down")}
	mirror := &fakeMirror{err: errors.New(errors.ErrCodeDatabase, "graph down")}
	log := testutil.NewMockLogger()

	svc := NewService(nil, WithResultStore(store), WithGraphMirror(mirror), WithLogger(log))

	res, err := svc.Perceive(context.Background(), methanol(t), perception.ModePermissive)
	require.NoError(t, err)
	assert.Equal(t, 0, res.UnmatchedCount)

	// Each failed sink is logged at warn, once.
	var warns int
	for _, m := range log.GetMessages() {
		if m.Level == "warn" {
			warns++
		}
	}
	assert.Equal(t, 2, warns)
}

func TestService_CacheSkipsRecompute(t *testing.T) {
	store := &fakeStore{}
	cache := newMemoryCache()
	svc := NewService(nil, WithResultStore(store), WithResultCache(cache))

	first, err := svc.Perceive(context.Background(), methanol(t), perception.ModePermissive)
	require.NoError(t, err)
	require.Len(t, store.saved, 1)

	// Same structure, different instance: served from cache, no new save.
	second, err := svc.Perceive(context.Background(), methanol(t), perception.ModePermissive)
	require.NoError(t, err)
	assert.Equal(t, first.ContentHash, second.ContentHash)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, store.saved, 1)
}

func TestService_ModesAreCachedSeparately(t *testing.T) {
	cache := newMemoryCache()
	svc := NewService(nil, WithResultCache(cache))

	_, err := svc.Perceive(context.Background(), methanol(t), perception.ModePermissive)
	require.NoError(t, err)
	_, err = svc.Perceive(context.Background(), methanol(t), perception.ModeExplicitHydrogens)
	require.NoError(t, err)

	assert.Len(t, cache.entries, 2)
}

func TestContentHash_StableAcrossTitles(t *testing.T) {
	a := methanol(t)
	b := methanol(t)
	b.Title = "renamed"

	assert.Equal(t, ContentHash(a, "permissive"), ContentHash(b, "permissive"))
	assert.NotEqual(t, ContentHash(a, "permissive"), ContentHash(a, "strict-explicit-hydrogens"))
}
