package repositories

import (
	"context"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app "github.com/turtacn/AtomSense/internal/application/perception"
	"github.com/turtacn/AtomSense/internal/domain/molecule"
	driver "github.com/turtacn/AtomSense/internal/infrastructure/database/neo4j"
	"github.com/turtacn/AtomSense/pkg/types/chem"
)

type recordedRun struct {
	cypher string
	params map[string]any
}

type fakeTx struct {
	runs []recordedRun
	err  error
}

func (t *fakeTx) Run(_ context.Context, cypher string, params map[string]any) (neo4j.ResultWithContext, error) {
	t.runs = append(t.runs, recordedRun{cypher: cypher, params: params})
	return nil, t.err
}

type fakeExecutor struct {
	tx *fakeTx
}

func (e *fakeExecutor) ExecuteWrite(ctx context.Context, work func(driver.Transaction) (any, error)) (any, error) {
	return work(e.tx)
}

func waterResult(t *testing.T) (*molecule.Molecule, *app.Result) {
	t.Helper()
	mol := molecule.New()
	o, err := mol.NewAtom("O")
	require.NoError(t, err)
	h1, err := mol.NewAtom("H")
	require.NoError(t, err)
	h2, err := mol.NewAtom("H")
	require.NoError(t, err)
	_, err = mol.AddBond(o, h1, chem.OrderSingle)
	require.NoError(t, err)
	_, err = mol.AddBond(o, h2, chem.OrderSingle)
	require.NoError(t, err)

	res := &app.Result{
		MoleculeID:  "mol-1",
		Name:        "water",
		Formula:     mol.Formula(),
		Mode:        "permissive",
		ContentHash: app.ContentHash(mol, "permissive"),
		Atoms: []app.Assignment{
			{Index: 0, Symbol: "O", Type: "O.sp3", Matched: true},
			{Index: 1, Symbol: "H", Type: "H", Matched: true},
			{Index: 2, Symbol: "H", Type: "H", Matched: true},
		},
	}
	return mol, res
}

func TestGraphMirror_MirrorTypedGraph(t *testing.T) {
	mol, res := waterResult(t)
	tx := &fakeTx{}
	mirror := newGraphMirror(&fakeExecutor{tx: tx}, nil)

	require.NoError(t, mirror.MirrorTypedGraph(context.Background(), mol, res))
	require.Len(t, tx.runs, 2)

	atoms := tx.runs[0]
	assert.Contains(t, atoms.cypher, "MERGE (m:Molecule")
	assert.Equal(t, res.ContentHash, atoms.params["hash"])
	assert.Equal(t, "water", atoms.params["name"])
	atomRows, ok := atoms.params["atoms"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, atomRows, 3)
	assert.Equal(t, "O.sp3", atomRows[0]["type"])

	bonds := tx.runs[1]
	assert.Contains(t, bonds.cypher, "MERGE (a)-[r:BONDED]->(b)")
	bondRows, ok := bonds.params["bonds"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, bondRows, 2)
	assert.Equal(t, 0, bondRows[0]["begin"])
	assert.Equal(t, 1, bondRows[0]["end"])
	assert.Equal(t, "single", bondRows[0]["order"])
}

func TestGraphMirror_SkipsBondQueryWhenBondless(t *testing.T) {
	mol := molecule.New()
	_, err := mol.NewAtom("Ne")
	require.NoError(t, err)
	res := &app.Result{
		ContentHash: app.ContentHash(mol, "permissive"),
		Mode:        "permissive",
		Atoms:       []app.Assignment{{Index: 0, Symbol: "Ne", Type: "Ne", Matched: true}},
	}

	tx := &fakeTx{}
	mirror := newGraphMirror(&fakeExecutor{tx: tx}, nil)
	require.NoError(t, mirror.MirrorTypedGraph(context.Background(), mol, res))
	require.Len(t, tx.runs, 1)
}

func TestGraphMirror_RejectsNilInput(t *testing.T) {
	mirror := newGraphMirror(&fakeExecutor{tx: &fakeTx{}}, nil)
	assert.Error(t, mirror.MirrorTypedGraph(context.Background(), nil, nil))
}
