// Package repositories projects typed molecules into the graph database.
package repositories

import (
	"context"

	app "github.com/turtacn/AtomSense/internal/application/perception"
	"github.com/turtacn/AtomSense/internal/domain/molecule"
	driver "github.com/turtacn/AtomSense/internal/infrastructure/database/neo4j"
	"github.com/turtacn/AtomSense/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/AtomSense/pkg/errors"
)

// writeExecutor is the slice of the driver the mirror uses; tests
// substitute a fake.
type writeExecutor interface {
	ExecuteWrite(ctx context.Context, work func(driver.Transaction) (any, error)) (any, error)
}

// GraphMirror writes one Molecule node, one Atom node per atom carrying its
// assigned type, and one BONDED relationship per bond.  Mirroring the same
// content hash again updates in place.
type GraphMirror struct {
	db  writeExecutor
	log logging.Logger
}

// NewGraphMirror builds the mirror over a driver.
func NewGraphMirror(d *driver.Driver, log logging.Logger) *GraphMirror {
	return newGraphMirror(d, log)
}

func newGraphMirror(db writeExecutor, log logging.Logger) *GraphMirror {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &GraphMirror{db: db, log: log}
}

const mirrorAtomsCypher = `
MERGE (m:Molecule {content_hash: $hash})
SET m.id = $id, m.name = $name, m.formula = $formula, m.mode = $mode
WITH m
UNWIND $atoms AS atom
MERGE (a:Atom {content_hash: $hash, index: atom.index})
SET a.symbol = atom.symbol, a.type = atom.type, a.matched = atom.matched
MERGE (m)-[:HAS_ATOM]->(a)`

const mirrorBondsCypher = `
UNWIND $bonds AS bond
MATCH (a:Atom {content_hash: $hash, index: bond.begin})
MATCH (b:Atom {content_hash: $hash, index: bond.end})
MERGE (a)-[r:BONDED]->(b)
SET r.order = bond.order, r.aromatic = bond.aromatic`

// MirrorTypedGraph implements the application's GraphMirror contract.
func (g *GraphMirror) MirrorTypedGraph(ctx context.Context, mol *molecule.Molecule, res *app.Result) error {
	if mol == nil || res == nil {
		return errors.InvalidParam("mirroring requires a molecule and its result")
	}

	atoms := make([]map[string]any, len(res.Atoms))
	for i, a := range res.Atoms {
		atoms[i] = map[string]any{
			"index":   a.Index,
			"symbol":  a.Symbol,
			"type":    a.Type,
			"matched": a.Matched,
		}
	}
	bonds := make([]map[string]any, 0, mol.BondCount())
	for _, b := range mol.Bonds() {
		bonds = append(bonds, map[string]any{
			"begin":    mol.AtomIndex(b.Begin),
			"end":      mol.AtomIndex(b.End),
			"order":    b.Order.String(),
			"aromatic": b.Aromatic,
		})
	}

	_, err := g.db.ExecuteWrite(ctx, func(tx driver.Transaction) (any, error) {
		if _, err := tx.Run(ctx, mirrorAtomsCypher, map[string]any{
			"hash":    res.ContentHash,
			"id":      string(res.MoleculeID),
			"name":    res.Name,
			"formula": res.Formula,
			"mode":    res.Mode,
			"atoms":   atoms,
		}); err != nil {
			return nil, err
		}
		if len(bonds) == 0 {
			return nil, nil
		}
		_, err := tx.Run(ctx, mirrorBondsCypher, map[string]any{
			"hash":  res.ContentHash,
			"bonds": bonds,
		})
		return nil, err
	})
	if err != nil {
		return err
	}

	g.log.Debug("typed graph mirrored",
		logging.String("hash", res.ContentHash),
		logging.Int("atoms", len(atoms)),
		logging.Int("bonds", len(bonds)))
	return nil
}
