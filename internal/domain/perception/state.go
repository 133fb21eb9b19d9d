package perception

import (
	"github.com/turtacn/AtomSense/internal/domain/molecule"
	"github.com/turtacn/AtomSense/internal/domain/ring"
)

// state carries the caches shared by the atoms of one classification call.
// A state must not outlive the call that created it and must not be shared
// across goroutines; it memoizes pure graph queries and never changes a
// classification result.
type state struct {
	mol   *molecule.Molecule
	rings *ring.Analysis
	bonds map[*molecule.Atom][]*molecule.Bond
}

// newBatchState precomputes the connected-bonds index and ring membership
// for a whole-molecule classification, keeping the batch path linear in the
// size of the graph.
func newBatchState(mol *molecule.Molecule) *state {
	bonds := make(map[*molecule.Atom][]*molecule.Bond, mol.AtomCount())
	for _, b := range mol.Bonds() {
		bonds[b.Begin] = append(bonds[b.Begin], b)
		bonds[b.End] = append(bonds[b.End], b)
	}
	return &state{
		mol:   mol,
		rings: ring.Analyze(mol),
		bonds: bonds,
	}
}

// newAtomState defers all cache construction; single-atom callers pay only
// for the queries their element's cascade actually performs.
func newAtomState(mol *molecule.Molecule) *state {
	return &state{mol: mol}
}

// connectedBonds returns the atom's incident bonds, from the batch index
// when one was built.
func (st *state) connectedBonds(atom *molecule.Atom) []*molecule.Bond {
	if st.bonds != nil {
		return st.bonds[atom]
	}
	return st.mol.ConnectedBonds(atom)
}

// ringAtom reports cyclic membership, computing the ring analysis on first
// use.
func (st *state) ringAtom(atom *molecule.Atom) bool {
	if st.rings == nil {
		st.rings = ring.Analyze(st.mol)
	}
	return st.rings.AtomInRing(atom)
}
