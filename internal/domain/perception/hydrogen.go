package perception

import (
	"github.com/turtacn/AtomSense/internal/domain/atomtype"
	"github.com/turtacn/AtomSense/internal/domain/molecule"
)

// perceiveHydrogen resolves explicit hydrogen atoms.  A bridging hydride
// with two bonds, as in diborane, stays unresolved.
func (m *Matcher) perceiveHydrogen(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	if bonds == nil {
		bonds = st.connectedBonds(atom)
	}
	if isRadical(atom) {
		if isCharge(atom, 0) && len(bonds) == 0 {
			return m.accept(st, atom, "H.radical", bonds)
		}
		return nil, nil
	}
	switch len(bonds) {
	case 1:
		if isCharge(atom, 0) {
			return m.accept(st, atom, "H", bonds)
		}
	case 0:
		switch {
		case isCharge(atom, 0):
			return m.accept(st, atom, "H", bonds)
		case isCharge(atom, 1):
			return m.accept(st, atom, "H.plus", bonds)
		case isCharge(atom, -1):
			return m.accept(st, atom, "H.minus", bonds)
		}
	}
	return nil, nil
}
