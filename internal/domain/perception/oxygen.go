package perception

import (
	"github.com/turtacn/AtomSense/internal/domain/atomtype"
	"github.com/turtacn/AtomSense/internal/domain/molecule"
	"github.com/turtacn/AtomSense/pkg/types/chem"
)

// perceiveOxygen resolves oxygen.  Carboxylate membership is checked before
// the generic sp2 types so that both oxygens of a -C(=O)[O-] group come out
// as the resonance-aware pair.
func (m *Matcher) perceiveOxygen(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	if isRadical(atom) {
		return m.perceiveOxygenRadical(st, atom)
	}
	if bonds == nil {
		bonds = st.connectedBonds(atom)
	}
	switch {
	case hasHybridization(atom) && !isCharged(atom):
		switch atom.Hybridization {
		case chem.HybridizationSP2:
			switch len(bonds) {
			case 1:
				if isCarboxylate(st, atom, bonds) {
					return m.accept(st, atom, "O.sp2.co2", bonds)
				}
				return m.accept(st, atom, "O.sp2", bonds)
			case 2:
				return m.accept(st, atom, "O.planar3", bonds)
			}
		case chem.HybridizationSP3:
			return m.accept(st, atom, "O.sp3", bonds)
		case chem.HybridizationPlanar3:
			return m.accept(st, atom, "O.planar3", bonds)
		}

	case isCharged(atom):
		switch {
		case isCharge(atom, -1) && len(bonds) <= 1:
			if isCarboxylate(st, atom, bonds) {
				return m.accept(st, atom, "O.minus.co2", bonds)
			}
			return m.accept(st, atom, "O.minus", bonds)
		case isCharge(atom, -2) && len(bonds) == 0:
			return m.accept(st, atom, "O.minus2", bonds)
		case isCharge(atom, 1):
			if len(bonds) == 0 {
				if t, err := m.accept(st, atom, "O.plus", bonds); t != nil || err != nil {
					return t, err
				}
			}
			switch maxBondOrder(bonds) {
			case chem.OrderDouble:
				return m.accept(st, atom, "O.plus.sp2", bonds)
			case chem.OrderTriple:
				return m.accept(st, atom, "O.plus.sp1", bonds)
			default:
				return m.accept(st, atom, "O.plus", bonds)
			}
		}
		return nil, nil

	case len(bonds) > 2:
		// Hypervalent oxygen stays unresolved.
		return nil, nil

	case len(bonds) == 0:
		return m.accept(st, atom, "O.sp3", bonds)

	default:
		switch maxBondOrder(bonds) {
		case chem.OrderDouble:
			if isCarboxylate(st, atom, bonds) {
				return m.accept(st, atom, "O.sp2.co2", bonds)
			}
			return m.accept(st, atom, "O.sp2", bonds)
		case chem.OrderSingle:
			if len(bonds)-countExplicitHydrogens(atom, bonds) == 2 {
				// An ether oxygen between two sp2 ring neighbors takes
				// part in the aromatic system, as in furan.
				if bothNeighborsAreSp2(st, atom, bonds) && st.ringAtom(atom) {
					if t, err := m.accept(st, atom, "O.planar3", bonds); t != nil || err != nil {
						return t, err
					}
				}
				return m.accept(st, atom, "O.sp3", bonds)
			}
			return m.accept(st, atom, "O.sp3", bonds)
		}
	}
	return nil, nil
}

func (m *Matcher) perceiveOxygenRadical(st *state, atom *molecule.Atom) (*atomtype.Type, error) {
	n := st.mol.ConnectedBondCount(atom)
	switch {
	case isCharge(atom, 0):
		if n <= 1 {
			return m.accept(st, atom, "O.sp3.radical", nil)
		}
	case isCharge(atom, 1):
		if n == 0 {
			return m.accept(st, atom, "O.plus.radical", nil)
		}
		if n <= 2 {
			switch st.mol.MaximumBondOrder(atom) {
			case chem.OrderSingle:
				return m.accept(st, atom, "O.plus.radical", nil)
			case chem.OrderDouble:
				return m.accept(st, atom, "O.plus.sp2.radical", nil)
			}
		}
	}
	return nil, nil
}
