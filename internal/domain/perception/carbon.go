package perception

import (
	"github.com/turtacn/AtomSense/internal/domain/atomtype"
	"github.com/turtacn/AtomSense/internal/domain/molecule"
	"github.com/turtacn/AtomSense/pkg/types/chem"
)

// perceiveCarbon resolves carbon.  Priority runs: unpaired electron, stated
// hybridization on a neutral atom, formal charge, the aromatic flag, then
// plain bond-order evidence.
func (m *Matcher) perceiveCarbon(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	if isRadical(atom) {
		return m.perceiveCarbonRadical(st, atom)
	}
	if bonds == nil {
		bonds = st.connectedBonds(atom)
	}
	switch {
	case hasHybridization(atom) && !isCharged(atom):
		switch atom.Hybridization {
		case chem.HybridizationSP2:
			return m.accept(st, atom, "C.sp2", bonds)
		case chem.HybridizationSP3:
			return m.accept(st, atom, "C.sp3", bonds)
		case chem.HybridizationSP1:
			if maxBondOrder(bonds) == chem.OrderTriple {
				return m.accept(st, atom, "C.sp", bonds)
			}
			return m.accept(st, atom, "C.allene", bonds)
		}

	case isCharged(atom):
		switch {
		case isCharge(atom, 1):
			if len(bonds) == 0 {
				return m.accept(st, atom, "C.plus.planar", bonds)
			}
			switch maxBondOrder(bonds) {
			case chem.OrderTriple:
				return m.accept(st, atom, "C.plus.sp1", bonds)
			case chem.OrderDouble:
				return m.accept(st, atom, "C.plus.sp2", bonds)
			case chem.OrderSingle:
				return m.accept(st, atom, "C.plus.planar", bonds)
			}

		case isCharge(atom, -1):
			max := maxBondOrder(bonds)
			switch {
			case max == chem.OrderSingle && len(bonds) <= 3:
				// A carbanion flanked by two sp2 ring neighbors sits in
				// an aromatic system, as in the cyclopentadienyl anion.
				if bothNeighborsAreSp2(st, atom, bonds) && st.ringAtom(atom) {
					if t, err := m.accept(st, atom, "C.minus.planar", bonds); t != nil || err != nil {
						return t, err
					}
				}
				return m.accept(st, atom, "C.minus.sp3", bonds)
			case max == chem.OrderDouble && len(bonds) <= 3:
				return m.accept(st, atom, "C.minus.sp2", bonds)
			case max == chem.OrderTriple && len(bonds) <= 1:
				return m.accept(st, atom, "C.minus.sp1", bonds)
			}
		}
		return nil, nil

	case atom.Aromatic:
		return m.accept(st, atom, "C.sp2", bonds)

	case hasSingleOrDoubleBonds(bonds):
		return m.accept(st, atom, "C.sp2", bonds)

	case len(bonds) > 4:
		// Hypervalent carbon stays unresolved.
		return nil, nil

	default:
		switch maxBondOrder(bonds) {
		case chem.OrderTriple:
			return m.accept(st, atom, "C.sp", bonds)
		case chem.OrderDouble:
			switch countAttachedDoubleBonds(bonds, atom) {
			case 2:
				return m.accept(st, atom, "C.allene", bonds)
			case 1:
				return m.accept(st, atom, "C.sp2", bonds)
			}
		case chem.OrderSingle:
			if hasAromaticBond(bonds) {
				if t, err := m.accept(st, atom, "C.sp2", bonds); t != nil || err != nil {
					return t, err
				}
			}
			return m.accept(st, atom, "C.sp3", bonds)
		}
	}
	return nil, nil
}

func (m *Matcher) perceiveCarbonRadical(st *state, atom *molecule.Atom) (*atomtype.Type, error) {
	n := st.mol.ConnectedBondCount(atom)
	switch {
	case n == 0:
		return m.accept(st, atom, "C.radical.planar", nil)
	case n <= 3:
		switch st.mol.MaximumBondOrder(atom) {
		case chem.OrderSingle:
			return m.accept(st, atom, "C.radical.planar", nil)
		case chem.OrderDouble:
			return m.accept(st, atom, "C.radical.sp2", nil)
		case chem.OrderTriple:
			return m.accept(st, atom, "C.radical.sp1", nil)
		}
	}
	return nil, nil
}
