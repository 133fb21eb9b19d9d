package perception

import (
	"github.com/turtacn/AtomSense/internal/domain/atomtype"
	"github.com/turtacn/AtomSense/internal/domain/molecule"
	"github.com/turtacn/AtomSense/pkg/types/chem"
)

// perceiveHalogenResiduals covers the halogens the dispatch table leaves to
// the shared fallback chain: fluorine and iodine.
func (m *Matcher) perceiveHalogenResiduals(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	switch atom.AtomicNumber {
	case chem.Fluorine:
		return m.perceiveFluorine(st, atom, bonds)
	case chem.Iodine:
		return m.perceiveIodine(st, atom, bonds)
	}
	return nil, nil
}

func (m *Matcher) perceiveFluorine(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	if bonds == nil {
		bonds = st.connectedBonds(atom)
	}
	if isRadical(atom) {
		if len(bonds) == 0 {
			if isCharge(atom, 1) {
				return m.accept(st, atom, "F.plus.radical", bonds)
			}
			if isCharge(atom, 0) {
				return m.accept(st, atom, "F.radical", bonds)
			}
		} else if len(bonds) <= 1 && maxBondOrder(bonds) == chem.OrderSingle {
			return m.accept(st, atom, "F.plus.radical", bonds)
		}
		return nil, nil
	}
	if isCharged(atom) {
		if isCharge(atom, -1) {
			return m.accept(st, atom, "F.minus", bonds)
		}
		if isCharge(atom, 1) {
			switch maxBondOrder(bonds) {
			case chem.OrderDouble:
				return m.accept(st, atom, "F.plus.sp2", bonds)
			case chem.OrderSingle:
				return m.accept(st, atom, "F.plus.sp3", bonds)
			}
		}
		return nil, nil
	}
	if len(bonds) <= 1 {
		return m.accept(st, atom, "F", bonds)
	}
	return nil, nil
}

func (m *Matcher) perceiveChlorine(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	if bonds == nil {
		bonds = st.connectedBonds(atom)
	}
	switch {
	case isRadical(atom):
		switch {
		case len(bonds) > 1:
			if isCharge(atom, 1) {
				return m.accept(st, atom, "Cl.plus.radical", bonds)
			}
		case len(bonds) == 1:
			if st.mol.MaximumBondOrder(atom) == chem.OrderSingle {
				return m.accept(st, atom, "Cl.plus.radical", bonds)
			}
		case isCharge(atom, 0):
			return m.accept(st, atom, "Cl.radical", bonds)
		}

	case isCharge(atom, 0):
		switch {
		case maxBondOrder(bonds) == chem.OrderDouble:
			switch len(bonds) {
			case 2:
				return m.accept(st, atom, "Cl.2", bonds)
			case 3:
				return m.accept(st, atom, "Cl.chlorate", bonds)
			case 4:
				return m.accept(st, atom, "Cl.perchlorate", bonds)
			}
		case len(bonds) <= 1:
			return m.accept(st, atom, "Cl", bonds)
		}

	case isCharge(atom, -1):
		return m.accept(st, atom, "Cl.minus", bonds)

	case isCharge(atom, 1):
		switch maxBondOrder(bonds) {
		case chem.OrderDouble:
			return m.accept(st, atom, "Cl.plus.sp2", bonds)
		case chem.OrderSingle:
			return m.accept(st, atom, "Cl.plus.sp3", bonds)
		}

	case isCharge(atom, 3) && len(bonds) == 4:
		return m.accept(st, atom, "Cl.perchlorate.charged", bonds)

	default:
		doubles := countAttachedDoubleBonds(bonds, atom)
		if len(bonds) == 3 && doubles == 2 {
			return m.accept(st, atom, "Cl.chlorate", bonds)
		}
		if len(bonds) == 4 && doubles == 3 {
			return m.accept(st, atom, "Cl.perchlorate", bonds)
		}
	}
	return nil, nil
}

func (m *Matcher) perceiveBromine(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	n := st.mol.ConnectedBondCount(atom)
	switch {
	case isRadical(atom):
		if n == 0 {
			if isCharge(atom, 1) {
				return m.accept(st, atom, "Br.plus.radical", bonds)
			}
			if isCharge(atom, 0) {
				return m.accept(st, atom, "Br.radical", bonds)
			}
		} else if n <= 1 && st.mol.MaximumBondOrder(atom) == chem.OrderSingle {
			return m.accept(st, atom, "Br.plus.radical", bonds)
		}

	case isCharge(atom, -1):
		return m.accept(st, atom, "Br.minus", bonds)

	case isCharge(atom, 1):
		switch st.mol.MaximumBondOrder(atom) {
		case chem.OrderDouble:
			return m.accept(st, atom, "Br.plus.sp2", bonds)
		case chem.OrderSingle:
			return m.accept(st, atom, "Br.plus.sp3", bonds)
		}

	case n <= 1:
		return m.accept(st, atom, "Br", bonds)

	case n == 3:
		return m.accept(st, atom, "Br.3", bonds)
	}
	return nil, nil
}

func (m *Matcher) perceiveIodine(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	if bonds == nil {
		bonds = st.connectedBonds(atom)
	}
	switch {
	case isRadical(atom):
		if len(bonds) == 0 {
			if isCharge(atom, 1) {
				return m.accept(st, atom, "I.plus.radical", bonds)
			}
			if isCharge(atom, 0) {
				return m.accept(st, atom, "I.radical", bonds)
			}
		} else if len(bonds) <= 1 && maxBondOrder(bonds) == chem.OrderSingle {
			return m.accept(st, atom, "I.plus.radical", bonds)
		}

	case isCharged(atom):
		if isCharge(atom, -1) {
			if len(bonds) == 0 {
				return m.accept(st, atom, "I.minus", bonds)
			}
			return m.accept(st, atom, "I.minus.5", bonds)
		}
		if isCharge(atom, 1) {
			switch maxBondOrder(bonds) {
			case chem.OrderDouble:
				return m.accept(st, atom, "I.plus.sp2", bonds)
			case chem.OrderSingle:
				return m.accept(st, atom, "I.plus.sp3", bonds)
			}
		}

	case len(bonds) == 3:
		if countAttachedDoubleBonds(bonds, atom) == 2 {
			return m.accept(st, atom, "I.5", bonds)
		}
		if isCharge(atom, 0) {
			return m.accept(st, atom, "I.sp3d2.3", bonds)
		}

	case len(bonds) == 2:
		if maxBondOrder(bonds) == chem.OrderDouble {
			return m.accept(st, atom, "I.3", bonds)
		}

	case len(bonds) <= 1:
		return m.accept(st, atom, "I", bonds)
	}
	return nil, nil
}
