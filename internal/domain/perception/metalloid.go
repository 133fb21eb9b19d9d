package perception

import (
	"github.com/turtacn/AtomSense/internal/domain/atomtype"
	"github.com/turtacn/AtomSense/internal/domain/molecule"
	"github.com/turtacn/AtomSense/pkg/types/chem"
)

func (m *Matcher) perceiveBoron(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	n := st.mol.ConnectedBondCount(atom)
	switch {
	case isCharge(atom, -1) && st.mol.MaximumBondOrder(atom) == chem.OrderSingle && n <= 4:
		return m.accept(st, atom, "B.minus", bonds)
	case isCharge(atom, 3) && n == 4:
		return m.accept(st, atom, "B.3plus", bonds)
	case n <= 3:
		return m.accept(st, atom, "B", bonds)
	}
	return nil, nil
}

func (m *Matcher) perceiveSilicon(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	if isRadical(atom) {
		return nil, nil
	}
	if isCharge(atom, 0) {
		switch st.mol.ConnectedBondCount(atom) {
		case 2:
			return m.accept(st, atom, "Si.2", bonds)
		case 3:
			return m.accept(st, atom, "Si.3", bonds)
		case 4:
			return m.accept(st, atom, "Si.sp3", bonds)
		}
		return nil, nil
	}
	if isCharge(atom, -2) {
		return m.accept(st, atom, "Si.2minus.6", bonds)
	}
	return nil, nil
}

func (m *Matcher) perceiveGermanium(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	n := st.mol.ConnectedBondCount(atom)
	if !isCharged(atom) && st.mol.MaximumBondOrder(atom) == chem.OrderSingle && n <= 4 {
		if t, err := m.accept(st, atom, "Ge", bonds); t != nil || err != nil {
			return t, err
		}
	}
	if isCharge(atom, 0) && n == 3 {
		return m.accept(st, atom, "Ge.3", bonds)
	}
	return nil, nil
}

func (m *Matcher) perceiveArsenic(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	if bonds == nil {
		bonds = st.connectedBonds(atom)
	}
	switch {
	case isRadical(atom):
		return nil, nil
	case isCharge(atom, 1) && len(bonds) <= 4:
		return m.accept(st, atom, "As.plus", bonds)
	case isCharge(atom, 0):
		if len(bonds) == 4 {
			if t, err := m.accept(st, atom, "As.5", bonds); t != nil || err != nil {
				return t, err
			}
		}
		if len(bonds) == 2 {
			switch maxBondOrder(bonds) {
			case chem.OrderDouble:
				if t, err := m.accept(st, atom, "As.2", bonds); t != nil || err != nil {
					return t, err
				}
			case chem.OrderSingle:
				if t, err := m.accept(st, atom, "As.planar3", bonds); t != nil || err != nil {
					return t, err
				}
			}
		}
		return m.accept(st, atom, "As", bonds)
	case isCharge(atom, 3):
		return m.accept(st, atom, "As.3plus", bonds)
	case isCharge(atom, -1):
		return m.accept(st, atom, "As.minus", bonds)
	}
	return nil, nil
}

func (m *Matcher) perceiveAntimony(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	if isRadical(atom) {
		return nil, nil
	}
	n := st.mol.ConnectedBondCount(atom)
	if isCharge(atom, 0) && n == 3 {
		return m.accept(st, atom, "Sb.3", bonds)
	}
	if isCharge(atom, 0) && n == 4 {
		return m.accept(st, atom, "Sb.4", bonds)
	}
	return nil, nil
}

func (m *Matcher) perceiveSelenium(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	if bonds == nil {
		bonds = st.connectedBonds(atom)
	}
	doubles := countAttachedDoubleBonds(bonds, atom)
	switch {
	case isCharge(atom, 0):
		switch len(bonds) {
		case 0:
			if atom.ImplicitHydrogens != nil && *atom.ImplicitHydrogens == 0 {
				return m.accept(st, atom, "Se.2", bonds)
			}
			return m.accept(st, atom, "Se.3", bonds)
		case 1:
			switch doubles {
			case 1:
				return m.accept(st, atom, "Se.1", bonds)
			case 0:
				return m.accept(st, atom, "Se.3", bonds)
			}
		case 2:
			switch doubles {
			case 0:
				return m.accept(st, atom, "Se.3", bonds)
			case 2:
				return m.accept(st, atom, "Se.sp2.2", bonds)
			}
		case 3:
			return m.accept(st, atom, "Se.sp3.3", bonds)
		case 4:
			switch doubles {
			case 2:
				return m.accept(st, atom, "Se.sp3.4", bonds)
			case 0:
				return m.accept(st, atom, "Se.sp3d1.4", bonds)
			}
		case 5:
			return m.accept(st, atom, "Se.5", bonds)
		}
	case isCharge(atom, 4) && len(bonds) == 0:
		return m.accept(st, atom, "Se.4plus", bonds)
	case isCharge(atom, 1) && len(bonds) == 3:
		return m.accept(st, atom, "Se.plus.3", bonds)
	case isCharge(atom, -2) && len(bonds) == 0:
		return m.accept(st, atom, "Se.2minus", bonds)
	}
	return nil, nil
}

func (m *Matcher) perceiveTellurium(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	n := st.mol.ConnectedBondCount(atom)
	if !isCharged(atom) && st.mol.MaximumBondOrder(atom) == chem.OrderSingle && n <= 2 {
		return m.accept(st, atom, "Te.3", bonds)
	}
	if isCharge(atom, 4) && n == 0 {
		return m.accept(st, atom, "Te.4plus", bonds)
	}
	return nil, nil
}
