package perception

import (
	"github.com/turtacn/AtomSense/internal/domain/atomtype"
	"github.com/turtacn/AtomSense/internal/domain/molecule"
	"github.com/turtacn/AtomSense/pkg/types/chem"
)

func (m *Matcher) perceiveLithium(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	switch st.mol.ConnectedBondCount(atom) {
	case 1:
		if isCharge(atom, 0) {
			return m.accept(st, atom, "Li", bonds)
		}
	case 0:
		if isCharge(atom, 0) {
			return m.accept(st, atom, "Li.neutral", bonds)
		}
		if isCharge(atom, 1) {
			return m.accept(st, atom, "Li.plus", bonds)
		}
	}
	return nil, nil
}

func (m *Matcher) perceiveSodium(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	switch {
	case isRadical(atom):
		return nil, nil
	case isCharge(atom, 1):
		return m.accept(st, atom, "Na.plus", bonds)
	case isCharge(atom, 0) && st.mol.ConnectedBondCount(atom) == 1:
		return m.accept(st, atom, "Na", bonds)
	case isCharge(atom, 0) && st.mol.ConnectedBondCount(atom) == 0:
		return m.accept(st, atom, "Na.neutral", bonds)
	}
	return nil, nil
}

func (m *Matcher) perceivePotassium(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	switch {
	case isRadical(atom):
		return nil, nil
	case isCharge(atom, 1):
		return m.accept(st, atom, "K.plus", bonds)
	case isCharge(atom, 0):
		if st.mol.ConnectedBondCount(atom) == 1 {
			if t, err := m.accept(st, atom, "K.neutral", bonds); t != nil || err != nil {
				return t, err
			}
		}
		return m.accept(st, atom, "K.metallic", bonds)
	}
	return nil, nil
}

func (m *Matcher) perceiveRubidium(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	switch {
	case isRadical(atom):
		return nil, nil
	case isCharge(atom, 1):
		return m.accept(st, atom, "Rb.plus", bonds)
	case isCharge(atom, 0):
		return m.accept(st, atom, "Rb.neutral", bonds)
	}
	return nil, nil
}

func (m *Matcher) perceiveBeryllium(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	if isCharge(atom, -2) && st.mol.MaximumBondOrder(atom) == chem.OrderSingle &&
		st.mol.ConnectedBondCount(atom) <= 4 {
		return m.accept(st, atom, "Be.2minus", bonds)
	}
	if isCharge(atom, 0) && st.mol.ConnectedBondCount(atom) == 0 {
		return m.accept(st, atom, "Be.neutral", bonds)
	}
	return nil, nil
}

func (m *Matcher) perceiveMagnesium(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	switch {
	case isRadical(atom):
		return nil, nil
	case isCharge(atom, 0):
		switch st.mol.ConnectedBondCount(atom) {
		case 4:
			return m.accept(st, atom, "Mg.neutral", bonds)
		case 2:
			return m.accept(st, atom, "Mg.neutral.2", bonds)
		case 1:
			return m.accept(st, atom, "Mg.neutral.1", bonds)
		default:
			return m.accept(st, atom, "Mg.neutral", bonds)
		}
	case isCharge(atom, 2):
		return m.accept(st, atom, "Mg.2plus", bonds)
	}
	return nil, nil
}

func (m *Matcher) perceiveCalcium(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	if isRadical(atom) {
		return nil, nil
	}
	n := st.mol.ConnectedBondCount(atom)
	switch {
	case isCharge(atom, 2) && n == 0:
		return m.accept(st, atom, "Ca.2plus", bonds)
	case isCharge(atom, 0) && n == 2:
		return m.accept(st, atom, "Ca.2", bonds)
	case isCharge(atom, 0) && n == 1:
		return m.accept(st, atom, "Ca.1", bonds)
	}
	return nil, nil
}

func (m *Matcher) perceiveStrontium(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	if isRadical(atom) {
		return nil, nil
	}
	if isCharge(atom, 2) {
		return m.accept(st, atom, "Sr.2plus", bonds)
	}
	return nil, nil
}

func (m *Matcher) perceiveBarium(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	if isRadical(atom) {
		return nil, nil
	}
	if isCharge(atom, 2) {
		return m.accept(st, atom, "Ba.2plus", bonds)
	}
	return nil, nil
}

func (m *Matcher) perceiveRadium(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	if isRadical(atom) {
		return nil, nil
	}
	if isCharge(atom, 0) {
		return m.accept(st, atom, "Ra.neutral", bonds)
	}
	return nil, nil
}

func (m *Matcher) perceiveAluminium(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	n := st.mol.ConnectedBondCount(atom)
	switch {
	case isCharge(atom, 3) && n == 0:
		return m.accept(st, atom, "Al.3plus", bonds)
	case isCharge(atom, 0) && n == 3:
		return m.accept(st, atom, "Al", bonds)
	case isCharge(atom, -3) && n == 6:
		return m.accept(st, atom, "Al.3minus", bonds)
	}
	return nil, nil
}

func (m *Matcher) perceiveGallium(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	if !isCharged(atom) && st.mol.MaximumBondOrder(atom) == chem.OrderSingle &&
		st.mol.ConnectedBondCount(atom) <= 3 {
		return m.accept(st, atom, "Ga", bonds)
	}
	if isCharge(atom, 3) {
		return m.accept(st, atom, "Ga.3plus", bonds)
	}
	return nil, nil
}

func (m *Matcher) perceiveIndium(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	n := st.mol.ConnectedBondCount(atom)
	switch {
	case isCharge(atom, 0) && n == 3:
		return m.accept(st, atom, "In.3", bonds)
	case isCharge(atom, 3) && n == 0:
		return m.accept(st, atom, "In.3plus", bonds)
	case isCharge(atom, 0) && n == 1:
		return m.accept(st, atom, "In.1", bonds)
	default:
		return m.accept(st, atom, "In", bonds)
	}
}

func (m *Matcher) perceiveThallium(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	n := st.mol.ConnectedBondCount(atom)
	switch {
	case isCharge(atom, 1) && n == 0:
		return m.accept(st, atom, "Tl.plus", bonds)
	case isCharge(atom, 0) && n == 0:
		return m.accept(st, atom, "Tl", bonds)
	case isCharge(atom, 0) && n == 1:
		return m.accept(st, atom, "Tl.1", bonds)
	}
	return nil, nil
}

func (m *Matcher) perceiveLead(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	n := st.mol.ConnectedBondCount(atom)
	switch {
	case isCharge(atom, 0) && n == 0:
		return m.accept(st, atom, "Pb.neutral", bonds)
	case isCharge(atom, 2) && n == 0:
		return m.accept(st, atom, "Pb.2plus", bonds)
	case isCharge(atom, 0) && n == 1:
		return m.accept(st, atom, "Pb.1", bonds)
	}
	return nil, nil
}

func (m *Matcher) perceiveThorium(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	if isCharge(atom, 0) && st.mol.ConnectedBondCount(atom) == 0 {
		return m.accept(st, atom, "Th", bonds)
	}
	return nil, nil
}

func (m *Matcher) perceivePlutonium(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	if isCharge(atom, 0) && st.mol.ConnectedBondCount(atom) == 0 {
		return m.accept(st, atom, "Pu", bonds)
	}
	return nil, nil
}

func (m *Matcher) perceiveGadolinium(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	if isCharge(atom, 3) && st.mol.ConnectedBondCount(atom) == 0 {
		return m.accept(st, atom, "Gd.3plus", bonds)
	}
	return nil, nil
}
