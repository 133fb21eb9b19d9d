package perception

import (
	"github.com/turtacn/AtomSense/internal/domain/atomtype"
	"github.com/turtacn/AtomSense/internal/domain/molecule"
)

// The transition metal cascades key on formal charge and coordination
// number only; bond orders to metal centers carry little information in
// typical connection tables.

func (m *Matcher) perceiveIron(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	if isRadical(atom) {
		return nil, nil
	}
	switch {
	case isCharge(atom, 0):
		switch st.mol.ConnectedBondCount(atom) {
		case 0:
			return m.accept(st, atom, "Fe.metallic", bonds)
		case 2:
			return m.accept(st, atom, "Fe.2", bonds)
		case 3:
			return m.accept(st, atom, "Fe.3", bonds)
		case 4:
			return m.accept(st, atom, "Fe.4", bonds)
		case 5:
			return m.accept(st, atom, "Fe.5", bonds)
		case 6:
			return m.accept(st, atom, "Fe.6", bonds)
		}
	case isCharge(atom, 2):
		if st.mol.ConnectedBondCount(atom) <= 1 {
			return m.accept(st, atom, "Fe.2plus", bonds)
		}
	case isCharge(atom, 1):
		if st.mol.ConnectedBondCount(atom) == 2 {
			return m.accept(st, atom, "Fe.plus", bonds)
		}
	case isCharge(atom, 3):
		return m.accept(st, atom, "Fe.3plus", bonds)
	case isCharge(atom, -2):
		return m.accept(st, atom, "Fe.2minus", bonds)
	case isCharge(atom, -3):
		return m.accept(st, atom, "Fe.3minus", bonds)
	case isCharge(atom, -4):
		return m.accept(st, atom, "Fe.4minus", bonds)
	}
	return nil, nil
}

func (m *Matcher) perceiveCobalt(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	if isRadical(atom) {
		return nil, nil
	}
	switch {
	case isCharge(atom, 2):
		return m.accept(st, atom, "Co.2plus", bonds)
	case isCharge(atom, 3):
		return m.accept(st, atom, "Co.3plus", bonds)
	case isCharge(atom, 0):
		switch st.mol.ConnectedBondCount(atom) {
		case 2:
			return m.accept(st, atom, "Co.2", bonds)
		case 4:
			return m.accept(st, atom, "Co.4", bonds)
		case 6:
			return m.accept(st, atom, "Co.6", bonds)
		case 1:
			return m.accept(st, atom, "Co.1", bonds)
		default:
			return m.accept(st, atom, "Co.metallic", bonds)
		}
	case isCharge(atom, 1):
		switch st.mol.ConnectedBondCount(atom) {
		case 2:
			return m.accept(st, atom, "Co.plus.2", bonds)
		case 4:
			return m.accept(st, atom, "Co.plus.4", bonds)
		case 1:
			return m.accept(st, atom, "Co.plus.1", bonds)
		case 6:
			return m.accept(st, atom, "Co.plus.6", bonds)
		case 5:
			return m.accept(st, atom, "Co.plus.5", bonds)
		default:
			return m.accept(st, atom, "Co.plus", bonds)
		}
	}
	return nil, nil
}

func (m *Matcher) perceiveNickel(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	switch {
	case isRadical(atom):
		return nil, nil
	case isCharge(atom, 2):
		return m.accept(st, atom, "Ni.2plus", bonds)
	case isCharge(atom, 0) && st.mol.ConnectedBondCount(atom) == 2:
		return m.accept(st, atom, "Ni", bonds)
	case isCharge(atom, 0) && st.mol.ConnectedBondCount(atom) == 0:
		return m.accept(st, atom, "Ni.metallic", bonds)
	case isCharge(atom, 1) && st.mol.ConnectedBondCount(atom) == 1:
		return m.accept(st, atom, "Ni.plus", bonds)
	}
	return nil, nil
}

func (m *Matcher) perceiveCopper(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	switch {
	case isRadical(atom):
		return nil, nil
	case isCharge(atom, 2):
		return m.accept(st, atom, "Cu.2plus", bonds)
	case isCharge(atom, 0):
		if st.mol.ConnectedBondCount(atom) == 1 {
			return m.accept(st, atom, "Cu.1", bonds)
		}
		return m.accept(st, atom, "Cu.metallic", bonds)
	case isCharge(atom, 1):
		return m.accept(st, atom, "Cu.plus", bonds)
	}
	return nil, nil
}

func (m *Matcher) perceiveZinc(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	if isRadical(atom) {
		return nil, nil
	}
	n := st.mol.ConnectedBondCount(atom)
	switch {
	case n == 0 && isCharge(atom, 0):
		return m.accept(st, atom, "Zn.metallic", bonds)
	case n == 0 && isCharge(atom, 2):
		return m.accept(st, atom, "Zn.2plus", bonds)
	case n == 1 && isCharge(atom, 0):
		return m.accept(st, atom, "Zn.1", bonds)
	case n == 2 && isCharge(atom, 0):
		return m.accept(st, atom, "Zn", bonds)
	}
	return nil, nil
}

func (m *Matcher) perceiveChromium(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	n := st.mol.ConnectedBondCount(atom)
	switch {
	case isCharge(atom, 0) && n == 6:
		return m.accept(st, atom, "Cr", bonds)
	case isCharge(atom, 0) && n == 4:
		return m.accept(st, atom, "Cr.4", bonds)
	case isCharge(atom, 6) && n == 0:
		return m.accept(st, atom, "Cr.6plus", bonds)
	case isCharge(atom, 0) && n == 0:
		return m.accept(st, atom, "Cr.neutral", bonds)
	case isCharge(atom, 3) && n == 0:
		return m.accept(st, atom, "Cr.3plus", bonds)
	}
	return nil, nil
}

func (m *Matcher) perceiveManganese(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	switch {
	case isRadical(atom):
		return nil, nil
	case isCharge(atom, 0):
		switch st.mol.ConnectedBondCount(atom) {
		case 2:
			return m.accept(st, atom, "Mn.2", bonds)
		case 0:
			return m.accept(st, atom, "Mn.metallic", bonds)
		}
	case isCharge(atom, 2):
		return m.accept(st, atom, "Mn.2plus", bonds)
	case isCharge(atom, 3):
		return m.accept(st, atom, "Mn.3plus", bonds)
	}
	return nil, nil
}

func (m *Matcher) perceiveTitanium(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	n := st.mol.ConnectedBondCount(atom)
	switch {
	case isCharge(atom, -3) && n == 6:
		return m.accept(st, atom, "Ti.3minus", bonds)
	case isCharge(atom, 0) && n == 4:
		return m.accept(st, atom, "Ti.sp3", bonds)
	case isCharge(atom, 0) && n == 2:
		return m.accept(st, atom, "Ti.2", bonds)
	}
	return nil, nil
}

func (m *Matcher) perceiveVanadium(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	n := st.mol.ConnectedBondCount(atom)
	switch {
	case isCharge(atom, -3) && n == 6:
		return m.accept(st, atom, "V.3minus", bonds)
	case isCharge(atom, -3) && n == 4:
		return m.accept(st, atom, "V.3minus.4", bonds)
	}
	return nil, nil
}

func (m *Matcher) perceiveMolybdenum(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	if isCharge(atom, 0) {
		if st.mol.ConnectedBondCount(atom) == 4 {
			if t, err := m.accept(st, atom, "Mo.4", bonds); t != nil || err != nil {
				return t, err
			}
		}
		return m.accept(st, atom, "Mo.metallic", bonds)
	}
	return nil, nil
}

func (m *Matcher) perceiveRuthenium(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	switch {
	case isCharge(atom, 0):
		return m.accept(st, atom, "Ru.6", bonds)
	case isCharge(atom, -2):
		return m.accept(st, atom, "Ru.2minus.6", bonds)
	case isCharge(atom, -3):
		return m.accept(st, atom, "Ru.3minus.6", bonds)
	}
	return nil, nil
}

func (m *Matcher) perceivePlatinum(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	if isRadical(atom) {
		return nil, nil
	}
	switch {
	case isCharge(atom, 2):
		if st.mol.ConnectedBondCount(atom) == 4 {
			return m.accept(st, atom, "Pt.2plus.4", bonds)
		}
		return m.accept(st, atom, "Pt.2plus", bonds)
	case isCharge(atom, 0):
		switch st.mol.ConnectedBondCount(atom) {
		case 2:
			return m.accept(st, atom, "Pt.2", bonds)
		case 4:
			return m.accept(st, atom, "Pt.4", bonds)
		case 6:
			return m.accept(st, atom, "Pt.6", bonds)
		}
	}
	return nil, nil
}

func (m *Matcher) perceiveMercury(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	switch {
	case isRadical(atom):
		return nil, nil
	case isCharge(atom, -1):
		return m.accept(st, atom, "Hg.minus", bonds)
	case isCharge(atom, 2):
		return m.accept(st, atom, "Hg.2plus", bonds)
	case isCharge(atom, 1):
		if st.mol.ConnectedBondCount(atom) <= 1 {
			return m.accept(st, atom, "Hg.plus", bonds)
		}
	case isCharge(atom, 0):
		switch st.mol.ConnectedBondCount(atom) {
		case 2:
			return m.accept(st, atom, "Hg.2", bonds)
		case 1:
			return m.accept(st, atom, "Hg.1", bonds)
		case 0:
			return m.accept(st, atom, "Hg.metallic", bonds)
		}
	}
	return nil, nil
}

func (m *Matcher) perceiveCadmium(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	switch {
	case isRadical(atom):
		return nil, nil
	case isCharge(atom, 2):
		return m.accept(st, atom, "Cd.2plus", bonds)
	case isCharge(atom, 0):
		switch st.mol.ConnectedBondCount(atom) {
		case 0:
			return m.accept(st, atom, "Cd.metallic", bonds)
		case 2:
			return m.accept(st, atom, "Cd.2", bonds)
		}
	}
	return nil, nil
}

func (m *Matcher) perceiveSilver(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	switch {
	case isRadical(atom):
		return nil, nil
	case isCharge(atom, 0):
		if st.mol.ConnectedBondCount(atom) == 1 {
			if t, err := m.accept(st, atom, "Ag.1", bonds); t != nil || err != nil {
				return t, err
			}
		}
		return m.accept(st, atom, "Ag.neutral", bonds)
	case isCharge(atom, 1):
		return m.accept(st, atom, "Ag.plus", bonds)
	}
	return nil, nil
}

func (m *Matcher) perceiveGold(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	if isRadical(atom) {
		return nil, nil
	}
	if isCharge(atom, 0) && st.mol.ConnectedBondCount(atom) == 1 {
		return m.accept(st, atom, "Au.1", bonds)
	}
	return nil, nil
}
