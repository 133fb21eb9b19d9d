package perception

import (
	"github.com/turtacn/AtomSense/internal/domain/atomtype"
	"github.com/turtacn/AtomSense/internal/domain/molecule"
	"github.com/turtacn/AtomSense/pkg/types/chem"
)

// perceiveCommonSalts resolves bare salt-forming ions of elements the
// dispatch table does not route.
func (m *Matcher) perceiveCommonSalts(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	switch atom.AtomicNumber {
	case chem.Magnesium:
		if isRadical(atom) {
			return nil, nil
		}
		if isCharge(atom, 2) {
			return m.accept(st, atom, "Mg.2plus", bonds)
		}
	case chem.Cobalt:
		switch {
		case isRadical(atom):
			return nil, nil
		case isCharge(atom, 2):
			return m.accept(st, atom, "Co.2plus", bonds)
		case isCharge(atom, 3):
			return m.accept(st, atom, "Co.3plus", bonds)
		case isCharge(atom, 0):
			return m.accept(st, atom, "Co.metallic", bonds)
		}
	case chem.Tungsten:
		if isRadical(atom) {
			return nil, nil
		}
		if isCharge(atom, 0) {
			return m.accept(st, atom, "W.metallic", bonds)
		}
	}
	return nil, nil
}

// perceiveOrganometallicCenters resolves the odd main-group centers that
// show up in organometallic reagents.
func (m *Matcher) perceiveOrganometallicCenters(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	switch atom.AtomicNumber {
	case chem.Polonium:
		if isRadical(atom) {
			return nil, nil
		}
		if st.mol.ConnectedBondCount(atom) == 2 {
			return m.accept(st, atom, "Po", bonds)
		}
	case chem.Tin:
		if isRadical(atom) {
			return nil, nil
		}
		if isCharge(atom, 0) && st.mol.ConnectedBondCount(atom) <= 4 {
			return m.accept(st, atom, "Sn.sp3", bonds)
		}
	case chem.Scandium:
		if isCharge(atom, -3) && st.mol.ConnectedBondCount(atom) == 6 {
			return m.accept(st, atom, "Sc.3minus", bonds)
		}
	}
	return nil, nil
}

func (m *Matcher) perceiveNobleGases(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	if isRadical(atom) {
		return nil, nil
	}
	switch atom.AtomicNumber {
	case chem.Helium:
		if isCharge(atom, 0) {
			return m.accept(st, atom, "He", bonds)
		}
	case chem.Neon:
		if isCharge(atom, 0) {
			return m.accept(st, atom, "Ne", bonds)
		}
	case chem.Argon:
		if isCharge(atom, 0) {
			return m.accept(st, atom, "Ar", bonds)
		}
	case chem.Krypton:
		if isCharge(atom, 0) {
			return m.accept(st, atom, "Kr", bonds)
		}
	case chem.Xenon:
		if isCharge(atom, 0) {
			if st.mol.ConnectedBondCount(atom) == 0 {
				return m.accept(st, atom, "Xe", bonds)
			}
			return m.accept(st, atom, "Xe.3", bonds)
		}
	case chem.Radon:
		if isCharge(atom, 0) {
			return m.accept(st, atom, "Rn", bonds)
		}
	}
	return nil, nil
}
