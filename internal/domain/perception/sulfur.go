package perception

import (
	"github.com/turtacn/AtomSense/internal/domain/atomtype"
	"github.com/turtacn/AtomSense/internal/domain/molecule"
	"github.com/turtacn/AtomSense/pkg/types/chem"
)

// perceiveSulfur resolves sulfur across its oxidation states, from thiolate
// and thioether up to the octahedral hexafluoride geometry.
func (m *Matcher) perceiveSulfur(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	if bonds == nil {
		bonds = st.connectedBonds(atom)
	}
	max := maxBondOrder(bonds)
	switch {
	case isRadical(atom):
		// Sulfur radicals are not resolved.
		return nil, nil

	case atom.Hybridization == chem.HybridizationSP2 && isCharge(atom, 1):
		if len(bonds) == 3 {
			return m.accept(st, atom, "S.inyl.charged", bonds)
		}
		return m.accept(st, atom, "S.plus", bonds)

	case isCharged(atom):
		switch {
		case isCharge(atom, -1) && len(bonds) == 1:
			return m.accept(st, atom, "S.minus", bonds)
		case isCharge(atom, 1) && len(bonds) == 2:
			return m.accept(st, atom, "S.plus", bonds)
		case isCharge(atom, 1) && len(bonds) == 3:
			return m.accept(st, atom, "S.inyl.charged", bonds)
		case isCharge(atom, 2) && len(bonds) == 4:
			return m.accept(st, atom, "S.onyl.charged", bonds)
		case isCharge(atom, -2) && len(bonds) == 0:
			return m.accept(st, atom, "S.2minus", bonds)
		}

	case len(bonds) == 0:
		if isCharge(atom, 0) {
			return m.accept(st, atom, "S.3", bonds)
		}

	case len(bonds) == 1:
		switch bonds[0].Order {
		case chem.OrderDouble:
			return m.accept(st, atom, "S.2", bonds)
		case chem.OrderSingle:
			return m.accept(st, atom, "S.3", bonds)
		}

	case len(bonds) == 2:
		switch {
		case bothNeighborsAreSp2(st, atom, bonds) && st.ringAtom(atom):
			if countAttachedDoubleBonds(bonds, atom) == 2 {
				return m.accept(st, atom, "S.inyl.2", bonds)
			}
			return m.accept(st, atom, "S.planar3", bonds)
		case countAttachedDoubleBondsTo(bonds, atom, chem.Oxygen) == 2:
			return m.accept(st, atom, "S.oxide", bonds)
		case countAttachedDoubleBonds(bonds, atom) == 2:
			return m.accept(st, atom, "S.inyl.2", bonds)
		case countAttachedDoubleBonds(bonds, atom) <= 1:
			return m.accept(st, atom, "S.3", bonds)
		}

	case len(bonds) == 3:
		switch countAttachedDoubleBonds(bonds, atom) {
		case 1:
			return m.accept(st, atom, "S.inyl", bonds)
		case 3:
			return m.accept(st, atom, "S.trioxide", bonds)
		case 0:
			return m.accept(st, atom, "S.anyl", bonds)
		}

	case len(bonds) == 4:
		doubleO := countAttachedDoubleBondsTo(bonds, atom, chem.Oxygen)
		doubleN := countAttachedDoubleBondsTo(bonds, atom, chem.Nitrogen)
		doubleS := countAttachedDoubleBondsTo(bonds, atom, chem.Sulfur)
		doubles := countAttachedDoubleBonds(bonds, atom)
		switch {
		case doubleO+doubleN == 2:
			return m.accept(st, atom, "S.onyl", bonds)
		case doubleS == 1 && doubleO == 1:
			return m.accept(st, atom, "S.thionyl", bonds)
		case max == chem.OrderSingle:
			return m.accept(st, atom, "S.anyl", bonds)
		case doubleO == 1 && doubles == 1:
			return m.accept(st, atom, "S.sp3d1", bonds)
		case doubles == 2 && max == chem.OrderDouble:
			return m.accept(st, atom, "S.sp3.4", bonds)
		}

	case len(bonds) == 5:
		switch max {
		case chem.OrderDouble:
			return m.accept(st, atom, "S.sp3d1", bonds)
		case chem.OrderSingle:
			return m.accept(st, atom, "S.octahedral", bonds)
		}

	case len(bonds) == 6:
		if max == chem.OrderSingle {
			return m.accept(st, atom, "S.octahedral", bonds)
		}
	}
	return nil, nil
}
