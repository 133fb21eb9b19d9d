package perception

import (
	"github.com/turtacn/AtomSense/internal/domain/atomtype"
	"github.com/turtacn/AtomSense/internal/domain/molecule"
	"github.com/turtacn/AtomSense/pkg/types/chem"
)

// perceivePhosphorus resolves phosphorus.  The triply unpaired ground state
// is the only radical form handled; everything else goes by connectivity.
func (m *Matcher) perceivePhosphorus(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	if bonds == nil {
		bonds = st.connectedBonds(atom)
	}
	if atom.SingleElectrons == 3 {
		return m.accept(st, atom, "P.se.3", bonds)
	}
	if isRadical(atom) {
		return nil, nil
	}
	switch len(bonds) {
	case 0:
		if isCharge(atom, 0) {
			return m.accept(st, atom, "P.ine", bonds)
		}
	case 1:
		if isCharge(atom, 0) {
			return m.accept(st, atom, "P.ide", bonds)
		}
	case 2:
		switch maxBondOrder(bonds) {
		case chem.OrderDouble:
			if isCharge(atom, 1) {
				return m.accept(st, atom, "P.sp1.plus", bonds)
			}
			return m.accept(st, atom, "P.irane", bonds)
		case chem.OrderSingle:
			return m.accept(st, atom, "P.ine", bonds)
		}
	case 3:
		switch {
		case isCharge(atom, 1):
			return m.accept(st, atom, "P.anium", bonds)
		case countAttachedDoubleBonds(bonds, atom) == 1:
			return m.accept(st, atom, "P.ate", bonds)
		default:
			return m.accept(st, atom, "P.ine", bonds)
		}
	case 4:
		doubles := countAttachedDoubleBonds(bonds, atom)
		if isCharge(atom, 1) && doubles == 0 {
			return m.accept(st, atom, "P.ate.charged", bonds)
		}
		if doubles == 1 {
			return m.accept(st, atom, "P.ate", bonds)
		}
	case 5:
		if isCharge(atom, 0) {
			return m.accept(st, atom, "P.ane", bonds)
		}
	}
	return nil, nil
}
