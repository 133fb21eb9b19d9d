package perception

import (
	"github.com/turtacn/AtomSense/internal/domain/atomtype"
	"github.com/turtacn/AtomSense/internal/domain/molecule"
	"github.com/turtacn/AtomSense/pkg/types/chem"
)

// perceiveNitrogen resolves nitrogen, the widest cascade in the table.  The
// planar amine cases (pyrrole, aniline, amides) are tried before the plain
// sp3/sp2 assignments, and several of those probes deliberately fall back to
// the next candidate when the validator turns them down.
func (m *Matcher) perceiveNitrogen(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	if isRadical(atom) {
		return m.perceiveNitrogenRadical(st, atom)
	}
	if bonds == nil {
		bonds = st.connectedBonds(atom)
	}
	switch {
	case hasHybridization(atom) && !isCharged(atom):
		switch atom.Hybridization {
		case chem.HybridizationSP1:
			if len(bonds) > 1 {
				return m.accept(st, atom, "N.sp1.2", bonds)
			}
			return m.accept(st, atom, "N.sp1", bonds)

		case chem.HybridizationSP2:
			if isAmide(st, atom, bonds) {
				if t, err := m.accept(st, atom, "N.amide", bonds); t != nil || err != nil {
					return t, err
				}
			} else if isThioAmide(st, atom, bonds) {
				if t, err := m.accept(st, atom, "N.thioamide", bonds); t != nil || err != nil {
					return t, err
				}
			}
			// An sp2 label may still mean the aromatic planar types, as
			// in pyrrole, so probe those before settling on plain sp2.
			if len(bonds) == 4 && maxBondOrder(bonds) == chem.OrderDouble {
				if t, err := m.accept(st, atom, "N.oxide", bonds); t != nil || err != nil {
					return t, err
				}
			} else if len(bonds) > 1 && bothNeighborsAreSp2(st, atom, bonds) && st.ringAtom(atom) {
				switch len(bonds) {
				case 3:
					switch maxBondOrder(bonds) {
					case chem.OrderDouble:
						if t, err := m.accept(st, atom, "N.sp2.3", bonds); t != nil || err != nil {
							return t, err
						}
					case chem.OrderSingle:
						if t, err := m.accept(st, atom, "N.planar3", bonds); t != nil || err != nil {
							return t, err
						}
					}
				case 2:
					switch maxBondOrder(bonds) {
					case chem.OrderSingle:
						if atom.ImplicitHydrogens != nil && *atom.ImplicitHydrogens == 1 {
							if t, err := m.accept(st, atom, "N.planar3", bonds); t != nil || err != nil {
								return t, err
							}
						} else if t, err := m.accept(st, atom, "N.sp2", bonds); t != nil || err != nil {
							return t, err
						}
					case chem.OrderDouble:
						if t, err := m.accept(st, atom, "N.sp2", bonds); t != nil || err != nil {
							return t, err
						}
					}
				}
			}
			return m.accept(st, atom, "N.sp2", bonds)

		case chem.HybridizationSP3:
			return m.accept(st, atom, "N.sp3", bonds)

		case chem.HybridizationPlanar3:
			if len(bonds) == 3 && maxBondOrder(bonds) == chem.OrderDouble &&
				countAttachedDoubleBondsTo(bonds, atom, chem.Oxygen) == 2 {
				if t, err := m.accept(st, atom, "N.nitro", bonds); t != nil || err != nil {
					return t, err
				}
			}
			return m.accept(st, atom, "N.planar3", bonds)
		}

	case isCharged(atom):
		switch {
		case isCharge(atom, 1):
			max := maxBondOrder(bonds)
			switch {
			case max == chem.OrderSingle || len(bonds) == 0:
				if atom.Hybridization == chem.HybridizationSP2 {
					if t, err := m.accept(st, atom, "N.plus.sp2", bonds); t != nil || err != nil {
						return t, err
					}
				}
				return m.accept(st, atom, "N.plus", bonds)
			case max == chem.OrderDouble:
				switch countAttachedDoubleBonds(bonds, atom) {
				case 1:
					return m.accept(st, atom, "N.plus.sp2", bonds)
				case 2:
					return m.accept(st, atom, "N.plus.sp1", bonds)
				}
			case max == chem.OrderTriple:
				if len(bonds) == 2 {
					return m.accept(st, atom, "N.plus.sp1", bonds)
				}
			}

		case isCharge(atom, -1):
			switch maxBondOrder(bonds) {
			case chem.OrderSingle:
				switch {
				case len(bonds) >= 2 && bothNeighborsAreSp2(st, atom, bonds) && st.ringAtom(atom):
					return m.accept(st, atom, "N.minus.planar3", bonds)
				case len(bonds) <= 2:
					return m.accept(st, atom, "N.minus.sp3", bonds)
				}
			case chem.OrderDouble:
				if len(bonds) <= 1 {
					return m.accept(st, atom, "N.minus.sp2", bonds)
				}
			}
		}

	case len(bonds) > 3:
		if len(bonds) == 4 && countAttachedDoubleBonds(bonds, atom) == 1 {
			return m.accept(st, atom, "N.oxide", bonds)
		}
		return nil, nil

	case len(bonds) == 0:
		return m.accept(st, atom, "N.sp3", bonds)

	case hasSingleOrDoubleBonds(bonds):
		if len(bonds)+atom.HydrogenCount() == 3 {
			if t, err := m.accept(st, atom, "N.planar3", bonds); t != nil || err != nil {
				return t, err
			}
		}
		return m.accept(st, atom, "N.sp2", bonds)

	default:
		switch maxBondOrder(bonds) {
		case chem.OrderSingle:
			if isAmide(st, atom, bonds) {
				if t, err := m.accept(st, atom, "N.amide", bonds); t != nil || err != nil {
					return t, err
				}
			} else if isThioAmide(st, atom, bonds) {
				if t, err := m.accept(st, atom, "N.thioamide", bonds); t != nil || err != nil {
					return t, err
				}
			}
			heavy := heavyBonds(bonds)
			switch len(heavy) {
			case 2:
				switch {
				case heavy[0].Aromatic && heavy[1].Aromatic:
					switch atom.HydrogenCount() {
					case 0:
						// A pyrrole-like nitrogen donating its lone pair
						// is the sole heteroatom of its ring system.
						if isSingleHeteroAtom(st, atom) {
							return m.accept(st, atom, "N.planar3", bonds)
						}
						return m.accept(st, atom, "N.sp2", bonds)
					case 1:
						return m.accept(st, atom, "N.planar3", bonds)
					}
				case bothNeighborsAreSp2(st, atom, bonds) && st.ringAtom(atom):
					return m.accept(st, atom, "N.planar3", bonds)
				default:
					return m.accept(st, atom, "N.sp3", bonds)
				}
			case 3:
				if bothNeighborsAreSp2(st, atom, bonds) && st.ringAtom(atom) {
					if t, err := m.accept(st, atom, "N.planar3", bonds); t != nil || err != nil {
						return t, err
					}
				}
				return m.accept(st, atom, "N.sp3", bonds)
			case 1, 0:
				return m.accept(st, atom, "N.sp3", bonds)
			}
		case chem.OrderDouble:
			if len(bonds) == 3 && countAttachedDoubleBondsTo(bonds, atom, chem.Oxygen) == 2 {
				if t, err := m.accept(st, atom, "N.nitro", bonds); t != nil || err != nil {
					return t, err
				}
			} else if len(bonds) == 3 && countAttachedDoubleBonds(bonds, atom) > 0 {
				if t, err := m.accept(st, atom, "N.sp2.3", bonds); t != nil || err != nil {
					return t, err
				}
			}
			return m.accept(st, atom, "N.sp2", bonds)
		case chem.OrderTriple:
			if len(bonds) > 1 {
				return m.accept(st, atom, "N.sp1.2", bonds)
			}
			return m.accept(st, atom, "N.sp1", bonds)
		}
	}
	return nil, nil
}

func (m *Matcher) perceiveNitrogenRadical(st *state, atom *molecule.Atom) (*atomtype.Type, error) {
	n := st.mol.ConnectedBondCount(atom)
	max := st.mol.MaximumBondOrder(atom)
	if n >= 1 && n <= 2 {
		switch {
		case isCharge(atom, 1):
			switch max {
			case chem.OrderDouble:
				return m.accept(st, atom, "N.plus.sp2.radical", nil)
			case chem.OrderSingle:
				return m.accept(st, atom, "N.plus.sp3.radical", nil)
			}
		case isCharge(atom, 0):
			switch max {
			case chem.OrderSingle:
				return m.accept(st, atom, "N.sp3.radical", nil)
			case chem.OrderDouble:
				return m.accept(st, atom, "N.sp2.radical", nil)
			}
		}
		return nil, nil
	}
	if isCharge(atom, 1) && max == chem.OrderSingle {
		return m.accept(st, atom, "N.plus.sp3.radical", nil)
	}
	return nil, nil
}
