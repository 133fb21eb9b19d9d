package perception

import (
	"github.com/turtacn/AtomSense/internal/domain/molecule"
	"github.com/turtacn/AtomSense/pkg/types/chem"
)

// The predicates in this file read an atom's first and second bonding
// sphere.  They never mutate the graph and never consult the dictionary;
// the element cascades combine them into classification decisions.

// maxBondOrder returns the highest stated order in the bond list, with
// single as the floor, so an atom whose bonds all lack orders still reads
// as singly bonded.
func maxBondOrder(bonds []*molecule.Bond) chem.BondOrder {
	max := chem.OrderSingle
	for _, b := range bonds {
		if b.Order.HigherThan(max) {
			max = b.Order
		}
	}
	return max
}

// hasSingleOrDoubleBonds reports whether any bond carries the
// uncertain-order flag.
func hasSingleOrDoubleBonds(bonds []*molecule.Bond) bool {
	for _, b := range bonds {
		if b.SingleOrDouble {
			return true
		}
	}
	return false
}

// hasAromaticBond reports whether any bond is flagged aromatic.
func hasAromaticBond(bonds []*molecule.Bond) bool {
	for _, b := range bonds {
		if b.Aromatic {
			return true
		}
	}
	return false
}

// isRadical reports whether the atom carries at least one unpaired
// electron.
func isRadical(atom *molecule.Atom) bool {
	return atom.SingleElectrons > 0
}

// isCharged reports whether a nonzero formal charge has been stated.
func isCharged(atom *molecule.Atom) bool {
	return atom.FormalCharge != nil && *atom.FormalCharge != 0
}

// isCharge reports whether the atom's formal charge equals q, with an
// unstated charge counting as zero.
func isCharge(atom *molecule.Atom, q int) bool {
	if atom.FormalCharge != nil {
		return *atom.FormalCharge == q
	}
	return q == 0
}

// hasHybridization reports whether the input stated an orbital geometry.
func hasHybridization(atom *molecule.Atom) bool {
	return atom.Hybridization != chem.HybridizationUnset
}

// countAttachedBonds counts bonds of the given order; when atomicNumber is
// nonzero only bonds to that element count.
func countAttachedBonds(bonds []*molecule.Bond, atom *molecule.Atom, order chem.BondOrder, atomicNumber int) int {
	count := 0
	for _, b := range bonds {
		if b.Order != order {
			continue
		}
		if atomicNumber != 0 {
			other := b.Other(atom)
			if other == nil || other.AtomicNumber != atomicNumber {
				continue
			}
		}
		count++
	}
	return count
}

func countAttachedDoubleBonds(bonds []*molecule.Bond, atom *molecule.Atom) int {
	return countAttachedBonds(bonds, atom, chem.OrderDouble, 0)
}

func countAttachedDoubleBondsTo(bonds []*molecule.Bond, atom *molecule.Atom, atomicNumber int) int {
	return countAttachedBonds(bonds, atom, chem.OrderDouble, atomicNumber)
}

func countAttachedSingleBonds(bonds []*molecule.Bond, atom *molecule.Atom) int {
	return countAttachedBonds(bonds, atom, chem.OrderSingle, 0)
}

// countExplicitHydrogens counts bonds to explicit hydrogen atoms.
func countExplicitHydrogens(atom *molecule.Atom, bonds []*molecule.Bond) int {
	count := 0
	for _, b := range bonds {
		if other := b.Other(atom); other != nil && other.AtomicNumber == chem.Hydrogen {
			count++
		}
	}
	return count
}

// heavyBonds filters out hydrogen-hydrogen bonds.
func heavyBonds(bonds []*molecule.Bond) []*molecule.Bond {
	heavy := make([]*molecule.Bond, 0, len(bonds))
	for _, b := range bonds {
		if b.Begin.AtomicNumber == chem.Hydrogen && b.End.AtomicNumber == chem.Hydrogen {
			continue
		}
		heavy = append(heavy, b)
	}
	return heavy
}

// isCarboxylate recognizes the oxygen of a carboxylate group: the oxygen's
// lone carbon neighbor must carry exactly two oxygens, one double bonded
// and one single bonded with a -1 charge.
func isCarboxylate(st *state, atom *molecule.Atom, bonds []*molecule.Bond) bool {
	if len(bonds) != 1 {
		return false
	}
	carbon := bonds[0].Other(atom)
	if carbon == nil || carbon.AtomicNumber != chem.Carbon {
		return false
	}

	carbonBonds := st.connectedBonds(carbon)
	if len(carbonBonds) < 2 {
		return false
	}
	oxygens := 0
	singleNegative := 0
	doubleBonded := 0
	for _, cb := range carbonBonds {
		neighbor := cb.Other(carbon)
		if neighbor == nil || neighbor.AtomicNumber != chem.Oxygen {
			continue
		}
		oxygens++
		if cb.Order == chem.OrderSingle && neighbor.FormalCharge != nil && *neighbor.FormalCharge == -1 {
			singleNegative++
		} else if cb.Order == chem.OrderDouble {
			doubleBonded++
		}
	}
	return oxygens == 2 && singleNegative == 1 && doubleBonded == 1
}

// atLeastTwoNeighborsAreSp2 looks one sphere out: a neighbor counts as sp2
// when its bond here is double or aromatic, when it states sp2
// hybridization, or when it carries a double bond of its own.
func atLeastTwoNeighborsAreSp2(st *state, atom *molecule.Atom, bonds []*molecule.Bond) bool {
	count := 0
	for _, b := range bonds {
		if b.Order == chem.OrderDouble || b.Aromatic {
			count++
		} else {
			next := b.Other(atom)
			if next == nil {
				continue
			}
			if next.Hybridization == chem.HybridizationSP2 {
				count++
			} else if countAttachedDoubleBonds(st.connectedBonds(next), next) > 0 {
				count++
			}
		}
		if count >= 2 {
			return true
		}
	}
	return false
}

func bothNeighborsAreSp2(st *state, atom *molecule.Atom, bonds []*molecule.Bond) bool {
	return atLeastTwoNeighborsAreSp2(st, atom, bonds)
}

// isAmide reports whether the atom neighbors a carbonyl carbon.
func isAmide(st *state, atom *molecule.Atom, bonds []*molecule.Bond) bool {
	for _, b := range bonds {
		neighbor := b.Other(atom)
		if neighbor == nil || neighbor.AtomicNumber != chem.Carbon {
			continue
		}
		if countAttachedDoubleBondsTo(st.connectedBonds(neighbor), neighbor, chem.Oxygen) == 1 {
			return true
		}
	}
	return false
}

// isThioAmide reports whether the atom neighbors a thiocarbonyl carbon.
func isThioAmide(st *state, atom *molecule.Atom, bonds []*molecule.Bond) bool {
	for _, b := range bonds {
		neighbor := b.Other(atom)
		if neighbor == nil || neighbor.AtomicNumber != chem.Carbon {
			continue
		}
		if countAttachedDoubleBondsTo(st.connectedBonds(neighbor), neighbor, chem.Sulfur) == 1 {
			return true
		}
	}
	return false
}

// isSingleHeteroAtom reports whether the atom is the only heteroatom in its
// aromatic neighborhood, looking two spheres out along aromatic bonds.
func isSingleHeteroAtom(st *state, atom *molecule.Atom) bool {
	for _, b := range st.connectedBonds(atom) {
		if !b.Aromatic {
			continue
		}
		neighbor := b.Other(atom)
		if neighbor == nil || neighbor.AtomicNumber != chem.Carbon {
			return false
		}
		for _, nb := range st.connectedBonds(neighbor) {
			second := nb.Other(neighbor)
			if second == atom || !nb.Aromatic {
				continue
			}
			if second != nil && second.AtomicNumber != chem.Carbon {
				return false
			}
		}
	}
	return true
}
