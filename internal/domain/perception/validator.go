package perception

import (
	"github.com/turtacn/AtomSense/internal/domain/atomtype"
	"github.com/turtacn/AtomSense/internal/domain/molecule"
	"github.com/turtacn/AtomSense/pkg/types/chem"
)

// accepts decides whether a candidate type is structurally consistent with
// the atom.  It is the single acceptance gate: every candidate an element
// cascade proposes passes through here, and a descriptor field left unset
// places no constraint on its check.  The checks run in a fixed order and
// short-circuit on the first failure.
func (m *Matcher) accepts(st *state, atom *molecule.Atom, t *atomtype.Type, bonds []*molecule.Bond) bool {
	if bonds == nil {
		bonds = st.connectedBonds(atom)
	}

	// Neighbor count.  Strict mode demands the explicit bond count match
	// exactly; otherwise implicit hydrogens join the count, but only when
	// the atom states them.
	if m.mode == ModeExplicitHydrogens {
		if t.Neighbors != nil && len(bonds) != *t.Neighbors {
			return false
		}
	} else if atom.ImplicitHydrogens != nil && t.Neighbors != nil {
		if len(bonds)+*atom.ImplicitHydrogens > *t.Neighbors {
			return false
		}
	}

	// Bond orders.  An order above the type's maximum is out; a bond of
	// uncertain order passes only as "single or double", and a bond with
	// no order information at all cannot satisfy a constrained type.
	if t.MaxBondOrder != chem.OrderUnset {
		for _, b := range bonds {
			switch {
			case b.Order != chem.OrderUnset:
				if b.Order.HigherThan(t.MaxBondOrder) {
					return false
				}
			case b.SingleOrDouble:
				if t.MaxBondOrder != chem.OrderSingle && t.MaxBondOrder != chem.OrderDouble {
					return false
				}
			default:
				return false
			}
		}
	}

	// Valency: bond order sum plus implicit hydrogens stays within bound.
	if t.Valency != nil {
		valence := bondOrderSum(bonds)
		if atom.ImplicitHydrogens != nil {
			valence += float64(*atom.ImplicitHydrogens)
		}
		if valence > float64(*t.Valency) {
			return false
		}
	}

	// Formal charge, with unset equivalent to zero on either side.
	if !chargeEqual(atom.FormalCharge, t.FormalCharge) {
		return false
	}

	// Unpaired electron count, exact when the type states one.
	if t.SingleElectrons != nil && atom.SingleElectrons != *t.SingleElectrons {
		return false
	}

	return true
}

func chargeEqual(a, b *int) bool {
	if a == nil {
		return b == nil || *b == 0
	}
	if b == nil {
		return *a == 0
	}
	return *a == *b
}

// bondOrderSum totals the numeric orders of the bonds; unset orders count
// as zero.
func bondOrderSum(bonds []*molecule.Bond) float64 {
	var sum float64
	for _, b := range bonds {
		sum += b.Order.Numeric()
	}
	return sum
}
