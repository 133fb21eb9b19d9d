// Package atomtype holds the reference dictionary of named atom types.  Each
// entry describes the bonding pattern an atom must exhibit to carry that
// type: how many neighbors, which maximum bond order, which valency, charge
// and radical state.  The dictionary ships embedded in the binary and is
// immutable once loaded; the perception engine shares entries by reference.
package atomtype

import (
	"github.com/turtacn/AtomSense/pkg/types/chem"
)

// Type is one immutable dictionary entry.  Pointer fields are nil when the
// entry places no constraint on that property; a nil field must never be
// interpreted as zero.
type Type struct {
	// Name is the unique dictionary key, e.g. "C.sp3".
	Name string `json:"name"`

	// Symbol is the element symbol this type applies to.  The placeholder
	// type uses "X".
	Symbol string `json:"symbol"`

	// AtomicNumber is derived from Symbol at load time; 0 for the
	// placeholder.
	AtomicNumber int `json:"atomic_number"`

	// MaxBondOrder is the highest bond order an atom of this type may
	// carry; OrderUnset leaves bond orders unconstrained.
	MaxBondOrder chem.BondOrder `json:"max_bond_order,omitempty"`

	// Neighbors is the formal neighbor count including implicit
	// hydrogens.
	Neighbors *int `json:"neighbors,omitempty"`

	// Valency bounds the sum of bond orders plus implicit hydrogens.
	Valency *int `json:"valency,omitempty"`

	// FormalCharge is the charge an atom must carry; nil and zero are
	// equivalent during validation.
	FormalCharge *int `json:"formal_charge,omitempty"`

	// Hybridization records the orbital geometry associated with the
	// type.  It is descriptive and not enforced during validation.
	Hybridization chem.Hybridization `json:"hybridization,omitempty"`

	// LonePairs records the lone pair count associated with the type.
	LonePairs *int `json:"lone_pairs,omitempty"`

	// SingleElectrons is the unpaired electron count an atom must carry
	// exactly; nil skips the check entirely.
	SingleElectrons *int `json:"single_electrons,omitempty"`
}

// String returns the dictionary key.
func (t *Type) String() string {
	return t.Name
}

// Charge returns the formal charge, treating unset as zero.
func (t *Type) Charge() int {
	if t.FormalCharge == nil {
		return 0
	}
	return *t.FormalCharge
}

// IsPlaceholder reports whether this is the sentinel entry assigned to
// atoms no classifier could resolve.
func (t *Type) IsPlaceholder() bool {
	return t.Name == PlaceholderName
}

// PlaceholderName is the dictionary key of the sentinel type.
const PlaceholderName = "X"
