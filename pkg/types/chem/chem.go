// Package chem defines the shared chemistry vocabulary used across every
// layer of AtomSense: bond orders, orbital hybridizations, and the element
// table. No domain logic lives here — only plain types that are safe to
// import from any layer without creating circular dependencies.
package chem

import "fmt"

// ─────────────────────────────────────────────────────────────────────────────
// BondOrder — formal order of a covalent bond
// ─────────────────────────────────────────────────────────────────────────────

// BondOrder is the formal order of a bond. The zero value OrderUnset means
// the order is unknown or intentionally left open (for example an aromatic
// bond read from a connection table that was never kekulized).
type BondOrder int

const (
	OrderUnset BondOrder = iota
	OrderSingle
	OrderDouble
	OrderTriple
	OrderQuadruple
)

var bondOrderNames = map[BondOrder]string{
	OrderUnset:     "unset",
	OrderSingle:    "single",
	OrderDouble:    "double",
	OrderTriple:    "triple",
	OrderQuadruple: "quadruple",
}

func (o BondOrder) String() string {
	if s, ok := bondOrderNames[o]; ok {
		return s
	}
	return fmt.Sprintf("BondOrder(%d)", int(o))
}

// IsSet reports whether the order carries a concrete value.
func (o BondOrder) IsSet() bool {
	return o > OrderUnset && o <= OrderQuadruple
}

// Numeric returns the order as a bond-order-sum contribution. Unset orders
// contribute nothing.
func (o BondOrder) Numeric() float64 {
	if !o.IsSet() {
		return 0
	}
	return float64(o)
}

// HigherThan reports whether o is a strictly higher order than other.
// Unset compares lower than every concrete order.
func (o BondOrder) HigherThan(other BondOrder) bool {
	return o > other
}

// ParseBondOrder converts a textual order ("single", "double", ...) into a
// BondOrder. The empty string parses to OrderUnset.
func ParseBondOrder(s string) (BondOrder, error) {
	switch s {
	case "", "unset":
		return OrderUnset, nil
	case "single":
		return OrderSingle, nil
	case "double":
		return OrderDouble, nil
	case "triple":
		return OrderTriple, nil
	case "quadruple":
		return OrderQuadruple, nil
	}
	return OrderUnset, fmt.Errorf("unknown bond order %q", s)
}

// ─────────────────────────────────────────────────────────────────────────────
// Hybridization — orbital geometry classification
// ─────────────────────────────────────────────────────────────────────────────

// Hybridization is the orbital-geometry class of an atom. The zero value
// HybridizationUnset means no hybridization has been assigned. Planar3 is the
// trigonal-planar arrangement of three sigma bonds with the lone pair in a p
// orbital, as found on pyrrole-like ring members.
type Hybridization int

const (
	HybridizationUnset Hybridization = iota
	HybridizationS
	HybridizationSP1
	HybridizationSP2
	HybridizationSP3
	HybridizationPlanar3
	HybridizationSP3D1
	HybridizationSP3D2
	HybridizationSP3D3
	HybridizationSP3D4
	HybridizationSP3D5
)

var hybridizationNames = map[Hybridization]string{
	HybridizationUnset:   "unset",
	HybridizationS:       "s",
	HybridizationSP1:     "sp1",
	HybridizationSP2:     "sp2",
	HybridizationSP3:     "sp3",
	HybridizationPlanar3: "planar3",
	HybridizationSP3D1:   "sp3d1",
	HybridizationSP3D2:   "sp3d2",
	HybridizationSP3D3:   "sp3d3",
	HybridizationSP3D4:   "sp3d4",
	HybridizationSP3D5:   "sp3d5",
}

func (h Hybridization) String() string {
	if s, ok := hybridizationNames[h]; ok {
		return s
	}
	return fmt.Sprintf("Hybridization(%d)", int(h))
}

// IsSet reports whether the hybridization carries a concrete value.
func (h Hybridization) IsSet() bool {
	return h > HybridizationUnset && h <= HybridizationSP3D5
}

// ParseHybridization converts a textual hybridization ("sp3", "planar3", ...)
// into a Hybridization. The empty string parses to HybridizationUnset.
func ParseHybridization(s string) (Hybridization, error) {
	for h, name := range hybridizationNames {
		if name == s {
			return h, nil
		}
	}
	if s == "" {
		return HybridizationUnset, nil
	}
	return HybridizationUnset, fmt.Errorf("unknown hybridization %q", s)
}
