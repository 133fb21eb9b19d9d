// Package molecule provides the structural graph model that the AtomSense
// perception engine reads.  A Molecule owns atoms and bonds and answers the
// local-connectivity queries (connected bonds, bond-order sum, maximum
// incident order) that every classification decision is built from.  The
// perception engine never mutates a molecule; all perceived state is returned
// alongside the graph, not written into it.
package molecule

import (
	"fmt"
	"sort"
	"strings"

	"github.com/turtacn/AtomSense/pkg/errors"
	"github.com/turtacn/AtomSense/pkg/types/chem"
	"github.com/turtacn/AtomSense/pkg/types/common"
)

// ─────────────────────────────────────────────────────────────────────────────
// Atom
// ─────────────────────────────────────────────────────────────────────────────

// Atom is a node of the molecular graph.  Nullable annotations (formal
// charge, implicit hydrogen count) are pointers so that "not stated" and
// "stated as zero" stay distinguishable; classification treats them
// differently.
type Atom struct {
	// AtomicNumber is 0 for pseudo atoms and atoms of unknown element.
	AtomicNumber int

	// Label overrides the element symbol for pseudo atoms ("R1", "*").
	Label string

	// FormalCharge is nil when no charge has been stated.
	FormalCharge *int

	// ImplicitHydrogens is nil when the hydrogen count has not been set;
	// zero means "stated to have no implicit hydrogens".
	ImplicitHydrogens *int

	// Hybridization is HybridizationUnset unless stated by the input.
	Hybridization chem.Hybridization

	// Aromatic marks atoms flagged aromatic by the input representation.
	Aromatic bool

	// SingleElectrons is the number of unpaired electrons on this atom.
	SingleElectrons int

	// LonePairs is the number of explicitly stated lone pairs.
	LonePairs int

	// PseudoAtom marks wildcard and query atoms that stand in for an
	// unspecified substituent rather than a concrete element.
	PseudoAtom bool

	// X, Y are 2-D depiction coordinates; zero when absent.
	X, Y float64
}

// NewAtom creates a concrete atom from an element symbol.
func NewAtom(symbol string) (*Atom, error) {
	n := chem.AtomicNumber(symbol)
	if n == 0 {
		return nil, errors.New(errors.ErrCodeUnknownElement, "unknown element symbol").
			WithDetail(fmt.Sprintf("symbol=%s", symbol))
	}
	return &Atom{AtomicNumber: n}, nil
}

// NewPseudoAtom creates a wildcard atom carrying a free-form label.
func NewPseudoAtom(label string) *Atom {
	return &Atom{Label: label, PseudoAtom: true}
}

// Symbol returns the element symbol, the label for pseudo atoms, or "*"
// when neither is known.
func (a *Atom) Symbol() string {
	if s := chem.Symbol(a.AtomicNumber); s != "" {
		return s
	}
	if a.Label != "" {
		return a.Label
	}
	return "*"
}

// Charge returns the formal charge, treating unset as zero.
func (a *Atom) Charge() int {
	if a.FormalCharge == nil {
		return 0
	}
	return *a.FormalCharge
}

// HydrogenCount returns the implicit hydrogen count, treating unset as zero.
func (a *Atom) HydrogenCount() int {
	if a.ImplicitHydrogens == nil {
		return 0
	}
	return *a.ImplicitHydrogens
}

// SetCharge states an explicit formal charge.
func (a *Atom) SetCharge(c int) *Atom {
	a.FormalCharge = &c
	return a
}

// SetImplicitHydrogens states an explicit implicit-hydrogen count.
func (a *Atom) SetImplicitHydrogens(h int) *Atom {
	a.ImplicitHydrogens = &h
	return a
}

// ─────────────────────────────────────────────────────────────────────────────
// Bond
// ─────────────────────────────────────────────────────────────────────────────

// Bond is an edge of the molecular graph between two distinct atoms.
type Bond struct {
	Begin *Atom
	End   *Atom

	// Order is OrderUnset when the input did not state one (query bonds,
	// aromatic bonds read from formats that encode them orderless).
	Order chem.BondOrder

	// Aromatic marks bonds flagged aromatic by the input representation.
	Aromatic bool

	// SingleOrDouble marks bonds of uncertain order that are known to be
	// either single or double (Kekulé-ambiguous aromatic input).
	SingleOrDouble bool
}

// Contains reports whether the atom is one of the bond's two ends.
func (b *Bond) Contains(a *Atom) bool {
	return b.Begin == a || b.End == a
}

// Other returns the atom at the opposite end from the given atom, or nil
// when the atom is not part of this bond.
func (b *Bond) Other(a *Atom) *Atom {
	switch a {
	case b.Begin:
		return b.End
	case b.End:
		return b.Begin
	default:
		return nil
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Molecule
// ─────────────────────────────────────────────────────────────────────────────

// Molecule is the graph aggregate: an ordered list of atoms, an ordered list
// of bonds, and an adjacency index maintained as bonds are added.  Atom and
// bond identity is pointer identity; the same *Atom value must not be added
// to two molecules.
type Molecule struct {
	ID    common.ID
	Title string

	// Properties carries free-form annotations from the input (SD data
	// fields and the like).
	Properties common.Metadata

	atoms     []*Atom
	bonds     []*Bond
	adjacency map[*Atom][]*Bond
	member    map[*Atom]bool
}

// New creates an empty molecule with a fresh identity.
func New() *Molecule {
	return &Molecule{
		ID:         common.NewID(),
		Properties: common.Metadata{},
		adjacency:  map[*Atom][]*Bond{},
		member:     map[*Atom]bool{},
	}
}

// AddAtom appends an atom to the molecule.  Adding the same atom twice is a
// no-op.  It returns the atom for call chaining.
func (m *Molecule) AddAtom(a *Atom) *Atom {
	if a == nil || m.member[a] {
		return a
	}
	m.atoms = append(m.atoms, a)
	m.member[a] = true
	return a
}

// NewAtom creates an atom from an element symbol and adds it in one step.
func (m *Molecule) NewAtom(symbol string) (*Atom, error) {
	a, err := NewAtom(symbol)
	if err != nil {
		return nil, err
	}
	return m.AddAtom(a), nil
}

// AddBond connects two previously added atoms.  Both atoms must already be
// members of this molecule and must be distinct.
func (m *Molecule) AddBond(begin, end *Atom, order chem.BondOrder) (*Bond, error) {
	if begin == nil || end == nil {
		return nil, errors.InvalidParam("bond requires two atoms")
	}
	if begin == end {
		return nil, errors.InvalidParam("bond cannot connect an atom to itself")
	}
	if !m.member[begin] || !m.member[end] {
		return nil, errors.New(errors.ErrCodeAtomNotInMolecule,
			"both bond ends must belong to the molecule")
	}
	b := &Bond{Begin: begin, End: end, Order: order}
	m.bonds = append(m.bonds, b)
	m.adjacency[begin] = append(m.adjacency[begin], b)
	m.adjacency[end] = append(m.adjacency[end], b)
	return b, nil
}

// Contains reports whether the atom belongs to this molecule.
func (m *Molecule) Contains(a *Atom) bool {
	return m.member[a]
}

// Atoms returns the atoms in insertion order.  The returned slice is shared;
// callers must not modify it.
func (m *Molecule) Atoms() []*Atom {
	return m.atoms
}

// Bonds returns the bonds in insertion order.  The returned slice is shared;
// callers must not modify it.
func (m *Molecule) Bonds() []*Bond {
	return m.bonds
}

// AtomCount returns the number of atoms.
func (m *Molecule) AtomCount() int {
	return len(m.atoms)
}

// BondCount returns the number of bonds.
func (m *Molecule) BondCount() int {
	return len(m.bonds)
}

// AtomIndex returns the insertion index of the atom, or -1 when the atom is
// not a member.
func (m *Molecule) AtomIndex(a *Atom) int {
	if !m.member[a] {
		return -1
	}
	for i, atom := range m.atoms {
		if atom == a {
			return i
		}
	}
	return -1
}

// ConnectedBonds returns the bonds incident to the atom.  The slice is a
// copy and safe to retain.
func (m *Molecule) ConnectedBonds(a *Atom) []*Bond {
	incident := m.adjacency[a]
	out := make([]*Bond, len(incident))
	copy(out, incident)
	return out
}

// ConnectedBondCount returns the number of explicit bonds on the atom.
func (m *Molecule) ConnectedBondCount(a *Atom) int {
	return len(m.adjacency[a])
}

// ConnectedAtoms returns the neighbors of the atom.
func (m *Molecule) ConnectedAtoms(a *Atom) []*Atom {
	incident := m.adjacency[a]
	out := make([]*Atom, 0, len(incident))
	for _, b := range incident {
		out = append(out, b.Other(a))
	}
	return out
}

// BondBetween returns the first bond connecting the two atoms, or nil when
// they are not bonded.
func (m *Molecule) BondBetween(a, b *Atom) *Bond {
	for _, bond := range m.adjacency[a] {
		if bond.Other(a) == b {
			return bond
		}
	}
	return nil
}

// MaximumBondOrder returns the highest order among the atom's bonds.  An
// atom without explicit bonds yields OrderSingle when it carries implicit
// hydrogens and OrderUnset otherwise, so that an isolated methane carbon
// still reads as singly bonded.
func (m *Molecule) MaximumBondOrder(a *Atom) chem.BondOrder {
	max := chem.OrderUnset
	seen := false
	for _, b := range m.adjacency[a] {
		if !seen || b.Order.HigherThan(max) {
			max = b.Order
			seen = true
		}
	}
	if !seen {
		if a.ImplicitHydrogens != nil && *a.ImplicitHydrogens > 0 {
			return chem.OrderSingle
		}
		return chem.OrderUnset
	}
	return max
}

// BondOrderSum returns the numeric sum of the atom's bond orders.  Bonds of
// unset order contribute nothing.
func (m *Molecule) BondOrderSum(a *Atom) float64 {
	var sum float64
	for _, b := range m.adjacency[a] {
		sum += b.Order.Numeric()
	}
	return sum
}

// SingleElectronCount returns the number of unpaired electrons on the atom.
func (m *Molecule) SingleElectronCount(a *Atom) int {
	return a.SingleElectrons
}

// LonePairCount returns the number of stated lone pairs on the atom.
func (m *Molecule) LonePairCount(a *Atom) int {
	return a.LonePairs
}

// ─────────────────────────────────────────────────────────────────────────────
// Derived descriptors
// ─────────────────────────────────────────────────────────────────────────────

// Formula returns the molecular formula in Hill order: carbon first, then
// hydrogen, then the remaining elements alphabetically.  Implicit hydrogens
// are counted together with explicit hydrogen atoms.  Pseudo atoms are
// excluded.
func (m *Molecule) Formula() string {
	counts := map[string]int{}
	for _, a := range m.atoms {
		if a.PseudoAtom || a.AtomicNumber == 0 {
			continue
		}
		counts[a.Symbol()]++
		counts["H"] += a.HydrogenCount()
	}
	if counts["H"] == 0 {
		delete(counts, "H")
	}

	symbols := make([]string, 0, len(counts))
	for s := range counts {
		if s != "C" && s != "H" {
			symbols = append(symbols, s)
		}
	}
	sort.Strings(symbols)
	if _, ok := counts["H"]; ok {
		symbols = append([]string{"H"}, symbols...)
	}
	if _, ok := counts["C"]; ok {
		symbols = append([]string{"C"}, symbols...)
	}

	var sb strings.Builder
	for _, s := range symbols {
		sb.WriteString(s)
		if n := counts[s]; n > 1 {
			fmt.Fprintf(&sb, "%d", n)
		}
	}
	return sb.String()
}

// Weight returns the molecular weight from standard atomic masses, counting
// implicit hydrogens.  Pseudo atoms contribute nothing.
func (m *Molecule) Weight() float64 {
	var w float64
	for _, a := range m.atoms {
		w += chem.AtomicMass(a.AtomicNumber)
		w += float64(a.HydrogenCount()) * chem.AtomicMass(chem.Hydrogen)
	}
	return w
}
