// Package ring answers cyclic-membership queries over a molecular graph.
// A bond lies on a ring exactly when it is not a bridge of the graph, so a
// single bridge-finding pass classifies every bond, and an atom lies on a
// ring when at least one of its bonds does.
package ring

import (
	"github.com/turtacn/AtomSense/internal/domain/molecule"
)

// Analysis holds the ring membership of one molecule snapshot.  It is built
// once and is read-only afterwards; if the molecule is modified a new
// Analysis must be computed.
type Analysis struct {
	ringAtoms map[*molecule.Atom]bool
	ringBonds map[*molecule.Bond]bool
}

// Analyze computes ring membership for every atom and bond of the molecule
// in O(atoms + bonds) using an iterative depth-first bridge search.
func Analyze(mol *molecule.Molecule) *Analysis {
	a := &Analysis{
		ringAtoms: make(map[*molecule.Atom]bool),
		ringBonds: make(map[*molecule.Bond]bool),
	}

	adjacency := make(map[*molecule.Atom][]*molecule.Bond, mol.AtomCount())
	for _, b := range mol.Bonds() {
		adjacency[b.Begin] = append(adjacency[b.Begin], b)
		adjacency[b.End] = append(adjacency[b.End], b)
	}

	disc := make(map[*molecule.Atom]int, mol.AtomCount())
	low := make(map[*molecule.Atom]int, mol.AtomCount())
	bridges := make(map[*molecule.Bond]bool)
	timer := 0

	type frame struct {
		atom *molecule.Atom
		via  *molecule.Bond
		next int
	}

	for _, root := range mol.Atoms() {
		if _, seen := disc[root]; seen {
			continue
		}
		disc[root] = timer
		low[root] = timer
		timer++

		stack := []frame{{atom: root}}
		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			bonds := adjacency[f.atom]

			if f.next < len(bonds) {
				b := bonds[f.next]
				f.next++
				if b == f.via {
					continue
				}
				other := b.Other(f.atom)
				if d, seen := disc[other]; seen {
					if d < low[f.atom] {
						low[f.atom] = d
					}
					continue
				}
				disc[other] = timer
				low[other] = timer
				timer++
				stack = append(stack, frame{atom: other, via: b})
				continue
			}

			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				continue
			}
			parent := &stack[len(stack)-1]
			if low[f.atom] < low[parent.atom] {
				low[parent.atom] = low[f.atom]
			}
			if low[f.atom] > disc[parent.atom] {
				bridges[f.via] = true
			}
		}
	}

	for _, b := range mol.Bonds() {
		if bridges[b] {
			continue
		}
		// A bond between two atoms of the same DFS tree that is not a
		// bridge lies on a cycle.  Isolated bonds are always bridges,
		// so everything left here is cyclic.
		a.ringBonds[b] = true
		a.ringAtoms[b.Begin] = true
		a.ringAtoms[b.End] = true
	}

	return a
}

// AtomInRing reports whether the atom lies on any cycle.
func (a *Analysis) AtomInRing(atom *molecule.Atom) bool {
	return a.ringAtoms[atom]
}

// BondInRing reports whether the bond lies on any cycle.
func (a *Analysis) BondInRing(bond *molecule.Bond) bool {
	return a.ringBonds[bond]
}

// RingAtomCount returns the number of atoms lying on at least one cycle.
func (a *Analysis) RingAtomCount() int {
	return len(a.ringAtoms)
}

// RingBondCount returns the number of bonds lying on at least one cycle.
func (a *Analysis) RingBondCount() int {
	return len(a.ringBonds)
}
