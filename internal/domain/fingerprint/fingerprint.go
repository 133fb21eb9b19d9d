// Package fingerprint folds typed molecular graphs into fixed-width bit
// vectors.  The fingerprint is seeded from the perceived atom type names, so
// two molecules compare as similar when their typed environments overlap, not
// merely their element counts.  The packed form feeds Tanimoto comparison
// locally and binary-vector indexing in Milvus.
package fingerprint

import (
	"crypto/sha256"
	"encoding/binary"
	"math/bits"
	"sort"
	"strings"

	"github.com/turtacn/AtomSense/internal/domain/molecule"
	"github.com/turtacn/AtomSense/pkg/errors"
)

const (
	// DefaultLength is the bit width used when the caller passes none.
	DefaultLength = 2048

	// DefaultRadius is the neighborhood depth used when the caller passes
	// a negative radius.
	DefaultRadius = 2
)

// ─────────────────────────────────────────────────────────────────────────────
// Fingerprint
// ─────────────────────────────────────────────────────────────────────────────

// Fingerprint is a packed bit vector; bit i lives in byte i/8 at position
// i%8.
type Fingerprint struct {
	Bits   []byte `json:"bits"`
	Length int    `json:"length"`
	OnBits int    `json:"on_bits"`
}

// New returns an all-zero fingerprint of the given bit width.
func New(length int) *Fingerprint {
	if length <= 0 {
		length = DefaultLength
	}
	return &Fingerprint{
		Bits:   make([]byte, (length+7)/8),
		Length: length,
	}
}

// FromBytes rebuilds a fingerprint from its packed representation, restoring
// the popcount.
func FromBytes(data []byte, length int) (*Fingerprint, error) {
	if length <= 0 || (length+7)/8 != len(data) {
		return nil, errors.InvalidParam("packed fingerprint does not match the stated bit width")
	}
	on := 0
	for _, b := range data {
		on += bits.OnesCount8(b)
	}
	return &Fingerprint{Bits: data, Length: length, OnBits: on}, nil
}

// Bit reports whether the bit at index is set.  Out-of-range indexes read as
// unset.
func (fp *Fingerprint) Bit(index int) bool {
	if index < 0 || index >= fp.Length {
		return false
	}
	return fp.Bits[index/8]&(1<<uint(index%8)) != 0
}

// SetBit sets one bit and keeps the popcount current.
func (fp *Fingerprint) SetBit(index int) {
	if index < 0 || index >= fp.Length {
		return
	}
	mask := byte(1) << uint(index%8)
	if fp.Bits[index/8]&mask == 0 {
		fp.Bits[index/8] |= mask
		fp.OnBits++
	}
}

// ToBytes exposes the packed form for storage and for the Milvus binary
// vector field.
func (fp *Fingerprint) ToBytes() []byte {
	return fp.Bits
}

// ─────────────────────────────────────────────────────────────────────────────
// Typed circular fingerprint
// ─────────────────────────────────────────────────────────────────────────────

// Typed computes a circular fingerprint over the molecule seeded by the
// assigned type names, one name per atom in atom order.  Sphere zero hashes
// each type name alone; every further sphere rehashes each atom's key joined
// with the sorted bond-order-prefixed keys of its neighbors, so substructure
// context accumulates with the radius.
func Typed(mol *molecule.Molecule, names []string, radius, length int) (*Fingerprint, error) {
	if mol == nil {
		return nil, errors.InvalidParam("fingerprint requires a molecule")
	}
	if mol.AtomCount() == 0 {
		return nil, errors.InvalidParam("fingerprint requires at least one atom")
	}
	if len(names) != mol.AtomCount() {
		return nil, errors.InvalidParam("fingerprint requires one type name per atom")
	}
	if radius < 0 {
		radius = DefaultRadius
	}
	if length <= 0 {
		length = DefaultLength
	}

	fp := New(length)
	atoms := mol.Atoms()
	env := make([]string, len(atoms))
	for i, name := range names {
		env[i] = name
		fp.SetBit(fold(name, length))
	}

	for r := 1; r <= radius; r++ {
		next := make([]string, len(atoms))
		for i, atom := range atoms {
			incident := mol.ConnectedBonds(atom)
			keys := make([]string, 0, len(incident))
			for _, bond := range incident {
				j := mol.AtomIndex(bond.Other(atom))
				keys = append(keys, bond.Order.String()+":"+env[j])
			}
			sort.Strings(keys)
			next[i] = env[i] + "(" + strings.Join(keys, ",") + ")"
			fp.SetBit(fold(next[i], length))
		}
		env = next
	}
	return fp, nil
}

// fold hashes an environment key onto one bit index.
func fold(key string, length int) int {
	sum := sha256.Sum256([]byte(key))
	return int(binary.BigEndian.Uint64(sum[:8]) % uint64(length))
}
