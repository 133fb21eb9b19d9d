// Package perception is the application service around the classification
// engine: it turns an input document into a molecule, runs the matcher, and
// fans the result out to the optional sinks (result store, graph mirror,
// cache, event stream, search and vector indexes).  The engine's verdict is
// authoritative; every sink is best-effort and individually degradable.
package perception

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/turtacn/AtomSense/internal/domain/fingerprint"
	"github.com/turtacn/AtomSense/internal/domain/molecule"
	"github.com/turtacn/AtomSense/pkg/types/common"
)

// Assignment is one atom's verdict.
type Assignment struct {
	// Index is the atom's position in the molecule, 0-based.
	Index int `json:"index"`

	// Symbol is the element symbol, or the pseudo-atom label.
	Symbol string `json:"symbol"`

	// Type is the assigned dictionary type name; "X" when unmatched.
	Type string `json:"type"`

	// Matched is false when the placeholder type was assigned.
	Matched bool `json:"matched"`
}

// Result is the persistent record of one molecule classification.
type Result struct {
	ID             common.ID    `json:"id"`
	MoleculeID     common.ID    `json:"molecule_id"`
	Name           string       `json:"name"`
	Formula        string       `json:"formula"`
	Mode           string       `json:"mode"`
	ContentHash    string       `json:"content_hash"`
	Atoms          []Assignment `json:"atoms"`
	UnmatchedCount int          `json:"unmatched_count"`
	CreatedAt      time.Time    `json:"created_at"`
}

// TypeNames returns the per-atom type names in atom order.
func (r *Result) TypeNames() []string {
	names := make([]string, len(r.Atoms))
	for i, a := range r.Atoms {
		names[i] = a.Type
	}
	return names
}

// TypeCounts tallies how often each type was assigned.
func (r *Result) TypeCounts() map[string]int {
	counts := make(map[string]int, len(r.Atoms))
	for _, a := range r.Atoms {
		counts[a.Type]++
	}
	return counts
}

// ContentHash derives a stable identity from the molecular graph and the
// classification mode, so identical inputs share one cache entry and one
// stored result regardless of titles or data items.
func ContentHash(mol *molecule.Molecule, mode string) string {
	var sb strings.Builder
	sb.WriteString(mode)
	sb.WriteByte('|')
	for _, a := range mol.Atoms() {
		fmt.Fprintf(&sb, "a:%s,%d,%d,%d,%t;",
			a.Symbol(), a.Charge(), a.HydrogenCount(), a.SingleElectrons, a.Aromatic)
	}
	lines := make([]string, 0, mol.BondCount())
	for _, b := range mol.Bonds() {
		i, j := mol.AtomIndex(b.Begin), mol.AtomIndex(b.End)
		if j < i {
			i, j = j, i
		}
		lines = append(lines, fmt.Sprintf("b:%d,%d,%s,%t,%t;",
			i, j, b.Order, b.Aromatic, b.SingleOrDouble))
	}
	sort.Strings(lines)
	for _, l := range lines {
		sb.WriteString(l)
	}
	sum := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(sum[:])
}

// ─────────────────────────────────────────────────────────────────────────────
// Sink contracts
// ─────────────────────────────────────────────────────────────────────────────

// ResultStore persists classification results.
type ResultStore interface {
	Save(ctx context.Context, r *Result) error
	FindByID(ctx context.Context, id string) (*Result, error)
	FindByHash(ctx context.Context, hash, mode string) (*Result, error)
	ListRecent(ctx context.Context, limit int) ([]*Result, error)
}

// GraphMirror projects the typed molecular graph into a graph database.
type GraphMirror interface {
	MirrorTypedGraph(ctx context.Context, mol *molecule.Molecule, r *Result) error
}

// EventPublisher announces completed classifications.
type EventPublisher interface {
	PublishPerceptionCompleted(ctx context.Context, r *Result) error
}

// ResultCache is the read-through cache keyed by content hash.  Its shape
// matches the redis cache adapter so the wiring layer can pass it through
// unwrapped.
type ResultCache interface {
	GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration,
		loader func(ctx context.Context) (interface{}, error)) (bool, error)
}

// OccurrenceIndexer feeds the type-occurrence search index.
type OccurrenceIndexer interface {
	IndexResult(ctx context.Context, r *Result) error
}

// VectorIndexer stores typed fingerprints for similarity search.
type VectorIndexer interface {
	UpsertFingerprint(ctx context.Context, id string, fp *fingerprint.Fingerprint) error
}
