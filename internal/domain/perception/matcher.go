// Package perception assigns every atom of a molecular graph a named type
// from the atomtype reference dictionary.  Each element gets a prioritized
// cascade of structural predicates over the atom's local neighborhood; every
// candidate the cascade proposes must pass the shared validator before it is
// returned, and an atom no cascade can resolve receives the placeholder type
// rather than an error.  Branch order inside a cascade decides which type an
// ambiguous atom gets and must not be reordered without regression coverage.
package perception

import (
	"fmt"
	"strings"

	"github.com/turtacn/AtomSense/internal/domain/atomtype"
	"github.com/turtacn/AtomSense/internal/domain/molecule"
	"github.com/turtacn/AtomSense/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/AtomSense/pkg/errors"
	"github.com/turtacn/AtomSense/pkg/types/chem"
)

// Mode selects how strictly the validator accounts for hydrogens.
type Mode int

const (
	// ModePermissive folds implicit hydrogens into neighbor counting.
	ModePermissive Mode = iota + 1

	// ModeExplicitHydrogens requires every hydrogen to be an explicit
	// graph atom; the explicit bond count must match a type's neighbor
	// count exactly.
	ModeExplicitHydrogens
)

func (m Mode) String() string {
	switch m {
	case ModePermissive:
		return "permissive"
	case ModeExplicitHydrogens:
		return "strict-explicit-hydrogens"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode reads a mode from its configuration spelling.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "permissive":
		return ModePermissive, nil
	case "strict", "strict-explicit-hydrogens", "explicit-hydrogens":
		return ModeExplicitHydrogens, nil
	default:
		return 0, errors.InvalidParam("unknown perception mode").WithDetail(s)
	}
}

// Matcher classifies atoms against one dictionary in one mode.  It holds no
// per-call state, so a single instance may serve concurrent callers as long
// as the graphs they pass are not concurrently mutated.
type Matcher struct {
	dict *atomtype.Dictionary
	mode Mode
	log  logging.Logger
}

// New builds a matcher.  A nil logger falls back to the no-op logger.
func New(dict *atomtype.Dictionary, mode Mode, log logging.Logger) *Matcher {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Matcher{dict: dict, mode: mode, log: log}
}

// Mode returns the matcher's hydrogen-handling mode.
func (m *Matcher) Mode() Mode {
	return m.mode
}

// Dictionary returns the reference table the matcher classifies against.
func (m *Matcher) Dictionary() *atomtype.Dictionary {
	return m.dict
}

// classifier is one element's decision cascade.  bonds may be nil; cascades
// that need the incident bond list fetch it from the state.
type classifier func(*Matcher, *state, *molecule.Atom, []*molecule.Bond) (*atomtype.Type, error)

// dispatch routes an atomic number to its cascade.  Elements absent from
// the table run through the shared fallback chain instead.
var dispatch = map[int]classifier{
	chem.Carbon:     (*Matcher).perceiveCarbon,
	chem.Hydrogen:   (*Matcher).perceiveHydrogen,
	chem.Oxygen:     (*Matcher).perceiveOxygen,
	chem.Nitrogen:   (*Matcher).perceiveNitrogen,
	chem.Sulfur:     (*Matcher).perceiveSulfur,
	chem.Phosphorus: (*Matcher).perceivePhosphorus,
	chem.Silicon:    (*Matcher).perceiveSilicon,
	chem.Lithium:    (*Matcher).perceiveLithium,
	chem.Boron:      (*Matcher).perceiveBoron,
	chem.Beryllium:  (*Matcher).perceiveBeryllium,
	chem.Chromium:   (*Matcher).perceiveChromium,
	chem.Selenium:   (*Matcher).perceiveSelenium,
	chem.Molybdenum: (*Matcher).perceiveMolybdenum,
	chem.Rubidium:   (*Matcher).perceiveRubidium,
	chem.Tellurium:  (*Matcher).perceiveTellurium,
	chem.Copper:     (*Matcher).perceiveCopper,
	chem.Barium:     (*Matcher).perceiveBarium,
	chem.Gallium:    (*Matcher).perceiveGallium,
	chem.Ruthenium:  (*Matcher).perceiveRuthenium,
	chem.Zinc:       (*Matcher).perceiveZinc,
	chem.Aluminium:  (*Matcher).perceiveAluminium,
	chem.Nickel:     (*Matcher).perceiveNickel,
	chem.Gadolinium: (*Matcher).perceiveGadolinium,
	chem.Germanium:  (*Matcher).perceiveGermanium,
	chem.Cobalt:     (*Matcher).perceiveCobalt,
	chem.Bromine:    (*Matcher).perceiveBromine,
	chem.Vanadium:   (*Matcher).perceiveVanadium,
	chem.Titanium:   (*Matcher).perceiveTitanium,
	chem.Strontium:  (*Matcher).perceiveStrontium,
	chem.Lead:       (*Matcher).perceiveLead,
	chem.Thallium:   (*Matcher).perceiveThallium,
	chem.Antimony:   (*Matcher).perceiveAntimony,
	chem.Platinum:   (*Matcher).perceivePlatinum,
	chem.Mercury:    (*Matcher).perceiveMercury,
	chem.Iron:       (*Matcher).perceiveIron,
	chem.Radium:     (*Matcher).perceiveRadium,
	chem.Gold:       (*Matcher).perceiveGold,
	chem.Silver:     (*Matcher).perceiveSilver,
	chem.Chlorine:   (*Matcher).perceiveChlorine,
	chem.Indium:     (*Matcher).perceiveIndium,
	chem.Plutonium:  (*Matcher).perceivePlutonium,
	chem.Thorium:    (*Matcher).perceiveThorium,
	chem.Potassium:  (*Matcher).perceivePotassium,
	chem.Manganese:  (*Matcher).perceiveManganese,
	chem.Magnesium:  (*Matcher).perceiveMagnesium,
	chem.Sodium:     (*Matcher).perceiveSodium,
	chem.Arsenic:    (*Matcher).perceiveArsenic,
	chem.Cadmium:    (*Matcher).perceiveCadmium,
	chem.Calcium:    (*Matcher).perceiveCalcium,
}

// Classify assigns a type to one atom of the molecule.  Classification is
// total: atoms no cascade resolves get the placeholder type, and only a
// dictionary inconsistency or an atom outside the molecule produces an
// error.
func (m *Matcher) Classify(mol *molecule.Molecule, atom *molecule.Atom) (*atomtype.Type, error) {
	if mol == nil || atom == nil {
		return nil, errors.InvalidParam("classification requires a molecule and an atom")
	}
	if !mol.Contains(atom) {
		return nil, errors.New(errors.ErrCodeAtomNotInMolecule,
			"atom does not belong to the molecule")
	}
	return m.classify(newAtomState(mol), atom, nil)
}

// ClassifyAll assigns a type to every atom, in atom order.  The ring
// analysis and the connected-bonds index are computed once and shared by
// the whole batch.  A dictionary error on any atom fails the batch as a
// whole; no partial result is returned.
func (m *Matcher) ClassifyAll(mol *molecule.Molecule) ([]*atomtype.Type, error) {
	if mol == nil {
		return nil, errors.InvalidParam("classification requires a molecule")
	}
	st := newBatchState(mol)
	types := make([]*atomtype.Type, 0, mol.AtomCount())
	for i, atom := range mol.Atoms() {
		t, err := m.classify(st, atom, st.bonds[atom])
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeUnknown,
				fmt.Sprintf("classify atom %d", i))
		}
		types = append(types, t)
	}
	return types, nil
}

// Accepts re-runs the validation gate for an (atom, type) pair, for callers
// that want to confirm a previously assigned type still fits the graph.
func (m *Matcher) Accepts(mol *molecule.Molecule, atom *molecule.Atom, t *atomtype.Type) bool {
	if mol == nil || atom == nil || t == nil {
		return false
	}
	return m.accepts(newAtomState(mol), atom, t, nil)
}

func (m *Matcher) classify(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	if atom.PseudoAtom {
		m.log.Warn("wildcard atom assigned the placeholder type",
			logging.String("label", atom.Label))
		return m.dict.Get(atomtype.PlaceholderName)
	}
	if atom.AtomicNumber == 0 {
		return m.dict.Get(atomtype.PlaceholderName)
	}

	var t *atomtype.Type
	var err error
	if perceive, ok := dispatch[atom.AtomicNumber]; ok {
		t, err = perceive(m, st, atom, bonds)
	} else {
		t, err = m.perceiveFallbacks(st, atom, bonds)
	}
	if err != nil {
		return nil, err
	}
	if t == nil {
		return m.dict.Get(atomtype.PlaceholderName)
	}
	return t, nil
}

// perceiveFallbacks is the catch-all chain for elements without a cascade
// of their own: halogen residuals, then ionic salt formers, then bare
// organometallic centers, then noble gases.  First hit wins.
func (m *Matcher) perceiveFallbacks(st *state, atom *molecule.Atom, bonds []*molecule.Bond) (*atomtype.Type, error) {
	t, err := m.perceiveHalogenResiduals(st, atom, bonds)
	if t != nil || err != nil {
		return t, err
	}
	t, err = m.perceiveCommonSalts(st, atom, bonds)
	if t != nil || err != nil {
		return t, err
	}
	t, err = m.perceiveOrganometallicCenters(st, atom, bonds)
	if t != nil || err != nil {
		return t, err
	}
	return m.perceiveNobleGases(st, atom, bonds)
}

// accept resolves a candidate by name and submits it to the validation
// gate.  It returns the type when accepted, nil when rejected, and an error
// only when the name is missing from the dictionary, which indicates an
// inconsistency between cascade code and reference data.
func (m *Matcher) accept(st *state, atom *molecule.Atom, name string, bonds []*molecule.Bond) (*atomtype.Type, error) {
	t, err := m.dict.Get(name)
	if err != nil {
		return nil, err
	}
	if m.accepts(st, atom, t, bonds) {
		return t, nil
	}
	return nil, nil
}
