package atomtype

import (
	_ "embed"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/turtacn/AtomSense/pkg/errors"
	"github.com/turtacn/AtomSense/pkg/types/chem"
)

//go:embed types.yaml
var embeddedDictionary []byte

// rawType mirrors the YAML schema.  Enumerated fields travel as strings and
// are parsed into their typed form during load.
type rawType struct {
	Name            string `yaml:"name"`
	Symbol          string `yaml:"symbol"`
	MaxBondOrder    string `yaml:"max_bond_order,omitempty"`
	Neighbors       *int   `yaml:"neighbors,omitempty"`
	Valency         *int   `yaml:"valency,omitempty"`
	Charge          *int   `yaml:"charge,omitempty"`
	Hybridization   string `yaml:"hybridization,omitempty"`
	LonePairs       *int   `yaml:"lone_pairs,omitempty"`
	SingleElectrons *int   `yaml:"single_electrons,omitempty"`
}

// Dictionary is the loaded, immutable atom-type reference table.
type Dictionary struct {
	types map[string]*Type
	names []string
}

// Load parses the embedded reference table.  Every AtomSense process uses
// the same table; Load exists separately from LoadFrom so tests can feed
// alternative tables through the same code path.
func Load() (*Dictionary, error) {
	return load(embeddedDictionary)
}

// LoadFrom parses a reference table from the reader.
func LoadFrom(r io.Reader) (*Dictionary, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDictionaryLoad, "read atom type table")
	}
	return load(data)
}

func load(data []byte) (*Dictionary, error) {
	var raw []rawType
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDictionaryLoad, "parse atom type table")
	}
	if len(raw) == 0 {
		return nil, errors.New(errors.ErrCodeDictionaryLoad, "atom type table is empty")
	}

	d := &Dictionary{
		types: make(map[string]*Type, len(raw)),
		names: make([]string, 0, len(raw)),
	}
	for i, rt := range raw {
		t, err := convert(rt)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDictionaryLoad,
				fmt.Sprintf("atom type entry %d", i))
		}
		if _, dup := d.types[t.Name]; dup {
			return nil, errors.New(errors.ErrCodeDictionaryDuplicate,
				"duplicate atom type name").WithDetail(t.Name)
		}
		d.types[t.Name] = t
		d.names = append(d.names, t.Name)
	}

	if _, ok := d.types[PlaceholderName]; !ok {
		return nil, errors.New(errors.ErrCodeDictionaryLoad,
			"atom type table lacks the placeholder entry").WithDetail(PlaceholderName)
	}
	return d, nil
}

func convert(rt rawType) (*Type, error) {
	if rt.Name == "" {
		return nil, fmt.Errorf("atom type without a name")
	}
	if rt.Symbol == "" {
		return nil, fmt.Errorf("atom type %q without an element symbol", rt.Name)
	}

	order, err := chem.ParseBondOrder(rt.MaxBondOrder)
	if err != nil {
		return nil, fmt.Errorf("atom type %q: %w", rt.Name, err)
	}
	hyb, err := chem.ParseHybridization(rt.Hybridization)
	if err != nil {
		return nil, fmt.Errorf("atom type %q: %w", rt.Name, err)
	}

	return &Type{
		Name:            rt.Name,
		Symbol:          rt.Symbol,
		AtomicNumber:    chem.AtomicNumber(rt.Symbol),
		MaxBondOrder:    order,
		Neighbors:       rt.Neighbors,
		Valency:         rt.Valency,
		FormalCharge:    rt.Charge,
		Hybridization:   hyb,
		LonePairs:       rt.LonePairs,
		SingleElectrons: rt.SingleElectrons,
	}, nil
}

// Get returns the entry for the exact name.  A missing name is a fatal
// inconsistency between the classification code and the reference table,
// not a chemistry condition, so it surfaces as an error rather than a nil.
func (d *Dictionary) Get(name string) (*Type, error) {
	t, ok := d.types[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeTypeUnknown,
			"atom type not in reference table").WithDetail(name)
	}
	return t, nil
}

// Lookup returns the entry for the name and whether it exists.
func (d *Dictionary) Lookup(name string) (*Type, bool) {
	t, ok := d.types[name]
	return t, ok
}

// Placeholder returns the sentinel entry.
func (d *Dictionary) Placeholder() *Type {
	return d.types[PlaceholderName]
}

// Len returns the number of entries.
func (d *Dictionary) Len() int {
	return len(d.types)
}

// Names returns all entry names in table order.
func (d *Dictionary) Names() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

// Types returns all entries in table order.
func (d *Dictionary) Types() []*Type {
	out := make([]*Type, 0, len(d.names))
	for _, name := range d.names {
		out = append(out, d.types[name])
	}
	return out
}

// ForSymbol returns the entries for one element symbol, sorted by name.
func (d *Dictionary) ForSymbol(symbol string) []*Type {
	var out []*Type
	for _, name := range d.names {
		if t := d.types[name]; t.Symbol == symbol {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
