package chemio

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/turtacn/AtomSense/internal/domain/molecule"
	"github.com/turtacn/AtomSense/pkg/errors"
	"github.com/turtacn/AtomSense/pkg/types/chem"
)

// ─────────────────────────────────────────────────────────────────────────────
// SD file reading
// ─────────────────────────────────────────────────────────────────────────────

// Reader iterates the records of an SD file.  Each record is a molfile
// connection table followed by data items and a "$$$$" separator; data item
// values land in the molecule's Properties bag under their tag.
type Reader struct {
	sc   *bufio.Scanner
	done bool
}

// NewReader wraps an SD file stream.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	return &Reader{sc: sc}
}

// Next returns the next record, or io.EOF after the last one.
func (r *Reader) Next() (*molecule.Molecule, error) {
	if r.done {
		return nil, io.EOF
	}
	mol, err := readRecord(r.sc, true)
	if err != nil {
		return nil, err
	}
	if mol == nil {
		r.done = true
		return nil, io.EOF
	}
	return mol, nil
}

// ReadAll drains the stream into a slice.  An empty input is an error; a
// caller with nothing to classify almost always holds the wrong file.
func ReadAll(r io.Reader) ([]*molecule.Molecule, error) {
	rd := NewReader(r)
	var mols []*molecule.Molecule
	for {
		mol, err := rd.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		mols = append(mols, mol)
	}
	if len(mols) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyInput, "no molecules in input")
	}
	return mols, nil
}

// readDataItems consumes "> <tag>" data items up to the "$$$$" record
// separator or end of input.
func readDataItems(sc *bufio.Scanner, mol *molecule.Molecule) error {
	var tag string
	var value []string
	flush := func() {
		if tag != "" {
			mol.Properties[tag] = strings.Join(value, "\n")
		}
		tag, value = "", nil
	}
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "$$$$"):
			flush()
			return nil
		case strings.HasPrefix(line, ">"):
			flush()
			if open := strings.Index(line, "<"); open >= 0 {
				if close := strings.Index(line[open:], ">"); close > 0 {
					tag = line[open+1 : open+close]
				}
			}
		case strings.TrimSpace(line) == "":
			flush()
		default:
			if tag != "" {
				value = append(value, line)
			}
		}
	}
	flush()
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// SD file writing
// ─────────────────────────────────────────────────────────────────────────────

// TypeTag is the data-item tag under which WriteRecord stores the perceived
// atom types, one "index symbol type" triple per line.
const TypeTag = "ATOMSENSE.ATOM_TYPES"

// Writer emits SD records, optionally annotated with perceived atom types.
type Writer struct {
	w io.Writer
}

// NewWriter wraps an output stream.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteRecord writes one molecule as an SD record.  When types is non-nil it
// must hold one type name per atom, in atom order, and is emitted as the
// TypeTag data item alongside the record's existing properties.
func (w *Writer) WriteRecord(mol *molecule.Molecule, types []string) error {
	if mol == nil {
		return errors.InvalidParam("cannot write a nil molecule")
	}
	if types != nil && len(types) != mol.AtomCount() {
		return errors.InvalidParam("type annotations must cover every atom").
			WithDetail(fmt.Sprintf("%d types for %d atoms", len(types), mol.AtomCount()))
	}

	var sb strings.Builder
	sb.WriteString(mol.Title)
	sb.WriteString("\n  AtomSense\n\n")
	fmt.Fprintf(&sb, "%3d%3d  0  0  0  0  0  0  0  0999 V2000\n",
		mol.AtomCount(), mol.BondCount())

	var charged, radical []*molecule.Atom
	for _, a := range mol.Atoms() {
		fmt.Fprintf(&sb, "%10.4f%10.4f%10.4f %-3s 0  0  0  0  0  0  0  0  0  0  0  0\n",
			a.X, a.Y, 0.0, a.Symbol())
		if a.Charge() != 0 {
			charged = append(charged, a)
		}
		if a.SingleElectrons > 0 {
			radical = append(radical, a)
		}
	}
	for _, b := range mol.Bonds() {
		fmt.Fprintf(&sb, "%3d%3d%3d  0  0  0  0\n",
			mol.AtomIndex(b.Begin)+1, mol.AtomIndex(b.End)+1, bondType(b))
	}
	writePropertyLine(&sb, "CHG", mol, charged, func(a *molecule.Atom) int { return a.Charge() })
	writePropertyLine(&sb, "RAD", mol, radical, func(a *molecule.Atom) int {
		return a.SingleElectrons + 1
	})
	sb.WriteString("M  END\n")

	if types != nil {
		fmt.Fprintf(&sb, "> <%s>\n", TypeTag)
		for i, a := range mol.Atoms() {
			fmt.Fprintf(&sb, "%d %s %s\n", i+1, a.Symbol(), types[i])
		}
		sb.WriteString("\n")
	}
	for tag, val := range mol.Properties {
		fmt.Fprintf(&sb, "> <%s>\n%v\n\n", tag, val)
	}
	sb.WriteString("$$$$\n")

	_, err := io.WriteString(w.w, sb.String())
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "write SD record")
	}
	return nil
}

// bondType maps a bond back onto the V2000 bond-type column.  Aromatic and
// single-or-double bonds round-trip as type 4.
func bondType(b *molecule.Bond) int {
	switch {
	case b.Aromatic, b.SingleOrDouble:
		return 4
	case b.Order == chem.OrderDouble:
		return 2
	case b.Order == chem.OrderTriple:
		return 3
	default:
		return 1
	}
}

// writePropertyLine emits "M  CHG"/"M  RAD" lines in runs of at most eight
// entries, the format's per-line limit.
func writePropertyLine(sb *strings.Builder, kind string, mol *molecule.Molecule,
	atoms []*molecule.Atom, value func(*molecule.Atom) int) {
	for start := 0; start < len(atoms); start += 8 {
		run := atoms[start:min(start+8, len(atoms))]
		fmt.Fprintf(sb, "M  %s%3d", kind, len(run))
		for _, a := range run {
			fmt.Fprintf(sb, " %3d %3d", mol.AtomIndex(a)+1, value(a))
		}
		sb.WriteString("\n")
	}
}
