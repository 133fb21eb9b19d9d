// Package chemio reads and writes molecular structure files.  The reader
// understands MDL molfiles (V2000 connection tables) and multi-record SD
// files; the writer produces SD records annotated with the atom types the
// perception engine assigned.  Everything the connection table states —
// charge codes, radical lines, the aromatic bond type — is mapped onto the
// molecule model losslessly, because the perception cascades branch on
// exactly those annotations.
package chemio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/turtacn/AtomSense/internal/domain/molecule"
	"github.com/turtacn/AtomSense/pkg/errors"
	"github.com/turtacn/AtomSense/pkg/types/chem"
)

// ─────────────────────────────────────────────────────────────────────────────
// Molfile reading (V2000)
// ─────────────────────────────────────────────────────────────────────────────

// chargeCodes maps the atom-block charge column to formal charges.  Code 4
// is not a charge at all but a doublet radical marker.
var chargeCodes = map[int]int{
	1: +3,
	2: +2,
	3: +1,
	5: -1,
	6: -2,
	7: -3,
}

// pseudoSymbols are the atom-block symbols that stand for an unspecified
// substituent rather than an element.
var pseudoSymbols = map[string]bool{
	"*": true, "A": true, "Q": true, "R": true, "R#": true, "L": true, "LP": true,
}

// ParseMol parses a single molfile block from a string.
func ParseMol(block string) (*molecule.Molecule, error) {
	return ReadMol(strings.NewReader(block))
}

// ReadMol parses a single V2000 molfile from the reader.  The connection
// table ends at "M  END"; trailing SD data items are ignored here, use
// Reader for full SD records.
func ReadMol(r io.Reader) (*molecule.Molecule, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	mol, err := readRecord(sc, false)
	if err != nil {
		return nil, err
	}
	if mol == nil {
		return nil, errors.New(errors.ErrCodeEmptyInput, "no molecule in input")
	}
	return mol, nil
}

// readRecord reads one connection table (plus data items when sdf is true)
// from the scanner.  It returns (nil, nil) on a clean end of input.
func readRecord(sc *bufio.Scanner, sdf bool) (*molecule.Molecule, error) {
	header := make([]string, 0, 3)
	for len(header) < 3 {
		if !sc.Scan() {
			if len(header) == 0 || allBlank(header) {
				return nil, nil
			}
			return nil, errors.New(errors.ErrCodeMolfileSyntax, "unexpected end of input in header")
		}
		header = append(header, sc.Text())
	}
	if !sc.Scan() {
		return nil, errors.New(errors.ErrCodeMolfileSyntax, "missing counts line")
	}
	counts := sc.Text()
	if len(counts) >= 39 && !strings.Contains(counts[33:39], "V2000") {
		return nil, errors.New(errors.ErrCodeUnsupportedVersion,
			"only V2000 connection tables are supported").WithDetail(strings.TrimSpace(counts[33:39]))
	}
	atomCount, err := countsField(counts, 0)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeMolfileCounts, "atom count")
	}
	bondCount, err := countsField(counts, 3)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeMolfileCounts, "bond count")
	}

	mol := molecule.New()
	mol.Title = strings.TrimSpace(header[0])

	atoms := make([]*molecule.Atom, 0, atomCount)
	for i := 0; i < atomCount; i++ {
		if !sc.Scan() {
			return nil, errors.New(errors.ErrCodeMolfileAtomBlock,
				fmt.Sprintf("atom block truncated at atom %d of %d", i+1, atomCount))
		}
		a, err := parseAtomLine(sc.Text())
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeMolfileAtomBlock,
				fmt.Sprintf("atom %d", i+1))
		}
		atoms = append(atoms, mol.AddAtom(a))
	}
	for i := 0; i < bondCount; i++ {
		if !sc.Scan() {
			return nil, errors.New(errors.ErrCodeMolfileBondBlock,
				fmt.Sprintf("bond block truncated at bond %d of %d", i+1, bondCount))
		}
		if err := parseBondLine(sc.Text(), mol, atoms); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeMolfileBondBlock,
				fmt.Sprintf("bond %d", i+1))
		}
	}

	if err := readProperties(sc, atoms); err != nil {
		return nil, err
	}
	if sdf {
		if err := readDataItems(sc, mol); err != nil {
			return nil, err
		}
	}
	return mol, nil
}

// parseAtomLine reads one atom-block line: x, y, z coordinates, the element
// symbol and the legacy charge column.
func parseAtomLine(line string) (*molecule.Atom, error) {
	if len(line) < 34 {
		return nil, errors.New(errors.ErrCodeMolfileAtomBlock, "atom line too short").WithDetail(line)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(line[0:10]), 64)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeMolfileAtomBlock, "x coordinate")
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(line[10:20]), 64)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeMolfileAtomBlock, "y coordinate")
	}
	symbol := strings.TrimSpace(line[31:34])

	var a *molecule.Atom
	if pseudoSymbols[symbol] {
		a = molecule.NewPseudoAtom(symbol)
	} else {
		a, err = molecule.NewAtom(symbol)
		if err != nil {
			return nil, err
		}
	}
	a.X, a.Y = x, y

	if len(line) >= 39 {
		code, err := strconv.Atoi(strings.TrimSpace(line[36:39]))
		if err == nil && code != 0 {
			if code == 4 {
				a.SingleElectrons = 1
			} else if c, ok := chargeCodes[code]; ok {
				a.SetCharge(c)
			}
		}
	}
	return a, nil
}

// parseBondLine reads one bond-block line.  Bond type 4 is the aromatic
// query type: the bond carries no fixed order, is flagged aromatic and is
// known to resolve to single or double, and both end atoms inherit the
// aromatic flag.
func parseBondLine(line string, mol *molecule.Molecule, atoms []*molecule.Atom) error {
	if len(line) < 9 {
		return errors.New(errors.ErrCodeMolfileBondBlock, "bond line too short").WithDetail(line)
	}
	begin, err := strconv.Atoi(strings.TrimSpace(line[0:3]))
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeMolfileBondBlock, "begin atom index")
	}
	end, err := strconv.Atoi(strings.TrimSpace(line[3:6]))
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeMolfileBondBlock, "end atom index")
	}
	kind, err := strconv.Atoi(strings.TrimSpace(line[6:9]))
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeMolfileBondBlock, "bond type")
	}
	if begin < 1 || begin > len(atoms) || end < 1 || end > len(atoms) {
		return errors.New(errors.ErrCodeMolfileBondBlock,
			fmt.Sprintf("bond references atom outside 1..%d", len(atoms)))
	}

	var order chem.BondOrder
	switch kind {
	case 1:
		order = chem.OrderSingle
	case 2:
		order = chem.OrderDouble
	case 3:
		order = chem.OrderTriple
	case 4:
		order = chem.OrderUnset
	default:
		// Query bond types (5-8) carry no order information.
		order = chem.OrderUnset
	}

	b, err := mol.AddBond(atoms[begin-1], atoms[end-1], order)
	if err != nil {
		return err
	}
	if kind == 4 {
		b.Aromatic = true
		b.SingleOrDouble = true
		b.Begin.Aromatic = true
		b.End.Aromatic = true
	}
	return nil
}

// readProperties consumes the property block up to "M  END".  The first
// "M  CHG" or "M  RAD" line supersedes every legacy charge-column value, as
// the format requires.
func readProperties(sc *bufio.Scanner, atoms []*molecule.Atom) error {
	superseded := false
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "M  END"):
			return nil
		case strings.HasPrefix(line, "M  CHG"), strings.HasPrefix(line, "M  RAD"):
			if !superseded {
				for _, a := range atoms {
					a.FormalCharge = nil
					a.SingleElectrons = 0
				}
				superseded = true
			}
			if err := applyPropertyLine(line, atoms); err != nil {
				return err
			}
		default:
			// Other property lines (isotopes, atom lists) are not
			// needed for type perception.
		}
	}
	return errors.New(errors.ErrCodeMolfileSyntax, `connection table not terminated by "M  END"`)
}

// applyPropertyLine parses "M  CHG nn8 aaa vvv ..." style lines, pairs of
// 1-based atom index and value.
func applyPropertyLine(line string, atoms []*molecule.Atom) error {
	kind := line[3:6]
	fields := strings.Fields(line[6:])
	if len(fields) < 1 {
		return errors.New(errors.ErrCodeMolfileSyntax, "empty property line").WithDetail(line)
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || len(fields) < 1+2*n {
		return errors.New(errors.ErrCodeMolfileSyntax, "malformed property line").WithDetail(line)
	}
	for i := 0; i < n; i++ {
		idx, err1 := strconv.Atoi(fields[1+2*i])
		val, err2 := strconv.Atoi(fields[2+2*i])
		if err1 != nil || err2 != nil || idx < 1 || idx > len(atoms) {
			return errors.New(errors.ErrCodeMolfileSyntax, "malformed property entry").WithDetail(line)
		}
		a := atoms[idx-1]
		switch kind {
		case "CHG":
			a.SetCharge(val)
		case "RAD":
			// 1 singlet, 2 doublet, 3 triplet.
			switch val {
			case 1:
				a.LonePairs++
			case 2:
				a.SingleElectrons = 1
			case 3:
				a.SingleElectrons = 2
			}
		}
	}
	return nil
}

func countsField(line string, start int) (int, error) {
	if len(line) < start+3 {
		return 0, fmt.Errorf("counts line shorter than %d columns", start+3)
	}
	return strconv.Atoi(strings.TrimSpace(line[start : start+3]))
}

func allBlank(lines []string) bool {
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			return false
		}
	}
	return true
}
