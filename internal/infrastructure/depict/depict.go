// Package depict renders a molecule's 2-D layout to PNG.  Bonds are drawn by
// order, hetero atoms carry their element symbol and charge, and the atom
// types the perception engine assigned can be printed as per-atom labels,
// which is the main way a human verifies a classification at a glance.
package depict

import (
	"bytes"
	"image/png"
	"math"
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/turtacn/AtomSense/internal/domain/molecule"
	"github.com/turtacn/AtomSense/pkg/errors"
	"github.com/turtacn/AtomSense/pkg/types/chem"
)

// Options controls canvas size and labeling.
type Options struct {
	// Width and Height bound the canvas in pixels; non-positive values
	// fall back to 600.
	Width, Height int

	// FontPath points at a TTF file.  When empty or unreadable the fixed
	// 7x13 face is used instead, so depiction never fails over a font.
	FontPath string

	// TypeLabels prints the assigned type under each atom.
	TypeLabels bool
}

const (
	defaultSize = 600
	margin      = 40.0
)

// Render draws the molecule and returns the encoded PNG.  types may be nil;
// when present it must hold one type name per atom, in atom order.
func Render(mol *molecule.Molecule, types []string, opts Options) ([]byte, error) {
	if mol == nil || mol.AtomCount() == 0 {
		return nil, errors.New(errors.ErrCodeDepictionFailed, "nothing to depict")
	}
	if types != nil && len(types) != mol.AtomCount() {
		return nil, errors.InvalidParam("type labels must cover every atom")
	}
	if opts.Width <= 0 {
		opts.Width = defaultSize
	}
	if opts.Height <= 0 {
		opts.Height = defaultSize
	}

	layout := newLayout(mol, opts)
	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	fontSize := layout.fontSize()
	face := loadFace(opts.FontPath, fontSize)
	dc.SetFontFace(face)
	dc.SetLineWidth(math.Max(1, fontSize/10))

	drawBonds(dc, mol, layout)
	drawAtoms(dc, mol, layout, types, opts.TypeLabels)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDepictionFailed, "encode PNG")
	}
	return buf.Bytes(), nil
}

// RenderToFile draws the molecule straight into a PNG file.
func RenderToFile(path string, mol *molecule.Molecule, types []string, opts Options) error {
	data, err := Render(mol, types, opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, errors.ErrCodeDepictionFailed, "write PNG file")
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Layout
// ─────────────────────────────────────────────────────────────────────────────

// layout maps molecule coordinates onto the canvas, preserving aspect ratio.
type layout struct {
	minX, minY float64
	scale      float64
	offX, offY float64
	height     float64
	avgBond    float64
}

func newLayout(mol *molecule.Molecule, opts Options) *layout {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, a := range mol.Atoms() {
		minX, maxX = math.Min(minX, a.X), math.Max(maxX, a.X)
		minY, maxY = math.Min(minY, a.Y), math.Max(maxY, a.Y)
	}
	rx, ry := maxX-minX, maxY-minY
	if rx == 0 {
		rx = 1
	}
	if ry == 0 {
		ry = 1
	}

	w := float64(opts.Width) - 2*margin
	h := float64(opts.Height) - 2*margin
	scale := math.Min(w/rx, h/ry)

	var sum float64
	for _, b := range mol.Bonds() {
		sum += math.Hypot(b.End.X-b.Begin.X, b.End.Y-b.Begin.Y)
	}
	avg := 1.5
	if mol.BondCount() > 0 && sum > 0 {
		avg = sum / float64(mol.BondCount())
	}

	return &layout{
		minX:    minX,
		minY:    minY,
		scale:   scale,
		offX:    margin + (w-rx*scale)/2,
		offY:    margin + (h-ry*scale)/2,
		height:  float64(opts.Height),
		avgBond: avg,
	}
}

// point converts molecule coordinates to canvas coordinates.  Molfile y
// grows upward, canvas y downward.
func (l *layout) point(a *molecule.Atom) (float64, float64) {
	x := l.offX + l.scale*(a.X-l.minX)
	y := l.height - l.offY - l.scale*(a.Y-l.minY)
	return x, y
}

// fontSize ties the label size to the average bond length on canvas, capped
// so single-bond molecules do not produce poster-sized letters.
func (l *layout) fontSize() float64 {
	size := l.avgBond * l.scale / 1.8
	return math.Max(9, math.Min(size, l.height/16))
}

// ─────────────────────────────────────────────────────────────────────────────
// Drawing
// ─────────────────────────────────────────────────────────────────────────────

func drawBonds(dc *gg.Context, mol *molecule.Molecule, l *layout) {
	dc.SetRGB(0, 0, 0)
	for _, b := range mol.Bonds() {
		x1, y1 := l.point(b.Begin)
		x2, y2 := l.point(b.End)
		rad := math.Atan2(y2-y1, x2-x1)
		delta := math.Max(2, l.fontSize()/5)
		dx := math.Sin(rad) * delta
		dy := -math.Cos(rad) * delta

		switch {
		case b.Order == chem.OrderDouble:
			dc.DrawLine(x1+dx/2, y1+dy/2, x2+dx/2, y2+dy/2)
			dc.DrawLine(x1-dx/2, y1-dy/2, x2-dx/2, y2-dy/2)
		case b.Order == chem.OrderTriple:
			dc.DrawLine(x1, y1, x2, y2)
			dc.DrawLine(x1+dx, y1+dy, x2+dx, y2+dy)
			dc.DrawLine(x1-dx, y1-dy, x2-dx, y2-dy)
		case b.Aromatic || b.SingleOrDouble:
			dc.DrawLine(x1, y1, x2, y2)
			dc.Stroke()
			dc.SetDash(delta, delta)
			dc.DrawLine(x1+dx, y1+dy, x2+dx, y2+dy)
			dc.Stroke()
			dc.SetDash()
			continue
		default:
			dc.DrawLine(x1, y1, x2, y2)
		}
		dc.Stroke()
	}
}

func drawAtoms(dc *gg.Context, mol *molecule.Molecule, l *layout,
	types []string, typeLabels bool) {
	fontSize := l.fontSize()
	for i, a := range mol.Atoms() {
		x, y := l.point(a)

		// Carbons stay implicit unless they carry a charge or are
		// pseudo atoms; everything else is labeled.
		label := a.Symbol()
		show := a.AtomicNumber != chem.Carbon || a.Charge() != 0 || a.PseudoAtom
		if show {
			if c := a.Charge(); c != 0 {
				label += chargeSuffix(c)
			}
			w, h := dc.MeasureString(label)
			dc.SetRGB(1, 1, 1)
			dc.DrawRectangle(x-w/2-1, y-h/2-1, w+2, h+2)
			dc.Fill()
			dc.SetRGB(0, 0, 0)
			dc.DrawStringAnchored(label, x, y, 0.5, 0.5)
		}

		if typeLabels && types != nil {
			dc.SetRGB(0.25, 0.25, 0.55)
			dc.DrawStringAnchored(types[i], x, y+fontSize, 0.5, 0.5)
			dc.SetRGB(0, 0, 0)
		}
	}
}

func chargeSuffix(c int) string {
	switch {
	case c == 1:
		return "+"
	case c == -1:
		return "-"
	case c > 1:
		return "+" + string(rune('0'+c))
	default:
		return "-" + string(rune('0'-c))
	}
}

// loadFace parses the TTF at path, falling back to the builtin fixed face.
func loadFace(path string, size float64) font.Face {
	if path != "" {
		if data, err := os.ReadFile(path); err == nil {
			if f, err := truetype.Parse(data); err == nil {
				return truetype.NewFace(f, &truetype.Options{Size: size})
			}
		}
	}
	return basicfont.Face7x13
}
