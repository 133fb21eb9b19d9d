package perception

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/turtacn/AtomSense/internal/domain/molecule"
	"github.com/turtacn/AtomSense/pkg/types/chem"
)

func TestClassify_Trimethylborane(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	b := addAtom(t, mol, "B", 0)
	for i := 0; i < 3; i++ {
		c := addAtom(t, mol, "C", 3)
		addBond(t, mol, b, c, chem.OrderSingle)
	}

	assert.Equal(t, "B", classifyName(t, m, mol, b))
}

func TestClassify_Borohydride(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	b := addAtom(t, mol, "B", 0).SetCharge(-1)
	for i := 0; i < 4; i++ {
		h := addAtom(t, mol, "H", 0)
		addBond(t, mol, b, h, chem.OrderSingle)
	}

	names := classifyAllNames(t, m, mol)
	assert.Equal(t, []string{"B.minus", "H", "H", "H", "H"}, names)
}

func TestClassify_Tetramethylsilane(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	si := addAtom(t, mol, "Si", 0)
	for i := 0; i < 4; i++ {
		c := addAtom(t, mol, "C", 3)
		addBond(t, mol, si, c, chem.OrderSingle)
	}

	assert.Equal(t, "Si.sp3", classifyName(t, m, mol, si))
}

func TestClassify_TrisubstitutedSilicon(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	si := addAtom(t, mol, "Si", 0)
	for i := 0; i < 3; i++ {
		c := addAtom(t, mol, "C", 3)
		addBond(t, mol, si, c, chem.OrderSingle)
	}

	assert.Equal(t, "Si.3", classifyName(t, m, mol, si))
}

func TestClassify_Silylene(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	si := addAtom(t, mol, "Si", 0)
	for i := 0; i < 2; i++ {
		c := addAtom(t, mol, "C", 3)
		addBond(t, mol, si, c, chem.OrderSingle)
	}

	assert.Equal(t, "Si.2", classifyName(t, m, mol, si))
}

func TestClassify_Hexafluorosilicate(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	si := addAtom(t, mol, "Si", 0).SetCharge(-2)
	for i := 0; i < 6; i++ {
		f := addBareAtom(t, mol, "F")
		addBond(t, mol, si, f, chem.OrderSingle)
	}

	assert.Equal(t, "Si.2minus.6", classifyName(t, m, mol, si))
}

func TestClassify_SiliconRadicalUnresolved(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	si := addAtom(t, mol, "Si", 3)
	si.SingleElectrons = 1

	assert.Equal(t, "X", classifyName(t, m, mol, si))
}

func TestClassify_Tetramethylgermane(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	ge := addAtom(t, mol, "Ge", 0)
	for i := 0; i < 4; i++ {
		c := addAtom(t, mol, "C", 3)
		addBond(t, mol, ge, c, chem.OrderSingle)
	}

	assert.Equal(t, "Ge", classifyName(t, m, mol, ge))
}

// In strict mode a three-coordinate germanium falls past the four-neighbor
// type onto Ge.3.
func TestClassify_TrisubstitutedGermaniumStrict(t *testing.T) {
	m := strictMatcher(t)
	mol := molecule.New()
	ge := addAtom(t, mol, "Ge", 0)
	for i := 0; i < 3; i++ {
		c := addAtom(t, mol, "C", 3)
		addBond(t, mol, ge, c, chem.OrderSingle)
	}

	assert.Equal(t, "Ge.3", classifyName(t, m, mol, ge))
}

func TestClassify_Trimethylarsine(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	as := addAtom(t, mol, "As", 0)
	for i := 0; i < 3; i++ {
		c := addAtom(t, mol, "C", 3)
		addBond(t, mol, as, c, chem.OrderSingle)
	}

	assert.Equal(t, "As", classifyName(t, m, mol, as))
}

func TestClassify_TrimethylarsineOxide(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	as := addAtom(t, mol, "As", 0)
	o := addAtom(t, mol, "O", 0)
	addBond(t, mol, as, o, chem.OrderDouble)
	for i := 0; i < 3; i++ {
		c := addAtom(t, mol, "C", 3)
		addBond(t, mol, as, c, chem.OrderSingle)
	}

	assert.Equal(t, "As.5", classifyName(t, m, mol, as))
}

func TestClassify_Dimethylarsine(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	as := addAtom(t, mol, "As", 1)
	for i := 0; i < 2; i++ {
		c := addAtom(t, mol, "C", 3)
		addBond(t, mol, as, c, chem.OrderSingle)
	}

	assert.Equal(t, "As.planar3", classifyName(t, m, mol, as))
}

func TestClassify_Arsaalkene(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	c := addAtom(t, mol, "C", 2)
	as := addAtom(t, mol, "As", 0)
	methyl := addAtom(t, mol, "C", 3)
	addBond(t, mol, c, as, chem.OrderDouble)
	addBond(t, mol, as, methyl, chem.OrderSingle)

	assert.Equal(t, "As.2", classifyName(t, m, mol, as))
}

func TestClassify_Tetramethylarsonium(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	as := addAtom(t, mol, "As", 0).SetCharge(1)
	for i := 0; i < 4; i++ {
		c := addAtom(t, mol, "C", 3)
		addBond(t, mol, as, c, chem.OrderSingle)
	}

	assert.Equal(t, "As.plus", classifyName(t, m, mol, as))
}

func TestClassify_ArsenicCation(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	as := addBareAtom(t, mol, "As").SetCharge(3)

	assert.Equal(t, "As.3plus", classifyName(t, m, mol, as))
}

func TestClassify_DichloroArsenide(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	as := addAtom(t, mol, "As", 0).SetCharge(-1)
	for i := 0; i < 2; i++ {
		cl := addBareAtom(t, mol, "Cl")
		addBond(t, mol, as, cl, chem.OrderSingle)
	}

	assert.Equal(t, "As.minus", classifyName(t, m, mol, as))
}

// Selenium runs the widest oxidation-state ladder of the metalloids; each
// rung keys on neighbor count and double-bond count.
func TestClassify_SeleniumOxidationStates(t *testing.T) {
	m := permissiveMatcher(t)

	cases := []struct {
		name    string
		singles int
		doubles int
		want    string
	}{
		{"selenide", 2, 0, "Se.3"},
		{"selenol carbon", 1, 0, "Se.3"},
		{"selenoketone", 0, 1, "Se.1"},
		{"dioxide", 0, 2, "Se.sp2.2"},
		{"selenoxide", 2, 1, "Se.sp3.3"},
		{"selenone", 2, 2, "Se.sp3.4"},
		{"tetrasubstituted", 4, 0, "Se.sp3d1.4"},
		{"pentacoordinate", 4, 1, "Se.5"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mol := molecule.New()
			se := addAtom(t, mol, "Se", 0)
			for i := 0; i < tc.singles; i++ {
				c := addAtom(t, mol, "C", 3)
				addBond(t, mol, se, c, chem.OrderSingle)
			}
			for i := 0; i < tc.doubles; i++ {
				o := addAtom(t, mol, "O", 0)
				addBond(t, mol, se, o, chem.OrderDouble)
			}
			assert.Equal(t, tc.want, classifyName(t, m, mol, se))
		})
	}
}

func TestClassify_HydrogenSelenide(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	se := addAtom(t, mol, "Se", 2)

	assert.Equal(t, "Se.3", classifyName(t, m, mol, se))
}

// A bare selenium atom with a stated zero hydrogen count is the divalent
// elemental form.
func TestClassify_ElementalSelenium(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	se := addAtom(t, mol, "Se", 0)

	assert.Equal(t, "Se.2", classifyName(t, m, mol, se))
}

func TestClassify_SeleniumIons(t *testing.T) {
	m := permissiveMatcher(t)

	mol := molecule.New()
	plus := addBareAtom(t, mol, "Se").SetCharge(4)
	assert.Equal(t, "Se.4plus", classifyName(t, m, mol, plus))

	mol = molecule.New()
	minus := addBareAtom(t, mol, "Se").SetCharge(-2)
	assert.Equal(t, "Se.2minus", classifyName(t, m, mol, minus))

	mol = molecule.New()
	onium := addAtom(t, mol, "Se", 0).SetCharge(1)
	for i := 0; i < 3; i++ {
		c := addAtom(t, mol, "C", 3)
		addBond(t, mol, onium, c, chem.OrderSingle)
	}
	assert.Equal(t, "Se.plus.3", classifyName(t, m, mol, onium))
}

func TestClassify_Trimethylstibine(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	sb := addAtom(t, mol, "Sb", 0)
	for i := 0; i < 3; i++ {
		c := addAtom(t, mol, "C", 3)
		addBond(t, mol, sb, c, chem.OrderSingle)
	}

	assert.Equal(t, "Sb.3", classifyName(t, m, mol, sb))
}

func TestClassify_TrimethylstibineOxide(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	sb := addAtom(t, mol, "Sb", 0)
	o := addAtom(t, mol, "O", 0)
	addBond(t, mol, sb, o, chem.OrderDouble)
	for i := 0; i < 3; i++ {
		c := addAtom(t, mol, "C", 3)
		addBond(t, mol, sb, c, chem.OrderSingle)
	}

	assert.Equal(t, "Sb.4", classifyName(t, m, mol, sb))
}

func TestClassify_DimethylTelluride(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	te := addAtom(t, mol, "Te", 0)
	for i := 0; i < 2; i++ {
		c := addAtom(t, mol, "C", 3)
		addBond(t, mol, te, c, chem.OrderSingle)
	}

	assert.Equal(t, "Te.3", classifyName(t, m, mol, te))
}

func TestClassify_TelluriumCation(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	te := addBareAtom(t, mol, "Te").SetCharge(4)

	assert.Equal(t, "Te.4plus", classifyName(t, m, mol, te))
}

// Sanity over the dispatch table: every metalloid symbol resolves through
// its own cascade rather than the fallback chain.
func TestClassify_MetalloidSymbolsRouted(t *testing.T) {
	m := permissiveMatcher(t)
	for _, symbol := range []string{"B", "Si", "Ge", "As", "Se", "Sb", "Te"} {
		t.Run(symbol, func(t *testing.T) {
			mol := molecule.New()
			a, err := molecule.NewAtom(symbol)
			assert.NoError(t, err)
			mol.AddAtom(a)
			tp, err := m.Classify(mol, a)
			assert.NoError(t, err)
			assert.NotNil(t, tp, fmt.Sprintf("symbol %s", symbol))
		})
	}
}
