package perception

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/turtacn/AtomSense/internal/domain/molecule"
	"github.com/turtacn/AtomSense/pkg/types/chem"
)

func TestClassify_HydrogenSulfide(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	s := addAtom(t, mol, "S", 2)

	assert.Equal(t, "S.3", classifyName(t, m, mol, s))
}

func TestClassify_Methanethiol(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	c := addAtom(t, mol, "C", 3)
	s := addAtom(t, mol, "S", 1)
	addBond(t, mol, c, s, chem.OrderSingle)

	assert.Equal(t, "S.3", classifyName(t, m, mol, s))
}

func TestClassify_DimethylSulfide(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	s := addAtom(t, mol, "S", 0)
	for i := 0; i < 2; i++ {
		c := addAtom(t, mol, "C", 3)
		addBond(t, mol, s, c, chem.OrderSingle)
	}

	assert.Equal(t, "S.3", classifyName(t, m, mol, s))
}

func TestClassify_Thioformaldehyde(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	c := addAtom(t, mol, "C", 2)
	s := addAtom(t, mol, "S", 0)
	addBond(t, mol, c, s, chem.OrderDouble)

	assert.Equal(t, "S.2", classifyName(t, m, mol, s))
}

// The thiophene sulfur takes part in the aromatic system.
func TestClassify_ThiopheneSulfur(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	s := addAtom(t, mol, "S", 0)
	c2 := addAtom(t, mol, "C", 1)
	c3 := addAtom(t, mol, "C", 1)
	c4 := addAtom(t, mol, "C", 1)
	c5 := addAtom(t, mol, "C", 1)
	addBond(t, mol, s, c2, chem.OrderSingle)
	addBond(t, mol, c2, c3, chem.OrderDouble)
	addBond(t, mol, c3, c4, chem.OrderSingle)
	addBond(t, mol, c4, c5, chem.OrderDouble)
	addBond(t, mol, c5, s, chem.OrderSingle)

	assert.Equal(t, "S.planar3", classifyName(t, m, mol, s))
}

// Sulfur dioxide is acyclic, so the planar ring probe must not fire.
func TestClassify_SulfurDioxide(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	s := addAtom(t, mol, "S", 0)
	for i := 0; i < 2; i++ {
		o := addAtom(t, mol, "O", 0)
		addBond(t, mol, s, o, chem.OrderDouble)
	}

	assert.Equal(t, "S.oxide", classifyName(t, m, mol, s))
}

// A sulfine sulfur carries two cumulated double bonds with only one oxygen.
func TestClassify_SulfineSulfur(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	c := addAtom(t, mol, "C", 2)
	s := addAtom(t, mol, "S", 0)
	o := addAtom(t, mol, "O", 0)
	addBond(t, mol, c, s, chem.OrderDouble)
	addBond(t, mol, s, o, chem.OrderDouble)

	assert.Equal(t, "S.inyl.2", classifyName(t, m, mol, s))
}

func TestClassify_DimethylSulfoxide(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	s := addAtom(t, mol, "S", 0)
	o := addAtom(t, mol, "O", 0)
	addBond(t, mol, s, o, chem.OrderDouble)
	for i := 0; i < 2; i++ {
		c := addAtom(t, mol, "C", 3)
		addBond(t, mol, s, c, chem.OrderSingle)
	}

	assert.Equal(t, "S.inyl", classifyName(t, m, mol, s))
}

func TestClassify_SulfurTrioxide(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	s := addAtom(t, mol, "S", 0)
	for i := 0; i < 3; i++ {
		o := addAtom(t, mol, "O", 0)
		addBond(t, mol, s, o, chem.OrderDouble)
	}

	assert.Equal(t, "S.trioxide", classifyName(t, m, mol, s))
}

func TestClassify_DimethylSulfone(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	s := addAtom(t, mol, "S", 0)
	for i := 0; i < 2; i++ {
		o := addAtom(t, mol, "O", 0)
		addBond(t, mol, s, o, chem.OrderDouble)
	}
	for i := 0; i < 2; i++ {
		c := addAtom(t, mol, "C", 3)
		addBond(t, mol, s, c, chem.OrderSingle)
	}

	assert.Equal(t, "S.onyl", classifyName(t, m, mol, s))
}

func TestClassify_SulfateDianion(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	s := addAtom(t, mol, "S", 0)
	for i := 0; i < 2; i++ {
		o := addAtom(t, mol, "O", 0)
		addBond(t, mol, s, o, chem.OrderDouble)
	}
	for i := 0; i < 2; i++ {
		o := addAtom(t, mol, "O", 0).SetCharge(-1)
		addBond(t, mol, s, o, chem.OrderSingle)
	}

	names := classifyAllNames(t, m, mol)
	assert.Equal(t, []string{"S.onyl", "O.sp2", "O.sp2", "O.minus", "O.minus"}, names)
}

// Mixed thionyl centers carry one double bond to oxygen and one to sulfur.
func TestClassify_ThionylCenter(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	s := addAtom(t, mol, "S", 0)
	o := addAtom(t, mol, "O", 0)
	terminalS := addAtom(t, mol, "S", 0)
	addBond(t, mol, s, o, chem.OrderDouble)
	addBond(t, mol, s, terminalS, chem.OrderDouble)
	for i := 0; i < 2; i++ {
		c := addAtom(t, mol, "C", 3)
		addBond(t, mol, s, c, chem.OrderSingle)
	}

	assert.Equal(t, "S.thionyl", classifyName(t, m, mol, s))
}

func TestClassify_Thiolate(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	c := addAtom(t, mol, "C", 3)
	s := addAtom(t, mol, "S", 0).SetCharge(-1)
	addBond(t, mol, c, s, chem.OrderSingle)

	assert.Equal(t, "S.minus", classifyName(t, m, mol, s))
}

func TestClassify_SulfideDianion(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	s := addBareAtom(t, mol, "S").SetCharge(-2)

	assert.Equal(t, "S.2minus", classifyName(t, m, mol, s))
}

func TestClassify_DimethylSulfonium(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	s := addAtom(t, mol, "S", 0).SetCharge(1)
	for i := 0; i < 2; i++ {
		c := addAtom(t, mol, "C", 3)
		addBond(t, mol, s, c, chem.OrderSingle)
	}

	assert.Equal(t, "S.plus", classifyName(t, m, mol, s))
}

func TestClassify_TrimethylSulfonium(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	s := addAtom(t, mol, "S", 0).SetCharge(1)
	for i := 0; i < 3; i++ {
		c := addAtom(t, mol, "C", 3)
		addBond(t, mol, s, c, chem.OrderSingle)
	}

	assert.Equal(t, "S.inyl.charged", classifyName(t, m, mol, s))
}

func TestClassify_SulfurTetrafluoride(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	s := addAtom(t, mol, "S", 0)
	for i := 0; i < 4; i++ {
		f := addBareAtom(t, mol, "F")
		addBond(t, mol, s, f, chem.OrderSingle)
	}

	assert.Equal(t, "S.anyl", classifyName(t, m, mol, s))
}

func TestClassify_ThionylTetrafluoride(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	s := addAtom(t, mol, "S", 0)
	o := addAtom(t, mol, "O", 0)
	addBond(t, mol, s, o, chem.OrderDouble)
	for i := 0; i < 4; i++ {
		f := addBareAtom(t, mol, "F")
		addBond(t, mol, s, f, chem.OrderSingle)
	}

	assert.Equal(t, "S.sp3d1", classifyName(t, m, mol, s))
}

func TestClassify_SulfurHexafluoride(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	s := addAtom(t, mol, "S", 0)
	for i := 0; i < 6; i++ {
		f := addBareAtom(t, mol, "F")
		addBond(t, mol, s, f, chem.OrderSingle)
	}

	assert.Equal(t, "S.octahedral", classifyName(t, m, mol, s))
}

func TestClassify_SulfurRadicalUnresolved(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	s := addAtom(t, mol, "S", 1)
	s.SingleElectrons = 1
	c := addAtom(t, mol, "C", 3)
	addBond(t, mol, s, c, chem.OrderSingle)

	assert.Equal(t, "X", classifyName(t, m, mol, s))
}
