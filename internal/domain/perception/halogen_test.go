package perception

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/turtacn/AtomSense/internal/domain/molecule"
	"github.com/turtacn/AtomSense/pkg/types/chem"
)

func TestClassify_Fluoromethane(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	c := addAtom(t, mol, "C", 3)
	f := addBareAtom(t, mol, "F")
	addBond(t, mol, c, f, chem.OrderSingle)

	assert.Equal(t, []string{"C.sp3", "F"}, classifyAllNames(t, m, mol))
}

func TestClassify_Fluoride(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	f := addBareAtom(t, mol, "F").SetCharge(-1)

	assert.Equal(t, "F.minus", classifyName(t, m, mol, f))
}

func TestClassify_FluorineRadical(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	f := addBareAtom(t, mol, "F")
	f.SingleElectrons = 1

	assert.Equal(t, "F.radical", classifyName(t, m, mol, f))
}

func TestClassify_Tetrachloromethane(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	c := addAtom(t, mol, "C", 0)
	for i := 0; i < 4; i++ {
		cl := addBareAtom(t, mol, "Cl")
		addBond(t, mol, c, cl, chem.OrderSingle)
	}

	names := classifyAllNames(t, m, mol)
	assert.Equal(t, []string{"C.sp3", "Cl", "Cl", "Cl", "Cl"}, names)
}

func TestClassify_Chloride(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	cl := addBareAtom(t, mol, "Cl").SetCharge(-1)

	assert.Equal(t, "Cl.minus", classifyName(t, m, mol, cl))
}

func TestClassify_ChlorineRadical(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	cl := addBareAtom(t, mol, "Cl")
	cl.SingleElectrons = 1

	assert.Equal(t, "Cl.radical", classifyName(t, m, mol, cl))
}

func TestClassify_ChlorateAnion(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	cl := addAtom(t, mol, "Cl", 0)
	for i := 0; i < 2; i++ {
		o := addAtom(t, mol, "O", 0)
		addBond(t, mol, cl, o, chem.OrderDouble)
	}
	minusO := addAtom(t, mol, "O", 0).SetCharge(-1)
	addBond(t, mol, cl, minusO, chem.OrderSingle)

	assert.Equal(t, "Cl.chlorate", classifyName(t, m, mol, cl))
}

func TestClassify_PerchlorateAnion(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	cl := addAtom(t, mol, "Cl", 0)
	for i := 0; i < 3; i++ {
		o := addAtom(t, mol, "O", 0)
		addBond(t, mol, cl, o, chem.OrderDouble)
	}
	minusO := addAtom(t, mol, "O", 0).SetCharge(-1)
	addBond(t, mol, cl, minusO, chem.OrderSingle)

	assert.Equal(t, "Cl.perchlorate", classifyName(t, m, mol, cl))
}

func TestClassify_ChlorosoCarbon(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	c := addAtom(t, mol, "C", 3)
	cl := addAtom(t, mol, "Cl", 0)
	o := addAtom(t, mol, "O", 0)
	addBond(t, mol, c, cl, chem.OrderSingle)
	addBond(t, mol, cl, o, chem.OrderDouble)

	assert.Equal(t, "Cl.2", classifyName(t, m, mol, cl))
}

func TestClassify_DimethylChloronium(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	cl := addAtom(t, mol, "Cl", 0).SetCharge(1)
	for i := 0; i < 2; i++ {
		c := addAtom(t, mol, "C", 3)
		addBond(t, mol, cl, c, chem.OrderSingle)
	}

	assert.Equal(t, "Cl.plus.sp3", classifyName(t, m, mol, cl))
}

func TestClassify_Bromomethane(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	c := addAtom(t, mol, "C", 3)
	br := addBareAtom(t, mol, "Br")
	addBond(t, mol, c, br, chem.OrderSingle)

	assert.Equal(t, "Br", classifyName(t, m, mol, br))
}

func TestClassify_Bromide(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	br := addBareAtom(t, mol, "Br").SetCharge(-1)

	assert.Equal(t, "Br.minus", classifyName(t, m, mol, br))
}

func TestClassify_BromineTrifluoride(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	br := addAtom(t, mol, "Br", 0)
	for i := 0; i < 3; i++ {
		f := addBareAtom(t, mol, "F")
		addBond(t, mol, br, f, chem.OrderSingle)
	}

	assert.Equal(t, "Br.3", classifyName(t, m, mol, br))
}

func TestClassify_Iodomethane(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	c := addAtom(t, mol, "C", 3)
	i := addBareAtom(t, mol, "I")
	addBond(t, mol, c, i, chem.OrderSingle)

	assert.Equal(t, "I", classifyName(t, m, mol, i))
}

func TestClassify_Iodide(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	i := addBareAtom(t, mol, "I").SetCharge(-1)

	assert.Equal(t, "I.minus", classifyName(t, m, mol, i))
}

// The central atom of the triiodide anion keeps two neighbors and the charge.
func TestClassify_Triiodide(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	end1 := addBareAtom(t, mol, "I")
	center := addBareAtom(t, mol, "I").SetCharge(-1)
	end2 := addBareAtom(t, mol, "I")
	addBond(t, mol, end1, center, chem.OrderSingle)
	addBond(t, mol, center, end2, chem.OrderSingle)

	assert.Equal(t, []string{"I", "I.minus.5", "I"}, classifyAllNames(t, m, mol))
}

func TestClassify_IodateAnion(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	i := addAtom(t, mol, "I", 0)
	for n := 0; n < 2; n++ {
		o := addAtom(t, mol, "O", 0)
		addBond(t, mol, i, o, chem.OrderDouble)
	}
	minusO := addAtom(t, mol, "O", 0).SetCharge(-1)
	addBond(t, mol, i, minusO, chem.OrderSingle)

	assert.Equal(t, "I.5", classifyName(t, m, mol, i))
}

func TestClassify_IodosoCarbon(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	c := addAtom(t, mol, "C", 3)
	i := addAtom(t, mol, "I", 0)
	o := addAtom(t, mol, "O", 0)
	addBond(t, mol, c, i, chem.OrderSingle)
	addBond(t, mol, i, o, chem.OrderDouble)

	assert.Equal(t, "I.3", classifyName(t, m, mol, i))
}

func TestClassify_IodineDichloride(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	i := addAtom(t, mol, "I", 0)
	c := addAtom(t, mol, "C", 3)
	addBond(t, mol, i, c, chem.OrderSingle)
	for n := 0; n < 2; n++ {
		cl := addBareAtom(t, mol, "Cl")
		addBond(t, mol, i, cl, chem.OrderSingle)
	}

	assert.Equal(t, "I.sp3d2.3", classifyName(t, m, mol, i))
}

func TestClassify_DimethylIodonium(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	i := addAtom(t, mol, "I", 0).SetCharge(1)
	for n := 0; n < 2; n++ {
		c := addAtom(t, mol, "C", 3)
		addBond(t, mol, i, c, chem.OrderSingle)
	}

	assert.Equal(t, "I.plus.sp3", classifyName(t, m, mol, i))
}
